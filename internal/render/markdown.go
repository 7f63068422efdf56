package render

import (
	"bytes"
	"fmt"
	"text/template"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("listing").Parse(`# Coding Rules

**Source:** {{ .Source }}
**Hash:** {{ .Hash }}
**Rules:** {{ len .Rules }}
{{ range .Rules }}
---

## {{ .Index }}. {{ .Title }}

{{ .Explanation }}
{{ if .NonCompliant }}
Non-compliant:
` + "```" + `
{{ .NonCompliant }}
` + "```" + `
{{ end }}
Compliant:
` + "```" + `
{{ .Compliant }}
` + "```" + `
{{ end }}`))

func (r *markdownRenderer) Render(l *Listing) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, l); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
