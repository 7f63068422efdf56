package render

import "fmt"

// Renderer formats a Listing into bytes for output.
type Renderer interface {
	Render(l *Listing) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "yaml", "table".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "yaml":
		return &yamlRenderer{}, nil
	case "table":
		return &tableRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, yaml, table", format)
	}
}
