package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

type tableRenderer struct{}

func (r *tableRenderer) Render(l *Listing) ([]byte, error) {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Rule", "Before", "After"})

	for _, rl := range l.Rules {
		t.AppendRow(table.Row{rl.Index, rl.Title, blockSize(rl.NonCompliant), blockSize(rl.Compliant)})
	}
	t.Render()

	return buf.Bytes(), nil
}

// blockSize summarizes a code block as a line count for the overview table.
func blockSize(block string) string {
	if block == "" {
		return "-"
	}
	return fmt.Sprintf("%d lines", strings.Count(block, "\n")+1)
}
