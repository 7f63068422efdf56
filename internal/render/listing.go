package render

import (
	"github.com/rulebook-dev/rulebook/internal/document"
	"github.com/rulebook-dev/rulebook/internal/rule"
)

// Listing is the structured view of a validated catalog, the shape all
// renderers consume.
type Listing struct {
	Source string `json:"source" yaml:"source"`
	Hash   string `json:"hash" yaml:"hash"`
	Rules  []Rule `json:"rules" yaml:"rules"`
}

// Rule is one catalog entry flattened for output.
type Rule struct {
	Index        int    `json:"index" yaml:"index"`
	Title        string `json:"title" yaml:"title"`
	Explanation  string `json:"explanation" yaml:"explanation"`
	NonCompliant string `json:"non_compliant,omitempty" yaml:"non_compliant,omitempty"`
	Compliant    string `json:"compliant" yaml:"compliant"`
}

// NewListing flattens a validated catalog for rendering.
func NewListing(doc *document.Document, cat *rule.Catalog) *Listing {
	l := &Listing{
		Source: doc.Path,
		Hash:   doc.Hash,
		Rules:  make([]Rule, 0, cat.Len()),
	}
	for e := range cat.All() {
		l.Rules = append(l.Rules, Rule{
			Index:        e.Index(),
			Title:        e.Title(),
			Explanation:  e.Explanation(),
			NonCompliant: e.NonCompliant(),
			Compliant:    e.Compliant(),
		})
	}
	return l
}
