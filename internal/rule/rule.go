// Package rule holds the immutable data model for a validated rules
// catalog: ten entries, one per rule, indexed 1..10.
package rule

import (
	"fmt"
	"strings"
)

// Count is the number of rules a complete catalog holds.
const Count = 10

// Entry holds one rule's textual content. An Entry is immutable once
// constructed; the catalog owns its entries by value and hands out copies.
type Entry struct {
	index        int
	title        string
	explanation  string
	nonCompliant string
	compliant    string
}

// NewEntry validates and constructs an Entry. The non-compliant example is
// optional; the compliant example is not, and in particular must be present
// whenever a non-compliant example is (no half-illustrated rules).
func NewEntry(index int, title, explanation, nonCompliant, compliant string) (Entry, error) {
	if index < 1 || index > Count {
		return Entry{}, &ValidationError{
			Field:  "index",
			Detail: fmt.Sprintf("%d is outside [1,%d]", index, Count),
		}
	}
	if strings.TrimSpace(title) == "" {
		return Entry{}, &ValidationError{Field: "title", Detail: "must not be empty"}
	}
	if strings.TrimSpace(explanation) == "" {
		return Entry{}, &ValidationError{Field: "explanation", Detail: "must not be empty"}
	}
	if strings.TrimSpace(compliant) == "" {
		if strings.TrimSpace(nonCompliant) != "" {
			return Entry{}, &ValidationError{
				Field:  "compliant example",
				Detail: "required when a non-compliant example is present",
			}
		}
		return Entry{}, &ValidationError{Field: "compliant example", Detail: "must not be empty"}
	}

	return Entry{
		index:        index,
		title:        title,
		explanation:  explanation,
		nonCompliant: nonCompliant,
		compliant:    compliant,
	}, nil
}

// Index is the rule's position in the catalog, 1-based.
func (e Entry) Index() int { return e.index }

// Title is the rule statement itself.
func (e Entry) Title() string { return e.title }

// Explanation is the rationale paragraph.
func (e Entry) Explanation() string { return e.explanation }

// NonCompliant is the code block illustrating the violation, or "" when the
// rule has no such illustration.
func (e Entry) NonCompliant() string { return e.nonCompliant }

// Compliant is the code block illustrating the fix.
func (e Entry) Compliant() string { return e.compliant }

// HasNonCompliant reports whether the entry carries a before/after pair.
func (e Entry) HasNonCompliant() bool { return e.nonCompliant != "" }
