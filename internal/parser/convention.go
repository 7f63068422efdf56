package parser

import (
	"strings"
	"unicode/utf8"
)

// Convention describes the textual markers that delimit a rules document:
// separator lines between rule segments, the heading that introduces the
// rationale, the headings for the before/after examples, and the code
// fence. The documents themselves never formally specify these strings,
// so they are treated as configuration rather than hard-coded literals.
type Convention struct {
	Separator    string // character repeated to form a separator line
	SeparatorMin int    // minimum repetitions for a line to count as a separator
	Explanation  string // heading introducing the rationale paragraph
	NonCompliant string // heading introducing the "before" example
	Compliant    string // heading introducing the "after" example
	Fence        string // code fence marker
}

// DefaultConvention matches the published ten-rule documents: long dash
// runs between rules, prose headings, backtick fences.
func DefaultConvention() Convention {
	return Convention{
		Separator:    "-",
		SeparatorMin: 10,
		Explanation:  "Rationale:",
		NonCompliant: "Non-compliant example:",
		Compliant:    "Compliant example:",
		Fence:        "```",
	}
}

// isSeparator reports whether line is a separator: nothing but the
// separator character, repeated at least SeparatorMin times. The minimum
// run keeps short dash runs inside prose or examples from splitting the
// document.
func (c Convention) isSeparator(line string) bool {
	line = strings.TrimRight(line, " \t")
	if utf8.RuneCountInString(line) < c.SeparatorMin {
		return false
	}
	return strings.Trim(line, c.Separator) == ""
}

// isFenceLine reports whether line opens or closes a fenced code block.
// Opening fences may carry a language tag.
func (c Convention) isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), c.Fence)
}
