// Package diffview renders a rule's non-compliant/compliant example pair
// as a diff, either machine-applicable patch text or a colorized inline
// view for terminals.
package diffview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rulebook-dev/rulebook/internal/rule"
)

// PatchText returns the non-compliant -> compliant transition in
// diff-match-patch patch format. Returns "" when the entry carries no
// non-compliant example.
func PatchText(e rule.Entry) string {
	if !e.HasNonCompliant() {
		return ""
	}
	before := normalize(e.NonCompliant())
	after := normalize(e.Compliant())

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	patches := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patches)
}

// Pretty returns an ANSI-colorized diff of the example pair, computed
// line by line so whole code lines stay intact in the output.
// Returns "" when the entry carries no non-compliant example.
func Pretty(e rule.Entry) string {
	if !e.HasNonCompliant() {
		return ""
	}
	before := normalize(e.NonCompliant())
	after := normalize(e.Compliant())

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.DiffPrettyText(diffs)
}

// normalize trims trailing whitespace from each line and converts CRLF to
// LF, so formatting noise never shows up as a diff.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
