// Package parser turns a raw rules document into a validated catalog.
// It splits the document on separator lines, walks each rule segment with
// a small state machine, and hands the candidate entries to rule.Build.
// Parsing is fail-fast: the first structural defect aborts the parse and
// no partial catalog is ever returned.
package parser

import (
	"strings"

	"github.com/rulebook-dev/rulebook/internal/document"
	"github.com/rulebook-dev/rulebook/internal/rule"
)

// segState tracks progress through one rule segment. Markers must appear
// in this order; the non-compliant example is optional.
type segState int

const (
	awaitingTitle segState = iota
	awaitingExplanation
	awaitingNonCompliant
	awaitingCompliant
	segDone
)

// Parse validates doc against the ten-rule convention and builds the
// catalog. Rule indices are assigned sequentially in document order,
// starting at 1. Errors from rule.Build propagate unchanged.
func Parse(doc *document.Document, conv Convention) (*rule.Catalog, error) {
	segments := split(doc.Raw, conv)
	if len(segments) > 0 {
		// Everything before the first separator is the document header.
		segments = segments[1:]
	}
	// The convention ends the document with a final separator, leaving an
	// empty trailing segment.
	for len(segments) > 0 && isBlank(segments[len(segments)-1]) {
		segments = segments[:len(segments)-1]
	}

	entries := make([]rule.Entry, 0, len(segments))
	for i, seg := range segments {
		e, err := parseSegment(seg, i+1, conv)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return rule.Build(entries)
}

// split divides the document into line groups delimited by separator
// lines. Separator-like lines inside fenced code blocks do not split.
func split(raw string, conv Convention) [][]string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var segments [][]string
	var cur []string
	inFence := false
	for _, line := range lines {
		if conv.isFenceLine(line) {
			inFence = !inFence
		}
		if !inFence && conv.isSeparator(line) {
			segments = append(segments, cur)
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	return append(segments, cur)
}

// parseSegment extracts one rule's title, explanation, and examples.
// segment is the 1-based position of the segment in document order and
// becomes the rule's index.
func parseSegment(lines []string, segment int, conv Convention) (rule.Entry, error) {
	var title, explanation, nonCompliant, compliant string

	st := awaitingTitle
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == conv.Explanation:
			if err := atState(st, awaitingExplanation, segment, "explanation"); err != nil {
				return rule.Entry{}, err
			}
			explanation, i = collectProse(lines, i+1, conv)
			st = awaitingNonCompliant

		case line == conv.NonCompliant:
			if err := atState(st, awaitingNonCompliant, segment, "non-compliant example"); err != nil {
				return rule.Entry{}, err
			}
			var err error
			nonCompliant, i, err = collectFenced(lines, i+1, segment, "non-compliant example", conv)
			if err != nil {
				return rule.Entry{}, err
			}
			st = awaitingCompliant

		case line == conv.Compliant:
			// The non-compliant example is optional, so the compliant
			// marker may follow the explanation directly.
			if st == awaitingNonCompliant {
				st = awaitingCompliant
			}
			if err := atState(st, awaitingCompliant, segment, "compliant example"); err != nil {
				return rule.Entry{}, err
			}
			var err error
			compliant, i, err = collectFenced(lines, i+1, segment, "compliant example", conv)
			if err != nil {
				return rule.Entry{}, err
			}
			st = segDone

		case line == "":
			i++

		default:
			// The first non-empty, non-marker line is the rule title.
			// Later free text between sections is tolerated and ignored.
			if st == awaitingTitle {
				title = line
				st = awaitingExplanation
			}
			i++
		}
	}

	switch {
	case title == "":
		return rule.Entry{}, &ParseError{Kind: KindMissingSection, Segment: segment, Section: "title"}
	case explanation == "":
		return rule.Entry{}, &ParseError{Kind: KindMissingSection, Segment: segment, Section: "explanation"}
	case compliant == "":
		return rule.Entry{}, &ParseError{Kind: KindMissingSection, Segment: segment, Section: "compliant example"}
	}

	return rule.NewEntry(segment, title, explanation, nonCompliant, compliant)
}

// atState checks that a marker for section arrived while the segment was
// in state want. A marker arriving before an earlier section was seen
// means that section is missing; a marker arriving after its own state
// has passed is out of order (repeated or backwards).
func atState(st, want segState, segment int, section string) error {
	if st == want {
		return nil
	}
	if st > want {
		return &ParseError{Kind: KindMarkerOutOfOrder, Segment: segment, Section: section}
	}
	switch st {
	case awaitingTitle:
		return &ParseError{Kind: KindMissingSection, Segment: segment, Section: "title"}
	case awaitingExplanation:
		return &ParseError{Kind: KindMissingSection, Segment: segment, Section: "explanation"}
	}
	return &ParseError{Kind: KindMarkerOutOfOrder, Segment: segment, Section: section}
}

// collectProse gathers lines from start until the next marker heading or
// the end of the segment, returning the trimmed text and the index of the
// line it stopped on.
func collectProse(lines []string, start int, conv Convention) (string, int) {
	i := start
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == conv.Explanation || t == conv.NonCompliant || t == conv.Compliant {
			break
		}
	}
	text := strings.TrimSpace(strings.Join(lines[start:i], "\n"))
	return text, i
}

// collectFenced expects a fenced code block (blank lines permitted before
// the opening fence, which may carry a language tag) and returns its
// contents and the index of the line after the closing fence.
func collectFenced(lines []string, start, segment int, section string, conv Convention) (string, int, error) {
	i := start
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) || !conv.isFenceLine(lines[i]) {
		return "", 0, &ParseError{Kind: KindMissingSection, Segment: segment, Section: section}
	}
	i++

	open := i
	for ; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == conv.Fence {
			return strings.Join(lines[open:i], "\n"), i + 1, nil
		}
	}
	return "", 0, &ParseError{Kind: KindUnterminatedFence, Segment: segment, Section: section}
}

// isBlank reports whether every line of the segment is empty or whitespace.
func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
