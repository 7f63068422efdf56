package parser

import "fmt"

// ParseErrorKind classifies a structural defect in the document source.
type ParseErrorKind string

const (
	KindMissingSection    ParseErrorKind = "MISSING_SECTION"
	KindMarkerOutOfOrder  ParseErrorKind = "MARKER_OUT_OF_ORDER"
	KindUnterminatedFence ParseErrorKind = "UNTERMINATED_FENCE"
)

// ParseError reports the first structural defect found while parsing.
// Segment is the 1-based rule segment number in document order, and
// Section names the sub-part involved, giving the author enough context
// to locate and fix the source.
type ParseError struct {
	Kind    ParseErrorKind
	Segment int
	Section string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMissingSection:
		return fmt.Sprintf("%s: segment %d has no %s", e.Kind, e.Segment, e.Section)
	case KindMarkerOutOfOrder:
		return fmt.Sprintf("%s: segment %d: %s marker out of order", e.Kind, e.Segment, e.Section)
	case KindUnterminatedFence:
		return fmt.Sprintf("%s: segment %d: %s code block never closes", e.Kind, e.Segment, e.Section)
	}
	return fmt.Sprintf("%s: segment %d: %s", e.Kind, e.Segment, e.Section)
}
