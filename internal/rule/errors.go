package rule

import "fmt"

// CatalogErrorKind identifies a catalog-wide invariant violation.
type CatalogErrorKind string

const (
	KindDuplicateIndex  CatalogErrorKind = "DUPLICATE_INDEX"
	KindMissingIndex    CatalogErrorKind = "MISSING_INDEX"
	KindWrongCount      CatalogErrorKind = "WRONG_COUNT"
	KindIndexOutOfRange CatalogErrorKind = "INDEX_OUT_OF_RANGE"
)

// CatalogError reports a violated catalog invariant. Its message follows
// the "<kind>: <detail>" convention used for all user-visible failures.
type CatalogError struct {
	Kind   CatalogErrorKind
	Detail string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// ValidationError reports a malformed individual entry at construction.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("INVALID_ENTRY: %s: %s", e.Field, e.Detail)
}
