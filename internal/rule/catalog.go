package rule

import (
	"fmt"
	"iter"
	"sort"
)

// Catalog is the complete, validated, ordered collection of all rules.
// It is built once at load time and never mutated, so it is safe to read
// concurrently without synchronization.
type Catalog struct {
	entries []Entry // ascending by index, len == Count
}

// Build constructs a Catalog from entries in any order. It succeeds only
// when the input covers exactly the indices 1..Count with no duplicates
// and no gaps; construction is all-or-nothing.
func Build(entries []Entry) (*Catalog, error) {
	if len(entries) != Count {
		return nil, &CatalogError{
			Kind:   KindWrongCount,
			Detail: fmt.Sprintf("got %d entries, want %d", len(entries), Count),
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].index == sorted[i-1].index {
			return nil, &CatalogError{
				Kind:   KindDuplicateIndex,
				Detail: fmt.Sprintf("index %d appears more than once", sorted[i].index),
			}
		}
	}
	for i, e := range sorted {
		if e.index != i+1 {
			return nil, &CatalogError{
				Kind:   KindMissingIndex,
				Detail: fmt.Sprintf("no entry for index %d", i+1),
			}
		}
	}

	return &Catalog{entries: sorted}, nil
}

// Get returns the entry for a 1-based index.
func (c *Catalog) Get(index int) (Entry, error) {
	if index < 1 || index > len(c.entries) {
		return Entry{}, &CatalogError{
			Kind:   KindIndexOutOfRange,
			Detail: fmt.Sprintf("index %d is outside [1,%d]", index, len(c.entries)),
		}
	}
	return c.entries[index-1], nil
}

// All returns an iterator over the entries in ascending index order.
// The catalog is immutable, so every fresh iteration replays all entries
// from the start.
func (c *Catalog) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range c.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len is the number of entries in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }
