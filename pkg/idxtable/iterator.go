package idxtable

import "github.com/henderiw/rangeset/pkg/rangeset"

// Iterator walks a snapshot of the table entries ordered by their lowest
// value.
type Iterator[T any, O rangeset.Order[T]] struct {
	current int
	entries Entries[T, O]
}

func (r *Iterator[T, O]) Value() Entry[T, O] {
	return r.entries[r.current]
}

func (r *Iterator[T, O]) Name() string {
	return r.entries[r.current].Name()
}

func (r *Iterator[T, O]) Next() bool {
	r.current++
	return r.current < len(r.entries)
}

// IsConsecutive reports whether the current entry starts right where the
// previous one ends, with no free value in between.
func (r *Iterator[T, O]) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	prev := r.entries[r.current-1].Set().Span()
	return prev.IsAdjacentTo(r.entries[r.current].Set().Span())
}
