package rangeset

import (
	"iter"
	"slices"
	"sort"
	"strings"
)

// Set is a subset of the values ordered by O, held as a minimal list of
// ranges.
//
// A Set is immutable. Every operation returns a new Set, so a Set can be
// shared between goroutines without locking. The zero Set is empty.
type Set[T any, O Order[T]] struct {
	// rr is kept in canonical form: sorted by lower bound, no empty range,
	// no two ranges overlapping or adjacent. The implementation of the
	// methods below relies on this property.
	rr []Range[T, O]
}

// From returns the Set covering every value in any of ranges. The ranges may
// be unsorted, overlapping or empty.
func From[T any, O Order[T]](ranges ...Range[T, O]) Set[T, O] {
	return Set[T, O]{rr: mergeRanges(ranges)}
}

// Empty returns the empty Set.
func Empty[T any, O Order[T]]() Set[T, O] {
	return Set[T, O]{}
}

// Full returns the Set holding exactly domain.
func Full[T any, O Order[T]](domain Range[T, O]) Set[T, O] {
	return From(domain)
}

// Len returns the number of ranges in s.
func (s Set[T, O]) Len() int { return len(s.rr) }

// IsEmpty reports whether s holds no value.
func (s Set[T, O]) IsEmpty() bool { return len(s.rr) == 0 }

// IsAll reports whether s holds every value of T.
func (s Set[T, O]) IsAll() bool {
	return len(s.rr) == 1 && s.rr[0].IsAll()
}

// At returns the i-th range of s in ascending order.
func (s Set[T, O]) At(i int) Range[T, O] { return s.rr[i] }

// Ranges returns a copy of the ranges of s in ascending order.
func (s Set[T, O]) Ranges() []Range[T, O] {
	return slices.Clone(s.rr)
}

// All returns the ranges of s in ascending order. The sequence can be
// iterated any number of times.
func (s Set[T, O]) All() iter.Seq[Range[T, O]] {
	return func(yield func(Range[T, O]) bool) {
		for _, r := range s.rr {
			if !yield(r) {
				return
			}
		}
	}
}

// Backward returns the ranges of s in descending order.
func (s Set[T, O]) Backward() iter.Seq[Range[T, O]] {
	return func(yield func(Range[T, O]) bool) {
		for i := len(s.rr) - 1; i >= 0; i-- {
			if !yield(s.rr[i]) {
				return
			}
		}
	}
}

// Values returns every value of s in ascending order. It yields nothing
// for a dense order, and skips the ranges that are unbounded.
func (s Set[T, O]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		d, ok := discreteOf[T, O]()
		if !ok {
			return
		}
		for _, r := range s.rr {
			v, ok := r.First()
			if !ok {
				continue
			}
			last, ok := r.Last()
			if !ok {
				continue
			}
			for {
				if !yield(v) {
					return
				}
				if d.Compare(v, last) >= 0 {
					break
				}
				if v, ok = d.Next(v); !ok {
					break
				}
			}
		}
	}
}

// Span returns the smallest range covering s. It is empty when s is.
func (s Set[T, O]) Span() Range[T, O] {
	if len(s.rr) == 0 {
		return Range[T, O]{}
	}
	return Range[T, O]{lower: s.rr[0].lower, upper: s.rr[len(s.rr)-1].upper}
}

// Equal reports whether s and other hold the same values.
func (s Set[T, O]) Equal(other Set[T, O]) bool {
	return slices.EqualFunc(s.rr, other.rr, func(a, b Range[T, O]) bool {
		return a.Equal(b)
	})
}

// search returns the index of the first range whose upper bound is at or
// above c, len(s.rr) when there is none.
func (s Set[T, O]) search(c cut[T]) int {
	return sort.Search(len(s.rr), func(i int) bool {
		return compareCuts[T, O](s.rr[i].upper, c) >= 0
	})
}

// Contains reports whether v is in s.
func (s Set[T, O]) Contains(v T) bool {
	i := s.search(cut[T]{kind: above, v: v})
	return i < len(s.rr) && s.rr[i].Contains(v)
}

// ContainsRange reports whether every value of r is in s. An empty r is
// always contained.
func (s Set[T, O]) ContainsRange(r Range[T, O]) bool {
	if r.IsEmpty() {
		return true
	}
	i := s.search(r.upper)
	return i < len(s.rr) && s.rr[i].CompareLower(r) <= 0
}

// String renders s as a braced list, e.g. {[1,3), [5,7)}.
func (s Set[T, O]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, r := range s.rr {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String())
	}
	sb.WriteString("}")
	return sb.String()
}
