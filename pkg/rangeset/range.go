package rangeset

import (
	"fmt"
	"strings"
)

// Range is one contiguous span of values ordered by O. Either end may be
// inclusive, exclusive or unbounded.
//
// A Range with low > high, or with low == high and an exclusive end, is
// empty. Empty ranges are valid values, they cover nothing. The zero Range is
// empty.
type Range[T any, O Order[T]] struct {
	lower cut[T]
	upper cut[T]
}

// New returns the range between low and high.
func New[T any, O Order[T]](low, high T, lowInclusive, highInclusive bool) Range[T, O] {
	return Range[T, O]{
		lower: lowerCut(low, lowInclusive),
		upper: upperCut(high, highInclusive),
	}
}

// ClosedOpen returns [low, high).
func ClosedOpen[T any, O Order[T]](low, high T) Range[T, O] {
	return New[T, O](low, high, true, false)
}

// Closed returns [low, high].
func Closed[T any, O Order[T]](low, high T) Range[T, O] {
	return New[T, O](low, high, true, true)
}

// Open returns (low, high).
func Open[T any, O Order[T]](low, high T) Range[T, O] {
	return New[T, O](low, high, false, false)
}

// OpenClosed returns (low, high].
func OpenClosed[T any, O Order[T]](low, high T) Range[T, O] {
	return New[T, O](low, high, false, true)
}

// Point returns [v, v].
func Point[T any, O Order[T]](v T) Range[T, O] {
	return Closed[T, O](v, v)
}

// AtLeast returns [low, +inf).
func AtLeast[T any, O Order[T]](low T) Range[T, O] {
	return Range[T, O]{lower: lowerCut(low, true), upper: cut[T]{kind: aboveAll}}
}

// GreaterThan returns (low, +inf).
func GreaterThan[T any, O Order[T]](low T) Range[T, O] {
	return Range[T, O]{lower: lowerCut(low, false), upper: cut[T]{kind: aboveAll}}
}

// AtMost returns (-inf, high].
func AtMost[T any, O Order[T]](high T) Range[T, O] {
	return Range[T, O]{lower: cut[T]{kind: belowAll}, upper: upperCut(high, true)}
}

// LessThan returns (-inf, high).
func LessThan[T any, O Order[T]](high T) Range[T, O] {
	return Range[T, O]{lower: cut[T]{kind: belowAll}, upper: upperCut(high, false)}
}

// Unbounded returns (-inf, +inf), the range covering every value of T.
func Unbounded[T any, O Order[T]]() Range[T, O] {
	return Range[T, O]{lower: cut[T]{kind: belowAll}, upper: cut[T]{kind: aboveAll}}
}

// Low returns the lower bound of r. ok is false when r is unbounded below.
func (r Range[T, O]) Low() (v T, ok bool) {
	if !r.lower.bounded() {
		return v, false
	}
	return r.lower.v, true
}

// High returns the upper bound of r. ok is false when r is unbounded above.
func (r Range[T, O]) High() (v T, ok bool) {
	if !r.upper.bounded() {
		return v, false
	}
	return r.upper.v, true
}

// First returns the smallest value in r. ok is false when r is empty, is
// unbounded below, or starts at an exclusive bound of a dense order.
func (r Range[T, O]) First() (v T, ok bool) {
	if r.IsEmpty() {
		return v, false
	}
	switch r.lower.kind {
	case below:
		return r.lower.v, true
	case above:
		if d, ok := discreteOf[T, O](); ok {
			return d.Next(r.lower.v)
		}
	}
	return v, false
}

// Last returns the largest value in r, see First.
func (r Range[T, O]) Last() (v T, ok bool) {
	if r.IsEmpty() {
		return v, false
	}
	switch r.upper.kind {
	case above:
		return r.upper.v, true
	case below:
		if d, ok := discreteOf[T, O](); ok {
			return d.Prev(r.upper.v)
		}
	}
	return v, false
}

// LowInclusive reports whether the low bound is part of r.
func (r Range[T, O]) LowInclusive() bool { return r.lower.kind == below }

// HighInclusive reports whether the high bound is part of r.
func (r Range[T, O]) HighInclusive() bool { return r.upper.kind == above }

// LowUnbounded reports whether r has no low bound.
func (r Range[T, O]) LowUnbounded() bool { return r.lower.kind == belowAll }

// HighUnbounded reports whether r has no high bound.
func (r Range[T, O]) HighUnbounded() bool { return r.upper.kind == aboveAll }

// IsEmpty reports whether no value lies in r.
func (r Range[T, O]) IsEmpty() bool {
	return compareCuts[T, O](r.lower, r.upper) >= 0
}

// IsAll reports whether r covers every value of T.
func (r Range[T, O]) IsAll() bool {
	return compareCuts[T, O](r.lower, cut[T]{kind: belowAll}) == 0 &&
		compareCuts[T, O](r.upper, cut[T]{kind: aboveAll}) == 0
}

// Contains reports whether v lies in r.
func (r Range[T, O]) Contains(v T) bool {
	return compareCuts[T, O](r.lower, cut[T]{kind: below, v: v}) <= 0 &&
		compareCuts[T, O](cut[T]{kind: above, v: v}, r.upper) <= 0
}

// Overlaps reports whether at least one value lies in both r and other.
func (r Range[T, O]) Overlaps(other Range[T, O]) bool {
	return !r.Intersect(other).IsEmpty()
}

// IsConnected reports whether r and other overlap or are adjacent, i.e.
// whether their union is a single range. Empty ranges connect to nothing.
func (r Range[T, O]) IsConnected(other Range[T, O]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return compareCuts[T, O](r.lower, other.upper) <= 0 &&
		compareCuts[T, O](other.lower, r.upper) <= 0
}

// IsAdjacentTo reports whether r and other do not overlap but no value lies
// between them.
//
// For dense orders the boundaries have to touch with complementary
// inclusivity: [1,3) and [3,5) are adjacent, [1,3) and (3,5) are not. For
// Discrete orders [1,3] and [4,5] are adjacent as well.
func (r Range[T, O]) IsAdjacentTo(other Range[T, O]) bool {
	return r.IsConnected(other) && !r.Overlaps(other)
}

// Merge returns the smallest range spanning r and other. Each bound is taken,
// with its inclusivity, from the operand that contributes it. The result
// only equals the union of r and other when they are connected. Merging with
// an empty range returns the other operand.
func (r Range[T, O]) Merge(other Range[T, O]) Range[T, O] {
	switch {
	case r.IsEmpty():
		return other
	case other.IsEmpty():
		return r
	}
	return Range[T, O]{
		lower: minCut[T, O](r.lower, other.lower),
		upper: maxCut[T, O](r.upper, other.upper),
	}
}

// Intersect returns the values in both r and other. The result may be empty.
func (r Range[T, O]) Intersect(other Range[T, O]) Range[T, O] {
	return Range[T, O]{
		lower: maxCut[T, O](r.lower, other.lower),
		upper: minCut[T, O](r.upper, other.upper),
	}
}

// CompareLower orders ranges by their lower bound. At an equal value an
// inclusive bound sorts before an exclusive one, an unbounded bound sorts
// first.
func (r Range[T, O]) CompareLower(other Range[T, O]) int {
	return compareCuts[T, O](r.lower, other.lower)
}

// CompareUpper orders ranges by their upper bound.
func (r Range[T, O]) CompareUpper(other Range[T, O]) int {
	return compareCuts[T, O](r.upper, other.upper)
}

// Equal reports whether r and other cover the same values.
func (r Range[T, O]) Equal(other Range[T, O]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.IsEmpty() && other.IsEmpty()
	}
	return r.CompareLower(other) == 0 && r.CompareUpper(other) == 0
}

// canonical returns r with its bounds in stored form.
func (r Range[T, O]) canonical() Range[T, O] {
	return Range[T, O]{lower: canon[T, O](r.lower), upper: canon[T, O](r.upper)}
}

// String renders r in interval notation: [1,3), (,5], (,).
func (r Range[T, O]) String() string {
	if r.IsEmpty() {
		return "empty"
	}
	var sb strings.Builder
	switch r.lower.kind {
	case belowAll:
		sb.WriteString("(")
	case below:
		fmt.Fprintf(&sb, "[%v", r.lower.v)
	case above:
		fmt.Fprintf(&sb, "(%v", r.lower.v)
	}
	sb.WriteString(",")
	switch r.upper.kind {
	case aboveAll:
		sb.WriteString(")")
	case below:
		fmt.Fprintf(&sb, "%v)", r.upper.v)
	case above:
		fmt.Fprintf(&sb, "%v]", r.upper.v)
	}
	return sb.String()
}
