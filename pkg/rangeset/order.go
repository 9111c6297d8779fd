package rangeset

import (
	"cmp"
	"time"

	"golang.org/x/exp/constraints"
)

// Order is a total order over T. Implementations are expected to be zero-size
// types, they are used as a type parameter and never stored.
type Order[T any] interface {
	Compare(a, b T) int
}

// Discrete is an Order over a type where every value has at most one
// successor and predecessor. It is only used to detect adjacency: [1,3] and
// [4,6] touch for integers but [1.0,3.0] and [4.0,6.0] do not for floats.
type Discrete[T any] interface {
	Order[T]
	// Next returns the successor of v, false when v is the largest value.
	Next(v T) (T, bool)
	// Prev returns the predecessor of v, false when v is the smallest value.
	Prev(v T) (T, bool)
}

// Integer orders any integer type. It is discrete and overflow aware.
type Integer[T constraints.Integer] struct{}

func (Integer[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

// Next returns v+1, false when v is the largest value of T.
func (Integer[T]) Next(v T) (T, bool) {
	n := v + 1
	if n < v {
		return v, false
	}
	return n, true
}

// Prev returns v-1, false when v is the smallest value of T.
func (Integer[T]) Prev(v T) (T, bool) {
	p := v - 1
	if p > v {
		return v, false
	}
	return p, true
}

// Float orders floating point values. It is dense: two ranges are only
// adjacent when their boundaries touch exactly.
type Float[T constraints.Float] struct{}

func (Float[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

// Ordered is a dense order over any cmp.Ordered type, e.g. strings.
type Ordered[T cmp.Ordered] struct{}

func (Ordered[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

// Time orders time.Time values by instant. It is dense.
type Time struct{}

func (Time) Compare(a, b time.Time) int { return a.Compare(b) }

func discreteOf[T any, O Order[T]]() (Discrete[T], bool) {
	var o O
	d, ok := any(o).(Discrete[T])
	return d, ok
}

// Aliases for the common instantiations.
type (
	IntRange   = Range[int, Integer[int]]
	IntSet     = Set[int, Integer[int]]
	Int64Range = Range[int64, Integer[int64]]
	Int64Set   = Set[int64, Integer[int64]]
	FloatRange = Range[float64, Float[float64]]
	FloatSet   = Set[float64, Float[float64]]
	TimeRange  = Range[time.Time, Time]
	TimeSet    = Set[time.Time, Time]
)
