package rangeset

import "cmp"

// cutKind places a cut relative to its value. A cut sits between two
// adjacent values of the domain, so every bound of a range is a cut:
//
//	lower inclusive v  = below(v)    upper inclusive v  = above(v)
//	lower exclusive v  = above(v)    upper exclusive v  = below(v)
//	lower unbounded    = belowAll    upper unbounded    = aboveAll
//
// Comparing cuts is enough to answer every question about ranges.
type cutKind uint8

const (
	belowAll cutKind = iota
	below
	above
	aboveAll
)

type cut[T any] struct {
	kind cutKind
	v    T
}

func lowerCut[T any](v T, inclusive bool) cut[T] {
	if inclusive {
		return cut[T]{kind: below, v: v}
	}
	return cut[T]{kind: above, v: v}
}

func upperCut[T any](v T, inclusive bool) cut[T] {
	if inclusive {
		return cut[T]{kind: above, v: v}
	}
	return cut[T]{kind: below, v: v}
}

func (c cut[T]) bounded() bool {
	return c.kind == below || c.kind == above
}

// class returns -1 for belowAll, 1 for aboveAll and 0 for bounded cuts.
func (c cut[T]) class() int {
	switch c.kind {
	case belowAll:
		return -1
	case aboveAll:
		return 1
	}
	return 0
}

// canon rewrites above(v) as below(next(v)) for discrete orders. It is the
// form cuts are stored in, so [1,2] and [1,3) are stored identically.
func canon[T any, O Order[T]](c cut[T]) cut[T] {
	if c.kind != above {
		return c
	}
	d, ok := discreteOf[T, O]()
	if !ok {
		return c
	}
	if n, ok := d.Next(c.v); ok {
		return cut[T]{kind: below, v: n}
	}
	return c
}

// reduce is canon plus folding the cuts at the very ends of a bounded
// discrete type onto the unbounded cuts: below(min) is belowAll. It is only
// used for comparison.
func reduce[T any, O Order[T]](c cut[T]) cut[T] {
	d, ok := discreteOf[T, O]()
	if !ok {
		return c
	}
	switch c.kind {
	case above:
		if n, ok := d.Next(c.v); ok {
			return cut[T]{kind: below, v: n}
		}
		return cut[T]{kind: aboveAll}
	case below:
		if _, ok := d.Prev(c.v); !ok {
			return cut[T]{kind: belowAll}
		}
	}
	return c
}

func compareCuts[T any, O Order[T]](a, b cut[T]) int {
	a, b = reduce[T, O](a), reduce[T, O](b)
	if c := cmp.Compare(a.class(), b.class()); c != 0 {
		return c
	}
	if !a.bounded() {
		return 0
	}
	var o O
	if c := o.Compare(a.v, b.v); c != 0 {
		return c
	}
	return cmp.Compare(a.kind, b.kind)
}

func minCut[T any, O Order[T]](a, b cut[T]) cut[T] {
	if compareCuts[T, O](b, a) < 0 {
		return b
	}
	return a
}

func maxCut[T any, O Order[T]](a, b cut[T]) cut[T] {
	if compareCuts[T, O](b, a) > 0 {
		return b
	}
	return a
}
