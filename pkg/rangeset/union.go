package rangeset

import "slices"

// mergeRanges returns the minimum and sorted set of ranges that cover rr.
// rr is never modified.
func mergeRanges[T any, O Order[T]](rr []Range[T, O]) []Range[T, O] {
	out := make([]Range[T, O], 0, len(rr))
	for _, r := range rr {
		if r.IsEmpty() {
			continue
		}
		out = append(out, r.canonical())
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out
	}

	slices.SortStableFunc(out, func(a, b Range[T, O]) int { return a.CompareLower(b) })
	merged := out[:1]
	for _, r := range out[1:] {
		prev := &merged[len(merged)-1]
		switch {
		case compareCuts[T, O](prev.upper, r.lower) < 0:
			// A gap with at least one value, nothing to merge.
			//
			//   prev       r
			// f------t  f-----t
			merged = append(merged, r)
		case compareCuts[T, O](prev.upper, r.upper) < 0:
			// Partial overlap or touching, extend prev.
			//
			//   prev
			// f------t
			//        f-----t
			//           r
			prev.upper = r.upper
		default:
			// r entirely contained in prev, nothing to do.
		}
		if prev.upper.kind == aboveAll {
			// Everything after r starts inside prev.
			break
		}
	}
	return merged
}

// Union returns the values in a or b.
func Union[T any, O Order[T]](a, b Set[T, O]) Set[T, O] {
	rr := make([]Range[T, O], 0, len(a.rr)+len(b.rr))
	rr = append(rr, a.rr...)
	rr = append(rr, b.rr...)
	return Set[T, O]{rr: mergeRanges(rr)}
}

// UnionAll returns the values in any of sets.
func UnionAll[T any, O Order[T]](sets ...Set[T, O]) Set[T, O] {
	var n int
	for _, s := range sets {
		n += len(s.rr)
	}
	rr := make([]Range[T, O], 0, n)
	for _, s := range sets {
		rr = append(rr, s.rr...)
	}
	return Set[T, O]{rr: mergeRanges(rr)}
}

// Union returns the values in s or other.
func (s Set[T, O]) Union(other Set[T, O]) Set[T, O] { return Union(s, other) }

// Add returns s with r added.
func (s Set[T, O]) Add(r Range[T, O]) Set[T, O] { return Union(s, From(r)) }
