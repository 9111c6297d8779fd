package rangeset

// Invert returns the values of domain that are not in a.
//
// The complement is only meaningful relative to a stated universe, hence
// domain. Use Unbounded for the whole of T. Ranges of a outside domain are
// ignored.
func Invert[T any, O Order[T]](a Set[T, O], domain Range[T, O]) Set[T, O] {
	if domain.IsEmpty() {
		return Set[T, O]{}
	}
	out := make([]Range[T, O], 0, len(a.rr)+1)
	// from is where the current gap starts. A covered range starts where the
	// gap before it ends, so its lower cut is the upper cut of that gap and
	// inclusivity flips by construction: [3,... leaves ...,3).
	from := domain.lower
	for _, r := range a.rr {
		c := r.Intersect(domain)
		if c.IsEmpty() {
			continue
		}
		if gap := (Range[T, O]{lower: from, upper: c.lower}); !gap.IsEmpty() {
			out = append(out, gap.canonical())
		}
		from = c.upper
	}
	if tail := (Range[T, O]{lower: from, upper: domain.upper}); !tail.IsEmpty() {
		out = append(out, tail.canonical())
	}
	if len(out) == 0 {
		return Set[T, O]{}
	}
	return Set[T, O]{rr: out}
}

// Invert returns the values of domain that are not in s.
func (s Set[T, O]) Invert(domain Range[T, O]) Set[T, O] { return Invert(s, domain) }
