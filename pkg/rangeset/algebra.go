package rangeset

// The operations below are compositions of Union and Invert only. domain is
// the universe both operands live in; passing a domain that does not cover
// the operands clips the result to it.

// Intersection returns the values in both a and b.
func Intersection[T any, O Order[T]](a, b Set[T, O], domain Range[T, O]) Set[T, O] {
	return Invert(Union(Invert(a, domain), Invert(b, domain)), domain)
}

// Difference returns the values in a that are not in b.
func Difference[T any, O Order[T]](a, b Set[T, O], domain Range[T, O]) Set[T, O] {
	return Intersection(a, Invert(b, domain), domain)
}

// SymmetricDifference returns the values in exactly one of a and b.
func SymmetricDifference[T any, O Order[T]](a, b Set[T, O], domain Range[T, O]) Set[T, O] {
	return Union(Difference(a, b, domain), Difference(b, a, domain))
}

// IsSubset reports whether every value of a is in b. It needs no domain:
// since b is canonical every range of a has to fit in a single range of b.
func IsSubset[T any, O Order[T]](a, b Set[T, O]) bool {
	for _, r := range a.rr {
		if !b.ContainsRange(r) {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether a and b have no value in common.
func IsDisjoint[T any, O Order[T]](a, b Set[T, O]) bool {
	return Intersection(a, b, Unbounded[T, O]()).IsEmpty()
}

// Intersection returns the values in both s and other, see Intersection.
func (s Set[T, O]) Intersection(other Set[T, O], domain Range[T, O]) Set[T, O] {
	return Intersection(s, other, domain)
}

// Difference returns the values of s not in other.
func (s Set[T, O]) Difference(other Set[T, O], domain Range[T, O]) Set[T, O] {
	return Difference(s, other, domain)
}

// SymmetricDifference returns the values in exactly one of s and other.
func (s Set[T, O]) SymmetricDifference(other Set[T, O], domain Range[T, O]) Set[T, O] {
	return SymmetricDifference(s, other, domain)
}

// IsSubsetOf reports whether every value of s is in other.
func (s Set[T, O]) IsSubsetOf(other Set[T, O]) bool { return IsSubset(s, other) }

// IsDisjoint reports whether s and other have no value in common.
func (s Set[T, O]) IsDisjoint(other Set[T, O]) bool { return IsDisjoint(s, other) }

// Overlaps reports whether s and other have at least one value in common.
func (s Set[T, O]) Overlaps(other Set[T, O]) bool { return !IsDisjoint(s, other) }

// Remove returns s without the values of r, within domain.
func (s Set[T, O]) Remove(r Range[T, O], domain Range[T, O]) Set[T, O] {
	return Difference(s, From(r), domain)
}
