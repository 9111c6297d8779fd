package rangeset

// Builder collects additions and removals and produces a Set. The zero value
// is ready to use. A Builder is not safe for concurrent use, the Sets it
// returns are.
//
// Operations apply in call order: a range removed and then added again is in
// the result.
type Builder[T any, O Order[T]] struct {
	in  []Range[T, O]
	out []Range[T, O]
}

// AddRange adds all values in r to b.
func (b *Builder[T, O]) AddRange(r Range[T, O]) {
	if len(b.out) > 0 {
		b.normalize()
	}
	b.in = append(b.in, r)
}

// AddValue adds v to b.
func (b *Builder[T, O]) AddValue(v T) {
	b.AddRange(Point[T, O](v))
}

// RemoveRange removes all values in r from b.
func (b *Builder[T, O]) RemoveRange(r Range[T, O]) {
	b.out = append(b.out, r)
}

// RemoveValue removes v from b.
func (b *Builder[T, O]) RemoveValue(v T) {
	b.RemoveRange(Point[T, O](v))
}

// AddSet adds all values in s to b.
func (b *Builder[T, O]) AddSet(s Set[T, O]) {
	for _, r := range s.rr {
		b.AddRange(r)
	}
}

// RemoveSet removes all values in s from b.
func (b *Builder[T, O]) RemoveSet(s Set[T, O]) {
	b.out = append(b.out, s.rr...)
}

// normalize folds the pending removals into b.in, leaving b.out empty.
func (b *Builder[T, O]) normalize() {
	in := Difference(From(b.in...), From(b.out...), Unbounded[T, O]())
	b.in = in.Ranges()
	b.out = nil
}

// Set returns the values added and not removed since. b stays usable.
func (b *Builder[T, O]) Set() Set[T, O] {
	b.normalize()
	return From(b.in...)
}
