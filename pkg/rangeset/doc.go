// Package rangeset implements set algebra over ranges of an ordered type.
//
// A Set holds an arbitrary subset of the values of T as the shortest sorted
// list of disjoint, non-adjacent ranges. Only two operations build sets:
// Union, which merges any collection of ranges into that form, and Invert,
// which returns what a set does not cover within a domain. Intersection,
// Difference and SymmetricDifference are written in terms of those two.
//
// The order of T is a type parameter, O. Orders that implement Discrete let
// the package merge [1,3] and [4,6] into [1,6]; for dense orders such as
// Float only ranges whose boundaries touch, like [1,3) and [3,6), merge.
// Sets over a discrete order store finite bounds half open where the type
// allows it, so [1,2] is kept as [1,3).
//
//	a := rangeset.From(
//		rangeset.ClosedOpen[int, rangeset.Integer[int]](1, 3),
//		rangeset.ClosedOpen[int, rangeset.Integer[int]](5, 7),
//	)
//	d := rangeset.ClosedOpen[int, rangeset.Integer[int]](0, 10)
//	fmt.Println(a.Invert(d)) // {[0,1), [3,5), [7,10)}
package rangeset
