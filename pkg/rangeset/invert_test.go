package rangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvert(t *testing.T) {
	d := co(0, 10)
	cases := map[string]struct {
		in     IntSet
		domain IntRange
		want   string
	}{
		"EmptyIsDomain":       {in: IntSet{}, domain: d, want: "{[0,10)}"},
		"CoversDomain":        {in: From(co(-5, 20)), domain: d, want: "{}"},
		"ExactlyDomain":       {in: From(d), domain: d, want: "{}"},
		"TouchingLow":         {in: From(co(0, 3)), domain: d, want: "{[3,10)}"},
		"TouchingHigh":        {in: From(co(7, 10)), domain: d, want: "{[0,7)}"},
		"Holes":               {in: From(co(1, 3), co(5, 7)), domain: d, want: "{[0,1), [3,5), [7,10)}"},
		"OutsideIgnored":      {in: From(co(-5, -1), co(20, 30)), domain: d, want: "{[0,10)}"},
		"ClippedAtBothEnds":   {in: From(co(-5, 2), co(8, 30)), domain: d, want: "{[2,8)}"},
		"EmptyDomain":         {in: From(co(1, 3)), domain: co(5, 5), want: "{}"},
		"GreaterThan":         {in: From(GreaterThan[int, ints](4)), domain: Unbounded[int, ints](), want: "{(,5)}"},
		"LessThan":            {in: From(LessThan[int, ints](4)), domain: Unbounded[int, ints](), want: "{[4,)}"},
		"EverythingUnbounded": {in: From(Unbounded[int, ints]()), domain: Unbounded[int, ints](), want: "{}"},
		"NothingUnbounded":    {in: IntSet{}, domain: Unbounded[int, ints](), want: "{(,)}"},
		"ClosedBounds":        {in: From(cc(2, 4)), domain: cc(0, 9), want: "{[0,2), [5,10)}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := Invert(tc.in, tc.domain)
			checkCanonical(t, got)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestInvertFloat(t *testing.T) {
	all := Unbounded[float64, floats]()
	cases := map[string]struct {
		in     FloatSet
		domain FloatRange
		want   string
	}{
		"Closed":         {in: From(fcc(1, 3)), domain: all, want: "{(,1), (3,)}"},
		"Open":           {in: From(foo(1, 3)), domain: all, want: "{(,1], [3,)}"},
		"PointHole":      {in: From(fco(1, 3), foo(3, 5)), domain: fcc(0, 6), want: "{[0,1), [3,3], [5,6]}"},
		"OpenDomain":     {in: From(fcc(0, 1)), domain: foo(0, 2), want: "{(1,2)}"},
		"OnlyBoundaries": {in: From(Point[float64, floats](0), Point[float64, floats](2)), domain: fcc(0, 2), want: "{(0,2)}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := Invert(tc.in, tc.domain)
			checkCanonical(t, got)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestInvertTwice(t *testing.T) {
	d := co(0, 10)
	a := From(co(-3, 2), co(4, 6), co(8, 12))
	assert.Equal(t, "{[0,2), [4,6), [8,10)}", Invert(Invert(a, d), d).String())

	all := Unbounded[int, ints]()
	assert.True(t, Invert(Invert(a, all), all).Equal(a))

	u := From(all)
	assert.True(t, Invert(u, all).IsEmpty())
	assert.True(t, Invert(Invert(u, all), all).IsAll())
}

func TestInvertBoundedType(t *testing.T) {
	type u8 = Integer[uint8]
	all := Unbounded[uint8, u8]()

	got := Invert(From(Closed[uint8, u8](0, 9)), all)
	assert.Equal(t, "{[10,)}", got.String())

	got = Invert(From(AtLeast[uint8, u8](10)), Closed[uint8, u8](0, 255))
	assert.Equal(t, "{[0,10)}", got.String())

	got = Invert(From(Closed[uint8, u8](0, 255)), all)
	assert.True(t, got.IsEmpty())

	got = Invert(From(Point[uint8, u8](255)), all)
	assert.Equal(t, "{(,255)}", got.String())
}

func TestInvertContains(t *testing.T) {
	s := From(LessThan[int, ints](4))
	assert.False(t, s.Contains(4))
	inv := s.Invert(Unbounded[int, ints]())
	assert.True(t, inv.Equal(From(AtLeast[int, ints](4))))
	assert.True(t, inv.Contains(4))
}
