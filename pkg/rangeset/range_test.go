package rangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ints = Integer[int]
type floats = Float[float64]

func co(lo, hi int) IntRange { return ClosedOpen[int, ints](lo, hi) }
func cc(lo, hi int) IntRange { return Closed[int, ints](lo, hi) }
func oo(lo, hi int) IntRange { return Open[int, ints](lo, hi) }
func fco(lo, hi float64) FloatRange { return ClosedOpen[float64, floats](lo, hi) }
func fcc(lo, hi float64) FloatRange { return Closed[float64, floats](lo, hi) }
func foo(lo, hi float64) FloatRange { return Open[float64, floats](lo, hi) }

func TestRangeIsEmpty(t *testing.T) {
	cases := map[string]struct {
		r    IntRange
		f    FloatRange
		want bool
	}{
		"ClosedOpen":      {r: co(1, 3), f: fco(1, 3), want: false},
		"Point":           {r: cc(3, 3), f: fcc(3, 3), want: false},
		"EqualHalfOpen":   {r: co(3, 3), f: fco(3, 3), want: true},
		"Reversed":        {r: co(5, 1), f: fco(5, 1), want: true},
		"ReversedClosed":  {r: cc(5, 4), f: fcc(5, 4), want: true},
		"ZeroValue":       {r: IntRange{}, f: FloatRange{}, want: true},
		"UnboundedIsFull": {r: Unbounded[int, ints](), f: Unbounded[float64, floats](), want: false},
		"OpenEqual":       {r: oo(2, 2), f: foo(2, 2), want: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.IsEmpty(), "int %s", tc.r)
			assert.Equal(t, tc.want, tc.f.IsEmpty(), "float %s", tc.f)
		})
	}
}

func TestRangeIsEmptyDiscrete(t *testing.T) {
	// no integer lies strictly between 3 and 4, every real does
	assert.True(t, oo(3, 4).IsEmpty())
	assert.False(t, foo(3, 4).IsEmpty())

	assert.True(t, LessThan[uint8, Integer[uint8]](0).IsEmpty())
	assert.True(t, GreaterThan[uint8, Integer[uint8]](255).IsEmpty())
	assert.False(t, AtMost[uint8, Integer[uint8]](0).IsEmpty())
}

func TestRangeContains(t *testing.T) {
	cases := map[string]struct {
		r   FloatRange
		in  []float64
		out []float64
	}{
		"ClosedOpen": {r: fco(0, 3), in: []float64{0, 1.5, 2.999}, out: []float64{-0.1, 3, 4}},
		"Open":       {r: foo(0, 3), in: []float64{0.001, 2.5}, out: []float64{0, 3}},
		"Closed":     {r: fcc(0, 3), in: []float64{0, 3}, out: []float64{-1, 3.001}},
		"AtLeast":    {r: AtLeast[float64, floats](4), in: []float64{4, 1e300}, out: []float64{3.9}},
		"LessThan":   {r: LessThan[float64, floats](4), in: []float64{-1e300, 3.9}, out: []float64{4}},
		"Empty":      {r: fco(3, 1), out: []float64{1, 2, 3}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, v := range tc.in {
				assert.True(t, tc.r.Contains(v), "%s should contain %v", tc.r, v)
			}
			for _, v := range tc.out {
				assert.False(t, tc.r.Contains(v), "%s should not contain %v", tc.r, v)
			}
		})
	}
}

func TestRangeOverlapsAndAdjacency(t *testing.T) {
	cases := map[string]struct {
		a, b     FloatRange
		overlaps bool
		adjacent bool
	}{
		"Disjoint":          {a: fco(1, 3), b: fco(5, 7)},
		"Overlapping":       {a: fco(1, 5), b: fco(3, 8), overlaps: true},
		"Contained":         {a: fco(1, 10), b: fco(3, 4), overlaps: true},
		"TouchHalfOpen":     {a: fco(1, 3), b: fco(3, 5), adjacent: true},
		"TouchClosedOpen":   {a: fcc(1, 3), b: foo(3, 5), adjacent: true},
		"SharedClosedPoint": {a: fcc(1, 3), b: fcc(3, 5), overlaps: true},
		"GapOfOnePoint":     {a: fco(1, 3), b: foo(3, 5)},
		"EmptyNeverTouches": {a: fco(3, 3), b: fco(3, 5)},
		"UnboundedTouch":    {a: LessThan[float64, floats](3), b: AtLeast[float64, floats](3), adjacent: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
			assert.Equal(t, tc.adjacent, tc.a.IsAdjacentTo(tc.b))
			assert.Equal(t, tc.adjacent, tc.b.IsAdjacentTo(tc.a))
		})
	}
}

func TestRangeAdjacencyDiscrete(t *testing.T) {
	assert.True(t, cc(1, 3).IsAdjacentTo(cc(4, 6)))
	assert.True(t, co(1, 3).IsAdjacentTo(oo(2, 6)))
	assert.False(t, cc(1, 3).IsAdjacentTo(cc(5, 6)))
	assert.False(t, fcc(1, 3).IsAdjacentTo(fcc(4, 6)))
}

func TestRangeMerge(t *testing.T) {
	assert.Equal(t, "[1,8)", fco(1, 5).Merge(fco(3, 8)).String())
	assert.Equal(t, "(1,5]", foo(1, 3).Merge(fcc(3, 5)).String())
	assert.Equal(t, "[1,3)", fco(1, 3).Merge(fco(3, 1)).String())
	assert.Equal(t, "(,7)", LessThan[float64, floats](2).Merge(fco(1, 7)).String())
}

func TestRangeIntersect(t *testing.T) {
	assert.Equal(t, "[3,5)", fco(1, 5).Intersect(fco(3, 8)).String())
	assert.Equal(t, "[3,3]", fcc(1, 3).Intersect(fcc(3, 8)).String())
	assert.True(t, fco(1, 3).Intersect(fco(3, 8)).IsEmpty())
}

func TestRangeCompareLower(t *testing.T) {
	assert.Negative(t, fcc(1, 5).CompareLower(foo(1, 5)))
	assert.Positive(t, foo(1, 5).CompareLower(fcc(1, 5)))
	assert.Zero(t, fco(1, 5).CompareLower(fcc(1, 2)))
	assert.Negative(t, LessThan[float64, floats](-100).CompareLower(fco(-1e300, 0)))
	// (1,... and [2,... start at the same integer
	assert.Zero(t, oo(1, 5).CompareLower(co(2, 5)))
}

func TestRangeEqual(t *testing.T) {
	assert.True(t, cc(1, 2).Equal(co(1, 3)))
	assert.True(t, oo(0, 3).Equal(cc(1, 2)))
	assert.False(t, fcc(1, 2).Equal(fco(1, 3)))
	assert.True(t, co(3, 1).Equal(IntRange{}))
	assert.True(t, Closed[uint8, Integer[uint8]](0, 255).Equal(Unbounded[uint8, Integer[uint8]]()))
}

func TestRangeAccessors(t *testing.T) {
	r := OpenClosed[int, ints](1, 9)
	lo, ok := r.Low()
	assert.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.False(t, r.LowInclusive())
	hi, ok := r.High()
	assert.True(t, ok)
	assert.Equal(t, 9, hi)
	assert.True(t, r.HighInclusive())

	u := AtLeast[int, ints](4)
	_, ok = u.High()
	assert.False(t, ok)
	assert.True(t, u.HighUnbounded())
	assert.False(t, u.LowUnbounded())
}

func TestRangeFirstLast(t *testing.T) {
	v, ok := oo(1, 5).First()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = oo(1, 5).Last()
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	f, ok := fcc(1, 5).Last()
	assert.True(t, ok)
	assert.Equal(t, 5.0, f)
	_, ok = foo(1, 5).First()
	assert.False(t, ok)
	_, ok = LessThan[int, ints](3).First()
	assert.False(t, ok)
	_, ok = co(3, 3).First()
	assert.False(t, ok)
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[1,3)", co(1, 3).String())
	assert.Equal(t, "(1,3]", OpenClosed[int, ints](1, 3).String())
	assert.Equal(t, "(,3]", AtMost[int, ints](3).String())
	assert.Equal(t, "(2,)", GreaterThan[int, ints](2).String())
	assert.Equal(t, "(,)", Unbounded[int, ints]().String())
	assert.Equal(t, "empty", co(3, 1).String())
}
