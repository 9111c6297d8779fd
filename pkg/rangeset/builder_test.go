package rangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	var b Builder[int, ints]
	assert.True(t, b.Set().IsEmpty())

	b.AddRange(co(0, 10))
	b.RemoveRange(co(3, 5))
	b.AddRange(co(4, 5))
	assert.Equal(t, "{[0,3), [4,10)}", b.Set().String())

	b.AddValue(3)
	assert.Equal(t, "{[0,10)}", b.Set().String())

	b.RemoveValue(0)
	b.RemoveValue(9)
	assert.Equal(t, "{[1,9)}", b.Set().String())
}

func TestBuilderSets(t *testing.T) {
	var b Builder[int, ints]
	b.AddSet(From(co(0, 5), co(10, 15)))
	b.RemoveSet(From(co(2, 3), co(12, 20)))
	b.AddSet(From(co(20, 25)))
	assert.Equal(t, "{[0,2), [3,5), [10,12), [20,25)}", b.Set().String())
}

func TestBuilderRemoveWithoutAdd(t *testing.T) {
	var b Builder[float64, floats]
	b.RemoveRange(fco(0, 1))
	assert.True(t, b.Set().IsEmpty())

	b.AddRange(fcc(0, 2))
	b.RemoveValue(1)
	assert.Equal(t, "{[0,1), (1,2]}", b.Set().String())
}
