package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_DropsOldest(t *testing.T) {
	r := NewRing[int](100)
	for i := 0; i < 150; i++ {
		r.Push(i)
	}
	items := r.Items()
	assert.Equal(t, 100, r.Len())
	assert.Len(t, items, 100)
	assert.Equal(t, 50, items[0])
	assert.Equal(t, 149, items[99])
	assert.Equal(t, []int{147, 148, 149}, r.Last(3))
}

func TestRing_Partial(t *testing.T) {
	r := NewRing[string](3)
	assert.Empty(t, r.Items())
	r.Push("a")
	r.Push("b")
	assert.Equal(t, []string{"a", "b"}, r.Items())
	assert.Equal(t, []string{"a", "b"}, r.Last(10))
	assert.Empty(t, r.Last(-1))
}

func TestRing_MinimumCapacity(t *testing.T) {
	r := NewRing[int](0)
	r.Push(1)
	r.Push(2)
	assert.Equal(t, 1, r.Cap())
	assert.Equal(t, []int{2}, r.Items())
}

func TestRing_ItemsIsACopy(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	items := r.Items()
	items[0] = 99
	assert.Equal(t, []int{1}, r.Items())
}
