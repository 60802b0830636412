package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	v := New(10)

	// Test initial state
	assert.False(t, v.Visited(1))
	assert.False(t, v.Visited(5))

	// Test Visit
	v.Visit(1)
	assert.True(t, v.Visited(1))
	assert.False(t, v.Visited(5))

	v.Visit(5)
	assert.True(t, v.Visited(1))
	assert.True(t, v.Visited(5))

	// Test Reset
	v.Reset()
	assert.False(t, v.Visited(1))
	assert.False(t, v.Visited(5))

	// Test Visit after Reset
	v.Visit(1)
	assert.True(t, v.Visited(1))
	assert.False(t, v.Visited(5))

	// Test Resize
	v.Visit(100) // Should trigger resize
	assert.True(t, v.Visited(100))
	assert.True(t, v.Visited(1))
}

func TestVisitedSet_Resize(t *testing.T) {
	v := New(2)
	v.Visit(1)
	assert.True(t, v.Visited(1))

	v.Visit(130) // Should grow
	assert.True(t, v.Visited(130))
	assert.True(t, v.Visited(1))
}

func TestVisitedSet_EnsureCapacityThenReuse(t *testing.T) {
	// Mirrors how LayerSearch reuses one VisitedSet across repeated calls
	// as the graph it searches grows between them.
	v := New(0)

	v.EnsureCapacity(4)
	v.Visit(3)
	assert.True(t, v.Visited(3))

	v.Reset()
	assert.False(t, v.Visited(3))

	v.EnsureCapacity(200)
	v.Visit(199)
	assert.True(t, v.Visited(199))
	assert.False(t, v.Visited(3), "Reset must have cleared state from the earlier, smaller search")
}
