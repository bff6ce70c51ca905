package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := NewRange(3, 7)

	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.False(t, r.Contains(2))

	assert.Equal(t, 0, NewRange(5, 5).Len())
	assert.Equal(t, 0, NewRange(5, 2).Len())
}

func TestRegion(t *testing.T) {
	g := NewRegion(10, 13, 20, 24)

	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, NewRange(10, 13), g.Rows)
	assert.Equal(t, NewRange(20, 24), g.Cols)
}
