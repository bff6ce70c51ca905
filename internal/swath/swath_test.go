package swath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtSetBand(t *testing.T) {
	s := New(2, 3, 4)
	s.Set(1, 2, 3, 7.5)

	assert.Equal(t, float32(7.5), s.At(1, 2, 3))

	band := s.Band(1)
	require.Len(t, band, 12)
	assert.Equal(t, float32(7.5), band[2*4+3])

	b, r, c := s.Shape()
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
}

func TestFromData(t *testing.T) {
	data := make([]float32, 24)
	s, err := FromData(2, 3, 4, data)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Bands)

	_, err = FromData(2, 3, 5, data)
	require.Error(t, err)
}

func TestCompleteness(t *testing.T) {
	s := New(1, 2, 2)
	assert.Equal(t, 1.0, s.Completeness())

	s.Set(0, 0, 0, float32(math.NaN()))
	assert.InDelta(t, 0.75, s.Completeness(), 1e-12)
	assert.InDelta(t, 0.75, CheckCompleteness(s), 1e-12)
}

func TestLabelledLayout(t *testing.T) {
	l := LabelledLayout()

	assert.Equal(t, 13, l.Radiance.Len())
	assert.Equal(t, 3, l.Products.Len())
	assert.Equal(t, 8, l.Labels.Len())
	assert.Equal(t, LabelledBands, l.Labels.End)

	// The mask sits 9 bands from the end, the label block fills the last 8.
	assert.Equal(t, LabelledBands-9, l.CloudMask)
	assert.Equal(t, LabelledBands-8, l.Labels.Start)
}

func TestStats(t *testing.T) {
	s := New(2, 1, 4)
	for i, v := range []float32{1, 2, 3, 4} {
		s.Set(0, 0, i, v)
	}
	s.Set(1, 0, 0, float32(math.NaN()))
	s.Set(1, 0, 1, 10)
	s.Set(1, 0, 2, 10)
	s.Set(1, 0, 3, 10)

	stats := Stats(s)
	require.Len(t, stats, 2)

	assert.Equal(t, 4, stats[0].Valid)
	assert.Equal(t, 0, stats[0].Missing)
	assert.InDelta(t, 2.5, stats[0].Mean, 1e-9)
	assert.InDelta(t, 1.0, stats[0].Min, 1e-9)
	assert.InDelta(t, 4.0, stats[0].Max, 1e-9)

	assert.Equal(t, 3, stats[1].Valid)
	assert.Equal(t, 1, stats[1].Missing)
	assert.InDelta(t, 10.0, stats[1].Mean, 1e-9)
	assert.InDelta(t, 0.0, stats[1].StdDev, 1e-9)
}

func TestStatsEmptyBand(t *testing.T) {
	s := New(1, 1, 2)
	s.Set(0, 0, 0, float32(math.NaN()))
	s.Set(0, 0, 1, float32(math.NaN()))

	stats := Stats(s)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Valid)
	assert.True(t, math.IsNaN(stats[0].Mean))
	assert.True(t, math.IsNaN(stats[0].Min))
}
