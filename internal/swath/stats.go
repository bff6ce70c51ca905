package swath

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BandStats summarises one band of a swath, ignoring missing values.
type BandStats struct {
	Band    int
	Valid   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Stats computes per-band summary statistics. Bands with no valid elements
// report NaN for the moments and extrema.
func Stats(s *Swath) []BandStats {
	out := make([]BandStats, s.Bands)
	valid := make([]float64, 0, s.Rows*s.Cols)

	for b := 0; b < s.Bands; b++ {
		valid = valid[:0]
		for _, v := range s.Band(b) {
			f := float64(v)
			if !math.IsNaN(f) {
				valid = append(valid, f)
			}
		}

		bs := BandStats{
			Band:    b,
			Valid:   len(valid),
			Missing: s.Rows*s.Cols - len(valid),
			Mean:    math.NaN(),
			StdDev:  math.NaN(),
			Min:     math.NaN(),
			Max:     math.NaN(),
		}
		if len(valid) > 0 {
			bs.Mean = stat.Mean(valid, nil)
			bs.StdDev = stat.StdDev(valid, nil)
			bs.Min = floats.Min(valid)
			bs.Max = floats.Max(valid)
		}
		out[b] = bs
	}

	return out
}
