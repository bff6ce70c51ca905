// Package swath provides the multi-band swath array type and its band layout.
package swath

import (
	"fmt"
	"math"

	"swath-tiler/pkg/grid"
)

// Swath is a 3-dimensional array of instrument data indexed as
// (band, row, column). Data is stored band-major, rows within a band
// row-major. Samplers treat a Swath as read-only.
type Swath struct {
	Bands int
	Rows  int
	Cols  int
	Name  string // source basename, used in diagnostics

	Data []float32
}

// New allocates a zero-filled swath with the given dimensions.
func New(bands, rows, cols int) *Swath {
	return &Swath{
		Bands: bands,
		Rows:  rows,
		Cols:  cols,
		Data:  make([]float32, bands*rows*cols),
	}
}

// FromData wraps an existing flat buffer. The buffer length must equal
// bands*rows*cols.
func FromData(bands, rows, cols int, data []float32) (*Swath, error) {
	if len(data) != bands*rows*cols {
		return nil, fmt.Errorf("swath data length %d does not match shape (%d, %d, %d)",
			len(data), bands, rows, cols)
	}
	return &Swath{Bands: bands, Rows: rows, Cols: cols, Data: data}, nil
}

// At returns the value at (band, row, col).
func (s *Swath) At(band, row, col int) float32 {
	return s.Data[(band*s.Rows+row)*s.Cols+col]
}

// Set stores a value at (band, row, col).
func (s *Swath) Set(band, row, col int, v float32) {
	s.Data[(band*s.Rows+row)*s.Cols+col] = v
}

// Band returns the flat row-major slice backing one band. The slice aliases
// the swath's storage.
func (s *Swath) Band(band int) []float32 {
	n := s.Rows * s.Cols
	return s.Data[band*n : (band+1)*n]
}

// Shape returns (bands, rows, cols).
func (s *Swath) Shape() (int, int, int) {
	return s.Bands, s.Rows, s.Cols
}

// BandLayout names the logical channels within a swath's band axis, replacing
// positional offsets with an explicit descriptor that every sampler receives.
type BandLayout struct {
	Radiance  grid.Range // calibrated instrument channels
	Visible   grid.Range // solar channels within Radiance; all-invalid means night
	Latitude  int
	Longitude int
	Products  grid.Range // derived L2 product channels
	CloudMask int        // boolean cloud flag band
	Labels    grid.Range // ground-truth label block
}

// Dimensions of a label-bearing swath. Balanced extraction is only defined
// for swaths of exactly this shape.
const (
	LabelledBands = 27
	LabelledRows  = 2030
	LabelledCols  = 1350
)

// LabelledLayout returns the band layout of a label-bearing swath:
// 13 radiance channels, latitude, longitude, 3 product channels, the cloud
// mask, and 8 label channels.
func LabelledLayout() BandLayout {
	return BandLayout{
		Radiance:  grid.NewRange(0, 13),
		Visible:   grid.NewRange(0, 2),
		Latitude:  13,
		Longitude: 14,
		Products:  grid.NewRange(15, 18),
		CloudMask: 18,
		Labels:    grid.NewRange(19, 27),
	}
}

// Completeness returns the fraction of elements that are not NaN.
func (s *Swath) Completeness() float64 {
	if len(s.Data) == 0 {
		return 1
	}
	valid := 0
	for _, v := range s.Data {
		if !math.IsNaN(float64(v)) {
			valid++
		}
	}
	return float64(valid) / float64(len(s.Data))
}

// CheckCompleteness scans for missing-value contamination and warns when any
// is found. It never blocks extraction; the returned fraction is the share of
// valid elements.
func CheckCompleteness(s *Swath) float64 {
	frac := s.Completeness()
	if frac < 1 {
		fmt.Printf("[Swath] WARNING: %s gap check failed, %.2f%% complete\n", s.name(), frac*100)
	}
	return frac
}

func (s *Swath) name() string {
	if s.Name == "" {
		return "swath"
	}
	return s.Name
}
