// Package grid provides integer range and region types used for tile metadata.
package grid

// Range is a half-open interval [Start, End) of pixel indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewRange creates a new Range.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains returns true if i lies inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Region identifies a rectangular window cut from a swath: a row range and a
// column range, both half-open.
type Region struct {
	Rows Range `json:"rows"`
	Cols Range `json:"cols"`
}

// NewRegion creates a Region from row and column bounds.
func NewRegion(rowStart, rowEnd, colStart, colEnd int) Region {
	return Region{
		Rows: Range{Start: rowStart, End: rowEnd},
		Cols: Range{Start: colStart, End: colEnd},
	}
}

// Height returns the number of rows in the region.
func (g Region) Height() int { return g.Rows.Len() }

// Width returns the number of columns in the region.
func (g Region) Width() int { return g.Cols.Len() }
