package tile

import (
	"swath-tiler/internal/swath"
	"swath-tiler/pkg/grid"
)

// Stack is an ordered collection of tiles cut from one swath, stored as a
// flat (sample, band, height, width) array, with a parallel metadata list
// recording where each tile was cut. Meta[i] always describes tile i.
type Stack struct {
	Bands  int
	Height int
	Width  int

	Data []float32
	Meta []grid.Region
}

// newStack allocates an empty stack for tiles of the given shape.
func newStack(bands, height, width, capTiles int) *Stack {
	return &Stack{
		Bands:  bands,
		Height: height,
		Width:  width,
		Data:   make([]float32, 0, capTiles*bands*height*width),
		Meta:   make([]grid.Region, 0, capTiles),
	}
}

// Len returns the number of tiles in the stack.
func (st *Stack) Len() int { return len(st.Meta) }

// tileSize returns the number of elements in one tile.
func (st *Stack) tileSize() int { return st.Bands * st.Height * st.Width }

// Tile returns the flat (band, height, width) data of tile i. The slice
// aliases the stack's storage.
func (st *Stack) Tile(i int) []float32 {
	n := st.tileSize()
	return st.Data[i*n : (i+1)*n]
}

// At returns the value of tile i at (band, row, col) within the tile.
func (st *Stack) At(i, band, row, col int) float32 {
	return st.Tile(i)[(band*st.Height+row)*st.Width+col]
}

// append cuts the window g from every band of the swath and appends the
// resulting tile with its metadata.
func (st *Stack) append(s *swath.Swath, g grid.Region) {
	for b := 0; b < st.Bands; b++ {
		for r := g.Rows.Start; r < g.Rows.End; r++ {
			base := (b*s.Rows + r) * s.Cols
			st.Data = append(st.Data, s.Data[base+g.Cols.Start:base+g.Cols.End]...)
		}
	}
	st.Meta = append(st.Meta, g)
}
