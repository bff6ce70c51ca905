package tile

import (
	"math/rand"

	"swath-tiler/internal/swath"
	"swath-tiler/pkg/grid"
)

// halfRanges returns the candidate column ranges on either side of the
// mid-swath exclusion band. The vertical mid-line of the swath is reserved
// for ground-truth alignment, so no tile centre may come within lo+1 columns
// of it; the same clearance keeps windows off the swath edges.
func halfRanges(cols, lo int) (left, right grid.Range) {
	mid := cols / 2
	left = grid.NewRange(lo+1, mid-(lo+1))
	right = grid.NewRange(mid+(lo+1), cols-(lo+1))
	return left, right
}

// arange enumerates r.Start, r.Start+step, ... up to but excluding r.End.
func arange(r grid.Range, step int) []int {
	var out []int
	for v := r.Start; v < r.End; v += step {
		out = append(out, v)
	}
	return out
}

// gridCenters builds the deterministic candidate grid shared by the strided
// and cloud-masked samplers: row centres stepped down the swath and column
// centres on both sides of the exclusion band, each stepped by stride.
func gridCenters(rows, cols, lo, stride int) (rowCenters, colCenters []int) {
	rowCenters = arange(grid.NewRange(lo+1, rows-(lo+1)), stride)
	left, right := halfRanges(cols, lo)
	colCenters = append(arange(left, stride), arange(right, stride)...)
	return rowCenters, colCenters
}

// ExtractRandom samples one tile per valid row: for each row centre the
// sampler picks the left or right half of the swath at random, then a uniform
// column within it. Column choices are independent across rows. Rows within
// lo+1 of either edge are skipped.
func ExtractRandom(s *swath.Swath, tileSize int, rng *rand.Rand) *Stack {
	swath.CheckCompleteness(s)

	lo, hi := Offsets(tileSize)
	left, right := halfRanges(s.Cols, lo)

	st := newStack(s.Bands, lo+hi+1, lo+hi+1, s.Rows)
	for row := lo + 1; row < s.Rows-(lo+1); row++ {
		half := left
		if rng.Intn(2) == 1 {
			half = right
		}
		col := half.Start + rng.Intn(half.Len())

		st.append(s, grid.Region{Rows: Window(row, lo, hi), Cols: Window(col, lo, hi)})
	}
	return st
}

// ExtractStrided samples the full Cartesian product of stride-stepped row and
// column centres in row-major order. Output is deterministic for fixed
// inputs.
func ExtractStrided(s *swath.Swath, tileSize, stride int) *Stack {
	swath.CheckCompleteness(s)

	lo, hi := Offsets(tileSize)
	rowCenters, colCenters := gridCenters(s.Rows, s.Cols, lo, stride)

	st := newStack(s.Bands, lo+hi+1, lo+hi+1, len(rowCenters)*len(colCenters))
	for _, row := range rowCenters {
		for _, col := range colCenters {
			st.append(s, grid.Region{Rows: Window(row, lo, hi), Cols: Window(col, lo, hi)})
		}
	}
	return st
}
