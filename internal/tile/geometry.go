// Package tile implements tile sampling from multi-band swath arrays: the
// window geometry, the uniform random and strided grid samplers, the
// cloud-masked random sampler, and label-driven balanced extraction.
package tile

import "swath-tiler/pkg/grid"

// Offsets returns the pixel offsets (lo, hi) for a tile of the given size.
// A tile centred at pixel p covers the half-open range [p-lo, p+hi+1) on each
// axis, so the window is symmetric for odd sizes and one pixel heavier on the
// high side for even sizes.
func Offsets(tileSize int) (lo, hi int) {
	lo = tileSize / 2
	hi = lo
	if tileSize%2 == 0 {
		hi = lo + 1
	}
	return lo, hi
}

// Window returns the half-open range covered by a tile centred at p.
func Window(p, lo, hi int) grid.Range {
	return grid.NewRange(p-lo, p+hi+1)
}
