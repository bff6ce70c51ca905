// Package interp repairs missing values in swath bands by morphological
// diffusion from the valid neighbourhood.
package interp

import (
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"gocv.io/x/gocv"

	"swath-tiler/internal/swath"
	"swath-tiler/pkg/grid"
)

// AllInvalid reports whether every element of the given band range is NaN.
// Visible channels that are entirely invalid mean the swath was captured at
// night.
func AllInvalid(s *swath.Swath, bands grid.Range) bool {
	for b := bands.Start; b < bands.End; b++ {
		for _, v := range s.Band(b) {
			if !math.IsNaN(float64(v)) {
				return false
			}
		}
	}
	return true
}

// FillBands repairs the NaN pixels of every band in [from, to), in place.
// Bands are processed in parallel. A band with no valid pixels at all cannot
// be repaired and fails the whole call.
func FillBands(s *swath.Swath, from, to int) error {
	numWorkers := runtime.NumCPU()
	if numWorkers > to-from {
		numWorkers = to - from
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	jobs := make(chan int)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				if err := fillBand(s.Band(b), s.Rows, s.Cols); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("band %d: %w", b, err)
					}
					mu.Unlock()
				}
			}
		}()
	}
	for b := from; b < to; b++ {
		jobs <- b
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// fillBand repairs the NaN pixels of one row-major band. The band is
// normalised to 8-bit over its valid value range, grown outward from the
// valid pixels by repeated 3x3 dilation, and only the previously-missing
// pixels are written back.
func fillBand(band []float32, rows, cols int) error {
	lo, hi, missing := validRange(band)
	if missing == 0 {
		return nil
	}
	if missing == len(band) {
		return fmt.Errorf("no valid pixels to interpolate from")
	}

	// Degenerate range: every valid pixel has the same value.
	if hi == lo {
		for i, v := range band {
			if math.IsNaN(float64(v)) {
				band[i] = lo
			}
		}
		return nil
	}

	src := make([]byte, len(band))
	valid := make([]byte, len(band))
	scale := 255 / float64(hi-lo)
	for i, v := range band {
		if math.IsNaN(float64(v)) {
			continue
		}
		src[i] = byte(float64(v-lo) * scale)
		valid[i] = 255
	}

	filled, err := growFromValid(src, valid, rows, cols)
	if err != nil {
		return err
	}

	for i := range band {
		if valid[i] == 0 {
			band[i] = lo + float32(float64(filled[i])/scale)
		}
	}

	return nil
}

// growFromValid dilates the valid region one ring per pass until every pixel
// is covered, assigning each gap pixel the maximum valid value in its grown
// neighbourhood. src and valid are row-major 8-bit planes; valid is 255 where
// the source pixel is real.
func growFromValid(src, valid []byte, rows, cols int) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)
	covered := make([]byte, len(valid))
	copy(covered, valid)

	remaining := 0
	for _, v := range covered {
		if v == 0 {
			remaining++
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	// Each pass reaches one more pixel ring, so rows+cols passes always
	// suffice.
	for pass := 0; pass < rows+cols && remaining > 0; pass++ {
		srcMat, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC1, out)
		if err != nil {
			return nil, fmt.Errorf("build value mat: %w", err)
		}
		covMat, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC1, covered)
		if err != nil {
			srcMat.Close()
			return nil, fmt.Errorf("build coverage mat: %w", err)
		}

		grownVal := gocv.NewMat()
		grownCov := gocv.NewMat()
		gocv.Dilate(srcMat, &grownVal, kernel)
		gocv.Dilate(covMat, &grownCov, kernel)

		valBytes := grownVal.ToBytes()
		covBytes := grownCov.ToBytes()

		for i := range covered {
			if covered[i] == 0 && covBytes[i] != 0 {
				out[i] = valBytes[i]
				covered[i] = 255
				remaining--
			}
		}

		grownCov.Close()
		grownVal.Close()
		covMat.Close()
		srcMat.Close()
	}

	if remaining > 0 {
		return nil, fmt.Errorf("%d pixels unreachable after diffusion", remaining)
	}
	return out, nil
}

// validRange returns the min and max over non-NaN values plus the NaN count.
func validRange(band []float32) (lo, hi float32, missing int) {
	first := true
	for _, v := range band {
		if math.IsNaN(float64(v)) {
			missing++
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, missing
}
