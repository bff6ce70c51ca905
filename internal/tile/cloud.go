package tile

import (
	"fmt"
	"math/rand"

	"swath-tiler/internal/swath"
	"swath-tiler/pkg/grid"
)

// CloudSample is the result of cloud-masked random sampling. Requested and
// Available make a shortfall visible to the caller: when fewer cloudy
// candidates exist than requested, the sample is simply smaller.
type CloudSample struct {
	*Stack
	Requested int
	Available int
}

// Short reports whether the sample came up smaller than requested.
func (c *CloudSample) Short() bool { return c.Len() < c.Requested }

type center struct {
	row, col int
}

// ExtractCloudRandom restricts the strided candidate grid to positions whose
// cloud-mask band is truthy, shuffles them, and extracts tiles at the first n
// survivors. A shortfall is not an error; the result records the requested
// and available counts.
func ExtractCloudRandom(s *swath.Swath, layout swath.BandLayout, n, tileSize, stride int, rng *rand.Rand) *CloudSample {
	lo, hi := Offsets(tileSize)
	rowCenters, colCenters := gridCenters(s.Rows, s.Cols, lo, stride)

	var cloudy []center
	for _, row := range rowCenters {
		for _, col := range colCenters {
			if s.At(layout.CloudMask, row, col) != 0 {
				cloudy = append(cloudy, center{row: row, col: col})
			}
		}
	}

	rng.Shuffle(len(cloudy), func(i, j int) {
		cloudy[i], cloudy[j] = cloudy[j], cloudy[i]
	})

	chosen := cloudy
	if n < len(chosen) {
		chosen = chosen[:n]
	}
	if len(chosen) < n {
		fmt.Printf("[Tiles] WARNING: only %d cloudy candidates for %d requested tiles\n", len(chosen), n)
	}

	st := newStack(s.Bands, lo+hi+1, lo+hi+1, len(chosen))
	for _, c := range chosen {
		st.append(s, grid.Region{Rows: Window(c.row, lo, hi), Cols: Window(c.col, lo, hi)})
	}

	return &CloudSample{Stack: st, Requested: n, Available: len(cloudy)}
}
