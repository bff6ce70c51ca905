package tile

import (
	"errors"
	"fmt"
	"math/rand"

	"swath-tiler/internal/swath"
	"swath-tiler/pkg/grid"
)

// ErrLabelShape reports a swath whose shape does not match the label-bearing
// layout. Such swaths carry no aligned ground truth and must be quarantined
// by the caller, not retried.
var ErrLabelShape = errors.New("swath shape does not match label-bearing layout")

// ExtractLabels cuts one tile at every position with at least one positive
// label channel and a truthy cloud-mask flag, scanning in row-major order.
// Positions within lo of the top edge or hi of the bottom edge are skipped;
// the column axis needs no guard because label positions ride the mid-swath
// ground track. The result may be empty.
func ExtractLabels(s *swath.Swath, layout swath.BandLayout, tileSize int) *Stack {
	lo, hi := Offsets(tileSize)

	st := newStack(s.Bands, lo+hi+1, lo+hi+1, 0)
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			if s.At(layout.CloudMask, row, col) == 0 {
				continue
			}
			var sum float32
			for b := layout.Labels.Start; b < layout.Labels.End; b++ {
				sum += s.At(b, row, col)
			}
			if sum <= 0 {
				continue
			}
			if row-lo < 0 || row+hi+1 > s.Rows {
				continue
			}
			st.append(s, grid.Region{Rows: Window(row, lo, hi), Cols: Window(col, lo, hi)})
		}
	}
	return st
}

// BalancedSet pairs a labelled tile stack with an equal-sized (or smaller,
// when the cloudy pool runs out) unlabelled stack drawn from cloudy
// positions.
type BalancedSet struct {
	Label    *Stack
	NonLabel *CloudSample
}

// ExtractBalanced produces a class-balanced pair of tile sets from a
// label-bearing swath: every qualifying label position, plus an equal count
// of cloud-restricted random negatives. The swath shape must be exactly
// (LabelledBands, LabelledRows, LabelledCols).
func ExtractBalanced(s *swath.Swath, layout swath.BandLayout, tileSize, stride int, rng *rand.Rand) (*BalancedSet, error) {
	if s.Bands != swath.LabelledBands || s.Rows != swath.LabelledRows || s.Cols != swath.LabelledCols {
		return nil, fmt.Errorf("%w: got (%d, %d, %d), want (%d, %d, %d)",
			ErrLabelShape, s.Bands, s.Rows, s.Cols,
			swath.LabelledBands, swath.LabelledRows, swath.LabelledCols)
	}

	label := ExtractLabels(s, layout, tileSize)
	nonLabel := ExtractCloudRandom(s, layout, label.Len(), tileSize, stride, rng)

	return &BalancedSet{Label: label, NonLabel: nonLabel}, nil
}
