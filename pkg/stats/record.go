// Package stats records per-frame progress measurements for a progressive
// render: the sample count reached, wall-clock timing, and (when a
// reference image is available) the accumulated error against it. These
// records are what the `time`/`errors` CLI subcommands read back out of a
// rendered image's metadata.
package stats

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Record is one entry in a frame's progress log: how many samples per
// pixel had been taken, how long the frame that produced this snapshot
// took, and (optionally) the image's current error against a reference.
type Record struct {
	SampleIndex    int
	ClockTime      time.Duration
	FrameDuration  time.Duration
	RMSError       float64
	AbsError       float64
	NumericErrors  uint64
	HasError       bool
}

// Counters tracks the numerical-error discard count described in spec.md
// §7 (Numerical errors discard their contribution and increment a counter,
// never panicking or propagating). It is safe to share across goroutines
// via atomic.Uint64 embedding at the call site; Counters itself holds the
// already-summed value for a completed frame.
type Counters struct {
	NumericErrors uint64
}

// RunID is a per-render identifier stamped into a render's persisted
// metadata (see pkg/imageio), so that snapshots and partial outputs from
// the same render can be correlated even after being merged or renamed.
func RunID() string {
	return uuid.NewString()
}

// AggregateError computes the RMS and mean-absolute per-pixel error of an
// image against a reference, both flattened to per-channel float64 slices
// by the caller (pkg/imageio holds the pixel storage; this package only
// aggregates numbers, so it has no dependency on image layout).
func AggregateError(image, reference []float64) (rms, abs float64) {
	if len(image) == 0 || len(image) != len(reference) {
		return 0, 0
	}

	diffs := make([]float64, len(image))
	absDiffs := make([]float64, len(image))
	for i := range image {
		d := image[i] - reference[i]
		diffs[i] = d * d
		absDiffs[i] = mathAbs(d)
	}

	meanSq := stat.Mean(diffs, nil)
	meanAbs := stat.Mean(absDiffs, nil)

	return math.Sqrt(meanSq), meanAbs
}

func mathAbs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
