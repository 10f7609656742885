package core

import (
	"math"
	"math/rand"
)

// PiecewiseConstant draws an index with probability proportional to a set
// of non-negative weights. Used by light selection (power-proportional) and
// by any other discrete choice the estimators need to make unbiasedly.
type PiecewiseConstant struct {
	weights []float64
	cdf     []float64
	total   float64
}

// NewPiecewiseConstant builds the sampler from the supplied weights. Weights
// must be non-negative and sum to a positive value.
func NewPiecewiseConstant(weights []float64) PiecewiseConstant {
	cdf := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		sum += w
		cdf[i] = sum
	}
	return PiecewiseConstant{weights: weights, cdf: cdf, total: sum}
}

// Sample returns an index i with probability weights[i]/total, and the
// corresponding discrete PDF weights[i]/total.
func (pc PiecewiseConstant) Sample(u float64) (index int, pdf float64) {
	if pc.total <= 0 || len(pc.weights) == 0 {
		return 0, 0
	}

	target := u * pc.total
	lo, hi := 0, len(pc.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if pc.cdf[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, pc.PDF(lo)
}

// PDF returns the selection probability of a given index.
func (pc PiecewiseConstant) PDF(index int) float64 {
	if pc.total <= 0 || index < 0 || index >= len(pc.weights) {
		return 0
	}
	return pc.weights[index] / pc.total
}

// Len returns the number of entries in the distribution.
func (pc PiecewiseConstant) Len() int { return len(pc.weights) }

// Total returns the sum of the supplied weights.
func (pc PiecewiseConstant) Total() float64 { return pc.total }

// BoundedSample is the result of a direction sampled within an angular cone:
// the direction itself, and the area-fraction of the unit hemisphere the
// cone covers (callers divide their unrestricted density by this to get the
// conditional density under the bounded distribution).
type BoundedSample struct {
	Direction Vec3
	Adjust    float64
}

// SampleCosineHemisphereBounded draws a cosine-weighted direction restricted
// to the cone described by bound, within the local frame whose +Y axis is
// the shading normal. If the bound spans the whole hemisphere the result is
// an ordinary cosine-hemisphere sample with Adjust = 1.
func SampleCosineHemisphereBounded(random *rand.Rand, bound AngularBound) BoundedSample {
	phiRange := bound.PhiSup - bound.PhiInf
	cosThetaSup := math.Cos(bound.ThetaSup)
	cosThetaInf := math.Cos(bound.ThetaInf)

	// Cosine-weighted sampling restricted to [thetaInf, thetaSup] draws
	// cos(theta)^2 uniformly between cos(thetaSup)^2 and cos(thetaInf)^2.
	c2Sup := cosThetaSup * cosThetaSup
	c2Inf := cosThetaInf * cosThetaInf

	u1 := random.Float64()
	u2 := random.Float64()

	cos2Theta := c2Inf + u1*(c2Sup-c2Inf)
	cosTheta := math.Sqrt(math.Max(0, cos2Theta))
	sinTheta := math.Sqrt(math.Max(0, 1-cos2Theta))
	phi := bound.PhiInf + u2*phiRange

	dir := Vec3{
		X: sinTheta * math.Cos(phi),
		Y: cosTheta,
		Z: sinTheta * math.Sin(phi),
	}

	// Adjust is the fraction of the cosine-weighted hemisphere's total
	// probability mass that falls within the bound: it is the ratio of the
	// bounded cos^2 range to the full [0,1] range, scaled by the azimuthal
	// fraction of the full 2*pi sweep.
	fullPhiRange := 2 * math.Pi
	adjust := (phiRange / fullPhiRange) * (c2Inf - c2Sup)

	return BoundedSample{Direction: dir, Adjust: adjust}
}
