// Package transport implements the vertex/edge model and the incremental
// multiple-importance-sampling recurrences the VCM/UPG estimator uses to
// combine path-tracing, light-tracing, bidirectional-connection and
// vertex-merging strategies into a single unbiased weight.
//
// The recurrences here carry partial sums (a/A on the light subpath, c/C on
// the eye subpath) forward one vertex at a time, rather than recomputing a
// full ratio of sampling densities at connection time. Both are valid MIS
// formulations; this one matches the BPT.cpp/Beta.hpp style of the renderer
// this package's math is grounded on.
package transport

import "math"

// BetaFn is the weighting exponent applied to every sampling-strategy
// probability before it is summed into a combined MIS weight. beta=0 gives
// the balance heuristic, beta=1 the "ordinary" heuristic, beta=2 the power
// heuristic (Veach's recommendation), and any other exponent is a valid
// intermediate strategy.
type BetaFn struct {
	exponent float64
	name     string
}

// Beta raises x to the strategy's exponent.
func (b BetaFn) Beta(x float64) float64 {
	switch b.exponent {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	default:
		return math.Pow(x, b.exponent)
	}
}

// Name identifies the strategy for CLI/log output.
func (b BetaFn) Name() string { return b.name }

// BalanceBeta is the balance heuristic (beta=0): every strategy probability
// contributes with weight 1, so the combined weight is just a count.
func BalanceBeta() BetaFn { return BetaFn{exponent: 0, name: "balance"} }

// OrdinaryBeta is the beta=1 heuristic: strategies are weighted linearly by
// probability.
func OrdinaryBeta() BetaFn { return BetaFn{exponent: 1, name: "ordinary"} }

// PowerBeta is Veach's power heuristic (beta=2).
func PowerBeta() BetaFn { return BetaFn{exponent: 2, name: "power"} }

// VariableBeta builds a strategy with an arbitrary exponent, selected at
// runtime via the --beta CLI flag.
func VariableBeta(exponent float64) BetaFn {
	return BetaFn{exponent: exponent, name: "variable"}
}
