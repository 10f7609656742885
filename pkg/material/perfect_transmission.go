package material

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// PerfectTransmission is a delta BSDF that always refracts through the
// interface by Snell's law, with no Fresnel reflect/refract choice — unlike
// Dielectric, which mixes both. It models a one-way transparent boundary
// (e.g. the inside face of a glass shell where the outer face already
// handled the reflectance split).
type PerfectTransmission struct {
	InternalIOR float64
	ExternalIOR float64
}

// NewPerfectTransmission creates a pure-refraction dielectric boundary.
func NewPerfectTransmission(internalIOR, externalIOR float64) *PerfectTransmission {
	return &PerfectTransmission{InternalIOR: internalIOR, ExternalIOR: externalIOR}
}

// Scatter refracts rayIn through the interface, attenuating by 1/|cosθ| to
// keep radiance (rather than importance) transport unbiased across the
// index-of-refraction change, matching a delta transmission lobe.
func (t *PerfectTransmission) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	unitDirection := rayIn.Direction.Normalize()
	outgoing := t.refract(unitDirection, hit)

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: outgoing},
		Attenuation: core.Vec3{X: 1, Y: 1, Z: 1}.Multiply(1.0 / math.Abs(outgoing.Dot(hit.Normal))),
		PDF:         0,
	}, true
}

func (t *PerfectTransmission) refract(unitDirection core.Vec3, hit core.HitRecord) core.Vec3 {
	var eta float64
	if hit.FrontFace {
		eta = t.ExternalIOR / t.InternalIOR
	} else {
		eta = t.InternalIOR / t.ExternalIOR
	}

	return refractVector(unitDirection, hit.Normal, eta)
}

// EvaluateBRDF is always 0: a delta lobe contributes nothing to a connection
// strategy that did not sample it.
func (t *PerfectTransmission) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF reports the delta lobe (density 0, isDelta true) unconditionally.
func (t *PerfectTransmission) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0, true
}
