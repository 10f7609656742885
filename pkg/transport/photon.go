package transport

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// LightPhoton is a light-subpath vertex stored for the merging (VCM/UPG)
// estimator's spatial index (see pkg/spatial), grounded on the scatter loop
// of original_source/PhotonMapping.cpp's _scatterPhotons: each non-specular
// bounce of a light subpath is recorded as a photon carrying its incoming
// direction and throughput, plus the a/A partial sums needed to fold the
// merge strategy into the same MIS weight as the connection strategies.
type LightPhoton struct {
	Point      core.Vec3
	Normal     core.Vec3
	Omega      core.Vec3 // direction the photon arrived from
	Throughput core.Vec3
	Specular   float64
	A          float64
	a          float64
}

// Position satisfies pkg/spatial.Record.
func (p LightPhoton) Position() core.Vec3 { return p.Point }

// NewLightPhoton records a light vertex as a gatherable photon.
func NewLightPhoton(v LightVertex) LightPhoton {
	return LightPhoton{
		Point:      v.Surface.Position,
		Normal:     v.Surface.Normal,
		Omega:      v.Omega,
		Throughput: v.Throughput,
		Specular:   v.Specular,
		A:          v.A,
		a:          v.a,
	}
}

// MergeContribution evaluates one photon's contribution to the merge
// (vertex-merging) strategy at an eye vertex, combining it into the same
// incremental MIS weight the connection strategies use. radius is the
// gather radius in effect for this pass (spec.md §4.8's shrinking-radius
// schedule is applied by the caller before invoking this per-photon).
//
// numPhotons is the total photon count this pass's density is normalized
// against (1/(numPhotons*pi*radius^2) is the planar kernel density, per
// spec.md §4.6/§4.8). eyeBSDFThroughput/eyeBSDFDensity/eyeBSDFDensityRev are
// the eye BSDF evaluated toward the photon's incoming direction.
func MergeContribution(
	eye EyeVertex,
	photon LightPhoton,
	eyeBSDFThroughput core.Vec3,
	eyeBSDFDensity, eyeBSDFDensityRev float64,
	radius float64,
	numPhotons float64,
	beta BetaFn,
) core.Vec3 {
	kernelDensity := 1.0 / (numPhotons * math.Pi * radius * radius)

	// Bp/Dp mirror Ap/Cp from ConnectVertices, but the merge strategy's own
	// density (kernelDensity, a solid-angle-free areal density) replaces
	// the shadow-ray connection's geometric term.
	Bp := (photon.A*beta.Beta(eyeBSDFDensityRev) + photon.a*(1-photon.Specular)) *
		beta.Beta(kernelDensity)
	Dp := (eye.C*beta.Beta(eyeBSDFDensity) + eye.c*(1-eye.Specular)) *
		beta.Beta(kernelDensity)
	weightInv := Bp + Dp + 1.0

	return photon.Throughput.
		MultiplyVec(eyeBSDFThroughput).
		MultiplyVec(eye.Throughput).
		Multiply(kernelDensity / weightInv)
}
