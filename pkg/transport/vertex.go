package transport

import "github.com/ciechowoj/haste-go/pkg/core"

// LightVertex is one node of a light subpath traced from an emitter toward
// the scene. Throughput already divides out the sampling density used to
// reach this vertex; a/A are the incremental light-side MIS partial sums
// from spec.md §4.8 ("a" weighs the immediately-preceding strategy, "A"
// accumulates every strategy before that one).
type LightVertex struct {
	Surface     core.SurfacePoint
	Omega       core.Vec3 // direction the path arrived from, pointing away from Surface
	Throughput  core.Vec3
	Specular    float64 // 1 for a purely specular scatter at this vertex, 0 otherwise
	A           float64
	a           float64
}

// a/A are unexported on LightVertex/EyeVertex deliberately: callers build
// the next vertex through NextLightVertex/NextEyeVertex, which is the only
// place the recurrence should run, so the fields are accessed via these
// small getters instead of being constructed ad hoc.

// AValue returns the vertex's incremental light-side partial sum.
func (v LightVertex) AValue() float64 { return v.A }

// SmallA returns the vertex's single-strategy reciprocal density term.
func (v LightVertex) SmallA() float64 { return v.a }

// EyeVertex is one node of an eye subpath traced from the camera. c/C are
// the eye-side mirror of LightVertex's a/A.
type EyeVertex struct {
	Surface    core.SurfacePoint
	Omega      core.Vec3
	Throughput core.Vec3
	Specular   float64
	C          float64
	c          float64
}

func (v EyeVertex) CValue() float64 { return v.C }
func (v EyeVertex) SmallC() float64 { return v.c }

// NewLightOrigin builds the first light-subpath vertex at the sampled point
// on an emitter. areaDensity is the light-selection-and-area sampling
// density (spec.md §4.4); radiance/areaDensity is this vertex's throughput.
func NewLightOrigin(surface core.SurfacePoint, radiance core.Vec3, areaDensity float64, beta BetaFn) LightVertex {
	return LightVertex{
		Surface:    surface,
		Omega:      core.Vec3{},
		Throughput: radiance.Multiply(1.0 / areaDensity),
		Specular:   0,
		a:          1.0 / beta.Beta(areaDensity),
		A:          0,
	}
}

// NewEyeOrigin builds the first eye-subpath vertex at the camera's first
// intersection; c/C start at zero since no light-side strategy has
// contributed through the camera yet.
func NewEyeOrigin(surface core.SurfacePoint, omega core.Vec3) EyeVertex {
	return EyeVertex{
		Surface:    surface,
		Omega:      omega,
		Throughput: core.Vec3{X: 1, Y: 1, Z: 1},
		Specular:   1,
		c:          0,
		C:          0,
	}
}

// BSDFSample is the minimal BSDF-sampling result the recurrences need:
// the outgoing direction's throughput (BSDF value, not yet divided by
// density), the forward sampling density, the density of sampling the
// reverse direction (used by the "one step back" term of the recurrence),
// and whether the sampled lobe was a delta (specular) one.
type BSDFSample struct {
	Omega       core.Vec3
	Throughput  core.Vec3
	Density     float64
	DensityRev  float64
	Specular    float64
}

// NextLightVertex advances a light subpath by one bounce: prev is the
// vertex the path is leaving, edge is the geometric term crossing to the
// new surface, and sample is the BSDF draw made at prev. Mirrors BPT.cpp's
// _traceLight inner loop.
func NextLightVertex(prev LightVertex, newSurface core.SurfacePoint, edge Edge, sample BSDFSample, roulette float64, beta BetaFn) LightVertex {
	throughput := prev.Throughput.
		MultiplyVec(sample.Throughput).
		Multiply(edge.BCosTheta / (sample.Density * roulette))

	a := 1.0 / beta.Beta(edge.FGeometry*sample.Density)

	prevSpecular := maxFloat(prev.Specular, sample.Specular)

	A := (prev.A*beta.Beta(sample.DensityRev) + prev.a*(1-prevSpecular)) *
		beta.Beta(edge.BGeometry) * a

	return LightVertex{
		Surface:    newSurface,
		Omega:      sample.Omega.Negate(),
		Throughput: throughput,
		Specular:   sample.Specular,
		a:          a,
		A:          A,
	}
}

// NextEyeVertex is NextLightVertex's eye-side mirror, grounded on
// BPT.cpp's _traceEye inner loop. No roulette division here: the caller
// applies roulette to throughput itself before calling, matching the
// teacher's split between bounce accounting and Russian-roulette handling.
func NextEyeVertex(prev EyeVertex, newSurface core.SurfacePoint, edge Edge, sample BSDFSample, beta BetaFn) EyeVertex {
	throughput := prev.Throughput.
		MultiplyVec(sample.Throughput).
		Multiply(edge.BCosTheta / sample.Density)

	c := 1.0 / beta.Beta(edge.FGeometry*sample.Density)

	prevSpecular := maxFloat(prev.Specular, sample.Specular)

	C := (prev.C*beta.Beta(sample.DensityRev) + prev.c*(1-prevSpecular)) *
		beta.Beta(edge.BGeometry) * c

	return EyeVertex{
		Surface:    newSurface,
		Omega:      sample.Omega.Negate(),
		Throughput: throughput,
		Specular:   sample.Specular,
		c:          c,
		C:          C,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
