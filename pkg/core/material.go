package core

import (
	"math"
	"math/rand"
)

// Material scatters an incident ray into an outgoing one, or absorbs it.
// Scatter draws one outgoing direction (for path-traced rendering);
// EvaluateBRDF/PDF evaluate the BSDF for a direction pair already fixed by a
// bidirectional connection, so a light and an eye subpath can be joined
// without having generated the joining direction by sampling.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
	EvaluateBRDF(incomingDir, outgoingDir, normal Vec3) Vec3
	PDF(incomingDir, outgoingDir, normal Vec3) (pdf float64, isDelta bool)
}

// HitRecord describes a ray/surface intersection as the scene intersector
// reports it: the hit point, the shading normal oriented against the
// incident ray, the ray parameter, and the material to scatter off.
type HitRecord struct {
	Point     Vec3
	Normal    Vec3
	T         float64
	FrontFace bool
	Material  Material
	UV        Vec2 // texture coordinates, set by shapes that support texturing
}

// SetFaceNormal orients Normal against ray and records which face was hit.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// ScatterResult is what a Material.Scatter call produces: the ray to
// continue tracing along, its throughput weight, and the density the
// direction was drawn with (0 for a specular/delta lobe).
type ScatterResult struct {
	Incoming    Ray
	Scattered   Ray
	Attenuation Vec3
	PDF         float64
}

// IsSpecular reports whether this scatter came from a delta lobe.
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// Sampler supplies the random numbers a Material.Scatter call consumes.
// Wrapping *rand.Rand behind an interface lets a renderer substitute a
// stratified or quasi-random sequence without touching material code.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
	Rand() *rand.Rand
}

// randomSampler is the default Sampler, drawing straight from a
// *rand.Rand per goroutine/path.
type randomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler wraps rng as a Sampler.
func NewRandomSampler(rng *rand.Rand) Sampler {
	return &randomSampler{rng: rng}
}

func (s *randomSampler) Get1D() float64 { return s.rng.Float64() }
func (s *randomSampler) Get2D() Vec2    { return Vec2{X: s.rng.Float64(), Y: s.rng.Float64()} }
func (s *randomSampler) Get3D() Vec3 {
	return Vec3{X: s.rng.Float64(), Y: s.rng.Float64(), Z: s.rng.Float64()}
}
func (s *randomSampler) Rand() *rand.Rand { return s.rng }

// RandomCosineDirection draws a cosine-weighted direction in the hemisphere
// around normal using Malley's method: a uniform disk sample lifted onto
// the hemisphere, then rotated into the normal's tangent frame. sample
// carries the two uniform numbers the draw consumes, so callers can supply
// it directly from a Sampler's Get2D() without this function touching
// *rand.Rand itself.
func RandomCosineDirection(normal Vec3, sample Vec2) Vec3 {
	r1 := sample.X
	r2 := sample.Y

	phi := 2 * math.Pi * r1
	cosTheta := math.Sqrt(1 - r2)
	sinTheta := math.Sqrt(r2)

	localX := math.Cos(phi) * sinTheta
	localY := math.Sin(phi) * sinTheta
	localZ := cosTheta

	tangent, _, bitangent := ReflectionToSurfaceBasis(normal)
	return tangent.Multiply(localX).Add(bitangent.Multiply(localY)).Add(normal.Normalize().Multiply(localZ))
}

// SampleCosineHemisphere draws a cosine-weighted direction in the hemisphere
// around normal. It is the Vec2-sample counterpart of RandomCosineDirection,
// kept as a separate name since infinite lights sample the hemisphere facing
// a surface normal rather than scattering off one.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	return RandomCosineDirection(normal, sample)
}

// SampleCone draws a direction uniformly within the cone of half-angle
// arccos(cosThetaMax) around axis, using the standard solid-angle
// parameterization (PBRT's UniformSampleCone).
func SampleCone(axis Vec3, cosThetaMax float64, sample Vec2) Vec3 {
	cosTheta := (1-sample.X)*1 + sample.X*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y

	localX := math.Cos(phi) * sinTheta
	localY := math.Sin(phi) * sinTheta

	tangent, _, bitangent := ReflectionToSurfaceBasis(axis)
	return tangent.Multiply(localX).Add(bitangent.Multiply(localY)).Add(axis.Normalize().Multiply(cosTheta))
}

// RandomInUnitSphere maps three uniform [0,1) numbers (u.X, u.Y, u.Z) to a
// point in the cube [-1,1)^3; a point that falls outside the unit sphere is
// scaled radially to just inside its surface, so the result always lies in
// the sphere but is not uniformly distributed over it.
func RandomInUnitSphere(u Vec3) Vec3 {
	p := Vec3{X: 2*u.X - 1, Y: 2*u.Y - 1, Z: 2*u.Z - 1}
	if p.LengthSquared() >= 1 {
		scale := 1.0 / (p.Length() + 1e-9)
		return p.Multiply(scale * 0.999)
	}
	return p
}

// SplatRay is an unconnected contribution an integrator needs to deposit at
// a pixel other than the one currently being traced: light-tracing and
// vertex-connection strategies in a bidirectional estimator find their
// pixel by projecting Ray through the camera (geometry.Camera.MapRayToPixel)
// rather than through the path that is actively being built.
type SplatRay struct {
	Ray   Ray
	Color Vec3
}
