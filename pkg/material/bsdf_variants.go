package material

import "github.com/ciechowoj/haste-go/pkg/core"

// NewPerfectReflection builds the delta mirror BSDF variant: a Metal with
// zero fuzz is exactly a perfect mirror, so this is a naming convenience
// rather than a distinct implementation.
func NewPerfectReflection(albedo core.Vec3) *Metal {
	return NewMetal(albedo, 0)
}

// NewLight builds the light-emission BSDF variant. Emissive already is this
// variant (a surface that only emits, never scatters); NewLight is a naming
// convenience so callers can spell out the variant set from spec.md §4.3
// without reaching for the older constructor name.
func NewLight(radiance core.Vec3) *Emissive {
	return NewEmissive(radiance)
}

// The Camera BSDF variant (importance throughput ∝ 1/cos⁴θ at the lens) has
// no analogue here: pkg/geometry.Camera already carries that importance
// function through MapRayToPixel/raster Jacobian for light-tracing splats
// (see pkg/integrator's SplatRay path), so a separate material-side Camera
// type would duplicate rather than serve a distinct connection site.
