package material

import (
	"github.com/ciechowoj/haste-go/pkg/core"
)

// Material, HitRecord and ScatterResult are aliases onto the canonical
// core types: every concrete material below scatters/evaluates against
// core.HitRecord so a hit produced by pkg/geometry's intersector needs no
// conversion before reaching a material's Scatter/EvaluateBRDF/PDF.
type Material = core.Material
type HitRecord = core.HitRecord
type ScatterResult = core.ScatterResult

// Emitter is satisfied by materials that emit light (Emissive, and any
// future area-light material) in addition to possibly scattering it. hit is
// the intersection the ray arrived at, or nil when a light evaluates its own
// emission directly (not via a scene hit) such as during emission sampling;
// area lights use it to restrict emission to their front face.
type Emitter interface {
	Emit(rayIn core.Ray, hit *HitRecord) core.Vec3
}
