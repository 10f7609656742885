package transport

import "github.com/ciechowoj/haste-go/pkg/core"

// Edge carries the squared-distance reciprocal and the forward/backward
// cosine and geometric terms between two subpath vertices connected by the
// direction omega (pointing from the first vertex toward the second).
//
// fGeometry/bGeometry fold the cosine at the far/near endpoint together
// with the inverse squared distance; the BPT and VCM recurrences apply
// Beta(fGeometry) or Beta(bGeometry) exactly once per edge crossed, per
// spec.md §4.8.
type Edge struct {
	DistSqInv float64
	FCosTheta float64
	BCosTheta float64
	FGeometry float64
	BGeometry float64
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// NewEdge builds the edge between two surface points given the direction
// omega from 'from' to 'to'. farNormal is the shading normal at 'to' (used
// for fCosTheta/fGeometry, the density-forward side); nearNormal is the
// shading (or geometric, for a light-emission edge) normal at 'from'.
func NewEdge(from, to core.Vec3, omega core.Vec3, nearNormal, farNormal core.Vec3) Edge {
	distSq := to.Subtract(from).LengthSquared()
	distSqInv := 1.0
	if distSq > 0 {
		distSqInv = 1.0 / distSq
	}

	fCos := abs(omega.Dot(farNormal))
	bCos := abs(omega.Dot(nearNormal))

	return Edge{
		DistSqInv: distSqInv,
		FCosTheta: fCos,
		BCosTheta: bCos,
		FGeometry: distSqInv * fCos,
		BGeometry: distSqInv * bCos,
	}
}

// NewEdgeBetween is the common case: omega is derived from the two
// surface points' positions (normalized from->to), and both normals come
// from the points themselves.
func NewEdgeBetween(from, to core.SurfacePoint) (Edge, core.Vec3) {
	delta := to.Position.Subtract(from.Position)
	dist := delta.Length()
	omega := delta
	if dist > 0 {
		omega = delta.Multiply(1.0 / dist)
	}
	return NewEdge(from.Position, to.Position, omega, from.Normal, to.Normal), omega
}
