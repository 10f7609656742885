package core

import "math"

// AngularBound describes the minimal polar/azimuthal interval under which a
// bounding sphere is visible from the origin of a y-up local frame.
//
// ThetaInf/ThetaSup bound the polar angle measured from the +Y axis;
// PhiInf/PhiSup bound the azimuthal angle measured around Y from +X.
type AngularBound struct {
	ThetaInf, ThetaSup float64
	PhiInf, PhiSup     float64
}

// NewAngularBound computes the angular bound subtended by a sphere of the
// given radius centered at center, as seen from the local frame's origin.
// The caller is expected to have already transformed center into that frame.
func NewAngularBound(center Vec3, radius float64) AngularBound {
	dist := center.Length()

	// Observer inside the sphere: the sphere covers the whole hemisphere of
	// directions, so the bound degenerates to the full range.
	if dist <= radius {
		return AngularBound{
			ThetaInf: 0,
			ThetaSup: math.Pi,
			PhiInf:   -math.Pi,
			PhiSup:   math.Pi,
		}
	}

	// Polar angle of the sphere's center, and the half-angle of the cone
	// subtended by the sphere (asin of radius/dist).
	thetaCenter := math.Acos(clampUnit(center.Y / dist))
	halfAngle := math.Asin(clampUnit(radius / dist))

	thetaInf := math.Max(0, thetaCenter-halfAngle)
	thetaSup := math.Min(math.Pi, thetaCenter+halfAngle)

	// Azimuthal half-angle: project center onto the XZ plane and bound the
	// cone's azimuthal extent by asin of the radius over the projected
	// distance.
	projDist := math.Hypot(center.X, center.Z)
	phiCenter := math.Atan2(center.Z, center.X)

	var phiInf, phiSup float64
	if projDist <= radius {
		// The cone's axis projects inside the sphere's silhouette on the
		// XZ plane: the full azimuthal range is covered.
		phiInf, phiSup = -math.Pi, math.Pi
	} else {
		phiHalf := math.Asin(clampUnit(radius / projDist))
		phiInf = phiCenter - phiHalf
		phiSup = phiCenter + phiHalf
	}

	return AngularBound{
		ThetaInf: thetaInf,
		ThetaSup: thetaSup,
		PhiInf:   phiInf,
		PhiSup:   phiSup,
	}
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// ReflectionToSurfaceBasis returns an orthonormal basis {t0, r, t1} whose
// second axis is the mirror direction r, used to center a Phong-style
// specular-lobe sampler on the reflection direction.
func ReflectionToSurfaceBasis(r Vec3) (t0, up, t1 Vec3) {
	up = r.Normalize()

	// Pick a helper axis not parallel to up.
	helper := Vec3{X: 0, Y: 1, Z: 0}
	if math.Abs(up.Y) > 0.999 {
		helper = Vec3{X: 1, Y: 0, Z: 0}
	}

	t0 = helper.Cross(up).Normalize()
	t1 = up.Cross(t0).Normalize()
	return t0, up, t1
}
