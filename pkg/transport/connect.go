package transport

import "github.com/ciechowoj/haste-go/pkg/core"

// LightSample is what a light-selection-and-point draw returns: the
// surface point, selection+area density, solid-angle ("omega") density
// for the sampled direction, and radiance.
type LightSample struct {
	Surface     core.SurfacePoint
	AreaDensity float64
	OmegaDensity float64
	Radiance    core.Vec3
}

// ConnectLight computes the weighted contribution of a light vertex hit
// directly by eye-subpath ray marching (the s=0 strategy): the eye path's
// c/C partial sums are combined with the light's own emission density to
// produce 1/weightInv, mirroring BPT.cpp's _connect_light.
func ConnectLight(eye EyeVertex, lsdfOmegaDensity, lsdfAreaDensity float64, radiance core.Vec3, beta BetaFn) core.Vec3 {
	Cp := (eye.C*beta.Beta(lsdfOmegaDensity) + eye.c*(1-eye.Specular)) * beta.Beta(lsdfAreaDensity)
	weightInv := Cp + 1.0
	return radiance.MultiplyVec(eye.Throughput).Multiply(1.0 / weightInv)
}

// ConnectNextEventEstimation connects an eye vertex directly to a freshly
// sampled point on a light (s=1 strategy, next-event estimation).
// eyeBSDFThroughput/eyeBSDFDensityRev are the eye BSDF evaluated toward the
// light; eyeBSDFSpecular reports whether that BSDF lobe was a delta (in
// which case direct light connection carries no valid contribution and the
// caller should skip this strategy entirely). Grounded on BPT.cpp's
// _connect1.
func ConnectNextEventEstimation(
	eye EyeVertex,
	light LightSample,
	edge Edge,
	eyeBSDFThroughput core.Vec3,
	eyeBSDFDensity, eyeBSDFDensityRev float64,
	beta BetaFn,
) core.Vec3 {
	Ap := beta.Beta(eyeBSDFDensityRev * edge.BGeometry / light.AreaDensity)
	Cp := (eye.C*beta.Beta(eyeBSDFDensity) + eye.c*(1-eye.Specular)) * beta.Beta(edge.FGeometry*light.OmegaDensity)
	weightInv := Ap + Cp + 1.0

	return light.Radiance.
		Multiply(1.0 / light.AreaDensity).
		MultiplyVec(eye.Throughput).
		MultiplyVec(eyeBSDFThroughput).
		Multiply(edge.BCosTheta * edge.FGeometry / weightInv)
}

// ConnectVertices joins a light subpath vertex to an eye subpath vertex
// through an explicit shadow ray (the full (s,t) bidirectional connection
// strategy). occluded must already have been evaluated by the caller (1 if
// the shadow ray is unobstructed, 0 otherwise) since this package has no
// dependency on the scene's intersector. Grounded on BPT.cpp's _connect.
func ConnectVertices(
	eye EyeVertex,
	light LightVertex,
	edge Edge,
	lightBSDFThroughput, eyeBSDFThroughput core.Vec3,
	lightBSDFDensity, lightBSDFDensityRev float64,
	eyeBSDFDensity, eyeBSDFDensityRev float64,
	occluded float64,
	beta BetaFn,
) core.Vec3 {
	Ap := (light.A*beta.Beta(lightBSDFDensityRev) + light.a*(1-light.Specular)) *
		beta.Beta(edge.BGeometry * eyeBSDFDensityRev)
	Cp := (eye.C*beta.Beta(eyeBSDFDensity) + eye.c*(1-eye.Specular)) *
		beta.Beta(edge.FGeometry * lightBSDFDensity)
	weightInv := Ap + Cp + 1.0

	return light.Throughput.
		MultiplyVec(lightBSDFThroughput).
		MultiplyVec(eye.Throughput).
		MultiplyVec(eyeBSDFThroughput).
		Multiply(occluded * edge.BCosTheta * edge.FGeometry / weightInv)
}
