package lights

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// SampleInfiniteLight draws an emission ray for a distant/infinite light: a
// direction sampled uniformly over the full sphere, and an origin on the
// disk of radius worldRadius perpendicular to that direction so the ray
// starts outside the scene and travels back toward its center. Used by
// UniformInfiniteLight/GradientInfiniteLight's SampleEmission for light
// subpath generation.
func SampleInfiniteLight(worldCenter core.Vec3, worldRadius float64, samplePoint, sampleDirection core.Vec2) (ray core.Ray, areaPDF, directionPDF float64) {
	if worldRadius <= 0 {
		return core.Ray{}, 0, 0
	}

	z := 1 - 2*sampleDirection.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sampleDirection.Y
	direction := core.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
	directionPDF = 1.0 / (4 * math.Pi)

	tangent, _, bitangent := core.ReflectionToSurfaceBasis(direction)
	diskRadius := math.Sqrt(samplePoint.X) * worldRadius
	diskPhi := 2 * math.Pi * samplePoint.Y
	diskPoint := tangent.Multiply(diskRadius * math.Cos(diskPhi)).Add(bitangent.Multiply(diskRadius * math.Sin(diskPhi)))

	origin := worldCenter.Add(direction.Multiply(worldRadius)).Add(diskPoint)
	areaPDF = 1.0 / (math.Pi * worldRadius * worldRadius)

	return core.Ray{Origin: origin, Direction: direction.Multiply(-1)}, areaPDF, directionPDF
}

// UniformConePDF returns the solid-angle density of a direction drawn
// uniformly from the cone of half-angle arccos(cosThetaMax).
func UniformConePDF(cosThetaMax float64) float64 {
	return 1.0 / (2 * math.Pi * (1 - cosThetaMax))
}
