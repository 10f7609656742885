package lights

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/material"
)

// PointSpotLight is a delta-position light with directional cone falloff: no
// surface to hit, so unlike DiscSpotLight it contributes no caustic paths
// and SampleEmission draws only a direction, never a position.
type PointSpotLight struct {
	position        core.Vec3
	direction       core.Vec3
	emission        core.Vec3
	cosTotalWidth   float64
	cosFalloffStart float64
}

// NewPointSpotLight creates a point spot light aimed from "from" to "to"
// with the given cone angle and falloff transition, both in degrees.
func NewPointSpotLight(from, to, emission core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *PointSpotLight {
	direction := to.Subtract(from).Normalize()

	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &PointSpotLight{
		position:        from,
		direction:       direction,
		emission:        emission,
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

func (sl *PointSpotLight) Type() LightType {
	return LightTypePoint
}

// falloff applies the quartic smoothstep PBRT uses between the falloff
// start angle and the total cone width.
func (sl *PointSpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < sl.cosTotalWidth {
		return 0.0
	}
	if cosAngle >= sl.cosFalloffStart {
		return 1.0
	}
	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}

// Sample implements the Light interface - a point light always samples its
// single position, delta in both area and direction.
func (sl *PointSpotLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	toLightVec := sl.position.Subtract(point)
	distance := toLightVec.Length()

	if distance == 0 {
		return LightSample{
			Point:     sl.position,
			Normal:    core.NewVec3(0, 1, 0),
			Direction: core.NewVec3(0, 1, 0),
			Distance:  0,
			Emission:  core.Vec3{},
			PDF:       1.0,
		}
	}

	toLight := toLightVec.Normalize()
	lightToPoint := toLight.Multiply(-1)
	cosAngle := sl.direction.Dot(lightToPoint)
	attenuation := sl.falloff(cosAngle)

	emission := sl.emission.Multiply(attenuation / (distance * distance))

	return LightSample{
		Point:     sl.position,
		Normal:    toLight,
		Direction: toLight,
		Distance:  distance,
		Emission:  emission,
		PDF:       1.0,
	}
}

// PDF implements the Light interface - a delta light has zero density for
// any sampling strategy that didn't draw it directly.
func (sl *PointSpotLight) PDF(point, normal, direction core.Vec3) float64 {
	return 0.0
}

// SampleEmission implements the Light interface - position is the fixed
// light location, direction is drawn uniformly within the cone.
func (sl *PointSpotLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	emissionDir := core.SampleCone(sl.direction, sl.cosTotalWidth, sampleDirection)
	cosTheta := emissionDir.Dot(sl.direction)
	attenuation := sl.falloff(cosTheta)

	return EmissionSample{
		Point:        sl.position,
		Normal:       sl.direction,
		Direction:    emissionDir,
		Emission:     sl.emission.Multiply(attenuation),
		AreaPDF:      1.0, // delta position
		DirectionPDF: UniformConePDF(sl.cosTotalWidth),
	}
}

// EmissionPDF implements the Light interface - a delta-position light has no
// area density; only a connected light subpath vertex, never a BSDF
// sampling strategy, can land on it.
func (sl *PointSpotLight) EmissionPDF(point core.Vec3, direction core.Vec3) float64 {
	return 0.0
}

// Emit implements the Light interface. A point light has no surface a
// camera ray can hit, so indirect rays never see it.
func (sl *PointSpotLight) Emit(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// GetIntensityAt returns the light intensity at a given point, useful for
// debugging and visualization.
func (sl *PointSpotLight) GetIntensityAt(point core.Vec3) core.Vec3 {
	toLightVec := sl.position.Subtract(point)
	distance := toLightVec.Length()
	if distance == 0 {
		return core.Vec3{}
	}

	lightToPoint := toLightVec.Normalize().Multiply(-1)
	attenuation := sl.falloff(sl.direction.Dot(lightToPoint))
	return sl.emission.Multiply(attenuation / (distance * distance))
}
