package material

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// Phong mixes a Lambertian diffuse lobe with a cosine-power specular lobe
// centered on the mirror direction, split by a diffuse/specular Bernoulli
// probability proportional to each lobe's reflectivity.
type Phong struct {
	Diffuse  core.Vec3
	Specular core.Vec3
	Power    float64

	kDiffuse float64
}

// NewPhong creates a Phong material, precomputing the diffuse-selection
// probability from the total reflectivity of each lobe.
func NewPhong(diffuse, specular core.Vec3, power float64) *Phong {
	diffuseReflectivity := l1Norm(diffuse) / math.Pi
	specularReflectivity := l1Norm(specular) * 2 * math.Pi / (power + 1.0)

	sum := diffuseReflectivity + specularReflectivity
	kDiffuse := 1.0
	if sum > 0 {
		kDiffuse = diffuseReflectivity / sum
	}

	return &Phong{Diffuse: diffuse, Specular: specular, Power: power, kDiffuse: kDiffuse}
}

func l1Norm(v core.Vec3) float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
}

// Scatter draws from the diffuse lobe with probability kDiffuse, otherwise
// from the specular cosine-power lobe around the mirror direction.
func (p *Phong) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	incoming := rayIn.Direction.Negate().Normalize()

	var outgoing core.Vec3
	if sampler.Get1D() < p.kDiffuse {
		outgoing = core.RandomCosineDirection(hit.Normal, sampler.Get2D())
	} else {
		outgoing = p.sampleSpecularLobe(incoming, hit.Normal, sampler)
	}

	if outgoing.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	attenuation := p.EvaluateBRDF(incoming, outgoing, hit.Normal)
	pdf, _ := p.PDF(incoming, outgoing, hit.Normal)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: outgoing},
		Attenuation: attenuation.Multiply(outgoing.Dot(hit.Normal) / pdf),
		PDF:         pdf,
	}, true
}

// sampleSpecularLobe draws a direction from the cos^power lobe centered on
// the mirror reflection of incoming about normal.
func (p *Phong) sampleSpecularLobe(incoming, normal core.Vec3, sampler core.Sampler) core.Vec3 {
	mirror := reflect(incoming.Negate(), normal)
	tangent, axis, bitangent := core.ReflectionToSurfaceBasis(mirror)

	u := sampler.Get2D()
	cosTheta := math.Pow(u.X, 1.0/(p.Power+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	localX := sinTheta * math.Cos(phi)
	localY := sinTheta * math.Sin(phi)

	return tangent.Multiply(localX).Add(bitangent.Multiply(localY)).Add(axis.Multiply(cosTheta))
}

// EvaluateBRDF sums the diffuse albedo/π term and the specular cos^power
// lobe, both gated to the hemisphere the normal faces.
func (p *Phong) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	if outgoingDir.Dot(normal) <= 0 || incomingDir.Dot(normal) <= 0 {
		return core.Vec3{}
	}

	diffuse := p.Diffuse.Multiply(1.0 / math.Pi)

	mirror := reflect(incomingDir.Negate(), normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(mirror))
	cosAlphaPow := math.Pow(cosAlpha, p.Power)
	specular := p.Specular.Multiply((p.Power + 2.0) / (2 * math.Pi) * cosAlphaPow)

	return diffuse.Add(specular)
}

// PDF mixes the cosine-weighted diffuse density and the cos^power specular
// lobe's density by the same kDiffuse split Scatter draws with.
func (p *Phong) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	if outgoingDir.Dot(normal) <= 0 {
		return 0, false
	}

	diffuseDensity := outgoingDir.Dot(normal) / math.Pi

	mirror := reflect(incomingDir.Negate(), normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(mirror))
	specularDensity := (p.Power + 1.0) / (2 * math.Pi) * math.Pow(cosAlpha, p.Power)

	return p.kDiffuse*diffuseDensity + (1-p.kDiffuse)*specularDensity, false
}
