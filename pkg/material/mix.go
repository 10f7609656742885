package material

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 core.Material
	Material2 core.Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 core.Material, ratio float64) *Mix {
	// Clamp ratio to valid range
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// Scatter implements the Material interface for mix material
func (m *Mix) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Choose material based on ratio
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	} else {
		return m.Material1.Scatter(rayIn, hit, sampler)
	}
}

// EvaluateBRDF combines both component materials' BRDFs weighted by Ratio.
func (m *Mix) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	f1 := m.Material1.EvaluateBRDF(incomingDir, outgoingDir, normal)
	f2 := m.Material2.EvaluateBRDF(incomingDir, outgoingDir, normal)
	return f1.Multiply(1 - m.Ratio).Add(f2.Multiply(m.Ratio))
}

// PDF combines both component materials' densities weighted by Ratio. The
// mix is reported as a delta lobe only when both components are.
func (m *Mix) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	pdf1, delta1 := m.Material1.PDF(incomingDir, outgoingDir, normal)
	pdf2, delta2 := m.Material2.PDF(incomingDir, outgoingDir, normal)
	return (1-m.Ratio)*pdf1 + m.Ratio*pdf2, delta1 && delta2
}
