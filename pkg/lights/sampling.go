package lights

import "github.com/ciechowoj/haste-go/pkg/core"

// SampleDirect draws one light via sampler, then samples a point on it
// toward (point, normal). The returned LightSample's PDF is the combined
// density (selection probability times the light's own density), the
// quantity a direct-lighting estimator divides by. The selected Light is
// also returned so a bidirectional estimator can attach it to a path vertex.
func SampleDirect(sampler LightSampler, point, normal core.Vec3, u float64, sample core.Vec2) (LightSample, Light, bool) {
	light, selectionProb, index := sampler.SampleLight(point, normal, u)
	if light == nil || index < 0 || selectionProb <= 0 {
		return LightSample{}, nil, false
	}

	ls := light.Sample(point, normal, sample)
	if ls.PDF <= 0 {
		return LightSample{}, nil, false
	}
	ls.PDF *= selectionProb
	return ls, light, true
}

// CombinedPDF returns the total density of direction being produced by
// SampleDirect from point/normal: the sum over every light of its
// selection probability times its own PDF for that direction. A material
// sampling strategy uses this to weight its own contribution against
// light sampling via the power/balance heuristic.
func CombinedPDF(sampler LightSampler, allLights []Light, point, normal, direction core.Vec3) float64 {
	total := 0.0
	for i, light := range allLights {
		prob := sampler.GetLightProbability(i, point, normal)
		if prob <= 0 {
			continue
		}
		total += prob * light.PDF(point, normal, direction)
	}
	return total
}
