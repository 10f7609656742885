package lights

import "github.com/ciechowoj/haste-go/pkg/core"

// WeightedLightSampler picks a light from a fixed discrete distribution
// (e.g. proportional to power) rather than uniformly, the way a scene with a
// single dominant emitter and many dim ones benefits from importance-sampling
// the light choice itself, not just the point on the light.
type WeightedLightSampler struct {
	lights      []Light
	weights     []float64 // normalized, sums to 1.0
	cumulative  []float64
	sceneRadius float64
}

// NewWeightedLightSampler builds a sampler over lights with selection
// probability proportional to weights. weights is normalized to sum to 1.0;
// if every weight is zero, selection falls back to uniform. Panics if the
// slices differ in length.
func NewWeightedLightSampler(lights []Light, weights []float64, sceneRadius float64) *WeightedLightSampler {
	if len(lights) != len(weights) {
		panic("lights and weights must have the same length")
	}

	normalized := make([]float64, len(weights))
	total := 0.0
	for _, w := range weights {
		total += w
	}

	if total <= 0 {
		if len(weights) > 0 {
			uniform := 1.0 / float64(len(weights))
			for i := range normalized {
				normalized[i] = uniform
			}
		}
	} else {
		for i, w := range weights {
			normalized[i] = w / total
		}
	}

	cumulative := make([]float64, len(normalized))
	running := 0.0
	for i, w := range normalized {
		running += w
		cumulative[i] = running
	}

	return &WeightedLightSampler{
		lights:      lights,
		weights:     normalized,
		cumulative:  cumulative,
		sceneRadius: sceneRadius,
	}
}

// NewUniformLightSampler builds a WeightedLightSampler with equal weight on
// every light.
func NewUniformLightSampler(lights []Light, sceneRadius float64) *WeightedLightSampler {
	weights := make([]float64, len(lights))
	if len(lights) > 0 {
		uniform := 1.0 / float64(len(lights))
		for i := range weights {
			weights[i] = uniform
		}
	}
	return NewWeightedLightSampler(lights, weights, sceneRadius)
}

func (s *WeightedLightSampler) selectIndex(u float64) int {
	for i, c := range s.cumulative {
		if u <= c {
			return i
		}
	}
	return len(s.cumulative) - 1
}

// SampleLight draws a light proportional to its weight. point and normal are
// accepted to satisfy LightSampler but unused; the distribution is static.
func (s *WeightedLightSampler) SampleLight(point core.Vec3, normal core.Vec3, u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0.0, -1
	}
	index := s.selectIndex(u)
	return s.lights[index], s.weights[index], index
}

// SampleLightEmission draws a light proportional to its weight for emission
// (light-tracing) sampling, using the same static distribution as SampleLight.
func (s *WeightedLightSampler) SampleLightEmission(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0.0, -1
	}
	index := s.selectIndex(u)
	return s.lights[index], s.weights[index], index
}

// GetLightProbability returns the selection probability of lightIndex, or
// 0.0 if the index is out of range.
func (s *WeightedLightSampler) GetLightProbability(lightIndex int, point core.Vec3, normal core.Vec3) float64 {
	if lightIndex < 0 || lightIndex >= len(s.weights) {
		return 0.0
	}
	return s.weights[lightIndex]
}

// GetLightCount returns the number of lights in the sampler.
func (s *WeightedLightSampler) GetLightCount() int {
	return len(s.lights)
}
