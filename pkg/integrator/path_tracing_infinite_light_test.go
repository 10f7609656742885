package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/geometry"
	"github.com/ciechowoj/haste-go/pkg/lights"
	"github.com/ciechowoj/haste-go/pkg/material"
	"github.com/ciechowoj/haste-go/pkg/scene"
)

// createSceneWithInfiniteLight creates a test scene with a gradient infinite
// light instead of the plain background gradient.
func createSceneWithInfiniteLight() *scene.Scene {
	lambertian := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertian)

	infiniteLight := lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0), // topColor (blue sky)
		core.NewVec3(1.0, 0.8, 0.6), // bottomColor (warm ground)
	)

	s := &scene.Scene{
		Camera: newTestCamera(),
		Shapes: []geometry.Shape{sphere},
		Lights: []lights.Light{infiniteLight},
		SamplingConfig: scene.SamplingConfig{
			MaxDepth:                  10,
			RussianRouletteMinBounces: 5,
		},
	}

	if err := s.Preprocess(); err != nil {
		panic(err)
	}

	return s
}

// TestPathTracingInfiniteLight tests that path tracing correctly samples infinite lights
func TestPathTracingInfiniteLight(t *testing.T) {
	s := createSceneWithInfiniteLight()
	pt := NewPathTracingIntegrator(s.GetSamplingConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	color, _ := pt.RayColor(ray, s, sampler)

	if color == (core.Vec3{}) {
		t.Error("Expected color from infinite light, got black")
	}

	if color.Z <= color.X || color.Z <= color.Y {
		t.Errorf("Expected blue-dominant color for upward ray, got %v", color)
	}

	if color.X > 2 || color.Y > 2 || color.Z > 2 {
		t.Errorf("Expected reasonable color values, got %v", color)
	}
}

// TestPathTracingInfiniteLight_GradientVariation tests that different directions get different colors
func TestPathTracingInfiniteLight_GradientVariation(t *testing.T) {
	s := createSceneWithInfiniteLight()
	pt := NewPathTracingIntegrator(s.GetSamplingConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	upRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	downRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))

	upColor, _ := pt.RayColor(upRay, s, sampler)
	downColor, _ := pt.RayColor(downRay, s, sampler)

	if upColor == downColor {
		t.Error("Expected different colors for up and down rays hitting infinite light")
	}

	if upColor.Z <= downColor.Z {
		t.Errorf("Expected upward ray to be more blue than downward ray. Up: %v, Down: %v", upColor, downColor)
	}

	if upColor == (core.Vec3{}) || downColor == (core.Vec3{}) {
		t.Error("Expected both rays to get color from infinite light")
	}
}

// TestPathTracingInfiniteLight_vs_BackgroundGradient compares infinite light with equivalent background gradient
func TestPathTracingInfiniteLight_vs_BackgroundGradient(t *testing.T) {
	sceneWithGradient := createTestScene()
	sceneWithInfiniteLight := createSceneWithInfiniteLight()

	pt := NewPathTracingIntegrator(sceneWithGradient.GetSamplingConfig())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	gradientSampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	infiniteSampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	gradientColor, _ := pt.RayColor(ray, sceneWithGradient, gradientSampler)
	infiniteColor, _ := pt.RayColor(ray, sceneWithInfiniteLight, infiniteSampler)

	expectedGradientColor := pt.BackgroundGradient(ray, sceneWithGradient)
	tolerance := 0.01
	if math.Abs(gradientColor.X-expectedGradientColor.X) > tolerance ||
		math.Abs(gradientColor.Y-expectedGradientColor.Y) > tolerance ||
		math.Abs(gradientColor.Z-expectedGradientColor.Z) > tolerance {
		t.Errorf("Background gradient scene: expected %v, got %v", expectedGradientColor, gradientColor)
	}

	if infiniteColor == (core.Vec3{}) {
		t.Error("Infinite light scene should produce non-black color")
	}

	t.Logf("Background gradient color: %v", gradientColor)
	t.Logf("Infinite light color: %v", infiniteColor)
}

// TestUniformInfiniteLight_PathTracing tests uniform infinite light with path tracing
func TestUniformInfiniteLight_PathTracing(t *testing.T) {
	lambertian := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertian)
	uniformLight := lights.NewUniformInfiniteLight(core.NewVec3(0.8, 0.6, 0.4))

	s := &scene.Scene{
		Camera: newTestCamera(),
		Shapes: []geometry.Shape{sphere},
		Lights: []lights.Light{uniformLight},
		SamplingConfig: scene.SamplingConfig{
			MaxDepth:                  10,
			RussianRouletteMinBounces: 5,
		},
	}
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	pt := NewPathTracingIntegrator(s.GetSamplingConfig())

	directions := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 0, 1),
	}

	colors := make([]core.Vec3, len(directions))
	for i, dir := range directions {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(42 + i))))
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)
		colors[i], _ = pt.RayColor(ray, s, sampler)

		if colors[i] == (core.Vec3{}) {
			t.Errorf("Direction %v: expected non-black color from uniform infinite light", dir)
		}
	}

	baseColor := colors[0]
	tolerance := 0.1
	for i, color := range colors[1:] {
		if math.Abs(color.X-baseColor.X) > tolerance ||
			math.Abs(color.Y-baseColor.Y) > tolerance ||
			math.Abs(color.Z-baseColor.Z) > tolerance {
			t.Errorf("Direction %d: expected similar color to base %v, got %v", i+1, baseColor, color)
		}
	}
}
