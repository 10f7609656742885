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

// createMinimalCornellScene builds a stripped-down Cornell box (floor + quad
// light near the ceiling, no side walls) for BDPT/PT comparison tests that
// only care about one bounce off the floor.
func createMinimalCornellScene(includeLight bool) *scene.Scene {
	boxSize := 555.0
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)

	shapes := []geometry.Shape{floor}
	var sceneLights []lights.Light

	if includeLight {
		lightMaterial := material.NewEmissive(core.NewVec3(15.0, 15.0, 15.0))
		quadLight := lights.NewQuadLight(
			core.NewVec3(213, 554, 227),
			core.NewVec3(130, 0, 0),
			core.NewVec3(0, 0, 105),
			lightMaterial,
		)
		shapes = append(shapes, quadLight.Quad)
		sceneLights = append(sceneLights, quadLight)
	}

	cam := geometry.NewCamera(geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          40.0,
		FocusDistance: 0.0,
	})

	s := &scene.Scene{
		Camera:           cam,
		Shapes:           shapes,
		Lights:           sceneLights,
		BackgroundTop:    core.NewVec3(0, 0, 0),
		BackgroundBottom: core.NewVec3(0, 0, 0),
		SamplingConfig:   scene.SamplingConfig{MaxDepth: 5},
	}
	if err := s.Preprocess(); err != nil {
		panic(err)
	}
	return s
}

// TestBDPTvsPathTracingDirectLighting compares BDPT vs path tracing on a simple Cornell setup
// This test isolates the direct lighting issue - BDPT should perform similarly to path tracing
func TestBDPTvsPathTracingDirectLighting(t *testing.T) {
	s := createMinimalCornellScene(true)

	rayToFloor := core.NewRay(
		core.NewVec3(278, 400, -200),
		core.NewVec3(0, -1, 0.5).Normalize(),
	)

	seed := int64(42)

	pathSampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
	pathConfig := scene.SamplingConfig{MaxDepth: 5}
	pathIntegrator := NewPathTracingIntegrator(pathConfig)
	pathResult, _ := pathIntegrator.RayColor(rayToFloor, s, pathSampler)

	bdptConfig := scene.SamplingConfig{MaxDepth: 5}
	bdptIntegrator := NewBDPTIntegrator(bdptConfig)
	bdptIntegrator.Verbose = testing.Verbose()

	bdptSampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
	bdptResult, _ := bdptIntegrator.RayColor(rayToFloor, s, bdptSampler)

	t.Logf("=== FINAL COMPARISON ===")
	t.Logf("Path tracing result: %v (luminance: %.6f)", pathResult, pathResult.Luminance())
	t.Logf("BDPT result: %v (luminance: %.6f)", bdptResult, bdptResult.Luminance())

	pathLuminance := pathResult.Luminance()
	bdptLuminance := bdptResult.Luminance()

	if pathLuminance > 0.001 {
		ratio := bdptLuminance / pathLuminance
		if ratio < 0.1 {
			t.Errorf("BDPT result too dim compared to path tracing: ratio %.4f (BDPT: %.6f, PT: %.6f)",
				ratio, bdptLuminance, pathLuminance)
		}
		if ratio > 10.0 {
			t.Errorf("BDPT result too bright compared to path tracing: ratio %.4f (BDPT: %.6f, PT: %.6f)",
				ratio, bdptLuminance, pathLuminance)
		}
	}
}

// TestLightPathDirectionAndIntersection verifies that light paths are generated correctly
func TestLightPathDirectionAndIntersection(t *testing.T) {
	s := createMinimalCornellScene(true)

	seed := int64(42)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	bdptConfig := scene.SamplingConfig{MaxDepth: 5}
	bdptIntegrator := NewBDPTIntegrator(bdptConfig)

	successfulPaths := 0
	totalPaths := 10

	for i := 0; i < totalPaths; i++ {
		lightPath := bdptIntegrator.generateLightSubpath(s, sampler, bdptConfig.MaxDepth)

		t.Logf("Light path %d: length=%d", i, lightPath.Length)

		if lightPath.Length == 0 {
			t.Logf("  No light path generated (no lights or invalid sample)")
			continue
		}

		lightVertex := lightPath.Vertices[0]
		t.Logf("  Light vertex: pos=%v, normal=%v, IsLight=%v, EmittedLight=%v",
			lightVertex.Point, lightVertex.Normal, lightVertex.IsLight, lightVertex.EmittedLight)

		if !lightVertex.IsLight {
			t.Errorf("  First vertex should be marked as light")
		}
		if lightVertex.EmittedLight.Luminance() <= 0 {
			t.Errorf("  Light vertex should have positive emission: %v", lightVertex.EmittedLight)
		}

		foundFloor := false
		for j, vertex := range lightPath.Vertices {
			t.Logf("  Light[%d]: pos=%v, material=%v, IsLight=%v",
				j, vertex.Point, vertex.Material != nil, vertex.IsLight)

			if vertex.Point.Y < 1.0 && vertex.Point.Y > -1.0 {
				foundFloor = true
				t.Logf("  Found floor hit at vertex %d: pos=%v", j, vertex.Point)

				if vertex.Material == nil {
					t.Errorf("  Floor vertex should have a material")
				}
			}
		}

		if foundFloor {
			successfulPaths++
		} else {
			t.Logf("  Light path did not reach floor")
		}

		if lightPath.Length > 1 {
			secondVertex := lightPath.Vertices[1]
			if secondVertex.IsLight && secondVertex.Point.Y > 500 {
				t.Errorf("  Light path may be hitting light geometry itself at vertex 1: pos=%v", secondVertex.Point)
			}
		}
	}

	t.Logf("Successful paths (reached floor): %d/%d", successfulPaths, totalPaths)

	if successfulPaths == 0 {
		t.Errorf("No light paths reached the floor - this suggests directional issues")
	}
}

// TestBDPTCameraPathHitsLight tests that camera paths can find light sources
func TestBDPTCameraPathHitsLight(t *testing.T) {
	s := createMinimalCornellScene(true)

	rayToLight := core.NewRay(
		core.NewVec3(278, 400, 278),
		core.NewVec3(0, 1, 0),
	)

	seed := int64(42)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	bdptConfig := scene.SamplingConfig{MaxDepth: 5}
	bdptIntegrator := NewBDPTIntegrator(bdptConfig)

	cameraPath := bdptIntegrator.generateCameraSubpath(rayToLight, s, sampler, bdptConfig.MaxDepth)

	if cameraPath.Length < 2 {
		t.Fatalf("Camera path should have at least 2 vertices, got %d", cameraPath.Length)
	}

	cameraVertex := cameraPath.Vertices[0]
	if !cameraVertex.IsCamera {
		t.Errorf("First vertex should be camera, got IsCamera=%v", cameraVertex.IsCamera)
	}
	if cameraVertex.IsLight {
		t.Errorf("Camera vertex should not be marked as light, got IsLight=%v", cameraVertex.IsLight)
	}

	foundLight := false
	for i, vertex := range cameraPath.Vertices {
		if vertex.EmittedLight.Luminance() > 0 {
			foundLight = true
			t.Logf("Found light hit at vertex %d: emission=%v", i, vertex.EmittedLight)

			if !vertex.IsLight {
				t.Errorf("Vertex %d hits light but IsLight=false", i)
			}
			break
		}
	}

	if !foundLight {
		t.Errorf("Camera path pointing at light should hit light source")
	}
}

// TestBDPTConnectionStrategy tests that BDPT can connect camera and light paths
func TestBDPTConnectionStrategy(t *testing.T) {
	s := createMinimalCornellScene(true)

	seed := int64(42)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	bdptConfig := scene.SamplingConfig{MaxDepth: 5}
	bdptIntegrator := NewBDPTIntegrator(bdptConfig)

	rayToFloor := core.NewRay(
		core.NewVec3(278, 400, -200),
		core.NewVec3(0, -1, 0.5).Normalize(),
	)
	cameraPath := bdptIntegrator.generateCameraSubpath(rayToFloor, s, sampler, bdptConfig.MaxDepth)
	lightPath := bdptIntegrator.generateLightSubpath(s, sampler, bdptConfig.MaxDepth)

	if cameraPath.Length == 0 {
		t.Fatalf("Camera path should have vertices")
	}
	if lightPath.Length == 0 {
		t.Fatalf("Light path should have vertices")
	}

	foundFloorHit := false
	for i, vertex := range cameraPath.Vertices {
		if vertex.Material != nil && vertex.Point.Y < 1.0 {
			foundFloorHit = true
			t.Logf("Camera path hits floor at vertex %d: pos=%v", i, vertex.Point)
			break
		}
	}
	if !foundFloorHit {
		t.Errorf("Camera path should hit floor for connection test")
	}

	if !lightPath.Vertices[0].IsLight {
		t.Errorf("Light path should start with light vertex")
	}
	if lightPath.Vertices[0].EmittedLight.Luminance() <= 0 {
		t.Errorf("Light path should start with positive emission")
	}

	if cameraPath.Length >= 2 && lightPath.Length >= 1 {
		contribution := bdptIntegrator.evaluateConnectionStrategy(cameraPath, lightPath, 1, 2, s)
		t.Logf("Connection strategy (s=1, t=2) contribution: %v (luminance: %.6f)",
			contribution, contribution.Luminance())

		if contribution.Luminance() <= 0 {
			t.Errorf("Connection strategy should produce positive contribution when connecting light source to floor hit")
		}
	}
}

// TestBDPTPathIndexing verifies how paths are indexed in our implementation
func TestBDPTPathIndexing(t *testing.T) {
	s := createMinimalCornellScene(true)

	seed := int64(42)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	bdptConfig := scene.SamplingConfig{MaxDepth: 5}
	bdptIntegrator := NewBDPTIntegrator(bdptConfig)

	rayToFloor := core.NewRay(
		core.NewVec3(278, 400, -200),
		core.NewVec3(0, -1, 0.5).Normalize(),
	)
	cameraPath := bdptIntegrator.generateCameraSubpath(rayToFloor, s, sampler, bdptConfig.MaxDepth)
	lightPath := bdptIntegrator.generateLightSubpath(s, sampler, bdptConfig.MaxDepth)

	t.Logf("=== CAMERA PATH (length %d) ===", cameraPath.Length)
	for i, vertex := range cameraPath.Vertices {
		t.Logf("  Vertex[%d]: pos=%v, IsCamera=%v, IsLight=%v, Material=%v",
			i, vertex.Point, vertex.IsCamera, vertex.IsLight, vertex.Material != nil)
	}

	t.Logf("=== LIGHT PATH (length %d) ===", lightPath.Length)
	for i, vertex := range lightPath.Vertices {
		t.Logf("  Vertex[%d]: pos=%v, IsCamera=%v, IsLight=%v, Material=%v",
			i, vertex.Point, vertex.IsCamera, vertex.IsLight, vertex.Material != nil)
	}

	if cameraPath.Length >= 2 && lightPath.Length >= 1 {
		t.Logf("=== Standard BDPT s=0,t=1 connection ===")
		t.Logf("s=0 should be light source: %v", lightPath.Vertices[0])
		t.Logf("t=1 should be first camera bounce: %v", cameraPath.Vertices[1])

		contribution := bdptIntegrator.evaluateConnectionStrategy(cameraPath, lightPath, 0, 1, s)
		t.Logf("Connection contribution: %v (luminance: %.6f)", contribution, contribution.Luminance())
	}
}

func LogPath(t *testing.T, name string, path Path) {
	t.Logf("=== %s path (length: %d) ===", name, path.Length)
	for i, vertex := range path.Vertices {
		if vertex.IsLight {
			t.Logf("  %s[%d]: LIGHT    pos=%v, fwdPdf=%0.3g, revPdf=%0.3g, beta=%v, Emission=%v",
				name, i, vertex.Point, vertex.AreaPdfForward, vertex.AreaPdfReverse, vertex.Beta, vertex.EmittedLight)

		} else if vertex.IsCamera {
			t.Logf("  %s[%d]: CAMERA   pos=%v, fwdPdf=%0.3g, revPdf=%0.3g, beta=%v",
				name, i, vertex.Point, vertex.AreaPdfForward, vertex.AreaPdfReverse, vertex.Beta)
		} else if vertex.IsSpecular {
			t.Logf("  %s[%d]: SPECULAR pos=%v, fwdPdf=%0.3g, revPdf=%0.3g, beta=%v, Material=%v",
				name, i, vertex.Point, vertex.AreaPdfForward, vertex.AreaPdfReverse, vertex.Beta, vertex.Material != nil)
		} else {
			t.Logf("  %s[%d]: MATERIAL pos=%v, fwdPdf=%0.3g, revPdf=%0.3g, beta=%v, Material=%v",
				name, i, vertex.Point, vertex.AreaPdfForward, vertex.AreaPdfReverse, vertex.Beta, vertex.Material != nil)
		}

	}
}

// TestBDPTvsPathTracingBackgroundHandling compares BDPT vs PT with a background plane
func TestBDPTvsPathTracingBackgroundHandling(t *testing.T) {
	testScene, config := SceneWithGroundPlane(true, false)
	testRays := GroundPlaneTestRays()

	bdpt := NewBDPTIntegrator(config)
	pt := NewPathTracingIntegrator(config)

	for _, testRay := range testRays {
		bdptResult, _ := bdpt.RayColor(testRay.ray, testScene, core.NewRandomSampler(rand.New(rand.NewSource(42))))
		ptResult, _ := pt.RayColor(testRay.ray, testScene, core.NewRandomSampler(rand.New(rand.NewSource(42))))

		t.Logf("%s: BDPT=%v, PT=%v", testRay.name, bdptResult, ptResult)

		ratio := bdptResult.Luminance() / ptResult.Luminance()
		if ratio < 0.8 || ratio > 1.2 {
			t.Errorf("FAIL: %s ray luminance ratio of %.3f: BDPT=%v, PT=%v", testRay.name, ratio, bdptResult, ptResult)
		}
	}
}

// Test BDPT vs Path Tracing consistency
func TestBDPTvsPathTracingConsistency(t *testing.T) {
	emissiveMaterial := material.NewEmissive(core.NewVec3(2, 2, 2))
	light := lights.NewSphereLight(core.NewVec3(0, 3, 0), 0.5, emissiveMaterial)

	lambertian := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertian)

	cam := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 3, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: 1,
	})

	infiniteLight := lights.NewGradientInfiniteLight(
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(0.05, 0.05, 0.05),
	)

	testScene := &scene.Scene{
		Camera:           cam,
		Shapes:           []geometry.Shape{light.Sphere, sphere},
		Lights:           []lights.Light{light, infiniteLight},
		BackgroundTop:    core.NewVec3(0.1, 0.1, 0.1),
		BackgroundBottom: core.NewVec3(0.05, 0.05, 0.05),
		SamplingConfig:   scene.SamplingConfig{MaxDepth: 5},
	}
	if err := testScene.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	config := scene.SamplingConfig{MaxDepth: 5}

	pathTracer := NewPathTracingIntegrator(config)
	bdptTracer := NewBDPTIntegrator(config)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	numSamples := 100
	var pathTracingTotal, bdptTotal core.Vec3

	for i := 0; i < numSamples; i++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(42 + i))))

		ptResult, _ := pathTracer.RayColor(ray, testScene, sampler)
		pathTracingTotal = pathTracingTotal.Add(ptResult)

		bdptSampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(42 + i))))
		bdptResult, _ := bdptTracer.RayColor(ray, testScene, bdptSampler)
		bdptTotal = bdptTotal.Add(bdptResult)
	}

	pathTracingAvg := pathTracingTotal.Multiply(1.0 / float64(numSamples))
	bdptAvg := bdptTotal.Multiply(1.0 / float64(numSamples))

	tolerance := 0.01

	if math.Abs(pathTracingAvg.X-bdptAvg.X) > tolerance ||
		math.Abs(pathTracingAvg.Y-bdptAvg.Y) > tolerance ||
		math.Abs(pathTracingAvg.Z-bdptAvg.Z) > tolerance {
		t.Errorf("BDPT and Path Tracing results differ too much:\nPath Tracing: %v\nBDPT: %v",
			pathTracingAvg, bdptAvg)
	}

	if pathTracingAvg.Luminance() < 0.01 {
		t.Error("Path tracing produced unexpectedly dark result")
	}

	if bdptAvg.Luminance() < 0.01 {
		t.Error("BDPT produced unexpectedly dark result")
	}
}

func SceneWithGroundPlane(includeBackground bool, includeLight bool) (*scene.Scene, scene.SamplingConfig) {
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	groundQuad := scene.NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen)

	shapes := []geometry.Shape{groundQuad}
	var sceneLights []lights.Light
	if includeLight {
		emissiveMaterial := material.NewEmissive(core.NewVec3(15.0, 14.0, 13.0))
		light := lights.NewSphereLight(core.NewVec3(30, 30.5, 15), 10, emissiveMaterial)
		shapes = append(shapes, light.Sphere)
		sceneLights = append(sceneLights, light)
	}

	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2),
		LookAt:        core.NewVec3(0, 0.5, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0,
	}

	config := scene.SamplingConfig{MaxDepth: 3, RussianRouletteMinBounces: 100}

	if includeBackground {
		infiniteLight := lights.NewGradientInfiniteLight(
			core.NewVec3(0.5, 0.7, 1.0),
			core.NewVec3(1.0, 1.0, 1.0),
		)
		sceneLights = append(sceneLights, infiniteLight)
	}

	testScene := &scene.Scene{
		Camera:         geometry.NewCamera(defaultCameraConfig),
		Shapes:         shapes,
		Lights:         sceneLights,
		SamplingConfig: config,
	}
	if err := testScene.Preprocess(); err != nil {
		panic(err)
	}

	return testScene, config
}

// TestInfiniteLightEmissionSampling tests that infinite lights emit rays toward the scene properly
func TestInfiniteLightEmissionSampling(t *testing.T) {
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	groundQuad := scene.NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0, lambertianGreen)

	infiniteLight := lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0),
		core.NewVec3(1.0, 1.0, 1.0),
	)

	testScene := &scene.Scene{
		Shapes:         []geometry.Shape{groundQuad},
		Lights:         []lights.Light{infiniteLight},
		SamplingConfig: scene.SamplingConfig{MaxDepth: 3},
	}
	if err := testScene.Preprocess(); err != nil {
		t.Fatalf("Failed to preprocess infinite light: %v", err)
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	t.Logf("=== Testing Infinite Light Emission Sampling ===")

	intersectionCount := 0
	totalSamples := 10

	for i := 0; i < totalSamples; i++ {
		sample := infiniteLight.SampleEmission(sampler.Get2D(), sampler.Get2D())

		t.Logf("Sample %d:", i)
		t.Logf("  Point: %v", sample.Point)
		t.Logf("  Direction: %v", sample.Direction)
		t.Logf("  Normal: %v", sample.Normal)
		t.Logf("  AreaPDF: %f, DirectionPDF: %f", sample.AreaPDF, sample.DirectionPDF)

		emissionRay := core.NewRay(sample.Point, sample.Direction)

		sceneCenter := core.NewVec3(0, 0, 0)
		toScene := sceneCenter.Subtract(sample.Point).Normalize()
		dotProduct := sample.Direction.Dot(toScene)
		t.Logf("  Direction toward scene center: %f (should be > 0.5)", dotProduct)

		var hit core.HitRecord
		isHit := testScene.GetBVH().Hit(emissionRay, 0.001, math.Inf(1), &hit)
		if isHit {
			intersectionCount++
			t.Logf("  HIT: %v (material: %v)", hit.Point, hit.Material != nil)
		} else {
			t.Logf("  MISS: Ray did not intersect scene")
		}
	}

	t.Logf("Intersection rate: %d/%d (%.1f%%)", intersectionCount, totalSamples, float64(intersectionCount)*100.0/float64(totalSamples))

	if intersectionCount == 0 {
		t.Errorf("No emission rays intersected the scene - this suggests rays are pointing away from scene")
	}

	if float64(intersectionCount)/float64(totalSamples) < 0.16 {
		t.Errorf("Too few emission rays intersected scene: %d/%d (%.1f%%). Expected >16%%",
			intersectionCount, totalSamples, float64(intersectionCount)*100.0/float64(totalSamples))
	}
}

// TestBDPTvsPathTracingReflectiveGround tests BDPT vs PT on a reflective surface
// This isolates potential issues with specular paths in BDPT
func TestBDPTvsPathTracingReflectiveGround(t *testing.T) {
	testScene, config := SceneWithReflectiveGroundPlane()

	bdpt := NewBDPTIntegrator(config)
	bdpt.Verbose = false
	pt := NewPathTracingIntegrator(config)

	cameraCenter := core.NewVec3(0, 2, 2)
	rayToGround := core.NewRay(cameraCenter, core.NewVec3(0, -0.8, -0.6).Normalize())

	t.Logf("=== Testing Reflective Ground ===")

	numSamples := 50
	var ptTotal, bdptTotal core.Vec3

	for i := 0; i < numSamples; i++ {
		ptSampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(100 + i))))
		bdptSampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(100 + i))))

		ptResult, _ := pt.RayColor(rayToGround, testScene, ptSampler)
		bdptResult, _ := bdpt.RayColor(rayToGround, testScene, bdptSampler)

		ptTotal = ptTotal.Add(ptResult)
		bdptTotal = bdptTotal.Add(bdptResult)
	}

	ptAvg := ptTotal.Multiply(1.0 / float64(numSamples))
	bdptAvg := bdptTotal.Multiply(1.0 / float64(numSamples))

	t.Logf("Path Tracing average: %v (luminance: %.6f)", ptAvg, ptAvg.Luminance())
	t.Logf("BDPT average: %v (luminance: %.6f)", bdptAvg, bdptAvg.Luminance())

	ratio := bdptAvg.Luminance() / ptAvg.Luminance()
	t.Logf("BDPT/PT ratio: %.3f", ratio)

	if ratio < 0.95 || ratio > 1.05 {
		t.Errorf("FAIL: Reflective ground BDPT/PT ratio %.3f outside expected range [0.95, 1.05]: PT=%v, BDPT=%v",
			ratio, ptAvg, bdptAvg)
	}
}

func SceneWithReflectiveGroundPlane() (*scene.Scene, scene.SamplingConfig) {
	metalMaterial := material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0)
	groundQuad := scene.NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0, metalMaterial)

	shapes := []geometry.Shape{groundQuad}

	infiniteLight := lights.NewGradientInfiniteLight(
		core.NewVec3(0.8, 0.9, 1.0),
		core.NewVec3(0.9, 0.9, 1.0),
	)

	cam := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	})

	config := scene.SamplingConfig{MaxDepth: 6, RussianRouletteMinBounces: 100}

	testScene := &scene.Scene{
		Camera:         cam,
		Shapes:         shapes,
		Lights:         []lights.Light{infiniteLight},
		SamplingConfig: config,
	}
	if err := testScene.Preprocess(); err != nil {
		panic(err)
	}

	return testScene, config
}

func GroundPlaneTestRays() []struct {
	name string
	ray  core.Ray
} {
	cameraCenter := core.NewVec3(0, 0.75, 2)
	return []struct {
		name string
		ray  core.Ray
	}{
		{"Sky", core.NewRay(cameraCenter, core.NewVec3(0, 1, 0))},
		{"Ground", core.NewRay(cameraCenter, core.NewVec3(0, 0.5, -1).Subtract(cameraCenter).Normalize())},
		{"Far", core.NewRay(cameraCenter, core.NewVec3(0, 0.5, -100).Subtract(cameraCenter).Normalize())},
	}
}
