package integrator

import (
	"math/rand"

	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/geometry"
	"github.com/ciechowoj/haste-go/pkg/lights"
	"github.com/ciechowoj/haste-go/pkg/material"
	"github.com/ciechowoj/haste-go/pkg/scene"
)

// TestSampler replays a fixed, cycling sequence of samples so BDPT path
// generation is reproducible across test runs.
type TestSampler struct {
	floats   []float64
	vec2s    []core.Vec2
	vec3s    []core.Vec3
	fi, vi2, vi3 int
	rng      *rand.Rand
}

func NewTestSampler(floats []float64, vec2s []core.Vec2, vec3s []core.Vec3) *TestSampler {
	return &TestSampler{floats: floats, vec2s: vec2s, vec3s: vec3s, rng: rand.New(rand.NewSource(1))}
}

func (s *TestSampler) Get1D() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *TestSampler) Get2D() core.Vec2 {
	if len(s.vec2s) == 0 {
		return core.NewVec2(0.5, 0.5)
	}
	v := s.vec2s[s.vi2%len(s.vec2s)]
	s.vi2++
	return v
}

func (s *TestSampler) Get3D() core.Vec3 {
	if len(s.vec3s) == 0 {
		return core.NewVec3(0, 0, 1)
	}
	v := s.vec3s[s.vi3%len(s.vec3s)]
	s.vi3++
	return v
}

func (s *TestSampler) Rand() *rand.Rand { return s.rng }

// Reset rewinds the replay cursors so a sampler can be reused across subtests.
func (s *TestSampler) Reset() {
	s.fi, s.vi2, s.vi3 = 0, 0, 0
}

// ExpectedVertex describes the beta/flags a path vertex is expected to carry.
type ExpectedVertex struct {
	index        int
	expectedBeta core.Vec3
	isLight      bool
	isCamera     bool
	isSpecular   bool
	tolerance    float64
}

// ExpectedPdfVertex describes the forward/reverse area PDFs expected at a vertex.
type ExpectedPdfVertex struct {
	index              int
	expectedForwardPdf float64
	expectedReversePdf float64
	tolerance          float64
	description        string
}

// createSceneWithLight builds a single diffuse sphere lit by the given light.
func createSceneWithLight(light lights.Light) *scene.Scene {
	white := material.NewLambertian(core.NewVec3(0.7, 0.5, 0.3))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 0.01, white)

	shapes := []geometry.Shape{sphere}
	switch l := light.(type) {
	case *lights.QuadLight:
		shapes = append(shapes, l.Quad)
	case *lights.SphereLight:
		shapes = append(shapes, l.Sphere)
	}

	s := &scene.Scene{
		Camera:           newTestCamera(),
		Shapes:           shapes,
		Lights:           []lights.Light{light},
		LightSampler:     lights.NewWeightedLightSampler([]lights.Light{light}, nil, 10.0),
		BVH:              geometry.NewBVH(shapes),
		BackgroundTop:    core.NewVec3(0, 0, 0),
		BackgroundBottom: core.NewVec3(0, 0, 0),
		SamplingConfig:   scene.SamplingConfig{MaxDepth: 5},
	}
	return s
}

// createGlancingTestSceneWithMaterial returns a scene containing a single
// sphere at (0,0,-2) with the given material and no lights, used for camera
// path beta-propagation checks.
func createGlancingTestSceneWithMaterial(mat core.Material) *scene.Scene {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 1.0, mat)
	shapes := []geometry.Shape{sphere}

	return &scene.Scene{
		Camera:           newTestCamera(),
		Shapes:           shapes,
		Lights:           []lights.Light{},
		LightSampler:     lights.NewWeightedLightSampler(nil, nil, 10.0),
		BVH:              geometry.NewBVH(shapes),
		BackgroundTop:    core.NewVec3(0.3, 0.3, 0.3),
		BackgroundBottom: core.NewVec3(0.1, 0.1, 0.1),
		SamplingConfig:   scene.SamplingConfig{MaxDepth: 5},
	}
}

// createGlancingTestSceneAndRay returns the same sphere scene together with a
// ray that strikes the sphere at a glancing angle.
func createGlancingTestSceneAndRay(mat core.Material) (*scene.Scene, core.Ray) {
	s := createGlancingTestSceneWithMaterial(mat)
	ray := core.NewRayTo(core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0, -1.5))
	return s, ray
}

// createLightSceneWithMaterial builds a scene with a small emissive sphere
// above a sphere of the given material, for light subpath generation tests.
func createLightSceneWithMaterial(mat core.Material) *scene.Scene {
	surface := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)
	emissive := material.NewEmissive(core.NewVec3(5.0, 5.0, 5.0))
	light := lights.NewSphereLight(core.NewVec3(0, 2, -1), 0.3, emissive)

	shapes := []geometry.Shape{surface, light.Sphere}
	sceneLights := []lights.Light{light}

	return &scene.Scene{
		Camera:           newTestCamera(),
		Shapes:           shapes,
		Lights:           sceneLights,
		LightSampler:     lights.NewWeightedLightSampler(sceneLights, nil, 10.0),
		BVH:              geometry.NewBVH(shapes),
		BackgroundTop:    core.NewVec3(0, 0, 0),
		BackgroundBottom: core.NewVec3(0, 0, 0),
		SamplingConfig:   scene.SamplingConfig{MaxDepth: 5},
	}
}

// createTestAreaLight returns a simple sphere light for PDF-calculation tests.
func createTestAreaLight() lights.Light {
	emissive := material.NewEmissive(core.NewVec3(5.0, 5.0, 5.0))
	return lights.NewSphereLight(core.NewVec3(0, 1, 0), 0.2, emissive)
}

// createTestCameraPath builds a synthetic camera subpath: a camera vertex
// followed by one surface vertex per material/point pair.
func createTestCameraPath(materials []core.Material, points []core.Vec3) Path {
	vertices := make([]Vertex, 0, len(points))
	vertices = append(vertices, Vertex{
		Point:    points[0],
		Normal:   core.NewVec3(0, 0, 1),
		IsCamera: true,
		Beta:     core.Vec3{X: 1, Y: 1, Z: 1},
	})
	for i, mat := range materials {
		p := points[i+1]
		vertices = append(vertices, Vertex{
			Point:          p,
			Normal:         core.NewVec3(0, 1, 0),
			Material:       mat,
			Beta:           core.Vec3{X: 1, Y: 1, Z: 1},
			AreaPdfForward: 1.0,
			AreaPdfReverse: 1.0,
		})
	}
	return Path{Vertices: vertices, Length: len(vertices)}
}

// createTestLightPath builds a synthetic light subpath: a light vertex
// followed by one surface vertex per material/point pair.
func createTestLightPath(materials []core.Material, points []core.Vec3) Path {
	vertices := make([]Vertex, 0, len(points))
	vertices = append(vertices, Vertex{
		Point:        points[0],
		Normal:       core.NewVec3(0, -1, 0),
		IsLight:      true,
		Light:        createTestAreaLight(),
		EmittedLight: core.NewVec3(5.0, 5.0, 5.0),
		Beta:         core.Vec3{X: 1, Y: 1, Z: 1},
	})
	for i, mat := range materials[1:] {
		p := points[i+1]
		vertices = append(vertices, Vertex{
			Point:          p,
			Normal:         core.NewVec3(0, 1, 0),
			Material:       mat,
			Beta:           core.Vec3{X: 1, Y: 1, Z: 1},
			AreaPdfForward: 1.0,
			AreaPdfReverse: 1.0,
		})
	}
	return Path{Vertices: vertices, Length: len(vertices)}
}
