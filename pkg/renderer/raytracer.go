package renderer

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/ciechowoj/haste-go/pkg/core"
	"github.com/ciechowoj/haste-go/pkg/integrator"
	"github.com/ciechowoj/haste-go/pkg/scene"
)

// Raytracer drives a single-threaded full-frame render pass, delegating
// per-ray color computation to an Integrator through a TileRenderer.
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	tile       *TileRenderer
	config     scene.SamplingConfig
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer for the given scene and integrator
func NewRaytracer(s *scene.Scene, width, height int, integratorInst integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      s,
		width:      width,
		height:     height,
		tile:       NewTileRenderer(s, integratorInst),
		config:     s.GetSamplingConfig(),
		integrator: integratorInst,
	}
}

// MergeSamplingConfig updates only the non-zero fields from the provided config
func (rt *Raytracer) MergeSamplingConfig(updates scene.SamplingConfig) {
	if updates.SamplesPerPixel != 0 {
		rt.config.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth != 0 {
		rt.config.MaxDepth = updates.MaxDepth
	}
	if updates.RussianRouletteMinBounces != 0 {
		rt.config.RussianRouletteMinBounces = updates.RussianRouletteMinBounces
	}
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() scene.SamplingConfig {
	return rt.config
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config scene.SamplingConfig) {
	rt.config = config
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// RenderBounds renders pixels within the specified bounds using the configured integrator
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) RenderStats {
	return rt.tile.RenderTileBounds(bounds, pixelStats, random, rt.config.SamplesPerPixel)
}

// RenderPass renders a single pass with adaptive sampling and returns an image and statistics.
// Adaptive sampling automatically adjusts the number of samples per pixel based on variance,
// using fewer samples for smooth areas and more samples for noisy/complex areas.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	random := rand.New(rand.NewSource(42))

	pixelStats := make([][]PixelStats, rt.height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, rt.width)
	}

	bounds := image.Rect(0, 0, rt.width, rt.height)
	stats := rt.RenderBounds(bounds, pixelStats, random)

	img := image.NewRGBA(bounds)
	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			colorVec := pixelStats[j][i].GetColor()
			pixelColor := rt.vec3ToColor(colorVec)
			img.SetRGBA(i, j, pixelColor)
		}
	}

	return img, stats
}
