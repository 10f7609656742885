package geometry

import (
	"math"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// CameraConfig describes a thin-lens perspective camera. Aperture 0 gives an
// ordinary pinhole camera; FocusDistance 0 auto-calculates the distance from
// Center to LookAt.
type CameraConfig struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	Width         int
	AspectRatio   float64
	VFov          float64 // vertical field of view, degrees
	Aperture      float64
	FocusDistance float64
}

// MergeCameraConfig overlays non-zero fields of override onto base, so
// scene constructors can expose a partial CameraConfig (e.g. just Width)
// without repeating every default field.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	zero := core.Vec3{}
	if override.Center != zero {
		merged.Center = override.Center
	}
	if override.LookAt != zero {
		merged.LookAt = override.LookAt
	}
	if override.Up != zero {
		merged.Up = override.Up
	}
	if override.Width != 0 {
		merged.Width = override.Width
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		merged.VFov = override.VFov
	}
	if override.Aperture != 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		merged.FocusDistance = override.FocusDistance
	}
	return merged
}

// Camera is a thin-lens perspective camera: GetRay draws samples for
// rendering (pixel jitter plus lens jitter for depth of field), while
// SampleCameraFromPoint/EvaluateRayImportance/MapRayToPixel let a light
// subpath connect directly to the camera (the t=1 bidirectional strategy),
// mirroring how pkg/lights.Light supports both directions of sampling.
type Camera struct {
	config CameraConfig

	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3

	u, v, w core.Vec3 // u=right, v=up, w=backward (points from scene toward camera)

	lensRadius    float64
	focusDistance float64
	halfWidth     float64
	halfHeight    float64
	height        int
}

// NewCamera builds a Camera from config, deriving the orthonormal basis and
// image-plane extents, with a lens radius for defocus blur.
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
		if focusDistance <= 0 {
			focusDistance = 1.0
		}
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta/2) * focusDistance
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(2 * halfHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	height := config.Height()

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		focusDistance:   focusDistance,
		halfWidth:       halfWidth,
		halfHeight:      halfHeight,
		height:          height,
	}
}

// Height returns the image height implied by Width/AspectRatio.
func (c CameraConfig) Height() int {
	if c.AspectRatio <= 0 {
		return c.Width
	}
	return int(float64(c.Width)/c.AspectRatio + 0.5)
}

// Config returns the configuration the camera was built from.
func (c *Camera) Config() CameraConfig { return c.config }

// Width returns the image width in pixels.
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels.
func (c *Camera) Height() int { return c.height }

// GetCameraForward returns the direction the camera looks toward (opposite
// of the internal "backward" basis vector w).
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Multiply(-1)
}

func sampleUnitDisk(sample core.Vec2) (float64, float64) {
	r := math.Sqrt(sample.X)
	theta := 2 * math.Pi * sample.Y
	return r * math.Cos(theta), r * math.Sin(theta)
}

// GetRay generates a camera ray through pixel (px, py) (py=0 at the top
// row), jittered within the pixel by pixelSample and, for a non-pinhole
// aperture, within the lens by lensSample.
func (c *Camera) GetRay(px, py int, lensSample, pixelSample core.Vec2) core.Ray {
	width := float64(c.config.Width - 1)
	height := float64(c.height - 1)
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	s := (float64(px) + pixelSample.X) / width
	t := 1.0 - (float64(py)+pixelSample.Y)/height

	origin := c.origin
	if c.lensRadius > 0 {
		lx, ly := sampleUnitDisk(lensSample)
		offset := c.u.Multiply(lx * c.lensRadius).Add(c.v.Multiply(ly * c.lensRadius))
		origin = origin.Add(offset)
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	direction := target.Subtract(origin).Normalize()

	return core.Ray{Origin: origin, Direction: direction}
}

// lensArea returns the camera's circle-of-confusion area, or 1 for a
// pinhole camera (lensRadius == 0), matching the convention a delta-area
// light uses for its own area measure.
func (c *Camera) lensArea() float64 {
	if c.lensRadius <= 0 {
		return 1.0
	}
	return math.Pi * c.lensRadius * c.lensRadius
}

// imagePlaneArea returns the image plane's area scaled to unit distance
// from the lens, the denominator PBRT's We/pdf_We formulas use.
func (c *Camera) imagePlaneArea() float64 {
	return 4 * c.halfWidth * c.halfHeight / (c.focusDistance * c.focusDistance)
}

// MapRayToPixel projects ray back onto the image plane and returns the
// pixel it lands in. ok is false when the ray points away from the camera
// or lands outside the image plane's extents.
func (c *Camera) MapRayToPixel(ray core.Ray) (int, int, bool) {
	dir := ray.Direction.Normalize()
	forward := c.GetCameraForward()
	cosTheta := dir.Dot(forward)
	if cosTheta <= 1e-6 {
		return 0, 0, false
	}

	t := c.focusDistance / cosTheta
	hitPoint := ray.Origin.Add(dir.Multiply(t))
	planeCenter := c.origin.Add(forward.Multiply(c.focusDistance))
	rel := hitPoint.Subtract(planeCenter)

	su := rel.Dot(c.u) / c.halfWidth
	sv := rel.Dot(c.v) / c.halfHeight
	if su < -1 || su > 1 || sv < -1 || sv > 1 {
		return 0, 0, false
	}

	px := int(((su+1)/2)*float64(c.config.Width-1) + 0.5)
	py := int(((1-sv)/2)*float64(c.height-1) + 0.5)
	return px, py, true
}

// EvaluateRayImportance evaluates the camera's importance function We(ray):
// the PBRT projective-camera formula 1/(A * lensArea * cos^4(theta)), zero
// outside the field of view or behind the camera.
func (c *Camera) EvaluateRayImportance(ray core.Ray) core.Vec3 {
	dir := ray.Direction.Normalize()
	cosTheta := dir.Dot(c.GetCameraForward())
	if cosTheta <= 1e-6 {
		return core.Vec3{}
	}
	if _, _, ok := c.MapRayToPixel(ray); !ok {
		return core.Vec3{}
	}

	cos2 := cosTheta * cosTheta
	cos4 := cos2 * cos2
	we := 1.0 / (c.imagePlaneArea() * c.lensArea() * cos4)
	return core.Vec3{X: we, Y: we, Z: we}
}

// CalculateRayPDFs returns the position (lens) and direction (solid-angle)
// sampling densities for ray, as if it had been drawn by GetRay. Used by
// the bidirectional estimators to convert a camera subpath vertex's
// densities into area measure.
func (c *Camera) CalculateRayPDFs(ray core.Ray) (pdfPos, pdfDir float64) {
	dir := ray.Direction.Normalize()
	cosTheta := dir.Dot(c.GetCameraForward())
	if cosTheta <= 0 {
		return 0, 0
	}
	pdfPos = 1.0 / c.lensArea()
	pdfDir = 1.0 / (c.imagePlaneArea() * cosTheta * cosTheta * cosTheta)
	return pdfPos, pdfDir
}

// CameraSample is the result of sampling the camera lens from a reference
// point in the scene (the t=1 bidirectional connection strategy): Ray
// points from the sampled lens point toward the reference point, PDF is
// the solid-angle density of that direction as seen from the reference
// point, and Weight is the camera's importance at the sampled ray.
type CameraSample struct {
	Ray    core.Ray
	PDF    float64
	Weight core.Vec3
}

// SampleCameraFromPoint samples a point on the camera's lens (a single
// point for a pinhole camera) and returns the connecting ray toward point,
// or nil if point lies behind the camera or outside its field of view.
func (c *Camera) SampleCameraFromPoint(point core.Vec3, sample core.Vec2) *CameraSample {
	origin := c.origin
	if c.lensRadius > 0 {
		lx, ly := sampleUnitDisk(sample)
		offset := c.u.Multiply(lx * c.lensRadius).Add(c.v.Multiply(ly * c.lensRadius))
		origin = origin.Add(offset)
	}

	toPoint := point.Subtract(origin)
	distance := toPoint.Length()
	if distance == 0 {
		return nil
	}
	direction := toPoint.Multiply(1.0 / distance)

	ray := core.Ray{Origin: origin, Direction: direction}
	cosTheta := direction.Dot(c.GetCameraForward())
	if cosTheta <= 0 {
		return nil
	}
	if _, _, ok := c.MapRayToPixel(ray); !ok {
		return nil
	}

	pdf := (distance * distance) / (c.lensArea() * cosTheta)
	weight := c.EvaluateRayImportance(ray)

	return &CameraSample{Ray: ray, PDF: pdf, Weight: weight}
}
