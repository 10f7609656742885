package imageio

import (
	"image"
	"image/color"
	stdpng "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// ToRGBA tonemaps the window to an 8-bit sRGB-gamma preview, the same
// gamma-correction convention the teacher's own renderer output path uses
// (core.Vec3.GammaCorrect).
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.XWindow, img.YWindow))

	const gamma = 1.0 / 2.2
	for y := 0; y < img.YWindow; y++ {
		for x := 0; x < img.XWindow; x++ {
			c := img.RelAt(x, y).Color()
			out.Set(x, y, color.RGBA{
				R: toByte(math.Pow(clamp01(c.X), gamma)),
				G: toByte(math.Pow(clamp01(c.Y), gamma)),
				B: toByte(math.Pow(clamp01(c.Z), gamma)),
				A: 255,
			})
		}
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(x float64) uint8 {
	return uint8(x*255.0 + 0.5)
}

// WritePreviewPNG writes an LDR preview of the window to w, downsampling
// to (maxWidth, maxHeight) with a bilinear filter via x/image/draw when the
// window exceeds those dimensions — used when a progressive snapshot
// needs a cheap thumbnail rather than the full-resolution accumulator.
func (img *Image) WritePreviewPNG(w io.Writer, maxWidth, maxHeight int) error {
	full := img.ToRGBA()

	if maxWidth <= 0 || maxHeight <= 0 || (img.XWindow <= maxWidth && img.YWindow <= maxHeight) {
		return stdpng.Encode(w, full)
	}

	scaled := scaledDimensions(img.XWindow, img.YWindow, maxWidth, maxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, scaled.X, scaled.Y))
	draw.BiLinear.Scale(dst, dst.Bounds(), full, full.Bounds(), draw.Over, nil)

	return stdpng.Encode(w, dst)
}

type dims struct{ X, Y int }

func scaledDimensions(w, h, maxW, maxH int) dims {
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return dims{
		X: maxInt(1, int(float64(w)*scale)),
		Y: maxInt(1, int(float64(h)*scale)),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
