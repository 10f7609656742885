// Package imageio holds the progressive accumulator image and its
// persistence: a float (r,g,b,n) pixel container with a flat string
// metadata dictionary, a binary codec for saving/loading that container,
// and an LDR PNG export for previews.
package imageio

import (
	"fmt"

	"github.com/ciechowoj/haste-go/pkg/core"
)

// Pixel is one accumulator cell: a running radiance sum and the number of
// samples in that sum (Color divides one by the other), so further samples
// can still be added without re-averaging.
type Pixel struct {
	R, G, B float64
	N       float64
}

// Color returns the averaged radiance at this pixel.
func (p Pixel) Color() core.Vec3 {
	if p.N <= 0 {
		return core.Vec3{}
	}
	return core.Vec3{X: p.R / p.N, Y: p.G / p.N, Z: p.B / p.N}
}

// Add accumulates one more sample of the given radiance.
func (p *Pixel) Add(c core.Vec3) {
	p.R += c.X
	p.G += c.Y
	p.B += c.Z
	p.N++
}

// Merge combines another pixel's accumulated sum and count into this one
// (the correct way to merge two progressive accumulators covering the same
// pixel, per original_source/Application.cpp's merge subcommand: sums, not
// averages, are additive).
func (p *Pixel) Merge(other Pixel) {
	p.R += other.R
	p.G += other.G
	p.B += other.B
	p.N += other.N
}

// Image is a windowed view over a (r,g,b,n) pixel buffer, mirroring
// original_source/ImageView.hpp's subimage_view_t: a full backing buffer of
// Width x Height, with an optional offset/window subrange that Crop can
// narrow further without copying pixel data.
type Image struct {
	Pixels  []Pixel
	Width   int
	Height  int
	XOffset int
	YOffset int
	XWindow int
	YWindow int

	Metadata map[string]string
}

// NewImage allocates a full-frame image with a window covering the whole
// buffer.
func NewImage(width, height int) *Image {
	return &Image{
		Pixels:   make([]Pixel, width*height),
		Width:    width,
		Height:   height,
		XWindow:  width,
		YWindow:  height,
		Metadata: map[string]string{},
	}
}

// InWindow reports whether (x,y), in absolute buffer coordinates, falls
// inside this view's window.
func (img *Image) InWindow(x, y int) bool {
	return img.XOffset <= x && x < img.XOffset+img.XWindow &&
		img.YOffset <= y && y < img.YOffset+img.YWindow
}

// AbsAt returns a pointer to the pixel at absolute buffer coordinates.
func (img *Image) AbsAt(x, y int) *Pixel {
	return &img.Pixels[y*img.Width+x]
}

// RelAt returns a pointer to the pixel at coordinates relative to this
// view's window offset.
func (img *Image) RelAt(x, y int) *Pixel {
	return img.AbsAt(x+img.XOffset, y+img.YOffset)
}

// Crop narrows the view to the rectangle [x0,x1)x[y0,y1) in window-relative
// coordinates, returning a new Image sharing the same backing Pixels slice.
func (img *Image) Crop(x0, y0, x1, y1 int) (*Image, error) {
	if x0 < 0 || y0 < 0 || x1 > img.XWindow || y1 > img.YWindow || x0 > x1 || y0 > y1 {
		return nil, fmt.Errorf("imageio: crop rectangle [%d,%d,%d,%d) out of window bounds (%dx%d)", x0, y0, x1, y1, img.XWindow, img.YWindow)
	}

	cropped := *img
	cropped.XOffset += x0
	cropped.XWindow = x1 - x0
	cropped.YOffset += y0
	cropped.YWindow = y1 - y0
	return &cropped, nil
}

// Flatten returns the window's pixels as a flat (r,g,b) float64 slice, in
// row-major order, for pkg/stats.AggregateError to consume.
func (img *Image) Flatten() []float64 {
	out := make([]float64, 0, img.XWindow*img.YWindow*3)
	for y := 0; y < img.YWindow; y++ {
		for x := 0; x < img.XWindow; x++ {
			c := img.RelAt(x, y).Color()
			out = append(out, c.X, c.Y, c.Z)
		}
	}
	return out
}
