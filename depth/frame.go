// Package depth turns depth frames into coarse obstacle grids and display images
package depth

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Frame is one depth image, each sample a distance in millimetres, zero = invalid
// Backed by a Gray16 image anchored at the origin so it can be scaled directly
type Frame struct {
	img *image.Gray16
}

// NewFrame allocates an all-invalid frame
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewGray16(image.Rect(0, 0, width, height))}
}

// FrameFromImage adopts a 16-bit grayscale image, gray values are millimetres
// Other images are rejected: the colour model would rescale 8-bit gray by 257 and no longer read as mm
func FrameFromImage(src image.Image) (*Frame, error) {
	g, ok := src.(*image.Gray16)
	if !ok {
		return nil, errors.Errorf("depth frame must be 16-bit grayscale, got %T", src)
	}
	if g.Bounds().Min == (image.Point{}) {
		return &Frame{img: g}, nil
	}
	b := g.Bounds()
	dst := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), g, b.Min, draw.Src)
	return &Frame{img: dst}, nil
}

func (f *Frame) Width() int {
	return f.img.Rect.Dx()
}

func (f *Frame) Height() int {
	return f.img.Rect.Dy()
}

// At returns the sample at column x, row y
func (f *Frame) At(x, y int) uint16 {
	return f.img.Gray16At(x, y).Y
}

// Set writes the sample at column x, row y
func (f *Frame) Set(x, y int, mm uint16) {
	f.img.SetGray16(x, y, color.Gray16{Y: mm})
}

// Fill sets every sample to mm
func (f *Frame) Fill(mm uint16) {
	f.FillRect(f.img.Rect, mm)
}

// FillRect sets every sample inside r, clipped to the frame
func (f *Frame) FillRect(r image.Rectangle, mm uint16) {
	r = r.Intersect(f.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			f.Set(x, y, mm)
		}
	}
}

// Image exposes the backing image, callers must not retain it past the iteration
func (f *Frame) Image() *image.Gray16 {
	return f.img
}

// Mirror returns a horizontally flipped copy
func (f *Frame) Mirror() *Frame {
	w, h := f.Width(), f.Height()
	out := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, f.At(x, y))
		}
	}
	return out
}

// Threshold zeroes, in place, every sample outside [lo, hi]
// Mirrors the sensor-side threshold filter, so out-of-range readings count as invalid
func (f *Frame) Threshold(lo, hi uint16) {
	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if v := f.At(x, y); v < lo || v > hi {
				f.Set(x, y, 0)
			}
		}
	}
}
