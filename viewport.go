package main

import "fmt"

// Viewport is a rectangle of the complex plane together with the
// pixel dimensions it is displayed at. It is a value: every operation
// returns a new Viewport and leaves the receiver untouched.
type Viewport struct {
	minRe, minIm float64
	maxRe, maxIm float64
	width        int // pixels
	height       int // pixels
}

// NewViewport returns the viewport with the given bounds and pixel size.
func NewViewport(minRe, minIm, maxRe, maxIm float64, width, height int) Viewport {
	return Viewport{
		minRe:  minRe,
		minIm:  minIm,
		maxRe:  maxRe,
		maxIm:  maxIm,
		width:  width,
		height: height,
	}
}

// DefaultViewport is the conventional framing of the whole set.
func DefaultViewport() Viewport {
	return NewViewport(-2.0, -1.2, 0.8, 1.2, 1000, 1000)
}

// Bounds returns the corners of the visible region.
func (v Viewport) Bounds() (minRe, minIm, maxRe, maxIm float64) {
	return v.minRe, v.minIm, v.maxRe, v.maxIm
}

// Size returns the pixel dimensions.
func (v Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Center returns the middle of the visible region.
func (v Viewport) Center() complex128 {
	return complex((v.minRe+v.maxRe)/2, (v.minIm+v.maxIm)/2)
}

// PixelSize is the plane distance covered by one pixel. The larger of
// the two axis scales is used so the image is never stretched.
func (v Viewport) PixelSize() float64 {
	pw := (v.maxRe - v.minRe) / float64(v.width)
	ph := (v.maxIm - v.minIm) / float64(v.height)
	return max(pw, ph)
}

// FitToScreen returns the viewport around the same center rescaled to
// fill width x height pixels without distortion, and its pixel size.
func (v Viewport) FitToScreen(width, height int) (Viewport, float64) {
	resized := v
	resized.width = width
	resized.height = height
	fitted := resized.Zoom(1.0)
	return fitted, fitted.PixelSize()
}

// Zoom scales the visible region around its center. Factors below 1
// zoom in, above 1 zoom out.
func (v Viewport) Zoom(factor float64) Viewport {
	return v.around(v.Center(), factor*v.PixelSize())
}

// around recomputes both axes from a single pixel size, which keeps
// the aspect ratio at 1:1.
func (v Viewport) around(c complex128, pixelSize float64) Viewport {
	radiusRe := float64(v.width) * pixelSize / 2
	radiusIm := float64(v.height) * pixelSize / 2
	return Viewport{
		minRe:  real(c) - radiusRe,
		minIm:  imag(c) - radiusIm,
		maxRe:  real(c) + radiusRe,
		maxIm:  imag(c) + radiusIm,
		width:  v.width,
		height: v.height,
	}
}

// MoveLeft moves the visible window left by pixels; negative values
// move it right.
func (v Viewport) MoveLeft(pixels float64) Viewport {
	d := pixels * v.PixelSize()
	v.minRe -= d
	v.maxRe -= d
	return v
}

// MoveDown moves the visible window down by pixels; negative values
// move it up.
func (v Viewport) MoveDown(pixels float64) Viewport {
	d := pixels * v.PixelSize()
	v.minIm -= d
	v.maxIm -= d
	return v
}

// Point returns the plane coordinate at the center of pixel (x, y).
// Row 0 is the top of the image, at maxIm.
func (v Viewport) Point(x, y int, pixelSize float64) complex128 {
	return complex(
		v.minRe+(float64(x)+0.5)*pixelSize,
		v.maxIm-(float64(y)+0.5)*pixelSize,
	)
}

func (v Viewport) String() string {
	return fmt.Sprintf("re [%.6g, %.6g] im [%.6g, %.6g] %dx%d",
		v.minRe, v.maxRe, v.minIm, v.maxIm, v.width, v.height)
}
