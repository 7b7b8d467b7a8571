package main

import (
	"image"
	"image/color"
	"math"
	"math/cmplx"

	xdraw "golang.org/x/image/draw"
)

// previewScaler upscales reduced resolution frames.
var previewScaler xdraw.Scaler = xdraw.BiLinear

// Palette colours a point outside the set by its smooth escape count.
type Palette func(smooth float64) color.RGBA

// EscapeRenderer draws the Mandelbrot set with the escape time
// algorithm, one pixel after the other.
type EscapeRenderer struct {
	// Scale > 1 renders at 1/Scale of the resolution and upscales
	// the result with Scaler.
	Scale   int
	Scaler  xdraw.Scaler
	Palette Palette
}

// NewEscapeRenderer returns a full resolution renderer with the
// default palette.
func NewEscapeRenderer() *EscapeRenderer {
	return &EscapeRenderer{
		Scale:   1,
		Scaler:  previewScaler,
		Palette: HuePalette,
	}
}

var _ Renderer = (*EscapeRenderer)(nil)

func (r *EscapeRenderer) Render(v Viewport, pixelSize float64, detail int) *image.RGBA {
	if r.Scale <= 1 {
		return r.render(v, pixelSize, detail)
	}

	w, h := v.Size()
	small, smallPixelSize := v.FitToScreen(max(w/r.Scale, 1), max(h/r.Scale, 1))
	src := r.render(small, smallPixelSize, detail)

	scaler := r.Scaler
	if scaler == nil {
		scaler = previewScaler
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func (r *EscapeRenderer) render(v Viewport, pixelSize float64, detail int) *image.RGBA {
	palette := r.Palette
	if palette == nil {
		palette = HuePalette
	}

	w, h := v.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			smooth, inside := escape(v.Point(x, y, pixelSize), detail)
			if inside {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			} else {
				img.SetRGBA(x, y, palette(smooth))
			}
		}
	}
	return img
}

// escape iterates z = z*z + c from zero. It reports whether c stayed
// bounded for maxIter steps and otherwise the smooth iteration count.
func escape(c complex128, maxIter int) (smooth float64, inside bool) {
	z := complex(0, 0)
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return float64(i) + 1 - math.Log(math.Log(cmplx.Abs(z)))/math.Ln2, false
		}
	}
	return float64(maxIter), true
}

// HuePalette cycles through the hue circle every 50 iterations.
func HuePalette(smooth float64) color.RGBA {
	return hsv(math.Mod(smooth*0.02, 1), 1, 1)
}

// GrayPalette maps the escape count to a repeating gray ramp.
func GrayPalette(smooth float64) color.RGBA {
	g := uint8(255 * math.Abs(math.Sin(smooth*0.1)))
	return color.RGBA{g, g, g, 255}
}

// palettes are selectable by name from the command line.
var palettes = map[string]Palette{
	"hue":  HuePalette,
	"gray": GrayPalette,
}

// hsv converts a colour with all components in [0, 1] to RGB.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
