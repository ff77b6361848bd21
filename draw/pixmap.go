// Package draw implements the rasterizing device of the rendering core:
// the Pixmap sample model, the Porter-Duff compositor with PDF blend
// modes, the affine image painter, and the built-in devices (draw, list,
// bbox, text) consumed through the interp.Device interface.
package draw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucidpdf/core/model"
)

// Fl is the scalar type shared with the model package.
type Fl = model.Fl

// Pixmap is a rectangular sample grid: N components per pixel, the last
// one alpha, every color component premultiplied by it, rows tightly
// packed. X and Y locate the pixmap's origin on the page, so a banded
// render can address a sub-rectangle of device space.
type Pixmap struct {
	X, Y          int
	Width, Height int
	N             int // components per pixel, alpha included
	Samples       []uint8
}

// NewPixmap allocates a cleared (all-transparent) pixmap.
func NewPixmap(x, y, width, height, n int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		X: x, Y: y,
		Width: width, Height: height,
		N:       n,
		Samples: make([]uint8, width*height*n),
	}
}

// Clear sets every sample to zero (transparent).
func (p *Pixmap) Clear() {
	for i := range p.Samples {
		p.Samples[i] = 0
	}
}

// ClearWhite sets every pixel to opaque white, the usual page backdrop.
func (p *Pixmap) ClearWhite() {
	for i := range p.Samples {
		p.Samples[i] = 255
	}
}

// Row returns the samples of row y (relative to the pixmap origin).
func (p *Pixmap) Row(y int) []uint8 {
	start := y * p.Width * p.N
	return p.Samples[start : start+p.Width*p.N]
}

// Pixel returns the samples of one pixel.
func (p *Pixmap) Pixel(x, y int) []uint8 {
	o := (y*p.Width + x) * p.N
	return p.Samples[o : o+p.N]
}

// Alpha returns the alpha sample of one pixel.
func (p *Pixmap) Alpha(x, y int) uint8 {
	return p.Samples[(y*p.Width+x)*p.N+p.N-1]
}

// CheckPremultiplied verifies the premultiplied invariant: every color
// sample is bounded by its pixel's alpha. It is used by tests.
func (p *Pixmap) CheckPremultiplied() error {
	n := p.N
	for i := 0; i+n <= len(p.Samples); i += n {
		a := p.Samples[i+n-1]
		for k := 0; k < n-1; k++ {
			if p.Samples[i+k] > a {
				return fmt.Errorf("sample %d of pixel %d exceeds alpha: %d > %d", k, i/n, p.Samples[i+k], a)
			}
		}
	}
	return nil
}

// Image converts an RGBA pixmap to a stdlib image; image.RGBA shares the
// premultiplied convention so the samples copy through unchanged. Other
// component counts are first converted pixel by pixel.
func (p *Pixmap) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	if p.N == 4 {
		for y := 0; y < p.Height; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+p.Width*4], p.Row(y))
		}
		return out
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			px := p.Pixel(x, y)
			a := px[p.N-1]
			var c color.RGBA
			switch p.N {
			case 1: // pure alpha: render as opaque gray coverage
				c = color.RGBA{a, a, a, 255}
			case 2: // gray + alpha
				c = color.RGBA{px[0], px[0], px[0], a}
			default:
				c = color.RGBA{px[0], px[1], px[2], a}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out
}
