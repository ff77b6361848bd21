package draw

import (
	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/model"
)

// paintShading rasterizes a shading fill (sh operator, or a shading
// pattern's cell) over the full clip region: every clipped-in pixel is
// mapped back to shading space and colored by the gradient function.
// The mesh shading families (FreeForm, Lattice, Coons, TensorProduct)
// are recognized but not rendered (soft failure).
func paintShading(dst *Pixmap, clip []uint8, sh *model.ShadingDict, ctm model.Matrix, alpha Fl) {
	inv, ok := ctm.Inverse()
	if !ok {
		return
	}

	var colorAt func(x, y Fl) ([]Fl, bool)
	switch s := sh.ShadingType.(type) {
	case model.Axial:
		colorAt = axialColor(s)
	case model.Radial:
		colorAt = radialColor(s)
	case model.FunctionBased:
		colorAt = functionBasedColor(s)
	default:
		corelog.Interp.Printf("unsupported shading type %T", sh.ShadingType)
		return
	}

	space := sh.ColorSpace
	x0, y0, x1, y1 := 0, 0, dst.Width, dst.Height
	if sh.BBox != nil {
		// restrict to the shading's declared box, in shading space
		bx0, by0, bx1, by1 := transformedRectBounds(*sh.BBox, ctm)
		if bx0 > x0 {
			x0 = bx0
		}
		if by0 > y0 {
			y0 = by0
		}
		if bx1 < x1 {
			x1 = bx1
		}
		if by1 < y1 {
			y1 = by1
		}
	}

	for y := y0; y < y1; y++ {
		row := dst.Row(y)
		cov := make([]uint8, dst.Width)
		colors := make([]RGBA, dst.Width)
		for x := x0; x < x1; x++ {
			c := uint8(255)
			if clip != nil {
				c = clip[y*dst.Width+x]
				if c == 0 {
					continue
				}
			}
			sx, sy := inv.Apply(Fl(x)+0.5, Fl(y)+0.5)
			comps, inside := colorAt(sx, sy)
			if !inside {
				continue
			}
			r, g, b := spaceToRGB(space, comps)
			colors[x] = premultiply(r, g, b, alpha)
			cov[x] = c
		}
		for x := x0; x < x1; x++ {
			if cov[x] != 0 {
				paintSpanColor(row, cov, x, x+1, colors[x])
			}
		}
	}
}

func transformedRectBounds(r model.Rectangle, m model.Matrix) (int, int, int, int) {
	place := model.Matrix{r.Urx - r.Llx, 0, 0, r.Ury - r.Lly, r.Llx, r.Lly}.Mult(m)
	return transformedBounds(place)
}

// evalGradient evaluates a gradient's function array at t: either one
// 1-to-n function or n 1-to-1 functions.
func evalGradient(fns []model.FunctionDict, t Fl) ([]Fl, bool) {
	if len(fns) == 1 {
		out, err := evalFunction(fns[0], []Fl{t})
		if err != nil {
			return nil, false
		}
		return out, true
	}
	out := make([]Fl, len(fns))
	for i, fn := range fns {
		v, err := evalFunction(fn, []Fl{t})
		if err != nil || len(v) == 0 {
			return nil, false
		}
		out[i] = v[0]
	}
	return out, true
}

// axialColor maps a point to its color along the axis x0y0-x1y1 (8.7.4.5.3).
func axialColor(s model.Axial) func(x, y Fl) ([]Fl, bool) {
	ax, ay := s.Coords[0], s.Coords[1]
	dx, dy := s.Coords[2]-ax, s.Coords[3]-ay
	den := dx*dx + dy*dy
	d0, d1 := Fl(0), Fl(1)
	if s.Domain != ([2]Fl{}) {
		d0, d1 = s.Domain[0], s.Domain[1]
	}
	return func(x, y Fl) ([]Fl, bool) {
		if den == 0 {
			return nil, false
		}
		tp := ((x-ax)*dx + (y-ay)*dy) / den
		if tp < 0 {
			if !s.Extend[0] {
				return nil, false
			}
			tp = 0
		}
		if tp > 1 {
			if !s.Extend[1] {
				return nil, false
			}
			tp = 1
		}
		return evalGradient(s.Function, d0+tp*(d1-d0))
	}
}

// radialColor colors by the circle blend between the two circles
// (8.7.4.5.4); the solve follows the larger-s-first convention.
func radialColor(s model.Radial) func(x, y Fl) ([]Fl, bool) {
	x0, y0, r0 := s.Coords[0], s.Coords[1], s.Coords[2]
	x1, y1, r1 := s.Coords[3], s.Coords[4], s.Coords[5]
	d0, d1 := Fl(0), Fl(1)
	if s.Domain != ([2]Fl{}) {
		d0, d1 = s.Domain[0], s.Domain[1]
	}
	cdx, cdy, rd := x1-x0, y1-y0, r1-r0
	a := cdx*cdx + cdy*cdy - rd*rd
	return func(x, y Fl) ([]Fl, bool) {
		pdx, pdy := x-x0, y-y0
		b := 2 * (pdx*cdx + pdy*cdy + r0*rd)
		c := pdx*pdx + pdy*pdy - r0*r0
		var tp Fl
		if nearZero(a) {
			if nearZero(b) {
				return nil, false
			}
			tp = c / b
		} else {
			disc := b*b - 4*a*c
			if disc < 0 {
				return nil, false
			}
			sq := sqrtF(disc)
			tp = (b + sq) / (2 * a)
			if r0+tp*rd < 0 {
				tp = (b - sq) / (2 * a)
			}
		}
		if r0+tp*rd < 0 {
			return nil, false
		}
		if tp < 0 {
			if !s.Extend[0] {
				return nil, false
			}
			tp = 0
		}
		if tp > 1 {
			if !s.Extend[1] {
				return nil, false
			}
			tp = 1
		}
		return evalGradient(s.Function, d0+tp*(d1-d0))
	}
}

// functionBasedColor evaluates a type 1 shading: the function maps
// domain coordinates (through the optional /Matrix) to color.
func functionBasedColor(s model.FunctionBased) func(x, y Fl) ([]Fl, bool) {
	dom := s.Domain
	if dom == ([4]Fl{}) {
		dom = [4]Fl{0, 1, 0, 1}
	}
	inv := model.Identity
	if s.Matrix != (model.Matrix{}) {
		var ok bool
		if inv, ok = s.Matrix.Inverse(); !ok {
			return func(Fl, Fl) ([]Fl, bool) { return nil, false }
		}
	}
	return func(x, y Fl) ([]Fl, bool) {
		u, v := inv.Apply(x, y)
		if u < dom[0] || u > dom[1] || v < dom[2] || v > dom[3] {
			return nil, false
		}
		if len(s.Function) == 1 {
			out, err := evalFunction(s.Function[0], []Fl{u, v})
			if err != nil {
				return nil, false
			}
			return out, true
		}
		out := make([]Fl, len(s.Function))
		for i, fn := range s.Function {
			r, err := evalFunction(fn, []Fl{u, v})
			if err != nil || len(r) == 0 {
				return nil, false
			}
			out[i] = r[0]
		}
		return out, true
	}
}
