// Package raster implements the scan-converting path rasterizer of the
// rendering core: Bézier flattening, dash expansion, stroke offsetting,
// and a GEL/AEL scanline converter with vertical supersampling.
//
// All coordinates are in device space; the caller applies the CTM before
// feeding segments. Coverage is produced row by row as 8-bit alpha,
// which the draw package composites through its clip and fill source.
package raster

import (
	"sort"

	"golang.org/x/image/math/fixed"

	"github.com/lucidpdf/core/model"
)

// Fl is the scalar type shared with the model package.
type Fl = model.Fl

// Point is a device-space coordinate pair.
type Point struct {
	X, Y Fl
}

// edge is one monotone-y segment of the global edge list, expressed in
// sub-scanline space: y0/y1 index sub-scanlines, x and dxdy are 26.6
// fixed-point pixels.
type edge struct {
	x    fixed.Int26_6 // x at sub-scanline y0
	dxdy fixed.Int26_6 // x increment per sub-scanline
	y0   int           // first sub-scanline covered
	y1   int           // one past the last sub-scanline covered
	dir  int8          // +1 if the segment points down the page, -1 up
}

// SpanFunc receives one finished pixel row of coverage; cov has the
// rasterizer's width and is valid only for the duration of the call.
type SpanFunc func(y int, cov []uint8)

// Rasterizer scan-converts line segments into coverage rows. It holds a
// global edge list (GEL) filled by AddLine, sorted once, then walked by
// Rasterize with an active edge list (AEL) per sub-scanline.
type Rasterizer struct {
	width, height int
	aa            int // sub-scanlines per pixel row: 1, 2, 4 or 8

	gel []edge
	ael []int // indices into gel

	acc []int32 // per-pixel coverage accumulator for the current row
	row []uint8
}

// AALevel clamps a requested antialias level (0, 2, 4 or 8 vertical
// sub-scanlines) to a supported value; 0 disables supersampling.
func AALevel(level int) int {
	switch {
	case level >= 8:
		return 8
	case level >= 4:
		return 4
	case level >= 2:
		return 2
	default:
		return 1
	}
}

// NewRasterizer returns a rasterizer producing rows of `width` pixels for
// scanlines 0 ≤ y < height, supersampled vertically by aaLevel.
func NewRasterizer(width, height, aaLevel int) *Rasterizer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Rasterizer{
		width:  width,
		height: height,
		aa:     AALevel(aaLevel),
		acc:    make([]int32, width+1),
		row:    make([]uint8, width),
	}
}

// Reset clears the edge list so the rasterizer can be reused.
func (r *Rasterizer) Reset() {
	r.gel = r.gel[:0]
	r.ael = r.ael[:0]
}

// AddLine appends the segment p0→p1 to the global edge list. Horizontal
// segments contribute nothing and are dropped.
func (r *Rasterizer) AddLine(p0, p1 Point) {
	dir := int8(1)
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
		dir = -1
	}
	// sample at sub-scanline centers: sub-scanline s covers the segment
	// when p0.Y <= (s+0.5)/aa < p1.Y
	aaF := Fl(r.aa)
	y0 := int(ceil(p0.Y*aaF - 0.5))
	y1 := int(ceil(p1.Y*aaF - 0.5))
	if y0 < 0 {
		y0 = 0
	}
	if max := r.height * r.aa; y1 > max {
		y1 = max
	}
	if y0 >= y1 {
		return
	}
	dxdy := (p1.X - p0.X) / (p1.Y - p0.Y) / aaF
	// x at the center of sub-scanline y0
	yc := (Fl(y0) + 0.5) / aaF
	x := p0.X + (yc-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y)
	r.gel = append(r.gel, edge{
		x:    toFixed(x),
		dxdy: toFixed(dxdy),
		y0:   y0,
		y1:   y1,
		dir:  dir,
	})
}

// AddPolygon appends the closed polygon to the edge list.
func (r *Rasterizer) AddPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}
	prev := pts[len(pts)-1]
	for _, p := range pts {
		r.AddLine(prev, p)
		prev = p
	}
}

// Rasterize walks the edge list scanline by scanline and hands each
// non-empty pixel row to `span`. evenOdd selects the even-odd fill rule
// instead of the default non-zero winding rule.
func (r *Rasterizer) Rasterize(evenOdd bool, span SpanFunc) {
	if len(r.gel) == 0 || r.width == 0 {
		return
	}
	sort.Slice(r.gel, func(i, j int) bool {
		if r.gel[i].y0 != r.gel[j].y0 {
			return r.gel[i].y0 < r.gel[j].y0
		}
		return r.gel[i].x < r.gel[j].x
	})

	r.ael = r.ael[:0]
	next := 0 // next GEL edge to activate

	firstSub := r.gel[0].y0
	startRow := firstSub / r.aa
	for i := range r.acc {
		r.acc[i] = 0
	}

	for y := startRow; y < r.height; y++ {
		rowEmpty := true
		for s := y * r.aa; s < (y+1)*r.aa; s++ {
			// move newly started edges from GEL to AEL
			for next < len(r.gel) && r.gel[next].y0 <= s {
				if r.gel[next].y1 > s {
					r.ael = append(r.ael, next)
				}
				next++
			}
			// drop finished edges
			live := r.ael[:0]
			for _, ei := range r.ael {
				if r.gel[ei].y1 > s {
					live = append(live, ei)
				}
			}
			r.ael = live
			if len(r.ael) == 0 {
				continue
			}
			sort.Slice(r.ael, func(i, j int) bool {
				return r.gel[r.ael[i]].x < r.gel[r.ael[j]].x
			})
			rowEmpty = !r.accumulate(evenOdd) && rowEmpty
			// advance each active edge to the next sub-scanline
			for _, ei := range r.ael {
				r.gel[ei].x += r.gel[ei].dxdy
			}
		}
		if !rowEmpty {
			r.flushRow(y, span)
		}
		if next >= len(r.gel) && len(r.ael) == 0 {
			return
		}
	}
}

// accumulate walks the sorted AEL once, adding this sub-scanline's
// coverage into acc. Reports whether anything was added.
func (r *Rasterizer) accumulate(evenOdd bool) bool {
	added := false
	winding := 0
	var spanStart fixed.Int26_6
	inside := false
	for _, ei := range r.ael {
		e := &r.gel[ei]
		wasInside := inside
		if evenOdd {
			winding ^= 1
			inside = winding != 0
		} else {
			winding += int(e.dir)
			inside = winding != 0
		}
		if inside && !wasInside {
			spanStart = e.x
		} else if !inside && wasInside {
			if r.addSpan(spanStart, e.x) {
				added = true
			}
		}
	}
	return added
}

// addSpan adds one sub-scanline's worth of coverage for [x0, x1) with
// fractional endpoints. Each sub-scanline contributes up to 255 units;
// flushRow divides by the supersampling level.
func (r *Rasterizer) addSpan(x0, x1 fixed.Int26_6) bool {
	if x1 <= x0 {
		return false
	}
	maxX := fixed.Int26_6(r.width << 6)
	if x0 < 0 {
		x0 = 0
	}
	if x1 > maxX {
		x1 = maxX
	}
	if x1 <= x0 {
		return false
	}
	i0, f0 := int(x0>>6), int(x0&63)
	i1, f1 := int(x1>>6), int(x1&63)
	if i0 == i1 {
		r.acc[i0] += int32((f1 - f0) * 255 / 64)
		return true
	}
	r.acc[i0] += int32((64 - f0) * 255 / 64)
	for i := i0 + 1; i < i1; i++ {
		r.acc[i] += 255
	}
	if f1 > 0 && i1 < r.width {
		r.acc[i1] += int32(f1 * 255 / 64)
	}
	return true
}

func (r *Rasterizer) flushRow(y int, span SpanFunc) {
	aa := int32(r.aa)
	for i := 0; i < r.width; i++ {
		v := r.acc[i] / aa
		if v > 255 {
			v = 255
		}
		r.row[i] = uint8(v)
		r.acc[i] = 0
	}
	span(y, r.row)
}

func toFixed(v Fl) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func ceil(v Fl) int {
	i := int(v)
	if v > Fl(i) {
		return i + 1
	}
	return i
}
