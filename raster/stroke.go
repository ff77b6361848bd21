package raster

import "math"

// Line cap and join styles, by their PDF integer encodings (8.4.3.3/8.4.3.4).
const (
	CapButt   = 0
	CapRound  = 1
	CapSquare = 2

	JoinMiter = 0
	JoinRound = 1
	JoinBevel = 2
)

// StrokeStyle is the stroke-relevant subset of the graphics state, with
// every length already in device space.
type StrokeStyle struct {
	LineWidth  Fl
	LineCap    int
	LineJoin   int
	MiterLimit Fl
	Dash       []Fl
	DashPhase  Fl
}

// minHalfWidth keeps a zero-width stroke (legal in PDF, meaning "thinnest
// visible line") from degenerating to nothing.
const minHalfWidth = 0.35

// StrokeInto expands every subpath into its stroked outline and feeds the
// outline polygons into the rasterizer. The outline is built from
// per-segment quads plus join wedges and caps, each emitted with
// consistent orientation so the union rasterizes correctly under the
// non-zero rule (callers must rasterize with evenOdd=false).
func StrokeInto(r *Rasterizer, subpaths [][]Point, closed []bool, style StrokeStyle) {
	hw := style.LineWidth / 2
	if hw < minHalfWidth {
		hw = minHalfWidth
	}
	for i, sp := range subpaths {
		isClosed := i < len(closed) && closed[i]
		for _, piece := range expandDash(sp, isClosed, style.Dash, style.DashPhase) {
			strokePolyline(r, piece.pts, piece.closed, hw, style)
		}
	}
}

type dashPiece struct {
	pts    []Point
	closed bool
}

// expandDash materializes the dash pattern over one subpath, returning
// the "on" runs as open polylines. An empty or all-zero pattern returns
// the subpath unchanged.
func expandDash(pts []Point, closed bool, pattern []Fl, phase Fl) []dashPiece {
	total := Fl(0)
	for _, d := range pattern {
		if d < 0 {
			return []dashPiece{{pts, closed}}
		}
		total += d
	}
	if len(pattern) == 0 || total <= 0 {
		return []dashPiece{{pts, closed}}
	}
	walk := pts
	if closed && len(pts) > 1 {
		walk = append(append([]Point(nil), pts...), pts[0])
	}
	if len(walk) < 2 {
		return nil
	}

	// locate the phase inside the (cyclic) pattern
	idx := 0
	rem := pattern[0]
	on := true
	for p := mod(phase, total); p > 0; {
		if p >= rem {
			p -= rem
			idx = (idx + 1) % len(pattern)
			rem = pattern[idx]
			on = !on
		} else {
			rem -= p
			p = 0
		}
	}

	var out []dashPiece
	var cur []Point
	if on {
		cur = append(cur, walk[0])
	}
	for i := 1; i < len(walk); i++ {
		a, b := walk[i-1], walk[i]
		segLen := dist(a, b)
		pos := Fl(0)
		for segLen-pos > rem {
			pos += rem
			t := pos / segLen
			p := Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
			if on {
				cur = append(cur, p)
				out = append(out, dashPiece{cur, false})
				cur = nil
			} else {
				cur = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			rem = pattern[idx]
			// zero-length "on" entries still produce a dot with round caps
			for rem == 0 {
				if on {
					out = append(out, dashPiece{[]Point{p}, false})
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				rem = pattern[idx]
			}
		}
		rem -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if len(cur) > 0 {
		out = append(out, dashPiece{cur, false})
	}
	return out
}

// strokePolyline emits the stroked outline of one polyline: a quad per
// segment, a join wedge per interior vertex, caps at the ends (or a
// closing join when the subpath is closed).
func strokePolyline(r *Rasterizer, pts []Point, closed bool, hw Fl, style StrokeStyle) {
	pts = dropCoincident(pts)
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		// degenerate subpath: a dot, visible only with round or square caps
		switch style.LineCap {
		case CapRound:
			emitPolygon(r, circlePoly(pts[0], hw))
		case CapSquare:
			p := pts[0]
			emitPolygon(r, []Point{
				{p.X - hw, p.Y - hw}, {p.X + hw, p.Y - hw},
				{p.X + hw, p.Y + hw}, {p.X - hw, p.Y + hw},
			})
		}
		return
	}
	if closed {
		pts = append(pts, pts[0])
	}

	for i := 1; i < len(pts); i++ {
		emitSegmentQuad(r, pts[i-1], pts[i], hw, style.LineCap, !closed && i == 1, !closed && i == len(pts)-1)
	}
	for i := 1; i < len(pts)-1; i++ {
		emitJoin(r, pts[i-1], pts[i], pts[i+1], hw, style)
	}
	if closed {
		// the seam vertex gets a join instead of caps
		emitJoin(r, pts[len(pts)-2], pts[0], pts[1], hw, style)
	}
}

// emitSegmentQuad draws the thick body of one segment, extending the
// rectangle by hw at capped square ends and adding round-cap fans.
func emitSegmentQuad(r *Rasterizer, a, b Point, hw Fl, capStyle int, capStart, capEnd bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := sqrt(dx*dx + dy*dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l, dy/l
	nx, ny := -uy*hw, ux*hw

	sa, sb := a, b
	if capStyle == CapSquare {
		if capStart {
			sa = Point{a.X - ux*hw, a.Y - uy*hw}
		}
		if capEnd {
			sb = Point{b.X + ux*hw, b.Y + uy*hw}
		}
	}
	emitPolygon(r, []Point{
		{sa.X + nx, sa.Y + ny},
		{sb.X + nx, sb.Y + ny},
		{sb.X - nx, sb.Y - ny},
		{sa.X - nx, sa.Y - ny},
	})
	if capStyle == CapRound {
		if capStart {
			emitPolygon(r, circlePoly(a, hw))
		}
		if capEnd {
			emitPolygon(r, circlePoly(b, hw))
		}
	}
}

// emitJoin fills the wedge between the two segment quads meeting at b.
func emitJoin(r *Rasterizer, a, b, c Point, hw Fl, style StrokeStyle) {
	d1x, d1y := b.X-a.X, b.Y-a.Y
	d2x, d2y := c.X-b.X, c.Y-b.Y
	l1 := sqrt(d1x*d1x + d1y*d1y)
	l2 := sqrt(d2x*d2x + d2y*d2y)
	if l1 == 0 || l2 == 0 {
		return
	}
	u1x, u1y := d1x/l1, d1y/l1
	u2x, u2y := d2x/l2, d2y/l2
	cross := u1x*u2y - u1y*u2x
	if cross == 0 {
		return // collinear, the quads already abut
	}
	// the outer side of the corner is the one the turn opens away from
	var n1, n2 Point
	if cross > 0 {
		n1 = Point{u1y * hw, -u1x * hw}
		n2 = Point{u2y * hw, -u2x * hw}
	} else {
		n1 = Point{-u1y * hw, u1x * hw}
		n2 = Point{-u2y * hw, u2x * hw}
	}
	p1 := Point{b.X + n1.X, b.Y + n1.Y}
	p2 := Point{b.X + n2.X, b.Y + n2.Y}

	switch style.LineJoin {
	case JoinRound:
		a0 := atan2(n1.Y, n1.X)
		a1 := atan2(n2.Y, n2.X)
		emitPolygon(r, arcFan(b, hw, a0, a1, cross > 0))
	case JoinMiter:
		// miter length ratio is 1/sin(theta/2); fall back to bevel past
		// the limit, per 8.4.3.5
		dot := u1x*u2x + u1y*u2y
		sinHalf := sqrt((1 - dot) / 2)
		if sinHalf > 0 && 1/sinHalf <= style.MiterLimit {
			// intersection of the two offset lines
			mx, my, ok := lineIntersect(p1, Point{p1.X + u1x, p1.Y + u1y}, p2, Point{p2.X + u2x, p2.Y + u2y})
			if ok {
				emitPolygon(r, []Point{b, p1, {mx, my}, p2})
				return
			}
		}
		emitPolygon(r, []Point{b, p1, p2})
	default: // JoinBevel
		emitPolygon(r, []Point{b, p1, p2})
	}
}

// emitPolygon adds a polygon to the rasterizer, first reversing it if
// needed so every emitted polygon has the same orientation: overlapping
// pieces of one stroke then accumulate winding instead of cancelling.
func emitPolygon(r *Rasterizer, pts []Point) {
	if len(pts) < 3 {
		return
	}
	area := Fl(0)
	prev := pts[len(pts)-1]
	for _, p := range pts {
		area += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	r.AddPolygon(pts)
}

// circlePoly approximates a circle with a polygon fine enough for the
// sub-pixel coverage model.
func circlePoly(c Point, radius Fl) []Point {
	const n = 16
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		out[i] = Point{c.X + radius*Fl(math.Cos(a)), c.Y + radius*Fl(math.Sin(a))}
	}
	return out
}

// arcFan builds the pie wedge from angle a0 to a1 around c; ccw selects
// the sweep direction.
func arcFan(c Point, radius Fl, a0, a1 float64, ccw bool) []Point {
	if ccw {
		for a1 < a0 {
			a1 += 2 * math.Pi
		}
	} else {
		for a1 > a0 {
			a1 -= 2 * math.Pi
		}
	}
	sweep := a1 - a0
	n := int(math.Abs(sweep)/(math.Pi/8)) + 1
	out := make([]Point, 0, n+2)
	out = append(out, c)
	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		out = append(out, Point{c.X + radius*Fl(math.Cos(a)), c.Y + radius*Fl(math.Sin(a))})
	}
	return out
}

func lineIntersect(p1, p2, p3, p4 Point) (Fl, Fl, bool) {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y
	den := d1x*d2y - d1y*d2x
	if den == 0 {
		return 0, 0, false
	}
	t := ((p3.X-p1.X)*d2y - (p3.Y-p1.Y)*d2x) / den
	return p1.X + t*d1x, p1.Y + t*d1y, true
}

func dropCoincident(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if p != last {
			out = append(out, p)
		}
	}
	return out
}

func dist(a, b Point) Fl {
	dx, dy := b.X-a.X, b.Y-a.Y
	return sqrt(dx*dx + dy*dy)
}

func mod(v, m Fl) Fl {
	r := Fl(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func sqrt(v Fl) Fl { return Fl(math.Sqrt(float64(v))) }

func atan2(y, x Fl) float64 { return math.Atan2(float64(y), float64(x)) }
