package raster

// maxBezierDepth bounds the recursive subdivision of one cubic; 2^16
// segments is far below the visible threshold at any realistic flatness.
const maxBezierDepth = 16

// Flattener accumulates device-space path commands and flattens Bézier
// curves into polyline subpaths, subdividing until the control-point
// deviation from the chord is below Flatness (already scaled by the CTM
// expansion by the caller).
type Flattener struct {
	Flatness Fl

	subpaths [][]Point
	closed   []bool
	cur      []Point
	curClose bool
	start    Point
}

// NewFlattener returns a flattener with the given flatness tolerance, in
// device pixels. Non-positive values fall back to 0.3, a tolerance below
// the antialiasing quantum.
func NewFlattener(flatness Fl) *Flattener {
	if flatness <= 0 {
		flatness = 0.3
	}
	return &Flattener{Flatness: flatness}
}

func (f *Flattener) MoveTo(p Point) {
	f.endSubpath(false)
	f.start = p
	f.cur = append(f.cur, p)
}

func (f *Flattener) LineTo(p Point) {
	if len(f.cur) == 0 {
		f.cur = append(f.cur, f.start)
	}
	f.cur = append(f.cur, p)
}

// CubeTo flattens the cubic from the current point through control
// points c1, c2 to p.
func (f *Flattener) CubeTo(c1, c2, p Point) {
	if len(f.cur) == 0 {
		f.cur = append(f.cur, f.start)
	}
	p0 := f.cur[len(f.cur)-1]
	f.flattenCubic(p0, c1, c2, p, 0)
	f.cur = append(f.cur, p)
}

func (f *Flattener) ClosePath() {
	f.endSubpath(true)
}

// Subpaths returns the flattened subpaths; the parallel slice reports
// which were explicitly closed (relevant to stroking, where an open
// subpath gets caps and a closed one gets a join).
func (f *Flattener) Subpaths() ([][]Point, []bool) {
	f.endSubpath(false)
	return f.subpaths, f.closed
}

func (f *Flattener) endSubpath(closed bool) {
	if len(f.cur) > 1 {
		f.subpaths = append(f.subpaths, f.cur)
		f.closed = append(f.closed, closed)
	}
	f.cur = nil
	if closed {
		// the current point after h is the subpath start
		f.cur = append(f.cur, f.start)
	}
}

// flattenCubic appends the interior points of the curve (excluding both
// endpoints) to the current subpath.
func (f *Flattener) flattenCubic(p0, p1, p2, p3 Point, depth int) {
	if depth >= maxBezierDepth || f.flatEnough(p0, p1, p2, p3) {
		return
	}
	// de Casteljau split at t = 1/2
	ab := mid(p0, p1)
	bc := mid(p1, p2)
	cd := mid(p2, p3)
	abc := mid(ab, bc)
	bcd := mid(bc, cd)
	m := mid(abc, bcd)
	f.flattenCubic(p0, ab, abc, m, depth+1)
	f.cur = append(f.cur, m)
	f.flattenCubic(m, bcd, cd, p3, depth+1)
}

// flatEnough tests the deviation of both control points from the chord
// p0-p3 against the flatness tolerance.
func (f *Flattener) flatEnough(p0, p1, p2, p3 Point) bool {
	d1 := chordDistance(p0, p3, p1)
	d2 := chordDistance(p0, p3, p2)
	if d2 > d1 {
		d1 = d2
	}
	return d1 <= f.Flatness
}

// chordDistance returns the perpendicular distance from p to the line
// through a and b, or the distance from p to a when the chord degenerates.
func chordDistance(a, b, p Point) Fl {
	dx, dy := b.X-a.X, b.Y-a.Y
	len2 := dx*dx + dy*dy
	if len2 < 1e-12 {
		px, py := p.X-a.X, p.Y-a.Y
		return sqrt(px*px + py*py)
	}
	// |cross| / |chord|
	cr := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	if cr < 0 {
		cr = -cr
	}
	return cr / sqrt(len2)
}

func mid(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// FillInto feeds every flattened subpath into the rasterizer, implicitly
// closing open subpaths, per fill semantics.
func FillInto(r *Rasterizer, subpaths [][]Point) {
	for _, sp := range subpaths {
		r.AddPolygon(sp)
	}
}
