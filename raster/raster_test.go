package raster

import "testing"

// render fills the given subpaths into a w×h byte grid.
func render(w, h, aa int, evenOdd bool, subpaths [][]Point) [][]uint8 {
	out := make([][]uint8, h)
	for i := range out {
		out[i] = make([]uint8, w)
	}
	r := NewRasterizer(w, h, aa)
	FillInto(r, subpaths)
	r.Rasterize(evenOdd, func(y int, cov []uint8) {
		copy(out[y], cov)
	})
	return out
}

func rect(x0, y0, x1, y1 Fl) []Point {
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestFillRectangle(t *testing.T) {
	got := render(10, 10, 1, false, [][]Point{rect(2, 3, 8, 7)})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 8 && y >= 3 && y < 7
			want := uint8(0)
			if inside {
				want = 255
			}
			if got[y][x] != want {
				t.Fatalf("pixel (%d,%d): got %d, want %d", x, y, got[y][x], want)
			}
		}
	}
}

func TestFillFractionalCoverage(t *testing.T) {
	// a rectangle covering half of each boundary pixel horizontally
	got := render(4, 2, 1, false, [][]Point{rect(0.5, 0, 3.5, 2)})
	for y := 0; y < 2; y++ {
		if got[y][1] != 255 || got[y][2] != 255 {
			t.Fatalf("row %d: interior not fully covered: %v", y, got[y])
		}
		for _, x := range []int{0, 3} {
			c := got[y][x]
			if c < 100 || c > 155 {
				t.Fatalf("row %d, pixel %d: got coverage %d, want ≈127", y, x, c)
			}
		}
	}
}

func TestEvenOddRule(t *testing.T) {
	// two nested rectangles wound the same way: non-zero fills both,
	// even-odd leaves a hole
	shapes := [][]Point{rect(1, 1, 9, 9), rect(3, 3, 7, 7)}
	nz := render(10, 10, 1, false, shapes)
	if nz[5][5] != 255 {
		t.Fatalf("non-zero: hole pixel should be filled, got %d", nz[5][5])
	}
	eo := render(10, 10, 1, true, shapes)
	if eo[5][5] != 0 {
		t.Fatalf("even-odd: hole pixel should be empty, got %d", eo[5][5])
	}
	if eo[2][2] != 255 {
		t.Fatalf("even-odd: ring pixel should be filled, got %d", eo[2][2])
	}
}

func TestWindingCancellation(t *testing.T) {
	// the inner rectangle wound the opposite way punches a hole under
	// the non-zero rule too
	inner := rect(3, 3, 7, 7)
	for i, j := 0, len(inner)-1; i < j; i, j = i+1, j-1 {
		inner[i], inner[j] = inner[j], inner[i]
	}
	got := render(10, 10, 1, false, [][]Point{rect(1, 1, 9, 9), inner})
	if got[5][5] != 0 {
		t.Fatalf("reversed inner rectangle should cancel, got %d", got[5][5])
	}
}

func TestAntialiasTriangle(t *testing.T) {
	tri := []Point{{0, 0}, {10, 0}, {0, 10}}
	aliased := render(10, 10, 1, false, [][]Point{tri})
	smooth := render(10, 10, 8, false, [][]Point{tri})
	// the diagonal's boundary pixels must take intermediate values with
	// supersampling on
	intermediate := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := smooth[y][x]; c > 20 && c < 235 {
				intermediate++
			}
		}
	}
	if intermediate < 5 {
		t.Fatalf("aa=8 produced only %d intermediate pixels", intermediate)
	}
	// interior pixels agree between the two
	if aliased[2][2] != 255 || smooth[2][2] != 255 {
		t.Fatalf("interior pixel lost coverage: %d vs %d", aliased[2][2], smooth[2][2])
	}
}

func TestRasterizeIsDeterministic(t *testing.T) {
	tri := []Point{{0.3, 0.7}, {9.1, 2.2}, {4.5, 9.8}}
	a := render(10, 10, 4, false, [][]Point{tri})
	b := render(10, 10, 4, false, [][]Point{tri})
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("pixel (%d,%d) differs between identical renders", x, y)
			}
		}
	}
}

func TestFlattenCubic(t *testing.T) {
	f := NewFlattener(0.2)
	f.MoveTo(Point{0, 0})
	f.CubeTo(Point{0, 10}, Point{10, 10}, Point{10, 0})
	sub, closed := f.Subpaths()
	if len(sub) != 1 {
		t.Fatalf("expected 1 subpath, got %d", len(sub))
	}
	if closed[0] {
		t.Fatal("curve subpath reported closed")
	}
	pts := sub[0]
	if len(pts) < 4 {
		t.Fatalf("curve not subdivided: %d points", len(pts))
	}
	// every flattened point stays within the control hull's y range
	for _, p := range pts {
		if p.Y < -0.01 || p.Y > 7.6 {
			t.Fatalf("flattened point %v outside the curve's range", p)
		}
	}
	if last := pts[len(pts)-1]; last != (Point{10, 0}) {
		t.Fatalf("curve endpoint %v, want (10,0)", last)
	}
}

func TestFlattenRespectsTolerance(t *testing.T) {
	coarse := NewFlattener(5)
	coarse.MoveTo(Point{0, 0})
	coarse.CubeTo(Point{0, 10}, Point{10, 10}, Point{10, 0})
	cs, _ := coarse.Subpaths()

	fine := NewFlattener(0.05)
	fine.MoveTo(Point{0, 0})
	fine.CubeTo(Point{0, 10}, Point{10, 10}, Point{10, 0})
	fs, _ := fine.Subpaths()

	if len(fs[0]) <= len(cs[0]) {
		t.Fatalf("finer flatness produced fewer points: %d vs %d", len(fs[0]), len(cs[0]))
	}
}

func TestExpandDashSimple(t *testing.T) {
	line := []Point{{0, 0}, {10, 0}}
	pieces := expandDash(line, false, []Fl{2, 3}, 0)
	// on [0,2], off (2,5], on (5,7], off (7,10]
	if len(pieces) != 2 {
		t.Fatalf("expected 2 dash pieces, got %d", len(pieces))
	}
	p0 := pieces[0].pts
	if p0[0] != (Point{0, 0}) || p0[len(p0)-1] != (Point{2, 0}) {
		t.Fatalf("first dash wrong: %v", p0)
	}
	p1 := pieces[1].pts
	if p1[0] != (Point{5, 0}) || p1[len(p1)-1] != (Point{7, 0}) {
		t.Fatalf("second dash wrong: %v", p1)
	}
}

func TestExpandDashPhase(t *testing.T) {
	line := []Point{{0, 0}, {10, 0}}
	// phase 2 starts the walk at the beginning of the off interval
	pieces := expandDash(line, false, []Fl{2, 3}, 2)
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
	if pieces[0].pts[0] != (Point{3, 0}) {
		t.Fatalf("first piece should start at x=3, got %v", pieces[0].pts[0])
	}
}

func TestExpandDashEmptyPattern(t *testing.T) {
	line := []Point{{0, 0}, {10, 0}}
	pieces := expandDash(line, false, nil, 0)
	if len(pieces) != 1 || len(pieces[0].pts) != 2 {
		t.Fatalf("empty pattern must pass the subpath through: %v", pieces)
	}
}

func TestStrokeHorizontalLine(t *testing.T) {
	r := NewRasterizer(12, 8, 4)
	StrokeInto(r, [][]Point{{{2, 4}, {10, 4}}}, []bool{false}, StrokeStyle{LineWidth: 2, MiterLimit: 10})
	covered := make([][]uint8, 8)
	for i := range covered {
		covered[i] = make([]uint8, 12)
	}
	r.Rasterize(false, func(y int, cov []uint8) { copy(covered[y], cov) })

	// the stroke spans y in [3,5): row 3 and 4 fully covered at mid-line
	if covered[3][5] != 255 || covered[4][5] != 255 {
		t.Fatalf("stroke body not covered: %d %d", covered[3][5], covered[4][5])
	}
	if covered[1][5] != 0 || covered[6][5] != 0 {
		t.Fatalf("coverage outside the stroke: %d %d", covered[1][5], covered[6][5])
	}
	// butt caps: nothing before x=2 or after x=10
	if covered[3][0] != 0 || covered[3][11] != 0 {
		t.Fatalf("butt cap leaked past the endpoints")
	}
}

func TestStrokeSquareCapExtends(t *testing.T) {
	style := StrokeStyle{LineWidth: 2, LineCap: CapSquare, MiterLimit: 10}
	r := NewRasterizer(12, 8, 1)
	StrokeInto(r, [][]Point{{{2, 4}, {10, 4}}}, []bool{false}, style)
	var left uint8
	r.Rasterize(false, func(y int, cov []uint8) {
		if y == 3 {
			left = cov[1]
		}
	})
	if left != 255 {
		t.Fatalf("square cap should cover x=1 on row 3, got %d", left)
	}
}

func TestStrokeClosedRectangle(t *testing.T) {
	r := NewRasterizer(12, 12, 4)
	sub := [][]Point{rect(3, 3, 9, 9)}
	StrokeInto(r, sub, []bool{true}, StrokeStyle{LineWidth: 2, MiterLimit: 10})
	covered := make([][]uint8, 12)
	for i := range covered {
		covered[i] = make([]uint8, 12)
	}
	r.Rasterize(false, func(y int, cov []uint8) { copy(covered[y], cov) })

	if covered[3][6] != 255 { // top edge
		t.Fatalf("top edge not stroked: %d", covered[3][6])
	}
	if covered[6][3] != 255 { // left edge
		t.Fatalf("left edge not stroked: %d", covered[6][3])
	}
	if covered[6][6] != 0 { // interior stays empty
		t.Fatalf("stroke filled the interior: %d", covered[6][6])
	}
	// miter corner: the outside corner pixel is covered
	if covered[2][2] != 255 {
		t.Fatalf("miter corner missing: %d", covered[2][2])
	}
}

func TestAALevelClamp(t *testing.T) {
	for _, c := range []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 2}, {4, 4}, {7, 4}, {8, 8}, {16, 8},
	} {
		if got := AALevel(c.in); got != c.want {
			t.Fatalf("AALevel(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
