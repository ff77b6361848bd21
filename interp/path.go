package interp

import "github.com/lucidpdf/core/model"

// SegmentOp identifies the kind of a Path segment.
type SegmentOp uint8

const (
	SegMoveTo SegmentOp = iota
	SegLineTo
	SegCubicTo
	SegClose
)

// Segment is one element of a flattened-free path, expressed in the
// coordinate space active when it was appended (user space, not device
// space: the CTM is carried alongside in GraphicsState and applied later
// by the rasterizer).
type Segment struct {
	Op             SegmentOp
	X, Y           model.Fl // SegMoveTo, SegLineTo
	X1, Y1, X2, Y2 model.Fl // SegCubicTo control points; X,Y is the end point
}

// Path is the path under construction by the current path-painting
// operators (m, l, c, v, y, re, h). It is cleared by every painting or
// clipping operator that consumes it (S, s, f, F, f*, B, B*, b, b*, n),
// per 8.5.2.1 of the PDF specification.
type Path struct {
	Segments []Segment
	startX, startY model.Fl // subpath start, for h (closepath) and the implicit moveto of a bare l/c
	curX, curY     model.Fl
}

func (p *Path) MoveTo(x, y model.Fl) {
	p.Segments = append(p.Segments, Segment{Op: SegMoveTo, X: x, Y: y})
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

func (p *Path) LineTo(x, y model.Fl) {
	p.Segments = append(p.Segments, Segment{Op: SegLineTo, X: x, Y: y})
	p.curX, p.curY = x, y
}

func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 model.Fl) {
	p.Segments = append(p.Segments, Segment{Op: SegCubicTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x3, Y: y3})
	p.curX, p.curY = x3, y3
}

// CurveToV is the `v` operator: the first control point coincides with the
// current point.
func (p *Path) CurveToV(x2, y2, x3, y3 model.Fl) {
	p.CurveTo(p.curX, p.curY, x2, y2, x3, y3)
}

// CurveToY is the `y` operator: the second control point coincides with
// the end point.
func (p *Path) CurveToY(x1, y1, x3, y3 model.Fl) {
	p.CurveTo(x1, y1, x3, y3, x3, y3)
}

func (p *Path) ClosePath() {
	p.Segments = append(p.Segments, Segment{Op: SegClose})
	p.curX, p.curY = p.startX, p.startY
}

// Rectangle appends a closed rectangular subpath, per the `re` operator,
// which begins a new subpath and leaves the current point at (x, y), the
// rectangle's first corner.
func (p *Path) Rectangle(x, y, w, h model.Fl) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// Empty reports whether no segment was appended yet.
func (p *Path) Empty() bool { return len(p.Segments) == 0 }

// Clear resets the path for reuse, keeping the backing array.
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.startX, p.startY, p.curX, p.curY = 0, 0, 0, 0
}

// Clone returns an independent copy, used when a path outlives the
// operator that built it (clip stack entries, recorded list-device calls).
func (p *Path) Clone() *Path {
	out := &Path{Segments: append([]Segment(nil), p.Segments...)}
	out.startX, out.startY, out.curX, out.curY = p.startX, p.startY, p.curX, p.curY
	return out
}
