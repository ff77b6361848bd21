package contentstream

import (
	"bytes"
	"fmt"

	"github.com/lucidpdf/core/model"
)

// cm
type OpConcat struct {
	Matrix model.Matrix
}

func (o OpConcat) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f %.3f %.3f cm",
		o.Matrix[0], o.Matrix[1], o.Matrix[2], o.Matrix[3], o.Matrix[4], o.Matrix[5])
}

// c
type OpCubicTo struct {
	X1, Y1, X2, Y2, X3, Y3 Fl
}

func (o OpCubicTo) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f %.3f %.3f c", o.X1, o.Y1, o.X2, o.Y2, o.X3, o.Y3)
}

// v - first control point coincides with the current point
type OpCurveTo1 struct {
	X2, Y2, X3, Y3 Fl
}

func (o OpCurveTo1) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f v", o.X2, o.Y2, o.X3, o.Y3)
}

// y - second control point coincides with the final point
type OpCurveTo struct {
	X1, Y1, X3, Y3 Fl
}

func (o OpCurveTo) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f y", o.X1, o.Y1, o.X3, o.Y3)
}

// h
type OpClosePath struct{}

func (o OpClosePath) Add(out *bytes.Buffer) {
	out.WriteByte('h')
}

// B
type OpFillStroke struct{}

func (o OpFillStroke) Add(out *bytes.Buffer) {
	out.WriteByte('B')
}

// B*
type OpEOFillStroke struct{}

func (o OpEOFillStroke) Add(out *bytes.Buffer) {
	out.WriteString("B*")
}

// b
type OpCloseFillStroke struct{}

func (o OpCloseFillStroke) Add(out *bytes.Buffer) {
	out.WriteByte('b')
}

// b*
type OpCloseEOFillStroke struct{}

func (o OpCloseEOFillStroke) Add(out *bytes.Buffer) {
	out.WriteString("b*")
}

// s
type OpCloseStroke struct{}

func (o OpCloseStroke) Add(out *bytes.Buffer) {
	out.WriteByte('s')
}

// f*
type OpEOFill struct{}

func (o OpEOFill) Add(out *bytes.Buffer) {
	out.WriteString("f*")
}

// W*
type OpEOClip struct{}

func (o OpEOClip) Add(out *bytes.Buffer) {
	out.WriteString("W*")
}

// J
type OpSetLineCap struct {
	Style uint8
}

func (o OpSetLineCap) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%d J", o.Style)
}

// j
type OpSetLineJoin struct {
	Style uint8
}

func (o OpSetLineJoin) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%d j", o.Style)
}

// M
type OpSetMiterLimit struct {
	Limit Fl
}

func (o OpSetMiterLimit) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f M", o.Limit)
}

// i
type OpSetFlat struct {
	Flatness Fl
}

func (o OpSetFlat) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f i", o.Flatness)
}

// k
type OpSetFillCMYKColor struct {
	C, M, Y, K Fl
}

func (o OpSetFillCMYKColor) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f k", o.C, o.M, o.Y, o.K)
}

// K
type OpSetStrokeCMYKColor OpSetFillCMYKColor

func (o OpSetStrokeCMYKColor) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f %.3f %.3f K", o.C, o.M, o.Y, o.K)
}

// BX
type OpBeginIgnoreUndef struct{}

func (o OpBeginIgnoreUndef) Add(out *bytes.Buffer) {
	out.WriteString("BX")
}

// EX
type OpEndIgnoreUndef struct{}

func (o OpEndIgnoreUndef) Add(out *bytes.Buffer) {
	out.WriteString("EX")
}
