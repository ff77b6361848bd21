package draw

import (
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
)

// BBoxDevice accumulates the device-space bounding rectangle of every
// marking operation (4.12's bbox device): used for Type 3 glyph metrics
// and for computing the ink extent of a page.
type BBoxDevice struct {
	box   model.Rectangle
	empty bool
}

// NewBBoxDevice returns a device with an empty accumulator.
func NewBBoxDevice() *BBoxDevice { return &BBoxDevice{empty: true} }

var _ interp.Device = (*BBoxDevice)(nil)

// BBox returns the accumulated rectangle; ok is false when nothing was
// drawn.
func (d *BBoxDevice) BBox() (model.Rectangle, bool) { return d.box, !d.empty }

func (d *BBoxDevice) Capabilities() interp.DeviceFlags {
	return interp.DeviceSupportsTransparency
}

func (d *BBoxDevice) add(x, y Fl) {
	if d.empty {
		d.box = model.Rectangle{Llx: x, Lly: y, Urx: x, Ury: y}
		d.empty = false
		return
	}
	if x < d.box.Llx {
		d.box.Llx = x
	}
	if y < d.box.Lly {
		d.box.Lly = y
	}
	if x > d.box.Urx {
		d.box.Urx = x
	}
	if y > d.box.Ury {
		d.box.Ury = y
	}
}

func (d *BBoxDevice) addPath(path *interp.Path, ctm model.Matrix, grow Fl) {
	for _, seg := range path.Segments {
		switch seg.Op {
		case interp.SegMoveTo, interp.SegLineTo:
			x, y := ctm.Apply(seg.X, seg.Y)
			d.add(x-grow, y-grow)
			d.add(x+grow, y+grow)
		case interp.SegCubicTo:
			// control points bound the curve
			for _, p := range [3][2]Fl{{seg.X1, seg.Y1}, {seg.X2, seg.Y2}, {seg.X, seg.Y}} {
				x, y := ctm.Apply(p[0], p[1])
				d.add(x-grow, y-grow)
				d.add(x+grow, y+grow)
			}
		}
	}
}

func (d *BBoxDevice) FillPath(path *interp.Path, _ bool, ctm model.Matrix, _ interp.Color, _ Fl) {
	d.addPath(path, ctm, 0)
}

func (d *BBoxDevice) StrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix, _ interp.Color, _ Fl) {
	d.addPath(path, ctm, style.LineWidth/2*ctm.Scaling())
}

func (d *BBoxDevice) ClipPath(*interp.Path, bool, model.Matrix)                       {}
func (d *BBoxDevice) ClipStrokePath(*interp.Path, interp.StrokeStyle, model.Matrix) {}

// addText grows the box by each glyph's em box; coarse, but a bounds
// device does not rasterize.
func (d *BBoxDevice) addText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	step := interp.CodeBytes(gs.Font)
	for i := 0; i+step <= len(text); i += step {
		var code uint32
		for k := 0; k < step; k++ {
			code = code<<8 | uint32(text[i+k])
		}
		trm := glyphTransform(gs, tm).Mult(gs.CTM)
		w0 := interp.GlyphAdvance(gs.Font, code) / 1000
		for _, c := range [4][2]Fl{{0, -0.2}, {w0, -0.2}, {0, 1}, {w0, 1}} {
			x, y := trm.Apply(c[0], c[1])
			d.add(x, y)
		}
		adv := (w0*gs.FontSize + gs.CharSpace) * (gs.HScale / 100)
		tm = model.Matrix{1, 0, 0, 1, adv, 0}.Mult(tm)
	}
}

func (d *BBoxDevice) FillText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.addText(gs, tm, text)
}

func (d *BBoxDevice) StrokeText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.addText(gs, tm, text)
}

func (d *BBoxDevice) ClipText(*interp.GraphicsState, model.Matrix, []byte)  {}
func (d *BBoxDevice) IgnoreText(*interp.GraphicsState, model.Matrix, []byte) {}

func (d *BBoxDevice) addUnitSquare(ctm model.Matrix) {
	for _, c := range [4][2]Fl{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		x, y := ctm.Apply(c[0], c[1])
		d.add(x, y)
	}
}

func (d *BBoxDevice) FillShade(sh *model.ShadingDict, ctm model.Matrix, _ Fl) {
	if sh.BBox != nil {
		b := *sh.BBox
		place := model.Matrix{b.Urx - b.Llx, 0, 0, b.Ury - b.Lly, b.Llx, b.Lly}.Mult(ctm)
		d.addUnitSquare(place)
		return
	}
	d.addUnitSquare(ctm)
}

func (d *BBoxDevice) FillImage(_ *model.XObjectImage, ctm model.Matrix, _ Fl) {
	d.addUnitSquare(ctm)
}

func (d *BBoxDevice) FillImageMask(_ *model.XObjectImage, ctm model.Matrix, _ interp.Color, _ Fl) {
	d.addUnitSquare(ctm)
}

func (d *BBoxDevice) ClipImageMask(*model.XObjectImage, model.Matrix) {}

func (d *BBoxDevice) BeginMask(model.Rectangle, bool, interp.Color)            {}
func (d *BBoxDevice) EndMask()                                                 {}
func (d *BBoxDevice) BeginGroup(model.Rectangle, bool, bool, model.Name, Fl) {}
func (d *BBoxDevice) EndGroup()                                                {}
func (d *BBoxDevice) BeginTile(_, _ model.Rectangle, _ model.Matrix) int       { return 0 }
func (d *BBoxDevice) EndTile()                                                 {}
func (d *BBoxDevice) PopClip()                                                 {}
