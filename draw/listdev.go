package draw

import (
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
)

// listCall is one recorded device call; the display list is the ordered
// sequence of them.
type listCall struct {
	kind listOp

	path    *interp.Path
	evenOdd bool
	ctm     model.Matrix
	color   interp.Color
	alpha   Fl
	style   interp.StrokeStyle

	gs   interp.GraphicsState
	tm   model.Matrix
	text []byte

	image   *model.XObjectImage
	shading *model.ShadingDict

	area       model.Rectangle
	step       model.Rectangle
	luminosity bool
	isolated   bool
	knockout   bool
	blend      model.Name
}

type listOp uint8

const (
	opFillPath listOp = iota
	opStrokePath
	opClipPath
	opClipStrokePath
	opFillText
	opStrokeText
	opClipText
	opIgnoreText
	opFillShade
	opFillImage
	opFillImageMask
	opClipImageMask
	opBeginMask
	opEndMask
	opBeginGroup
	opEndGroup
	opBeginTile
	opEndTile
	opPopClip
)

// ListDevice records device calls into a display list for later replay
// (4.12's list device): a page can be interpreted once and rendered many
// times, at different scales or into different devices.
type ListDevice struct {
	calls []listCall
}

// NewListDevice returns an empty display list recorder.
func NewListDevice() *ListDevice { return &ListDevice{} }

var _ interp.Device = (*ListDevice)(nil)

// Len reports the number of recorded calls.
func (l *ListDevice) Len() int { return len(l.calls) }

// Replay plays the recorded calls into another device, in order.
func (l *ListDevice) Replay(dev interp.Device) {
	for i := range l.calls {
		c := &l.calls[i]
		switch c.kind {
		case opFillPath:
			dev.FillPath(c.path, c.evenOdd, c.ctm, c.color, c.alpha)
		case opStrokePath:
			dev.StrokePath(c.path, c.style, c.ctm, c.color, c.alpha)
		case opClipPath:
			dev.ClipPath(c.path, c.evenOdd, c.ctm)
		case opClipStrokePath:
			dev.ClipStrokePath(c.path, c.style, c.ctm)
		case opFillText:
			dev.FillText(&c.gs, c.tm, c.text)
		case opStrokeText:
			dev.StrokeText(&c.gs, c.tm, c.text)
		case opClipText:
			dev.ClipText(&c.gs, c.tm, c.text)
		case opIgnoreText:
			dev.IgnoreText(&c.gs, c.tm, c.text)
		case opFillShade:
			dev.FillShade(c.shading, c.ctm, c.alpha)
		case opFillImage:
			dev.FillImage(c.image, c.ctm, c.alpha)
		case opFillImageMask:
			dev.FillImageMask(c.image, c.ctm, c.color, c.alpha)
		case opClipImageMask:
			dev.ClipImageMask(c.image, c.ctm)
		case opBeginMask:
			dev.BeginMask(c.area, c.luminosity, c.color)
		case opEndMask:
			dev.EndMask()
		case opBeginGroup:
			dev.BeginGroup(c.area, c.isolated, c.knockout, c.blend, c.alpha)
		case opEndGroup:
			dev.EndGroup()
		case opBeginTile:
			dev.BeginTile(c.area, c.step, c.ctm)
		case opEndTile:
			dev.EndTile()
		case opPopClip:
			dev.PopClip()
		}
	}
}

func (l *ListDevice) Capabilities() interp.DeviceFlags {
	// recording keeps groups intact; the replay target decides whether
	// to flatten them
	return interp.DeviceSupportsTransparency
}

func (l *ListDevice) record(c listCall) { l.calls = append(l.calls, c) }

func (l *ListDevice) FillPath(path *interp.Path, evenOdd bool, ctm model.Matrix, color interp.Color, alpha Fl) {
	l.record(listCall{kind: opFillPath, path: path.Clone(), evenOdd: evenOdd, ctm: ctm, color: color, alpha: alpha})
}

func (l *ListDevice) StrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix, color interp.Color, alpha Fl) {
	l.record(listCall{kind: opStrokePath, path: path.Clone(), style: style, ctm: ctm, color: color, alpha: alpha})
}

func (l *ListDevice) ClipPath(path *interp.Path, evenOdd bool, ctm model.Matrix) {
	l.record(listCall{kind: opClipPath, path: path.Clone(), evenOdd: evenOdd, ctm: ctm})
}

func (l *ListDevice) ClipStrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix) {
	l.record(listCall{kind: opClipStrokePath, path: path.Clone(), style: style, ctm: ctm})
}

func (l *ListDevice) textCall(kind listOp, gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	l.record(listCall{kind: kind, gs: *gs, tm: tm, text: append([]byte(nil), text...)})
}

func (l *ListDevice) FillText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	l.textCall(opFillText, gs, tm, text)
}

func (l *ListDevice) StrokeText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	l.textCall(opStrokeText, gs, tm, text)
}

func (l *ListDevice) ClipText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	l.textCall(opClipText, gs, tm, text)
}

func (l *ListDevice) IgnoreText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	l.textCall(opIgnoreText, gs, tm, text)
}

func (l *ListDevice) FillShade(sh *model.ShadingDict, ctm model.Matrix, alpha Fl) {
	l.record(listCall{kind: opFillShade, shading: sh, ctm: ctm, alpha: alpha})
}

func (l *ListDevice) FillImage(img *model.XObjectImage, ctm model.Matrix, alpha Fl) {
	l.record(listCall{kind: opFillImage, image: img, ctm: ctm, alpha: alpha})
}

func (l *ListDevice) FillImageMask(img *model.XObjectImage, ctm model.Matrix, color interp.Color, alpha Fl) {
	l.record(listCall{kind: opFillImageMask, image: img, ctm: ctm, color: color, alpha: alpha})
}

func (l *ListDevice) ClipImageMask(img *model.XObjectImage, ctm model.Matrix) {
	l.record(listCall{kind: opClipImageMask, image: img, ctm: ctm})
}

func (l *ListDevice) BeginMask(area model.Rectangle, luminosity bool, backdrop interp.Color) {
	l.record(listCall{kind: opBeginMask, area: area, luminosity: luminosity, color: backdrop})
}

func (l *ListDevice) EndMask() { l.record(listCall{kind: opEndMask}) }

func (l *ListDevice) BeginGroup(area model.Rectangle, isolated, knockout bool, blend model.Name, alpha Fl) {
	l.record(listCall{kind: opBeginGroup, area: area, isolated: isolated, knockout: knockout, blend: blend, alpha: alpha})
}

func (l *ListDevice) EndGroup() { l.record(listCall{kind: opEndGroup}) }

func (l *ListDevice) BeginTile(area, step model.Rectangle, ctm model.Matrix) int {
	l.record(listCall{kind: opBeginTile, area: area, step: step, ctm: ctm})
	return 0
}

func (l *ListDevice) EndTile() { l.record(listCall{kind: opEndTile}) }

func (l *ListDevice) PopClip() { l.record(listCall{kind: opPopClip}) }
