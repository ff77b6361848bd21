package interp

import "github.com/lucidpdf/core/model"

// DeviceFlags advertises what a Device natively supports (4.12). Devices
// report them through Capabilities; the interpreter and the run processor
// do not consult them: groups are always passed to the device through
// BeginGroup/EndGroup, never flattened to a temporary pixmap first.
type DeviceFlags uint8

const (
	// DeviceSupportsTransparency means the device can composite groups,
	// soft masks and blend modes itself.
	DeviceSupportsTransparency DeviceFlags = 1 << iota
	// DeviceIsRasterizer marks a device that rasterizes to a pixmap (the
	// draw device). Every device, with or without it, is handed the same
	// unflattened Path.
	DeviceIsRasterizer
)

// StrokeStyle carries the subset of the graphics state a device needs to
// expand a stroke (4.10): line width, caps, joins, and dashing.
type StrokeStyle struct {
	LineWidth  model.Fl
	LineCap    int
	LineJoin   int
	MiterLimit model.Fl
	Dash       model.DashPattern
}

// Device is the sink the run processor paints into (4.12). Built-in
// implementations (the draw device, list device, text device and bbox
// device) live in the draw package; Device is declared here because it is
// the interpreter, not the devices themselves, that decides when each
// hook fires.
type Device interface {
	FillPath(path *Path, evenOdd bool, ctm model.Matrix, color Color, alpha model.Fl)
	StrokePath(path *Path, style StrokeStyle, ctm model.Matrix, color Color, alpha model.Fl)
	ClipPath(path *Path, evenOdd bool, ctm model.Matrix)
	ClipStrokePath(path *Path, style StrokeStyle, ctm model.Matrix)

	FillText(gs *GraphicsState, tm model.Matrix, text []byte)
	StrokeText(gs *GraphicsState, tm model.Matrix, text []byte)
	ClipText(gs *GraphicsState, tm model.Matrix, text []byte)
	IgnoreText(gs *GraphicsState, tm model.Matrix, text []byte)

	FillShade(shading *model.ShadingDict, ctm model.Matrix, alpha model.Fl)
	FillImage(image *model.XObjectImage, ctm model.Matrix, alpha model.Fl)
	FillImageMask(image *model.XObjectImage, ctm model.Matrix, color Color, alpha model.Fl)
	ClipImageMask(image *model.XObjectImage, ctm model.Matrix)

	BeginMask(area model.Rectangle, luminosity bool, backdrop Color)
	EndMask()
	BeginGroup(area model.Rectangle, isolated, knockout bool, blend model.Name, alpha model.Fl)
	EndGroup()
	BeginTile(area, step model.Rectangle, ctm model.Matrix) int
	EndTile()
	PopClip()

	Capabilities() DeviceFlags
}
