package interp

import (
	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
)

// RunProcessor is the Processor that actually paints a page, translating
// each callback into calls against a Device (4.12). Beyond the Device it
// only tracks clip bookkeeping: the interpreter restores graphics state
// on Q, but a device's clip stack must be unwound to match, so the
// processor records how many clips were pushed at each save depth and
// emits the balancing PopClip calls.
type RunProcessor struct {
	Device Device

	clipCount  int
	savedClips []int
}

// NewRunProcessor returns a processor driving `dev`.
func NewRunProcessor(dev Device) *RunProcessor {
	return &RunProcessor{Device: dev}
}

var _ Processor = (*RunProcessor)(nil)

func (p *RunProcessor) Operator(op cs.Operation, _ *GraphicsState) {
	switch op.(type) {
	case cs.OpSave:
		p.savedClips = append(p.savedClips, p.clipCount)
	case cs.OpRestore:
		if n := len(p.savedClips); n > 0 {
			saved := p.savedClips[n-1]
			p.savedClips = p.savedClips[:n-1]
			for p.clipCount > saved {
				p.Device.PopClip()
				p.clipCount--
			}
		}
	}
}

// blendGroup wraps a painting call in a transparency group when a
// non-Normal blend mode is active, so a device that composites groups
// applies the mode without it being threaded through every fill call.
func (p *RunProcessor) blendGroup(gs *GraphicsState, paint func()) {
	if gs.BlendMode != "" && gs.BlendMode != "Normal" && gs.BlendMode != "Compatible" {
		p.Device.BeginGroup(model.Rectangle{}, false, false, gs.BlendMode, 1)
		paint()
		p.Device.EndGroup()
		return
	}
	paint()
}

func (p *RunProcessor) Paint(gs *GraphicsState, path *Path, mode PaintMode, evenOdd, clip, clipEvenOdd bool) {
	style := StrokeStyle{LineWidth: gs.LineWidth, LineCap: gs.LineCap, LineJoin: gs.LineJoin, MiterLimit: gs.MiterLimit, Dash: gs.Dash}
	p.blendGroup(gs, func() {
		switch mode {
		case PaintFill:
			p.Device.FillPath(path, evenOdd, gs.CTM, gs.FillColor, gs.FillAlpha)
		case PaintStroke:
			p.Device.StrokePath(path, style, gs.CTM, gs.StrokeColor, gs.StrokeAlpha)
		case PaintFillStroke:
			p.Device.FillPath(path, evenOdd, gs.CTM, gs.FillColor, gs.FillAlpha)
			p.Device.StrokePath(path, style, gs.CTM, gs.StrokeColor, gs.StrokeAlpha)
		}
	})
	if !clip {
		return
	}
	if mode == PaintStroke {
		p.Device.ClipStrokePath(path, style, gs.CTM)
	} else {
		p.Device.ClipPath(path, clipEvenOdd, gs.CTM)
	}
	p.clipCount++
}

// ShowText dispatches on the text rendering mode (9.3.3); the add-to-clip
// modes (4 through 7) clip immediately rather than accumulating a clip
// path across the whole text object, a simplification for devices that
// don't need exact multi-glyph clip accumulation.
func (p *RunProcessor) ShowText(gs *GraphicsState, tm model.Matrix, text []byte, _ model.Fl) {
	clip := false
	p.blendGroup(gs, func() {
		switch gs.RenderMode {
		case 0:
			p.Device.FillText(gs, tm, text)
		case 1:
			p.Device.StrokeText(gs, tm, text)
		case 2:
			p.Device.FillText(gs, tm, text)
			p.Device.StrokeText(gs, tm, text)
		case 3:
			p.Device.IgnoreText(gs, tm, text)
		case 4:
			p.Device.FillText(gs, tm, text)
			clip = true
		case 5:
			p.Device.StrokeText(gs, tm, text)
			clip = true
		case 6:
			p.Device.FillText(gs, tm, text)
			p.Device.StrokeText(gs, tm, text)
			clip = true
		case 7:
			clip = true
		default:
			p.Device.IgnoreText(gs, tm, text)
		}
	})
	if clip {
		p.Device.ClipText(gs, tm, text)
		p.clipCount++
	}
}

// Do paints an image XObject, or opens a transparency group for a Form
// XObject that declares one (the interpreter recurses into the form's
// content on its own; FormDone closes the group).
func (p *RunProcessor) Do(gs *GraphicsState, _ model.Name, xobject model.XObject, _ *model.ResourcesDict) {
	switch xo := xobject.(type) {
	case *model.XObjectImage:
		p.blendGroup(gs, func() {
			if xo.ImageMask {
				p.Device.FillImageMask(xo, gs.CTM, gs.FillColor, gs.FillAlpha)
			} else {
				p.Device.FillImage(xo, gs.CTM, gs.FillAlpha)
			}
		})
	case *model.XObjectTransparencyGroup:
		p.Device.BeginGroup(xo.BBox, xo.I, xo.K, gs.BlendMode, gs.FillAlpha)
	}
}

// FormDone closes the transparency group opened by Do, if any.
func (p *RunProcessor) FormDone(_ *GraphicsState, xobject model.XObject) {
	if _, ok := xobject.(*model.XObjectTransparencyGroup); ok {
		p.Device.EndGroup()
	}
}

// InlineImage builds a throwaway XObjectImage wrapping the inline data so
// the device sees the same shape as a resource image. Its ColorSpace is
// left nil: the inline image's colorspace is not resolved against the
// resources here.
func (p *RunProcessor) InlineImage(gs *GraphicsState, img cs.OpBeginImage, data []byte) {
	xi := &model.XObjectImage{
		Stream:           model.Stream{Content: data},
		Width:            img.Image.Width,
		Height:           img.Image.Height,
		BitsPerComponent: img.Image.BitsPerComponent,
		ImageMask:        img.Image.ImageMask,
		Decode:           img.Image.Decode,
	}
	p.blendGroup(gs, func() {
		if xi.ImageMask {
			p.Device.FillImageMask(xi, gs.CTM, gs.FillColor, gs.FillAlpha)
		} else {
			p.Device.FillImage(xi, gs.CTM, gs.FillAlpha)
		}
	})
}

func (p *RunProcessor) Shading(gs *GraphicsState, _ model.Name, shading *model.ShadingDict) {
	p.blendGroup(gs, func() {
		p.Device.FillShade(shading, gs.CTM, gs.FillAlpha)
	})
}

func (p *RunProcessor) MarkedContent(*GraphicsState, model.Name, cs.PropertyList, bool, bool) {}
func (p *RunProcessor) EndMarkedContent(*GraphicsState)                                       {}
