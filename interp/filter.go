package interp

import (
	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
)

// FilterProcessor wraps another Processor and drops selected classes of
// marking operator before they reach it, stripping images or text from a
// content stream while leaving the surrounding graphics-state operators -
// and so the document structure a viewer depends on - untouched. All
// non-marking callbacks (Operator, MarkedContent/EndMarkedContent)
// always pass through unchanged, since dropping q/Q/cm or a
// marked-content boundary would desynchronize the wrapped processor's
// own bookkeeping.
type FilterProcessor struct {
	Inner Processor

	// DropText, DropImages, DropShadings, DropPaths suppress the
	// corresponding marking operator instead of forwarding it to Inner.
	DropText     bool
	DropImages   bool
	DropShadings bool
	DropPaths    bool
}

// NewFilterProcessor returns a filter forwarding everything to inner
// until some Drop field is set.
func NewFilterProcessor(inner Processor) *FilterProcessor {
	return &FilterProcessor{Inner: inner}
}

var _ Processor = (*FilterProcessor)(nil)

func (f *FilterProcessor) Operator(op cs.Operation, gs *GraphicsState) {
	f.Inner.Operator(op, gs)
}

func (f *FilterProcessor) Paint(gs *GraphicsState, path *Path, mode PaintMode, evenOdd, clip, clipEvenOdd bool) {
	if f.DropPaths && !clip {
		return
	}
	f.Inner.Paint(gs, path, mode, evenOdd, clip, clipEvenOdd)
}

func (f *FilterProcessor) ShowText(gs *GraphicsState, tm model.Matrix, text []byte, adjustment model.Fl) {
	if f.DropText {
		return
	}
	f.Inner.ShowText(gs, tm, text, adjustment)
}

func (f *FilterProcessor) Do(gs *GraphicsState, name model.Name, xobject model.XObject, resources *model.ResourcesDict) {
	if f.DropImages {
		if _, ok := xobject.(*model.XObjectImage); ok {
			return
		}
	}
	f.Inner.Do(gs, name, xobject, resources)
}

func (f *FilterProcessor) FormDone(gs *GraphicsState, xobject model.XObject) {
	f.Inner.FormDone(gs, xobject)
}

func (f *FilterProcessor) InlineImage(gs *GraphicsState, img cs.OpBeginImage, data []byte) {
	if f.DropImages {
		return
	}
	f.Inner.InlineImage(gs, img, data)
}

func (f *FilterProcessor) Shading(gs *GraphicsState, name model.Name, shading *model.ShadingDict) {
	if f.DropShadings {
		return
	}
	f.Inner.Shading(gs, name, shading)
}

func (f *FilterProcessor) MarkedContent(gs *GraphicsState, tag model.Name, props cs.PropertyList, point, hidden bool) {
	f.Inner.MarkedContent(gs, tag, props, point, hidden)
}

func (f *FilterProcessor) EndMarkedContent(gs *GraphicsState) {
	f.Inner.EndMarkedContent(gs)
}
