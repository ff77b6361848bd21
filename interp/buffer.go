package interp

import (
	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
)

// BufferProcessor re-serializes the operators it is driven with, so a
// content stream can be rewritten by running it once and recording the
// (possibly modified) result instead of painting it.
// Path-construction and text-positioning operators already
// arrive via Operator unmodified; only the terminal painting operator and
// consecutive text-showing calls need reconstruction, since the
// interpreter decomposes those before calling Processor.
type BufferProcessor struct {
	ops         []cs.Operation
	pendingText []cs.TextSpaced
}

// NewBufferProcessor returns an empty buffer.
func NewBufferProcessor() *BufferProcessor { return &BufferProcessor{} }

var _ Processor = (*BufferProcessor)(nil)

func (b *BufferProcessor) flushText() {
	if len(b.pendingText) == 0 {
		return
	}
	if len(b.pendingText) == 1 && b.pendingText[0].SpaceSubtractedAfter == 0 {
		b.ops = append(b.ops, cs.OpShowText{Text: b.pendingText[0].Text})
	} else {
		b.ops = append(b.ops, cs.OpShowSpaceText{Texts: append([]cs.TextSpaced(nil), b.pendingText...)})
	}
	b.pendingText = b.pendingText[:0]
}

func (b *BufferProcessor) Operator(op cs.Operation, _ *GraphicsState) {
	b.flushText()
	b.ops = append(b.ops, op)
}

func (b *BufferProcessor) Paint(_ *GraphicsState, _ *Path, mode PaintMode, evenOdd, _, _ bool) {
	b.flushText()
	b.ops = append(b.ops, terminalPaintOp(mode, evenOdd))
}

// ShowText coalesces consecutive calls back into one TJ-equivalent
// operation: `adjustment`, the kerning value preceding this run, becomes
// the SpaceSubtractedAfter of the previous buffered run.
func (b *BufferProcessor) ShowText(_ *GraphicsState, _ model.Matrix, text []byte, adjustment model.Fl) {
	if adjustment != 0 && len(b.pendingText) > 0 {
		b.pendingText[len(b.pendingText)-1].SpaceSubtractedAfter = int(adjustment)
	}
	b.pendingText = append(b.pendingText, cs.TextSpaced{Text: string(text)})
}

func (b *BufferProcessor) Do(_ *GraphicsState, name model.Name, _ model.XObject, _ *model.ResourcesDict) {
	b.flushText()
	b.ops = append(b.ops, cs.OpXObject{XObject: model.ObjName(name)})
}

func (b *BufferProcessor) FormDone(*GraphicsState, model.XObject) {}

func (b *BufferProcessor) InlineImage(_ *GraphicsState, img cs.OpBeginImage, _ []byte) {
	b.flushText()
	b.ops = append(b.ops, img)
}

func (b *BufferProcessor) Shading(_ *GraphicsState, name model.Name, _ *model.ShadingDict) {
	b.flushText()
	b.ops = append(b.ops, cs.OpShFill{Shading: model.ObjName(name)})
}

func (b *BufferProcessor) MarkedContent(_ *GraphicsState, tag model.Name, props cs.PropertyList, point, _ bool) {
	b.flushText()
	if point {
		b.ops = append(b.ops, cs.OpMarkPoint{Tag: model.ObjName(tag), Properties: props})
	} else {
		b.ops = append(b.ops, cs.OpBeginMarkedContent{Tag: model.ObjName(tag), Properties: props})
	}
}

func (b *BufferProcessor) EndMarkedContent(_ *GraphicsState) {
	b.flushText()
	b.ops = append(b.ops, cs.OpEndMarkedContent{})
}

// Operations flushes any pending text run and returns the buffered
// operators, in the order they were recorded.
func (b *BufferProcessor) Operations() []cs.Operation {
	b.flushText()
	return b.ops
}

// Bytes flushes any pending text run and serializes the buffered
// operators into a replayable content stream.
func (b *BufferProcessor) Bytes() []byte {
	return cs.WriteOperations(b.Operations()...)
}

func terminalPaintOp(mode PaintMode, evenOdd bool) cs.Operation {
	switch mode {
	case PaintFill:
		if evenOdd {
			return cs.OpEOFill{}
		}
		return cs.OpFill{}
	case PaintStroke:
		return cs.OpStroke{}
	case PaintFillStroke:
		if evenOdd {
			return cs.OpEOFillStroke{}
		}
		return cs.OpFillStroke{}
	default:
		return cs.OpEndPath{}
	}
}
