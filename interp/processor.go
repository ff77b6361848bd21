package interp

import (
	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
)

// PaintMode is the fill/stroke combination requested by a path-painting
// operator (8.5.3): one of S, s, f, F, f*, B, B*, b, b*, n. Clipping by a
// preceding W or W* is reported to Paint separately.
type PaintMode uint8

const (
	PaintNone PaintMode = iota
	PaintFill
	PaintStroke
	PaintFillStroke
)

// Processor is the abstract set of per-operator callbacks the run, buffer
// and filter processors each implement (4.8): a run processor drives a
// Device, a buffer processor re-serializes the stream it is handed, and a
// filter processor rewrites content while passing operators through.
//
// The interpreter itself (Run, in interpreter.go) owns the bookkeeping
// common to every processor - the graphics-state stack, the path under
// construction, the text matrices, the marked-content nesting and OCG
// hidden-depth counters - and calls into Processor only at the points
// that differ between a processor that paints and one that merely
// observes or rewrites.
type Processor interface {
	// Operator is called for every operator the interpreter did not
	// itself need to interpret to keep its bookkeeping current (q, Q, cm,
	// line style, color, text-positioning and text-state operators, and
	// anything unrecognized). `gs` is the state *after* the interpreter
	// applied the operator's effect.
	Operator(op cs.Operation, gs *GraphicsState)

	// Paint is called for a path-painting operator once its path is
	// complete. clip is false when the path is not also used to
	// clip (W or W* did not precede the painting operator).
	Paint(gs *GraphicsState, path *Path, mode PaintMode, evenOdd bool, clip bool, clipEvenOdd bool)

	// ShowText is called for Tj, ', " and the string elements of a TJ
	// array; `adjustment` is the kerning value (thousandths of text
	// space) that preceded `text` in a TJ array, or 0.
	ShowText(gs *GraphicsState, tm model.Matrix, text []byte, adjustment model.Fl)

	// Do is called for the Do operator once the named resource has been
	// resolved; xobject is a *model.XObjectForm, a
	// *model.XObjectTransparencyGroup or a *model.XObjectImage.
	Do(gs *GraphicsState, name model.Name, xobject model.XObject, resources *model.ResourcesDict)

	// FormDone is called after a Form XObject's content stream has been
	// executed, pairing with the Do call that announced it: a processor
	// that opened a transparency group on Do closes it here. xobject is
	// the same value Do received.
	FormDone(gs *GraphicsState, xobject model.XObject)

	// InlineImage is called for a BI...ID...EI sequence, with the decoded
	// image data already extracted from the stream.
	InlineImage(gs *GraphicsState, img cs.OpBeginImage, data []byte)

	// Shading is called for the sh operator.
	Shading(gs *GraphicsState, name model.Name, shading *model.ShadingDict)

	// MarkedContent is called for BMC/BDC and MP/DP; point is true for
	// the point variants (MP/DP), which do not have a matching EMC.
	// hidden reports the OCG-evaluated visibility of a /OC property:
	// true means everything until the matching EMC is suppressed.
	MarkedContent(gs *GraphicsState, tag model.Name, props cs.PropertyList, point bool, hidden bool)
	EndMarkedContent(gs *GraphicsState)
}
