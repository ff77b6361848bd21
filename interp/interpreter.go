package interp

import (
	"errors"
	"fmt"

	"github.com/lucidpdf/core/internal/corelog"

	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader/parser"
)

// ErrAborted is returned by Run when the supplied Cookie was aborted
// mid-stream.
var ErrAborted = errors.New("interp: run aborted")

// ErrTooDeep is returned when a chain of nested Form XObjects exceeds
// Options.MaxFormDepth (4.8: "Nested soft-masks and form-XObject
// recursion are bounded by a configurable depth; exceeding it is a fatal
// per-page error").
var ErrTooDeep = errors.New("interp: form XObject recursion too deep")

const defaultMaxFormDepth = 16

// Options configures a single Run.
type Options struct {
	// Event is the optional-content usage event content is evaluated
	// under, typically "View" or "Print". Defaults to "View".
	Event model.Name
	OCG   OCGConfig
	// Strict, when set, turns every per-operator error into a Run error
	// instead of the default catch-log-continue policy (§7).
	Strict bool
	// MaxFormDepth bounds Do-triggered Form XObject recursion; 0 means
	// defaultMaxFormDepth.
	MaxFormDepth int
	Cookie       *Cookie
}

func (o Options) event() model.Name {
	if o.Event == "" {
		return "View"
	}
	return o.Event
}

func (o Options) maxDepth() int {
	if o.MaxFormDepth <= 0 {
		return defaultMaxFormDepth
	}
	return o.MaxFormDepth
}

// Run interprets `ops` against `resources`, calling back into `proc` for
// every operator (4.8). `stack` holds the graphics state in effect when
// Run is called (and is left holding the state at content end, save for
// any unmatched q's: Run never pops below the depth it started at).
func Run(ops []cs.Operation, resources *model.ResourcesDict, stack *Stack, proc Processor, opts Options) error {
	return run(ops, resources, stack, proc, opts, 0)
}

func run(ops []cs.Operation, resources *model.ResourcesDict, stack *Stack, proc Processor, opts Options, depth int) error {
	if depth > opts.maxDepth() {
		return ErrTooDeep
	}
	baseDepth := stack.Depth()

	var (
		path         Path
		tm, tlm      model.Matrix
		pendingClip  bool
		pendingEO    bool
		compatDepth  int
		mcHiddenPush []bool
		hiddenDepth  int
	)
	event := opts.event()
	if resources == nil {
		resources = &model.ResourcesDict{}
	}

	resolveProps := func(pl cs.PropertyList) model.PropertyList {
		switch p := pl.(type) {
		case nil:
			return nil
		case cs.PropertyListDict:
			return model.PropertyList(p)
		case cs.PropertyListName:
			return resources.Properties[model.Name(p)]
		default:
			return nil
		}
	}

	fail := func(err error) error {
		incomplete := opts.Cookie != nil && opts.Cookie.IncompleteOK
		opts.Cookie.recordError(incomplete)
		corelog.Interp.Printf("content stream error: %s", err)
		if opts.Strict && !incomplete {
			return err
		}
		return nil
	}

	for _, op := range ops {
		if opts.Cookie.Aborted() {
			return ErrAborted
		}
		opts.Cookie.tick()

		gs := stack.Current()
		visible := hiddenDepth == 0

		switch o := op.(type) {
		// ---- graphics state ----
		case cs.OpSave:
			stack.Push()
			proc.Operator(op, stack.Current())
			continue
		case cs.OpRestore:
			if stack.Depth() <= baseDepth {
				// unmatched Q: nothing saved by this stream to restore
				continue
			}
			stack.Pop()
			proc.Operator(op, stack.Current())
			continue
		case cs.OpConcat:
			gs.CTM = o.Matrix.Mult(gs.CTM)
		case cs.OpSetLineWidth:
			gs.LineWidth = o.W
		case cs.OpSetLineCap:
			gs.LineCap = int(o.Style)
		case cs.OpSetLineJoin:
			gs.LineJoin = int(o.Style)
		case cs.OpSetMiterLimit:
			gs.MiterLimit = o.Limit
		case cs.OpSetDash:
			gs.Dash = o.Dash
		case cs.OpSetRenderingIntent:
			gs.RenderingIntent = model.Name(o.Intent)
		case cs.OpSetFlat:
			gs.Flatness = o.Flatness
		case cs.OpSetExtGState:
			if egs := resources.ExtGState[model.Name(o.Dict)]; egs != nil {
				applyExtGState(gs, egs)
			} else if err := fail(fmt.Errorf("unknown ExtGState resource %s", o.Dict)); err != nil {
				return err
			}

		// ---- color ----
		case cs.OpSetStrokeColorSpace:
			space, err := model.ResourcesColorSpace(resources.ColorSpace).Resolve(model.Name(o.ColorSpace))
			if err != nil {
				if err := fail(err); err != nil {
					return err
				}
			} else {
				gs.StrokeColor = initialColor(space)
			}
		case cs.OpSetFillColorSpace:
			space, err := model.ResourcesColorSpace(resources.ColorSpace).Resolve(model.Name(o.ColorSpace))
			if err != nil {
				if err := fail(err); err != nil {
					return err
				}
			} else {
				gs.FillColor = initialColor(space)
			}
		case cs.OpSetStrokeColor:
			gs.StrokeColor.Components, gs.StrokeColor.Pattern = o.Color, ""
		case cs.OpSetFillColor:
			gs.FillColor.Components, gs.FillColor.Pattern = o.Color, ""
		case cs.OpSetStrokeColorN:
			gs.StrokeColor.Components, gs.StrokeColor.Pattern = o.Color, model.Name(o.Pattern)
			gs.StrokeColor.PatternDef = resources.Pattern[model.Name(o.Pattern)]
		case cs.OpSetFillColorN:
			gs.FillColor.Components, gs.FillColor.Pattern = o.Color, model.Name(o.Pattern)
			gs.FillColor.PatternDef = resources.Pattern[model.Name(o.Pattern)]
		case cs.OpSetStrokeGray:
			gs.StrokeColor = Color{Space: model.ColorSpaceName("DeviceGray"), Components: []model.Fl{o.G}}
		case cs.OpSetFillGray:
			gs.FillColor = Color{Space: model.ColorSpaceName("DeviceGray"), Components: []model.Fl{o.G}}
		case cs.OpSetStrokeRGBColor:
			gs.StrokeColor = Color{Space: model.ColorSpaceName("DeviceRGB"), Components: []model.Fl{o.R, o.G, o.B}}
		case cs.OpSetFillRGBColor:
			gs.FillColor = Color{Space: model.ColorSpaceName("DeviceRGB"), Components: []model.Fl{o.R, o.G, o.B}}
		case cs.OpSetStrokeCMYKColor:
			gs.StrokeColor = Color{Space: model.ColorSpaceName("DeviceCMYK"), Components: []model.Fl{o.C, o.M, o.Y, o.K}}
		case cs.OpSetFillCMYKColor:
			gs.FillColor = Color{Space: model.ColorSpaceName("DeviceCMYK"), Components: []model.Fl{o.C, o.M, o.Y, o.K}}

		// ---- path construction ----
		case cs.OpMoveTo:
			path.MoveTo(o.X, o.Y)
			proc.Operator(op, gs)
			continue
		case cs.OpLineTo:
			path.LineTo(o.X, o.Y)
			proc.Operator(op, gs)
			continue
		case cs.OpCubicTo:
			path.CurveTo(o.X1, o.Y1, o.X2, o.Y2, o.X3, o.Y3)
			proc.Operator(op, gs)
			continue
		case cs.OpCurveTo1:
			path.CurveToV(o.X2, o.Y2, o.X3, o.Y3)
			proc.Operator(op, gs)
			continue
		case cs.OpCurveTo:
			path.CurveToY(o.X1, o.Y1, o.X3, o.Y3)
			proc.Operator(op, gs)
			continue
		case cs.OpClosePath:
			path.ClosePath()
			proc.Operator(op, gs)
			continue
		case cs.OpRectangle:
			path.Rectangle(o.X, o.Y, o.W, o.H)
			proc.Operator(op, gs)
			continue

		// ---- clipping intent ----
		case cs.OpClip:
			pendingClip, pendingEO = true, false
			proc.Operator(op, gs)
			continue
		case cs.OpEOClip:
			pendingClip, pendingEO = true, true
			proc.Operator(op, gs)
			continue

		// ---- path painting ----
		case cs.OpFill, cs.OpEOFill, cs.OpStroke,
			cs.OpFillStroke, cs.OpEOFillStroke,
			cs.OpCloseStroke, cs.OpCloseFillStroke, cs.OpCloseEOFillStroke,
			cs.OpEndPath:
			if _, ok := o.(cs.OpCloseStroke); ok {
				path.ClosePath()
			}
			if _, ok := o.(cs.OpCloseFillStroke); ok {
				path.ClosePath()
			}
			if _, ok := o.(cs.OpCloseEOFillStroke); ok {
				path.ClosePath()
			}
			mode, evenOdd := paintModeOf(o)
			if visible {
				proc.Paint(gs, &path, mode, evenOdd, pendingClip, pendingEO)
			}
			if pendingClip {
				gs.Clips = append(gs.Clips, ClipEntry{Path: path.Clone(), EvenOdd: pendingEO, CTM: gs.CTM})
			}
			path.Clear()
			pendingClip, pendingEO = false, false
			continue

		// ---- text object ----
		case cs.OpBeginText:
			tm, tlm = model.Identity, model.Identity
			proc.Operator(op, gs)
			continue
		case cs.OpEndText:
			proc.Operator(op, gs)
			continue
		case cs.OpSetCharSpacing:
			gs.CharSpace = o.CharSpace
		case cs.OpSetWordSpacing:
			gs.WordSpace = o.WordSpace
		case cs.OpSetHorizScaling:
			gs.HScale = o.Scale
		case cs.OpSetTextLeading:
			gs.Leading = o.L
		case cs.OpSetFont:
			gs.Font = resources.Font[model.Name(o.Font)]
			gs.FontSize = o.Size
			if gs.Font == nil {
				if err := fail(fmt.Errorf("unknown font resource %s", o.Font)); err != nil {
					return err
				}
			}
		case cs.OpSetTextRender:
			gs.RenderMode = int(o.Render)
		case cs.OpSetTextRise:
			gs.Rise = o.Rise
		case cs.OpSetCharWidth, cs.OpSetCacheDevice:
			// d0/d1: Type 3 glyph metrics, meaningful only while building
			// a CharProcs content stream, not while interpreting a page.
			proc.Operator(op, gs)
			continue

		case cs.OpTextMove:
			tlm = model.Matrix{1, 0, 0, 1, o.X, o.Y}.Mult(tlm)
			tm = tlm
			proc.Operator(op, gs)
			continue
		case cs.OpTextMoveSet:
			gs.Leading = -o.Y
			tlm = model.Matrix{1, 0, 0, 1, o.X, o.Y}.Mult(tlm)
			tm = tlm
			proc.Operator(op, gs)
			continue
		case cs.OpTextNextLine:
			tlm = model.Matrix{1, 0, 0, 1, 0, -gs.Leading}.Mult(tlm)
			tm = tlm
			proc.Operator(op, gs)
			continue
		case cs.OpSetTextMatrix:
			tlm = o.Matrix
			tm = tlm
			proc.Operator(op, gs)
			continue

		// ---- text showing ----
		case cs.OpShowText:
			tm = showBytes(proc, gs, tm, []byte(o.Text), 0, visible)
			continue
		case cs.OpMoveShowText:
			tlm = model.Matrix{1, 0, 0, 1, 0, -gs.Leading}.Mult(tlm)
			tm = tlm
			tm = showBytes(proc, gs, tm, []byte(o.Text), 0, visible)
			continue
		case cs.OpMoveSetShowText:
			gs.WordSpace, gs.CharSpace = o.WordSpacing, o.CharacterSpacing
			tlm = model.Matrix{1, 0, 0, 1, 0, -gs.Leading}.Mult(tlm)
			tm = tlm
			tm = showBytes(proc, gs, tm, []byte(o.Text), 0, visible)
			continue
		case cs.OpShowSpaceText:
			var adjustment model.Fl
			for _, ts := range o.Texts {
				tm = showBytes(proc, gs, tm, []byte(ts.Text), adjustment, visible)
				adjustment = model.Fl(ts.SpaceSubtractedAfter)
				if ts.SpaceSubtractedAfter != 0 {
					adv := -adjustment / 1000 * gs.FontSize * (gs.HScale / 100)
					tm = model.Matrix{1, 0, 0, 1, adv, 0}.Mult(tm)
				}
			}
			continue
		case cs.OpShowSpaceGlyph:
			// glyph-index text, produced by a writer after font
			// subsetting: advancing Tm needs the subset's own width
			// table, which is not reachable from here, so only the
			// callback fires; see DESIGN.md.
			proc.Operator(op, gs)
			continue

		// ---- XObjects, shadings, inline images ----
		case cs.OpXObject:
			name := model.Name(o.XObject)
			xobj := resources.XObject[name]
			if xobj == nil {
				if err := fail(fmt.Errorf("unknown XObject resource %s", name)); err != nil {
					return err
				}
				continue
			}
			if visible {
				proc.Do(gs, name, xobj, resources)
			}
			form, isForm := xobj.(*model.XObjectForm)
			if tg, ok := xobj.(*model.XObjectTransparencyGroup); ok {
				form, isForm = &tg.XObjectForm, true
			}
			if isForm && visible {
				err := runForm(form, stack, proc, opts, depth)
				proc.FormDone(stack.Current(), xobj)
				if err != nil {
					if err == ErrAborted || err == ErrTooDeep {
						return err
					}
					if err := fail(err); err != nil {
						return err
					}
				}
			}
			continue
		case cs.OpShFill:
			name := model.Name(o.Shading)
			if sh := resources.Shading[name]; sh != nil {
				if visible {
					proc.Shading(gs, name, sh)
				}
			} else if err := fail(fmt.Errorf("unknown shading resource %s", name)); err != nil {
				return err
			}
			continue
		case cs.OpBeginImage:
			if visible {
				proc.InlineImage(gs, o, o.Image.Content)
			}
			continue

		// ---- marked content / optional content ----
		case cs.OpBeginMarkedContent:
			props := resolveProps(o.Properties)
			ocgHidden := false
			if hiddenDepth == 0 && o.Tag == "OC" && props != nil {
				ocgHidden = !opts.OCG.Visible(props, event)
			}
			mcHiddenPush = append(mcHiddenPush, ocgHidden)
			if ocgHidden {
				hiddenDepth++
			}
			proc.MarkedContent(gs, model.Name(o.Tag), o.Properties, false, hiddenDepth > 0)
			continue
		case cs.OpMarkPoint:
			if visible {
				proc.MarkedContent(gs, model.Name(o.Tag), o.Properties, true, false)
			}
			continue
		case cs.OpEndMarkedContent:
			if n := len(mcHiddenPush); n > 0 {
				if mcHiddenPush[n-1] {
					hiddenDepth--
				}
				mcHiddenPush = mcHiddenPush[:n-1]
			}
			proc.EndMarkedContent(gs)
			continue

		// ---- compatibility ----
		case cs.OpBeginIgnoreUndef:
			compatDepth++
			proc.Operator(op, gs)
			continue
		case cs.OpEndIgnoreUndef:
			if compatDepth > 0 {
				compatDepth--
			}
			proc.Operator(op, gs)
			continue

		default:
			if compatDepth == 0 {
				corelog.Interp.Printf("unhandled content stream operator %T", op)
			}
			proc.Operator(op, gs)
			continue
		}

		proc.Operator(op, gs)
	}
	return nil
}

func runForm(form *model.XObjectForm, stack *Stack, proc Processor, opts Options, depth int) error {
	stack.Push()
	defer stack.Pop()

	gs := stack.Current()
	if form.Matrix != (model.Matrix{}) {
		gs.CTM = form.Matrix.Mult(gs.CTM)
	}
	bbox := form.BBox
	var clip Path
	clip.Rectangle(bbox.Llx, bbox.Lly, bbox.Urx-bbox.Llx, bbox.Ury-bbox.Lly)
	gs.Clips = append(gs.Clips, ClipEntry{Path: &clip, CTM: gs.CTM})

	content, err := form.Decode()
	if err != nil {
		return err
	}
	ops, err := parser.ParseContent(content, form.Resources.ColorSpace)
	if err != nil {
		return err
	}
	return run(ops, &form.Resources, stack, proc, opts, depth+1)
}

func showBytes(proc Processor, gs *GraphicsState, tm model.Matrix, text []byte, adjustment model.Fl, visible bool) model.Matrix {
	if visible && len(text) != 0 {
		proc.ShowText(gs, tm, text, adjustment)
	}
	step := codeWidth(gs.Font)
	for i := 0; i+step <= len(text); i += step {
		var code uint32
		for k := 0; k < step; k++ {
			code = code<<8 | uint32(text[i+k])
		}
		w0 := glyphWidth(gs.Font, code) / 1000 * gs.FontSize
		extra := gs.CharSpace
		if step == 1 && text[i] == ' ' {
			extra += gs.WordSpace
		}
		adv := (w0 + extra) * (gs.HScale / 100)
		tm = model.Matrix{1, 0, 0, 1, adv, 0}.Mult(tm)
	}
	return tm
}

func initialColor(space model.ColorSpace) Color {
	n := space.NbColorComponents()
	if n <= 0 {
		n = 1
	}
	comps := make([]model.Fl, n)
	if _, ok := space.(model.ColorSpaceIndexed); ok {
		// the initial color of an Indexed space is index 0, not black.
		comps[0] = 0
	}
	return Color{Space: space, Components: comps}
}

func paintModeOf(op cs.Operation) (mode PaintMode, evenOdd bool) {
	switch op.(type) {
	case cs.OpFill:
		return PaintFill, false
	case cs.OpEOFill:
		return PaintFill, true
	case cs.OpStroke, cs.OpCloseStroke:
		return PaintStroke, false
	case cs.OpFillStroke, cs.OpCloseFillStroke:
		return PaintFillStroke, false
	case cs.OpEOFillStroke, cs.OpCloseEOFillStroke:
		return PaintFillStroke, true
	default: // OpEndPath: n, or s/b's close already applied above
		return PaintNone, false
	}
}

func applyExtGState(gs *GraphicsState, egs *model.GraphicState) {
	if egs.LW != 0 {
		gs.LineWidth = egs.LW
	}
	if egs.LC != model.Undef {
		gs.LineCap = int(egs.LC)
	}
	if egs.LJ != model.Undef {
		gs.LineJoin = int(egs.LJ)
	}
	if egs.ML != 0 {
		gs.MiterLimit = egs.ML
	}
	if egs.D != nil {
		gs.Dash = *egs.D
	}
	if egs.RI != "" {
		gs.RenderingIntent = egs.RI
	}
	if egs.Font.Font != nil {
		gs.Font, gs.FontSize = egs.Font.Font, egs.Font.Size
	}
	if egs.CA != model.Undef {
		gs.StrokeAlpha = model.Fl(egs.CA)
	}
	if egs.Ca != model.Undef {
		gs.FillAlpha = model.Fl(egs.Ca)
	}
	gs.AlphaIsShape = egs.AIS
	if egs.SM != 0 {
		gs.Flatness = egs.SM
	}
	if len(egs.BM) != 0 {
		gs.BlendMode = egs.BM[0]
	}
	if egs.SMask.G != nil || egs.SMask.S != "" {
		mask := egs.SMask
		gs.SoftMask = &mask
	}
}
