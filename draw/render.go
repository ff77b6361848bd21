package draw

import (
	"fmt"

	"github.com/lucidpdf/core/fonts"
	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader/parser"
)

// RenderOptions configures one page render.
type RenderOptions struct {
	// DPI is the output resolution; 0 means 72 (one pixel per point).
	DPI Fl
	// AA is the vertical supersampling level: 0, 2, 4 or 8.
	AA int
	// Event is the optional-content usage event, "View" by default.
	Event model.Name
	// Strict propagates per-operator errors instead of logging them.
	Strict bool
	Cookie *interp.Cookie
	// Glyphs optionally shares a glyph cache across pages.
	Glyphs *fonts.GlyphCache
}

func (o RenderOptions) dpi() Fl {
	if o.DPI <= 0 {
		return 72
	}
	return o.DPI
}

// PageTransform returns the user-space-to-device matrix and the pixel
// size for a page at the given resolution: PDF user space has y up and
// an arbitrary origin; device space has y down, origin at the top-left
// of the (rotated) media box.
func PageTransform(mediaBox model.Rectangle, rotate model.Rotation, dpi Fl) (model.Matrix, int, int) {
	s := dpi / 72
	w := mediaBox.Width() * s
	h := mediaBox.Height() * s

	// flip y, translate the box corner to the origin
	base := model.Matrix{s, 0, 0, -s, -mediaBox.Llx * s, mediaBox.Ury * s}
	switch rotate.Degrees() {
	case 90:
		base = base.Mult(model.Matrix{0, 1, -1, 0, h, 0})
		w, h = h, w
	case 180:
		base = base.Mult(model.Matrix{-1, 0, 0, -1, w, h})
	case 270:
		base = base.Mult(model.Matrix{0, -1, 1, 0, 0, w})
		w, h = h, w
	}
	return base, int(w + 0.5), int(h + 0.5)
}

// RenderPage rasterizes one page into a fresh opaque-white RGBA pixmap.
func RenderPage(page *model.PageObject, opts RenderOptions) (*Pixmap, error) {
	mediaBox := page.EffectiveMediaBox()
	ctm, w, h := PageTransform(mediaBox, page.EffectiveRotate(), opts.dpi())

	pix := NewPixmap(0, 0, w, h, 4)
	pix.ClearWhite()

	dev := NewDrawDevice(pix, opts.AA, opts.Glyphs)
	if err := RunPage(page, dev, ctm, opts); err != nil {
		return nil, err
	}
	return pix, nil
}

// RunPage interprets a page's content against any device: the draw
// device for rasterization, the text device for extraction, the list
// device for recording. Annotation appearance streams are drawn after
// the page content, in annotation order.
func RunPage(page *model.PageObject, dev interp.Device, ctm model.Matrix, opts RenderOptions) error {
	resources := page.EffectiveResources()
	if resources == nil {
		resources = &model.ResourcesDict{}
	}

	content, err := pageContent(page)
	if err != nil {
		return err
	}
	ops, err := parser.ParseContent(content, resources.ColorSpace)
	if err != nil {
		return fmt.Errorf("parsing page content: %w", err)
	}

	stack := interp.NewStack(interp.NewGraphicsState(ctm))
	proc := interp.NewRunProcessor(dev)
	runOpts := interp.Options{
		Event:  opts.Event,
		Strict: opts.Strict,
		Cookie: opts.Cookie,
	}
	if err := interp.Run(ops, resources, stack, proc, runOpts); err != nil {
		return err
	}

	for _, annot := range page.Annots {
		if err := runAppearance(annot, stack, proc, runOpts); err != nil {
			if err == interp.ErrAborted {
				return err
			}
			corelog.Interp.Printf("annotation appearance skipped: %s", err)
		}
	}
	return nil
}

// pageContent concatenates the page's content streams, decoded; PDF
// requires the streams to form one logical stream, so a separator
// newline between them is enough.
func pageContent(page *model.PageObject) ([]byte, error) {
	var out []byte
	for i := range page.Contents {
		part, err := page.Contents[i].Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding content stream %d: %w", i, err)
		}
		out = append(out, part...)
		out = append(out, '\n')
	}
	return out, nil
}

// runAppearance honors an annotation's normal appearance stream: the
// /N form (selected by /AS when the entry is a subdictionary) is drawn
// as a Form XObject fitted to the annotation's /Rect (12.5.5).
func runAppearance(annot *model.AnnotationDict, stack *interp.Stack, proc interp.Processor, opts interp.Options) error {
	if annot == nil || annot.AP == nil {
		return nil
	}
	var form *model.XObjectForm
	if f, ok := annot.AP.N[annot.AS]; ok {
		form = f
	} else if f, ok := annot.AP.N[""]; ok {
		form = f
	} else {
		for _, f := range annot.AP.N {
			form = f
			break
		}
	}
	if form == nil {
		return nil
	}
	hidden := annot.F&model.AHidden != 0 || annot.F&model.ANoView != 0
	if hidden {
		return nil
	}

	// map the form's BBox (through its Matrix) onto the annotation Rect
	bbox := form.BBox
	fx0, fy0 := bbox.Llx, bbox.Lly
	fx1, fy1 := bbox.Urx, bbox.Ury
	if form.Matrix != (model.Matrix{}) {
		ax0, ay0 := form.Matrix.Apply(bbox.Llx, bbox.Lly)
		ax1, ay1 := form.Matrix.Apply(bbox.Urx, bbox.Ury)
		fx0, fy0 = minF(ax0, ax1), minF(ay0, ay1)
		fx1, fy1 = maxF(ax0, ax1), maxF(ay0, ay1)
	}
	rect := annot.Rect
	sx, sy := Fl(1), Fl(1)
	if fx1 != fx0 {
		sx = rect.Width() / (fx1 - fx0)
	}
	if fy1 != fy0 {
		sy = rect.Height() / (fy1 - fy0)
	}
	fit := model.Matrix{sx, 0, 0, sy, minF(rect.Llx, rect.Urx) - fx0*sx, minF(rect.Lly, rect.Ury) - fy0*sy}

	stack.Push()
	defer stack.Pop()
	gs := stack.Current()
	gs.CTM = fit.Mult(gs.CTM)

	content, err := form.Decode()
	if err != nil {
		return err
	}
	ops, err := parser.ParseContent(content, form.Resources.ColorSpace)
	if err != nil {
		return err
	}
	return interp.Run(ops, &form.Resources, stack, proc, opts)
}
