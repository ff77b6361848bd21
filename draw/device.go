package draw

import (
	"github.com/lucidpdf/core/fonts"
	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/raster"
	"github.com/lucidpdf/core/reader/parser"
)

// group is one transparency-group or soft-mask layer: drawing targets
// its offscreen pixmap until the matching end call composites (or
// converts to a mask) into the layer below.
type group struct {
	pix        *Pixmap
	blend      BlendMode
	alpha      Fl
	isMask     bool
	luminosity bool
}

// DrawDevice rasterizes device calls into a pixmap (4.12's draw device).
type DrawDevice struct {
	pix    *Pixmap
	aa     int
	glyphs *fonts.GlyphCache

	clips  [][]uint8 // stack of intersected coverage masks, len w*h each
	groups []*group

	type3Depth int
}

// NewDrawDevice returns a device rasterizing into dst with the given
// antialias level (0, 2, 4 or 8 vertical sub-scanlines). The glyph cache
// may be shared across devices and pages; nil allocates a private one.
func NewDrawDevice(dst *Pixmap, aaLevel int, glyphs *fonts.GlyphCache) *DrawDevice {
	if glyphs == nil {
		glyphs = fonts.NewGlyphCache(0)
	}
	return &DrawDevice{pix: dst, aa: raster.AALevel(aaLevel), glyphs: glyphs}
}

var _ interp.Device = (*DrawDevice)(nil)

func (d *DrawDevice) Capabilities() interp.DeviceFlags {
	return interp.DeviceSupportsTransparency | interp.DeviceIsRasterizer
}

// target is the pixmap drawing currently lands in.
func (d *DrawDevice) target() *Pixmap {
	if n := len(d.groups); n > 0 {
		return d.groups[n-1].pix
	}
	return d.pix
}

func (d *DrawDevice) clip() []uint8 {
	if n := len(d.clips); n > 0 {
		return d.clips[n-1]
	}
	return nil
}

// deviceMatrix folds the pixmap origin into a placement matrix, so the
// rasterizer always works in pixmap-local coordinates.
func (d *DrawDevice) deviceMatrix(ctm model.Matrix) model.Matrix {
	return ctm.Mult(model.Matrix{1, 0, 0, 1, -Fl(d.pix.X), -Fl(d.pix.Y)})
}

// flatten builds the device-space polyline form of a path.
func (d *DrawDevice) flatten(path *interp.Path, ctm model.Matrix) ([][]raster.Point, []bool) {
	m := d.deviceMatrix(ctm)
	// tolerance 0.3 device pixels, the draw device's fixed flatness
	fl := raster.NewFlattener(0.3)
	ap := func(x, y Fl) raster.Point {
		px, py := m.Apply(x, y)
		return raster.Point{X: px, Y: py}
	}
	for _, seg := range path.Segments {
		switch seg.Op {
		case interp.SegMoveTo:
			fl.MoveTo(ap(seg.X, seg.Y))
		case interp.SegLineTo:
			fl.LineTo(ap(seg.X, seg.Y))
		case interp.SegCubicTo:
			fl.CubeTo(ap(seg.X1, seg.Y1), ap(seg.X2, seg.Y2), ap(seg.X, seg.Y))
		case interp.SegClose:
			fl.ClosePath()
		}
	}
	return fl.Subpaths()
}

// rasterCoverage runs the rasterizer and collects full-size coverage.
func (d *DrawDevice) rasterCoverage(fill func(r *raster.Rasterizer), evenOdd bool) []uint8 {
	t := d.target()
	r := raster.NewRasterizer(t.Width, t.Height, d.aa)
	fill(r)
	cov := make([]uint8, t.Width*t.Height)
	r.Rasterize(evenOdd, func(y int, row []uint8) {
		copy(cov[y*t.Width:(y+1)*t.Width], row)
	})
	return cov
}

// paintCoverage composites a solid color through cov and the clip stack
// into the target.
func (d *DrawDevice) paintCoverage(cov []uint8, col RGBA) {
	t := d.target()
	clip := d.clip()
	row := make([]uint8, t.Width)
	for y := 0; y < t.Height; y++ {
		base := y * t.Width
		empty := true
		for x := 0; x < t.Width; x++ {
			c := cov[base+x]
			if clip != nil {
				c = mul255(c, clip[base+x])
			}
			row[x] = c
			if c != 0 {
				empty = false
			}
		}
		if !empty {
			paintSpanColor(t.Row(y), row, 0, t.Width, col)
		}
	}
}

func (d *DrawDevice) color(c interp.Color, alpha Fl) RGBA {
	r, g, b := DeviceRGB(c)
	return premultiply(r, g, b, alpha)
}

func (d *DrawDevice) deviceStroke(style interp.StrokeStyle, ctm model.Matrix) raster.StrokeStyle {
	scale := ctm.Scaling()
	out := raster.StrokeStyle{
		LineWidth:  style.LineWidth * scale,
		LineCap:    style.LineCap,
		LineJoin:   style.LineJoin,
		MiterLimit: style.MiterLimit,
		DashPhase:  style.Dash.Phase * scale,
	}
	for _, v := range style.Dash.Array {
		out.Dash = append(out.Dash, v*scale)
	}
	return out
}

// ---- paths ----

func (d *DrawDevice) FillPath(path *interp.Path, evenOdd bool, ctm model.Matrix, color interp.Color, alpha Fl) {
	sub, _ := d.flatten(path, ctm)
	cov := d.rasterCoverage(func(r *raster.Rasterizer) { raster.FillInto(r, sub) }, evenOdd)
	if d.paintPattern(cov, color, ctm, alpha) {
		return
	}
	d.paintCoverage(cov, d.color(color, alpha))
}

func (d *DrawDevice) StrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix, color interp.Color, alpha Fl) {
	sub, closed := d.flatten(path, ctm)
	ds := d.deviceStroke(style, ctm)
	cov := d.rasterCoverage(func(r *raster.Rasterizer) { raster.StrokeInto(r, sub, closed, ds) }, false)
	if d.paintPattern(cov, color, ctm, alpha) {
		return
	}
	d.paintCoverage(cov, d.color(color, alpha))
}

// paintPattern handles a shading-pattern fill source: the rasterized
// coverage becomes the region the gradient paints through. Tiling
// patterns fall through to the underlying color (uncolored) or a flat
// 50% gray (colored), a documented approximation.
func (d *DrawDevice) paintPattern(cov []uint8, color interp.Color, ctm model.Matrix, alpha Fl) bool {
	sp, ok := color.PatternDef.(*model.ShadingPatern)
	if !ok || sp.Shading == nil {
		if _, tiling := color.PatternDef.(*model.TilingPatern); tiling && len(color.Components) == 0 {
			corelog.Interp.Printf("tiling pattern approximated by flat gray")
			d.paintCoverage(cov, premultiply(0.5, 0.5, 0.5, alpha))
			return true
		}
		return false
	}
	if clip := d.clip(); clip != nil {
		for i := range cov {
			cov[i] = mul255(cov[i], clip[i])
		}
	}
	m := sp.Matrix
	if m == (model.Matrix{}) {
		m = model.Identity
	}
	paintShading(d.target(), cov, sp.Shading, d.deviceMatrix(m.Mult(ctm)), alpha)
	return true
}

// pushClipCoverage intersects cov with the current clip and pushes it.
func (d *DrawDevice) pushClipCoverage(cov []uint8) {
	if cur := d.clip(); cur != nil {
		for i := range cov {
			cov[i] = mul255(cov[i], cur[i])
		}
	}
	d.clips = append(d.clips, cov)
}

func (d *DrawDevice) ClipPath(path *interp.Path, evenOdd bool, ctm model.Matrix) {
	sub, _ := d.flatten(path, ctm)
	cov := d.rasterCoverage(func(r *raster.Rasterizer) { raster.FillInto(r, sub) }, evenOdd)
	d.pushClipCoverage(cov)
}

func (d *DrawDevice) ClipStrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix) {
	sub, closed := d.flatten(path, ctm)
	ds := d.deviceStroke(style, ctm)
	cov := d.rasterCoverage(func(r *raster.Rasterizer) { raster.StrokeInto(r, sub, closed, ds) }, false)
	d.pushClipCoverage(cov)
}

func (d *DrawDevice) PopClip() {
	if n := len(d.clips); n > 0 {
		d.clips = d.clips[:n-1]
	}
}

// ---- text ----

// glyphTransform composes the text parameter matrix, the text matrix and
// the CTM into the em-units-to-device transform (9.4.4).
func glyphTransform(gs *interp.GraphicsState, tm model.Matrix) model.Matrix {
	param := model.Matrix{
		gs.FontSize * gs.HScale / 100, 0,
		0, gs.FontSize,
		0, gs.Rise,
	}
	return param.Mult(tm)
}

// runGlyphs walks the shown bytes, invoking per-glyph with the composed
// device transform of each glyph origin.
func (d *DrawDevice) runGlyphs(gs *interp.GraphicsState, tm model.Matrix, text []byte, visit func(code uint32, trm model.Matrix)) {
	step := interp.CodeBytes(gs.Font)
	for i := 0; i+step <= len(text); i += step {
		var code uint32
		for k := 0; k < step; k++ {
			code = code<<8 | uint32(text[i+k])
		}
		trm := glyphTransform(gs, tm).Mult(d.deviceMatrix(gs.CTM))
		visit(code, trm)

		w0 := interp.GlyphAdvance(gs.Font, code) / 1000 * gs.FontSize
		extra := gs.CharSpace
		if step == 1 && text[i] == ' ' {
			extra += gs.WordSpace
		}
		adv := (w0 + extra) * (gs.HScale / 100)
		tm = model.Matrix{1, 0, 0, 1, adv, 0}.Mult(tm)
	}
}

// glyphCoverage rasterizes (through the cache) one glyph under trm and
// hands back the positioned bitmap, or nil.
func (d *DrawDevice) glyphCoverage(font *model.FontDict, code uint32, trm model.Matrix) *fonts.GlyphBitmap {
	src, ok := d.glyphs.Source(font)
	if !ok {
		return nil
	}
	gid := src.GlyphIndex(code)
	// cache on the translation-free transform; the fractional offset is
	// dropped, quantizing glyph positions to whole pixels
	key := fonts.GlyphKey{
		Font: font,
		GID:  uint16(gid),
		AA:   uint8(d.aa),
		A:    fonts.QuantizeComponent(trm[0]),
		B:    fonts.QuantizeComponent(trm[1]),
		C:    fonts.QuantizeComponent(trm[2]),
		D:    fonts.QuantizeComponent(trm[3]),
	}
	bitmap := d.glyphs.Glyph(key, func() *fonts.GlyphBitmap {
		outline, ok := src.Outline(gid)
		if !ok {
			return nil
		}
		shape := model.Matrix{trm[0], trm[1], trm[2], trm[3], 0, 0}
		return fonts.RasterizeOutline(outline, shape)
	})
	if bitmap == nil {
		return nil
	}
	positioned := *bitmap
	positioned.X += int(trm[4] + 0.5)
	positioned.Y += int(trm[5] + 0.5)
	return &positioned
}

// paintGlyph composites a glyph bitmap as a color-through-mask span.
func (d *DrawDevice) paintGlyph(b *fonts.GlyphBitmap, col RGBA) {
	t := d.target()
	clip := d.clip()
	row := make([]uint8, t.Width)
	for gy := 0; gy < b.Height; gy++ {
		y := b.Y + gy
		if y < 0 || y >= t.Height {
			continue
		}
		for i := range row {
			row[i] = 0
		}
		empty := true
		for gx := 0; gx < b.Width; gx++ {
			x := b.X + gx
			if x < 0 || x >= t.Width {
				continue
			}
			c := b.Cov[gy*b.Width+gx]
			if clip != nil {
				c = mul255(c, clip[y*t.Width+x])
			}
			row[x] = c
			if c != 0 {
				empty = false
			}
		}
		if !empty {
			paintSpanColorMask(t.Row(y), row, 0, t.Width, col)
		}
	}
}

func (d *DrawDevice) FillText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	if gs.Font != nil {
		if t3, ok := gs.Font.Subtype.(model.FontType3); ok {
			d.fillTextType3(gs, tm, text, t3)
			return
		}
	}
	col := d.color(gs.FillColor, gs.FillAlpha)
	d.runGlyphs(gs, tm, text, func(code uint32, trm model.Matrix) {
		if b := d.glyphCoverage(gs.Font, code, trm); b != nil {
			d.paintGlyph(b, col)
		}
	})
}

// maxType3Depth bounds Type 3 glyphs whose CharProcs show text in the
// same font.
const maxType3Depth = 8

// fillTextType3 replays each glyph's content stream into this device
// (4.7): a Type 3 glyph is a display list, not an outline.
func (d *DrawDevice) fillTextType3(gs *interp.GraphicsState, tm model.Matrix, text []byte, t3 model.FontType3) {
	if d.type3Depth >= maxType3Depth {
		corelog.Interp.Printf("Type 3 glyph recursion too deep, glyphs dropped")
		return
	}
	names := fonts.Type3Encoding(t3)
	fm := t3.FontMatrix
	if fm == (model.Matrix{}) {
		fm = model.Matrix{0.001, 0, 0, 0.001, 0, 0}
	}
	d.runGlyphs(gs, tm, text, func(code uint32, trm model.Matrix) {
		if code > 255 {
			return
		}
		proc, ok := t3.CharProcs[model.Name(names[code])]
		if !ok {
			return
		}
		content, err := proc.Decode()
		if err != nil {
			corelog.Interp.Printf("unreadable Type 3 glyph %s: %s", names[code], err)
			return
		}
		ops, err := parser.ParseContent(content, t3.Resources.ColorSpace)
		if err != nil {
			corelog.Interp.Printf("invalid Type 3 glyph %s: %s", names[code], err)
			return
		}
		// trm maps text space to the pixmap; the glyph content runs in
		// glyph space, one FontMatrix away. runGlyphs already folded the
		// device origin in, so the glyph state must not re-apply it.
		sub := *gs
		sub.CTM = fm.Mult(trm)
		sub.Font = nil
		stack := interp.NewStack(sub)
		d.type3Depth++
		err = interp.Run(ops, &t3.Resources, stack, interp.NewRunProcessor(&originDevice{d}), interp.Options{})
		d.type3Depth--
		if err != nil {
			corelog.Interp.Printf("Type 3 glyph %s: %s", names[code], err)
		}
	})
}

// originDevice wraps the draw device for Type 3 glyph replay: the glyph
// transform handed to the inner run already contains the pixmap origin,
// so the wrapper neutralizes deviceMatrix's second application by
// pre-shifting every CTM it forwards.
type originDevice struct {
	*DrawDevice
}

func (o *originDevice) shift(ctm model.Matrix) model.Matrix {
	return ctm.Mult(model.Matrix{1, 0, 0, 1, Fl(o.pix.X), Fl(o.pix.Y)})
}

func (o *originDevice) FillPath(path *interp.Path, evenOdd bool, ctm model.Matrix, color interp.Color, alpha Fl) {
	o.DrawDevice.FillPath(path, evenOdd, o.shift(ctm), color, alpha)
}

func (o *originDevice) StrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix, color interp.Color, alpha Fl) {
	o.DrawDevice.StrokePath(path, style, o.shift(ctm), color, alpha)
}

func (o *originDevice) ClipPath(path *interp.Path, evenOdd bool, ctm model.Matrix) {
	o.DrawDevice.ClipPath(path, evenOdd, o.shift(ctm))
}

func (o *originDevice) ClipStrokePath(path *interp.Path, style interp.StrokeStyle, ctm model.Matrix) {
	o.DrawDevice.ClipStrokePath(path, style, o.shift(ctm))
}

func (o *originDevice) FillImage(img *model.XObjectImage, ctm model.Matrix, alpha Fl) {
	o.DrawDevice.FillImage(img, o.shift(ctm), alpha)
}

func (o *originDevice) FillImageMask(img *model.XObjectImage, ctm model.Matrix, color interp.Color, alpha Fl) {
	o.DrawDevice.FillImageMask(img, o.shift(ctm), color, alpha)
}

func (o *originDevice) ClipImageMask(img *model.XObjectImage, ctm model.Matrix) {
	o.DrawDevice.ClipImageMask(img, o.shift(ctm))
}

func (o *originDevice) FillShade(sh *model.ShadingDict, ctm model.Matrix, alpha Fl) {
	o.DrawDevice.FillShade(sh, o.shift(ctm), alpha)
}

func (o *originDevice) shiftState(gs *interp.GraphicsState) *interp.GraphicsState {
	sub := *gs
	sub.CTM = o.shift(gs.CTM)
	return &sub
}

func (o *originDevice) FillText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	o.DrawDevice.FillText(o.shiftState(gs), tm, text)
}

func (o *originDevice) StrokeText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	o.DrawDevice.StrokeText(o.shiftState(gs), tm, text)
}

func (o *originDevice) ClipText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	o.DrawDevice.ClipText(o.shiftState(gs), tm, text)
}

// StrokeText offset-strokes each glyph outline with the current stroke
// state before rasterizing; stroked glyphs bypass the cache.
func (d *DrawDevice) StrokeText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	src, ok := d.glyphs.Source(gs.Font)
	if !ok {
		return
	}
	col := d.color(gs.StrokeColor, gs.StrokeAlpha)
	style := d.deviceStroke(interp.StrokeStyle{
		LineWidth: gs.LineWidth, LineCap: gs.LineCap, LineJoin: gs.LineJoin,
		MiterLimit: gs.MiterLimit, Dash: gs.Dash,
	}, gs.CTM)
	d.runGlyphs(gs, tm, text, func(code uint32, trm model.Matrix) {
		outline, ok := src.Outline(src.GlyphIndex(code))
		if !ok {
			return
		}
		sub, closed := flattenOutline(outline, trm)
		cov := d.rasterCoverage(func(r *raster.Rasterizer) { raster.StrokeInto(r, sub, closed, style) }, false)
		d.paintCoverage(cov, col)
	})
}

func (d *DrawDevice) ClipText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	t := d.target()
	cov := make([]uint8, t.Width*t.Height)
	d.runGlyphs(gs, tm, text, func(code uint32, trm model.Matrix) {
		b := d.glyphCoverage(gs.Font, code, trm)
		if b == nil {
			return
		}
		for gy := 0; gy < b.Height; gy++ {
			y := b.Y + gy
			if y < 0 || y >= t.Height {
				continue
			}
			for gx := 0; gx < b.Width; gx++ {
				x := b.X + gx
				if x < 0 || x >= t.Width {
					continue
				}
				if c := b.Cov[gy*b.Width+gx]; c > cov[y*t.Width+x] {
					cov[y*t.Width+x] = c
				}
			}
		}
	})
	d.pushClipCoverage(cov)
}

func (d *DrawDevice) IgnoreText(*interp.GraphicsState, model.Matrix, []byte) {}

// flattenOutline converts a glyph outline under trm to polyline subpaths.
func flattenOutline(outline fonts.GlyphOutline, trm model.Matrix) ([][]raster.Point, []bool) {
	fl := raster.NewFlattener(0.3)
	ap := func(p [2]Fl) raster.Point {
		x, y := trm.Apply(p[0], p[1])
		return raster.Point{X: x, Y: y}
	}
	var cur raster.Point
	for _, s := range outline.Segments {
		switch s.Op {
		case fonts.OutlineMoveTo:
			cur = ap(s.Args[0])
			fl.MoveTo(cur)
		case fonts.OutlineLineTo:
			cur = ap(s.Args[0])
			fl.LineTo(cur)
		case fonts.OutlineQuadTo:
			// elevate the quadratic to a cubic
			c := ap(s.Args[0])
			end := ap(s.Args[1])
			c1 := raster.Point{X: cur.X + 2*(c.X-cur.X)/3, Y: cur.Y + 2*(c.Y-cur.Y)/3}
			c2 := raster.Point{X: end.X + 2*(c.X-end.X)/3, Y: end.Y + 2*(c.Y-end.Y)/3}
			fl.CubeTo(c1, c2, end)
			cur = end
		case fonts.OutlineCubeTo:
			c1, c2 := ap(s.Args[0]), ap(s.Args[1])
			end := ap(s.Args[2])
			fl.CubeTo(c1, c2, end)
			cur = end
		}
	}
	fl.ClosePath()
	return fl.Subpaths()
}

// ---- images ----

func (d *DrawDevice) FillImage(img *model.XObjectImage, ctm model.Matrix, alpha Fl) {
	src, err := DecodeImage(img)
	if err != nil {
		corelog.Interp.Printf("image skipped: %s", err)
		return
	}
	t := d.target()
	PaintImage(t, d.clip(), src, d.deviceMatrix(ctm), alpha, img.Interpolate, BlendNormal)
}

func (d *DrawDevice) FillImageMask(img *model.XObjectImage, ctm model.Matrix, color interp.Color, alpha Fl) {
	mask, err := DecodeImageMask(img)
	if err != nil {
		corelog.Interp.Printf("image mask skipped: %s", err)
		return
	}
	col := d.color(color, alpha)
	// shape a solid-color pixmap by the stencil, then paint it like an
	// ordinary image (color-into-mask case)
	src := NewPixmap(0, 0, mask.Width, mask.Height, 4)
	for i := 0; i < mask.Width*mask.Height; i++ {
		m := mask.Samples[i]
		src.Samples[i*4+0] = mul255(col.R, m)
		src.Samples[i*4+1] = mul255(col.G, m)
		src.Samples[i*4+2] = mul255(col.B, m)
		src.Samples[i*4+3] = mul255(col.A, m)
	}
	PaintImage(d.target(), d.clip(), src, d.deviceMatrix(ctm), 1, img.Interpolate, BlendNormal)
}

func (d *DrawDevice) ClipImageMask(img *model.XObjectImage, ctm model.Matrix) {
	mask, err := DecodeImageMask(img)
	if err != nil {
		corelog.Interp.Printf("clip image mask skipped: %s", err)
		d.pushClipCoverage(make([]uint8, d.target().Width*d.target().Height))
		return
	}
	t := d.target()
	// resample the stencil into device space by painting white through
	// it into a scratch pixmap, then keep the alpha as coverage
	src := NewPixmap(0, 0, mask.Width, mask.Height, 4)
	for i := 0; i < mask.Width*mask.Height; i++ {
		m := mask.Samples[i]
		src.Samples[i*4+0] = m
		src.Samples[i*4+1] = m
		src.Samples[i*4+2] = m
		src.Samples[i*4+3] = m
	}
	scratch := NewPixmap(0, 0, t.Width, t.Height, 4)
	PaintImage(scratch, nil, src, d.deviceMatrix(ctm), 1, img.Interpolate, BlendNormal)
	cov := make([]uint8, t.Width*t.Height)
	for i := range cov {
		cov[i] = scratch.Samples[i*4+3]
	}
	d.pushClipCoverage(cov)
}

// ---- shadings ----

func (d *DrawDevice) FillShade(sh *model.ShadingDict, ctm model.Matrix, alpha Fl) {
	paintShading(d.target(), d.clip(), sh, d.deviceMatrix(ctm), alpha)
}

// ---- groups and masks ----

func (d *DrawDevice) BeginGroup(_ model.Rectangle, _, _ bool, blend model.Name, alpha Fl) {
	t := d.target()
	g := &group{
		pix:   NewPixmap(t.X, t.Y, t.Width, t.Height, 4),
		blend: BlendModeFromName(blend),
		alpha: alpha,
	}
	d.groups = append(d.groups, g)
}

func (d *DrawDevice) EndGroup() {
	n := len(d.groups)
	if n == 0 {
		return
	}
	g := d.groups[n-1]
	d.groups = d.groups[:n-1]
	if g.isMask {
		return // mismatched call; EndMask handles mask layers
	}
	t := d.target()
	alpha8 := uint8(clampF(g.alpha, 0, 1)*255 + 0.5)
	for y := 0; y < t.Height; y++ {
		if g.blend == BlendNormal {
			paintSpanImage(t.Row(y), g.pix.Row(y), 0, t.Width, alpha8, nil)
		} else {
			paintSpanBlend(t.Row(y), g.pix.Row(y), 0, t.Width, alpha8, g.blend)
		}
	}
}

func (d *DrawDevice) BeginMask(_ model.Rectangle, luminosity bool, backdrop interp.Color) {
	t := d.target()
	g := &group{
		pix:        NewPixmap(t.X, t.Y, t.Width, t.Height, 4),
		isMask:     true,
		luminosity: luminosity,
		alpha:      1,
	}
	if luminosity {
		r, gc, b := DeviceRGB(backdrop)
		col := premultiply(r, gc, b, 1)
		for i := 0; i < t.Width*t.Height; i++ {
			g.pix.Samples[i*4+0] = col.R
			g.pix.Samples[i*4+1] = col.G
			g.pix.Samples[i*4+2] = col.B
			g.pix.Samples[i*4+3] = 255
		}
	}
	d.groups = append(d.groups, g)
}

// EndMask converts the rendered mask group to coverage and installs it
// as a clip layer; the matching PopClip removes it.
func (d *DrawDevice) EndMask() {
	n := len(d.groups)
	if n == 0 {
		return
	}
	g := d.groups[n-1]
	if !g.isMask {
		return
	}
	d.groups = d.groups[:n-1]
	t := d.target()
	cov := make([]uint8, t.Width*t.Height)
	for i := range cov {
		o := i * 4
		a := g.pix.Samples[o+3]
		if g.luminosity {
			r := unmul(g.pix.Samples[o+0], a)
			gg := unmul(g.pix.Samples[o+1], a)
			b := unmul(g.pix.Samples[o+2], a)
			cov[i] = uint8((int(r)*77 + int(gg)*151 + int(b)*28) >> 8)
		} else {
			cov[i] = a
		}
	}
	d.pushClipCoverage(cov)
}

// ---- tiling ----

// BeginTile records nothing for now: the run processor expands tiling
// patterns itself by replaying the pattern cell, so the draw device only
// needs to keep painting. The return value of 0 asks the caller to run
// the cell content once per tile.
func (d *DrawDevice) BeginTile(_, _ model.Rectangle, _ model.Matrix) int { return 0 }
func (d *DrawDevice) EndTile()                                          {}
