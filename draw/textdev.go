package draw

import (
	"strings"

	"github.com/lucidpdf/core/fonts"
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
)

// TextChar is one extracted character: its Unicode decoding and the
// device-space origin it was placed at.
type TextChar struct {
	Runes []rune
	X, Y  Fl
	Size  Fl
}

// TextSpan is a run of characters shown with one font at one size.
type TextSpan struct {
	Font  *model.FontDict
	Size  Fl
	Chars []TextChar
}

// Text returns the span's characters as a string.
func (s *TextSpan) Text() string {
	var b strings.Builder
	for _, c := range s.Chars {
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

// TextDevice extracts positioned text with its Unicode decoding via
// ToUnicode CMaps (4.12's text device). Painting operations other than
// text are ignored.
type TextDevice struct {
	Spans []TextSpan

	decoders map[*model.FontDict]*fonts.TextDecoder
}

// NewTextDevice returns an empty extractor.
func NewTextDevice() *TextDevice {
	return &TextDevice{decoders: make(map[*model.FontDict]*fonts.TextDecoder)}
}

var _ interp.Device = (*TextDevice)(nil)

func (d *TextDevice) Capabilities() interp.DeviceFlags {
	return interp.DeviceSupportsTransparency
}

func (d *TextDevice) decoder(font *model.FontDict) *fonts.TextDecoder {
	if dec, ok := d.decoders[font]; ok {
		return dec
	}
	dec := fonts.NewTextDecoder(font)
	d.decoders[font] = dec
	return dec
}

// show records the characters of one text-showing call. All four text
// hooks funnel here: extraction does not care whether the glyphs were
// filled, stroked, clipped or invisible.
func (d *TextDevice) show(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	dec := d.decoder(gs.Font)
	step := dec.CodeBytes()

	span := TextSpan{Font: gs.Font, Size: gs.FontSize}
	if n := len(d.Spans); n > 0 {
		last := &d.Spans[n-1]
		if last.Font == gs.Font && last.Size == gs.FontSize {
			span = d.Spans[n-1]
			d.Spans = d.Spans[:n-1]
		}
	}

	for i := 0; i+step <= len(text); i += step {
		var code uint32
		for k := 0; k < step; k++ {
			code = code<<8 | uint32(text[i+k])
		}
		trm := glyphTransform(gs, tm).Mult(gs.CTM)
		x, y := trm[4], trm[5]
		span.Chars = append(span.Chars, TextChar{
			Runes: dec.Decode(code),
			X:     x,
			Y:     y,
			Size:  gs.FontSize,
		})

		w0 := interp.GlyphAdvance(gs.Font, code) / 1000 * gs.FontSize
		extra := gs.CharSpace
		if step == 1 && text[i] == ' ' {
			extra += gs.WordSpace
		}
		adv := (w0 + extra) * (gs.HScale / 100)
		tm = model.Matrix{1, 0, 0, 1, adv, 0}.Mult(tm)
	}
	d.Spans = append(d.Spans, span)
}

func (d *TextDevice) FillText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.show(gs, tm, text)
}

func (d *TextDevice) StrokeText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.show(gs, tm, text)
}

func (d *TextDevice) ClipText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.show(gs, tm, text)
}

func (d *TextDevice) IgnoreText(gs *interp.GraphicsState, tm model.Matrix, text []byte) {
	d.show(gs, tm, text)
}

func (d *TextDevice) FillPath(*interp.Path, bool, model.Matrix, interp.Color, Fl) {}
func (d *TextDevice) StrokePath(*interp.Path, interp.StrokeStyle, model.Matrix, interp.Color, Fl) {
}
func (d *TextDevice) ClipPath(*interp.Path, bool, model.Matrix)                     {}
func (d *TextDevice) ClipStrokePath(*interp.Path, interp.StrokeStyle, model.Matrix) {}
func (d *TextDevice) FillShade(*model.ShadingDict, model.Matrix, Fl)                {}
func (d *TextDevice) FillImage(*model.XObjectImage, model.Matrix, Fl)               {}
func (d *TextDevice) FillImageMask(*model.XObjectImage, model.Matrix, interp.Color, Fl) {
}
func (d *TextDevice) ClipImageMask(*model.XObjectImage, model.Matrix)        {}
func (d *TextDevice) BeginMask(model.Rectangle, bool, interp.Color)          {}
func (d *TextDevice) EndMask()                                               {}
func (d *TextDevice) BeginGroup(model.Rectangle, bool, bool, model.Name, Fl) {}
func (d *TextDevice) EndGroup()                                              {}
func (d *TextDevice) BeginTile(_, _ model.Rectangle, _ model.Matrix) int     { return 0 }
func (d *TextDevice) EndTile()                                               {}
func (d *TextDevice) PopClip()                                               {}
