package contentstream

import (
	"bytes"
	"fmt"

	"github.com/lucidpdf/core/model"
)

// T*
type OpTextNextLine struct{}

func (o OpTextNextLine) Add(out *bytes.Buffer) {
	out.WriteString("T*")
}

// TD
type OpTextMoveSet struct {
	X, Y Fl
}

func (o OpTextMoveSet) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f TD", o.X, o.Y)
}

// Tc
type OpSetCharSpacing struct {
	CharSpace Fl
}

func (o OpSetCharSpacing) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f Tc", o.CharSpace)
}

// Tr
type OpSetTextRender struct {
	Render Fl
}

func (o OpSetTextRender) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f Tr", o.Render)
}

// Ts
type OpSetTextRise struct {
	Rise Fl
}

func (o OpSetTextRise) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f Ts", o.Rise)
}

// Tw
type OpSetWordSpacing struct {
	WordSpace Fl
}

func (o OpSetWordSpacing) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f Tw", o.WordSpace)
}

// Tz
type OpSetHorizScaling struct {
	Scale Fl
}

func (o OpSetHorizScaling) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f Tz", o.Scale)
}

// d0 - glyph width, for Type3 fonts not using a color glyph description
type OpSetCharWidth struct {
	WX, WY int
}

func (o OpSetCharWidth) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%d %d d0", o.WX, o.WY)
}

// d1 - glyph width and bounding box, for Type3 fonts using a color glyph description
type OpSetCacheDevice struct {
	WX, WY             int
	LLX, LLY, URX, URY int
}

func (o OpSetCacheDevice) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%d %d %d %d %d %d d1", o.WX, o.WY, o.LLX, o.LLY, o.URX, o.URY)
}

// " - sets word and character spacing, moves to the next line, and shows text
type OpMoveSetShowText struct {
	WordSpacing      Fl
	CharacterSpacing Fl
	Text             string // unescaped
}

func (o OpMoveSetShowText) Add(out *bytes.Buffer) {
	fmt.Fprintf(out, "%.3f %.3f ", o.WordSpacing, o.CharacterSpacing)
	out.WriteString(model.EspaceByteString([]byte(o.Text)) + "\"")
}

// SpacedGlyph is one glyph shown by OpShowSpaceGlyph, identified
// directly by its glyph index rather than by a byte string, optionally
// preceded and followed by a space adjustment (in thousandths of text space).
type SpacedGlyph struct {
	GID                   uint16
	SpaceSubtractedBefore int
	SpaceSubtractedAfter  int
}

// OpShowSpaceGlyph is a variant of OpShowSpaceText used when the text has
// already been resolved to glyph indices, for instance after subsetting a font.
type OpShowSpaceGlyph struct {
	Glyphs []SpacedGlyph
}

func (o OpShowSpaceGlyph) Add(out *bytes.Buffer) {
	out.WriteByte('[')
	for _, g := range o.Glyphs {
		if g.SpaceSubtractedBefore != 0 {
			fmt.Fprintf(out, "%d", g.SpaceSubtractedBefore)
		}
		fmt.Fprintf(out, "<%04X>", g.GID)
		if g.SpaceSubtractedAfter != 0 {
			fmt.Fprintf(out, "%d", g.SpaceSubtractedAfter)
		}
	}
	out.WriteString("]TJ")
}
