package fonts

import (
	"errors"
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/lucidpdf/core/fonts/glyphsnames"
	"github.com/lucidpdf/core/model"
)

// faceMutex serializes every outline-loading operation on embedded font
// programs, playing the role of the single global face lock: the sfnt
// Buffer is not safe for concurrent use, and sharing one lock over all
// faces matches the renderer's locking model.
var faceMutex sync.Mutex

// outlineLoadPPEM is the em size outlines are loaded at before being
// normalized to em units: large enough that the 26.6 quantization is far
// below visible precision, small enough to stay well within Int26_6.
const outlineLoadPPEM = 1024

// OutlineOp is the kind of one outline segment.
type OutlineOp uint8

const (
	OutlineMoveTo OutlineOp = iota
	OutlineLineTo
	OutlineQuadTo
	OutlineCubeTo
)

// OutlineSegment is one command of a glyph outline, in text-space units
// (one em = one unit, y up): ready to be transformed by the composed
// glyph matrix and fed to the rasterizer.
type OutlineSegment struct {
	Op   OutlineOp
	Args [3][2]model.Fl // end point last; control points first
}

// GlyphOutline is a loaded glyph outline.
type GlyphOutline struct {
	Segments []OutlineSegment
}

// ErrNoOutlines is returned by NewGlyphSource when the font carries no
// embedded program this renderer can read outlines from; callers degrade
// to advance-only rendering.
var ErrNoOutlines = errors.New("fonts: no readable embedded outline program")

// GlyphSource loads glyph outlines from a font dictionary's embedded
// TrueType/OpenType program and maps character codes to glyph indices.
type GlyphSource struct {
	sf  *sfnt.Font
	buf sfnt.Buffer

	// simple-font mapping: code -> rune, via the resolved encoding's
	// glyph names; nil for CID fonts
	runes *[256]rune

	cid      bool
	cidToGID []byte // CIDToGIDMap stream content, nil for Identity
}

// NewGlyphSource prepares outline loading for `font`. Only TrueType and
// OpenType embedded programs (FontFile2, or FontFile3/OpenType) are
// readable; Type 1 programs and the standard 14 fonts have no outline
// source here and return ErrNoOutlines (the caller still positions text
// correctly from the width tables).
func NewGlyphSource(font *model.FontDict) (*GlyphSource, error) {
	if font == nil {
		return nil, ErrNoOutlines
	}
	out := &GlyphSource{}

	switch ft := font.Subtype.(type) {
	case model.FontType1:
		out.runes = simpleRunes(ft, ft.Encoding)
		if err := out.parseFontFile(ft.FontDescriptor.FontFile); err != nil {
			return nil, err
		}
	case model.FontTrueType:
		out.runes = simpleRunes(model.FontType1(ft), ft.Encoding)
		if err := out.parseFontFile(ft.FontDescriptor.FontFile); err != nil {
			return nil, err
		}
	case model.FontType0:
		out.cid = true
		if err := out.parseFontFile(ft.DescendantFonts.FontDescriptor.FontFile); err != nil {
			return nil, err
		}
		if st, ok := ft.DescendantFonts.CIDToGIDMap.(model.CIDToGIDMapStream); ok {
			content, err := st.Decode()
			if err == nil {
				out.cidToGID = content
			}
		}
	default:
		// Type 3 glyphs are content streams, replayed by the
		// interpreter, not outlines
		return nil, ErrNoOutlines
	}
	return out, nil
}

func (g *GlyphSource) parseFontFile(ff *model.FontFile) error {
	if ff == nil {
		return ErrNoOutlines
	}
	switch ff.Subtype {
	case "", "OpenType": // FontFile2, or FontFile3 /OpenType
	default: // Type1C, CIDFontType0C: bare CFF, no sfnt wrapper
		return ErrNoOutlines
	}
	if ff.Length1 != 0 && ff.Length2 != 0 {
		// a Length1/Length2/Length3 split marks a Type 1 program
		return ErrNoOutlines
	}
	content, err := ff.Stream.Decode()
	if err != nil {
		return err
	}
	sf, err := sfnt.Parse(content)
	if err != nil {
		return err
	}
	g.sf = sf
	return nil
}

// simpleRunes resolves an 8-bit encoding to the rune addressed by each
// code, through the encoding's glyph names.
func simpleRunes(ft model.FontType1, enc model.SimpleEncoding) *[256]rune {
	names := resolveSimpleEncoding(ft, enc)
	var out [256]rune
	for code, name := range names {
		if name == "" {
			continue
		}
		if r, ok := glyphsnames.GlyphToRune(name); ok {
			out[code] = r
		}
	}
	return &out
}

// Type3Encoding resolves a Type 3 font's 8-bit encoding to the glyph
// names indexing its /CharProcs.
func Type3Encoding(ft model.FontType3) [256]string {
	return resolveSimpleEncoding(ft, ft.Encoding)
}

// GlyphIndex maps a character code (one byte for simple fonts, a CID for
// composite ones) to the embedded program's glyph index. A zero return
// is the missing glyph.
func (g *GlyphSource) GlyphIndex(code uint32) sfnt.GlyphIndex {
	if g.sf == nil {
		return 0
	}
	if g.cid {
		if g.cidToGID != nil {
			o := int(code) * 2
			if o+1 < len(g.cidToGID) {
				return sfnt.GlyphIndex(uint16(g.cidToGID[o])<<8 | uint16(g.cidToGID[o+1]))
			}
			return 0
		}
		return sfnt.GlyphIndex(code) // Identity
	}
	r := rune(0)
	if g.runes != nil && code < 256 {
		r = g.runes[code]
	}
	faceMutex.Lock()
	defer faceMutex.Unlock()
	if r != 0 {
		if gid, err := g.sf.GlyphIndex(&g.buf, r); err == nil && gid != 0 {
			return gid
		}
	}
	// symbolic fonts: the code addresses the cmap directly, commonly
	// through the 0xF000 private-use offset
	if gid, err := g.sf.GlyphIndex(&g.buf, rune(code)); err == nil && gid != 0 {
		return gid
	}
	gid, _ := g.sf.GlyphIndex(&g.buf, rune(0xF000+code))
	return gid
}

// Outline loads the outline of one glyph, in text-space units (y up).
func (g *GlyphSource) Outline(gid sfnt.GlyphIndex) (GlyphOutline, bool) {
	if g.sf == nil {
		return GlyphOutline{}, false
	}
	faceMutex.Lock()
	defer faceMutex.Unlock()
	segs, err := g.sf.LoadGlyph(&g.buf, gid, fixed.I(outlineLoadPPEM), nil)
	if err != nil {
		return GlyphOutline{}, false
	}
	out := GlyphOutline{Segments: make([]OutlineSegment, len(segs))}
	for i, s := range segs {
		var o OutlineSegment
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			o.Op = OutlineMoveTo
		case sfnt.SegmentOpLineTo:
			o.Op = OutlineLineTo
		case sfnt.SegmentOpQuadTo:
			o.Op = OutlineQuadTo
		default:
			o.Op = OutlineCubeTo
		}
		for k, p := range s.Args {
			// sfnt outlines are y-down pixels at the load ppem;
			// normalize to y-up em units
			o.Args[k][0] = model.Fl(p.X) / 64 / outlineLoadPPEM
			o.Args[k][1] = -model.Fl(p.Y) / 64 / outlineLoadPPEM
		}
		out.Segments[i] = o
	}
	return out, true
}
