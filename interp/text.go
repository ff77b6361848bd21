package interp

import "github.com/lucidpdf/core/model"

// glyphWidth returns the width, in glyph space (1/1000 em), of the glyph
// selected by character code `code` in `font`. It is a thin, allocation-
// free substitute for building a full fonts.BuiltFont (which is oriented
// the other way: Unicode to bytes, for a writer encoding new text) just
// to advance Tm while interpreting text that is already byte-encoded.
func glyphWidth(font *model.FontDict, code uint32) model.Fl {
	if font == nil {
		return 0
	}
	switch f := font.Subtype.(type) {
	case model.FontType1:
		return simpleWidth(code, f.FirstChar, f.Widths, f.FontDescriptor.MissingWidth)
	case model.FontTrueType:
		return simpleWidth(code, f.FirstChar, f.Widths, f.FontDescriptor.MissingWidth)
	case model.FontType3:
		mw := 0
		if f.FontDescriptor != nil {
			mw = f.FontDescriptor.MissingWidth
		}
		// Type 3 widths are expressed in glyph space via FontMatrix,
		// not the implicit 1/1000 convention of the other font kinds;
		// callers scale by FontMatrix[0] rather than by 0.001.
		return simpleWidth(code, f.FirstChar, f.Widths, mw)
	case model.FontType0:
		return cidWidth(code, f.DescendantFonts)
	default:
		return 0
	}
}

func simpleWidth(code uint32, firstChar byte, widths []int, missing int) model.Fl {
	idx := int(code) - int(firstChar)
	if idx >= 0 && idx < len(widths) {
		return model.Fl(widths[idx])
	}
	return model.Fl(missing)
}

// cidWidth resolves a CID width from the /W array, assuming the common
// Identity-H/V encoding where a two-byte character code is its own CID;
// a content stream using a non-identity embedded CMap will get
// approximate advances, a scoped simplification (see DESIGN.md).
func cidWidth(code uint32, desc model.CIDFontDictionary) model.Fl {
	cid := model.CID(code)
	for _, w := range desc.W {
		switch w := w.(type) {
		case model.CIDWidthRange:
			if cid >= w.First && cid <= w.Last {
				return model.Fl(w.Width)
			}
		case model.CIDWidthArray:
			if i := int(cid - w.Start); i >= 0 && i < len(w.W) {
				return model.Fl(w.W[i])
			}
		}
	}
	dw := desc.DW
	if dw == 0 {
		dw = 1000
	}
	return model.Fl(dw)
}

// GlyphAdvance returns the advance width, in glyph space (1/1000 em), of
// the glyph selected by character code `code`: the devices walking shown
// text position glyphs with the same widths the interpreter advances Tm
// by.
func GlyphAdvance(font *model.FontDict, code uint32) model.Fl {
	return glyphWidth(font, code)
}

// CodeBytes returns the number of bytes one character code occupies in
// the font's encoding.
func CodeBytes(font *model.FontDict) int {
	return codeWidth(font)
}

// codeWidth is like glyphWidth, but returns the number of bytes the font's
// encoding consumes for one character code: 1 for every simple font, and
// 2 for a Type0 font (the Identity-H/V simplification above).
func codeWidth(font *model.FontDict) int {
	if font == nil {
		return 1
	}
	if _, ok := font.Subtype.(model.FontType0); ok {
		return 2
	}
	return 1
}
