package fonts

import "github.com/lucidpdf/core/model"

// TextDecoder maps the character codes of shown text to Unicode, for
// text extraction: through the font's /ToUnicode CMap when present,
// falling back to the simple encoding's glyph names.
type TextDecoder struct {
	toUnicode map[model.CID][]rune
	runes     *[256]rune
	codeBytes int
}

// NewTextDecoder builds the extraction mapping for a font.
func NewTextDecoder(font *model.FontDict) *TextDecoder {
	out := &TextDecoder{codeBytes: 1}
	if font == nil {
		return out
	}
	cmap := font.ToUnicode
	switch ft := font.Subtype.(type) {
	case model.FontType1:
		out.runes = simpleRunes(ft, ft.Encoding)
	case model.FontTrueType:
		out.runes = simpleRunes(model.FontType1(ft), ft.Encoding)
	case model.FontType3:
		t1 := model.FontType1{FirstChar: ft.FirstChar, Widths: ft.Widths}
		if ft.FontDescriptor != nil {
			t1.FontDescriptor = *ft.FontDescriptor
		}
		out.runes = simpleRunes(t1, ft.Encoding)
	case model.FontType0:
		out.codeBytes = 2
		if cmap == nil {
			cmap = ft.ToUnicode
		}
	}
	if cmap != nil {
		if table, err := resolveToUnicode(*cmap); err == nil {
			out.toUnicode = table
		}
	}
	return out
}

// CodeBytes returns how many bytes one character code occupies.
func (d *TextDecoder) CodeBytes() int { return d.codeBytes }

// Decode returns the Unicode text for one character code.
func (d *TextDecoder) Decode(code uint32) []rune {
	if rs, ok := d.toUnicode[model.CID(code)]; ok && len(rs) != 0 {
		return rs
	}
	if d.runes != nil && code < 256 && d.runes[code] != 0 {
		return []rune{d.runes[code]}
	}
	if d.codeBytes == 1 && code >= 0x20 && code < 0x7F {
		// unencoded ASCII-range codes usually mean what they say
		return []rune{rune(code)}
	}
	return nil
}
