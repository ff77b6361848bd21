// Package glyphsnames provides a lookup from Adobe glyph names to their
// Unicode codepoint, used to resolve encoding differences that name a glyph
// absent from the font's base encoding.
package glyphsnames

import (
	"strconv"
	"strings"
)

var punctuationRunes = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=',
	"greater": '>', "question": '?', "at": '@',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']',
	"asciicircum": '^', "underscore": '_', "grave": '`',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',
}

var digitRunes = map[string]rune{
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
}

// GlyphToRune resolves a glyph name to its Unicode codepoint, following the
// Adobe Glyph List conventions: single letters name themselves, "uniXXXX"
// names encode their codepoint in hexadecimal, and a fixed table covers the
// common ASCII punctuation and digit names.
func GlyphToRune(name string) (rune, bool) {
	if len(name) == 1 {
		r := rune(name[0])
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r, true
		}
	}
	if r, ok := digitRunes[name]; ok {
		return r, true
	}
	if r, ok := punctuationRunes[name]; ok {
		return r, true
	}
	if strings.HasPrefix(name, "uni") && len(name) >= 7 {
		if v, err := strconv.ParseUint(name[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return 0, false
}
