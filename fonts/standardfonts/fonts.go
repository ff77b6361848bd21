package standardfonts

import (
	"github.com/lucidpdf/core/fonts/simpleencodings"
	"github.com/lucidpdf/core/model"
)

// afmData holds the metrics published in the Adobe Font Metrics files for
// the 14 standard fonts: widths in StandardEncoding code-point order,
// starting at firstChar.
type afmData struct {
	desc      model.FontDescriptor
	firstChar byte
	widths    []int
}

// metrics zips the AFM widths with a builtin glyph-name table to build the
// name-indexed CharsWidths map consumed by WidthsWithEncoding.
func (a afmData) metrics(builtin [256]string) Metrics {
	charsWidths := make(map[string]int, len(a.widths))
	for i, w := range a.widths {
		if w == 0 {
			continue
		}
		code := int(a.firstChar) + i
		if code > 255 {
			break
		}
		name := builtin[code]
		if name == "" {
			continue
		}
		charsWidths[name] = w
	}
	return Metrics{Descriptor: a.desc, Builtin: builtin, CharsWidths: charsWidths}
}

var courierBoldData = afmData{
	desc:      model.FontDescriptor{FontName: "Courier-Bold", FontFamily: "Courier", Flags: 0x21, FontBBox: model.Rectangle{Llx: -113, Lly: -250, Urx: 749, Ury: 801}, ItalicAngle: 0, Ascent: 629, Descent: -157, CapHeight: 562, XHeight: 439, StemV: 106, StemH: 84, AvgWidth: 600, MaxWidth: 600},
	firstChar: 0x20,
	widths:    []int{600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600, 600},
}

var courierBoldObliqueData = afmData{
	desc:      model.FontDescriptor{FontName: "Courier-BoldOblique", FontFamily: "Courier", Flags: 0x61, FontBBox: model.Rectangle{Llx: -57, Lly: -250, Urx: 869, Ury: 801}, ItalicAngle: -12, Ascent: 629, Descent: -157, CapHeight: 562, XHeight: 439, StemV: 106, StemH: 84, AvgWidth: 600, MaxWidth: 600},
	firstChar: 0x20,
	widths:    courierBoldData.widths,
}

var courierObliqueData = afmData{
	desc:      model.FontDescriptor{FontName: "Courier-Oblique", FontFamily: "Courier", Flags: 0x61, FontBBox: model.Rectangle{Llx: -27, Lly: -250, Urx: 849, Ury: 805}, ItalicAngle: -12, Ascent: 629, Descent: -157, CapHeight: 562, XHeight: 426, StemV: 51, StemH: 51, AvgWidth: 600, MaxWidth: 600},
	firstChar: 0x20,
	widths:    courierBoldData.widths,
}

var courierData = afmData{
	desc:      model.FontDescriptor{FontName: "Courier", FontFamily: "Courier", Flags: 0x21, FontBBox: model.Rectangle{Llx: -23, Lly: -250, Urx: 715, Ury: 805}, ItalicAngle: 0, Ascent: 629, Descent: -157, CapHeight: 562, XHeight: 426, StemV: 51, StemH: 51, AvgWidth: 600, MaxWidth: 600},
	firstChar: 0x20,
	widths:    courierBoldData.widths,
}

var helveticaBoldData = afmData{
	desc:      model.FontDescriptor{FontName: "Helvetica-Bold", FontFamily: "Helvetica", Flags: 0x20, FontBBox: model.Rectangle{Llx: -170, Lly: -228, Urx: 1003, Ury: 962}, ItalicAngle: 0, Ascent: 718, Descent: -207, CapHeight: 718, XHeight: 532, StemV: 140, StemH: 118, AvgWidth: 535.1, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    []int{278, 333, 474, 556, 556, 889, 722, 278, 333, 333, 389, 584, 278, 333, 278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611, 975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556, 278, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500},
}

var helveticaBoldObliqueData = afmData{
	desc:      model.FontDescriptor{FontName: "Helvetica-BoldOblique", FontFamily: "Helvetica", Flags: 0x60, FontBBox: model.Rectangle{Llx: -174, Lly: -228, Urx: 1114, Ury: 962}, ItalicAngle: -12, Ascent: 718, Descent: -207, CapHeight: 718, XHeight: 532, StemV: 140, StemH: 118, AvgWidth: 535.1, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    helveticaBoldData.widths,
}

var helveticaObliqueData = afmData{
	desc:      model.FontDescriptor{FontName: "Helvetica-Oblique", FontFamily: "Helvetica", Flags: 0x60, FontBBox: model.Rectangle{Llx: -170, Lly: -225, Urx: 1116, Ury: 931}, ItalicAngle: -12, Ascent: 718, Descent: -207, CapHeight: 718, XHeight: 523, StemV: 88, StemH: 76, AvgWidth: 512.8, MaxWidth: 1015},
	firstChar: 0x20,
	widths:    []int{278, 278, 355, 556, 556, 889, 667, 222, 333, 333, 389, 584, 278, 333, 278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, 222, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500},
}

var helveticaData = afmData{
	desc:      model.FontDescriptor{FontName: "Helvetica", FontFamily: "Helvetica", Flags: 0x20, FontBBox: model.Rectangle{Llx: -166, Lly: -225, Urx: 1000, Ury: 931}, ItalicAngle: 0, Ascent: 718, Descent: -207, CapHeight: 718, XHeight: 523, StemV: 88, StemH: 76, AvgWidth: 512.8, MaxWidth: 1015},
	firstChar: 0x20,
	widths:    helveticaObliqueData.widths,
}

var symbolData = afmData{
	desc:      model.FontDescriptor{FontName: "Symbol", FontFamily: "Symbol", Flags: 0x4, FontBBox: model.Rectangle{Llx: -180, Lly: -293, Urx: 1090, Ury: 1010}, XHeight: 480, StemV: 85, StemH: 92, AvgWidth: 586.9, MaxWidth: 1042},
	firstChar: 0x20,
	widths:    []int{250, 333, 713, 500, 549, 833, 778, 439, 333, 333, 500, 549, 250, 549, 250, 278, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 549, 549, 549, 444, 549, 722, 667, 722, 612, 611, 763, 603, 722, 333, 631, 722, 686, 889, 722, 722, 768, 741, 556, 592, 611, 690, 439, 768, 645, 795, 611, 333, 863, 333, 658, 500, 500, 631, 549, 549, 494, 439, 521, 411, 603, 329, 603, 549, 549, 576, 521, 549, 549, 521, 549, 603, 439, 576, 713, 686, 493, 686, 494},
}

var timesBoldData = afmData{
	desc:      model.FontDescriptor{FontName: "Times-Bold", FontFamily: "Times", Flags: 0x20, FontBBox: model.Rectangle{Llx: -168, Lly: -218, Urx: 1000, Ury: 935}, ItalicAngle: 0, Ascent: 683, Descent: -217, CapHeight: 676, XHeight: 461, StemV: 139, StemH: 44, AvgWidth: 516.0, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    []int{250, 333, 555, 500, 500, 1000, 833, 333, 333, 333, 500, 570, 250, 333, 250, 278, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500, 930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778, 611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500, 333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500, 556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444},
}

var timesBoldItalicData = afmData{
	desc:      model.FontDescriptor{FontName: "Times-BoldItalic", FontFamily: "Times", Flags: 0x60, FontBBox: model.Rectangle{Llx: -200, Lly: -218, Urx: 996, Ury: 921}, ItalicAngle: -15, Ascent: 683, Descent: -217, CapHeight: 669, XHeight: 462, StemV: 121, StemH: 42, AvgWidth: 500.5, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    []int{250, 389, 555, 500, 500, 833, 778, 333, 333, 333, 500, 570, 250, 333, 250, 278, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500, 832, 667, 667, 667, 722, 667, 667, 722, 778, 389, 500, 667, 611, 889, 722, 722, 611, 722, 667, 556, 611, 722, 667, 889, 667, 611, 611, 333, 278, 333, 570, 500, 333, 500, 500, 444, 500, 444, 333, 500, 556, 278, 278, 500, 278, 778, 556, 500, 500, 500, 389, 389, 278, 556, 444, 667, 500, 444, 389},
}

var timesItalicData = afmData{
	desc:      model.FontDescriptor{FontName: "Times-Italic", FontFamily: "Times", Flags: 0x60, FontBBox: model.Rectangle{Llx: -169, Lly: -217, Urx: 1010, Ury: 883}, ItalicAngle: -15.5, Ascent: 683, Descent: -217, CapHeight: 653, XHeight: 441, StemV: 76, StemH: 32, AvgWidth: 491.2, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    []int{250, 333, 420, 500, 500, 833, 778, 333, 333, 333, 500, 675, 250, 333, 250, 278, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 675, 675, 675, 500, 920, 611, 611, 667, 722, 611, 611, 722, 722, 333, 444, 667, 556, 833, 667, 722, 611, 722, 611, 500, 556, 722, 611, 833, 611, 556, 556, 389, 278, 389, 422, 500, 333, 500, 500, 444, 500, 444, 278, 500, 500, 278, 278, 444, 278, 722, 500, 500, 500, 500, 389, 389, 278, 500, 444, 667, 444, 444, 389},
}

var timesRomanData = afmData{
	desc:      model.FontDescriptor{FontName: "Times-Roman", FontFamily: "Times", Flags: 0x20, FontBBox: model.Rectangle{Llx: -168, Lly: -218, Urx: 1000, Ury: 898}, ItalicAngle: 0, Ascent: 683, Descent: -217, CapHeight: 662, XHeight: 450, StemV: 84, StemH: 28, AvgWidth: 494.6, MaxWidth: 1000},
	firstChar: 0x20,
	widths:    []int{250, 333, 408, 500, 500, 833, 778, 333, 333, 333, 500, 564, 250, 333, 250, 278, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444, 921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722, 556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500, 333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500, 500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444},
}

var zapfDingbatsData = afmData{
	desc:      model.FontDescriptor{FontName: "ZapfDingbats", FontFamily: "ZapfDingbats", Flags: 0x4, FontBBox: model.Rectangle{Llx: -1, Lly: -143, Urx: 981, Ury: 820}, XHeight: 480, StemV: 90, StemH: 28, AvgWidth: 746.0, MaxWidth: 1016},
	firstChar: 0x20,
	widths:    []int{278, 974, 961, 974, 980, 719, 789, 790, 791, 690, 960, 939, 549, 855, 911, 933, 911, 945, 974, 755, 846, 762, 761, 571, 677, 763, 760, 759, 754, 494, 552, 537, 577, 692, 786, 788, 788, 790, 793, 794, 816, 823, 789, 841, 823, 833, 816, 831, 923, 744, 723, 749, 790, 792, 695, 776, 768, 792, 759, 707, 708, 682, 701, 826, 815, 789, 789, 707, 687, 696, 689, 786, 787, 713, 791, 785, 791, 873, 761, 762, 762, 759, 759, 892, 892, 788, 784},
}

// Courier, Helvetica, Times and friends are the 14 standard fonts every PDF
// consumer must support without an embedded font program. Widths are
// resolved through the package's builtin glyph-name table, since the AFM
// data is published in StandardEncoding order.
var (
	Courier               = courierData.metrics(simpleencodings.Standard.Names)
	Courier_Bold          = courierBoldData.metrics(simpleencodings.Standard.Names)
	Courier_BoldOblique   = courierBoldObliqueData.metrics(simpleencodings.Standard.Names)
	Courier_Oblique       = courierObliqueData.metrics(simpleencodings.Standard.Names)
	Helvetica             = helveticaData.metrics(simpleencodings.Standard.Names)
	Helvetica_Bold        = helveticaBoldData.metrics(simpleencodings.Standard.Names)
	Helvetica_BoldOblique = helveticaBoldObliqueData.metrics(simpleencodings.Standard.Names)
	Helvetica_Oblique     = helveticaObliqueData.metrics(simpleencodings.Standard.Names)
	Symbol                = symbolData.metrics(simpleencodings.Symbol.Names)
	Times_Bold            = timesBoldData.metrics(simpleencodings.Standard.Names)
	Times_BoldItalic      = timesBoldItalicData.metrics(simpleencodings.Standard.Names)
	Times_Italic          = timesItalicData.metrics(simpleencodings.Standard.Names)
	Times_Roman           = timesRomanData.metrics(simpleencodings.Standard.Names)
	ZapfDingbats          = zapfDingbatsData.metrics(simpleencodings.ZapfDingbatsNames)
)

// Fonts maps a standard PostScript font name to its metrics.
var Fonts = map[string]Metrics{
	"Courier-Bold":          Courier_Bold,
	"Courier-BoldOblique":   Courier_BoldOblique,
	"Courier-Oblique":       Courier_Oblique,
	"Courier":               Courier,
	"Helvetica-Bold":        Helvetica_Bold,
	"Helvetica-BoldOblique": Helvetica_BoldOblique,
	"Helvetica-Oblique":     Helvetica_Oblique,
	"Helvetica":             Helvetica,
	"Symbol":                Symbol,
	"Times-Bold":            Times_Bold,
	"Times-BoldItalic":      Times_BoldItalic,
	"Times-Italic":          Times_Italic,
	"Times-Roman":           Times_Roman,
	"ZapfDingbats":          ZapfDingbats,
}
