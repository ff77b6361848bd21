package draw

import "github.com/lucidpdf/core/model"

// BlendMode is a PDF separable or non-separable blend mode (11.3.5).
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendNames = map[model.Name]BlendMode{
	"Normal": BlendNormal, "Compatible": BlendNormal,
	"Multiply":   BlendMultiply,
	"Screen":     BlendScreen,
	"Overlay":    BlendOverlay,
	"Darken":     BlendDarken,
	"Lighten":    BlendLighten,
	"ColorDodge": BlendColorDodge,
	"ColorBurn":  BlendColorBurn,
	"HardLight":  BlendHardLight,
	"SoftLight":  BlendSoftLight,
	"Difference": BlendDifference,
	"Exclusion":  BlendExclusion,
	"Hue":        BlendHue,
	"Saturation": BlendSaturation,
	"Color":      BlendColor,
	"Luminosity": BlendLuminosity,
}

// BlendModeFromName maps a /BM name to its mode; unknown names fall back
// to Normal, per 11.3.5.1.
func BlendModeFromName(name model.Name) BlendMode {
	if m, ok := blendNames[name]; ok {
		return m
	}
	return BlendNormal
}

// blendPixel applies the blend function B(backdrop, source) channel-wise
// for separable modes, or over the whole color for the non-separable
// ones. All values are non-premultiplied bytes.
func blendPixel(mode BlendMode, dr, dg, db, sr, sg, sb uint8) (uint8, uint8, uint8) {
	switch mode {
	case BlendHue, BlendSaturation, BlendColor, BlendLuminosity:
		return blendNonSeparable(mode, dr, dg, db, sr, sg, sb)
	default:
		return blendSep(mode, dr, sr), blendSep(mode, dg, sg), blendSep(mode, db, sb)
	}
}

func blendSep(mode BlendMode, b, s uint8) uint8 {
	bi, si := int(b), int(s)
	switch mode {
	case BlendMultiply:
		return uint8(bi * si / 255)
	case BlendScreen:
		return uint8(bi + si - bi*si/255)
	case BlendOverlay:
		return blendSep(BlendHardLight, s, b)
	case BlendDarken:
		if b < s {
			return b
		}
		return s
	case BlendLighten:
		if b > s {
			return b
		}
		return s
	case BlendColorDodge:
		if si == 255 {
			return 255
		}
		v := bi * 255 / (255 - si)
		if v > 255 {
			v = 255
		}
		return uint8(v)
	case BlendColorBurn:
		if si == 0 {
			return 0
		}
		v := (255 - bi) * 255 / si
		if v > 255 {
			v = 255
		}
		return uint8(255 - v)
	case BlendHardLight:
		if si <= 127 {
			return uint8(bi * (2 * si) / 255)
		}
		t := 2*si - 255
		return uint8(bi + t - bi*t/255)
	case BlendSoftLight:
		bf, sf := Fl(bi)/255, Fl(si)/255
		var d Fl
		if bf <= 0.25 {
			d = ((16*bf-12)*bf + 4) * bf
		} else {
			d = sqrtF(bf)
		}
		var out Fl
		if sf <= 0.5 {
			out = bf - (1-2*sf)*bf*(1-bf)
		} else {
			out = bf + (2*sf-1)*(d-bf)
		}
		return clamp255(out * 255)
	case BlendDifference:
		if bi > si {
			return uint8(bi - si)
		}
		return uint8(si - bi)
	case BlendExclusion:
		return uint8(bi + si - 2*bi*si/255)
	default: // Normal
		return s
	}
}

// blendNonSeparable implements Hue, Saturation, Color and Luminosity via
// the Lum/SetLum/Sat/SetSat helpers of 11.3.5.3.
func blendNonSeparable(mode BlendMode, dr, dg, db, sr, sg, sb uint8) (uint8, uint8, uint8) {
	b := [3]Fl{Fl(dr) / 255, Fl(dg) / 255, Fl(db) / 255}
	s := [3]Fl{Fl(sr) / 255, Fl(sg) / 255, Fl(sb) / 255}
	var out [3]Fl
	switch mode {
	case BlendHue:
		out = setLum(setSat(s, sat(b)), lum(b))
	case BlendSaturation:
		out = setLum(setSat(b, sat(s)), lum(b))
	case BlendColor:
		out = setLum(s, lum(b))
	default: // BlendLuminosity
		out = setLum(b, lum(s))
	}
	return clamp255(out[0] * 255), clamp255(out[1] * 255), clamp255(out[2] * 255)
}

func lum(c [3]Fl) Fl {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func setLum(c [3]Fl, l Fl) [3]Fl {
	d := l - lum(c)
	return clipColor([3]Fl{c[0] + d, c[1] + d, c[2] + d})
}

func clipColor(c [3]Fl) [3]Fl {
	l := lum(c)
	mn := minF(c[0], minF(c[1], c[2]))
	mx := maxF(c[0], maxF(c[1], c[2]))
	if mn < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-mn)
		}
	}
	if mx > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(mx-l)
		}
	}
	return c
}

func sat(c [3]Fl) Fl {
	return maxF(c[0], maxF(c[1], c[2])) - minF(c[0], minF(c[1], c[2]))
}

func setSat(c [3]Fl, s Fl) [3]Fl {
	// identify min, mid, max indices
	mn, md, mx := 0, 1, 2
	if c[mn] > c[md] {
		mn, md = md, mn
	}
	if c[md] > c[mx] {
		md, mx = mx, md
	}
	if c[mn] > c[md] {
		mn, md = md, mn
	}
	var out [3]Fl
	if c[mx] > c[mn] {
		out[md] = (c[md] - c[mn]) * s / (c[mx] - c[mn])
		out[mx] = s
	}
	out[mn] = 0
	return out
}

func clamp255(v Fl) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func minF(a, b Fl) Fl {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b Fl) Fl {
	if a > b {
		return a
	}
	return b
}
