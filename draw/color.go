package draw

import (
	"math"

	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
)

// DeviceRGB converts a color in any recognized colorspace family to
// device RGB components in [0, 1] (4.5). Unknown or unusable spaces
// degrade to black with a warning, per the soft-failure policy.
func DeviceRGB(c interp.Color) (r, g, b Fl) {
	return spaceToRGB(c.Space, c.Components)
}

func spaceToRGB(space model.ColorSpace, comps []Fl) (Fl, Fl, Fl) {
	switch cs := space.(type) {
	case model.ColorSpaceName:
		switch cs {
		case model.ColorSpaceGray:
			v := comp(comps, 0)
			return v, v, v
		case model.ColorSpaceRGB:
			return comp(comps, 0), comp(comps, 1), comp(comps, 2)
		case model.ColorSpaceCMYK:
			return cmykToRGB(comp(comps, 0), comp(comps, 1), comp(comps, 2), comp(comps, 3))
		default:
			// Pattern: the pattern's own content provides the color
			return 0, 0, 0
		}
	case model.ColorSpaceCalGray:
		v := comp(comps, 0)
		if cs.Gamma != 0 && cs.Gamma != 1 {
			v = powF(v, cs.Gamma)
		}
		return v, v, v
	case model.ColorSpaceCalRGB:
		// approximated as sRGB after per-channel gamma; the calibration
		// matrix rarely moves colors visibly on screen output
		r, g, b := comp(comps, 0), comp(comps, 1), comp(comps, 2)
		if cs.Gamma != ([3]Fl{}) {
			r, g, b = powF(r, cs.Gamma[0]), powF(g, cs.Gamma[1]), powF(b, cs.Gamma[2])
		}
		return r, g, b
	case model.ColorSpaceLab:
		return labToRGB(cs, comp(comps, 0), comp(comps, 1), comp(comps, 2))
	case *model.ColorSpaceICCBased:
		// the profile itself is not interpreted: fall back to the
		// alternate, or to the device space matching /N (4.5)
		if cs.Alternate != nil {
			return spaceToRGB(cs.Alternate, comps)
		}
		switch cs.N {
		case 1:
			return spaceToRGB(model.ColorSpaceGray, comps)
		case 4:
			return spaceToRGB(model.ColorSpaceCMYK, comps)
		default:
			return spaceToRGB(model.ColorSpaceRGB, comps)
		}
	case model.ColorSpaceIndexed:
		return indexedToRGB(cs, comp(comps, 0))
	case model.ColorSpaceSeparation:
		if out, err := evalFunction(cs.TintTransform, comps); err == nil {
			return spaceToRGB(cs.AlternateSpace, out)
		}
		// All or a named colorant without a usable tint transform: paint
		// the tint as gray ink coverage
		v := 1 - comp(comps, 0)
		return v, v, v
	case model.ColorSpaceDeviceN:
		if out, err := evalFunction(cs.TintTransform, comps); err == nil {
			return spaceToRGB(cs.AlternateSpace, out)
		}
		v := 1 - comp(comps, 0)
		return v, v, v
	case model.ColorSpaceUncoloredPattern:
		return spaceToRGB(cs.UnderlyingColorSpace, comps)
	default:
		corelog.Interp.Printf("unsupported colorspace %T, painting black", space)
		return 0, 0, 0
	}
}

// indexedToRGB maps a palette index through the lookup table then the
// base space, per the Indexed decode bypass of 4.5.
func indexedToRGB(cs model.ColorSpaceIndexed, index Fl) (Fl, Fl, Fl) {
	table := paletteBytes(cs)
	base := cs.Base
	if base == nil {
		base = model.ColorSpaceRGB
	}
	n := base.NbColorComponents()
	if n <= 0 {
		n = 3
	}
	i := int(index)
	if i < 0 {
		i = 0
	}
	if i > int(cs.Hival) {
		i = int(cs.Hival)
	}
	comps := make([]Fl, n)
	for k := 0; k < n; k++ {
		if o := i*n + k; o < len(table) {
			comps[k] = Fl(table[o]) / 255
		}
	}
	return spaceToRGB(base, comps)
}

func paletteBytes(cs model.ColorSpaceIndexed) []byte {
	switch t := cs.Lookup.(type) {
	case model.ColorTableBytes:
		return []byte(t)
	case *model.ColorTableStream:
		if t == nil {
			return nil
		}
		content, err := (*model.Stream)(t).Decode()
		if err != nil {
			corelog.Interp.Printf("unreadable indexed palette: %s", err)
			return nil
		}
		return content
	default:
		return nil
	}
}

func cmykToRGB(c, m, y, k Fl) (Fl, Fl, Fl) {
	return (1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)
}

// labToRGB converts a CIE L*a*b* color through XYZ to sRGB, using the
// space's whitepoint.
func labToRGB(cs model.ColorSpaceLab, l, a, b Fl) (Fl, Fl, Fl) {
	// clamp a/b to the declared range
	rng := cs.Range
	if rng == ([4]Fl{}) {
		rng = [4]Fl{-100, 100, -100, 100}
	}
	a = clampF(a, rng[0], rng[1])
	b = clampF(b, rng[2], rng[3])

	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	finv := func(t Fl) Fl {
		if t > 6.0/29 {
			return t * t * t
		}
		return 3 * (6.0 / 29) * (6.0 / 29) * (t - 4.0/29)
	}
	wp := cs.WhitePoint
	if wp == ([3]Fl{}) {
		wp = [3]Fl{0.9505, 1, 1.089}
	}
	x := wp[0] * finv(fx)
	y := wp[1] * finv(fy)
	z := wp[2] * finv(fz)

	// XYZ (D65) to linear sRGB
	lr := 3.2406*x - 1.5372*y - 0.4986*z
	lg := -0.9689*x + 1.8758*y + 0.0415*z
	lb := 0.0557*x - 0.2040*y + 1.0570*z
	gamma := func(v Fl) Fl {
		if v <= 0 {
			return 0
		}
		if v <= 0.0031308 {
			v = 12.92 * v
		} else {
			v = 1.055*powF(v, 1/2.4) - 0.055
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return gamma(lr), gamma(lg), gamma(lb)
}

func comp(comps []Fl, i int) Fl {
	if i < len(comps) {
		return comps[i]
	}
	return 0
}

func clampF(v, lo, hi Fl) Fl {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func powF(v, e Fl) Fl {
	if v <= 0 {
		return 0
	}
	return Fl(math.Pow(float64(v), float64(e)))
}

func sqrtF(v Fl) Fl {
	if v <= 0 {
		return 0
	}
	return Fl(math.Sqrt(float64(v)))
}
