package draw

// The span painters below are the inner loops of the compositor: one
// destination row at a time, premultiplied "source over destination",
// with the source shaped by an 8-bit coverage row (from the scan
// converter or the glyph cache) and an optional constant alpha.

// mul255 multiplies two bytes treated as fractions of 255.
func mul255(a, b uint8) uint8 {
	return uint8((int(a)*int(b) + 127) / 255)
}

// RGBA is a device color, premultiplied.
type RGBA struct {
	R, G, B, A uint8
}

// premultiply builds the premultiplied device color for the non-premul
// components r, g, b at alpha a (all in [0, 1]).
func premultiply(r, g, b, a Fl) RGBA {
	clamp := func(v Fl) Fl {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a = clamp(a)
	return RGBA{
		R: uint8(clamp(r)*a*255 + 0.5),
		G: uint8(clamp(g)*a*255 + 0.5),
		B: uint8(clamp(b)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// paintSpanColor composites the solid color into dst[x0:x1] (an RGBA
// pixel row) through the coverage row: for each pixel the effective
// source alpha is color.A * cov.
//
// dst' = src + dst*(1 - src.alpha), per pixel and channel.
func paintSpanColor(dst []uint8, cov []uint8, x0, x1 int, col RGBA) {
	for x := x0; x < x1; x++ {
		ca := cov[x]
		if ca == 0 {
			continue
		}
		sr := mul255(col.R, ca)
		sg := mul255(col.G, ca)
		sb := mul255(col.B, ca)
		sa := mul255(col.A, ca)
		ssa := 255 - sa
		o := x * 4
		dst[o+0] = sr + mul255(dst[o+0], ssa)
		dst[o+1] = sg + mul255(dst[o+1], ssa)
		dst[o+2] = sb + mul255(dst[o+2], ssa)
		dst[o+3] = sa + mul255(dst[o+3], ssa)
	}
}

// paintSpanImage composites one row of a premultiplied RGBA source over
// dst, scaled by the constant alpha and an optional shape row (soft-mask
// coverage; nil means fully exposed).
func paintSpanImage(dst, src []uint8, x0, x1 int, alpha uint8, shape []uint8) {
	for x := x0; x < x1; x++ {
		o := x * 4
		sa := mul255(src[o+3], alpha)
		sr := mul255(src[o+0], alpha)
		sg := mul255(src[o+1], alpha)
		sb := mul255(src[o+2], alpha)
		if shape != nil {
			sh := shape[x]
			if sh == 0 {
				continue
			}
			sr, sg, sb, sa = mul255(sr, sh), mul255(sg, sh), mul255(sb, sh), mul255(sa, sh)
		}
		if sa == 0 {
			continue
		}
		ssa := 255 - sa
		dst[o+0] = sr + mul255(dst[o+0], ssa)
		dst[o+1] = sg + mul255(dst[o+1], ssa)
		dst[o+2] = sb + mul255(dst[o+2], ssa)
		dst[o+3] = sa + mul255(dst[o+3], ssa)
	}
}

// paintSpanColorMask is the glyph case: a constant color shaped by a
// mask row (color-into-mask of the specialized span routines).
func paintSpanColorMask(dst []uint8, mask []uint8, x0, x1 int, col RGBA) {
	paintSpanColor(dst, mask, x0, x1, col)
}

// paintSpanBlend composites src over dst with a non-Normal blend mode:
// both pixels are un-premultiplied, blended in RGB, interpolated by the
// backdrop alpha per the PDF compositing formula, then re-multiplied.
func paintSpanBlend(dst, src []uint8, x0, x1 int, alpha uint8, mode BlendMode) {
	for x := x0; x < x1; x++ {
		o := x * 4
		sa := mul255(src[o+3], alpha)
		if sa == 0 {
			continue
		}
		da := dst[o+3]

		sr, sg, sb := unmul(src[o+0], src[o+3]), unmul(src[o+1], src[o+3]), unmul(src[o+2], src[o+3])
		dr, dg, db := unmul(dst[o+0], da), unmul(dst[o+1], da), unmul(dst[o+2], da)

		br, bg, bb := blendPixel(mode, dr, dg, db, sr, sg, sb)

		// B(backdrop, source) weighted by the backdrop alpha:
		// cs' = (1 - da)*cs + da*B(cb, cs)
		cr := lerp255(sr, br, da)
		cg := lerp255(sg, bg, da)
		cb := lerp255(sb, bb, da)

		ra := sa + mul255(da, 255-sa)
		ssa := 255 - sa
		dst[o+0] = mul255(cr, sa) + mul255(dst[o+0], ssa)
		dst[o+1] = mul255(cg, sa) + mul255(dst[o+1], ssa)
		dst[o+2] = mul255(cb, sa) + mul255(dst[o+2], ssa)
		dst[o+3] = ra
	}
}

// unmul recovers the non-premultiplied value of a color sample.
func unmul(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := int(c) * 255 / int(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// lerp255 interpolates from a to b by t/255.
func lerp255(a, b, t uint8) uint8 {
	return uint8(int(a) + (int(b)-int(a))*int(t)/255)
}
