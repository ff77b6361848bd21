package draw

import "github.com/lucidpdf/core/model"

// The affine image painter resamples a source pixmap along the inverse
// of the placement transform, stepping destination pixels in 16.16
// fixed-point source coordinates, and composites each span with the
// Porter-Duff over operator.

type fix int32 // 16.16 fixed point

const fixOne = 1 << 16

func toFix(v Fl) fix { return fix(v * fixOne) }

// PaintImage composites src into dst under ctm (which maps the unit
// square to the image's placement in dst-local device space), through
// the optional clip coverage (len dst.Width*dst.Height; nil means
// unclipped), with constant alpha and blend mode.
//
// Sampling mode (4.11): nearest-neighbor when the transform is
// rectilinear and not upscaling; bilinear otherwise, unless interpolate
// is off and the magnification exceeds 2x. Axis-aligned transforms are
// grid-fitted to pixel boundaries first.
func PaintImage(dst *Pixmap, clip []uint8, src *Pixmap, ctm model.Matrix, alpha Fl, interpolate bool, mode BlendMode) {
	if src.Width == 0 || src.Height == 0 {
		return
	}
	ctm = gridFit(ctm)
	inv, ok := ctm.Inverse()
	if !ok {
		return
	}

	// destination bounding box of the transformed unit square
	x0, y0, x1, y1 := transformedBounds(ctm)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > dst.Width {
		x1 = dst.Width
	}
	if y1 > dst.Height {
		y1 = dst.Height
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	rectilinear := (nearZero(ctm[1]) && nearZero(ctm[2])) || (nearZero(ctm[0]) && nearZero(ctm[3]))
	sx, sy := scaleFactors(ctm)
	upscaling := sx > Fl(1.001) || sy > Fl(1.001)
	bilinear := !(rectilinear && !upscaling)
	if bilinear && !interpolate && (sx > 2 || sy > 2) {
		bilinear = false
	}

	// step in source-sample space: unit square coords scaled to samples
	w, h := Fl(src.Width), Fl(src.Height)
	du := toFix(inv[0] * w)
	dv := toFix(inv[1] * h)

	alpha8 := uint8(clampF(alpha, 0, 1)*255 + 0.5)
	srcRow := make([]uint8, dst.Width*4)
	for y := y0; y < y1; y++ {
		// source position at the center of the first destination pixel
		fx, fy := Fl(x0)+0.5, Fl(y)+0.5
		ux, uy := inv.Apply(fx, fy)
		// image space has y up; sample rows top-down
		u := toFix(ux * w)
		v := toFix((1 - uy) * h)
		// v steps opposite to uy
		dvRow := -dv

		for i := range srcRow {
			srcRow[i] = 0
		}
		for x := x0; x < x1; x++ {
			if insideUnit(u, v, src.Width, src.Height) {
				o := x * 4
				if bilinear {
					sampleBilinear(src, u, v, srcRow[o:o+4])
				} else {
					sampleNearest(src, u, v, srcRow[o:o+4])
				}
			}
			u += du
			v += dvRow
		}

		drow := dst.Row(y)
		var shape []uint8
		if clip != nil {
			shape = clip[y*dst.Width : (y+1)*dst.Width]
		}
		if mode == BlendNormal {
			paintSpanImage(drow, srcRow, x0, x1, alpha8, shape)
		} else {
			if shape != nil {
				applyShapeRow(srcRow, shape, x0, x1)
			}
			paintSpanBlend(drow, srcRow, x0, x1, alpha8, mode)
		}
	}
}

func applyShapeRow(src, shape []uint8, x0, x1 int) {
	for x := x0; x < x1; x++ {
		sh := shape[x]
		o := x * 4
		src[o+0] = mul255(src[o+0], sh)
		src[o+1] = mul255(src[o+1], sh)
		src[o+2] = mul255(src[o+2], sh)
		src[o+3] = mul255(src[o+3], sh)
	}
}

// gridFit snaps an axis-aligned transform to pixel boundaries, so
// repeated renders of the same placement are idempotent and edge pixels
// don't bleed.
func gridFit(m model.Matrix) model.Matrix {
	if nearZero(m[1]) && nearZero(m[2]) {
		x0, y0 := m.Apply(0, 0)
		x1, y1 := m.Apply(1, 1)
		m[4] = roundF(x0)
		m[5] = roundF(y0)
		m[0] = roundF(x1) - m[4]
		m[3] = roundF(y1) - m[5]
		m[1], m[2] = 0, 0
	}
	return m
}

func transformedBounds(m model.Matrix) (x0, y0, x1, y1 int) {
	minX, minY := Fl(1e30), Fl(1e30)
	maxX, maxY := Fl(-1e30), Fl(-1e30)
	for _, c := range [4][2]Fl{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		x, y := m.Apply(c[0], c[1])
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}
	return int(floorFl(minX)), int(floorFl(minY)), int(ceilFl(maxX)), int(ceilFl(maxY))
}

func scaleFactors(m model.Matrix) (Fl, Fl) {
	sx := sqrtF(m[0]*m[0] + m[1]*m[1])
	sy := sqrtF(m[2]*m[2] + m[3]*m[3])
	return sx, sy
}

func insideUnit(u, v fix, w, h int) bool {
	return u >= -fixOne/2 && v >= -fixOne/2 &&
		u < fix(w)*fixOne+fixOne/2 && v < fix(h)*fixOne+fixOne/2
}

func getSample(src *Pixmap, x, y, k int) int {
	if x < 0 || x >= src.Width || y < 0 || y >= src.Height {
		return 0
	}
	return int(src.Samples[(y*src.Width+x)*src.N+k])
}

func sampleNearest(src *Pixmap, u, v fix, out []uint8) {
	x := int(u >> 16)
	y := int(v >> 16)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= src.Width {
		x = src.Width - 1
	}
	if y >= src.Height {
		y = src.Height - 1
	}
	o := (y*src.Width + x) * src.N
	copy(out, src.Samples[o:o+src.N])
}

// sampleBilinear interpolates the four neighbors in 16.16, following
// the original LERP scheme.
func sampleBilinear(src *Pixmap, u, v fix, out []uint8) {
	u -= fixOne / 2
	v -= fixOne / 2
	ui, vi := int(u>>16), int(v>>16)
	ud, vd := int(u&0xFFFF), int(v&0xFFFF)
	lerp := func(a, b, t int) int { return a + ((b-a)*t)>>16 }
	for k := 0; k < src.N; k++ {
		a := getSample(src, ui, vi, k)
		b := getSample(src, ui+1, vi, k)
		c := getSample(src, ui, vi+1, k)
		d := getSample(src, ui+1, vi+1, k)
		out[k] = uint8(lerp(lerp(a, b, ud), lerp(c, d, ud), vd))
	}
}

func nearZero(v Fl) bool { return v > -1e-6 && v < 1e-6 }

func roundF(v Fl) Fl {
	if v >= 0 {
		return Fl(int(v + 0.5))
	}
	return -Fl(int(-v + 0.5))
}

func floorFl(v Fl) Fl {
	i := Fl(int(v))
	if v < i {
		return i - 1
	}
	return i
}

func ceilFl(v Fl) Fl {
	i := Fl(int(v))
	if v > i {
		return i + 1
	}
	return i
}
