package draw

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/model"
)

// DecodeImage decodes an image XObject into a premultiplied RGBA pixmap
// at its natural size, applying the filter chain, the /Decode array, the
// colorspace conversion, the soft mask and the color-key mask (4.6). The
// affine painter resamples to the target placement afterwards.
func DecodeImage(img *model.XObjectImage) (*Pixmap, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}

	var (
		comps []Fl // w*h*nc interleaved, already decoded to [0,1]
		nc    int
		err   error
	)
	switch codec := lastFilter(img.Stream); codec {
	case model.DCT:
		comps, nc, err = decodeJPEGSamples(img)
	case model.JPX, model.JBIG2:
		// known filters, intentionally not implemented (§4.4 stubs)
		return nil, fmt.Errorf("unsupported image codec %s", codec)
	default:
		comps, nc, err = decodeRawSamples(img)
	}
	if err != nil {
		return nil, err
	}

	out := NewPixmap(0, 0, img.Width, img.Height, 4)
	space := img.ColorSpace
	if lastFilter(img.Stream) == model.DCT && nc == 3 {
		// three-component JPEG samples arrive as device RGB
		space = model.ColorSpaceRGB
	}
	tuple := make([]Fl, nc)
	for i := 0; i < img.Width*img.Height; i++ {
		copy(tuple, comps[i*nc:(i+1)*nc])
		var r, g, b Fl
		if space != nil {
			r, g, b = spaceToRGB(space, tuple)
		} else {
			r, g, b = tuple[0], tuple[0], tuple[0]
		}
		a := Fl(1)
		if img.SMask == nil && img.Mask != nil && maskedOut(img.Mask, comps[i*nc:(i+1)*nc], img.BitsPerComponent) {
			a = 0
		}
		o := i * 4
		out.Samples[o+0] = uint8(clampF(r, 0, 1)*255*a + 0.5)
		out.Samples[o+1] = uint8(clampF(g, 0, 1)*255*a + 0.5)
		out.Samples[o+2] = uint8(clampF(b, 0, 1)*255*a + 0.5)
		out.Samples[o+3] = uint8(a*255 + 0.5)
	}

	if img.SMask != nil {
		applySoftMaskImage(out, img.SMask)
	}
	return out, nil
}

// DecodeImageMask decodes a stencil mask image into an alpha-only pixmap
// (N=1): sample 255 where the mask paints.
func DecodeImageMask(img *model.XObjectImage) (*Pixmap, error) {
	data, err := img.Stream.Decode()
	if err != nil {
		return nil, err
	}
	out := NewPixmap(0, 0, img.Width, img.Height, 1)
	// stencil masks are 1 bit per sample; Decode [0 1] (default) paints
	// where the sample is 0
	paintOn := uint8(0)
	if len(img.Decode) > 0 && img.Decode[0][0] == 1 {
		paintOn = 1
	}
	rowBytes := (img.Width + 7) / 8
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			o := y*rowBytes + x/8
			if o >= len(data) {
				break
			}
			bit := (data[o] >> (7 - uint(x%8))) & 1
			if bit == paintOn {
				out.Samples[y*img.Width+x] = 255
			}
		}
	}
	return out, nil
}

// lastFilter returns the innermost filter of the chain, which determines
// the sample format the decoded bytes arrive in.
func lastFilter(s model.Stream) model.Filter {
	if n := len(s.Filter); n > 0 {
		return s.Filter[n-1].Name
	}
	return ""
}

func decodeJPEGSamples(img *model.XObjectImage) ([]Fl, int, error) {
	raw, err := img.Stream.Decode() // outer filters unwrap; DCT passes through
	if err != nil {
		return nil, 0, err
	}
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, err
	}
	b := decoded.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != img.Width || h != img.Height {
		corelog.Interp.Printf("JPEG size %dx%d disagrees with image dictionary %dx%d", w, h, img.Width, img.Height)
		if w > img.Width {
			w = img.Width
		}
		if h > img.Height {
			h = img.Height
		}
	}
	// JPEG carries its own color model; emit RGB tuples and let the
	// pixel loop treat them as DeviceRGB regardless of the dictionary,
	// except for CMYK JPEGs which keep their four components
	if cm, ok := decoded.(*image.CMYK); ok && img.ColorSpace != nil && img.ColorSpace.NbColorComponents() == 4 {
		out := make([]Fl, img.Width*img.Height*4)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := cm.PixOffset(b.Min.X+x, b.Min.Y+y)
				d := (y*img.Width + x) * 4
				out[d+0] = Fl(cm.Pix[o+0]) / 255
				out[d+1] = Fl(cm.Pix[o+1]) / 255
				out[d+2] = Fl(cm.Pix[o+2]) / 255
				out[d+3] = Fl(cm.Pix[o+3]) / 255
			}
		}
		return out, 4, nil
	}
	nc := 3
	if img.ColorSpace != nil && img.ColorSpace.NbColorComponents() == 1 {
		nc = 1
	}
	out := make([]Fl, img.Width*img.Height*nc)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := decoded.At(b.Min.X+x, b.Min.Y+y).RGBA()
			d := (y*img.Width + x) * nc
			if nc == 1 {
				out[d] = Fl(r) / 0xFFFF
			} else {
				out[d+0] = Fl(r) / 0xFFFF
				out[d+1] = Fl(g) / 0xFFFF
				out[d+2] = Fl(bl) / 0xFFFF
			}
		}
	}
	if nc == 3 {
		// bypass the dictionary colorspace: samples are device RGB now
		return out, 3, nil
	}
	return out, nc, nil
}

// decodeRawSamples unpacks bit-packed samples after the filter chain and
// maps them through /Decode to component values.
func decodeRawSamples(img *model.XObjectImage) ([]Fl, int, error) {
	data, err := img.Stream.Decode()
	if err != nil {
		return nil, 0, err
	}
	nc := 1
	if img.ColorSpace != nil {
		if n := img.ColorSpace.NbColorComponents(); n > 0 {
			nc = n
		}
	}
	bpc := int(img.BitsPerComponent)
	if bpc == 0 {
		bpc = 8
	}
	maxVal := Fl(uint64(1)<<bpc - 1)

	// per-component decode ranges
	dmin := make([]Fl, nc)
	dmax := make([]Fl, nc)
	_, indexed := img.ColorSpace.(model.ColorSpaceIndexed)
	for k := 0; k < nc; k++ {
		if k < len(img.Decode) {
			dmin[k], dmax[k] = img.Decode[k][0], img.Decode[k][1]
		} else if indexed {
			dmin[k], dmax[k] = 0, maxVal
		} else {
			dmin[k], dmax[k] = 0, 1
		}
	}

	out := make([]Fl, img.Width*img.Height*nc)
	rowBits := img.Width * nc * bpc
	rowBytes := (rowBits + 7) / 8
	for y := 0; y < img.Height; y++ {
		bitPos := y * rowBytes * 8
		for x := 0; x < img.Width*nc; x++ {
			var raw uint64
			for n := 0; n < bpc; n++ {
				bp := bitPos + n
				if bp/8 >= len(data) {
					raw = raw << uint(bpc-n)
					break
				}
				raw = raw<<1 | uint64((data[bp/8]>>(7-uint(bp%8)))&1)
			}
			bitPos += bpc
			k := x % nc
			v := Fl(raw) / maxVal
			if indexed {
				// indexed samples stay integral palette indices
				out[y*img.Width*nc+x] = dmin[k] + Fl(raw)*(dmax[k]-dmin[k])/maxVal
			} else {
				out[y*img.Width*nc+x] = dmin[k] + v*(dmax[k]-dmin[k])
			}
		}
	}
	return out, nc, nil
}

// maskedOut reports whether the sample tuple falls inside every
// color-key masking range (then the pixel is not painted).
func maskedOut(mask model.MaskColor, tuple []Fl, bpc uint8) bool {
	if len(mask) == 0 {
		return false
	}
	maxVal := Fl(uint64(1)<<bpc - 1)
	if bpc == 0 {
		maxVal = 255
	}
	for k, rg := range mask {
		if k >= len(tuple) {
			break
		}
		// tuple values are decoded; mask ranges address raw samples
		raw := tuple[k] * maxVal
		if raw < Fl(rg[0]) || raw > Fl(rg[1]) {
			return false
		}
	}
	return true
}

// applySoftMaskImage multiplies the image's alpha (and, premultiplied,
// its color) by the soft-mask image's gray channel, resampling the mask
// to the image size when they differ. Nested soft masks on the mask
// itself are refused (one-level recursion cap).
func applySoftMaskImage(dst *Pixmap, mask *model.XObjectImage) {
	if mask.SMask != nil {
		corelog.Interp.Printf("nested image soft mask ignored")
	}
	inner := *mask
	inner.SMask = nil
	mp, err := DecodeImage(&inner)
	if err != nil {
		corelog.Interp.Printf("unreadable image soft mask: %s", err)
		return
	}
	for y := 0; y < dst.Height; y++ {
		my := y * mp.Height / dst.Height
		for x := 0; x < dst.Width; x++ {
			mx := x * mp.Width / dst.Width
			// the decoded mask is RGBA; its gray level is the mask value
			ma := mp.Samples[(my*mp.Width+mx)*4]
			o := (y*dst.Width + x) * 4
			dst.Samples[o+0] = mul255(dst.Samples[o+0], ma)
			dst.Samples[o+1] = mul255(dst.Samples[o+1], ma)
			dst.Samples[o+2] = mul255(dst.Samples[o+2], ma)
			dst.Samples[o+3] = mul255(dst.Samples[o+3], ma)
		}
	}
}
