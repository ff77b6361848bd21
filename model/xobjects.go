package model

import "fmt"

// XObject is either a Form or an Image XObject.
// (declared in streams.go; implementations below)

func (*XObjectForm) isXObject() {}
func (*XObjectImage) isXObject() {}

// XObjectForm is a self-contained description of an arbitrary sequence
// of graphics objects, reusable as a named resource in any number of
// content streams.
type XObjectForm struct {
	ContentStream

	BBox      Rectangle
	Matrix    Matrix // optional, default to identity
	Resources ResourcesDict

	StructParent  ObjInt // optional, mutually exclusive with StructParents
	StructParents ObjInt
}

// clone returns a deep copy of the content stream; the Resources
// dictionary is not cloned: the copy shares its maps with the original.
func (f *XObjectForm) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	out.ContentStream = f.ContentStream.Clone()
	return &out
}

// pdfContent does not write the Resources dictionary: form XObjects are
// written without a /Resources entry.
func (f *XObjectForm) pdfContent(pdf pdfWriter, _ Reference) (string, []byte) {
	args := f.PDFCommonFields()
	b := newBuffer()
	b.fmt("<</Type/XObject/Subtype/Form %s /BBox %s", args, f.BBox.PDFstring())
	if f.Matrix != (Matrix{}) {
		b.fmt("/Matrix %s", f.Matrix)
	}
	if f.StructParent != Undef {
		b.fmt("/StructParent %d", f.StructParent)
	} else if f.StructParents != Undef {
		b.fmt("/StructParents %d", f.StructParents)
	}
	b.WriteString(">>")
	return b.String(), f.Content
}

// XObjectTransparencyGroup is a Form XObject further qualified as a
// transparency group, used notably as the backing group of a soft mask.
type XObjectTransparencyGroup struct {
	XObjectForm

	CS ColorSpace // optional
	I  bool       // isolated, optional, default to false
	K  bool       // knockout, optional, default to false
}

func (g *XObjectTransparencyGroup) clone(cache cloneCache) Referenceable {
	if g == nil {
		return g
	}
	out := *g
	out.ContentStream = g.ContentStream.Clone()
	if g.CS != nil {
		out.CS = cloneColorSpace(g.CS, cache)
	}
	return &out
}

func (g *XObjectTransparencyGroup) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	content, stream := g.XObjectForm.pdfContent(pdf, ref)
	// splice the /Group entry just before the closing >>
	group := "<</Type/Group/S/Transparency"
	if g.CS != nil {
		group += fmt.Sprintf("/CS %s", g.CS.colorSpacePDFString(pdf))
	}
	group += fmt.Sprintf("/I %v/K %v>>", g.I, g.K)
	content = content[:len(content)-2] + "/Group " + group + ">>"
	return content, stream
}

// AlternateImage is one of the /Alternates entries of an image XObject.
type AlternateImage struct {
	Image              *XObjectImage // required
	DefaultForPrinting bool
}

// SoftMaskDict is the value of an ExtGState /SMask entry.
type SoftMaskDict struct {
	S Name // /Alpha or /Luminosity; "None" disables the mask
	G *XObjectTransparencyGroup
}

func (s SoftMaskDict) pdfString(pdf pdfWriter) string {
	if s.S == "None" || s.G == nil {
		return "/None"
	}
	ref := pdf.addItem(s.G)
	return fmt.Sprintf("<</S %s /G %s>>", s.S, ref)
}

func (s SoftMaskDict) clone(cache cloneCache) SoftMaskDict {
	out := s
	if s.G != nil {
		out.G = cache.checkOrClone(s.G).(*XObjectTransparencyGroup)
	}
	return out
}

// MaskColor defines a range, for each color component, of color values
// to be masked out (not painted), used for color key masking.
type MaskColor [][2]int

// XObjectImage is an image XObject: a stream whose decoded content is
// sample data describing a rectangular array of pixels.
type XObjectImage struct {
	Stream

	Width, Height    int
	ColorSpace       ColorSpace // required, except for image masks
	BitsPerComponent uint8      // optional, required except for image masks
	Intent           Name       // optional

	ImageMask bool      // optional, default to false
	Mask      MaskColor // optional, color key masking ranges
	Decode    [][2]Fl   // optional

	Interpolate bool // optional, default to false

	Alternates []AlternateImage // optional

	SMask       *XObjectImage // optional, soft mask image
	SMaskInData uint8         // optional, only meaningful for JPX images

	StructParent ObjInt // optional
}

func (img *XObjectImage) clone(cache cloneCache) Referenceable {
	if img == nil {
		return img
	}
	out := *img
	out.Stream = img.Stream.Clone()
	if img.ColorSpace != nil {
		out.ColorSpace = cloneColorSpace(img.ColorSpace, cache)
	}
	out.Mask = append(MaskColor(nil), img.Mask...)
	out.Decode = append([][2]Fl(nil), img.Decode...)
	if len(img.Alternates) != 0 {
		out.Alternates = make([]AlternateImage, len(img.Alternates))
		for i, alt := range img.Alternates {
			out.Alternates[i] = alt
			if alt.Image != nil {
				out.Alternates[i].Image = cache.checkOrClone(alt.Image).(*XObjectImage)
			}
		}
	}
	if img.SMask != nil {
		out.SMask = cache.checkOrClone(img.SMask).(*XObjectImage)
	}
	return &out
}

func (img *XObjectImage) pdfContent(pdf pdfWriter, _ Reference) (string, []byte) {
	args := img.PDFCommonFields()
	b := newBuffer()
	b.fmt("<</Type/XObject/Subtype/Image %s /Width %d /Height %d", args, img.Width, img.Height)
	if img.ImageMask {
		b.fmt("/ImageMask true")
	} else {
		if img.ColorSpace != nil {
			b.fmt("/ColorSpace %s", img.ColorSpace.colorSpacePDFString(pdf))
		}
		b.fmt("/BitsPerComponent %d", img.BitsPerComponent)
	}
	if img.Intent != "" {
		b.fmt("/Intent %s", img.Intent)
	}
	if len(img.Decode) != 0 {
		b.fmt("/Decode %s", writePointsArray(img.Decode))
	}
	if img.Interpolate {
		b.fmt("/Interpolate true")
	}
	if img.SMask != nil {
		ref := pdf.addItem(img.SMask)
		b.fmt("/SMask %s", ref)
	}
	if img.StructParent != Undef {
		b.fmt("/StructParent %d", img.StructParent)
	}
	b.WriteString(">>")
	return b.String(), img.Content
}

// Image is the content of an inline image, introduced by the BI ... ID
// ... EI content stream operators.
type Image struct {
	Stream

	Width, Height    int
	BitsPerComponent uint8

	ImageMask bool
	Decode    [][2]Fl
}

// PDFFields returns the inline image dictionary entries, without the
// enclosing << >>, using the abbreviated names required inside BI ... ID.
// `withLength` controls whether a /L entry (the length of the raw data)
// is emitted, which is optional but convenient for readers.
func (im Image) PDFFields(withLength bool) string {
	b := newBuffer()
	b.fmt("/W %d /H %d", im.Width, im.Height)
	if im.ImageMask {
		b.fmt("/IM true")
	} else {
		b.fmt("/BPC %d", im.BitsPerComponent)
	}
	if filters := im.Filter.names(); len(filters) != 0 {
		names := make([]Name, len(filters))
		for i, f := range filters {
			names[i] = Name(f)
		}
		b.fmt("/F %s", writeNameArray(names))
	}
	if len(im.Decode) != 0 {
		b.fmt("/D %s", writePointsArray(im.Decode))
	}
	if withLength {
		b.fmt("/L %d", len(im.Content))
	}
	return b.String()
}
