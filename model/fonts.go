package model

import "fmt"

// FontDict is a PDF font dictionary.
type FontDict struct {
	Subtype Font
	// ToUnicode maps character codes to Unicode values, providing a way
	// to extract the meaning of the text shown with the font.
	ToUnicode *UnicodeCMap
}

func (f *FontDict) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	out.Subtype = f.Subtype.clone(cache)
	if f.ToUnicode != nil {
		cp := f.ToUnicode.clone(cache)
		out.ToUnicode = &cp
	}
	return &out
}

func (f *FontDict) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	content, stream := f.Subtype.fontPDFContent(pdf, ref)
	if f.ToUnicode != nil {
		cmapRef := pdf.CreateObject()
		cmapContent, cmapStream := f.ToUnicode.pdfContent()
		pdf.writeStreamObject(cmapContent, cmapStream, cmapRef)
		content = content[:len(content)-2] + fmt.Sprintf("/ToUnicode %s>>", cmapRef)
	}
	return content, stream
}

// Font is one of FontType1, FontTrueType, FontType3 or FontType0.
type Font interface {
	isFont()
	clone(cache cloneCache) Font
	fontPDFContent(pdf pdfWriter, ref Reference) (string, []byte)
}

// FontSimple is implemented by FontType1, FontTrueType and FontType3: the
// fonts whose glyphs are selected by a single byte character code.
type FontSimple interface {
	Font
	isFontSimple()
}

func (FontType1) isFont()        {}
func (FontTrueType) isFont()     {}
func (FontType3) isFont()        {}
func (FontType0) isFont()        {}
func (FontType1) isFontSimple()  {}
func (FontTrueType) isFontSimple() {}
func (FontType3) isFontSimple()  {}

// FontType1 is a Type1 font.
type FontType1 struct {
	BaseFont       Name
	FirstChar      byte
	Widths         []int // length (LastChar − FirstChar + 1)
	FontDescriptor FontDescriptor
	Encoding       SimpleEncoding // optional
}

func (f FontType1) clone(cloneCache) Font {
	out := f
	out.Widths = append([]int(nil), f.Widths...)
	out.FontDescriptor = f.FontDescriptor.clone()
	return out
}

func (f FontType1) fontPDFContent(pdf pdfWriter, ref Reference) (string, []byte) {
	return f.pdfString(pdf, ref, "Type1"), nil
}

func (f FontType1) pdfString(pdf pdfWriter, ref Reference, subtype Name) string {
	b := newBuffer()
	b.fmt("<</Type/Font/Subtype/%s/BaseFont %s/FirstChar %d",
		subtype, pdf.EncodeString(string(f.BaseFont), ByteString, ref), f.FirstChar)
	if len(f.Widths) != 0 {
		lastChar := int(f.FirstChar) + len(f.Widths) - 1
		b.fmt("/LastChar %d/Widths %s", lastChar, writeIntArray(f.Widths))
	}
	descRef := pdf.addObject(f.FontDescriptor.pdfString(pdf))
	b.fmt("/FontDescriptor %s", descRef)
	if f.Encoding != nil {
		b.fmt("/Encoding %s", f.Encoding.encodingPDFString(pdf))
	}
	b.fmt(">>")
	return b.String()
}

// FontTrueType is a TrueType font; its fields mean the same thing as FontType1's.
type FontTrueType FontType1

func (f FontTrueType) clone(cache cloneCache) Font {
	return FontTrueType(FontType1(f).clone(cache).(FontType1))
}

func (f FontTrueType) fontPDFContent(pdf pdfWriter, ref Reference) (string, []byte) {
	return FontType1(f).pdfString(pdf, ref, "TrueType"), nil
}

// FontType3 is a Type 3 font, whose glyphs are defined by content streams.
type FontType3 struct {
	FontBBox       Rectangle
	FontMatrix     Matrix
	CharProcs      map[Name]ContentStream
	Encoding       SimpleEncoding
	FirstChar      byte
	Widths         []int
	FontDescriptor *FontDescriptor // optional
	Resources      ResourcesDict
}

func (f FontType3) clone(cache cloneCache) Font {
	out := f
	out.Widths = append([]int(nil), f.Widths...)
	if len(f.CharProcs) != 0 {
		out.CharProcs = make(map[Name]ContentStream, len(f.CharProcs))
		for k, v := range f.CharProcs {
			out.CharProcs[k] = v.Clone()
		}
	}
	if f.FontDescriptor != nil {
		cp := f.FontDescriptor.clone()
		out.FontDescriptor = &cp
	}
	return out
}

func (f FontType3) fontPDFContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.fmt("<</Type/Font/Subtype/Type3/FontBBox %s/FontMatrix %s",
		f.FontBBox.PDFstring(), f.FontMatrix.String())
	procsDict := "<<"
	for name, cs := range f.CharProcs {
		csRef := pdf.addItem(&fontCharProc{cs})
		procsDict += fmt.Sprintf("/%s %s", name, csRef)
	}
	procsDict += ">>"
	b.fmt("/CharProcs %s", procsDict)
	if f.Encoding != nil {
		b.fmt("/Encoding %s", f.Encoding.encodingPDFString(pdf))
	}
	b.fmt("/FirstChar %d", f.FirstChar)
	if len(f.Widths) != 0 {
		lastChar := int(f.FirstChar) + len(f.Widths) - 1
		b.fmt("/LastChar %d/Widths %s", lastChar, writeIntArray(f.Widths))
	}
	if f.FontDescriptor != nil {
		descRef := pdf.addObject(f.FontDescriptor.pdfString(pdf))
		b.fmt("/FontDescriptor %s", descRef)
	}
	b.WriteString(">>")
	return b.String(), nil
}

// fontCharProc wraps a content stream so it can be written as an indirect
// object and cached like any other Referenceable.
type fontCharProc struct{ ContentStream }

func (*fontCharProc) IsReferenceable() {}
func (c *fontCharProc) clone(cloneCache) Referenceable {
	out := *c
	out.ContentStream = c.ContentStream.Clone()
	return &out
}

func (c *fontCharProc) pdfContent(pdfWriter, Reference) (string, []byte) {
	return fmt.Sprintf("<<%s>>", c.ContentStream.PDFCommonFields()), c.Content
}

// FontType0 is a composite font, whose glyphs are selected by a CID,
// obtained from a (possibly multi-byte) character code through Encoding.
type FontType0 struct {
	BaseFont        Name
	Encoding        CMapEncoding // required
	DescendantFonts CIDFontDictionary
	ToUnicode       *UnicodeCMap
}

func (f FontType0) clone(cache cloneCache) Font {
	out := f
	if f.Encoding != nil {
		out.Encoding = f.Encoding.cloneCMapEncoding(cache)
	}
	out.DescendantFonts = f.DescendantFonts.cloneValue()
	return out
}

func (f FontType0) fontPDFContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.fmt("<</Type/Font/Subtype/Type0/BaseFont %s",
		pdf.EncodeString(string(f.BaseFont), ByteString, ref))
	if f.Encoding != nil {
		b.fmt("/Encoding %s", f.Encoding.cMapEncodingPDFString(pdf))
	}
	descRef := pdf.addItem(&f.DescendantFonts)
	b.fmt("/DescendantFonts [%s]", descRef)
	b.WriteString(">>")
	return b.String(), nil
}

// FontFlag gives hints on the visual appearance of a font, see FontDescriptor.Flags.
type FontFlag uint32

const (
	FixedPitch  FontFlag = 1 << 0
	Serif       FontFlag = 1 << 1
	Symbolic    FontFlag = 1 << 2
	Script      FontFlag = 1 << 3
	Nonsymbolic FontFlag = 1 << 5
	Italic      FontFlag = 1 << 6
	AllCap      FontFlag = 1 << 16
	SmallCap    FontFlag = 1 << 17
	ForceBold   FontFlag = 1 << 18
)

// FontDescriptor specifies metrics and other attributes of a font.
type FontDescriptor struct {
	FontName     Name
	FontFamily   string
	Flags        FontFlag
	FontBBox     Rectangle
	ItalicAngle  Fl
	Ascent       Fl
	Descent      Fl
	Leading      Fl
	CapHeight    Fl
	XHeight      Fl
	StemV        Fl
	StemH        Fl
	AvgWidth     Fl
	MaxWidth     Fl
	MissingWidth int
	FontFile     *FontFile // optional
	CharSet      string    // optional, only meaningful for Type1 FontFile
}

func (f FontDescriptor) clone() FontDescriptor {
	out := f
	if f.FontFile != nil {
		cp := f.FontFile.Clone()
		out.FontFile = &cp
	}
	return out
}

func (f FontDescriptor) pdfString(pdf pdfWriter) string {
	b := newBuffer()
	b.fmt("<</Type/FontDescriptor/FontName %s/Flags %d/FontBBox %s/ItalicAngle %.3f",
		f.FontName, f.Flags, f.FontBBox.PDFstring(), f.ItalicAngle)
	b.fmt("/Ascent %.3f/Descent %.3f/CapHeight %.3f/StemV %.3f",
		f.Ascent, f.Descent, f.CapHeight, f.StemV)
	if f.FontFamily != "" {
		b.fmt("/FontFamily %s", pdf.EncodeString(f.FontFamily, ByteString, 0))
	}
	if f.Leading != 0 {
		b.fmt("/Leading %.3f", f.Leading)
	}
	if f.XHeight != 0 {
		b.fmt("/XHeight %.3f", f.XHeight)
	}
	if f.StemH != 0 {
		b.fmt("/StemH %.3f", f.StemH)
	}
	if f.AvgWidth != 0 {
		b.fmt("/AvgWidth %.3f", f.AvgWidth)
	}
	if f.MaxWidth != 0 {
		b.fmt("/MaxWidth %.3f", f.MaxWidth)
	}
	if f.MissingWidth != 0 {
		b.fmt("/MissingWidth %d", f.MissingWidth)
	}
	if f.FontFile != nil {
		ref := pdf.addItem(f.FontFile)
		b.fmt("/%s %s", f.FontFile.key(), ref)
	}
	if f.CharSet != "" {
		b.fmt("/CharSet %s", pdf.EncodeString(f.CharSet, ByteString, 0))
	}
	b.WriteString(">>")
	return b.String()
}

// FontFile is an embedded font program, referenced by a FontDescriptor
// through one of the FontFile, FontFile2 or FontFile3 entries, according to
// its Subtype.
type FontFile struct {
	Stream

	// Subtype is required for FontFile3 (Type1C, CIDFontType0C or OpenType);
	// empty for a bare FontFile/FontFile2 stream.
	Subtype Name

	Length1 int // required for FontFile (Type1) and FontFile2 (TrueType)
	Length2 int // required for FontFile (Type1)
	Length3 int // required for FontFile (Type1)
}

func (f *FontFile) Clone() FontFile {
	out := *f
	out.Stream = f.Stream.Clone()
	return out
}

func (*FontFile) IsReferenceable() {}

func (f *FontFile) clone(cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := f.Clone()
	return &out
}

// key returns the dictionary entry name to use in the FontDescriptor:
// FontFile3 when Subtype is set, FontFile2 when it is empty. A Type1
// program with an empty Subtype is also written under FontFile2; the
// FontFile entry is never produced.
func (f *FontFile) key() Name {
	switch f.Subtype {
	case "Type1C", "CIDFontType0C", "OpenType":
		return "FontFile3"
	default:
		if f.Subtype == "" {
			return "FontFile2" // TrueType : sfnt.Parse would also accept Type1
		}
		return "FontFile3"
	}
}

func (f *FontFile) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.fmt("<<%s/Length1 %d", f.Stream.PDFCommonFields(), f.Length1)
	if f.Subtype != "" {
		b.fmt("/Subtype/%s", f.Subtype)
	}
	if f.Length2 != 0 {
		b.fmt("/Length2 %d", f.Length2)
	}
	if f.Length3 != 0 {
		b.fmt("/Length3 %d", f.Length3)
	}
	b.WriteString(">>")
	return b.String(), f.Content
}

// Decode returns the decoded content of the embedded font program.
func (f *FontFile) Decode() ([]byte, error) {
	return f.Stream.Decode()
}

// SimpleEncoding is either a SimpleEncodingPredefined or a *SimpleEncodingDict.
type SimpleEncoding interface {
	encodingPDFString(pdf pdfWriter) string
}

func (e SimpleEncodingPredefined) encodingPDFString(pdfWriter) string { return "/" + string(e) }

// SimpleEncodingPredefined is one of the three named base encodings.
type SimpleEncodingPredefined Name

const (
	MacRomanEncoding  SimpleEncodingPredefined = "MacRomanEncoding"
	MacExpertEncoding SimpleEncodingPredefined = "MacExpertEncoding"
	WinAnsiEncoding   SimpleEncodingPredefined = "WinAnsiEncoding"
)

// NewSimpleEncodingPredefined returns the predefined encoding named `s`,
// or nil if `s` does not name one.
func NewSimpleEncodingPredefined(s string) SimpleEncoding {
	switch Name(s) {
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "MacExpertEncoding":
		return MacExpertEncoding
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	default:
		return nil
	}
}

// SimpleEncodingDict modifies a base encoding with a list of differences.
type SimpleEncodingDict struct {
	BaseEncoding SimpleEncodingPredefined // optional
	Differences  Differences              // optional
}

func (e *SimpleEncodingDict) clone(cloneCache) Referenceable {
	if e == nil {
		return e
	}
	out := *e
	out.Differences = e.Differences.clone()
	return &out
}

func (e *SimpleEncodingDict) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	return e.encodingPDFString(pdf), nil
}

func (e *SimpleEncodingDict) encodingPDFString(pdf pdfWriter) string {
	b := newBuffer()
	b.WriteString("<</Type/Encoding")
	if e.BaseEncoding != "" {
		b.fmt("/BaseEncoding/%s", string(e.BaseEncoding))
	}
	if len(e.Differences) != 0 {
		b.fmt("/Differences %s", e.Differences.PDFString())
	}
	b.WriteString(">>")
	return b.String()
}

// Differences describes the differences from the encoding specified by
// BaseEncoding. It is written in a PDF file in a condensed form:
//
//	[ code1 name1_1 name1_2 code2 name2_1 name2_2 name2_3 ... ]
type Differences map[byte]Name

func (d Differences) clone() Differences {
	if d == nil {
		return nil
	}
	out := make(Differences, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Apply returns a copy of `names` with the differences applied.
func (d Differences) Apply(names [256]string) [256]string {
	for code, name := range d {
		names[code] = string(name)
	}
	return names
}

// PDFString returns the compact array representation of the differences,
// grouping consecutive codes under a single code entry.
func (d Differences) PDFString() string {
	b := newBuffer()
	b.WriteString("[")
	// group consecutive codes to produce a compact array
	var codes []int
	for c := range d {
		codes = append(codes, int(c))
	}
	sortInts(codes)
	last := -2
	for _, c := range codes {
		if c != last+1 {
			b.fmt(" %d", c)
		}
		b.fmt("/%s", d[byte(c)])
		last = c
	}
	b.WriteString("]")
	return b.String()
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// CMapEncoding is either a CMapEncodingPredefined or a CMapEncodingEmbedded.
type CMapEncoding interface {
	cMapEncodingPDFString(pdf pdfWriter) string
	cloneCMapEncoding(cache cloneCache) CMapEncoding
}

func (e CMapEncodingPredefined) cMapEncodingPDFString(pdfWriter) string {
	return fmt.Sprintf("/%s", Name(e))
}

func (e CMapEncodingPredefined) cloneCMapEncoding(cloneCache) CMapEncoding { return e }

// CMapEncodingPredefined is the name of one of the predefined CMaps, such as
// Identity-H or Identity-V.
type CMapEncodingPredefined Name

// CMapEncodingEmbedded is an embedded CMap stream, mapping character codes
// to CIDs.
type CMapEncodingEmbedded struct {
	Stream

	CMapName      Name
	CIDSystemInfo CIDSystemInfo
	WMode         bool         // optional, default to false (horizontal)
	UseCMap       CMapEncoding // optional
}

func (e CMapEncodingEmbedded) cloneCMapEncoding(cache cloneCache) CMapEncoding {
	out := e
	out.Stream = e.Stream.Clone()
	if e.UseCMap != nil {
		out.UseCMap = e.UseCMap.cloneCMapEncoding(cache)
	}
	return out
}

func (e CMapEncodingEmbedded) cMapEncodingPDFString(pdf pdfWriter) string {
	ref := pdf.addItem(&cMapStream{e})
	return ref.String()
}

// cMapStream adapts a CMapEncodingEmbedded (a value type, since it may also
// be cloned inline) to the Referenceable interface.
type cMapStream struct{ CMapEncodingEmbedded }

func (*cMapStream) IsReferenceable() {}
func (c *cMapStream) clone(cache cloneCache) Referenceable {
	out := cMapStream{c.CMapEncodingEmbedded.cloneCMapEncoding(cache).(CMapEncodingEmbedded)}
	return &out
}

func (c *cMapStream) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.fmt("<</Type/CMap%s/CMapName/%s/CIDSystemInfo %s",
		c.Stream.PDFCommonFields(), c.CMapName, c.CIDSystemInfo.pdfString())
	if c.WMode {
		b.fmt("/WMode 1")
	}
	if c.UseCMap != nil {
		b.fmt("/UseCMap %s", c.UseCMap.cMapEncodingPDFString(pdf))
	}
	b.WriteString(">>")
	return b.String(), c.Content
}

// CIDSystemInfo uniquely identifies a character collection.
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

func (c CIDSystemInfo) pdfString() string {
	return fmt.Sprintf("<</Registry(%s)/Ordering(%s)/Supplement %d>>", c.Registry, c.Ordering, c.Supplement)
}

// ToUnicodeCMapName returns the name of the predefined ToUnicode CMap
// associated with this character collection, if any is known.
func (c CIDSystemInfo) ToUnicodeCMapName() Name {
	if c.Registry == "Adobe" {
		return Name(c.Registry + "-" + c.Ordering + "-UCS2")
	}
	return ""
}

// CMapUseTarget is the target of a UnicodeCMap's UseCMap entry: either
// another embedded UnicodeCMap or the name of a predefined one.
type CMapUseTarget interface {
	isCMapUseTarget()
}

func (UnicodeCMap) isCMapUseTarget()              {}
func (UnicodeCMapBasePredefined) isCMapUseTarget() {}

// UnicodeCMap is a (streamed) CMap used in a ToUnicode entry.
type UnicodeCMap struct {
	Stream

	UseCMap CMapUseTarget // nil, UnicodeCMap or UnicodeCMapBasePredefined
}

func (u UnicodeCMap) clone(cache cloneCache) UnicodeCMap {
	out := u
	out.Stream = u.Stream.Clone()
	if use, ok := u.UseCMap.(UnicodeCMap); ok {
		out.UseCMap = use.clone(cache)
	}
	return out
}

func (u UnicodeCMap) pdfContent() (string, []byte) {
	b := newBuffer()
	b.fmt("<</Type/CMap%s", u.Stream.PDFCommonFields())
	switch use := u.UseCMap.(type) {
	case UnicodeCMap:
		content, stream := use.pdfContent()
		b.WriteString(content) // not correctly referenced, rare in practice
		_ = stream
	case UnicodeCMapBasePredefined:
		b.fmt("/UseCMap/%s", Name(use))
	}
	b.WriteString(">>")
	return b.String(), u.Content
}

// Decode returns the decoded content of the CMap stream.
func (u UnicodeCMap) Decode() ([]byte, error) {
	return u.Stream.Decode()
}

// UnicodeCMapBasePredefined names one of the predefined Unicode CMaps
// usable in a UseCMap entry.
type UnicodeCMapBasePredefined Name

// CIDFontDictionary is the (sole) descendant font of a Type0 font.
type CIDFontDictionary struct {
	Subtype       Name // CIDFontType0 or CIDFontType2
	BaseFont      Name
	CIDSystemInfo CIDSystemInfo
	FontDescriptor FontDescriptor
	DW            int // optional, default to 1000
	DW2           [2]int // optional, default to [880 -1000]
	W             []CIDWidth         // optional
	W2            []CIDVerticalMetric // optional
	CIDToGIDMap   CIDToGIDMap         // optional, default to Identity
}

func (*CIDFontDictionary) IsReferenceable() {}

func (c CIDFontDictionary) cloneValue() CIDFontDictionary {
	out := c
	out.FontDescriptor = c.FontDescriptor.clone()
	out.W = append([]CIDWidth(nil), c.W...)
	out.W2 = append([]CIDVerticalMetric(nil), c.W2...)
	if c.CIDToGIDMap != nil {
		out.CIDToGIDMap = c.CIDToGIDMap.cloneCIDToGIDMap()
	}
	return out
}

func (c *CIDFontDictionary) clone(cloneCache) Referenceable {
	if c == nil {
		return c
	}
	out := c.cloneValue()
	return &out
}

func (c *CIDFontDictionary) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	subtype := c.Subtype
	if subtype == "" {
		subtype = "CIDFontType2"
	}
	b.fmt("<</Type/Font/Subtype/%s/BaseFont %s/CIDSystemInfo %s",
		subtype, pdf.EncodeString(string(c.BaseFont), ByteString, ref), c.CIDSystemInfo.pdfString())
	descRef := pdf.addObject(c.FontDescriptor.pdfString(pdf))
	b.fmt("/FontDescriptor %s", descRef)
	if c.DW != 0 {
		b.fmt("/DW %d", c.DW)
	}
	if c.DW2 != [2]int{} {
		b.fmt("/DW2 [%d %d]", c.DW2[0], c.DW2[1])
	}
	if len(c.W) != 0 {
		b.WriteString("/W [")
		for _, w := range c.W {
			b.WriteString(w.pdfString())
		}
		b.WriteString("]")
	}
	if len(c.W2) != 0 {
		b.WriteString("/W2 [")
		for _, w := range c.W2 {
			b.WriteString(w.pdfString())
		}
		b.WriteString("]")
	}
	if c.CIDToGIDMap != nil {
		b.fmt("/CIDToGIDMap %s", c.CIDToGIDMap.pdfString(pdf))
	}
	b.WriteString(">>")
	return b.String(), nil
}

// CIDWidth is either a CIDWidthRange or a CIDWidthArray.
type CIDWidth interface {
	pdfString() string
}

// CIDWidthRange sets the same width for every CID in [First, Last].
type CIDWidthRange struct {
	First, Last CID
	Width       int
}

func (c CIDWidthRange) pdfString() string {
	return fmt.Sprintf("%d %d %d ", c.First, c.Last, c.Width)
}

// CIDWidthArray gives consecutive widths, starting at CID Start.
type CIDWidthArray struct {
	Start CID
	W     []int
}

func (c CIDWidthArray) pdfString() string {
	return fmt.Sprintf("%d %s ", c.Start, writeIntArray(c.W))
}

// VerticalMetric gives the displacement (Vertical, in the y direction) and
// origin (Position) of a glyph used in vertical writing mode.
type VerticalMetric struct {
	Vertical int
	Position [2]int
}

func (v VerticalMetric) pdfString() string {
	return fmt.Sprintf("%d %d %d ", v.Vertical, v.Position[0], v.Position[1])
}

// CIDVerticalMetric is either a CIDVerticalMetricRange or a CIDVerticalMetricArray.
type CIDVerticalMetric interface {
	pdfString() string
}

type CIDVerticalMetricRange struct {
	First, Last CID
	VerticalMetric
}

func (c CIDVerticalMetricRange) pdfString() string {
	return fmt.Sprintf("%d %d %s", c.First, c.Last, c.VerticalMetric.pdfString())
}

type CIDVerticalMetricArray struct {
	Start     CID
	Verticals []VerticalMetric
}

func (c CIDVerticalMetricArray) pdfString() string {
	b := newBuffer()
	b.fmt("%d [", c.Start)
	for _, v := range c.Verticals {
		b.WriteString(v.pdfString())
	}
	b.WriteString("]")
	return b.String()
}

// CIDToGIDMap is either CIDToGIDMapIdentity or CIDToGIDMapStream.
type CIDToGIDMap interface {
	pdfString(pdf pdfWriter) string
	cloneCIDToGIDMap() CIDToGIDMap
}

type CIDToGIDMapIdentity struct{}

func (CIDToGIDMapIdentity) pdfString(pdfWriter) string        { return "/Identity" }
func (CIDToGIDMapIdentity) cloneCIDToGIDMap() CIDToGIDMap { return CIDToGIDMapIdentity{} }

type CIDToGIDMapStream struct {
	Stream
}

func (c CIDToGIDMapStream) cloneCIDToGIDMap() CIDToGIDMap {
	return CIDToGIDMapStream{Stream: c.Stream.Clone()}
}

func (c CIDToGIDMapStream) pdfString(pdf pdfWriter) string {
	return pdf.addItem(&cidToGIDMapStream{c}).String()
}

type cidToGIDMapStream struct{ CIDToGIDMapStream }

func (*cidToGIDMapStream) IsReferenceable() {}
func (c *cidToGIDMapStream) clone(cloneCache) Referenceable {
	out := cidToGIDMapStream{CIDToGIDMapStream{Stream: c.Stream.Clone()}}
	return &out
}

func (c *cidToGIDMapStream) pdfContent(pdfWriter, Reference) (string, []byte) {
	return fmt.Sprintf("<<%s>>", c.Stream.PDFCommonFields()), c.Content
}
