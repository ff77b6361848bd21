package model

// The PDF standard names appear millions of times in a large document's
// token stream; interning them lets every /Type, /Font or /Length key
// share one string value instead of allocating a fresh copy per token.
// The original keeps these in an open-addressing hash table filled at
// startup; a Go map over a fixed literal table serves the same purpose
// with the runtime's own hashing.

// standardNames covers the names of the PDF 32000-1 dictionaries this
// core reads: document structure, page objects, resources, fonts,
// colorspaces, images, filters, encryption, functions, shadings,
// annotations, optional content and marked content.
var standardNames = buildNameTable(
	// document and page tree
	"Type", "Subtype", "Catalog", "Pages", "Page", "Parent", "Kids",
	"Count", "MediaBox", "CropBox", "BleedBox", "TrimBox", "ArtBox",
	"Rotate", "Contents", "Resources", "Annots", "Names", "Dests",
	"Outlines", "First", "Last", "Next", "Prev", "Title", "Root",
	"Info", "Size", "Version", "Metadata", "StructTreeRoot", "Lang",
	"ID", "Index", "W", "Encrypt", "AcroForm", "Threads", "OpenAction",
	"AA", "PageLayout", "PageMode", "ViewerPreferences", "Limits",
	"StructParent", "StructParents", "Tabs",
	// streams and filters
	"Length", "Filter", "DecodeParms", "FlateDecode", "LZWDecode",
	"ASCIIHexDecode", "ASCII85Decode", "RunLengthDecode",
	"CCITTFaxDecode", "DCTDecode", "JPXDecode", "JBIG2Decode", "Crypt",
	"Predictor", "Columns", "Colors", "BitsPerComponent", "EarlyChange",
	"K", "Rows", "BlackIs1", "EncodedByteAlign", "EndOfLine",
	"EndOfBlock", "DamagedRowsBeforeError", "JBIG2Globals",
	// xref
	"XRef", "ObjStm", "N", "Prev", "XRefStm",
	// fonts
	"Font", "Type0", "Type1", "Type3", "TrueType", "MMType1",
	"CIDFontType0", "CIDFontType2", "BaseFont", "FirstChar", "LastChar",
	"Widths", "FontDescriptor", "FontName", "FontFamily", "Flags",
	"FontBBox", "ItalicAngle", "Ascent", "Descent", "CapHeight",
	"XHeight", "StemV", "StemH", "AvgWidth", "MaxWidth", "MissingWidth",
	"FontFile", "FontFile2", "FontFile3", "Length1", "Length2",
	"Length3", "CharSet", "Encoding", "BaseEncoding", "Differences",
	"ToUnicode", "CIDSystemInfo", "Registry", "Ordering", "Supplement",
	"DescendantFonts", "CIDToGIDMap", "DW", "W2", "DW2", "CharProcs",
	"FontMatrix", "Identity", "Identity-H", "Identity-V",
	"WinAnsiEncoding", "MacRomanEncoding", "MacExpertEncoding",
	"StandardEncoding",
	// graphics state and resources
	"ExtGState", "ColorSpace", "Pattern", "Shading", "XObject",
	"Properties", "ProcSet", "LW", "LC", "LJ", "ML", "D", "RI", "OP",
	"op", "OPM", "BM", "SMask", "CA", "ca", "AIS", "TK", "SA", "BG",
	"BG2", "UCR", "UCR2", "TR", "TR2", "HT", "FL", "SM", "Normal",
	"Multiply", "Screen", "Overlay", "Darken", "Lighten", "ColorDodge",
	"ColorBurn", "HardLight", "SoftLight", "Difference", "Exclusion",
	"Hue", "Saturation", "Color", "Luminosity", "Compatible", "None",
	"Alpha", "G", "BC", "S",
	// colorspaces
	"DeviceGray", "DeviceRGB", "DeviceCMYK", "CalGray", "CalRGB", "Lab",
	"ICCBased", "Indexed", "Separation", "DeviceN", "WhitePoint",
	"BlackPoint", "Gamma", "Matrix", "Range", "Alternate", "Lookup",
	"Hival", "All", "Colorants", "Process", "MixingHints",
	// images and forms
	"Image", "Form", "Width", "Height", "ImageMask", "Mask", "Decode",
	"Interpolate", "Intent", "Alternates", "SMaskInData", "BBox",
	"Group", "Transparency", "I", "CS", "PS", "Ref",
	// functions and shadings
	"FunctionType", "Domain", "Encode", "Bounds", "Functions", "C0",
	"C1", "Order", "BitsPerSample", "ShadingType", "Coords", "Function",
	"Extend", "Background", "AntiAlias", "PatternType", "PaintType",
	"TilingType", "XStep", "YStep", "BitsPerCoordinate", "BitsPerFlag",
	// encryption
	"Standard", "V", "R", "O", "U", "P", "OE", "UE", "Perms", "CF",
	"StmF", "StrF", "EFF", "CFM", "AuthEvent", "V2", "AESV2", "AESV3",
	"StdCF", "EncryptMetadata", "SubFilter", "Recipients",
	// annotations
	"Annot", "Rect", "AP", "AS", "F", "Border", "C", "NM", "M", "Link",
	"Text", "Widget", "Popup", "FreeText", "Line", "Square", "Circle",
	"Highlight", "Underline", "Squiggly", "StrikeOut", "Stamp", "Ink",
	"FileAttachment", "Sound", "Movie", "Screen", "PrinterMark",
	"Dest", "A", "H", "URI", "GoTo", "GoToR", "GoToE", "Launch",
	"Named", "JavaScript", "Hide", "SubmitForm", "ResetForm",
	"ImportData", "Rendition", "Fit", "FitH", "FitV", "FitR", "FitB",
	"FitBH", "FitBV", "XYZ",
	// optional and marked content
	"OC", "OCG", "OCMD", "OCGs", "OCProperties", "VE", "Usage", "View",
	"Print", "PrintState", "ViewState", "ExportState", "ON", "OFF",
	"AllOn", "AnyOn", "AllOff", "AnyOff", "MC", "MCID", "Marked",
)

func buildNameTable(names ...string) map[string]Name {
	out := make(map[string]Name, len(names))
	for _, n := range names {
		out[n] = Name(n)
	}
	return out
}

// InternName returns the shared Name for `s`: the canonical instance for
// a standard name, a fresh conversion otherwise.
func InternName(s string) Name {
	if n, ok := standardNames[s]; ok {
		return n
	}
	return Name(s)
}
