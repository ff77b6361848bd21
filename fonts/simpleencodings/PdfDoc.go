package simpleencodings

// PdfDoc is the printable ASCII part of the PdfDocEncoding; the other codes
// are left unmapped.
// It should not be used in fonts, but is exposed here for the sake of
// completeness.
var PdfDoc = buildASCIIEncoding()
