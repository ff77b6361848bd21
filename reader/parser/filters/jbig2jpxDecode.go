package filters

import (
	"io"

	"github.com/lucidpdf/core/coreerr"
)

// The JBIG2 and JPX codecs are recognized but intentionally not
// implemented: streams carrying them are passed through undecoded so a
// caller with an external codec can still reach the raw bytes, and any
// attempt to locate their end-of-data marker in an inline image reports
// the closed `unsupported` error kind instead of silently misparsing.

// SkipperJBIG2 rejects JBIG2-encoded inline image data.
type SkipperJBIG2 struct {
	// Globals identifies the shared segment stream, when the image
	// referenced one; kept so a diagnostic can name it.
	Globals string
}

// Skip implements Skipper for a JBIG2Decode filter.
func (f SkipperJBIG2) Skip(io.Reader) (int, error) {
	return 0, coreerr.New(coreerr.Unsupported, "JBIG2Decode inline image data")
}

// SkipperJPX rejects JPEG2000-encoded inline image data.
type SkipperJPX struct{}

// Skip implements Skipper for a JPXDecode filter.
func (f SkipperJPX) Skip(io.Reader) (int, error) {
	return 0, coreerr.New(coreerr.Unsupported, "JPXDecode inline image data")
}
