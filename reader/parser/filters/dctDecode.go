package filters

import "io"

// SkipperDCT skips a DCTDecode (JPEG) inline image by scanning for the
// End Of Image marker (0xFF 0xD9).
type SkipperDCT struct{}

// Skip implements Skipper for a DCTDecode filter.
func (f SkipperDCT) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)
	var prev, cur [1]byte
	first := true
	for {
		_, err := r.Read(cur[:])
		if err != nil {
			return r.totalRead, unexpectedEOF(err)
		}
		if !first && prev[0] == 0xFF && cur[0] == 0xD9 {
			return r.totalRead, nil
		}
		first = false
		prev = cur
	}
}
