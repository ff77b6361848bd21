package filters

import (
	"bytes"
	"compress/lzw"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"io/ioutil"
	"math/rand"
	"testing"

	"github.com/lucidpdf/core/reader/parser/filters/ccitt"
)

// encodeForTest produces valid encoded bytes for a given filter name, used
// only to forge fixtures: the package itself is decode-only (§4.4), so
// round-trip tests lean on the standard library's own encoders instead of
// an external PDF-filter implementation.
func encodeForTest(t *testing.T, fi string, input []byte) []byte {
	switch fi {
	case ASCII85:
		var buf bytes.Buffer
		w := ascii85.NewEncoder(&buf)
		_, _ = w.Write(input)
		_ = w.Close()
		buf.WriteString("~>")
		return buf.Bytes()
	case ASCIIHex:
		var buf bytes.Buffer
		_, _ = hex.NewEncoder(&buf).Write(input)
		buf.WriteByte('>')
		return buf.Bytes()
	case RunLength:
		var buf bytes.Buffer
		// trivial RLE: one literal run covering the whole input
		for len(input) > 0 {
			n := len(input)
			if n > 128 {
				n = 128
			}
			buf.WriteByte(byte(n - 1))
			buf.Write(input[:n])
			input = input[n:]
		}
		buf.WriteByte(128) // EOD marker
		return buf.Bytes()
	case LZW:
		var buf bytes.Buffer
		w := lzw.NewWriter(&buf, lzw.MSB, 8)
		_, _ = w.Write(input)
		_ = w.Close()
		return buf.Bytes()
	case Flate:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, _ = w.Write(input)
		_ = w.Close()
		return buf.Bytes()
	default:
		t.Fatalf("unsupported filter for synthetic encoding: %s", fi)
		return nil
	}
}

var skippers = map[string]Skipper{
	ASCII85:   SkipperAscii85{},
	ASCIIHex:  SkipperAsciiHex{},
	RunLength: SkipperRunLength{},
	LZW:       SkipperLZW{EarlyChange: true},
	Flate:     SkipperFlate{},
	DCT:       SkipperDCT{},
	CCITTFax: SkipperCCITT{
		Params: ccitt.CCITTParams{
			Columns:    153,
			Rows:       55,
			EndOfBlock: true,
		},
	},
}

func forgeEncoded(t *testing.T, fi string) []byte {
	// special case for DCT...
	if fi == DCT {
		out, err := randJPEG()
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	// ... and CCITT
	if fi == CCITTFax {
		// default values of parameters
		b, err := ioutil.ReadFile("ccitt/testdata/bw-gopher.ccitt_group3")
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	input := make([]byte, 1000)
	_, _ = rand.Read(input)
	return encodeForTest(t, fi, input)
}

func TestDontPassEOD(t *testing.T) {
	for _, fi := range []string{
		ASCII85,
		ASCIIHex,
		RunLength,
		LZW,
		Flate,
		DCT,
		CCITTFax,
	} {
		filtered := forgeEncoded(t, fi)

		fil := skippers[fi]

		// add data passed EOD
		additionalBytes := []byte("')(à'(ààç454658")
		filteredPadded := append(filtered, additionalBytes...)

		read1, err := fil.Skip(bytes.NewReader(filteredPadded))
		if err != nil {
			t.Fatal(err)
		}

		// we want to use the number of byte read from the
		// filtered stream to detect EOD
		if read1 != len(filtered) {
			t.Errorf("invalid number of bytes read with filter %s: %d, expected %d", fi, read1, len(filtered))
		}
	}
}

func TestInvalid(t *testing.T) {
	for _, fi := range []string{
		ASCII85,
		ASCIIHex,
		RunLength,
		// LZW,
		Flate,
		DCT,
		CCITTFax,
	} {
		for range [200]int{} {
			// random input
			input := make([]byte, 80)
			_, _ = rand.Read(input)

			// random data may actually be valid since the eod ASCIIHex is easy to get
			if fi == ASCIIHex {
				input = bytes.ReplaceAll(input, []byte{eodHexDecode}, []byte{eodHexDecode + 1})
			} else if fi == RunLength {
				input = bytes.ReplaceAll(input, []byte{eodRunLength}, []byte{eodRunLength + 1})
			}

			fil := skippers[fi]
			_, err := fil.Skip(bytes.NewReader(input))
			if err == nil {
				t.Fatalf("filter %s: expected error on random data %v", fi, input)
			}
		}
	}
}
