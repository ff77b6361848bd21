package model

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/hhrutter/lzw"

	"github.com/lucidpdf/core/reader/parser/filters/ccitt"
)

// DecodeReader chains the decoders for every filter in `fs`, outermost
// first, returning a reader producing the fully decoded content.
func (fs Filters) DecodeReader(src io.Reader) (io.Reader, error) {
	r := src
	for _, f := range fs {
		var err error
		r, err = decodeOneFilter(f, r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Decode fully decodes the content of the stream, applying its filters
// in order.
func (c Stream) Decode() ([]byte, error) {
	r, err := c.Filter.DecodeReader(bytes.NewReader(c.Content))
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(r)
}

func decodeOneFilter(f FilterEntry, src io.Reader) (io.Reader, error) {
	switch f.Name {
	case Flate:
		r, err := zlib.NewReader(src)
		if err != nil {
			return nil, err
		}
		return predictorPostProcess(f.DecodeParms, r)
	case LZW:
		earlyChange := true
		if v, ok := f.DecodeParms["EarlyChange"]; ok && v == 0 {
			earlyChange = false
		}
		r := lzw.NewReader(src, earlyChange)
		return predictorPostProcess(f.DecodeParms, r)
	case ASCII85:
		return ascii85.NewDecoder(src), nil
	case ASCIIHex:
		return decodeASCIIHex(src), nil
	case RunLength:
		return decodeRunLength(src), nil
	case CCITTFax:
		rc, err := ccitt.NewReader(bufioByteReader(src), ccittParamsFrom(f.DecodeParms))
		if err != nil {
			return nil, err
		}
		return rc, nil
	case DCT, JPX, JBIG2:
		// these filters produce an image format, not a byte stream to
		// post-process further: the image decoder consumes the raw
		// encoded bytes directly.
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported filter: %s", f.Name)
	}
}

func ccittParamsFrom(params map[string]int) ccitt.CCITTParams {
	cols := 1728
	if col, ok := params["Columns"]; ok {
		cols = col
	}
	endOfBlock := true
	if v, has := params["EndOfBlock"]; has && v != 1 {
		endOfBlock = false
	}
	return ccitt.CCITTParams{
		Encoding:   int32(params["K"]),
		Columns:    int32(cols),
		Rows:       int32(params["Rows"]),
		EndOfBlock: endOfBlock,
		EndOfLine:  params["EndOfLine"] == 1,
		Black:      params["BlackIs1"] == 1,
		ByteAlign:  params["EncodedByteAlign"] == 1,
	}
}
