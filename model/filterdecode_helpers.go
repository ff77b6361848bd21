package model

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

func bufioByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// decodeASCIIHex decodes an ASCIIHexDecode stream, ignoring whitespace
// and stopping at the EOD marker '>'.
func decodeASCIIHex(src io.Reader) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		br := bufio.NewReader(src)
		var hi byte
		haveHi := false
		var err error
		for {
			var b byte
			b, err = br.ReadByte()
			if err != nil {
				break
			}
			if b == '>' {
				break
			}
			v, ok := hexVal(b)
			if !ok {
				continue // whitespace or invalid, skip
			}
			if !haveHi {
				hi = v
				haveHi = true
				continue
			}
			pw.Write([]byte{hi<<4 | v})
			haveHi = false
		}
		if haveHi { // odd digit count: pad with 0
			pw.Write([]byte{hi << 4})
		}
		if err != nil && err != io.EOF {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()
	return pr
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeRunLength decodes a RunLengthDecode stream, stopping at the EOD
// byte (128).
func decodeRunLength(src io.Reader) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		br := bufio.NewReader(src)
		for {
			length, err := br.ReadByte()
			if err != nil || length == 128 {
				break
			}
			if length < 128 {
				n := int(length) + 1
				buf := make([]byte, n)
				if _, err := io.ReadFull(br, buf); err != nil {
					pw.CloseWithError(err)
					return
				}
				pw.Write(buf)
			} else {
				n := 257 - int(length)
				b, err := br.ReadByte()
				if err != nil {
					pw.CloseWithError(err)
					return
				}
				pw.Write(bytes.Repeat([]byte{b}, n))
			}
		}
		pw.Close()
	}()
	return pr
}

// predictorPostProcess reverses the PNG/TIFF predictor applied before
// compression, following the Predictor/Colors/BitsPerComponent/Columns
// decode parameters.
func predictorPostProcess(params map[string]int, r io.Reader) (io.Reader, error) {
	predictor := params["Predictor"]
	if predictor == 0 || predictor == 1 {
		return r, nil
	}

	colors := params["Colors"]
	if colors == 0 {
		colors = 1
	}
	bpc := params["BitsPerComponent"]
	if bpc == 0 {
		bpc = 8
	}
	columns := params["Columns"]
	if columns == 0 {
		columns = 1
	}

	bytesPerPixel := (bpc*colors + 7) / 8
	rowSize := (bpc*colors*columns + 7) / 8
	if predictor != 2 {
		rowSize++ // PNG prediction prefixes each row with a filter byte
	}

	cr := make([]byte, rowSize)
	pr := make([]byte, rowSize)
	var out bytes.Buffer

	for {
		_, err := io.ReadFull(r, cr)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, err
		}

		if predictor == 2 {
			if err := applyHorizontalDiff(cr, colors, bpc); err != nil {
				return nil, err
			}
			out.Write(cr)
		} else {
			if err := applyPNGRowFilter(cr, pr, bytesPerPixel); err != nil {
				return nil, err
			}
			out.Write(cr[1:])
		}

		pr, cr = cr, pr
	}

	return bytes.NewReader(out.Bytes()), nil
}

func applyHorizontalDiff(row []byte, colors, bpc int) error {
	if bpc != 8 {
		return fmt.Errorf("TIFF predictor only supports 8 bit components, got %d", bpc)
	}
	for i := colors; i < len(row); i++ {
		row[i] += row[i-colors]
	}
	return nil
}

func applyPNGRowFilter(cr, pr []byte, bytesPerPixel int) error {
	cdat := cr[1:]
	pdat := pr[1:]
	filterType := int(cr[0])

	switch filterType {
	case 0:
	case 1:
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += cdat[i-bytesPerPixel]
		}
	case 2:
		for i, p := range pdat {
			cdat[i] += p
		}
	case 3:
		for i := 0; i < bytesPerPixel; i++ {
			cdat[i] += pdat[i] / 2
		}
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += byte((int(cdat[i-bytesPerPixel]) + int(pdat[i])) / 2)
		}
	case 4:
		filterPaethRow(cdat, pdat, bytesPerPixel)
	default:
		return fmt.Errorf("unsupported PNG predictor row filter: %d", filterType)
	}
	return nil
}

func filterPaethRow(cdat, pdat []byte, bytesPerPixel int) {
	var a, b, c, pa, pb, pc int32
	for i := 0; i < bytesPerPixel; i++ {
		a, c = 0, 0
		for j := i; j < len(cdat); j += bytesPerPixel {
			b = int32(pdat[j])
			pa = b - c
			pb = a - c
			pc = absInt32(pa + pb)
			pa = absInt32(pa)
			pb = absInt32(pb)
			switch {
			case pa <= pb && pa <= pc:
			case pb <= pc:
				a = b
			default:
				a = c
			}
			a += int32(cdat[j])
			a &= 0xff
			cdat[j] = byte(a)
			c = b
		}
	}
}

func absInt32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
