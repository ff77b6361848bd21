package model

import (
	"fmt"
	"testing"
)

func TestStream(t *testing.T) {
	s := ContentStream{Stream: Stream{
		StreamDict: StreamDict{Filter: Filters{
			{Name: JPX}, {Name: ASCII85}, {Name: ASCIIHex}, {Name: JBIG2}, {Name: Flate},
		}},
		Content: make([]byte, 245),
	}}
	st1 := s.PDFCommonFields()

	s.Filter[0].DecodeParms = map[string]int{"P1": 1, "EndOfLine": 0, "EncodedByteAlign": 1}
	s.Filter[2].DecodeParms = map[string]int{"P1": 1, "EndOfLine": 0, "EncodedByteAlign": 1}

	st2 := s.PDFCommonFields()
	fmt.Println(st1)
	fmt.Println(st2)
}
