package model

import (
	"bytes"
	"crypto/rc4"
	"testing"
)

func TestOverlap(t *testing.T) {
	rc, _ := rc4.NewCipher([]byte("medlùl"))
	in := []byte("ldsqdlqsùdl")
	out := make([]byte, len(in))
	rc.XORKeyStream(out, in)

	rc, _ = rc4.NewCipher([]byte("medlùl"))
	rc.XORKeyStream(in, in)
	if !bytes.Equal(out, in) {
		t.Errorf("expected same output, got %v and %v", out, in)
	}
}
