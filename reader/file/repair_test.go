package file

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucidpdf/core/model"
)

// a minimal, valid-looking document whose startxref offset is garbage:
// opening must fall back to the repair scan.
const corruptedStartxref = `%PDF-1.4
1 0 obj
<</Type /Catalog /Pages 2 0 R>>
endobj
2 0 obj
<</Type /Pages /Kids [3 0 R] /Count 1>>
endobj
3 0 obj
<</Type /Page /Parent 2 0 R /MediaBox [0 0 100 100]>>
endobj
trailer
<</Size 4 /Root 1 0 R>>
startxref
987654321
%%EOF
`

func TestRepairCorruptedStartxref(t *testing.T) {
	doc, err := Read(bytes.NewReader([]byte(corruptedStartxref)), nil)
	if err != nil {
		t.Fatalf("repair failed: %s", err)
	}
	if doc.Root.ObjectNumber != 1 {
		t.Fatalf("repaired root is object %d, want 1", doc.Root.ObjectNumber)
	}
	if len(doc.XrefTable) != 3 {
		t.Fatalf("repaired xref has %d entries, want 3", len(doc.XrefTable))
	}
}

func TestRepairWithoutTrailer(t *testing.T) {
	// strip the trailer entirely: the catalog must be found by scanning
	content := corruptedStartxref
	i := strings.Index(content, "trailer")
	content = content[:i] + "startxref\n987654321\n%%EOF\n"

	doc, err := Read(bytes.NewReader([]byte(content)), nil)
	if err != nil {
		t.Fatalf("trailer synthesis failed: %s", err)
	}
	if doc.Root.ObjectNumber != 1 {
		t.Fatalf("synthesized root is object %d, want 1", doc.Root.ObjectNumber)
	}
}

func TestIndirectStreamLength(t *testing.T) {
	// the stream's /Length is an indirect reference resolving to 42:
	// exactly 42 payload bytes must be read
	payload := strings.Repeat("x", 42)
	doc := "%PDF-1.4\n" +
		"1 0 obj\n<</Type /Catalog /Pages 2 0 R>>\nendobj\n" +
		"2 0 obj\n<</Type /Pages /Kids [] /Count 0>>\nendobj\n" +
		"3 0 obj\n<</Length 4 0 R>>\nstream\n" + payload + "\nendstream\nendobj\n" +
		"4 0 obj\n42\nendobj\n" +
		"trailer\n<</Size 5 /Root 1 0 R>>\nstartxref\n987654321\n%%EOF\n"

	pdf, err := Read(bytes.NewReader([]byte(doc)), nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, ok := pdf.XrefTable[3].(model.ObjStream)
	if !ok {
		t.Fatalf("object 3 is %T, want a stream", pdf.XrefTable[3])
	}
	if len(stream.Content) != 42 {
		t.Fatalf("stream content is %d bytes, want 42", len(stream.Content))
	}
	if string(stream.Content) != payload {
		t.Fatal("stream content corrupted")
	}
}

func TestRepairRefusesGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("%PDF-1.4\nnothing here\nstartxref\n5\n%%EOF")), nil); err == nil {
		t.Fatal("garbage input must fail to open")
	}
}
