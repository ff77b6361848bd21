package file

import (
	"os"
	"testing"
)

func TestXrefStream(t *testing.T) {
	src, err := os.Open("../test/corpus/UTF-32.pdf")
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := newContext(src, nil)
	if err != nil {
		t.Fatal(err)
	}

	offset, err := ctx.offsetLastXRefSection(0)
	if err != nil {
		t.Fatal(err)
	}
	if err = ctx.buildXRefTableStartingAt(offset); err != nil {
		t.Fatal(err)
	}

	if len(ctx.xrefTable) == 0 {
		t.Fatal("expected a non empty xref table")
	}

	for obj, entry := range ctx.xrefTable {
		if entry.free || entry.streamObjectNumber != 0 {
			continue
		}
		if entry.offset <= 0 {
			t.Fatalf("invalid offset for object %d", obj)
		}
	}
}
