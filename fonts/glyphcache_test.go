package fonts

import (
	"testing"

	"github.com/lucidpdf/core/model"
)

func squareOutline() GlyphOutline {
	return GlyphOutline{Segments: []OutlineSegment{
		{Op: OutlineMoveTo, Args: [3][2]model.Fl{{0.1, 0.1}}},
		{Op: OutlineLineTo, Args: [3][2]model.Fl{{0.6, 0.1}}},
		{Op: OutlineLineTo, Args: [3][2]model.Fl{{0.6, 0.6}}},
		{Op: OutlineLineTo, Args: [3][2]model.Fl{{0.1, 0.6}}},
	}}
}

func TestRasterizeOutline(t *testing.T) {
	// 20 pixels per em, y flipped as a device transform would be
	b := RasterizeOutline(squareOutline(), model.Matrix{20, 0, 0, -20, 0, 0})
	if b == nil {
		t.Fatal("no bitmap")
	}
	if b.Width < 10 || b.Height < 10 {
		t.Fatalf("bitmap %dx%d too small for a 10px square", b.Width, b.Height)
	}
	// the square spans x in [2,12], y in [-12,-2]: its center must be
	// fully covered
	cx, cy := 7-b.X, -7-b.Y
	if c := b.Cov[cy*b.Width+cx]; c < 250 {
		t.Fatalf("square center coverage %d, want opaque", c)
	}
}

func TestRasterizeOutlineEmpty(t *testing.T) {
	if b := RasterizeOutline(GlyphOutline{}, model.Identity); b != nil {
		t.Fatal("empty outline should yield nil")
	}
}

func TestGlyphCacheHitAndMiss(t *testing.T) {
	cache := NewGlyphCache(0)
	font := &model.FontDict{}
	key := GlyphKey{Font: font, GID: 5, AA: 4, A: QuantizeComponent(12), D: QuantizeComponent(12)}

	renders := 0
	render := func() *GlyphBitmap {
		renders++
		return RasterizeOutline(squareOutline(), model.Matrix{12, 0, 0, -12, 0, 0})
	}
	a := cache.Glyph(key, render)
	b := cache.Glyph(key, render)
	if renders != 1 {
		t.Fatalf("second lookup should hit the cache, rendered %d times", renders)
	}
	if a != b {
		t.Fatal("cache returned different bitmaps for one key")
	}

	other := key
	other.D = QuantizeComponent(13)
	cache.Glyph(other, render)
	if renders != 2 {
		t.Fatal("a different scale must miss")
	}
}

func TestGlyphCacheEvicts(t *testing.T) {
	cache := NewGlyphCache(2048)
	font := &model.FontDict{}
	render := func() *GlyphBitmap {
		return &GlyphBitmap{Width: 16, Height: 16, Cov: make([]uint8, 256)}
	}
	for gid := 0; gid < 100; gid++ {
		cache.Glyph(GlyphKey{Font: font, GID: uint16(gid)}, render)
	}
	if n := cache.Len(); n >= 100 {
		t.Fatalf("cache never evicted: %d entries", n)
	}
	if cache.used > cache.budget {
		t.Fatalf("cache over budget: %d > %d", cache.used, cache.budget)
	}
}

func TestTextDecoderASCIIFallback(t *testing.T) {
	dec := NewTextDecoder(&model.FontDict{Subtype: model.FontType1{
		BaseFont:  "Helvetica",
		FirstChar: 32,
	}})
	if got := dec.Decode('H'); len(got) != 1 || got[0] != 'H' {
		t.Fatalf("Decode('H') = %q", string(got))
	}
	if dec.CodeBytes() != 1 {
		t.Fatalf("simple font code width %d, want 1", dec.CodeBytes())
	}
}

func TestTextDecoderCIDWidth(t *testing.T) {
	dec := NewTextDecoder(&model.FontDict{Subtype: model.FontType0{BaseFont: "Any"}})
	if dec.CodeBytes() != 2 {
		t.Fatalf("composite font code width %d, want 2", dec.CodeBytes())
	}
}
