package fonts

import (
	"image"
	"sync"

	"golang.org/x/image/vector"

	"github.com/lucidpdf/core/model"
)

// GlyphBitmap is one rasterized glyph: an 8-bit coverage rectangle
// positioned relative to the glyph origin (device pixels, y down).
type GlyphBitmap struct {
	X, Y          int // offset of the bitmap's top-left from the origin
	Width, Height int
	Cov           []uint8
}

func (b *GlyphBitmap) size() int { return len(b.Cov) + 32 }

// GlyphKey identifies a cached rendering: the font, the glyph, the
// antialias level, a fingerprint of the stroke state for stroked
// rendering modes, and the glyph transform quantized to 16.16 so
// numerically-equal transforms share an entry regardless of how they
// were computed.
type GlyphKey struct {
	Font     *model.FontDict
	GID      uint16
	AA       uint8
	StrokeFP uint64
	A, B, C, D int32 // quantized transform (16.16), translation excluded
}

// QuantizeComponent quantizes one transform component for the cache key.
func QuantizeComponent(v model.Fl) int32 {
	return int32(v * 65536)
}

// defaultGlyphCacheBudget bounds the cache's sample memory.
const defaultGlyphCacheBudget = 4 << 20

type glyphEntry struct {
	bitmap  *GlyphBitmap
	lastUse uint64
}

// GlyphCache memoizes rasterized glyphs under an LRU budget. All methods
// are safe for concurrent use.
type GlyphCache struct {
	mu      sync.Mutex
	entries map[GlyphKey]*glyphEntry
	clock   uint64
	used    int
	budget  int

	sources map[*model.FontDict]*GlyphSource
}

// NewGlyphCache returns a cache bounded by `budget` bytes of bitmap
// samples; 0 means the default budget.
func NewGlyphCache(budget int) *GlyphCache {
	if budget <= 0 {
		budget = defaultGlyphCacheBudget
	}
	return &GlyphCache{
		entries: make(map[GlyphKey]*glyphEntry),
		budget:  budget,
		sources: make(map[*model.FontDict]*GlyphSource),
	}
}

// Source returns (and memoizes) the outline source for a font; the
// second return is false when the font has no readable outlines.
func (c *GlyphCache) Source(font *model.FontDict) (*GlyphSource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.sources[font]; ok {
		return src, src != nil
	}
	src, err := NewGlyphSource(font)
	if err != nil {
		src = nil
	}
	c.sources[font] = src
	return src, src != nil
}

// Glyph returns the cached bitmap for key, rasterizing it on a miss via
// `render`. render may return nil (empty glyph); the nil is cached too.
func (c *GlyphCache) Glyph(key GlyphKey, render func() *GlyphBitmap) *GlyphBitmap {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.clock++
		e.lastUse = c.clock
		c.mu.Unlock()
		return e.bitmap
	}
	c.mu.Unlock()

	// rasterize outside the cache lock; a racing duplicate render is
	// wasted work, not a correctness problem
	bitmap := render()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock++
	if e, ok := c.entries[key]; ok {
		e.lastUse = c.clock
		return e.bitmap
	}
	c.entries[key] = &glyphEntry{bitmap: bitmap, lastUse: c.clock}
	if bitmap != nil {
		c.used += bitmap.size()
	}
	c.evict()
	return bitmap
}

// evict drops least-recently-used entries until under budget. Caller
// holds the lock.
func (c *GlyphCache) evict() {
	for c.used > c.budget && len(c.entries) > 1 {
		var (
			oldest    GlyphKey
			oldestUse = ^uint64(0)
		)
		for k, e := range c.entries {
			if e.lastUse < oldestUse {
				oldest, oldestUse = k, e.lastUse
			}
		}
		if e := c.entries[oldest]; e.bitmap != nil {
			c.used -= e.bitmap.size()
		}
		delete(c.entries, oldest)
	}
}

// Len reports the number of cached glyphs, for tests.
func (c *GlyphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RasterizeOutline renders an outline under the glyph transform `trm`
// (mapping em units to device pixels, y down) into a tight coverage
// bitmap positioned at the transform's translation. Returns nil for an
// empty outline.
func RasterizeOutline(outline GlyphOutline, trm model.Matrix) *GlyphBitmap {
	if len(outline.Segments) == 0 {
		return nil
	}
	// transform and measure
	type pt = [2]model.Fl
	apply := func(p pt) (model.Fl, model.Fl) {
		return trm.Apply(p[0], p[1])
	}
	minX, minY := model.Fl(1e30), model.Fl(1e30)
	maxX, maxY := model.Fl(-1e30), model.Fl(-1e30)
	visit := func(x, y model.Fl) {
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, s := range outline.Segments {
		n := 1
		switch s.Op {
		case OutlineQuadTo:
			n = 2
		case OutlineCubeTo:
			n = 3
		}
		for k := 0; k < n; k++ {
			x, y := apply(s.Args[k])
			visit(x, y)
		}
	}
	if minX > maxX || minY > maxY {
		return nil
	}
	x0 := int(floorF(minX)) - 1
	y0 := int(floorF(minY)) - 1
	w := int(ceilF(maxX)) - x0 + 1
	h := int(ceilF(maxY)) - y0 + 1
	if w <= 0 || h <= 0 || w > 4096 || h > 4096 {
		return nil
	}

	ras := vector.NewRasterizer(w, h)
	pen := func(p pt) (float32, float32) {
		x, y := apply(p)
		return float32(x - model.Fl(x0)), float32(y - model.Fl(y0))
	}
	for _, s := range outline.Segments {
		switch s.Op {
		case OutlineMoveTo:
			ras.ClosePath()
			x, y := pen(s.Args[0])
			ras.MoveTo(x, y)
		case OutlineLineTo:
			x, y := pen(s.Args[0])
			ras.LineTo(x, y)
		case OutlineQuadTo:
			cx, cy := pen(s.Args[0])
			x, y := pen(s.Args[1])
			ras.QuadTo(cx, cy, x, y)
		case OutlineCubeTo:
			c1x, c1y := pen(s.Args[0])
			c2x, c2y := pen(s.Args[1])
			x, y := pen(s.Args[2])
			ras.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	ras.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &GlyphBitmap{X: x0, Y: y0, Width: w, Height: h, Cov: dst.Pix}
}

func floorF(v model.Fl) model.Fl {
	i := model.Fl(int(v))
	if v < i {
		return i - 1
	}
	return i
}

func ceilF(v model.Fl) model.Fl {
	i := model.Fl(int(v))
	if v > i {
		return i + 1
	}
	return i
}
