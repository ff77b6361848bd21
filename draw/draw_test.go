package draw

import (
	"testing"

	"github.com/lucidpdf/core/interp"
	"github.com/lucidpdf/core/model"
)

func contentPage(mediaBox model.Rectangle, content string) *model.PageObject {
	return &model.PageObject{
		MediaBox: &mediaBox,
		Contents: []model.ContentStream{
			{Stream: model.Stream{Content: []byte(content)}},
		},
	}
}

func TestRenderEmptyPage(t *testing.T) {
	page := contentPage(model.Rectangle{Llx: 0, Lly: 0, Urx: 100, Ury: 100}, "")
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if pix.Width != 100 || pix.Height != 100 {
		t.Fatalf("pixmap size %dx%d, want 100x100", pix.Width, pix.Height)
	}
	for i, s := range pix.Samples {
		if s != 0xFF {
			t.Fatalf("sample %d = %#x, want 0xFF everywhere on an empty page", i, s)
		}
	}
}

func TestRenderSolidFill(t *testing.T) {
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, "1 0 0 rg 0 0 100 100 re f")
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			px := pix.Pixel(x, y)
			if px[0] != 0xFF || px[1] != 0x00 || px[2] != 0x00 || px[3] != 0xFF {
				t.Fatalf("pixel (%d,%d) = %v, want opaque red", x, y, px)
			}
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	content := "0.2 0.4 0.9 rg 10.3 20.7 50.2 30.9 re f 0 0 0 RG 2 w 5 5 m 90 90 l S"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	a, err := RenderPage(page, RenderOptions{AA: 4})
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPage(page, RenderOptions{AA: 4})
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs between identical renders", i)
		}
	}
}

func TestRenderPremultipliedInvariant(t *testing.T) {
	content := `q 0.5 0 0 0.5 10 10 cm
/GSa gs 0 0 1 rg 0 0 100 100 re f Q
1 0 0 RG 3 w [4 2] 0 d 5 5 m 95 95 l S`
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	page.Resources = &model.ResourcesDict{
		ExtGState: map[model.Name]*model.GraphicState{
			"GSa": {LC: model.Undef, LJ: model.Undef, CA: model.ObjFloat(0.5), Ca: model.ObjFloat(0.3)},
		},
	}
	pix, err := RenderPage(page, RenderOptions{AA: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := pix.CheckPremultiplied(); err != nil {
		t.Fatal(err)
	}
}

func TestRenderClip(t *testing.T) {
	// clip to the left half, then fill the whole page black
	content := "0 0 50 100 re W n 0 0 0 rg 0 0 100 100 re f"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if px := pix.Pixel(10, 50); px[0] != 0 {
		t.Fatalf("clipped-in pixel should be black, got %v", px)
	}
	if px := pix.Pixel(80, 50); px[0] != 0xFF {
		t.Fatalf("clipped-out pixel should stay white, got %v", px)
	}
}

func TestRenderClipRestoredByQ(t *testing.T) {
	// the clip installed inside q..Q must not survive the Q
	content := "q 0 0 10 10 re W n Q 0 0 0 rg 0 0 100 100 re f"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if px := pix.Pixel(80, 20); px[0] != 0 {
		t.Fatalf("fill after Q should cover the full page, got %v", px)
	}
}

func TestRenderEvenOddFill(t *testing.T) {
	content := "0 0 0 rg 10 10 80 80 re 30 30 40 40 re f*"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if px := pix.Pixel(50, 50); px[0] != 0xFF {
		t.Fatalf("even-odd hole should stay white, got %v", px)
	}
	if px := pix.Pixel(15, 50); px[0] != 0 {
		t.Fatalf("even-odd ring should be black, got %v", px)
	}
}

func TestPageTransformFlipsY(t *testing.T) {
	m, w, h := PageTransform(model.Rectangle{Urx: 200, Ury: 100}, model.Unset, 72)
	if w != 200 || h != 100 {
		t.Fatalf("size %dx%d, want 200x100", w, h)
	}
	x, y := m.Apply(0, 0)
	if x != 0 || y != 100 {
		t.Fatalf("user origin maps to (%g,%g), want (0,100)", x, y)
	}
	x, y = m.Apply(0, 100)
	if x != 0 || y != 0 {
		t.Fatalf("top-left maps to (%g,%g), want (0,0)", x, y)
	}
}

func TestPageTransformDPI(t *testing.T) {
	_, w, h := PageTransform(model.Rectangle{Urx: 72, Ury: 144}, model.Unset, 144)
	if w != 144 || h != 288 {
		t.Fatalf("144 dpi size %dx%d, want 144x288", w, h)
	}
}

func TestPixmapImageRoundTrip(t *testing.T) {
	p := NewPixmap(0, 0, 2, 1, 4)
	copy(p.Samples, []uint8{128, 0, 0, 128, 255, 255, 255, 255})
	img := p.Image()
	r, g, b, a := img.At(0, 0).RGBA()
	if a>>8 != 128 || r>>8 != 128 || g>>8 != 0 || b != 0 {
		t.Fatalf("premultiplied copy-through failed: %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestPorterDuffOver(t *testing.T) {
	// half-transparent red over opaque white
	dst := []uint8{255, 255, 255, 255}
	cov := []uint8{255}
	paintSpanColor(dst, cov, 0, 1, premultiply(1, 0, 0, 0.5))
	if dst[3] != 255 {
		t.Fatalf("alpha must stay opaque, got %d", dst[3])
	}
	if dst[0] < 250 {
		t.Fatalf("red channel should stay saturated, got %d", dst[0])
	}
	// green = 255*(1-0.5) ≈ 127
	if dst[1] < 120 || dst[1] > 135 {
		t.Fatalf("green channel should halve, got %d", dst[1])
	}
}

func TestBlendModes(t *testing.T) {
	cases := []struct {
		mode    BlendMode
		b, s    uint8
		want    uint8
		slack   int
	}{
		{BlendMultiply, 255, 100, 100, 1},
		{BlendMultiply, 0, 100, 0, 0},
		{BlendScreen, 0, 100, 100, 1},
		{BlendScreen, 255, 100, 255, 0},
		{BlendDarken, 80, 100, 80, 0},
		{BlendLighten, 80, 100, 100, 0},
		{BlendDifference, 80, 100, 20, 0},
		{BlendNormal, 80, 100, 100, 0},
	}
	for _, c := range cases {
		got := blendSep(c.mode, c.b, c.s)
		diff := int(got) - int(c.want)
		if diff < 0 {
			diff = -diff
		}
		if diff > c.slack {
			t.Fatalf("mode %d: blend(%d,%d) = %d, want %d", c.mode, c.b, c.s, got, c.want)
		}
	}
}

func TestBlendNonSeparableLuminosity(t *testing.T) {
	// luminosity of pure white imposed on black gives white
	r, g, b := blendPixel(BlendLuminosity, 0, 0, 0, 255, 255, 255)
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("luminosity(black, white) = %d %d %d, want white", r, g, b)
	}
}

func TestPaintImageNearest(t *testing.T) {
	// a 2x1 source: left red, right blue, scaled to 10x10
	src := NewPixmap(0, 0, 2, 1, 4)
	copy(src.Samples, []uint8{255, 0, 0, 255, 0, 0, 255, 255})
	dst := NewPixmap(0, 0, 10, 10, 4)
	PaintImage(dst, nil, src, model.Matrix{10, 0, 0, 10, 0, 0}, 1, false, BlendNormal)
	if px := dst.Pixel(2, 5); px[0] != 255 || px[2] != 0 {
		t.Fatalf("left half should be red, got %v", px)
	}
	if px := dst.Pixel(8, 5); px[2] != 255 || px[0] != 0 {
		t.Fatalf("right half should be blue, got %v", px)
	}
	if err := dst.CheckPremultiplied(); err != nil {
		t.Fatal(err)
	}
}

func TestPaintImageClip(t *testing.T) {
	src := NewPixmap(0, 0, 1, 1, 4)
	copy(src.Samples, []uint8{0, 255, 0, 255})
	dst := NewPixmap(0, 0, 4, 4, 4)
	clip := make([]uint8, 16)
	clip[5] = 255 // only pixel (1,1) exposed
	PaintImage(dst, clip, src, model.Matrix{4, 0, 0, 4, 0, 0}, 1, false, BlendNormal)
	if dst.Alpha(1, 1) != 255 {
		t.Fatalf("exposed pixel not painted")
	}
	if dst.Alpha(2, 2) != 0 {
		t.Fatalf("clipped pixel was painted")
	}
}

func TestDecodeRawGrayImage(t *testing.T) {
	img := &model.XObjectImage{
		Stream:           model.Stream{Content: []uint8{0x00, 0xFF}},
		Width:            2,
		Height:           1,
		BitsPerComponent: 8,
		ColorSpace:       model.ColorSpaceGray,
	}
	pix, err := DecodeImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if pix.Pixel(0, 0)[0] != 0 || pix.Pixel(1, 0)[0] != 255 {
		t.Fatalf("gray decode wrong: %v", pix.Samples)
	}
	if pix.Alpha(0, 0) != 255 {
		t.Fatalf("opaque image lost alpha")
	}
}

func TestDecodeImageDecodeArrayInverts(t *testing.T) {
	img := &model.XObjectImage{
		Stream:           model.Stream{Content: []uint8{0x00}},
		Width:            1,
		Height:           1,
		BitsPerComponent: 8,
		ColorSpace:       model.ColorSpaceGray,
		Decode:           [][2]model.Fl{{1, 0}},
	}
	pix, err := DecodeImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if pix.Pixel(0, 0)[0] != 255 {
		t.Fatalf("inverted decode should map 0 to white, got %v", pix.Pixel(0, 0))
	}
}

func TestDecodeImageMask(t *testing.T) {
	img := &model.XObjectImage{
		Stream:    model.Stream{Content: []uint8{0b01010101}},
		Width:     8,
		Height:    1,
		ImageMask: true,
	}
	pix, err := DecodeImageMask(img)
	if err != nil {
		t.Fatal(err)
	}
	// default decode paints where the bit is 0
	for x := 0; x < 8; x++ {
		want := uint8(0)
		if x%2 == 0 {
			want = 255
		}
		if pix.Samples[x] != want {
			t.Fatalf("mask bit %d = %d, want %d", x, pix.Samples[x], want)
		}
	}
}

func TestListDeviceReplayMatchesDirect(t *testing.T) {
	content := "0 0 1 rg 20 20 60 60 re f 1 0 0 RG 4 w 10 10 m 90 90 l S"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)

	direct, err := RenderPage(page, RenderOptions{AA: 4})
	if err != nil {
		t.Fatal(err)
	}

	list := NewListDevice()
	ctm, w, h := PageTransform(model.Rectangle{Urx: 100, Ury: 100}, model.Unset, 72)
	if err := RunPage(page, list, ctm, RenderOptions{AA: 4}); err != nil {
		t.Fatal(err)
	}
	if list.Len() == 0 {
		t.Fatal("list device recorded nothing")
	}

	replayed := NewPixmap(0, 0, w, h, 4)
	replayed.ClearWhite()
	list.Replay(NewDrawDevice(replayed, 4, nil))

	for i := range direct.Samples {
		if direct.Samples[i] != replayed.Samples[i] {
			t.Fatalf("sample %d: direct %d != replayed %d", i, direct.Samples[i], replayed.Samples[i])
		}
	}
}

func TestBBoxDevice(t *testing.T) {
	content := "0 0 0 rg 20 30 40 50 re f"
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, content)
	dev := NewBBoxDevice()
	ctm, _, _ := PageTransform(model.Rectangle{Urx: 100, Ury: 100}, model.Unset, 72)
	if err := RunPage(page, dev, ctm, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	box, ok := dev.BBox()
	if !ok {
		t.Fatal("bbox device saw nothing")
	}
	// user rect (20,30)-(60,80) maps to device (20,20)-(60,70)
	if box.Llx != 20 || box.Urx != 60 {
		t.Fatalf("bbox x range [%g,%g], want [20,60]", box.Llx, box.Urx)
	}
	if box.Lly != 20 || box.Ury != 70 {
		t.Fatalf("bbox y range [%g,%g], want [20,70]", box.Lly, box.Ury)
	}
}

func TestTextDeviceExtractsText(t *testing.T) {
	widths := make([]int, 95) // codes 32..126
	for i := range widths {
		widths[i] = 500
	}
	widths['H'-32] = 722 // Helvetica H
	widths['i'-32] = 222 // Helvetica i
	font := &model.FontDict{Subtype: model.FontType1{
		BaseFont:  "Helvetica",
		FirstChar: 32,
		Widths:    widths,
	}}

	page := contentPage(model.Rectangle{Urx: 100, Ury: 100},
		"BT /F1 12 Tf 10 10 Td (Hi) Tj ET")
	page.Resources = &model.ResourcesDict{Font: map[model.Name]*model.FontDict{"F1": font}}

	dev := NewTextDevice()
	ctm, _, _ := PageTransform(model.Rectangle{Urx: 100, Ury: 100}, model.Unset, 72)
	if err := RunPage(page, dev, ctm, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(dev.Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(dev.Spans))
	}
	span := dev.Spans[0]
	if got := span.Text(); got != "Hi" {
		t.Fatalf("extracted %q, want \"Hi\"", got)
	}
	if span.Size != 12 {
		t.Fatalf("span size %g, want 12", span.Size)
	}
	// baseline starts at user (10,10): device (10, 90)
	h := span.Chars[0]
	if h.X != 10 || h.Y != 90 {
		t.Fatalf("H at (%g,%g), want (10,90)", h.X, h.Y)
	}
	// the i advances by H's width: 722/1000 * 12pt
	i := span.Chars[1]
	wantX := Fl(10) + 0.722*12
	if i.X < wantX-0.01 || i.X > wantX+0.01 {
		t.Fatalf("i at x=%g, want %g", i.X, wantX)
	}
}

func TestTextDeviceKerning(t *testing.T) {
	widths := make([]int, 95)
	for i := range widths {
		widths[i] = 500
	}
	font := &model.FontDict{Subtype: model.FontType1{BaseFont: "Helvetica", FirstChar: 32, Widths: widths}}
	// TJ with a -1000 adjustment: exactly one font size of negative kern
	page := contentPage(model.Rectangle{Urx: 200, Ury: 100},
		"BT /F1 10 Tf 0 50 Td [(A) -1000 (B)] TJ ET")
	page.Resources = &model.ResourcesDict{Font: map[model.Name]*model.FontDict{"F1": font}}

	dev := NewTextDevice()
	ctm, _, _ := PageTransform(model.Rectangle{Urx: 200, Ury: 100}, model.Unset, 72)
	if err := RunPage(page, dev, ctm, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	var chars []TextChar
	for _, s := range dev.Spans {
		chars = append(chars, s.Chars...)
	}
	if len(chars) != 2 {
		t.Fatalf("expected 2 chars, got %d", len(chars))
	}
	// A advances 500/1000*10 = 5; the TJ number then displaces by
	// -n/1000*size = -(-1000)/1000*10 = +10
	wantX := Fl(5 + 10)
	if chars[1].X < wantX-0.01 || chars[1].X > wantX+0.01 {
		t.Fatalf("B at x=%g, want %g", chars[1].X, wantX)
	}
}

func TestType3GlyphReplay(t *testing.T) {
	// one glyph, "square", filling most of its em box
	font := &model.FontDict{Subtype: model.FontType3{
		FontBBox:   model.Rectangle{Urx: 1000, Ury: 1000},
		FontMatrix: model.Matrix{0.001, 0, 0, 0.001, 0, 0},
		CharProcs: map[model.Name]model.ContentStream{
			"square": {Stream: model.Stream{Content: []byte("100 100 800 800 re f")}},
		},
		Encoding:  &model.SimpleEncodingDict{Differences: model.Differences{'a': "square"}},
		FirstChar: 'a',
		Widths:    []int{1000},
	}}
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100},
		"BT /F1 50 Tf 20 20 Td (a) Tj ET")
	page.Resources = &model.ResourcesDict{Font: map[model.Name]*model.FontDict{"F1": font}}

	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// the glyph covers user space [25,25]-[65,65]: device y in [35,75]
	if px := pix.Pixel(40, 50); px[0] != 0 || px[3] != 255 {
		t.Fatalf("Type 3 glyph interior not painted: %v", px)
	}
	if px := pix.Pixel(5, 95); px[0] != 0xFF {
		t.Fatalf("outside the glyph should stay white, got %v", px)
	}
}

func TestEvalExpFunction(t *testing.T) {
	fn := model.FunctionDict{
		Domain: []model.Range{{0, 1}},
		FunctionType: model.FunctionExpInterpolation{
			C0: []Fl{0, 0, 0},
			C1: []Fl{1, 0.5, 0},
			N:  1,
		},
	}
	out, err := evalFunction(fn, []Fl{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0] != 0.5 || out[1] != 0.25 || out[2] != 0 {
		t.Fatalf("linear interpolation wrong: %v", out)
	}
}

func TestEvalStitchingFunction(t *testing.T) {
	sub := func(c0, c1 Fl) model.FunctionDict {
		return model.FunctionDict{
			Domain:       []model.Range{{0, 1}},
			FunctionType: model.FunctionExpInterpolation{C0: []Fl{c0}, C1: []Fl{c1}, N: 1},
		}
	}
	fn := model.FunctionDict{
		Domain: []model.Range{{0, 1}},
		FunctionType: model.FunctionStitching{
			Functions: []model.FunctionDict{sub(0, 1), sub(1, 0)},
			Bounds:    []Fl{0.5},
			Encode:    [][2]Fl{{0, 1}, {0, 1}},
		},
	}
	// x=0.25 hits the first half at t=0.5 rising
	out, err := evalFunction(fn, []Fl{0.25})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] < 0.49 || out[0] > 0.51 {
		t.Fatalf("stitch(0.25) = %v, want ≈0.5", out)
	}
	// x=0.75 hits the second half at t=0.5 falling
	out, err = evalFunction(fn, []Fl{0.75})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] < 0.49 || out[0] > 0.51 {
		t.Fatalf("stitch(0.75) = %v, want ≈0.5", out)
	}
}

func TestAxialShadingFill(t *testing.T) {
	shading := &model.ShadingDict{
		ColorSpace: model.ColorSpaceGray,
		ShadingType: model.Axial{
			BaseGradient: model.BaseGradient{
				Function: []model.FunctionDict{{
					Domain:       []model.Range{{0, 1}},
					FunctionType: model.FunctionExpInterpolation{C0: []Fl{0}, C1: []Fl{1}, N: 1},
				}},
				Extend: [2]bool{true, true},
			},
			Coords: [4]Fl{0, 0, 100, 0},
		},
	}
	page := contentPage(model.Rectangle{Urx: 100, Ury: 100}, "/Sh0 sh")
	page.Resources = &model.ResourcesDict{Shading: map[model.Name]*model.ShadingDict{"Sh0": shading}}
	pix, err := RenderPage(page, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	left := pix.Pixel(2, 50)[0]
	right := pix.Pixel(97, 50)[0]
	if left > 30 {
		t.Fatalf("axial start should be near black, got %d", left)
	}
	if right < 225 {
		t.Fatalf("axial end should be near white, got %d", right)
	}
	mid := pix.Pixel(50, 50)[0]
	if mid < 100 || mid > 155 {
		t.Fatalf("axial midpoint should be mid-gray, got %d", mid)
	}
}

func TestColorConversionCMYK(t *testing.T) {
	r, g, b := spaceToRGB(model.ColorSpaceCMYK, []Fl{0, 0, 0, 0})
	if r != 1 || g != 1 || b != 1 {
		t.Fatalf("CMYK 0,0,0,0 should be white, got %g %g %g", r, g, b)
	}
	r, g, b = spaceToRGB(model.ColorSpaceCMYK, []Fl{0, 0, 0, 1})
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("CMYK K=1 should be black, got %g %g %g", r, g, b)
	}
}

func TestColorConversionIndexed(t *testing.T) {
	cs := model.ColorSpaceIndexed{
		Base:   model.ColorSpaceRGB,
		Hival:  1,
		Lookup: model.ColorTableBytes{255, 0, 0, 0, 0, 255},
	}
	r, g, b := spaceToRGB(cs, []Fl{0})
	if r != 1 || g != 0 || b != 0 {
		t.Fatalf("palette entry 0 should be red, got %g %g %g", r, g, b)
	}
	r, g, b = spaceToRGB(cs, []Fl{1})
	if b != 1 || r != 0 {
		t.Fatalf("palette entry 1 should be blue, got %g %g %g", r, g, b)
	}
}

func TestGroupComposite(t *testing.T) {
	pix := NewPixmap(0, 0, 4, 4, 4)
	pix.ClearWhite()
	dev := NewDrawDevice(pix, 0, nil)

	dev.BeginGroup(model.Rectangle{}, false, false, "Multiply", 1)
	var path interp.Path
	path.Rectangle(0, 0, 4, 4)
	dev.FillPath(&path, false, model.Identity, interp.Color{
		Space:      model.ColorSpaceGray,
		Components: []Fl{0.5},
	}, 1)
	dev.EndGroup()

	// multiply of gray over white leaves the gray value
	px := pix.Pixel(2, 2)
	if px[0] < 115 || px[0] > 140 {
		t.Fatalf("multiply group over white should leave mid gray, got %v", px)
	}
	if err := pix.CheckPremultiplied(); err != nil {
		t.Fatal(err)
	}
}

func TestMaskModulatesPainting(t *testing.T) {
	pix := NewPixmap(0, 0, 4, 4, 4)
	dev := NewDrawDevice(pix, 0, nil)

	// luminosity mask: white left half, black right half
	dev.BeginMask(model.Rectangle{}, true, interp.Color{Space: model.ColorSpaceGray, Components: []Fl{0}})
	var half interp.Path
	half.Rectangle(0, 0, 2, 4)
	dev.FillPath(&half, false, model.Identity, interp.Color{Space: model.ColorSpaceGray, Components: []Fl{1}}, 1)
	dev.EndMask()

	var full interp.Path
	full.Rectangle(0, 0, 4, 4)
	dev.FillPath(&full, false, model.Identity, interp.Color{Space: model.ColorSpaceGray, Components: []Fl{0}}, 1)
	dev.PopClip()

	if a := pix.Alpha(0, 1); a < 250 {
		t.Fatalf("masked-in pixel should be painted, alpha %d", a)
	}
	if a := pix.Alpha(3, 1); a > 5 {
		t.Fatalf("masked-out pixel should stay empty, alpha %d", a)
	}
}
