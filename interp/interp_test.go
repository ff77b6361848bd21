package interp

import (
	"bytes"
	"testing"

	cs "github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader/parser"
)

// recorder is a Processor that keeps a flat trace of the painting
// callbacks, for comparing two interpretations of the same content.
type recorder struct {
	calls []string
	paths []Path
}

var _ Processor = (*recorder)(nil)

func (r *recorder) Operator(cs.Operation, *GraphicsState) {}

func (r *recorder) Paint(_ *GraphicsState, path *Path, mode PaintMode, evenOdd, clip, _ bool) {
	r.calls = append(r.calls, "paint")
	r.paths = append(r.paths, *path.Clone())
	_ = mode
	_ = evenOdd
	_ = clip
}

func (r *recorder) ShowText(_ *GraphicsState, _ model.Matrix, text []byte, _ model.Fl) {
	r.calls = append(r.calls, "text:"+string(text))
}

func (r *recorder) Do(_ *GraphicsState, name model.Name, _ model.XObject, _ *model.ResourcesDict) {
	r.calls = append(r.calls, "do:"+string(name))
}

func (r *recorder) FormDone(*GraphicsState, model.XObject) {}

func (r *recorder) InlineImage(*GraphicsState, cs.OpBeginImage, []byte) {
	r.calls = append(r.calls, "inline")
}

func (r *recorder) Shading(_ *GraphicsState, name model.Name, _ *model.ShadingDict) {
	r.calls = append(r.calls, "sh:"+string(name))
}

func (r *recorder) MarkedContent(_ *GraphicsState, tag model.Name, _ cs.PropertyList, _, _ bool) {
	r.calls = append(r.calls, "bmc:"+string(tag))
}

func (r *recorder) EndMarkedContent(*GraphicsState) {
	r.calls = append(r.calls, "emc")
}

func mustParse(t *testing.T, content string) []cs.Operation {
	t.Helper()
	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatalf("parsing %q: %s", content, err)
	}
	return ops
}

func runContent(t *testing.T, content string, res *model.ResourcesDict, opts Options) (*recorder, *Stack) {
	t.Helper()
	rec := &recorder{}
	stack := NewStack(NewGraphicsState(model.Identity))
	if err := Run(mustParse(t, content), res, stack, rec, opts); err != nil {
		t.Fatalf("running %q: %s", content, err)
	}
	return rec, stack
}

func TestStackDepthRestored(t *testing.T) {
	_, stack := runContent(t, "q q 2 0 0 2 0 0 cm q Q Q Q", nil, Options{})
	if d := stack.Depth(); d != 1 {
		t.Fatalf("stack depth %d at content end, want 1", d)
	}
	if ctm := stack.Current().CTM; ctm != model.Identity {
		t.Fatalf("CTM %v not restored to identity", ctm)
	}
}

func TestExtraRestoreIgnored(t *testing.T) {
	_, stack := runContent(t, "Q Q Q q Q Q", nil, Options{})
	if d := stack.Depth(); d != 1 {
		t.Fatalf("extra Q must be ignored, depth %d", d)
	}
}

func TestConcatInverseRestoresCTM(t *testing.T) {
	m := model.Matrix{2, 0.5, -0.5, 2, 10, 20}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("matrix not invertible")
	}
	content := "2 .5 -.5 2 10 20 cm"
	ops := mustParse(t, content)
	ops = append(ops, cs.OpConcat{Matrix: inv})

	stack := NewStack(NewGraphicsState(model.Identity))
	if err := Run(ops, nil, stack, &recorder{}, Options{}); err != nil {
		t.Fatal(err)
	}
	got := stack.Current().CTM
	var frobenius model.Fl
	for i := range got {
		d := got[i] - model.Identity[i]
		frobenius += d * d
	}
	if frobenius > 1e-5 {
		t.Fatalf("cm then inverse cm drifted: %v", got)
	}
}

func TestBufferProcessorRoundTrip(t *testing.T) {
	content := `q 1 0 0 rg 10 10 50 50 re f
BT (Hello) Tj ET
0 0 1 RG 0 0 m 100 100 l S Q`

	direct := &recorder{}
	stack := NewStack(NewGraphicsState(model.Identity))
	ops := mustParse(t, content)
	if err := Run(ops, nil, stack, direct, Options{}); err != nil {
		t.Fatal(err)
	}

	// run through the buffer processor, then run its output
	buffer := NewBufferProcessor()
	stack2 := NewStack(NewGraphicsState(model.Identity))
	if err := Run(ops, nil, stack2, buffer, Options{}); err != nil {
		t.Fatal(err)
	}
	replayed := &recorder{}
	stack3 := NewStack(NewGraphicsState(model.Identity))
	if err := Run(buffer.Operations(), nil, stack3, replayed, Options{}); err != nil {
		t.Fatal(err)
	}

	if len(direct.calls) != len(replayed.calls) {
		t.Fatalf("call counts differ: direct %v vs replayed %v", direct.calls, replayed.calls)
	}
	for i := range direct.calls {
		if direct.calls[i] != replayed.calls[i] {
			t.Fatalf("call %d differs: %q vs %q", i, direct.calls[i], replayed.calls[i])
		}
	}
	for i := range direct.paths {
		if len(direct.paths[i].Segments) != len(replayed.paths[i].Segments) {
			t.Fatalf("path %d segment counts differ", i)
		}
	}
}

func TestFilterProcessorDropsText(t *testing.T) {
	content := "1 0 0 rg 0 0 10 10 re f BT (secret) Tj ET"
	inner := &recorder{}
	filter := NewFilterProcessor(inner)
	filter.DropText = true
	stack := NewStack(NewGraphicsState(model.Identity))
	if err := Run(mustParse(t, content), nil, stack, filter, Options{}); err != nil {
		t.Fatal(err)
	}
	for _, c := range inner.calls {
		if c == "text:secret" {
			t.Fatal("filtered text still reached the inner processor")
		}
	}
	found := false
	for _, c := range inner.calls {
		if c == "paint" {
			found = true
		}
	}
	if !found {
		t.Fatal("non-text content was dropped too")
	}
}

func TestHiddenOCGSuppressesPainting(t *testing.T) {
	ocg := model.PropertyList{
		"Type": model.ObjName("OCG"),
		"Name": model.ObjName("Layer1"),
	}
	res := &model.ResourcesDict{
		Properties: map[model.Name]model.PropertyList{"MC0": ocg},
	}
	content := "/OC /MC0 BDC 1 0 0 rg 0 0 10 10 re f EMC 0 0 20 20 re f"

	// visible by default
	rec, _ := runContent(t, content, res, Options{})
	paints := 0
	for _, c := range rec.calls {
		if c == "paint" {
			paints++
		}
	}
	if paints != 2 {
		t.Fatalf("visible layer: %d paints, want 2", paints)
	}

	// switched off in the base configuration
	rec, _ = runContent(t, content, res, Options{
		OCG: OCGConfig{BaseOff: map[model.Name]bool{"Layer1": true}},
	})
	paints = 0
	for _, c := range rec.calls {
		if c == "paint" {
			paints++
		}
	}
	if paints != 1 {
		t.Fatalf("hidden layer: %d paints, want 1 (outside the BDC)", paints)
	}
}

func TestPrintStateOverride(t *testing.T) {
	// /Usage /Print /PrintState /OFF hides the group under the Print
	// event only
	ocg := model.PropertyList{
		"Type": model.ObjName("OCG"),
		"Name": model.ObjName("Watermark"),
		"Usage": model.ObjDict{
			"Print": model.ObjDict{"PrintState": model.ObjName("OFF")},
		},
	}
	res := &model.ResourcesDict{
		Properties: map[model.Name]model.PropertyList{"MC0": ocg},
	}
	content := "/OC /MC0 BDC 0 0 10 10 re f EMC"

	rec, _ := runContent(t, content, res, Options{Event: "View"})
	if len(rec.paths) != 1 {
		t.Fatalf("View event should draw the region, got %d paints", len(rec.paths))
	}
	rec, _ = runContent(t, content, res, Options{Event: "Print"})
	for _, c := range rec.calls {
		if c == "paint" {
			t.Fatal("Print event should suppress the region")
		}
	}
}

func TestCookieAbort(t *testing.T) {
	cookie := &Cookie{}
	cookie.Abort()
	stack := NewStack(NewGraphicsState(model.Identity))
	err := Run(mustParse(t, "0 0 10 10 re f"), nil, stack, &recorder{}, Options{Cookie: cookie})
	if err != ErrAborted {
		t.Fatalf("aborted run returned %v, want ErrAborted", err)
	}
}

// unknownOp stands in for an operator this interpreter has no case for.
type unknownOp struct{}

func (unknownOp) Add(out *bytes.Buffer) { out.WriteString("XYZZY ") }

func TestUnknownOperatorInCompatibilitySection(t *testing.T) {
	// BX ... EX swallows unknown operators without failing, even in
	// strict mode
	ops := []cs.Operation{
		cs.OpBeginIgnoreUndef{},
		unknownOp{},
		cs.OpEndIgnoreUndef{},
	}
	ops = append(ops, mustParse(t, "0 0 10 10 re f")...)
	rec := &recorder{}
	stack := NewStack(NewGraphicsState(model.Identity))
	if err := Run(ops, nil, stack, rec, Options{Strict: true}); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range rec.calls {
		if c == "paint" {
			found = true
		}
	}
	if !found {
		t.Fatal("content after BX/EX was lost")
	}
}

func TestTextMatrixAdvance(t *testing.T) {
	widths := make([]int, 95)
	for i := range widths {
		widths[i] = 500
	}
	font := &model.FontDict{Subtype: model.FontType1{FirstChar: 32, Widths: widths}}
	res := &model.ResourcesDict{Font: map[model.Name]*model.FontDict{"F1": font}}

	var gotTm []model.Matrix
	rec := &tmRecorder{ms: &gotTm}
	stack := NewStack(NewGraphicsState(model.Identity))
	content := "BT /F1 10 Tf 5 7 Td (AB) Tj (C) Tj ET"
	if err := Run(mustParse(t, content), res, stack, rec, Options{}); err != nil {
		t.Fatal(err)
	}
	if len(gotTm) != 2 {
		t.Fatalf("expected 2 text calls, got %d", len(gotTm))
	}
	if gotTm[0][4] != 5 || gotTm[0][5] != 7 {
		t.Fatalf("first text at (%g,%g), want (5,7)", gotTm[0][4], gotTm[0][5])
	}
	// AB advances 2 * 500/1000 * 10 = 10
	if gotTm[1][4] != 15 {
		t.Fatalf("second text at x=%g, want 15", gotTm[1][4])
	}
}

type tmRecorder struct {
	recorder
	ms *[]model.Matrix
}

func (r *tmRecorder) ShowText(gs *GraphicsState, tm model.Matrix, text []byte, adj model.Fl) {
	*r.ms = append(*r.ms, tm)
	r.recorder.ShowText(gs, tm, text, adj)
}
