package interp

import "github.com/lucidpdf/core/model"

// ClipEntry is one pushed clip region, combined with its siblings by
// intersection. The boolean is the fill rule (true for even-odd) that was
// active when the clip was installed.
type ClipEntry struct {
	Path    *Path
	EvenOdd bool
	CTM     model.Matrix
}

// Color is a color expressed in an arbitrary colorspace, exactly as set by
// SC/sc/SCN/scn/G/g/RG/rg/K/k: resolving it to device RGB/gray/alpha is
// left to the draw package, which alone knows how to evaluate
// ICCBased/Lab/Separation/DeviceN tint transforms and patterns.
type Color struct {
	Space      model.ColorSpace
	Components []model.Fl
	// Pattern is set, and Components holds the underlying color (possibly
	// empty, for a colored pattern), when SCN/scn supplied a trailing
	// pattern name. PatternDef is the resolved resource, when the name
	// was found in the page's /Pattern dictionary.
	Pattern    model.Name
	PatternDef model.Pattern
}

// GraphicsState is the PDF graphics state (8.4), the subset that is
// pushed/popped by q/Q. Tm and Tlm are deliberately absent: per 9.3, the
// text matrices are not part of the graphics state and are reset by BT,
// not saved by q/Q.
type GraphicsState struct {
	CTM model.Matrix

	StrokeColor Color
	FillColor   Color

	LineWidth   model.Fl
	LineCap     int
	LineJoin    int
	MiterLimit  model.Fl
	Dash        model.DashPattern
	RenderingIntent model.Name
	Flatness    model.Fl
	StrokeAdjustment bool

	StrokeAlpha model.Fl
	FillAlpha   model.Fl
	BlendMode   model.Name
	SoftMask    *model.SoftMaskDict
	AlphaIsShape bool

	// Font and FontSize are set by Tf; the remaining text-state
	// parameters below are, like Font, part of the graphics state (9.3)
	// and therefore saved/restored by q/Q, unlike Tm/Tlm.
	Font         *model.FontDict
	FontSize     model.Fl
	CharSpace    model.Fl
	WordSpace    model.Fl
	HScale       model.Fl // Tz, expressed as a percentage (default 100)
	Leading      model.Fl
	RenderMode   int
	Rise         model.Fl

	Clips []ClipEntry
}

// NewGraphicsState returns the state in effect at the start of a content
// stream, before any operator has run (8.4, Table 52 initial values).
func NewGraphicsState(ctm model.Matrix) GraphicsState {
	return GraphicsState{
		CTM:         ctm,
		FillColor:   Color{Space: model.ColorSpaceName("DeviceGray"), Components: []model.Fl{0}},
		StrokeColor: Color{Space: model.ColorSpaceName("DeviceGray"), Components: []model.Fl{0}},
		LineWidth:   1,
		LineCap:     0,
		LineJoin:    0,
		MiterLimit:  10,
		Flatness:    1,
		StrokeAlpha: 1,
		FillAlpha:   1,
		BlendMode:   "Normal",
		HScale:      100,
	}
}

// clone returns a deep-enough copy for the q/Q stack: Clips is shared
// structurally (each entry's Path is immutable once pushed, built via
// Path.Clone at push time) but the slice header is copied so that a
// nested clip push does not mutate the parent's slice.
func (g GraphicsState) clone() GraphicsState {
	out := g
	out.Clips = append([]ClipEntry(nil), g.Clips...)
	out.Dash.Array = append([]model.Fl(nil), g.Dash.Array...)
	return out
}

// Stack is the q/Q graphics-state stack, seeded with the state active at
// the start of the content stream.
type Stack struct {
	states []GraphicsState
}

// NewStack returns a stack with a single, initial state.
func NewStack(initial GraphicsState) *Stack {
	return &Stack{states: []GraphicsState{initial}}
}

// Current returns a pointer to the state on top of the stack, valid until
// the next Push or Pop.
func (s *Stack) Current() *GraphicsState {
	return &s.states[len(s.states)-1]
}

// Push duplicates the current state (the `q` operator).
func (s *Stack) Push() {
	s.states = append(s.states, s.Current().clone())
}

// Pop restores the previous state (the `Q` operator). Popping below the
// content-stream's initial depth is a no-op, per 8.4.2: a malformed
// content stream with an extra Q must not leave the interpreter without a
// state to operate on.
func (s *Stack) Pop() {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
	}
}

// Depth returns the current stack depth (1 at the start of the stream).
func (s *Stack) Depth() int { return len(s.states) }
