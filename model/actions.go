package model

import (
	"fmt"
	"strings"
)

type FormFielAdditionalActions struct {
	K ActionJavaScript // optional, on update
	F ActionJavaScript // optional, before formating
	V ActionJavaScript // optional, on validate
	C ActionJavaScript // optional, to recalculate
}

func (f FormFielAdditionalActions) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.WriteString("<<")
	if f.K != (ActionJavaScript{}) {
		b.line("/K %s", f.K.ActionDictionary(pdf, ref))
	}
	if f.F != (ActionJavaScript{}) {
		b.line("/F %s", f.F.ActionDictionary(pdf, ref))
	}
	if f.V != (ActionJavaScript{}) {
		b.line("/V %s", f.V.ActionDictionary(pdf, ref))
	}
	if f.C != (ActionJavaScript{}) {
		b.line("/C %s", f.C.ActionDictionary(pdf, ref))
	}
	b.fmt(">>")
	return b.String()
}

// AnnotationAdditionalActions gathers the trigger events specific to
// annotations (widgets in particular): entering/exiting, page
// visibility, and, for widgets, the focus and mouse events already
// available through FormFielAdditionalActions-like fields.
type AnnotationAdditionalActions struct {
	E  Action // optional, mouse enter
	X  Action // optional, mouse exit
	D  Action // optional, mouse down
	U  Action // optional, mouse up
	Fo Action // optional, receive input focus
	Bl Action // optional, lose input focus
	PO Action // optional, page open
	PC Action // optional, page close
	PV Action // optional, page becomes visible
	PI Action // optional, page no longer visible
}

func (aa *AnnotationAdditionalActions) pdfString(pdf pdfWriter, ref Reference) string {
	if aa == nil {
		return "<<>>"
	}
	b := newBuffer()
	b.WriteString("<<")
	entries := [...]struct {
		name string
		ac   Action
	}{
		{"E", aa.E}, {"X", aa.X}, {"D", aa.D}, {"U", aa.U},
		{"Fo", aa.Fo}, {"Bl", aa.Bl}, {"PO", aa.PO}, {"PC", aa.PC},
		{"PV", aa.PV}, {"PI", aa.PI},
	}
	for _, e := range entries {
		if e.ac.ActionType != nil {
			b.fmt("/%s %s", e.name, e.ac.pdfString(pdf, ref))
		}
	}
	b.WriteString(">>")
	return b.String()
}

func (aa *AnnotationAdditionalActions) clone(cache cloneCache) *AnnotationAdditionalActions {
	if aa == nil {
		return nil
	}
	out := *aa
	out.E = aa.E.clone(cache)
	out.X = aa.X.clone(cache)
	out.D = aa.D.clone(cache)
	out.U = aa.U.clone(cache)
	out.Fo = aa.Fo.clone(cache)
	out.Bl = aa.Bl.clone(cache)
	out.PO = aa.PO.clone(cache)
	out.PC = aa.PC.clone(cache)
	out.PV = aa.PV.clone(cache)
	out.PI = aa.PI.clone(cache)
	return &out
}

// Action is a PDF action dictionary: one concrete action type,
// optionally followed by a chain of further actions triggered in turn.
type Action struct {
	ActionType ActionType
	Next       []Action // optional
}

func (a Action) pdfString(pdf pdfWriter, ref Reference) string {
	if a.ActionType == nil {
		return "<<>>"
	}
	s := a.ActionType.actionDictionary(pdf, ref)
	if len(a.Next) == 0 {
		return s
	}
	nexts := make([]string, len(a.Next))
	for i, n := range a.Next {
		nexts[i] = n.pdfString(pdf, ref)
	}
	var next string
	if len(nexts) == 1 {
		next = nexts[0]
	} else {
		next = "[" + strings.Join(nexts, " ") + "]"
	}
	// splice the /Next entry in before the closing >>
	return s[:len(s)-2] + "/Next " + next + ">>"
}

func (a Action) clone(cache cloneCache) Action {
	var out Action
	if a.ActionType != nil {
		out.ActionType = a.ActionType.clone(cache)
	}
	if len(a.Next) != 0 {
		out.Next = make([]Action, len(a.Next))
		for i, n := range a.Next {
			out.Next[i] = n.clone(cache)
		}
	}
	return out
}

// ActionType is the action itself, as given by the dictionary /S entry.
//
// TODO: support more action type
type ActionType interface {
	// actionDictionary returns the dictionary defining the action
	// as written in PDF
	actionDictionary(pdfWriter, Reference) string
	clone(cache cloneCache) ActionType
}

type ActionJavaScript struct {
	JS string // text string, may be found in PDF as stream object
}

func (j ActionJavaScript) ActionDictionary(pdf pdfWriter, ref Reference) string {
	return fmt.Sprintf("<</S/JavaScript/JS %s>>", pdf.EncodeString(j.JS, TextString, ref))
}

func (j ActionJavaScript) actionDictionary(pdf pdfWriter, ref Reference) string {
	return j.ActionDictionary(pdf, ref)
}

func (j ActionJavaScript) clone(cloneCache) ActionType { return j }

// ActionURI resolves a uniform resource identifier.
type ActionURI struct {
	URI   string // should be ASCII encoded
	IsMap bool   // optional, track the mouse position in the click
}

func (uri ActionURI) actionDictionary(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<</S/URI/URI %s", pdf.EncodeString(uri.URI, ASCIIString, ref))
	if uri.IsMap {
		b.fmt("/IsMap true")
	}
	b.fmt(">>")
	return b.String()
}

func (uri ActionURI) clone(cache cloneCache) ActionType { return uri }

type ActionGoTo struct {
	D Destination
}

func (ac ActionGoTo) actionDictionary(pdf pdfWriter, ref Reference) string {
	return fmt.Sprintf("<</S/GoTo/D %s>>", ac.D.pdfDestination(pdf, ref))
}

func (ac ActionGoTo) clone(cache cloneCache) ActionType {
	out := ac
	if ac.D != nil {
		out.D = ac.D.clone(cache)
	}
	return out
}

// ActionRemoteGoTo goes to a destination in another PDF file.
type ActionRemoteGoTo struct {
	D         Destination // required
	NewWindow bool        // optional
	F         *FileSpec   // required
}

func (ac ActionRemoteGoTo) actionDictionary(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<</S/GoToR")
	if ac.D != nil {
		b.fmt("/D %s", ac.D.pdfDestination(pdf, ref))
	}
	if ac.NewWindow {
		b.fmt("/NewWindow true")
	}
	if ac.F != nil {
		fRef := pdf.addItem(ac.F)
		b.fmt("/F %s", fRef)
	}
	b.fmt(">>")
	return b.String()
}

func (ac ActionRemoteGoTo) clone(cache cloneCache) ActionType {
	out := ac
	if ac.D != nil {
		out.D = ac.D.clone(cache)
	}
	if ac.F != nil {
		out.F = cache.checkOrClone(ac.F).(*FileSpec)
	}
	return out
}

// ActionEmbeddedGoTo goes to a destination in an embedded PDF file.
type ActionEmbeddedGoTo struct {
	D         Destination // required
	NewWindow bool        // optional
	F         *FileSpec   // optional, target is the current file if absent
	T         *EmbeddedTarget
}

func (ac ActionEmbeddedGoTo) actionDictionary(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<</S/GoToE")
	if ac.D != nil {
		b.fmt("/D %s", ac.D.pdfDestination(pdf, ref))
	}
	if ac.NewWindow {
		b.fmt("/NewWindow true")
	}
	if ac.F != nil {
		fRef := pdf.addItem(ac.F)
		b.fmt("/F %s", fRef)
	}
	if ac.T != nil {
		b.fmt("/T %s", ac.T.pdfString())
	}
	b.fmt(">>")
	return b.String()
}

func (ac ActionEmbeddedGoTo) clone(cache cloneCache) ActionType {
	out := ac
	if ac.D != nil {
		out.D = ac.D.clone(cache)
	}
	if ac.F != nil {
		out.F = cache.checkOrClone(ac.F).(*FileSpec)
	}
	if ac.T != nil {
		t := ac.T.clone()
		out.T = &t
	}
	return out
}

// EmbeddedTarget locates the target of a GoToE action relative to
// the file containing it.
type EmbeddedTarget struct {
	R Name // required, /P (parent) or /C (child)
	N string
	P EmbeddedTargetDest // optional
	A EmbeddedTargetAnnot
	T *EmbeddedTarget // optional, relative to the file designated by this one
}

func (t EmbeddedTarget) pdfString() string {
	b := newBuffer()
	b.fmt("<</R %s", t.R)
	if t.N != "" {
		b.fmt("/N (%s)", t.N)
	}
	if t.P != nil {
		b.fmt("/P %s", t.P.embeddedTargetDest())
	}
	if t.A != nil {
		b.fmt("/A %s", t.A.embeddedTargetAnnot())
	}
	if t.T != nil {
		b.fmt("/T %s", t.T.pdfString())
	}
	b.fmt(">>")
	return b.String()
}

func (t EmbeddedTarget) clone() EmbeddedTarget {
	out := t
	if t.T != nil {
		tt := t.T.clone()
		out.T = &tt
	}
	return out
}

// EmbeddedTargetDest is either a page name (EmbeddedTargetDestNamed)
// or a page index (EmbeddedTargetDestPage).
type EmbeddedTargetDest interface {
	embeddedTargetDest() string
}

type EmbeddedTargetDestNamed string

func (n EmbeddedTargetDestNamed) embeddedTargetDest() string { return fmt.Sprintf("(%s)", n) }

type EmbeddedTargetDestPage int

func (p EmbeddedTargetDestPage) embeddedTargetDest() string { return fmt.Sprintf("%d", p) }

// EmbeddedTargetAnnot is either an annotation name (EmbeddedTargetAnnotNamed)
// or an annotation index (EmbeddedTargetAnnotIndex).
type EmbeddedTargetAnnot interface {
	embeddedTargetAnnot() string
}

type EmbeddedTargetAnnotNamed string

func (n EmbeddedTargetAnnotNamed) embeddedTargetAnnot() string { return fmt.Sprintf("(%s)", n) }

type EmbeddedTargetAnnotIndex int

func (i EmbeddedTargetAnnotIndex) embeddedTargetAnnot() string { return fmt.Sprintf("%d", i) }

// ActionHide shows or hides the annotations or form fields listed in T.
type ActionHide struct {
	Show bool // the H entry is the negation of this field
	T    []ActionHideTarget
}

func (ac ActionHide) actionDictionary(pdf pdfWriter, ref Reference) string {
	targets := make([]string, len(ac.T))
	for i, t := range ac.T {
		targets[i] = t.hideTargetString(pdf, ref)
	}
	var t string
	if len(targets) == 1 {
		t = targets[0]
	} else {
		t = "[" + strings.Join(targets, " ") + "]"
	}
	return fmt.Sprintf("<</S/Hide/H %v/T %s>>", !ac.Show, t)
}

func (ac ActionHide) clone(cache cloneCache) ActionType {
	out := ac
	if ac.T != nil {
		out.T = make([]ActionHideTarget, len(ac.T))
		for i, t := range ac.T {
			out.T[i] = t.cloneHideTarget(cache)
		}
	}
	return out
}

// ActionHideTarget is either a form field, designated by its fully
// qualified name (HideTargetFormName), or a widget annotation.
type ActionHideTarget interface {
	hideTargetString(pdf pdfWriter, ref Reference) string
	cloneHideTarget(cache cloneCache) ActionHideTarget
}

type HideTargetFormName string

func (n HideTargetFormName) hideTargetString(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(n), TextString, ref)
}

func (n HideTargetFormName) cloneHideTarget(cloneCache) ActionHideTarget { return n }

func (a *AnnotationDict) hideTargetString(pdf pdfWriter, _ Reference) string {
	return pdf.addItem(a).String()
}

func (a *AnnotationDict) cloneHideTarget(cache cloneCache) ActionHideTarget {
	return cache.checkOrClone(a).(*AnnotationDict)
}

// ActionNamed is one of the standard named actions (NextPage, PrevPage,
// FirstPage, LastPage), or a custom, viewer specific name.
type ActionNamed Name

func (n ActionNamed) actionDictionary(pdf pdfWriter, _ Reference) string {
	return fmt.Sprintf("<</S/Named/N %s>>", Name(n))
}

func (n ActionNamed) clone(cloneCache) ActionType { return n }

// ActionRendition controls the playing of a multimedia rendition.
type ActionRendition struct {
	R  RenditionDict   // optional
	AN *AnnotationDict // optional, the screen annotation the action is controlling
	OP ObjInt          // optional, operation to perform, Undef if not specified
	JS string          // optional, text string or stream
}

func (ac ActionRendition) actionDictionary(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<</S/Rendition")
	if ac.OP != Undef {
		b.fmt("/OP %d", ac.OP)
	} else {
		rRef := pdf.CreateObject()
		pdf.WriteObject(ac.R.pdfString(pdf, rRef), rRef)
		b.fmt("/R %s", rRef)
	}
	if ac.AN != nil {
		anRef := pdf.addItem(ac.AN)
		b.fmt("/AN %s", anRef)
	}
	if ac.JS != "" {
		b.fmt("/JS %s", pdf.EncodeString(ac.JS, TextString, ref))
	}
	b.fmt(">>")
	return b.String()
}

func (ac ActionRendition) clone(cache cloneCache) ActionType {
	out := ac
	out.R = ac.R.clone(cache)
	if ac.AN != nil {
		out.AN = cache.checkOrClone(ac.AN).(*AnnotationDict)
	}
	return out
}

// ----------------------- Destinations -----------------------

type Destination interface {
	// return the PDF content of the destination
	pdfDestination(pdf pdfWriter, ref Reference) string
	clone(cache cloneCache) Destination
}

// DestinationExplicit points a particular view of a page, either in
// the current file (DestinationExplicitIntern) or in another file,
// referenced by its page index (DestinationExplicitExtern).
type DestinationExplicit interface {
	Destination
	isDestinationExplicit()
}

type DestinationExplicitIntern struct {
	Page     *PageObject
	Location DestinationLocation
}

func (d DestinationExplicitIntern) isDestinationExplicit() {}

func (d DestinationExplicitIntern) pdfDestination(pdf pdfWriter, _ Reference) string {
	pageRef := pdf.pages[d.Page]
	return fmt.Sprintf("[%s%s]", pageRef, d.Location.destLocationString())
}

func (d DestinationExplicitIntern) clone(cache cloneCache) Destination {
	out := d
	if d.Page != nil {
		out.Page = cache.pages[d.Page].(*PageObject)
	}
	if d.Location != nil {
		out.Location = d.Location.clone(cache)
	}
	return out
}

// DestinationExplicitExtern is an explicit destination referring to a
// page in another, not yet loaded, document, by its (0-based) index.
type DestinationExplicitExtern struct {
	Page     int
	Location DestinationLocation
}

func (d DestinationExplicitExtern) isDestinationExplicit() {}

func (d DestinationExplicitExtern) pdfDestination(pdf pdfWriter, _ Reference) string {
	return fmt.Sprintf("[%d%s]", d.Page, d.Location.destLocationString())
}

func (d DestinationExplicitExtern) clone(cloneCache) Destination { return d }

// DestinationLocation is the view of the page a DestinationExplicit
// points to: the /Fit, /FitH, /FitV, /FitB, /FitBH, /FitBV, /XYZ or
// /FitR entries of the destination array.
type DestinationLocation interface {
	destLocationString() string
	clone(cache cloneCache) DestinationLocation
}

// DestinationLocationFit is either "Fit" or "FitB".
type DestinationLocationFit Name

func (f DestinationLocationFit) destLocationString() string {
	return "/" + string(f)
}

func (f DestinationLocationFit) clone(cloneCache) DestinationLocation { return f }

// DestinationLocationFitDim is "FitH", "FitV", "FitBH" or "FitBV",
// each qualified by one coordinate.
type DestinationLocationFitDim struct {
	Name Name     // FitH, FitV, FitBH or FitBV
	Dim  ObjFloat // optional, Undef for null
}

func (f DestinationLocationFitDim) destLocationString() string {
	dim := "null"
	if f.Dim != Undef {
		dim = fmt.Sprintf("%.3f", f.Dim)
	}
	return fmt.Sprintf("/%s %s", f.Name, dim)
}

func (f DestinationLocationFitDim) clone(cloneCache) DestinationLocation { return f }

// DestinationLocationXYZ is the /XYZ location.
type DestinationLocationXYZ struct {
	Left, Top ObjFloat // optional, Undef for null
	Zoom      Fl       // 0 means "unchanged"
}

func (l DestinationLocationXYZ) destLocationString() string {
	left, top := "null", "null"
	if l.Left != Undef {
		left = fmt.Sprintf("%.3f", l.Left)
	}
	if l.Top != Undef {
		top = fmt.Sprintf("%.3f", l.Top)
	}
	return fmt.Sprintf("/XYZ %s %s %.3f", left, top, l.Zoom)
}

func (l DestinationLocationXYZ) clone(cloneCache) DestinationLocation { return l }

// DestinationLocationFitR is the /FitR location.
type DestinationLocationFitR struct {
	Left, Bottom, Right, Top Fl
}

func (l DestinationLocationFitR) destLocationString() string {
	return fmt.Sprintf("/FitR %.3f %.3f %.3f %.3f", l.Left, l.Bottom, l.Right, l.Top)
}

func (l DestinationLocationFitR) clone(cloneCache) DestinationLocation { return l }

type DestinationName Name

func (n DestinationName) pdfDestination(pdfWriter, Reference) string {
	return Name(n).String()
}

func (d DestinationName) clone(cloneCache) Destination { return d }

type DestinationString string

func (s DestinationString) pdfDestination(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(s), TextString, ref)
}

func (d DestinationString) clone(cloneCache) Destination { return d }
