package model

import "fmt"

// PageNode is either a `PageTree` or a `PageObject`
type PageNode interface {
	isPageNode()

	// clone returns a deep copy, preserving the concrete type, using the
	// pointer already allocated in `cache.pages` by a prior call to
	// cloneCache.allocateClones.
	clone(cache cloneCache) PageNode
}

func (PageTree) isPageNode()    {}
func (*PageObject) isPageNode() {}

// PageTree describe the page hierarchy
// of a PDF file.
type PageTree struct {
	Parent    *PageTree
	Kids      []PageNode
	Resources *ResourcesDict // if nil, will be inherited from the parent
	MediaBox  *Rectangle     // if nil, will be inherited from the parent
	Rotate    Rotation       // if Unset, will be inherited from the parent
}

// Count returns the number of Page objects (leaf node)
// in all the descendants of `p` (not only in its direct children)
func (p PageTree) Count() int {
	return len(p.Flatten())
}

// Flatten returns all the leaf of the tree,
// respecting the indexing convention for pages (0-based):
// the page with index i is Flatten()[i].
// Be aware that inherited resource are not resolved
func (p PageTree) Flatten() []*PageObject {
	var out []*PageObject
	for _, kid := range p.Kids {
		switch kid := kid.(type) {
		case *PageTree:
			out = append(out, kid.Flatten()...)
		case *PageObject:
			out = append(out, kid)
		}
	}
	return out
}

type PageObject struct {
	Parent                    *PageTree
	Resources                 *ResourcesDict // if nil, will be inherited from the parent
	MediaBox                  *Rectangle     // if nil, will be inherited from the parent
	CropBox                   *Rectangle     // if nil, will be inherited. if still nil, default to MediaBox
	BleedBox, TrimBox, ArtBox *Rectangle     // if nil, default to CropBox
	Rotate                    Rotation       // if Unset, will be inherited from the parent. Only multiples of 90 are allowed
	Annots                    []*AnnotationDict
	Contents                  Contents
	StructParents             ObjInt // optional
	Tabs                      Name   // optional
}

// Contents is an array of stream (often of length 1)
type Contents []ContentStream

// defaultMediaBox is used when no ancestor in the page tree defines one (§8).
var defaultMediaBox = Rectangle{Llx: 0, Lly: 0, Urx: 612, Ury: 792}

// EffectiveMediaBox walks up the page tree to resolve an inherited
// /MediaBox, defaulting to the US-Letter box when none is found.
func (p *PageObject) EffectiveMediaBox() Rectangle {
	if p.MediaBox != nil {
		return *p.MediaBox
	}
	for parent := p.Parent; parent != nil; parent = parent.Parent {
		if parent.MediaBox != nil {
			return *parent.MediaBox
		}
	}
	return defaultMediaBox
}

// EffectiveResources walks up the page tree to resolve an inherited
// /Resources dictionary.
func (p *PageObject) EffectiveResources() *ResourcesDict {
	if p.Resources != nil {
		return p.Resources
	}
	for parent := p.Parent; parent != nil; parent = parent.Parent {
		if parent.Resources != nil {
			return parent.Resources
		}
	}
	return nil
}

// EffectiveRotate walks up the page tree to resolve an inherited /Rotate.
func (p *PageObject) EffectiveRotate() Rotation {
	if p.Rotate != Unset {
		return p.Rotate
	}
	for parent := p.Parent; parent != nil; parent = parent.Parent {
		if parent.Rotate != Unset {
			return parent.Rotate
		}
	}
	return Zero
}

// ResourcesColorSpace is the type of the /ColorSpace entry of a resource dictionary.
type ResourcesColorSpace map[Name]ColorSpace

// Resolve looks up `name` as a colorspace resource, falling back to the
// four names that never need a resource dictionary entry (8.6.3): the
// three device spaces and /Pattern.
func (r ResourcesColorSpace) Resolve(name Name) (ColorSpace, error) {
	switch ColorSpaceName(name) {
	case ColorSpaceRGB, ColorSpaceGray, ColorSpaceCMYK, ColorSpacePattern:
		return ColorSpaceName(name), nil
	}
	if cs, ok := r[name]; ok && cs != nil {
		return cs, nil
	}
	return nil, fmt.Errorf("unknown color space resource %s", name)
}

type ResourcesDict struct {
	ExtGState  map[Name]*GraphicState // optionnal
	ColorSpace map[Name]ColorSpace
	Shading    map[Name]*ShadingDict
	Pattern    map[Name]Pattern
	Font       map[Name]*FontDict
	XObject    map[Name]XObject
	Properties map[Name]PropertyList
}

// NewResourcesDict returns an empty, ready to use resources dictionary,
// with every map allocated.
func NewResourcesDict() ResourcesDict {
	return ResourcesDict{
		ExtGState:  make(map[Name]*GraphicState),
		ColorSpace: make(map[Name]ColorSpace),
		Shading:    make(map[Name]*ShadingDict),
		Pattern:    make(map[Name]Pattern),
		Font:       make(map[Name]*FontDict),
		XObject:    make(map[Name]XObject),
		Properties: make(map[Name]PropertyList),
	}
}

// ShallowCopy returns a copy of the dictionary, with new maps holding
// the same entries: building a new appearance stream that shares fonts,
// images and patterns with its source resources dictionary must not
// mutate the source when new names are added.
func (r ResourcesDict) ShallowCopy() ResourcesDict {
	out := ResourcesDict{
		ExtGState:  make(map[Name]*GraphicState, len(r.ExtGState)),
		ColorSpace: make(map[Name]ColorSpace, len(r.ColorSpace)),
		Shading:    make(map[Name]*ShadingDict, len(r.Shading)),
		Pattern:    make(map[Name]Pattern, len(r.Pattern)),
		Font:       make(map[Name]*FontDict, len(r.Font)),
		XObject:    make(map[Name]XObject, len(r.XObject)),
		Properties: make(map[Name]PropertyList, len(r.Properties)),
	}
	for k, v := range r.ExtGState {
		out.ExtGState[k] = v
	}
	for k, v := range r.ColorSpace {
		out.ColorSpace[k] = v
	}
	for k, v := range r.Shading {
		out.Shading[k] = v
	}
	for k, v := range r.Pattern {
		out.Pattern[k] = v
	}
	for k, v := range r.Font {
		out.Font[k] = v
	}
	for k, v := range r.XObject {
		out.XObject[k] = v
	}
	for k, v := range r.Properties {
		out.Properties[k] = v
	}
	return out
}
