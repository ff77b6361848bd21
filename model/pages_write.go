package model

// allocateReferences walks `node` and its descendants, assigning each one
// a Reference in `pdf.pages`. It must run before any page node is written,
// since a page may need to refer to an arbitrary other page (for instance
// an annotation link with a GoTo action) before that page has itself been
// serialized.
func (pdf pdfWriter) allocateReferences(node PageNode) {
	if _, has := pdf.pages[node]; has {
		return
	}
	pdf.pages[node] = pdf.CreateObject()
	if tree, ok := node.(*PageTree); ok {
		for _, kid := range tree.Kids {
			pdf.allocateReferences(kid)
		}
	}
}

// pdfString returns the dictionary of the page tree node referenced by
// `pdf.pages[p]`, writing every child node as its own indirect object
// along the way.
func (p *PageTree) pdfString(pdf pdfWriter) string {
	b := newBuffer()
	b.fmt("<</Type/Pages/Count %d", p.Count())
	if p.Parent != nil {
		b.fmt("/Parent %s", pdf.pages[p.Parent])
	}
	if len(p.Kids) != 0 {
		b.fmt("/Kids [")
		for _, kid := range p.Kids {
			kidRef := pdf.pages[kid]
			switch kid := kid.(type) {
			case *PageTree:
				pdf.WriteObject(kid.pdfString(pdf), kidRef)
			case *PageObject:
				pdf.WriteObject(kid.pdfString(pdf), kidRef)
			}
			b.fmt("%s ", kidRef)
		}
		b.fmt("]")
	}
	if p.Resources != nil {
		ref := pdf.pages[p]
		b.fmt("/Resources %s", p.Resources.pdfString(pdf, ref))
	}
	if p.MediaBox != nil {
		b.fmt("/MediaBox %s", p.MediaBox)
	}
	if p.Rotate != Unset {
		b.fmt("/Rotate %d", p.Rotate.Degrees())
	}
	b.fmt(">>")
	return b.String()
}

// pdfString returns the dictionary of the leaf page referenced by
// `pdf.pages[p]`.
func (p *PageObject) pdfString(pdf pdfWriter) string {
	ref := pdf.pages[p]
	b := newBuffer()
	b.fmt("<</Type/Page")
	if p.Parent != nil {
		b.fmt("/Parent %s", pdf.pages[p.Parent])
	}
	if p.Resources != nil {
		b.fmt("/Resources %s", p.Resources.pdfString(pdf, ref))
	}
	if p.MediaBox != nil {
		b.fmt("/MediaBox %s", p.MediaBox)
	}
	if p.CropBox != nil {
		b.fmt("/CropBox %s", p.CropBox)
	}
	if p.BleedBox != nil {
		b.fmt("/BleedBox %s", p.BleedBox)
	}
	if p.TrimBox != nil {
		b.fmt("/TrimBox %s", p.TrimBox)
	}
	if p.ArtBox != nil {
		b.fmt("/ArtBox %s", p.ArtBox)
	}
	if p.Rotate != Unset {
		b.fmt("/Rotate %d", p.Rotate.Degrees())
	}
	if len(p.Annots) != 0 {
		b.fmt("/Annots [")
		for _, annot := range p.Annots {
			b.fmt("%s ", pdf.addItem(annot))
		}
		b.fmt("]")
	}
	if len(p.Contents) == 1 {
		content := p.Contents[0]
		streamRef := pdf.CreateObject()
		pdf.WriteStream(content.streamHeader(), content.Content, streamRef)
		b.fmt("/Contents %s", streamRef)
	} else if len(p.Contents) > 1 {
		b.fmt("/Contents [")
		for _, content := range p.Contents {
			streamRef := pdf.CreateObject()
			pdf.WriteStream(content.streamHeader(), content.Content, streamRef)
			b.fmt("%s ", streamRef)
		}
		b.fmt("]")
	}
	if p.StructParents != Undef {
		b.fmt("/StructParents %d", p.StructParents)
	}
	if p.Tabs != "" {
		b.fmt("/Tabs %s", p.Tabs)
	}
	b.fmt(">>")
	return b.String()
}

// pdfString returns the dictionary content of the resources, writing every
// referenceable resource (fonts, images, patterns, ExtGStates, shadings) as
// its own indirect object and sharing it across resources dictionaries via
// the writer's object cache.
func (r ResourcesDict) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<<")
	if len(r.ExtGState) != 0 {
		b.fmt("/ExtGState <<")
		for name, gs := range r.ExtGState {
			if gs == nil {
				continue
			}
			b.fmt("%s %s ", name, pdf.addItem(gs))
		}
		b.fmt(">>")
	}
	if len(r.ColorSpace) != 0 {
		b.fmt("/ColorSpace <<")
		for name, cs := range r.ColorSpace {
			if cs == nil {
				continue
			}
			b.fmt("%s %s ", name, cs.colorSpacePDFString(pdf))
		}
		b.fmt(">>")
	}
	if len(r.Shading) != 0 {
		b.fmt("/Shading <<")
		for name, sh := range r.Shading {
			if sh == nil {
				continue
			}
			b.fmt("%s %s ", name, pdf.addItem(sh))
		}
		b.fmt(">>")
	}
	if len(r.Pattern) != 0 {
		b.fmt("/Pattern <<")
		for name, p := range r.Pattern {
			if p == nil {
				continue
			}
			b.fmt("%s %s ", name, pdf.addItem(p.(Referenceable)))
		}
		b.fmt(">>")
	}
	if len(r.Font) != 0 {
		b.fmt("/Font <<")
		for name, f := range r.Font {
			if f == nil {
				continue
			}
			b.fmt("%s %s ", name, pdf.addItem(f))
		}
		b.fmt(">>")
	}
	if len(r.XObject) != 0 {
		b.fmt("/XObject <<")
		for name, xo := range r.XObject {
			if xo == nil {
				continue
			}
			b.fmt("%s %s ", name, pdf.addItem(xo.(Referenceable)))
		}
		b.fmt(">>")
	}
	if len(r.Properties) != 0 {
		b.fmt("/Properties <<")
		for name, p := range r.Properties {
			b.fmt("%s %s ", name, p.Write(pdf, ref))
		}
		b.fmt(">>")
	}
	b.fmt(">>")
	return b.String()
}

// clone returns a deep copy of `node`, using the new pointers already
// allocated in `cache.pages` by a prior call to allocateClones.
func (p *PageTree) clone(cache cloneCache) PageNode {
	out := cache.pages[p].(*PageTree)
	*out = *p
	if p.Parent != nil {
		out.Parent = cache.pages[p.Parent].(*PageTree)
	}
	if p.Resources != nil {
		res := p.Resources.ShallowCopy()
		out.Resources = &res
	}
	if p.MediaBox != nil {
		mb := *p.MediaBox
		out.MediaBox = &mb
	}
	if len(p.Kids) != 0 {
		out.Kids = make([]PageNode, len(p.Kids))
		for i, kid := range p.Kids {
			out.Kids[i] = kid.clone(cache)
		}
	}
	return out
}

// clone returns a deep copy of `p`, using the new pointer already
// allocated in `cache.pages` by a prior call to allocateClones.
func (p *PageObject) clone(cache cloneCache) PageNode {
	out := cache.pages[p].(*PageObject)
	*out = *p
	if p.Parent != nil {
		out.Parent = cache.pages[p.Parent].(*PageTree)
	}
	if p.Resources != nil {
		res := p.Resources.ShallowCopy()
		out.Resources = &res
	}
	if p.MediaBox != nil {
		mb := *p.MediaBox
		out.MediaBox = &mb
	}
	if p.CropBox != nil {
		cb := *p.CropBox
		out.CropBox = &cb
	}
	if p.BleedBox != nil {
		bb := *p.BleedBox
		out.BleedBox = &bb
	}
	if p.TrimBox != nil {
		tb := *p.TrimBox
		out.TrimBox = &tb
	}
	if p.ArtBox != nil {
		ab := *p.ArtBox
		out.ArtBox = &ab
	}
	if len(p.Annots) != 0 {
		out.Annots = make([]*AnnotationDict, len(p.Annots))
		for i, annot := range p.Annots {
			out.Annots[i] = cache.checkOrClone(annot).(*AnnotationDict)
		}
	}
	if len(p.Contents) != 0 {
		out.Contents = make(Contents, len(p.Contents))
		for i, content := range p.Contents {
			out.Contents[i] = content.Clone()
		}
	}
	return out
}

// allocateClones walks `node` and its descendants, pre-allocating, for
// every page tree node, a new pointer of the same concrete type into
// `cache.pages`. A second pass (the `clone` methods above) then fills
// these pointers, so that a page referring to an arbitrary other page
// (an annotation link, for instance) can resolve the clone of its target
// even if that target has not been cloned yet.
func (cache cloneCache) allocateClones(node PageNode) {
	if _, has := cache.pages[node]; has {
		return
	}
	switch node := node.(type) {
	case *PageTree:
		cache.pages[node] = &PageTree{}
		for _, kid := range node.Kids {
			cache.allocateClones(kid)
		}
	case *PageObject:
		cache.pages[node] = &PageObject{}
	}
}
