package model

import (
	"fmt"
	"time"
)

type EmbeddedFile struct {
	Name     string
	FileSpec *FileSpec // indirect
}

type FileSpec struct {
	UF   string
	EF   *EmbeddedFileStream
	Desc string
}

type EmbeddedFileParams struct {
	Size         int
	CreationDate time.Time
	ModDate      time.Time
	CheckSum     string // should be wrote as hex16 encoded
}

type EmbeddedFileStream struct {
	ContentStream
	Params EmbeddedFileParams
}

func (f *FileSpec) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	out.EF = cache.checkOrClone(f.EF).(*EmbeddedFileStream)
	return &out
}

func (f *FileSpec) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.WriteString("<</Type/Filespec")
	if f.UF != "" {
		uf := pdf.EncodeString(f.UF, TextString, ref)
		b.fmt("/UF %s/F %s", uf, uf)
	}
	if f.Desc != "" {
		b.fmt("/Desc %s", pdf.EncodeString(f.Desc, TextString, ref))
	}
	if f.EF != nil {
		efRef := pdf.addItem(f.EF)
		b.fmt("/EF <</UF %s/F %s>>", efRef, efRef)
	}
	b.WriteString(">>")
	return b.String(), nil
}

func (e *EmbeddedFileStream) clone(cloneCache) Referenceable {
	if e == nil {
		return e
	}
	out := *e
	out.ContentStream = e.ContentStream.Clone()
	return &out
}

func (e *EmbeddedFileStream) pdfContent(pdfWriter, Reference) (string, []byte) {
	b := newBuffer()
	b.fmt("<</Type/EmbeddedFile%s", e.ContentStream.PDFCommonFields())
	b.fmt("/Params <</Size %d", e.Params.Size)
	if e.Params.CheckSum != "" {
		b.fmt("/CheckSum <%s>", e.Params.CheckSum)
	}
	if !e.Params.CreationDate.IsZero() {
		b.fmt("/CreationDate %s", fmt.Sprintf("(%s)", DateTimeString(e.Params.CreationDate)))
	}
	if !e.Params.ModDate.IsZero() {
		b.fmt("/ModDate %s", fmt.Sprintf("(%s)", DateTimeString(e.Params.ModDate)))
	}
	b.WriteString(">>>>")
	return b.String(), e.Content
}
