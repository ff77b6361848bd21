package file

import (
	"io"
	"io/ioutil"
	"regexp"
	"strconv"

	"github.com/lucidpdf/core/coreerr"
	"github.com/lucidpdf/core/internal/corelog"
	"github.com/lucidpdf/core/reader/parser"
)

// objHeader matches an indirect object header `N G obj` at a plausible
// position (start of file or just after a delimiter), the anchor a
// repair scan rebuilds the xref from.
var objHeader = regexp.MustCompile(`(?:^|[\r\n>\]\s])(\d+)\s+(\d+)\s+obj\b`)

// trailerKeyword locates candidate trailer dictionaries; the scan keeps
// the last one carrying a /Root entry, the most plausible file trailer.
var trailerKeyword = regexp.MustCompile(`trailer`)

// repairXrefTable rebuilds a synthetic xref by linearly scanning the
// whole file for object headers, overriding whatever partial table a
// broken startxref chain produced. Later headers win for duplicate
// object numbers, matching the incremental-update rule that later
// sections override earlier ones.
func (ctx *context) repairXrefTable() error {
	corelog.Read.Printf("xref chain broken, scanning %d bytes for object headers", ctx.fileSize)

	if _, err := ctx.rs.Seek(0, io.SeekStart); err != nil {
		return coreerr.Wrap(coreerr.IO, err, "repair scan")
	}
	buf, err := ioutil.ReadAll(ctx.rs)
	if err != nil {
		return coreerr.Wrap(coreerr.IO, err, "repair scan")
	}

	ctx.xrefTable = make(xrefTable)
	found := 0
	for _, m := range objHeader.FindAllSubmatchIndex(buf, -1) {
		number, err1 := strconv.Atoi(string(buf[m[2]:m[3]]))
		generation, err2 := strconv.Atoi(string(buf[m[4]:m[5]]))
		if err1 != nil || err2 != nil {
			continue
		}
		ctx.xrefTable[number] = &xrefEntry{
			offset:     int64(m[2]),
			generation: generation,
		}
		found++
	}
	if found == 0 {
		return coreerr.New(coreerr.Syntax, "repair found no indirect objects")
	}
	corelog.Read.Printf("repair: rebuilt %d xref entries", found)

	if err := ctx.repairTrailer(buf); err != nil {
		return err
	}
	return nil
}

// repairTrailer locates the trailer dictionary: the last `trailer`
// keyword followed by a dictionary with a /Root entry wins; failing
// that, one is synthesized from the catalog found in scan order.
func (ctx *context) repairTrailer(buf []byte) error {
	locations := trailerKeyword.FindAllIndex(buf, -1)
	for i := len(locations) - 1; i >= 0; i-- {
		tk, err := ctx.tokenizerAt(int64(locations[i][1]))
		if err != nil {
			continue
		}
		pr := parser.NewParserFromTokenizer(tk)
		o, err := pr.ParseObject()
		if err != nil {
			continue
		}
		dict, ok := o.(parser.Dict)
		if !ok || dict["Root"] == nil {
			continue
		}
		if _, ok := dict["Size"].(parser.Integer); !ok {
			dict["Size"] = parser.Integer(ctx.maxObjectNumber() + 1)
		}
		if err := ctx.trailer.parseTrailerInfo(dict); err != nil {
			corelog.Read.Printf("repair: unusable trailer dictionary: %s", err)
			continue
		}
		if ctx.trailer.root != nil {
			return nil
		}
	}

	// no usable trailer: synthesize one from the objects themselves
	corelog.Read.Printf("repair: no trailer found, searching for the catalog")
	for number := range ctx.xrefTable {
		o, err := ctx.resolveObjectNumber(number)
		if err != nil {
			continue
		}
		dict, ok := o.(parser.Dict)
		if !ok {
			continue
		}
		if name, _ := dict["Type"].(parser.Name); name == "Catalog" {
			ref := parser.IndirectRef{ObjectNumber: number, GenerationNumber: ctx.xrefTable[number].generation}
			ctx.trailer.root = &ref
			return nil
		}
	}
	return coreerr.New(coreerr.Syntax, "repair could not locate a document catalog")
}

func (ctx *context) maxObjectNumber() int {
	max := 0
	for n := range ctx.xrefTable {
		if n > max {
			max = n
		}
	}
	return max
}
