// Command pdfshow dumps the low-level structure of a PDF file: the xref
// table, the trailer, the encryption dictionary, the page tree, the
// outline, or the body of specific objects.
//
//	pdfshow [options] file.pdf [xref|trailer|encrypt|pages|outline|N...]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader"
	"github.com/lucidpdf/core/reader/file"
	"github.com/lucidpdf/core/reader/parser"
)

var (
	password  = flag.String("p", "", "user password")
	rawBinary = flag.Bool("b", false, "write stream contents as raw binary")
	noDecode  = flag.Bool("e", false, "leave streams encoded (suppress filter decoding)")
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fatal("usage: pdfshow [options] file.pdf [xref|trailer|encrypt|pages|outline|N...]")
	}
	input := flag.Arg(0)

	f, err := os.Open(input)
	if err != nil {
		fatal("%s", err)
	}
	defer f.Close()
	doc, err := file.Read(f, &file.Configuration{Password: *password})
	if err != nil {
		fatal("cannot open %s: %s", input, err)
	}

	if flag.NArg() == 1 {
		showTrailer(doc)
		return
	}
	for _, arg := range flag.Args()[1:] {
		switch arg {
		case "xref":
			showXref(doc)
		case "trailer":
			showTrailer(doc)
		case "encrypt":
			showEncrypt(doc)
		case "pages":
			showPages(input)
		case "outline":
			showOutline(input)
		default:
			num, err := strconv.Atoi(arg)
			if err != nil {
				fatal("unknown selector %q", arg)
			}
			showObject(doc, num)
		}
	}
}

func showXref(doc file.PDFFile) {
	nums := make([]int, 0, len(doc.XrefTable))
	for n := range doc.XrefTable {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	fmt.Printf("xref (%d objects)\n", len(nums))
	for _, n := range nums {
		o := doc.XrefTable[n]
		fmt.Printf("%5d: %s\n", n, shortType(o))
	}
}

func shortType(o model.Object) string {
	switch o := o.(type) {
	case model.ObjDict:
		if t, ok := o["Type"].(model.ObjName); ok {
			return "dict /" + string(t)
		}
		return "dict"
	case model.ObjStream:
		if t, ok := o.Args["Type"].(model.ObjName); ok {
			return "stream /" + string(t)
		}
		return "stream"
	case model.ObjArray:
		return fmt.Sprintf("array[%d]", len(o))
	case nil, model.ObjNull:
		return "null"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", o), "model.Obj")
	}
}

func showTrailer(doc file.PDFFile) {
	fmt.Printf("trailer\n<<\n  /Root %d %d R\n", doc.Root.ObjectNumber, doc.Root.GenerationNumber)
	if doc.Info != nil {
		fmt.Printf("  /Info %d %d R\n", doc.Info.ObjectNumber, doc.Info.GenerationNumber)
	}
	if doc.Encrypt != nil {
		fmt.Printf("  /Encrypt <<...>>\n")
	}
	if doc.ID[0] != "" {
		fmt.Printf("  /ID [<%x> <%x>]\n", doc.ID[0], doc.ID[1])
	}
	fmt.Println(">>")
}

func showEncrypt(doc file.PDFFile) {
	if doc.Encrypt == nil {
		fmt.Println("no encryption")
		return
	}
	e := doc.Encrypt
	fmt.Printf("encryption\n  /Filter %s\n  /V %d\n  /Length %d\n", e.Filter, e.V, e.Length)
}

func showObject(doc file.PDFFile, num int) {
	o, ok := doc.XrefTable[num]
	if !ok {
		fmt.Printf("%d 0 obj: free\n", num)
		return
	}
	fmt.Printf("%d 0 obj\n", num)
	printObject(o, 0)
	fmt.Println("endobj")
}

func printObject(o model.Object, depth int) {
	ind := strings.Repeat("  ", depth)
	switch o := o.(type) {
	case model.ObjStream:
		printObject(o.Args, depth)
		content := o.Content
		if !*noDecode {
			keep := func(obj parser.Object) (parser.Object, error) { return obj, nil }
			filters, err := parser.ParseFilters(o.Args["Filter"], o.Args["DecodeParms"], keep)
			if err == nil {
				if decoded, err := (model.Stream{StreamDict: model.StreamDict{Filter: filters}, Content: o.Content}).Decode(); err == nil {
					content = decoded
				}
			}
		}
		fmt.Printf("%sstream (%d bytes)\n", ind, len(content))
		if *rawBinary {
			os.Stdout.Write(content)
			fmt.Println()
		}
	case model.ObjDict:
		fmt.Printf("%s<<\n", ind)
		names := make([]string, 0, len(o))
		for k := range o {
			names = append(names, string(k))
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Printf("%s  /%s %s\n", ind, k, inlineObject(o[model.Name(k)]))
		}
		fmt.Printf("%s>>\n", ind)
	default:
		fmt.Printf("%s%s\n", ind, inlineObject(o))
	}
}

func inlineObject(o model.Object) string {
	switch o := o.(type) {
	case nil, model.ObjNull:
		return "null"
	case model.ObjName:
		return "/" + string(o)
	case model.ObjInt:
		return strconv.Itoa(int(o))
	case model.ObjFloat:
		return strconv.FormatFloat(float64(o), 'g', -1, 32)
	case model.ObjBool:
		return strconv.FormatBool(bool(o))
	case model.ObjStringLiteral:
		return "(" + string(o) + ")"
	case model.ObjHexLiteral:
		return fmt.Sprintf("<%x>", string(o))
	case model.ObjIndirectRef:
		return fmt.Sprintf("%d %d R", o.ObjectNumber, o.GenerationNumber)
	case model.ObjArray:
		parts := make([]string, len(o))
		for i, e := range o {
			parts[i] = inlineObject(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case model.ObjDict:
		names := make([]string, 0, len(o))
		for k := range o {
			names = append(names, string(k))
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, k := range names {
			parts[i] = "/" + k + " " + inlineObject(o[model.Name(k)])
		}
		return "<<" + strings.Join(parts, " ") + ">>"
	case model.ObjStream:
		return fmt.Sprintf("%s stream(%d)", inlineObject(o.Args), len(o.Content))
	default:
		return fmt.Sprintf("%v", o)
	}
}

// showPages and showOutline use the higher-level reader, which resolves
// the page tree and bookmarks into their model form.
func showPages(input string) {
	doc, _, err := reader.ParsePDFFile(input, reader.Options{UserPassword: *password})
	if err != nil {
		fatal("%s", err)
	}
	for i, page := range doc.Catalog.Pages.Flatten() {
		box := page.EffectiveMediaBox()
		fmt.Printf("page %d: MediaBox [%g %g %g %g] contents %d stream(s) annots %d\n",
			i+1, box.Llx, box.Lly, box.Urx, box.Ury, len(page.Contents), len(page.Annots))
	}
}

func showOutline(input string) {
	doc, _, err := reader.ParsePDFFile(input, reader.Options{UserPassword: *password})
	if err != nil {
		fatal("%s", err)
	}
	outline := doc.Catalog.Outlines
	if outline == nil || outline.First == nil {
		fmt.Println("no outline")
		return
	}
	var walk func(item *model.OutlineItem, depth int)
	walk = func(item *model.OutlineItem, depth int) {
		for ; item != nil; item = item.Next {
			fmt.Printf("%s%s\n", strings.Repeat("  ", depth), item.Title)
			if item.First != nil {
				walk(item.First, depth+1)
			}
		}
	}
	walk(outline.First, 0)
}
