// Command pdfinfo lists per-page inventories of a PDF file: fonts,
// images, shadings, patterns, form XObjects and media boxes.
//
//	pdfinfo [options] file.pdf [pages...]
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
)

var (
	password  = flag.String("p", "", "user password")
	showFonts = flag.Bool("f", false, "list fonts")
	showImg   = flag.Bool("i", false, "list images")
	showShade = flag.Bool("s", false, "list shadings")
	showPat   = flag.Bool("t", false, "list patterns")
	showForms = flag.Bool("x", false, "list form XObjects")
	showBoxes = flag.Bool("m", false, "list media boxes")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: pdfinfo [options] file.pdf [pages...]")
		os.Exit(1)
	}
	if !(*showFonts || *showImg || *showShade || *showPat || *showForms || *showBoxes) {
		// no selection: list everything
		*showFonts, *showImg, *showShade, *showPat, *showForms, *showBoxes = true, true, true, true, true, true
	}
	input := flag.Arg(0)

	doc, enc, err := reader.ParsePDFFile(input, reader.Options{UserPassword: *password})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %s\n", input, err)
		os.Exit(1)
	}

	fmt.Printf("%s:\n", input)
	if doc.Trailer.Info.Title != "" {
		fmt.Printf("Title: %s\n", doc.Trailer.Info.Title)
	}
	if enc != nil {
		fmt.Println("Encrypted")
	}

	pages := doc.Catalog.Pages.Flatten()
	fmt.Printf("Pages: %d\n", len(pages))

	selected := parsePages(flag.Args()[1:], len(pages))
	for _, num := range selected {
		printPage(num, pages[num-1])
	}
}

func parsePages(args []string, count int) []int {
	if len(args) == 0 {
		out := make([]int, count)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	var out []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n >= 1 && n <= count {
				out = append(out, n)
			}
		}
	}
	return out
}

func printPage(num int, page *model.PageObject) {
	fmt.Printf("\nPage %d:\n", num)
	if *showBoxes {
		box := page.EffectiveMediaBox()
		fmt.Printf("  MediaBox: [%g %g %g %g]", box.Llx, box.Lly, box.Urx, box.Ury)
		if r := page.EffectiveRotate(); r.Degrees() != 0 {
			fmt.Printf(" Rotate %d", r.Degrees())
		}
		fmt.Println()
	}
	res := page.EffectiveResources()
	if res == nil {
		return
	}
	if *showFonts {
		for _, name := range sortedNames(res.Font) {
			f := res.Font[name]
			fmt.Printf("  Font /%s: %s\n", name, fontDescription(f))
		}
	}
	if *showImg || *showForms {
		for _, name := range sortedNames(res.XObject) {
			switch xo := res.XObject[name].(type) {
			case *model.XObjectImage:
				if *showImg {
					fmt.Printf("  Image /%s: %dx%d %dbpc%s\n", name, xo.Width, xo.Height,
						xo.BitsPerComponent, filterSuffix(xo.Filter))
				}
			case *model.XObjectForm:
				if *showForms {
					fmt.Printf("  Form /%s: BBox [%g %g %g %g]\n", name,
						xo.BBox.Llx, xo.BBox.Lly, xo.BBox.Urx, xo.BBox.Ury)
				}
			case *model.XObjectTransparencyGroup:
				if *showForms {
					fmt.Printf("  Form /%s: transparency group\n", name)
				}
			}
		}
	}
	if *showShade {
		for _, name := range sortedNames(res.Shading) {
			fmt.Printf("  Shading /%s: %s\n", name, shadingDescription(res.Shading[name]))
		}
	}
	if *showPat {
		for _, name := range sortedNames(res.Pattern) {
			switch res.Pattern[name].(type) {
			case *model.TilingPatern:
				fmt.Printf("  Pattern /%s: tiling\n", name)
			case *model.ShadingPatern:
				fmt.Printf("  Pattern /%s: shading\n", name)
			}
		}
	}
}

func sortedNames[V any](m map[model.Name]V) []model.Name {
	out := make([]model.Name, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func fontDescription(f *model.FontDict) string {
	if f == nil {
		return "?"
	}
	switch ft := f.Subtype.(type) {
	case model.FontType1:
		return fmt.Sprintf("Type1 %s", ft.BaseFont)
	case model.FontTrueType:
		return fmt.Sprintf("TrueType %s", ft.BaseFont)
	case model.FontType3:
		return "Type3"
	case model.FontType0:
		return fmt.Sprintf("Type0 %s", ft.BaseFont)
	default:
		return "?"
	}
}

func shadingDescription(s *model.ShadingDict) string {
	if s == nil {
		return "?"
	}
	switch s.ShadingType.(type) {
	case model.FunctionBased:
		return "function based"
	case model.Axial:
		return "axial"
	case model.Radial:
		return "radial"
	case model.FreeForm:
		return "free-form mesh"
	case model.Lattice:
		return "lattice mesh"
	case model.Coons:
		return "coons mesh"
	case model.TensorProduct:
		return "tensor-product mesh"
	default:
		return "?"
	}
}

func filterSuffix(fs model.Filters) string {
	if len(fs) == 0 {
		return ""
	}
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f.Name)
	}
	return " [" + strings.Join(names, " ") + "]"
}
