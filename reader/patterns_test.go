package reader

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lucidpdf/core/model"
)

func TestCS(t *testing.T) {
	file := "datatest/CMYKSpot_OP.pdf"
	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}

	doc, _, err := ParsePDF(f, "")
	if err != nil {
		t.Fatal(err)
	}

	m := map[*model.ColorSpace]int{}
	var walkCs func(cs model.ColorSpace)
	walkCs = func(cs model.ColorSpace) {
		m[&cs]++
		switch cs := cs.(type) {
		case model.ColorSpaceSeparation:
			walkCs(cs.AlternateSpace)
		case *model.ColorSpaceICCBased:
			walkCs(cs.Alternate)
		case model.ColorSpaceDeviceN:
			walkCs(cs.AlternateSpace)
			if cs.Attributes != nil {
				for _, col := range cs.Attributes.Colorants {
					walkCs(col)
				}
				walkCs(cs.Attributes.Process.ColorSpace)
			}
		case model.ColorSpaceUncoloredPattern:
			walkCs(cs.UnderlyingColorSpace)
		}
	}
	for _, page := range doc.Catalog.Pages.Flatten() {
		if page.Resources == nil {
			continue
		}
		for _, cs := range page.Resources.ColorSpace {
			walkCs(cs)
		}
		for _, sh := range page.Resources.Shading {
			fmt.Printf("%T\n", sh.ShadingType)
		}
		for _, pat := range page.Resources.Pattern {
			if sh, ok := pat.(*model.ShadingPatern); ok {
				fmt.Printf("%T\n", sh.Shading.ShadingType)
			}
		}
	}
	fmt.Println("Total color spaces:", len(m))
}

func walkShadings(doc model.Document) (nbAxial, nbCoons int) {
	axials := map[*model.ShadingDict]int{}
	coons := map[*model.ShadingDict]int{}
	analyseShading := func(sh *model.ShadingDict) {
		switch sub := sh.ShadingType.(type) {
		case model.Axial:
			axials[sh]++
			fmt.Println("Axial:", sub.Coords)
		case model.Radial:
			fmt.Println("Radial:", sub.Coords)
		case model.Coons:
			coons[sh]++
			fmt.Println("Coons:", sub.BitsPerFlag, sub.BitsPerComponent, sub.BitsPerCoordinate)
		case model.FunctionBased:
			fmt.Println("FunctionBased:", sub.Domain)
		}
	}
	for _, page := range doc.Catalog.Pages.Flatten() {
		if page.Resources == nil {
			continue
		}
		for _, sh := range page.Resources.Shading {
			analyseShading(sh)
		}
		for _, pat := range page.Resources.Pattern {
			if pat, ok := pat.(*model.ShadingPatern); ok {
				analyseShading(pat.Shading)
			}
		}
	}
	return len(axials), len(coons)
}

func TestShading6(t *testing.T) {
	_, nbCoons := walkShadings(pdfSpec)
	if nbCoons != 2 {
		t.Errorf("expected 2 reference to a Coons (type 6) Shading, got %d", nbCoons)
	}
}

func TestWriteShadings(t *testing.T) {
	for _, file := range []string{
		"datatest/Shading2.pdf",
	} {
		f, err := os.Open(file)
		if err != nil {
			t.Fatal(err)
		}
		doc, _, err := ParsePDF(f, "")
		if err != nil {
			t.Fatal(err)
		}
		f.Close()

		out, err := os.Create(file + ".pdf")
		if err != nil {
			t.Fatal(err)
		}
		defer out.Close()

		ti := time.Now()
		err = doc.Write(out, nil)
		if err != nil {
			t.Fatal(err)
		}
		fmt.Println("	PDF wrote to disk in", time.Since(ti))
		reread, err := os.Open(file + ".pdf")
		if err != nil {
			t.Fatal(err)
		}
		_, _, err = ParsePDF(reread, "")
		reread.Close()
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestPatternTiling(t *testing.T) {
	tps := map[*model.TilingPatern]int{}
	for _, page := range pdfSpec.Catalog.Pages.Flatten() {
		if page.Resources == nil {
			continue
		}
		for _, pat := range page.Resources.Pattern {
			if pat, ok := pat.(*model.TilingPatern); ok {
				tps[pat]++
			}
		}
	}
	if len(tps) != 13 {
		t.Errorf("expected 13 tiling patterns, got %d", len(tps))
	}
}
