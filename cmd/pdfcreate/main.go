// Command pdfcreate builds a PDF from a text page-description file.
//
//	pdfcreate [options] out.pdf page1.txt [page2.txt...]
//
// Each input file describes one page: directive lines start with %%, the
// rest is the page's raw content stream.
//
//	%%MediaBox 0 0 612 792
//	%%Rotate 90
//	%%Font F1 Helvetica           (a standard font name, or a .ttf path)
//	%%Image Im1 photo.jpg
//	BT /F1 24 Tf 72 720 Td (Hello) Tj ET
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucidpdf/core/contentstream"
	"github.com/lucidpdf/core/fonts/standardfonts"
	"github.com/lucidpdf/core/model"
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		fatal("usage: pdfcreate out.pdf page.txt [page.txt...]")
	}
	output := flag.Arg(0)

	var kids []model.PageNode
	for _, name := range flag.Args()[1:] {
		page, err := buildPage(name)
		if err != nil {
			fatal("%s: %s", name, err)
		}
		kids = append(kids, page)
	}

	doc := model.Document{
		Catalog: model.Catalog{
			Pages: model.PageTree{Kids: kids},
		},
	}
	if err := doc.WriteFile(output, nil); err != nil {
		fatal("writing %s: %s", output, err)
	}
}

func buildPage(name string) (*model.PageObject, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	page := &model.PageObject{
		Resources: &model.ResourcesDict{
			Font:    make(map[model.Name]*model.FontDict),
			XObject: make(map[model.Name]model.XObject),
		},
	}
	var content strings.Builder

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "%%") {
			content.WriteString(line)
			content.WriteByte('\n')
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "%%MediaBox":
			if len(fields) != 5 {
				return nil, fmt.Errorf("%%%%MediaBox needs 4 numbers: %q", line)
			}
			var vals [4]float64
			for i, s := range fields[1:] {
				if vals[i], err = strconv.ParseFloat(s, 32); err != nil {
					return nil, err
				}
			}
			page.MediaBox = &model.Rectangle{
				Llx: model.Fl(vals[0]), Lly: model.Fl(vals[1]),
				Urx: model.Fl(vals[2]), Ury: model.Fl(vals[3]),
			}
		case "%%Rotate":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%%%%Rotate needs one number: %q", line)
			}
			deg, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, err
			}
			page.Rotate = model.NewRotation(deg)
		case "%%Font":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%%%%Font needs a name and a source: %q", line)
			}
			font, err := loadFont(fields[2])
			if err != nil {
				return nil, err
			}
			page.Resources.Font[model.Name(fields[1])] = font
		case "%%Image":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%%%%Image needs a name and a path: %q", line)
			}
			img, _, err := contentstream.ParseImageFile(fields[2])
			if err != nil {
				return nil, err
			}
			page.Resources.XObject[model.Name(fields[1])] = img
		default:
			return nil, fmt.Errorf("unknown directive %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	page.Contents = []model.ContentStream{
		{Stream: model.Stream{Content: []byte(content.String())}},
	}
	return page, nil
}

// loadFont resolves a font source: one of the 14 standard font names, or
// a TrueType file to embed.
func loadFont(src string) (*model.FontDict, error) {
	if metrics, ok := standardfonts.Fonts[src]; ok {
		t1 := metrics.WesternType1Font()
		return &model.FontDict{Subtype: t1}, nil
	}
	if strings.EqualFold(filepath.Ext(src), ".ttf") {
		content, err := ioutil.ReadFile(src)
		if err != nil {
			return nil, err
		}
		return trueTypeFont(filepath.Base(src), content), nil
	}
	return nil, fmt.Errorf("unknown font source %q (standard font name or .ttf file)", src)
}

// trueTypeFont wraps a raw TrueType program in a font dictionary with a
// WinAnsi encoding; widths are left to the viewer's fallback, the same
// best-effort contract the rest of this tool follows.
func trueTypeFont(name string, program []byte) *model.FontDict {
	return &model.FontDict{Subtype: model.FontTrueType{
		BaseFont: model.Name(strings.TrimSuffix(name, filepath.Ext(name))),
		Encoding: model.SimpleEncodingPredefined("WinAnsiEncoding"),
		FontDescriptor: model.FontDescriptor{
			FontName: model.Name(name),
			FontFile: &model.FontFile{
				Stream: model.Stream{Content: program},
			},
		},
	}}
}
