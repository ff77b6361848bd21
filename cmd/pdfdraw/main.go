// Command pdfdraw rasterizes pages of a PDF file to PNG images, or runs
// them through the text extractor.
//
//	pdfdraw [options] file.pdf [pages...]
//
// Page ranges are of the form N, N-M, N- or -M, comma-separated; with no
// range every page is processed. The output pattern uses %d for the page
// number.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucidpdf/core/draw"
	"github.com/lucidpdf/core/fonts"
	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader"
)

var (
	output    = flag.String("o", "out%d.png", "output file pattern, %d is replaced by the page number")
	dpi       = flag.Float64("r", 72, "resolution, in dots per inch")
	bands     = flag.Int("b", 1, "number of horizontal bands to render each page in")
	password  = flag.String("p", "", "user password")
	aa        = flag.Int("aa", 8, "antialias level (0, 2, 4 or 8)")
	textMode  = flag.Bool("t", false, "extract text instead of rasterizing")
	xmlMode   = flag.Bool("x", false, "extract text as XML, with positions")
	benchmark = flag.Bool("bench", false, "report per-page render times on stderr")
)

func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func fatal(format string, args ...interface{}) {
	warn(format, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fatal("usage: pdfdraw [options] file.pdf [pages...]")
	}
	input := flag.Arg(0)

	doc, _, err := reader.ParsePDFFile(input, reader.Options{UserPassword: *password})
	if err != nil {
		fatal("cannot open %s: %s", input, err)
	}
	pages := doc.Catalog.Pages.Flatten()

	selected, err := selectPages(flag.Args()[1:], len(pages))
	if err != nil {
		fatal("invalid page range: %s", err)
	}

	glyphs := fonts.NewGlyphCache(0)
	hadError := false
	for _, num := range selected {
		start := time.Now()
		if *xmlMode {
			err = extractXML(pages[num-1], num)
		} else if *textMode {
			err = extractText(pages[num-1])
		} else {
			err = renderPage(pages[num-1], num, glyphs)
		}
		if err != nil {
			warn("page %d: %s", num, err)
			hadError = true
			continue
		}
		if *benchmark {
			warn("page %d: %s", num, time.Since(start))
		}
	}
	if hadError {
		os.Exit(1)
	}
}

func renderPage(page *model.PageObject, num int, glyphs *fonts.GlyphCache) error {
	opts := draw.RenderOptions{DPI: model.Fl(*dpi), AA: *aa, Glyphs: glyphs}

	var pix *draw.Pixmap
	if *bands <= 1 {
		var err error
		pix, err = draw.RenderPage(page, opts)
		if err != nil {
			return err
		}
	} else {
		var err error
		pix, err = renderBanded(page, opts, *bands)
		if err != nil {
			return err
		}
	}

	name := fmt.Sprintf(strings.ReplaceAll(*output, "%d", "%[1]d"), num)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, pix.Image())
}

// renderBanded renders the page in horizontal strips, bounding the
// working pixmap size, and reassembles them.
func renderBanded(page *model.PageObject, opts draw.RenderOptions, n int) (*draw.Pixmap, error) {
	ctm, w, h := draw.PageTransform(page.EffectiveMediaBox(), page.EffectiveRotate(), opts.DPI)
	out := draw.NewPixmap(0, 0, w, h, 4)

	bandH := (h + n - 1) / n
	for i := 0; i < n; i++ {
		y := i * bandH
		hh := bandH
		if y+hh > h {
			hh = h - y
		}
		if hh <= 0 {
			break
		}
		band := draw.NewPixmap(0, y, w, hh, 4)
		band.ClearWhite()
		dev := draw.NewDrawDevice(band, opts.AA, opts.Glyphs)
		if err := draw.RunPage(page, dev, ctm, opts); err != nil {
			return nil, err
		}
		copy(out.Samples[y*w*4:(y+hh)*w*4], band.Samples)
	}
	return out, nil
}

func extractText(page *model.PageObject) error {
	ctm, _, _ := draw.PageTransform(page.EffectiveMediaBox(), page.EffectiveRotate(), 72)
	dev := draw.NewTextDevice()
	if err := draw.RunPage(page, dev, ctm, draw.RenderOptions{}); err != nil {
		return err
	}
	for _, span := range dev.Spans {
		fmt.Println(span.Text())
	}
	return nil
}

func extractXML(page *model.PageObject, num int) error {
	ctm, _, _ := draw.PageTransform(page.EffectiveMediaBox(), page.EffectiveRotate(), 72)
	dev := draw.NewTextDevice()
	if err := draw.RunPage(page, dev, ctm, draw.RenderOptions{}); err != nil {
		return err
	}
	fmt.Printf("<page number=%q>\n", strconv.Itoa(num))
	for _, span := range dev.Spans {
		fmt.Printf("  <span size=\"%g\">\n", span.Size)
		for _, c := range span.Chars {
			fmt.Printf("    <char x=\"%g\" y=\"%g\" c=%q/>\n", c.X, c.Y, string(c.Runes))
		}
		fmt.Println("  </span>")
	}
	fmt.Println("</page>")
	return nil
}

// selectPages expands comma-separated page ranges (N, N-M, N-, -M) into
// an ordered list of 1-based page numbers; no arguments selects all.
func selectPages(args []string, pageCount int) ([]int, error) {
	if len(args) == 0 {
		out := make([]int, pageCount)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	var out []int
	for _, arg := range args {
		for _, r := range strings.Split(arg, ",") {
			lo, hi, err := parseRange(r, pageCount)
			if err != nil {
				return nil, err
			}
			for p := lo; p <= hi; p++ {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func parseRange(r string, pageCount int) (int, int, error) {
	r = strings.TrimSpace(r)
	if r == "" {
		return 0, -1, fmt.Errorf("empty range")
	}
	dash := strings.IndexByte(r, '-')
	if dash < 0 {
		p, err := strconv.Atoi(r)
		if err != nil {
			return 0, -1, err
		}
		if p < 1 || p > pageCount {
			return 0, -1, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		return p, p, nil
	}
	lo, hi := 1, pageCount
	var err error
	if s := r[:dash]; s != "" {
		if lo, err = strconv.Atoi(s); err != nil {
			return 0, -1, err
		}
	}
	if s := r[dash+1:]; s != "" {
		if hi, err = strconv.Atoi(s); err != nil {
			return 0, -1, err
		}
	}
	if lo < 1 {
		lo = 1
	}
	if hi > pageCount {
		hi = pageCount
	}
	if lo > hi {
		return 0, -1, fmt.Errorf("range %q selects nothing", r)
	}
	return lo, hi, nil
}
