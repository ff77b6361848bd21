package formfill

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lucidpdf/core/fonts"
	"github.com/lucidpdf/core/fonts/standardfonts"
	"github.com/lucidpdf/core/model"
)

func TestBreaks(t *testing.T) {
	s := strings.Repeat("84'(ร)รง,lkfiiiiiiiiiiiiiiiiiiiiii", 10)
	font, err := fonts.BuildFont(&model.FontDict{Subtype: standardfonts.Times_BoldItalic.WesternType1Font()})
	if err != nil {
		t.Fatal(err)
	}
	fmt.Println(strings.Join(breakLines(getHardBreaks(s), font, 8, 50), "\n"))

	fmt.Println(font.GetWidth('i', 10), font.GetWidth('8', 10))
}

func TestEncoding(t *testing.T) {
	fmt.Println(defaultFont.Subtype.(model.FontType1).Widths)
}
