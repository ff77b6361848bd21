package fonts

import (
	"fmt"
	"testing"

	"github.com/lucidpdf/core/fonts/standardfonts"
	"github.com/lucidpdf/core/model"
)

func TestStandard(t *testing.T) {
	for name, builtin := range standardfonts.Fonts {
		f := builtin.WesternType1Font()
		font := BuildFont(&model.FontDict{Subtype: f})
		fmt.Println(name, font.GetWidth('u', 12))
	}
}
