package model_test

import (
	"os"
	"strings"
	"testing"

	"github.com/lucidpdf/core/model"
	"github.com/lucidpdf/core/reader"
)

func TestRC4Basic(t *testing.T) {
	var doc model.Document
	doc.Catalog.Pages.Kids = []model.PageNode{&model.PageObject{Contents: []model.ContentStream{
		{Stream: model.Stream{Content: []byte(strings.Repeat("dlmskd", 10))}},
	}}}
	up, op := "dlà&#mks", "elmzk89.ek"
	for _, v := range [...]model.EncryptionAlgorithm{model.Key40, model.KeyExt} {
		for _, p := range [...]model.UserPermissions{
			model.PermissionPrint,
			model.PermissionModify,
			model.PermissionCopy,
			model.PermissionAdd,
			model.PermissionFill,
			model.PermissionExtract,
			model.PermissionAssemble,
			model.PermissionPrintDigital,
		} {
			enc := model.Encrypt{V: v, P: p}
			enc = doc.UseStandardEncryptionHandler(enc, up, op, true)
			f, err := os.Create("test/rc4.pdf")
			if err != nil {
				t.Fatal(err)
			}
			err = doc.Write(f, &enc)
			if err != nil {
				t.Error(err)
			}
			f.Close()

			_, _, err = reader.ParsePDFFile("test/rc4.pdf", reader.Options{UserPassword: up})
			if err != nil {
				t.Error(err)
			}
			_, _, err = reader.ParsePDFFile("test/rc4.pdf", reader.Options{UserPassword: op})
			if err != nil {
				t.Error(err)
			}
			_, _, err = reader.ParsePDFFile("test/rc4.pdf", reader.Options{UserPassword: op + "4"})
			if err == nil {
				t.Errorf("expected error")
			}
			_, _, err = reader.ParsePDFFile("test/rc4.pdf", reader.Options{UserPassword: up + "4"})
			if err == nil {
				t.Errorf("expected error")
			}
		}
	}
}
