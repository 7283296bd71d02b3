package htmx

import (
	"io/fs"
	"testing"
)

func TestEmbeddedBundles(t *testing.T) {
	for _, name := range []string{TemplateComponent, TemplateItemList, TemplateToggle} {
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Fatalf("expected embedded template %s: %v", name, err)
		}
	}
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}
