package pongo_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-autocomplete/pkg/render/template/pongo"
	"github.com/goliatone/go-autocomplete/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":        {Data: []byte(`Hello {{ name }}!`)},
		"use-filter.tmpl":   {Data: []byte(`{{ name|shout }}`)},
		"numbers.tmpl":      {Data: []byte(`{{ page.size }} of {{ page.total }}`)},
		"partials/row.tmpl": {Data: []byte(`<li>{{ row }}</li>`)},
		"with-include.tmpl": {Data: []byte(`<ul>{% for row in rows %}{% include "partials/row.tmpl" %}{% endfor %}</ul>`)},
		"escaped.tmpl":      {Data: []byte(`{{ label }}`)},
		"trimmed.tmpl":      {Data: []byte(`[{{ label|trim }}]`)},
	}
}

func newEngine(t *testing.T, opts ...pongo.Option) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(templatesFS())}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output result=%q written=%q", result, written)
	}
}

func TestEngine_WithFilters(t *testing.T) {
	engine := newEngine(t, pongo.WithFilters(map[string]pongo2.FilterFunction{
		"shout": func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.ToUpper(in.String()) + "!"), nil
		},
	}))

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_StructNumbersKeepIntegerText(t *testing.T) {
	engine := newEngine(t)
	type page struct {
		Size  int `json:"size"`
		Total int `json:"total"`
	}

	result, err := engine.RenderTemplate("numbers", map[string]any{"page": page{Size: 2, Total: 5}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "2 of 5" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_IncludeFromFSRoot(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("with-include", map[string]any{"rows": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escaped", map[string]any{"label": `<b>"x"</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngine_DefaultTrimFilter(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("trimmed", map[string]any{"label": "  spaced  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[spaced]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
