package htmx

import (
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/sources/memory"
	"github.com/goliatone/go-autocomplete/pkg/testsupport"
)

func personField(cfg autocomplete.Config) autocomplete.FieldType {
	return autocomplete.FieldType{
		Name:   "person",
		Source: memory.New(testsupport.People()...),
		Config: cfg,
	}
}

func withEndpoints(w autocomplete.Widget) autocomplete.Widget {
	w.Endpoints = autocomplete.EndpointsFor(autocomplete.DefaultBasePath, w.FieldType)
	return w
}

func newRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()
	renderer, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func values(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		value, _ := testsupport.Attr(n, "value")
		out = append(out, value)
	}
	return out
}

func TestRenderComponent_SelectionInputsAndChips(t *testing.T) {
	svc := testsupport.NewService(t, personField(autocomplete.Config{Multiselect: true, Label: "Members"}))
	res, err := svc.Component(testsupport.Context(), autocomplete.ComponentRequest{Request: autocomplete.Request{
		FieldType: "person",
		FieldName: "members",
		Values:    []string{"20", "10"},
	}})
	if err != nil {
		t.Fatalf("component: %v", err)
	}
	res.Widget = withEndpoints(res.Widget)

	out, err := newRenderer(t).RenderComponent(testsupport.Context(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	frag := testsupport.MustParseFragment(t, out)

	if diff := cmp.Diff([]string{"20", "10"}, values(frag.Inputs("members"))); diff != "" {
		t.Fatalf("hidden inputs mismatch (-want +got):\n%s", diff)
	}

	chips := frag.FindAll(func(n *html.Node) bool { return testsupport.HasClass(n, "chip__label") })
	labels := make([]string, 0, len(chips))
	for _, chip := range chips {
		labels = append(labels, testsupport.Text(chip))
	}
	if diff := cmp.Diff([]string{"Alan Turing", "Ada Lovelace"}, labels); diff != "" {
		t.Fatalf("chip order mismatch (-want +got):\n%s", diff)
	}

	root := frag.ByID("members_ac_container")
	if root == nil {
		t.Fatalf("expected container element, got:\n%s", out)
	}
	if got, _ := testsupport.Attr(root, "data-autocomplete-toggleurl"); got != "/autocomplete/person/toggle" {
		t.Fatalf("unexpected toggle url %q", got)
	}

	input := frag.ByID("members__textinput")
	if input == nil {
		t.Fatalf("expected text input")
	}
	if got, _ := testsupport.Attr(input, "hx-get"); got != "/autocomplete/person/items" {
		t.Fatalf("unexpected items url %q", got)
	}
	if got, _ := testsupport.Attr(input, "hx-vals"); got != res.Widget.TextInputHxVals() {
		t.Fatalf("hx-vals mismatch: %q", got)
	}

	list := frag.ByID("members__items")
	if got, _ := testsupport.Attr(list, "aria-multiselectable"); got != "true" {
		t.Fatalf("expected multiselectable listbox")
	}
	if label := frag.Find(func(n *html.Node) bool { return n.Data == "label" }); label == nil || testsupport.Text(label) != "Members" {
		t.Fatalf("expected field label")
	}
}

func TestRenderItems_MarksSelectedAndHighlights(t *testing.T) {
	svc := testsupport.NewService(t, personField(autocomplete.Config{
		Multiselect:         true,
		MinimumSearchLength: 1,
		MaxResults:          2,
	}))
	res, err := svc.Items(testsupport.Context(), autocomplete.ItemsRequest{
		Request: autocomplete.Request{FieldType: "person", FieldName: "members", Values: []string{"10"}},
		Search:  "a",
	})
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	res.Widget = withEndpoints(res.Widget)

	out, err := newRenderer(t).RenderItems(testsupport.Context(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	frag := testsupport.MustParseFragment(t, out)

	options := frag.FindAll(func(n *html.Node) bool {
		role, _ := testsupport.Attr(n, "role")
		return role == "option"
	})
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d:\n%s", len(options), out)
	}

	ada := frag.ByID(autocomplete.ItemElementID("members", "10"))
	if ada == nil {
		t.Fatalf("expected option for key 10")
	}
	if !testsupport.HasClass(ada, "selected") {
		t.Fatalf("expected selected class on Ada")
	}
	if got, _ := testsupport.Attr(ada, "aria-selected"); got != "true" {
		t.Fatalf("aria-selected = %q", got)
	}
	if got, _ := testsupport.Attr(ada, "hx-vals"); !strings.Contains(got, `"item":"10"`) {
		t.Fatalf("expected item in hx-vals, got %q", got)
	}
	if got := testsupport.InnerHTML(ada); got != `<span class="highlight">A</span>da Lovelace` {
		t.Fatalf("unexpected highlighted label %q", got)
	}

	more := frag.Find(func(n *html.Node) bool { return testsupport.HasClass(n, "autocomplete__more") })
	if more == nil {
		t.Fatalf("expected more results message")
	}
	if got := testsupport.Text(more); got != "Showing 2 of 4 items. Narrow your search for more results." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRenderItems_TooShortShowsHint(t *testing.T) {
	svc := testsupport.NewService(t, personField(autocomplete.DefaultConfig()))
	res, err := svc.Items(testsupport.Context(), autocomplete.ItemsRequest{
		Request: autocomplete.Request{FieldType: "person", FieldName: "lead"},
		Search:  "ad",
	})
	if err != nil {
		t.Fatalf("items: %v", err)
	}

	out, err := newRenderer(t).RenderItems(testsupport.Context(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Type at least 3 characters") {
		t.Fatalf("expected hint, got:\n%s", out)
	}
	if strings.Contains(out, `role="option"`) {
		t.Fatalf("expected no options when query is too short")
	}
}

func TestRenderToggle_SwapsOutOfBand(t *testing.T) {
	svc := testsupport.NewService(t, personField(autocomplete.Config{Multiselect: true}))
	renderer := newRenderer(t)

	cases := []struct {
		name          string
		remove        bool
		wantOptionOOB bool
	}{
		{name: "option click", remove: false, wantOptionOOB: false},
		{name: "chip remove", remove: true, wantOptionOOB: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Toggle(testsupport.Context(), autocomplete.ToggleRequest{
				Request: autocomplete.Request{FieldType: "person", FieldName: "members", Values: []string{"10", "20"}},
				Item:    "20",
				Remove:  tc.remove,
			})
			if err != nil {
				t.Fatalf("toggle: %v", err)
			}
			res.Widget = withEndpoints(res.Widget)

			out, err := renderer.RenderToggle(testsupport.Context(), res)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			frag := testsupport.MustParseFragment(t, out)

			if diff := cmp.Diff([]string{"10"}, values(frag.Inputs("members"))); diff != "" {
				t.Fatalf("hidden inputs mismatch (-want +got):\n%s", diff)
			}

			option := frag.ByID(autocomplete.ItemElementID("members", "20"))
			selection := frag.ByID("members")
			if option == nil || selection == nil {
				t.Fatalf("expected option and selection, got:\n%s", out)
			}
			_, optionOOB := testsupport.Attr(option, "hx-swap-oob")
			_, selectionOOB := testsupport.Attr(selection, "hx-swap-oob")
			if optionOOB != tc.wantOptionOOB || selectionOOB == tc.wantOptionOOB {
				t.Fatalf("oob mismatch: option=%v selection=%v", optionOOB, selectionOOB)
			}
			if testsupport.HasClass(option, "selected") {
				t.Fatalf("expected toggled option to be deselected")
			}
		})
	}
}

func TestSearchHighlight_EscapesLabel(t *testing.T) {
	got := SearchHighlight("<b>Tom & Jerry</b>", "jer")
	want := `&lt;b&gt;Tom &amp; <span class="highlight">Jer</span>ry&lt;/b&gt;`
	if got != want {
		t.Fatalf("highlight mismatch:\nwant %s\ngot  %s", want, got)
	}
	if got := SearchHighlight("Ada", "zz"); got != "Ada" {
		t.Fatalf("expected plain label, got %q", got)
	}
}

func TestRenderItems_SanitizesCustomMessages(t *testing.T) {
	svc := testsupport.NewService(t, personField(autocomplete.Config{
		NoResultsText: `<script>alert(1)</script>Nobody <em>matches</em>`,
	}))
	res, err := svc.Items(testsupport.Context(), autocomplete.ItemsRequest{
		Request: autocomplete.Request{FieldType: "person", FieldName: "lead"},
		Search:  "zzz",
	})
	if err != nil {
		t.Fatalf("items: %v", err)
	}

	out, err := newRenderer(t).RenderItems(testsupport.Context(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("expected script stripped, got:\n%s", out)
	}
	if !strings.Contains(out, "Nobody <em>matches</em>") {
		t.Fatalf("expected allowed markup kept, got:\n%s", out)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	calls     []string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	return s.selection, nil
}

func TestNew_AppliesThemeSelection(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{StylesheetAssetKey: "autocomplete.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	renderer := newRenderer(t, WithThemeSelector(selector, "acme", "dark"))
	if diff := cmp.Diff([]string{"acme/dark"}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}

	svc := testsupport.NewService(t, personField(autocomplete.Config{}))
	res, err := svc.Component(testsupport.Context(), autocomplete.ComponentRequest{Request: autocomplete.Request{
		FieldType: "person",
		FieldName: "lead",
	}})
	if err != nil {
		t.Fatalf("component: %v", err)
	}

	out, err := renderer.RenderComponent(testsupport.Context(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	frag := testsupport.MustParseFragment(t, out)
	root := frag.ByID("lead_ac_container")
	if got, _ := testsupport.Attr(root, "style"); got != "--brand: #654321" {
		t.Fatalf("unexpected style %q", got)
	}
	if got, _ := testsupport.Attr(root, "data-theme"); got != "acme" {
		t.Fatalf("unexpected theme %q", got)
	}
	link := frag.Find(func(n *html.Node) bool { return n.Data == "link" })
	if link == nil {
		t.Fatalf("expected stylesheet link")
	}
	if got, _ := testsupport.Attr(link, "href"); got != "/assets/themes/acme/autocomplete.css" {
		t.Fatalf("unexpected stylesheet %q", got)
	}
}

func TestNew_ThemePartialOverridesTemplate(t *testing.T) {
	files := fstest.MapFS{
		"themes/acme/component.tmpl": {Data: []byte(`<div id="{{ ac.component_id }}" class="acme">{{ values|length }}</div>`)},
	}
	renderer := newRenderer(t,
		WithTemplatesFS(files),
		WithThemeConfig(&theme.RendererConfig{
			Theme:    "acme",
			Partials: map[string]string{PartialComponent: "themes/acme/component.tmpl"},
		}),
	)

	out, err := renderer.RenderComponent(testsupport.Context(), autocomplete.ComponentResult{
		Widget: autocomplete.Widget{FieldName: "lead", ComponentID: "lead"},
		Values: []string{"5"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<div id="lead" class="acme">1</div>` {
		t.Fatalf("unexpected output %q", out)
	}
}
