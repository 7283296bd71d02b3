package htmx

import (
	"html"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// templateFilters are registered on the default engine.
func templateFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"search_highlight": filterSearchHighlight,
		"make_id":          filterMakeID,
		"js_boolean":       filterJSBoolean,
	}
}

// SearchHighlight wraps the first case-insensitive match of search in label
// with a highlight span. The result is escaped HTML.
func SearchHighlight(label, search string) string {
	parts := autocomplete.Highlight(label, search)
	if !parts.Matched() {
		return html.EscapeString(label)
	}
	return html.EscapeString(parts.Before) +
		`<span class="highlight">` + html.EscapeString(parts.Match) + `</span>` +
		html.EscapeString(parts.After)
}

func filterSearchHighlight(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	search := ""
	if param != nil {
		search = param.String()
	}
	return pongo2.AsSafeValue(SearchHighlight(in.String(), search)), nil
}

func filterMakeID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(autocomplete.MakeID(in.String())), nil
}

func filterJSBoolean(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsTrue() {
		return pongo2.AsValue("true"), nil
	}
	return pongo2.AsValue("false"), nil
}
