// Package htmx renders autocomplete widgets as htmx-driven HTML fragments.
//
// The component template emits the whole widget; the items and toggle
// templates emit the partial responses swapped in by htmx. Templates are
// pongo2 files embedded in the package and may be replaced wholesale with
// WithTemplatesFS or per template through go-theme partials.
package htmx
