// Package autocomplete implements the server side of a progressively enhanced
// autocomplete / multiselect form control.
//
// Selection state is never stored on the server. Every request carries the
// currently selected keys as repeated form values; the package decodes them,
// reconciles toggles against them and hands render-ready records to a
// fragment renderer. Field types are registered once at startup in a Registry
// and looked up by name for every request.
//
// The package is transport agnostic: pkg/handler adapts it to net/http and
// pkg/renderers/htmx turns results into HTML fragments.
package autocomplete
