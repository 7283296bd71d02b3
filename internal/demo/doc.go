// Package demo wires the sample team form served by cmd/autocomplete-demo:
// people and teams stored in SQLite, timezones from the embedded list, field
// types declared in fields.yaml and widgets rendered by the htmx renderer.
package demo
