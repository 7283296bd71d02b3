// Package testsupport holds fixtures and helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// People returns the sample items used across handler and renderer tests.
func People() []autocomplete.Item {
	return []autocomplete.Item{
		autocomplete.NewItem(5, "Edsger Dijkstra"),
		autocomplete.NewItem(10, "Ada Lovelace"),
		autocomplete.NewItem(20, "Alan Turing"),
		autocomplete.NewItem(30, "Grace Hopper"),
	}
}

// NewService registers fields in a sealed registry and returns its service.
func NewService(t *testing.T, fields ...autocomplete.FieldType) *autocomplete.Service {
	t.Helper()

	reg := autocomplete.NewRegistry()
	for _, field := range fields {
		if err := reg.Register(field); err != nil {
			t.Fatalf("register %q: %v", field.Name, err)
		}
	}
	reg.Seal()
	return autocomplete.NewService(reg)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
