// Package autocomplete is the quick start entry point: it re-exports the core
// types and wires a service, the htmx renderer and the HTTP handler in one
// call. The packages under pkg/ expose every piece separately.
package autocomplete

import (
	"fmt"

	core "github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/handler"
	"github.com/goliatone/go-autocomplete/pkg/renderers/htmx"
)

type (
	FieldType  = core.FieldType
	Config     = core.Config
	Item       = core.Item
	ItemSource = core.ItemSource
	Overrides  = core.Overrides
	Registry   = core.Registry
	Service    = core.Service
)

// DefaultConfig returns the settings used when a field type leaves them unset.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewService registers fields in a sealed registry and returns a service over
// it.
func NewService(fields ...FieldType) (*Service, error) {
	reg := core.NewRegistry()
	for _, field := range fields {
		if err := reg.Register(field); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	return core.NewService(reg), nil
}

// Mount registers the autocomplete endpoints on mux and returns the pattern
// used. Fragments are rendered by the bundled htmx renderer unless fns carry
// handler.WithRenderer.
func Mount(mux handler.Mux, service *Service, fns ...handler.OptionFn) (string, error) {
	renderer, err := htmx.New()
	if err != nil {
		return "", fmt.Errorf("autocomplete: default renderer: %w", err)
	}
	options := append([]handler.OptionFn{handler.WithRenderer(renderer)}, fns...)
	return handler.RegisterRoutes(mux, service, options...)
}
