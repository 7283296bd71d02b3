package demo

import (
	"fmt"

	"github.com/goliatone/go-autocomplete/pkg/render"
	"github.com/goliatone/go-autocomplete/pkg/renderers/htmx"
)

// Renderer names registered by NewRenderers.
const (
	RendererPlain  = "htmx"
	RendererThemed = "htmx-themed"
)

// namedRenderer registers a configured htmx renderer under its own name.
type namedRenderer struct {
	*htmx.Renderer
	name string
}

func (n namedRenderer) Name() string { return n.name }

// NewRenderers registers the plain htmx renderer and a themed variant using
// the bundled theme.
func NewRenderers(variant string) (*render.Registry, error) {
	registry := render.NewRegistry()

	plain, err := htmx.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(plain); err != nil {
		return nil, err
	}

	selector, err := newManifestSelector(harborManifest())
	if err != nil {
		return nil, err
	}
	themed, err := htmx.New(htmx.WithThemeSelector(selector, DefaultThemeName, variant))
	if err != nil {
		return nil, fmt.Errorf("demo: themed renderer: %w", err)
	}
	if err := registry.Register(namedRenderer{Renderer: themed, name: RendererThemed}); err != nil {
		return nil, err
	}
	return registry, nil
}
