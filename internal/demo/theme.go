package demo

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-autocomplete/pkg/renderers/htmx"
)

// DefaultThemeName is the bundled theme used by the themed renderer.
const DefaultThemeName = "harbor"

func harborManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":       "#0f766e",
			"brand-muted": "#ccfbf1",
			"radius":      "0.5rem",
		},
		Templates: map[string]string{
			htmx.PartialComponent: htmx.TemplateComponent,
			htmx.PartialItemList:  htmx.TemplateItemList,
			htmx.PartialToggle:    htmx.TemplateToggle,
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{
				"surface":     "#111827",
				"text":        "#f9fafb",
				"border":      "#374151",
				"muted":       "#9ca3af",
				"brand-muted": "#134e4a",
			}},
		},
	}
}

// manifestSelector resolves selections from manifests registered with a
// go-theme registry.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
}

func newManifestSelector(manifests ...*theme.Manifest) (*manifestSelector, error) {
	registry := theme.NewRegistry()
	sel := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("demo: register theme %q: %w", manifest.Name, err)
		}
		sel.manifests[manifest.Name] = manifest
	}
	return sel, nil
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = DefaultThemeName
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("demo: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("demo: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
