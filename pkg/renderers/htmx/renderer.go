package htmx

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/handler"
	rendertemplate "github.com/goliatone/go-autocomplete/pkg/render/template"
	"github.com/goliatone/go-autocomplete/pkg/render/template/pongo"
)

// Theme partial keys that replace the bundled templates.
const (
	PartialComponent = "autocomplete.component"
	PartialItemList  = "autocomplete.items"
	PartialToggle    = "autocomplete.toggle"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	theme            *theme.RendererConfig
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy replaces the sanitizer applied to custom message strings.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithThemeConfig sets a resolved theme directly.
func WithThemeConfig(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithThemeSelector resolves name and variant through selector when the
// renderer is built.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// Renderer renders widget fragments with pongo2 templates. It implements
// handler.Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	theme     rendererTheme
	names     map[string]string
}

var _ handler.Renderer = (*Renderer)(nil)

// New constructs the htmx renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	if cfg.selector != nil {
		selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("htmx renderer: select theme %q: %w", cfg.themeName, err)
		}
		cfg.theme = ThemeConfigFromSelection(selection)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
			pongo.WithFilters(templateFilters()),
		)
		if err != nil {
			return nil, fmt.Errorf("htmx renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	names := map[string]string{
		PartialComponent: TemplateComponent,
		PartialItemList:  TemplateItemList,
		PartialToggle:    TemplateToggle,
	}
	if cfg.theme != nil {
		for key := range names {
			if partial := strings.TrimSpace(cfg.theme.Partials[key]); partial != "" {
				names[key] = partial
			}
		}
	}

	return &Renderer{
		templates: renderer,
		policy:    cfg.policy,
		theme:     buildThemeContext(cfg.theme),
		names:     names,
	}, nil
}

func (r *Renderer) Name() string {
	return "htmx"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderItems renders the listbox options for a search.
func (r *Renderer) RenderItems(_ context.Context, res autocomplete.ItemsResult) (string, error) {
	options := make([]map[string]any, 0, len(res.Items))
	for _, item := range res.Items {
		options = append(options, r.optionContext(res.Widget, item, false))
	}
	return r.render(PartialItemList, map[string]any{
		"ac":           r.widgetContext(res.Widget, res.Messages),
		"search":       res.Search,
		"show":         res.Show,
		"options":      options,
		"too_short":    res.TooShort,
		"no_results":   res.NoResults,
		"more_results": res.MoreResults,
	})
}

// RenderToggle renders the updated selection region and the toggled option.
// When SwapOOB is set the selection is the main swap and the option goes out
// of band; otherwise the reverse.
func (r *Renderer) RenderToggle(_ context.Context, res autocomplete.ToggleResult) (string, error) {
	return r.render(PartialToggle, map[string]any{
		"ac":        r.widgetContext(res.Widget, res.Messages),
		"values":    res.Values,
		"chips":     r.chipContexts(res.Widget, res.Selected),
		"option":    r.optionContext(res.Widget, res.Item, res.SwapOOB),
		"swap_oob":  res.SwapOOB,
		"selection": !res.SwapOOB,
	})
}

// RenderComponent renders the whole widget.
func (r *Renderer) RenderComponent(_ context.Context, res autocomplete.ComponentResult) (string, error) {
	return r.render(PartialComponent, map[string]any{
		"ac":     r.widgetContext(res.Widget, res.Messages),
		"values": res.Values,
		"chips":  r.chipContexts(res.Widget, res.Selected),
	})
}

func (r *Renderer) render(partial string, data map[string]any) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("htmx renderer: template renderer is nil")
	}
	name := r.names[partial]
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("htmx renderer: render %s: %w", partial, err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Renderer) widgetContext(w autocomplete.Widget, msgs autocomplete.Messages) map[string]any {
	id := w.ComponentID
	return map[string]any{
		"component_id":       id,
		"field_name":         w.FieldName,
		"field_type":         w.FieldType,
		"component_prefix":   w.ComponentPrefix,
		"container_id":       id + autocomplete.SuffixContainer,
		"textinput_id":       id + autocomplete.SuffixTextInput,
		"items_id":           id + autocomplete.SuffixItems,
		"info_id":            id + autocomplete.SuffixInfo,
		"sr_description_id":  id + autocomplete.SuffixSRDescription,
		"data_id":            id + autocomplete.SuffixData,
		"items_url":          w.Endpoints.Items,
		"toggle_url":         w.Endpoints.Toggle,
		"component_url":      w.Endpoints.Component,
		"label":              w.Config.Label,
		"placeholder":        w.Config.Placeholder,
		"multiselect":        w.Config.Multiselect,
		"required":           w.Config.Required,
		"disabled":           w.Config.Disabled,
		"indicator":          w.Config.Indicator,
		"hx_params":          w.HxParams(),
		"hx_vals":            w.HxVals(),
		"text_input_hx_vals": w.TextInputHxVals(),
		"data_json":          widgetDataJSON(w),
		"theme_style":        r.theme.CSSVarsStyle,
		"theme_stylesheet":   r.theme.Stylesheet,
		"theme_name":         r.theme.Name,
		"theme_json":         r.theme.JSON,
		"messages": map[string]any{
			"no_results":    sanitizeMessage(r.policy, msgs.NoResults),
			"more_results":  sanitizeMessage(r.policy, msgs.MoreResults),
			"type_at_least": sanitizeMessage(r.policy, msgs.TypeAtLeast),
		},
	}
}

func (r *Renderer) optionContext(w autocomplete.Widget, item autocomplete.DisplayItem, oob bool) map[string]any {
	return map[string]any{
		"id":       autocomplete.ItemElementID(w.ComponentID, item.Key),
		"key":      item.Key,
		"label":    item.Label,
		"selected": item.Selected,
		"hx_vals":  mergeHxVals(w.HxVals(), map[string]any{"item": item.Key}),
		"oob":      oob,
	}
}

func (r *Renderer) chipContexts(w autocomplete.Widget, selected []autocomplete.DisplayItem) []map[string]any {
	chips := make([]map[string]any, 0, len(selected))
	for _, item := range selected {
		removeVals := mergeHxVals(w.HxVals(), map[string]any{
			"item":   item.Key,
			"remove": true,
		})
		chips = append(chips, map[string]any{
			"key":            item.Key,
			"label":          item.Label,
			"remove_hx_vals": removeVals,
		})
	}
	return chips
}

// mergeHxVals adds extra entries to the JSON object produced by Widget.HxVals.
func mergeHxVals(base string, extra map[string]any) string {
	values := map[string]any{}
	if err := json.Unmarshal([]byte(base), &values); err != nil {
		values = map[string]any{}
	}
	for key, value := range extra {
		values[key] = value
	}
	data, err := json.Marshal(values)
	if err != nil {
		return base
	}
	return string(data)
}

func widgetDataJSON(w autocomplete.Widget) string {
	payload := struct {
		ComponentID string                 `json:"component_id"`
		FieldName   string                 `json:"field_name"`
		FieldType   string                 `json:"field_type"`
		Multiselect bool                   `json:"multiselect"`
		Endpoints   autocomplete.Endpoints `json:"endpoints"`
	}{
		ComponentID: w.ComponentID,
		FieldName:   w.FieldName,
		FieldType:   w.FieldType,
		Multiselect: w.Config.Multiselect,
		Endpoints:   w.Endpoints,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}
