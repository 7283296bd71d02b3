package handler

import (
	"net/http"

	"github.com/goliatone/go-autocomplete/internal/logging"
	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"go.uber.org/zap"
)

// GuardFunc inspects a request before the field type is resolved. A non-nil
// error denies it; errors implementing autocomplete.HTTPError choose the
// status code, anything else yields 403.
type GuardFunc func(r *http.Request) error

// ParamNames maps the logical request parameters to their wire names.
type ParamNames struct {
	FieldName       string
	ComponentPrefix string
	Search          string
	Item            string
	Remove          string
	Multiselect     string
	Required        string
	Disabled        string
	Placeholder     string
	Format          string
}

// DefaultParamNames returns the names sent by the bundled templates.
func DefaultParamNames() ParamNames {
	return ParamNames{
		FieldName:       "field_name",
		ComponentPrefix: "component_prefix",
		Search:          "search",
		Item:            "item",
		Remove:          "remove",
		Multiselect:     autocomplete.OverrideMultiselect,
		Required:        autocomplete.OverrideRequired,
		Disabled:        autocomplete.OverrideDisabled,
		Placeholder:     autocomplete.OverridePlaceholder,
		Format:          "format",
	}
}

func (p ParamNames) withDefaults() ParamNames {
	def := DefaultParamNames()
	fill := func(value *string, fallback string) {
		if *value == "" {
			*value = fallback
		}
	}
	fill(&p.FieldName, def.FieldName)
	fill(&p.ComponentPrefix, def.ComponentPrefix)
	fill(&p.Search, def.Search)
	fill(&p.Item, def.Item)
	fill(&p.Remove, def.Remove)
	fill(&p.Multiselect, def.Multiselect)
	fill(&p.Required, def.Required)
	fill(&p.Disabled, def.Disabled)
	fill(&p.Placeholder, def.Placeholder)
	fill(&p.Format, def.Format)
	return p
}

type Options struct {
	BasePath string
	Params   ParamNames
	Guard    GuardFunc
	// Renderer produces HTML fragments. Without one every response is JSON.
	Renderer Renderer
	Logger   *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath: autocomplete.DefaultBasePath,
		Params:   DefaultParamNames(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.BasePath == "" {
		opts.BasePath = autocomplete.DefaultBasePath
	}
	opts.Params = opts.Params.withDefaults()
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithParamNames(names ParamNames) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Params = names
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRenderer(renderer Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
