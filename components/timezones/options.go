package timezones

import "github.com/goliatone/go-autocomplete/pkg/autocomplete"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

const DefaultFieldTypeName = "timezone"

type Options struct {
	// Limit caps the matches a single search returns. Zero means unlimited;
	// the field type's MaxResults still applies on top.
	Limit           int
	EmptySearchMode EmptySearchMode
	Config          autocomplete.Config

	Zones []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	cfg := autocomplete.DefaultConfig()
	cfg.MinimumSearchLength = 2
	cfg.MaxResults = 50
	cfg.Placeholder = "Search timezones"
	return Options{
		EmptySearchMode: EmptySearchNone,
		Config:          cfg,
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
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchNone
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	return opts
}

func WithLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Limit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

// WithConfig replaces the field type configuration used by FieldType.
func WithConfig(cfg autocomplete.Config) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Config = cfg
	}
}

func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if zones == nil {
			o.Zones = nil
			return
		}
		o.Zones = append([]string{}, zones...)
	}
}
