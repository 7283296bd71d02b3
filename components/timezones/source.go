package timezones

import (
	"context"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Source serves timezones to autocomplete widgets.
type Source struct {
	opts  Options
	zones []string
	index map[string]struct{}
}

// NewSource builds a source over the configured zones, or the embedded list
// when none are given.
func NewSource(fns ...OptionFn) (*Source, error) {
	opts := NewOptions(fns...)
	zones := opts.Zones
	if zones == nil {
		loaded, err := DefaultZones()
		if err != nil {
			return nil, err
		}
		zones = loaded
	}
	index := make(map[string]struct{}, len(zones))
	for _, zone := range zones {
		index[zone] = struct{}{}
	}
	return &Source{opts: opts, zones: zones, index: index}, nil
}

// Options returns a copy of the source configuration.
func (s *Source) Options() Options {
	return NewOptions(func(o *Options) { *o = s.opts })
}

func (s *Source) Search(ctx context.Context, query string) ([]autocomplete.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toItems(Search(s.zones, query, s.opts.Limit, s.opts.EmptySearchMode)), nil
}

func (s *Source) FetchByKeys(ctx context.Context, keys []string) ([]autocomplete.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]autocomplete.Item, 0, len(keys))
	for _, key := range keys {
		if _, ok := s.index[key]; !ok {
			continue
		}
		out = append(out, autocomplete.Item{Key: key, Label: Label(key)})
	}
	return out, nil
}

// FieldType returns a field type named name backed by a new Source.
func FieldType(name string, fns ...OptionFn) (autocomplete.FieldType, error) {
	source, err := NewSource(fns...)
	if err != nil {
		return autocomplete.FieldType{}, err
	}
	if name == "" {
		name = DefaultFieldTypeName
	}
	return autocomplete.FieldType{
		Name:   name,
		Source: source,
		Config: source.opts.Config,
	}, nil
}

func toItems(zones []string) []autocomplete.Item {
	out := make([]autocomplete.Item, 0, len(zones))
	for _, zone := range zones {
		out = append(out, autocomplete.Item{Key: zone, Label: Label(zone)})
	}
	return out
}
