package autocomplete

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Default display strings. %(name)s placeholders are substituted by Messages.
const (
	DefaultNoResultsText   = "No results found."
	DefaultMoreResultsText = "Showing %(page_size)s of %(total)s items. Narrow your search for more results."
	DefaultTypeAtLeastText = "Type at least %(n)s characters"

	DefaultMinimumSearchLength = 3
	DefaultMaxResults          = 100
)

// Override keys accepted from the request when a field type allows them.
const (
	OverrideMultiselect = "multiselect"
	OverrideRequired    = "required"
	OverrideDisabled    = "disabled"
	OverridePlaceholder = "placeholder"
)

// DefaultOverridable lists the settings a request may override unless the
// field type declares its own allow-list.
var DefaultOverridable = []string{
	OverrideMultiselect,
	OverrideRequired,
	OverrideDisabled,
	OverridePlaceholder,
}

var knownOverrides = map[string]struct{}{
	OverrideMultiselect: {},
	OverrideRequired:    {},
	OverrideDisabled:    {},
	OverridePlaceholder: {},
}

// NamePattern constrains field type names; they end up in routes and element
// identifiers.
var NamePattern = regexp.MustCompile(`^[a-zA-Z_$][0-9a-zA-Z_$]*$`)

// Config holds the display and behaviour settings of a field type.
type Config struct {
	Label               string `json:"label,omitempty" yaml:"label"`
	Placeholder         string `json:"placeholder,omitempty" yaml:"placeholder"`
	ComponentPrefix     string `json:"component_prefix,omitempty" yaml:"component_prefix"`
	Required            bool   `json:"required,omitempty" yaml:"required"`
	Disabled            bool   `json:"disabled,omitempty" yaml:"disabled"`
	Multiselect         bool   `json:"multiselect,omitempty" yaml:"multiselect"`
	Indicator           bool   `json:"indicator,omitempty" yaml:"indicator"`
	MinimumSearchLength int    `json:"minimum_search_length" yaml:"minimum_search_length"`
	// MaxResults caps the rendered search results; zero means unlimited.
	// DefaultConfig starts at DefaultMaxResults.
	MaxResults      int    `json:"max_results,omitempty" yaml:"max_results"`
	NoResultsText   string `json:"no_results_text,omitempty" yaml:"no_results_text"`
	MoreResultsText string `json:"more_results_text,omitempty" yaml:"more_results_text"`
	TypeAtLeastText string `json:"type_at_least_text,omitempty" yaml:"type_at_least_text"`
}

// DefaultConfig returns the settings used when a field type leaves them unset.
func DefaultConfig() Config {
	return Config{
		MinimumSearchLength: DefaultMinimumSearchLength,
		MaxResults:          DefaultMaxResults,
		NoResultsText:       DefaultNoResultsText,
		MoreResultsText:     DefaultMoreResultsText,
		TypeAtLeastText:     DefaultTypeAtLeastText,
	}
}

func (c Config) withDefaults() Config {
	if c.NoResultsText == "" {
		c.NoResultsText = DefaultNoResultsText
	}
	if c.MoreResultsText == "" {
		c.MoreResultsText = DefaultMoreResultsText
	}
	if c.TypeAtLeastText == "" {
		c.TypeAtLeastText = DefaultTypeAtLeastText
	}
	return c
}

// GuardFunc inspects a request before any item lookups happen. A non-nil
// error denies the request.
type GuardFunc func(r *http.Request) error

// FieldType is a registered autocomplete declaration: where items come from
// and how the control behaves. FieldType values are validated once by
// Registry.Register and treated as read-only afterwards.
type FieldType struct {
	Name   string
	Source ItemSource
	Config Config

	// Overridable lists the Config settings a request may override. Nil means
	// DefaultOverridable; an empty non-nil slice disables overrides.
	Overridable []string

	// Guard runs in addition to any handler-wide guard.
	Guard GuardFunc

	// ExtraSearchParams are added to the search input's hx-vals. Values are
	// JavaScript expressions evaluated by the client and must not contain
	// single quotes.
	ExtraSearchParams map[string]string
}

// Validate reports configuration problems wrapped in
// ErrInvalidFieldConfiguration.
func (f FieldType) Validate() error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFieldConfiguration)
	}
	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidFieldConfiguration, name, NamePattern.String())
	}
	if f.Source == nil {
		return fmt.Errorf("%w: field type %q has no item source", ErrInvalidFieldConfiguration, name)
	}
	if f.Config.MinimumSearchLength < 0 {
		return fmt.Errorf("%w: field type %q has negative minimum search length", ErrInvalidFieldConfiguration, name)
	}
	if f.Config.MaxResults < 0 {
		return fmt.Errorf("%w: field type %q has negative max results", ErrInvalidFieldConfiguration, name)
	}
	for _, key := range f.Overridable {
		if _, ok := knownOverrides[key]; !ok {
			return fmt.Errorf("%w: field type %q allows unknown override %q", ErrInvalidFieldConfiguration, name, key)
		}
	}
	for key, value := range f.ExtraSearchParams {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: field type %q has an empty extra search param name", ErrInvalidFieldConfiguration, name)
		}
		if strings.Contains(value, "'") {
			return fmt.Errorf("%w: extra search param %q of %q contains a single quote", ErrInvalidFieldConfiguration, key, name)
		}
	}
	return nil
}

// AllowsOverride reports whether key may be overridden per request.
func (f FieldType) AllowsOverride(key string) bool {
	allowed := f.Overridable
	if allowed == nil {
		allowed = DefaultOverridable
	}
	for _, candidate := range allowed {
		if candidate == key {
			return true
		}
	}
	return false
}

// Overrides carries per-request values for the allow-listed settings. Nil
// fields leave the field type's setting untouched.
type Overrides struct {
	Multiselect *bool
	Required    *bool
	Disabled    *bool
	Placeholder *string
}

// Resolve applies the allowed overrides on top of the field type config.
func (f FieldType) Resolve(o Overrides) Config {
	cfg := f.Config.withDefaults()
	if o.Multiselect != nil && f.AllowsOverride(OverrideMultiselect) {
		cfg.Multiselect = *o.Multiselect
	}
	if o.Required != nil && f.AllowsOverride(OverrideRequired) {
		cfg.Required = *o.Required
	}
	if o.Disabled != nil && f.AllowsOverride(OverrideDisabled) {
		cfg.Disabled = *o.Disabled
	}
	if o.Placeholder != nil && f.AllowsOverride(OverridePlaceholder) {
		cfg.Placeholder = *o.Placeholder
	}
	return cfg
}
