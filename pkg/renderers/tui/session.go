package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Field is one widget prompted during a session.
type Field struct {
	FieldType string
	FieldName string
	Values    []string
	Overrides autocomplete.Overrides
}

// Session drives autocomplete fields from a terminal. Every search and toggle
// goes through the same Service the HTTP handler uses, so selection rules
// match the browser widget.
type Session struct {
	service           *autocomplete.Service
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	pageSize          int
}

// New constructs a session with defaults (survey driver, JSON output).
func New(service *autocomplete.Service, options ...Option) (*Session, error) {
	if service == nil {
		return nil, errors.New("tui: service is required")
	}
	s := &Session{
		service:      service,
		outputFormat: OutputFormatJSON,
		theme:        Theme{SelectedMarker: "*"},
		pageSize:     10,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts each field in turn and returns the serialized selections keyed
// by field name.
func (s *Session) Run(ctx context.Context, fields ...Field) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	values := make(map[string][]string, len(fields))
	for _, field := range fields {
		selected, err := s.PromptField(ctx, field)
		if err != nil {
			return nil, err
		}
		values[field.FieldName] = selected
	}

	if s.submitTransformer != nil {
		var err error
		values, err = s.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return s.serialize(values)
}

// PromptField runs the search and toggle loop for one field until the user
// submits an empty search, and returns the final values.
func (s *Session) PromptField(ctx context.Context, field Field) ([]string, error) {
	request := autocomplete.Request{
		FieldType: field.FieldType,
		FieldName: field.FieldName,
		Values:    field.Values,
		Overrides: field.Overrides,
	}
	component, err := s.service.Component(ctx, autocomplete.ComponentRequest{Request: request})
	if err != nil {
		return nil, fmt.Errorf("tui: load %s: %w", field.FieldName, err)
	}
	widget := component.Widget
	values := component.Values
	selected := component.Selected

	if err := s.info(ctx, describeSelection(widget, selected)); err != nil {
		return nil, err
	}
	if widget.Config.Disabled {
		return values, nil
	}

	for {
		search, err := s.driver.Input(ctx, InputConfig{
			Message: s.theme.PromptPrefix + promptLabel(widget),
			Help:    component.Messages.TypeAtLeast,
		})
		if err != nil {
			return nil, err
		}
		search = strings.TrimSpace(search)
		if search == "" {
			if widget.Config.Required && len(values) == 0 {
				if err := s.info(ctx, "A value is required."); err != nil {
					return nil, err
				}
				continue
			}
			return values, nil
		}

		request.Values = values
		items, err := s.service.Items(ctx, autocomplete.ItemsRequest{Request: request, Search: search})
		if err != nil {
			return nil, fmt.Errorf("tui: search %s: %w", field.FieldName, err)
		}
		switch {
		case items.TooShort:
			err = s.info(ctx, items.Messages.TypeAtLeast)
		case items.NoResults:
			err = s.info(ctx, items.Messages.NoResults)
		case items.MoreResults:
			err = s.info(ctx, items.Messages.MoreResults)
		}
		if err != nil {
			return nil, err
		}
		if len(items.Items) == 0 {
			continue
		}

		var toggles []string
		if widget.Config.Multiselect {
			toggles, err = s.pickMany(ctx, widget, items.Items)
		} else {
			toggles, err = s.pickOne(ctx, widget, items.Items)
		}
		if err != nil {
			return nil, err
		}

		for _, key := range toggles {
			request.Values = values
			res, err := s.service.Toggle(ctx, autocomplete.ToggleRequest{Request: request, Item: key})
			if err != nil {
				return nil, fmt.Errorf("tui: toggle %s: %w", key, err)
			}
			values = res.Values
			selected = res.Selected
		}
		if len(toggles) > 0 {
			if err := s.info(ctx, describeSelection(widget, selected)); err != nil {
				return nil, err
			}
		}
	}
}

// pickOne offers a single choice plus a way back. Choosing the selected item
// again deselects it.
func (s *Session) pickOne(ctx context.Context, widget autocomplete.Widget, items []autocomplete.DisplayItem) ([]string, error) {
	options := make([]string, 0, len(items)+1)
	defaultIndex := -1
	for idx, item := range items {
		label := optionLabel(item)
		if item.Selected {
			label = s.theme.SelectedMarker + " " + label
			defaultIndex = idx
		}
		options = append(options, label)
	}
	options = append(options, "(back)")

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(widget),
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(items) {
		return nil, nil
	}
	return []string{items[idx].Key}, nil
}

// pickMany shows the results with the current selection checked and returns
// the keys whose state changed, in result order.
func (s *Session) pickMany(ctx context.Context, widget autocomplete.Widget, items []autocomplete.DisplayItem) ([]string, error) {
	options := make([]string, 0, len(items))
	var defaults []int
	for idx, item := range items {
		options = append(options, optionLabel(item))
		if item.Selected {
			defaults = append(defaults, idx)
		}
	}

	chosen, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptLabel(widget),
		Options:  options,
		Defaults: defaults,
		PageSize: s.pageSize,
	})
	if err != nil {
		return nil, err
	}

	want := make(map[int]bool, len(chosen))
	for _, idx := range chosen {
		want[idx] = true
	}
	var toggles []string
	for idx, item := range items {
		if want[idx] != item.Selected {
			toggles = append(toggles, item.Key)
		}
	}
	return toggles, nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) serialize(values map[string][]string) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(url.Values(values).Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func promptLabel(widget autocomplete.Widget) string {
	label := widget.Config.Label
	if label == "" {
		label = widget.FieldName
	}
	if widget.Config.Placeholder != "" {
		return fmt.Sprintf("%s (%s)", label, widget.Config.Placeholder)
	}
	return label
}

// optionLabel keeps labels unique so prompt answers map back to one item.
func optionLabel(item autocomplete.DisplayItem) string {
	return fmt.Sprintf("%s [%s]", item.Label, item.Key)
}

func describeSelection(widget autocomplete.Widget, selected []autocomplete.DisplayItem) string {
	label := widget.Config.Label
	if label == "" {
		label = widget.FieldName
	}
	if len(selected) == 0 {
		return label + ": (none)"
	}
	names := make([]string, 0, len(selected))
	for _, item := range selected {
		names = append(names, item.Label)
	}
	return label + ": " + strings.Join(names, ", ")
}

func prettyPrint(values map[string][]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(values[key], ","))
	}
	return b.String()
}
