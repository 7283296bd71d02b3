package autocomplete

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Request carries what every endpoint reads from the client.
type Request struct {
	FieldType       string
	FieldName       string
	ComponentPrefix string
	// Values are the raw repeated values of the FieldName parameter.
	Values    []string
	Overrides Overrides
	// Params exposes the complete client parameter set to item sources.
	Params url.Values
}

// ItemsRequest asks for the dropdown list matching Search.
type ItemsRequest struct {
	Request
	Search string
}

// ItemsResult is the data contract of the dropdown list fragment.
type ItemsResult struct {
	Widget      Widget        `json:"widget"`
	Search      string        `json:"search"`
	Items       []DisplayItem `json:"items"`
	Total       int           `json:"total_results"`
	Show        bool          `json:"show"`
	TooShort    bool          `json:"query_too_short"`
	NoResults   bool          `json:"no_results"`
	MoreResults bool          `json:"more_results"`
	Messages    Messages      `json:"messages"`
}

// ToggleRequest asks to add or remove Item from the selection.
type ToggleRequest struct {
	Request
	Item string
	// Remove marks toggles that come from a chip's remove button.
	Remove bool
}

// ToggleResult is the data contract of the toggle fragment.
type ToggleResult struct {
	Widget Widget `json:"widget"`
	// Values populate the hidden inputs.
	Values []string `json:"values"`
	// Selected holds the chips in display order.
	Selected []DisplayItem `json:"selected"`
	// Item is the toggled entry with its new selected state.
	Item     DisplayItem `json:"item"`
	SwapOOB  bool        `json:"swap_oob"`
	Messages Messages    `json:"messages"`
}

// ComponentRequest asks for the complete widget markup.
type ComponentRequest struct {
	Request
}

// ComponentResult is the data contract of the full widget.
type ComponentResult struct {
	Widget   Widget        `json:"widget"`
	Values   []string      `json:"values"`
	Selected []DisplayItem `json:"selected"`
	Messages Messages      `json:"messages"`
}

// Service implements the items, toggle and component operations on top of a
// Registry. It keeps no state between calls.
type Service struct {
	registry *Registry
}

// NewService creates a service reading field types from registry.
func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

// Registry returns the registry backing the service.
func (s *Service) Registry() *Registry {
	return s.registry
}

// FieldType resolves a registered field type by name.
func (s *Service) FieldType(name string) (FieldType, error) {
	return s.registry.Lookup(name)
}

func (s *Service) prepare(ctx context.Context, req Request) (context.Context, FieldType, Widget, error) {
	field, err := s.FieldType(req.FieldType)
	if err != nil {
		return ctx, FieldType{}, Widget{}, err
	}
	fieldName := strings.TrimSpace(req.FieldName)
	if fieldName == "" {
		return ctx, FieldType{}, Widget{}, ErrMissingFieldName
	}
	prefix := req.ComponentPrefix
	if prefix == "" {
		prefix = field.Config.ComponentPrefix
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Params != nil {
		ctx = WithParams(ctx, req.Params)
	}
	cfg := field.Resolve(req.Overrides)
	return ctx, field, NewWidget(field, fieldName, prefix, cfg), nil
}

// Items runs the search for an items request. Queries shorter than the
// minimum search length never reach the item source.
func (s *Service) Items(ctx context.Context, req ItemsRequest) (ItemsResult, error) {
	ctx, field, widget, err := s.prepare(ctx, req.Request)
	if err != nil {
		return ItemsResult{}, err
	}
	cfg := widget.Config
	selection := DecodeSelection(req.Values)

	result := ItemsResult{
		Widget: widget,
		Search: req.Search,
		Items:  []DisplayItem{},
	}

	if utf8.RuneCountInString(req.Search) < cfg.MinimumSearchLength {
		result.TooShort = true
		result.Messages = NewMessages(cfg, 0, 0)
		return result, nil
	}

	found, err := field.Source.Search(ctx, req.Search)
	if err != nil {
		return ItemsResult{}, fmt.Errorf("autocomplete: search %q: %w", field.Name, err)
	}
	shown, total := CapResults(found, cfg.MaxResults)

	result.Show = true
	result.Items = MapSearchResults(shown, selection)
	result.Total = total
	result.NoResults = total == 0
	result.MoreResults = total > len(shown)
	result.Messages = NewMessages(cfg, len(shown), total)
	return result, nil
}

// Toggle reconciles the client selection with the toggled key. The toggled
// item and the current selection are resolved with a single FetchByKeys call.
func (s *Service) Toggle(ctx context.Context, req ToggleRequest) (ToggleResult, error) {
	ctx, field, widget, err := s.prepare(ctx, req.Request)
	if err != nil {
		return ToggleResult{}, err
	}
	if req.Item == "" {
		return ToggleResult{}, ErrMissingToggleTarget
	}

	current := DecodeSelection(req.Values)
	next, err := Reconcile(current, req.Item, widget.Config.Multiselect)
	if err != nil {
		return ToggleResult{}, err
	}

	fetched, err := field.Source.FetchByKeys(ctx, current.Union(req.Item))
	if err != nil {
		return ToggleResult{}, fmt.Errorf("autocomplete: fetch %q: %w", field.Name, err)
	}
	items := MapSearchResults(uniqueItems(fetched), next)

	target, ok := findDisplayItem(items, req.Item)
	if !ok {
		return ToggleResult{}, fmt.Errorf("%w: %q in %q", ErrItemNotFound, req.Item, field.Name)
	}

	selected := make([]DisplayItem, 0, len(next))
	for _, item := range items {
		if item.Selected {
			selected = append(selected, item)
		}
	}

	return ToggleResult{
		Widget:   widget,
		Values:   next.Encode(),
		Selected: OrderToggled(selected, current),
		Item:     target,
		SwapOOB:  req.Remove,
		Messages: NewMessages(widget.Config, 0, 0),
	}, nil
}

// Component resolves the selection for a full widget render. Keys the source
// no longer knows are dropped from the result.
func (s *Service) Component(ctx context.Context, req ComponentRequest) (ComponentResult, error) {
	ctx, field, widget, err := s.prepare(ctx, req.Request)
	if err != nil {
		return ComponentResult{}, err
	}

	selection := DecodeSelection(req.Values)
	if !widget.Config.Multiselect && selection.Len() > 1 {
		return ComponentResult{}, fmt.Errorf("%w: single-select field received %d values", ErrInvalidSelection, selection.Len())
	}

	result := ComponentResult{
		Widget:   widget,
		Values:   []string{},
		Selected: []DisplayItem{},
		Messages: NewMessages(widget.Config, 0, 0),
	}
	if selection.Len() == 0 {
		return result, nil
	}

	fetched, err := field.Source.FetchByKeys(ctx, selection.Encode())
	if err != nil {
		return ComponentResult{}, fmt.Errorf("autocomplete: fetch %q: %w", field.Name, err)
	}
	for _, item := range MapSearchResults(uniqueItems(fetched), selection) {
		if item.Selected {
			result.Selected = append(result.Selected, item)
		}
	}
	result.Selected = OrderToggled(result.Selected, selection)
	for _, item := range result.Selected {
		result.Values = append(result.Values, item.Key)
	}
	return result, nil
}

func uniqueItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.Key]; ok {
			continue
		}
		seen[item.Key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func findDisplayItem(items []DisplayItem, key string) (DisplayItem, bool) {
	for _, item := range items {
		if item.Key == key {
			return item, true
		}
	}
	return DisplayItem{}, false
}
