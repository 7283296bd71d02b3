// Package memory provides an ItemSource over a fixed list of items.
package memory

import (
	"context"
	"sync"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// MatchFunc decides whether item matches a search query.
type MatchFunc func(item autocomplete.Item, query string) bool

// MatchLabel matches items whose label contains the query, ignoring case.
func MatchLabel(item autocomplete.Item, query string) bool {
	return autocomplete.ContainsFold(item.Label, query)
}

// Source keeps items in insertion order. It is safe for concurrent use.
type Source struct {
	mu    sync.RWMutex
	items []autocomplete.Item
	index map[string]int
	match MatchFunc
}

// New creates a source matching labels case-insensitively.
func New(items ...autocomplete.Item) *Source {
	s := &Source{match: MatchLabel, index: make(map[string]int)}
	s.Add(items...)
	return s
}

// FromMap builds a source from key/label pairs, ordered by the keys slice.
func FromMap(keys []any, labels map[string]string) *Source {
	items := make([]autocomplete.Item, 0, len(keys))
	for _, key := range keys {
		k := autocomplete.KeyOf(key)
		items = append(items, autocomplete.Item{Key: k, Label: labels[k]})
	}
	return New(items...)
}

// WithMatcher replaces the search predicate and returns the source.
func (s *Source) WithMatcher(match MatchFunc) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match == nil {
		match = MatchLabel
	}
	s.match = match
	return s
}

// Add appends items. A key that already exists has its label replaced.
func (s *Source) Add(items ...autocomplete.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		if idx, ok := s.index[item.Key]; ok {
			s.items[idx] = item
			continue
		}
		s.index[item.Key] = len(s.items)
		s.items = append(s.items, item)
	}
}

// Len returns the number of items.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Source) Search(ctx context.Context, query string) ([]autocomplete.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]autocomplete.Item, 0)
	for _, item := range s.items {
		if s.match(item, query) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Source) FetchByKeys(ctx context.Context, keys []string) ([]autocomplete.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]autocomplete.Item, 0, len(keys))
	for _, key := range keys {
		if idx, ok := s.index[key]; ok {
			out = append(out, s.items[idx])
		}
	}
	return out, nil
}
