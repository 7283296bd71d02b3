package autocomplete

import (
	"context"
	"strings"
	"sync"
)

// recordingSource serves a fixed item list and records every call.
type recordingSource struct {
	mu        sync.Mutex
	items     []Item
	searches  []string
	fetches   [][]string
	fetchErr  error
	searchErr error
}

func newRecordingSource(items ...Item) *recordingSource {
	return &recordingSource{items: items}
}

func (s *recordingSource) Search(_ context.Context, query string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, query)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	var out []Item
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Label), strings.ToLower(query)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *recordingSource) FetchByKeys(_ context.Context, keys []string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches = append(s.fetches, append([]string(nil), keys...))
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}
	var out []Item
	for _, item := range s.items {
		if _, ok := wanted[item.Key]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
