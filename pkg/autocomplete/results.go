package autocomplete

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// MapSearchResults marks each item as selected when its key is part of the
// selection.
func MapSearchResults(items []Item, selection Selection) []DisplayItem {
	if len(items) == 0 {
		return []DisplayItem{}
	}
	selected := selection.set()
	out := make([]DisplayItem, 0, len(items))
	for _, item := range items {
		_, ok := selected[item.Key]
		out = append(out, DisplayItem{
			Key:      item.Key,
			Label:    item.Label,
			Selected: ok,
		})
	}
	return out
}

// CapResults truncates items to max entries and reports the untruncated count.
// A max of zero or less disables capping.
func CapResults(items []Item, max int) ([]Item, int) {
	total := len(items)
	if max > 0 && total > max {
		return items[:max], total
	}
	return items, total
}

// HighlightedLabel splits a label around the first match of a search query.
type HighlightedLabel struct {
	Before string `json:"before"`
	Match  string `json:"match"`
	After  string `json:"after"`
}

// Matched reports whether the query was found in the label.
func (h HighlightedLabel) Matched() bool {
	return h.Match != ""
}

var (
	matcherOnce sync.Once
	matcherMu   sync.Mutex
	matcher     *search.Matcher
)

func caseInsensitiveMatcher() *search.Matcher {
	matcherOnce.Do(func() {
		matcher = search.New(language.Und, search.IgnoreCase)
	})
	return matcher
}

// Highlight locates the first case-insensitive occurrence of query in label.
// When nothing matches the whole label is returned in Before.
func Highlight(label, query string) HighlightedLabel {
	if query == "" || label == "" {
		return HighlightedLabel{Before: label}
	}
	start, end := indexFold(label, query)
	if start < 0 || end <= start {
		return HighlightedLabel{Before: label}
	}
	return HighlightedLabel{
		Before: label[:start],
		Match:  label[start:end],
		After:  label[end:],
	}
}

// ContainsFold reports whether query occurs in s ignoring case.
func ContainsFold(s, query string) bool {
	if query == "" {
		return true
	}
	start, _ := indexFold(s, query)
	return start >= 0
}

func indexFold(s, query string) (int, int) {
	matcherMu.Lock()
	defer matcherMu.Unlock()
	return caseInsensitiveMatcher().IndexString(s, query)
}
