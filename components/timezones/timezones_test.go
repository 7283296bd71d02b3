package timezones

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/google/go-cmp/cmp"
)

func TestLoadZones_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`)

	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"America/New_York", "Europe/Paris", "UTC"}, zones); diff != "" {
		t.Fatalf("unexpected zones (-want +got):\n%s", diff)
	}
}

func TestDefaultZones_ContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) < 200 {
		t.Fatalf("expected a reasonably sized list, got %d", len(zones))
	}

	for _, expected := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !containsString(zones, expected) {
			t.Fatalf("expected zone %q to be present", expected)
		}
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	zones := []string{"Europe/Paris", "America/New_York", "UTC"}

	results := Search(zones, "eUrOpE/p", 10, EmptySearchNone)
	if len(results) != 1 || results[0] != "Europe/Paris" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearch_MatchesLabels(t *testing.T) {
	zones := []string{"Europe/Paris", "America/New_York", "UTC"}

	results := Search(zones, "new york", 0, EmptySearchNone)
	if len(results) != 1 || results[0] != "America/New_York" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	zones := []string{"x/a/b", "a/b", "a/b/c", "c/d"}

	results := Search(zones, "a/b", 10, EmptySearchNone)
	if diff := cmp.Diff([]string{"a/b", "a/b/c", "x/a/b"}, results); diff != "" {
		t.Fatalf("unexpected ordering (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyQueryModes(t *testing.T) {
	zones := []string{"a", "b", "c", "d"}

	if results := Search(zones, "", 2, EmptySearchNone); len(results) != 0 {
		t.Fatalf("expected no results, got %#v", results)
	}
	if results := Search(zones, "  ", 2, EmptySearchTop); len(results) != 2 {
		t.Fatalf("expected 2 results, got %#v", results)
	}
}

func TestSource_SearchAndFetch(t *testing.T) {
	source, err := NewSource(WithZones([]string{"America/New_York", "America/Chicago", "UTC"}))
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	ctx := context.Background()

	items, err := source.Search(ctx, "america")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []autocomplete.Item{
		{Key: "America/Chicago", Label: "America/Chicago"},
		{Key: "America/New_York", Label: "America/New York"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	items, err = source.FetchByKeys(ctx, []string{"UTC", "Mars/Olympus"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if diff := cmp.Diff([]autocomplete.Item{{Key: "UTC", Label: "UTC"}}, items); diff != "" {
		t.Fatalf("fetch mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_HonoursCancellation(t *testing.T) {
	source, err := NewSource(WithZones([]string{"UTC"}))
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Search(ctx, "utc"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFieldType_TogglesThroughService(t *testing.T) {
	field, err := FieldType("", WithZones([]string{"Europe/Paris", "UTC"}))
	if err != nil {
		t.Fatalf("field type: %v", err)
	}
	if field.Name != DefaultFieldTypeName {
		t.Fatalf("unexpected name %q", field.Name)
	}

	reg := autocomplete.NewRegistry()
	reg.MustRegister(field)
	reg.Seal()
	svc := autocomplete.NewService(reg)

	res, err := svc.Toggle(context.Background(), autocomplete.ToggleRequest{
		Request: autocomplete.Request{FieldType: DefaultFieldTypeName, FieldName: "tz", Values: []string{"UTC"}},
		Item:    "Europe/Paris",
	})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if diff := cmp.Diff([]string{"Europe/Paris"}, res.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func containsString(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
