package validation

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/sources/memory"
	"github.com/goliatone/go-autocomplete/pkg/testsupport"
)

func newService(t *testing.T) *autocomplete.Service {
	t.Helper()
	cfg := autocomplete.DefaultConfig()
	return testsupport.NewService(t, autocomplete.FieldType{
		Name:   "person",
		Source: memory.New(testsupport.People()...),
		Config: cfg,
	})
}

func boolPtr(v bool) *bool { return &v }

func TestValidateSelections(t *testing.T) {
	svc := newService(t)
	fields := []Field{
		{FieldType: "person", FieldName: "lead", Overrides: autocomplete.Overrides{Required: boolPtr(true)}},
		{FieldType: "person", FieldName: "members", Overrides: autocomplete.Overrides{Multiselect: boolPtr(true)}},
		{FieldType: "person", FieldName: "reviewer", Overrides: autocomplete.Overrides{Disabled: boolPtr(true)}},
	}

	tests := []struct {
		name       string
		values     url.Values
		wantIssues []Issue
		wantValues map[string][]string
	}{
		{
			name:   "valid",
			values: url.Values{"lead": {"10"}, "members": {"30", "", "5"}, "reviewer": {"99"}},
			wantValues: map[string][]string{
				"lead":    {"10"},
				"members": {"30", "5"},
			},
		},
		{
			name:   "required lead missing",
			values: url.Values{"lead": {"undefined"}},
			wantIssues: []Issue{
				{Field: "lead", Code: CodeRequired, Message: "This field is required."},
			},
			wantValues: map[string][]string{"lead": {}, "members": {}},
		},
		{
			name:   "single select with two values",
			values: url.Values{"lead": {"10", "20"}},
			wantIssues: []Issue{
				{Field: "lead", Code: CodeSingleValue, Message: "Select a single value."},
			},
			wantValues: map[string][]string{"lead": {}, "members": {}},
		},
		{
			name:   "unknown member",
			values: url.Values{"lead": {"10"}, "members": {"20", "404"}},
			wantIssues: []Issue{
				{
					Field:   "members",
					Code:    CodeInvalidChoice,
					Key:     "404",
					Message: "Select a valid choice. 404 is not one of the available choices.",
				},
			},
			wantValues: map[string][]string{"lead": {"10"}, "members": {"20"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSelections(testsupport.Context(), svc, tt.values, fields...)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got.Valid != (len(tt.wantIssues) == 0) {
				t.Fatalf("valid mismatch: %v with issues %#v", got.Valid, got.Issues)
			}
			if diff := cmp.Diff(tt.wantIssues, got.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantValues, got.Values); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateSelections_UnknownFieldType(t *testing.T) {
	_, err := ValidateSelections(testsupport.Context(), newService(t), url.Values{}, Field{FieldType: "team", FieldName: "team"})
	if err == nil {
		t.Fatalf("expected error for unknown field type")
	}
}

func TestResult_IssuesFor(t *testing.T) {
	res := Result{Issues: []Issue{{Field: "a", Code: CodeRequired}, {Field: "b", Code: CodeRequired}}}
	if got := res.IssuesFor("b"); len(got) != 1 || got[0].Field != "b" {
		t.Fatalf("unexpected issues %#v", got)
	}
}
