// Package validation checks submitted autocomplete values the way a form
// would before accepting them.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Issue codes.
const (
	CodeRequired      = "required"
	CodeSingleValue   = "single_value"
	CodeInvalidChoice = "invalid_choice"
)

// Field names one widget of the submitted form.
type Field struct {
	FieldType string
	FieldName string
	Overrides autocomplete.Overrides
}

// Issue is a validation error attached to a field.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for a submission.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
	// Values holds, per field name, the submitted keys the source resolved,
	// in submission order. Disabled fields are left out.
	Values map[string][]string `json:"values"`
}

// IssuesFor returns the issues reported for fieldName.
func (r Result) IssuesFor(fieldName string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Field == fieldName {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateSelections checks the values submitted for each field against its
// resolved configuration and its item source. Only infrastructure failures
// (unknown field types, source errors) are returned as errors.
func ValidateSelections(ctx context.Context, service *autocomplete.Service, values url.Values, fields ...Field) (Result, error) {
	if service == nil {
		return Result{}, errors.New("validation: service is required")
	}
	result := Result{Valid: true, Values: make(map[string][]string, len(fields))}

	for _, f := range fields {
		field, err := service.FieldType(f.FieldType)
		if err != nil {
			return Result{}, fmt.Errorf("validation: field %s: %w", f.FieldName, err)
		}
		cfg := field.Resolve(f.Overrides)
		if cfg.Disabled {
			continue
		}

		submitted := autocomplete.DecodeSelection(values[f.FieldName]).Encode()
		if !cfg.Multiselect && len(submitted) > 1 {
			result.add(Issue{Field: f.FieldName, Code: CodeSingleValue, Message: "Select a single value."})
			result.Values[f.FieldName] = []string{}
			continue
		}

		known := []string{}
		if len(submitted) > 0 {
			res, err := service.Component(ctx, autocomplete.ComponentRequest{Request: autocomplete.Request{
				FieldType: f.FieldType,
				FieldName: f.FieldName,
				Values:    submitted,
				Overrides: f.Overrides,
			}})
			if err != nil {
				return Result{}, fmt.Errorf("validation: field %s: %w", f.FieldName, err)
			}
			known = res.Values
		}
		for _, key := range missing(submitted, known) {
			result.add(Issue{
				Field:   f.FieldName,
				Code:    CodeInvalidChoice,
				Key:     key,
				Message: fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", key),
			})
		}
		if cfg.Required && len(submitted) == 0 {
			result.add(Issue{Field: f.FieldName, Code: CodeRequired, Message: "This field is required."})
		}
		result.Values[f.FieldName] = known
	}
	return result, nil
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

func missing(submitted, known []string) []string {
	index := make(map[string]struct{}, len(known))
	for _, key := range known {
		index[key] = struct{}{}
	}
	var out []string
	for _, key := range submitted {
		if _, ok := index[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}
