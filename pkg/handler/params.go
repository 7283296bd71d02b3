package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// ParseBool reads a boolean flag the way the client sends it. Empty, "0",
// "false", "off" and "no" are false; any other value is true.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

// requestValues merges the query string with a form-encoded PUT or POST body.
func requestValues(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.Form, nil
}

func (h *Handler) baseRequest(fieldType string, values url.Values) autocomplete.Request {
	names := h.opts.Params
	fieldName := strings.TrimSpace(values.Get(names.FieldName))

	req := autocomplete.Request{
		FieldType:       fieldType,
		FieldName:       fieldName,
		ComponentPrefix: values.Get(names.ComponentPrefix),
		Params:          values,
	}
	if fieldName != "" {
		req.Values = values[fieldName]
	}
	req.Overrides = autocomplete.Overrides{
		Multiselect: boolParam(values, names.Multiselect),
		Required:    boolParam(values, names.Required),
		Disabled:    boolParam(values, names.Disabled),
		Placeholder: stringParam(values, names.Placeholder),
	}
	return req
}

func boolParam(values url.Values, name string) *bool {
	raw, ok := values[name]
	if !ok || len(raw) == 0 {
		return nil
	}
	value := ParseBool(raw[0])
	return &value
}

func stringParam(values url.Values, name string) *string {
	raw, ok := values[name]
	if !ok || len(raw) == 0 {
		return nil
	}
	value := raw[0]
	return &value
}
