package autocomplete

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingToggleTarget is returned when a toggle request does not name the
	// item being toggled.
	ErrMissingToggleTarget = errors.New("autocomplete: missing toggle target")
	// ErrMissingFieldName is returned when a request does not carry the form
	// field name used for the hidden inputs.
	ErrMissingFieldName = errors.New("autocomplete: missing field name")
	// ErrInvalidSelection is returned when a single-select field receives more
	// than one selected value.
	ErrInvalidSelection = errors.New("autocomplete: invalid selection")
	// ErrItemNotFound is returned when the toggled key does not resolve through
	// the item source.
	ErrItemNotFound = errors.New("autocomplete: item not found")
	// ErrUnknownFieldType is returned when a request names a field type that was
	// never registered.
	ErrUnknownFieldType = errors.New("autocomplete: unknown field type")
	// ErrInvalidFieldConfiguration is returned by Registry.Register when a field
	// type declaration is incomplete or inconsistent.
	ErrInvalidFieldConfiguration = errors.New("autocomplete: invalid field configuration")
	// ErrRegistrySealed is returned when registering after Seal.
	ErrRegistrySealed = errors.New("autocomplete: registry sealed")
	// ErrAccessDenied is returned by guards rejecting a request.
	ErrAccessDenied = errors.New("autocomplete: access denied")
)

// HTTPError lets errors choose the status code used for the response.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// StatusCode maps an error returned by this package to an HTTP status code.
// Errors implementing HTTPError win over the sentinel classification.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	switch {
	case errors.Is(err, ErrMissingToggleTarget),
		errors.Is(err, ErrMissingFieldName),
		errors.Is(err, ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrUnknownFieldType):
		return http.StatusNotFound
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
