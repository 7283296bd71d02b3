package handler

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// RequireAuthenticated denies requests for which isAuthenticated reports
// false. Authentication itself stays with the host application.
func RequireAuthenticated(isAuthenticated func(r *http.Request) bool) GuardFunc {
	return func(r *http.Request) error {
		if isAuthenticated != nil && isAuthenticated(r) {
			return nil
		}
		return autocomplete.StatusError{
			Code: http.StatusForbidden,
			Err:  fmt.Errorf("%w: must be logged in to use autocomplete", autocomplete.ErrAccessDenied),
		}
	}
}

// Chain runs guards in order and returns the first denial.
func Chain(guards ...GuardFunc) GuardFunc {
	return func(r *http.Request) error {
		for _, guard := range guards {
			if guard == nil {
				continue
			}
			if err := guard(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// FieldGuard adapts a GuardFunc for use as autocomplete.FieldType.Guard.
func FieldGuard(guard GuardFunc) autocomplete.GuardFunc {
	if guard == nil {
		return nil
	}
	return autocomplete.GuardFunc(guard)
}
