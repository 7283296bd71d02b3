package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the subtree pattern the handler is registered under.
func MountPath(fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(opts.BasePath, "/")
}

// RegisterRoutes registers the autocomplete handler on mux.
func RegisterRoutes(mux Mux, service *autocomplete.Service, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, service, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler using a pre-built Options
// value and returns the pattern used.
func RegisterRoutesWithOptions(mux Mux, service *autocomplete.Service, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("autocomplete: missing mux")
	}
	if service == nil {
		return "", fmt.Errorf("autocomplete: missing service")
	}
	h := NewWithOptions(service, opts)
	pattern := mountPath(h.opts.BasePath, "/")
	mux.Handle(pattern, h)
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if basePath == "" || basePath == "/" {
		if routePath == "" {
			return "/"
		}
		if !strings.HasPrefix(routePath, "/") {
			routePath = "/" + routePath
		}
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "" {
		return basePath
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	return basePath + routePath
}
