package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"go.uber.org/zap"
)

// Operation names used as the last path segment.
const (
	OpItems     = "items"
	OpToggle    = "toggle"
	OpComponent = "component"
)

// Renderer turns operation results into HTML fragments.
type Renderer interface {
	RenderItems(ctx context.Context, res autocomplete.ItemsResult) (string, error)
	RenderToggle(ctx context.Context, res autocomplete.ToggleResult) (string, error)
	RenderComponent(ctx context.Context, res autocomplete.ComponentResult) (string, error)
}

// Handler dispatches {base}/{field_type}/{operation} requests to a Service.
type Handler struct {
	service *autocomplete.Service
	opts    Options
	base    string
}

// New builds a handler with default options plus any overrides.
func New(service *autocomplete.Service, fns ...OptionFn) *Handler {
	return NewWithOptions(service, NewOptions(fns...))
}

// NewWithOptions builds a handler from a pre-constructed Options value.
func NewWithOptions(service *autocomplete.Service, opts Options) *Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &Handler{
		service: service,
		opts:    opts,
		base:    mountPath(opts.BasePath, ""),
	}
}

// Options returns the effective handler options.
func (h *Handler) Options() Options {
	return h.opts
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil || r.URL == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	fieldType, op, ok := h.splitPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.Serve(w, r, fieldType, op)
}

// Serve runs op for fieldType. Routers that extract path parameters
// themselves call it directly.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, fieldType, op string) {
	allowed := allowedMethods(op)
	if allowed == nil {
		http.NotFound(w, r)
		return
	}
	if !methodAllowed(r.Method, allowed) {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	logger := h.opts.Logger.With(zap.String("field_type", fieldType), zap.String("operation", op))

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			h.writeGuardError(w, r, logger, err)
			return
		}
	}
	field, err := h.service.FieldType(fieldType)
	if err != nil {
		h.writeError(w, r, logger, err)
		return
	}
	if field.Guard != nil {
		if err := field.Guard(r); err != nil {
			h.writeGuardError(w, r, logger, err)
			return
		}
	}

	values, err := requestValues(r)
	if err != nil {
		h.writeError(w, r, logger, autocomplete.StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("autocomplete: parse request: %w", err),
		})
		return
	}

	base := h.baseRequest(fieldType, values)
	logger = logger.With(zap.String("field_name", base.FieldName))
	endpoints := autocomplete.EndpointsFor(h.base, fieldType)
	ctx := r.Context()
	names := h.opts.Params

	var (
		payload any
		html    func() (string, error)
	)
	switch op {
	case OpItems:
		res, err := h.service.Items(ctx, autocomplete.ItemsRequest{
			Request: base,
			Search:  values.Get(names.Search),
		})
		if err != nil {
			h.writeError(w, r, logger, err)
			return
		}
		res.Widget.Endpoints = endpoints
		payload = res
		html = func() (string, error) { return h.opts.Renderer.RenderItems(ctx, res) }
	case OpToggle:
		item := values.Get(names.Item)
		res, err := h.service.Toggle(ctx, autocomplete.ToggleRequest{
			Request: base,
			Item:    item,
			Remove:  ParseBool(values.Get(names.Remove)),
		})
		if err != nil {
			h.writeError(w, r, logger.With(zap.String("item", item)), err)
			return
		}
		res.Widget.Endpoints = endpoints
		payload = res
		html = func() (string, error) { return h.opts.Renderer.RenderToggle(ctx, res) }
	case OpComponent:
		res, err := h.service.Component(ctx, autocomplete.ComponentRequest{Request: base})
		if err != nil {
			h.writeError(w, r, logger, err)
			return
		}
		res.Widget.Endpoints = endpoints
		payload = res
		html = func() (string, error) { return h.opts.Renderer.RenderComponent(ctx, res) }
	}

	if h.opts.Renderer == nil || wantsJSON(r, values.Get(names.Format)) {
		writeJSON(w, r, http.StatusOK, payload)
		return
	}

	body, err := html()
	if err != nil {
		h.writeError(w, r, logger, fmt.Errorf("autocomplete: render %s: %w", op, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(body))
}

func (h *Handler) splitPath(path string) (string, string, bool) {
	rest := path
	if h.base != "/" {
		if !strings.HasPrefix(path, h.base+"/") {
			return "", "", false
		}
		rest = strings.TrimPrefix(path, h.base)
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func allowedMethods(op string) []string {
	switch op {
	case OpItems, OpComponent:
		return []string{http.MethodGet, http.MethodHead}
	case OpToggle:
		return []string{http.MethodGet, http.MethodHead, http.MethodPut}
	default:
		return nil
	}
}

func methodAllowed(method string, allowed []string) bool {
	for _, candidate := range allowed {
		if method == candidate {
			return true
		}
	}
	return false
}

func wantsJSON(r *http.Request, format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return true
	case "html":
		return false
	}
	accept := strings.ToLower(r.Header.Get("Accept"))
	if accept == "" || r.Header.Get("HX-Request") != "" {
		return false
	}
	jsonAt := strings.Index(accept, "application/json")
	if jsonAt < 0 {
		return false
	}
	htmlAt := strings.Index(accept, "text/html")
	return htmlAt < 0 || jsonAt < htmlAt
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code := autocomplete.StatusCode(err)
	switch {
	case code >= http.StatusInternalServerError:
		logger.Error("autocomplete request failed", zap.Int("status", code), zap.Error(err))
	case errors.Is(err, autocomplete.ErrItemNotFound):
		logger.Warn("toggled item not found", zap.Int("status", code), zap.Error(err))
	default:
		logger.Debug("autocomplete request rejected", zap.Int("status", code), zap.Error(err))
	}
	h.respondError(w, r, code)
}

func (h *Handler) writeGuardError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code := guardStatus(err)
	logger.Debug("autocomplete request denied", zap.Int("status", code), zap.Error(err))
	h.respondError(w, r, code)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, code int) {
	if h.opts.Renderer == nil || wantsJSON(r, r.URL.Query().Get(h.opts.Params.Format)) {
		writeJSON(w, r, code, errorResponse{Error: http.StatusText(code), Status: code})
		return
	}
	http.Error(w, http.StatusText(code), code)
}

func guardStatus(err error) int {
	code := http.StatusForbidden
	var httpErr autocomplete.HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	return code
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
