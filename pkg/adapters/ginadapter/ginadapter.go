// Package ginadapter mounts the autocomplete endpoints on a gin router.
package ginadapter

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/handler"
)

// Methods routed to the handler. Unsupported method and operation pairs are
// rejected by the handler itself.
var Methods = []string{http.MethodGet, http.MethodHead, http.MethodPut}

// Register mounts /{base}/:type/:op on router and returns the handler so the
// caller can inspect its options.
func Register(router gin.IRouter, service *autocomplete.Service, fns ...handler.OptionFn) (*handler.Handler, error) {
	if router == nil {
		return nil, fmt.Errorf("ginadapter: missing router")
	}
	if service == nil {
		return nil, fmt.Errorf("ginadapter: missing service")
	}

	h := handler.NewWithOptions(service, handler.NewOptions(fns...))
	group := router.Group(handler.MountPath(fns...))
	for _, method := range Methods {
		group.Handle(method, "/:type/:op", Wrap(h))
	}
	return h, nil
}

// Wrap adapts h to a gin handler reading the type and op route params.
func Wrap(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Serve(c.Writer, c.Request, c.Param("type"), c.Param("op"))
	}
}
