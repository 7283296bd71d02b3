package render

import (
	"github.com/goliatone/go-autocomplete/pkg/handler"
)

// Renderer is a named handler.Renderer. Several can be registered so an
// application picks one per deployment or per request.
type Renderer interface {
	handler.Renderer
	Name() string
	ContentType() string
}
