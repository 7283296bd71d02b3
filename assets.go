package autocomplete

import (
	"io/fs"

	"github.com/goliatone/go-autocomplete/pkg/renderers/htmx"
)

// AssetsFS exposes the widget stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(autocomplete.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return htmx.AssetsFS()
}

// EmbeddedTemplates exposes the htmx fragment templates so callers can copy
// and extend them.
func EmbeddedTemplates() fs.FS {
	return htmx.TemplatesFS()
}
