// Package handler serves the autocomplete operations over net/http.
//
// Routes live under a base path (default /autocomplete):
//
//	GET      {base}/{field_type}/items
//	GET, PUT {base}/{field_type}/toggle
//	GET      {base}/{field_type}/component
//
// Responses are HTML fragments produced by the configured Renderer, or JSON
// when the client asks for it with format=json or an Accept header preferring
// application/json.
package handler
