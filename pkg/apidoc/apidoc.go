// Package apidoc describes the autocomplete endpoints as an OpenAPI 3
// document so JSON clients can be generated or validated against them.
package apidoc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/handler"
)

const OpenAPIVersion = "3.0.3"

// Component schema names.
const (
	SchemaDisplayItem = "DisplayItem"
	SchemaWidget      = "Widget"
	SchemaMessages    = "Messages"
	SchemaItems       = "ItemsResult"
	SchemaToggle      = "ToggleResult"
	SchemaComponent   = "ComponentResult"
	SchemaError       = "Error"
)

type Option func(*config)

type config struct {
	title      string
	version    string
	basePath   string
	params     handler.ParamNames
	fieldTypes []string
}

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			cfg.version = trimmed
		}
	}
}

// WithBasePath matches handler.WithBasePath.
func WithBasePath(base string) Option {
	return func(cfg *config) {
		cfg.basePath = base
	}
}

// WithParamNames matches handler.WithParamNames.
func WithParamNames(names handler.ParamNames) Option {
	return func(cfg *config) {
		cfg.params = names
	}
}

// WithFieldTypes restricts the type path parameter to the given names.
func WithFieldTypes(names ...string) Option {
	return func(cfg *config) {
		cfg.fieldTypes = append([]string(nil), names...)
	}
}

// WithRegistry restricts the type path parameter to the registered names.
func WithRegistry(reg *autocomplete.Registry) Option {
	return func(cfg *config) {
		cfg.fieldTypes = reg.Names()
	}
}

// Build returns the document for the items, toggle and component endpoints.
func Build(options ...Option) *openapi3.T {
	cfg := config{
		title:    "Autocomplete API",
		version:  "1.0.0",
		basePath: autocomplete.DefaultBasePath,
		params:   handler.DefaultParamNames(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	params := cfg.params
	base := strings.TrimRight(strings.TrimSpace(cfg.basePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: "Server-rendered autocomplete widget endpoints. Every request echoes the widget identity and current selection.",
		},
		Components: &openapi3.Components{Schemas: componentSchemas()},
		Paths:      openapi3.NewPaths(),
	}

	typeParam := openapi3.NewPathParameter("type").
		WithDescription("Registered field type name.").
		WithSchema(typeSchema(cfg.fieldTypes))

	items := newOperation("getItems", "Search items", typeParam, params, SchemaItems)
	items.AddParameter(openapi3.NewQueryParameter(params.Search).
		WithDescription("Search text. Ignored when shorter than the field type's minimum search length.").
		WithSchema(openapi3.NewStringSchema()))
	doc.AddOperation(base+"/{type}/"+handler.OpItems, http.MethodGet, items)

	toggleParams := func(op *openapi3.Operation) *openapi3.Operation {
		op.AddParameter(openapi3.NewQueryParameter(params.Item).
			WithDescription("Key of the item to select or deselect.").
			WithRequired(true).
			WithSchema(openapi3.NewStringSchema()))
		op.AddParameter(openapi3.NewQueryParameter(params.Remove).
			WithDescription("Set when the toggle comes from a chip remove control.").
			WithSchema(openapi3.NewBoolSchema()))
		op.Responses.Set("404", errorResponse("The field type is not registered or the toggled item does not exist."))
		return op
	}
	toggleGet := toggleParams(newOperation("toggleItem", "Toggle an item", typeParam, params, SchemaToggle))
	doc.AddOperation(base+"/{type}/"+handler.OpToggle, http.MethodGet, toggleGet)

	togglePut := toggleParams(newOperation("toggleItemForm", "Toggle an item (form body)", typeParam, params, SchemaToggle))
	togglePut.Description = "Same as GET; parameters may also be sent as an application/x-www-form-urlencoded body."
	togglePut.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithSchema(formSchema(params), []string{"application/x-www-form-urlencoded"})}
	doc.AddOperation(base+"/{type}/"+handler.OpToggle, http.MethodPut, togglePut)

	component := newOperation("getComponent", "Render the widget", typeParam, params, SchemaComponent)
	doc.AddOperation(base+"/{type}/"+handler.OpComponent, http.MethodGet, component)

	return doc
}

// Validate checks doc against the OpenAPI 3 rules.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("apidoc: document is nil")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("apidoc: validate: %w", err)
	}
	return nil
}

// MarshalJSON encodes doc as JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	return doc.MarshalJSON()
}

// MarshalYAML encodes doc as YAML.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	value, err := doc.MarshalYAML()
	if err != nil {
		return nil, fmt.Errorf("apidoc: marshal yaml: %w", err)
	}
	return yaml.Marshal(value)
}

func newOperation(id, summary string, typeParam *openapi3.Parameter, params handler.ParamNames, result string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{"autocomplete"}
	op.AddParameter(typeParam)
	for _, param := range commonParameters(params) {
		op.AddParameter(param)
	}

	htmlAndJSON := openapi3.Content{
		"application/json": openapi3.NewMediaType().WithSchemaRef(schemaRef(result)),
		"text/html":        openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("JSON result, or an HTML fragment when a renderer is configured.").
			WithContent(htmlAndJSON)}),
	)
	op.Responses.Set("400", errorResponse("The request is malformed or the selection is invalid."))
	op.Responses.Set("403", errorResponse("A guard denied the request."))
	op.Responses.Set("404", errorResponse("The field type is not registered."))
	return op
}

func commonParameters(params handler.ParamNames) []*openapi3.Parameter {
	return []*openapi3.Parameter{
		openapi3.NewQueryParameter(params.FieldName).
			WithDescription("Form field name. The current selection is sent as repeated parameters under this name.").
			WithRequired(true).
			WithSchema(openapi3.NewStringSchema()),
		openapi3.NewQueryParameter(params.ComponentPrefix).
			WithDescription("Prefix prepended to the field name to build element ids.").
			WithSchema(openapi3.NewStringSchema()),
		openapi3.NewQueryParameter(params.Multiselect).
			WithDescription("Per-request override, honoured when the field type allows it.").
			WithSchema(openapi3.NewBoolSchema()),
		openapi3.NewQueryParameter(params.Required).
			WithDescription("Per-request override, honoured when the field type allows it.").
			WithSchema(openapi3.NewBoolSchema()),
		openapi3.NewQueryParameter(params.Disabled).
			WithDescription("Per-request override, honoured when the field type allows it.").
			WithSchema(openapi3.NewBoolSchema()),
		openapi3.NewQueryParameter(params.Placeholder).
			WithDescription("Per-request override, honoured when the field type allows it.").
			WithSchema(openapi3.NewStringSchema()),
		openapi3.NewQueryParameter(params.Format).
			WithDescription("Set to json to force a JSON response.").
			WithSchema(openapi3.NewStringSchema().WithEnum("json", "html")),
	}
}

func formSchema(params handler.ParamNames) *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty(params.FieldName, openapi3.NewStringSchema()).
		WithProperty(params.ComponentPrefix, openapi3.NewStringSchema()).
		WithProperty(params.Item, openapi3.NewStringSchema()).
		WithProperty(params.Remove, openapi3.NewBoolSchema()).
		WithAnyAdditionalProperties()
}

func typeSchema(names []string) *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	schema.Pattern = autocomplete.NamePattern.String()
	if len(names) > 0 {
		values := make([]any, 0, len(names))
		for _, name := range names {
			values = append(values, name)
		}
		schema = schema.WithEnum(values...)
	}
	return schema
}

func errorResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(schemaRef(SchemaError))}
}

func schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, componentSchemas()[name].Value)
}

func componentSchemas() openapi3.Schemas {
	str := openapi3.NewStringSchema
	boolean := openapi3.NewBoolSchema
	stringList := openapi3.NewArraySchema().WithItems(str())

	displayItem := openapi3.NewObjectSchema().
		WithProperty("key", str()).
		WithProperty("label", str()).
		WithProperty("selected", boolean()).
		WithRequired([]string{"key", "label", "selected"})
	displayItems := openapi3.NewArraySchema().WithItems(displayItem)

	messages := openapi3.NewObjectSchema().
		WithProperty("no_results", str()).
		WithProperty("more_results", str()).
		WithProperty("type_at_least_n_characters", str())

	endpoints := openapi3.NewObjectSchema().
		WithProperty("items", str()).
		WithProperty("toggle", str()).
		WithProperty("component", str())

	widgetConfig := openapi3.NewObjectSchema().
		WithProperty("label", str()).
		WithProperty("placeholder", str()).
		WithProperty("component_prefix", str()).
		WithProperty("required", boolean()).
		WithProperty("disabled", boolean()).
		WithProperty("multiselect", boolean()).
		WithProperty("indicator", boolean()).
		WithProperty("minimum_search_length", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("max_results", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("no_results_text", str()).
		WithProperty("more_results_text", str()).
		WithProperty("type_at_least_text", str())

	widget := openapi3.NewObjectSchema().
		WithProperty("field_type", str()).
		WithProperty("field_name", str()).
		WithProperty("component_prefix", str()).
		WithProperty("component_id", str()).
		WithProperty("config", widgetConfig).
		WithProperty("endpoints", endpoints).
		WithProperty("hx_params", str()).
		WithProperty("hx_vals", str())

	items := openapi3.NewObjectSchema().
		WithProperty("widget", widget).
		WithProperty("search", str()).
		WithProperty("items", displayItems).
		WithProperty("total_results", openapi3.NewIntegerSchema()).
		WithProperty("show", boolean()).
		WithProperty("query_too_short", boolean()).
		WithProperty("no_results", boolean()).
		WithProperty("more_results", boolean()).
		WithProperty("messages", messages)

	toggle := openapi3.NewObjectSchema().
		WithProperty("widget", widget).
		WithProperty("values", stringList).
		WithProperty("selected", displayItems).
		WithProperty("item", displayItem).
		WithProperty("swap_oob", boolean()).
		WithProperty("messages", messages)

	component := openapi3.NewObjectSchema().
		WithProperty("widget", widget).
		WithProperty("values", stringList).
		WithProperty("selected", displayItems).
		WithProperty("messages", messages)

	errSchema := openapi3.NewObjectSchema().
		WithProperty("error", str()).
		WithProperty("status", openapi3.NewIntegerSchema()).
		WithRequired([]string{"error", "status"})

	return openapi3.Schemas{
		SchemaDisplayItem: openapi3.NewSchemaRef("", displayItem),
		SchemaWidget:      openapi3.NewSchemaRef("", widget),
		SchemaMessages:    openapi3.NewSchemaRef("", messages),
		SchemaItems:       openapi3.NewSchemaRef("", items),
		SchemaToggle:      openapi3.NewSchemaRef("", toggle),
		SchemaComponent:   openapi3.NewSchemaRef("", component),
		SchemaError:       openapi3.NewSchemaRef("", errSchema),
	}
}
