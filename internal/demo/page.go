package demo

import (
	"context"
	"embed"
	"fmt"
	"net/url"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/render/template/pongo"
	"github.com/goliatone/go-autocomplete/pkg/renderers/tui"
	"github.com/goliatone/go-autocomplete/pkg/validation"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

const pageTemplate = "templates/page.tmpl"

// FormField is one widget of the team form.
type FormField struct {
	Legend    string
	FieldType string
	FieldName string
	Overrides autocomplete.Overrides
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

// TeamForm lists the widgets of the sample form. team_lead and members share
// the person field type and differ only in their overrides.
func TeamForm() []FormField {
	return []FormField{
		{Legend: "Team", FieldType: "team", FieldName: "team", Overrides: autocomplete.Overrides{Required: boolPtr(true)}},
		{Legend: "Team lead", FieldType: "person", FieldName: "team_lead"},
		{
			Legend:    "Members",
			FieldType: "person",
			FieldName: "members",
			Overrides: autocomplete.Overrides{Multiselect: boolPtr(true), Placeholder: stringPtr("Add members")},
		},
		{Legend: "Timezone", FieldType: "timezone", FieldName: "timezone"},
	}
}

// ConsoleFields returns the team form as terminal prompts.
func ConsoleFields() []tui.Field {
	form := TeamForm()
	fields := make([]tui.Field, 0, len(form))
	for _, f := range form {
		fields = append(fields, tui.Field{FieldType: f.FieldType, FieldName: f.FieldName, Overrides: f.Overrides})
	}
	return fields
}

type page struct {
	engine *pongo.Engine
}

func newPage() (*page, error) {
	engine, err := pongo.New(pongo.WithFS(pageTemplates), pongo.WithExtension(".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("demo: page templates: %w", err)
	}
	return &page{engine: engine}, nil
}

// RenderComponent renders one widget with the endpoints of this app.
func (a *App) RenderComponent(ctx context.Context, field FormField, values []string) (string, error) {
	res, err := a.Service.Component(ctx, autocomplete.ComponentRequest{Request: autocomplete.Request{
		FieldType: field.FieldType,
		FieldName: field.FieldName,
		Values:    values,
		Overrides: field.Overrides,
	}})
	if err != nil {
		return "", fmt.Errorf("demo: component %s: %w", field.FieldName, err)
	}
	res.Widget.Endpoints = autocomplete.EndpointsFor(a.opts.BasePath, field.FieldType)
	return a.Renderer.RenderComponent(ctx, res)
}

// ValidationFields returns the team form as validation targets.
func ValidationFields() []validation.Field {
	form := TeamForm()
	fields := make([]validation.Field, 0, len(form))
	for _, f := range form {
		fields = append(fields, validation.Field{FieldType: f.FieldType, FieldName: f.FieldName, Overrides: f.Overrides})
	}
	return fields
}

// RenderForm renders the team form page with values preselected. Submitted
// forms are validated first; the page then lists the accepted values and any
// issues, and widgets keep only the values that resolved.
func (a *App) RenderForm(ctx context.Context, values url.Values, submitted bool) (string, error) {
	var result validation.Result
	if submitted {
		var err error
		result, err = validation.ValidateSelections(ctx, a.Service, values, ValidationFields()...)
		if err != nil {
			return "", err
		}
		values = url.Values(result.Values)
	}

	form := TeamForm()
	fields := make([]map[string]any, 0, len(form))
	summary := make([]map[string]any, 0, len(form))
	for _, field := range form {
		markup, err := a.RenderComponent(ctx, field, values[field.FieldName])
		if err != nil {
			return "", err
		}
		var issues []string
		for _, issue := range result.IssuesFor(field.FieldName) {
			issues = append(issues, issue.Message)
		}
		fields = append(fields, map[string]any{
			"legend": field.Legend,
			"name":   field.FieldName,
			"html":   markup,
			"issues": issues,
		})
		summary = append(summary, map[string]any{
			"name":   field.FieldName,
			"values": autocomplete.DecodeSelection(values[field.FieldName]).Encode(),
		})
	}
	return a.page.engine.RenderTemplate(pageTemplate, map[string]any{
		"title":     "Team form",
		"renderer":  a.Renderer.Name(),
		"fields":    fields,
		"submitted": submitted,
		"valid":     result.Valid,
		"summary":   summary,
	})
}
