package htmx

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const StylesheetName = "autocomplete.css"

// Template names relative to the template bundle root.
const (
	TemplateComponent = "templates/component.tmpl"
	TemplateItemList  = "templates/item_list.tmpl"
	TemplateToggle    = "templates/toggle.tmpl"
)

// TemplatesFS exposes the embedded fragment templates so callers can copy and
// override them with WithTemplatesFS or WithTemplatesDir.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet for serving over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
