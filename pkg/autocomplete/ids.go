package autocomplete

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
)

// Element id suffixes appended to the component id.
const (
	SuffixTextInput     = "__textinput"
	SuffixItems         = "__items"
	SuffixItem          = "__item__"
	SuffixContainer     = "_ac_container"
	SuffixInfo          = "__info"
	SuffixSRDescription = "__sr_description"
	SuffixData          = "__data"
)

// ComponentID identifies one widget instance on a page.
func ComponentID(prefix, fieldName string) string {
	return prefix + fieldName
}

// MakeID turns an arbitrary value into a string usable as an element id.
func MakeID(value string) string {
	sum := sha1.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

// ItemElementID returns the id of the option element for key.
func ItemElementID(componentID, key string) string {
	return componentID + SuffixItem + MakeID(key)
}

// DefaultBasePath is where the endpoints are mounted unless configured
// otherwise.
const DefaultBasePath = "/autocomplete"

// Endpoints holds the URLs of one field type's operations.
type Endpoints struct {
	Items     string `json:"items"`
	Toggle    string `json:"toggle"`
	Component string `json:"component"`
}

// EndpointsFor returns the operation URLs of fieldType under basePath.
func EndpointsFor(basePath, fieldType string) Endpoints {
	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	root := base + "/" + url.PathEscape(fieldType)
	return Endpoints{
		Items:     root + "/items",
		Toggle:    root + "/toggle",
		Component: root + "/component",
	}
}

// Widget carries the identity and effective settings of one rendered widget.
// It is what every request must echo back to the server.
type Widget struct {
	FieldType       string `json:"field_type"`
	FieldName       string `json:"field_name"`
	ComponentPrefix string `json:"component_prefix"`
	ComponentID     string `json:"component_id"`
	Config          Config `json:"config"`
	// Endpoints are filled in by the transport that serves the widget.
	Endpoints Endpoints `json:"endpoints"`

	base              Config
	extraSearchParams map[string]string
}

// NewWidget builds the widget description for a field type and request.
func NewWidget(field FieldType, fieldName, prefix string, cfg Config) Widget {
	return Widget{
		FieldType:         field.Name,
		FieldName:         fieldName,
		ComponentPrefix:   prefix,
		ComponentID:       ComponentID(prefix, fieldName),
		Config:            cfg,
		base:              field.Config,
		extraSearchParams: field.ExtraSearchParams,
	}
}

// MarshalJSON adds the params and values a JSON client has to echo back.
func (w Widget) MarshalJSON() ([]byte, error) {
	type plain Widget
	return json.Marshal(struct {
		plain
		HxParams string `json:"hx_params"`
		HxVals   string `json:"hx_vals"`
	}{plain(w), w.HxParams(), w.HxVals()})
}

// HxParams lists the request parameters htmx should include.
func (w Widget) HxParams() string {
	var b strings.Builder
	b.WriteString(w.FieldName)
	b.WriteString(",field_name,item,component_prefix")
	for _, key := range w.echoedOverrides() {
		b.WriteString(",")
		b.WriteString(key)
	}
	return b.String()
}

// echoedOverrides lists the settings the client must send back: those that
// are on and those a request moved away from the field type's own value.
func (w Widget) echoedOverrides() []string {
	var keys []string
	if w.Config.Required || w.Config.Required != w.base.Required {
		keys = append(keys, OverrideRequired)
	}
	if w.Config.Disabled || w.Config.Disabled != w.base.Disabled {
		keys = append(keys, OverrideDisabled)
	}
	if w.Config.Placeholder != "" || w.Config.Placeholder != w.base.Placeholder {
		keys = append(keys, OverridePlaceholder)
	}
	if w.Config.Multiselect || w.Config.Multiselect != w.base.Multiselect {
		keys = append(keys, OverrideMultiselect)
	}
	return keys
}

type hxVals struct {
	FieldName       string  `json:"field_name"`
	ComponentPrefix string  `json:"component_prefix"`
	Required        *bool   `json:"required,omitempty"`
	Disabled        *bool   `json:"disabled,omitempty"`
	Multiselect     *bool   `json:"multiselect,omitempty"`
	Placeholder     *string `json:"placeholder,omitempty"`
}

func (w Widget) hxValsJSON() string {
	vals := hxVals{
		FieldName:       w.FieldName,
		ComponentPrefix: w.ComponentPrefix,
	}
	cfg := w.Config
	for _, key := range w.echoedOverrides() {
		switch key {
		case OverrideRequired:
			vals.Required = &cfg.Required
		case OverrideDisabled:
			vals.Disabled = &cfg.Disabled
		case OverridePlaceholder:
			vals.Placeholder = &cfg.Placeholder
		case OverrideMultiselect:
			vals.Multiselect = &cfg.Multiselect
		}
	}
	data, err := json.Marshal(vals)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// HxVals returns the JSON object of values echoed with every request.
func (w Widget) HxVals() string {
	return w.hxValsJSON()
}

// TextInputHxVals returns the js: expression used by the search input. It adds
// the current search text and any extra search params of the field type.
func (w Widget) TextInputHxVals() string {
	base := strings.TrimSuffix(strings.TrimPrefix(w.hxValsJSON(), "{"), "}")

	var b strings.Builder
	b.WriteString("js:{")
	b.WriteString(base)
	b.WriteString(`,search: document.getElementById("`)
	b.WriteString(jsStringEscaper.Replace(w.ComponentID + SuffixTextInput))
	b.WriteString(`").value`)

	if len(w.extraSearchParams) > 0 {
		keys := make([]string, 0, len(w.extraSearchParams))
		for key := range w.extraSearchParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			b.WriteString(`, "`)
			b.WriteString(jsStringEscaper.Replace(key))
			b.WriteString(`": `)
			b.WriteString(w.extraSearchParams[key])
		}
	}
	b.WriteString("}")
	return b.String()
}

var jsStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "<", `\u003c`, ">", `\u003e`)
