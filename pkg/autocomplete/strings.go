package autocomplete

import (
	"regexp"
	"strconv"
)

var placeholderPattern = regexp.MustCompile(`%\(([a-zA-Z_][a-zA-Z0-9_]*)\)s|%%`)

// Substitute replaces %(name)s placeholders with values[name]. Unknown names
// are left as they are and %% collapses to a single percent sign.
func Substitute(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		if token == "%%" {
			return "%"
		}
		name := token[2 : len(token)-2]
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}

// Messages holds the display strings of one response with their placeholders
// already substituted.
type Messages struct {
	NoResults   string `json:"no_results"`
	MoreResults string `json:"more_results"`
	TypeAtLeast string `json:"type_at_least_n_characters"`
}

// NewMessages formats the custom strings of cfg for a response that shows
// shown of total items.
func NewMessages(cfg Config, shown, total int) Messages {
	cfg = cfg.withDefaults()
	return Messages{
		NoResults: cfg.NoResultsText,
		MoreResults: Substitute(cfg.MoreResultsText, map[string]string{
			"page_size": strconv.Itoa(shown),
			"total":     strconv.Itoa(total),
		}),
		TypeAtLeast: Substitute(cfg.TypeAtLeastText, map[string]string{
			"n": strconv.Itoa(cfg.MinimumSearchLength),
		}),
	}
}
