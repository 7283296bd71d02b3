package htmx

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// defaultMessagePolicy allows the inline markup custom strings are written
// with: emphasis, code and links.
func defaultMessagePolicy() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "span", "br")
		policy.AllowAttrs("class").OnElements("span", "code")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		messagePolicy = policy
	})
	return messagePolicy
}

func sanitizeMessage(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if policy == nil {
		policy = defaultMessagePolicy()
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}
