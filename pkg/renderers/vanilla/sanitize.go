package vanilla

import (
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// sanitizeInline strips everything but inline formatting from host supplied
// text. The result is safe to emit unescaped.
func sanitizeInline(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(trimmed))
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "span")
		policy.AllowAttrs("class").OnElements("span", "code")
		inlinePolicy = policy
	})
	return inlinePolicy
}

// safeURL keeps http(s) and relative URLs. Anything else, javascript: and
// data: included, collapses to "".
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "":
		if parsed.Host != "" {
			// protocol-relative
			return ""
		}
		return trimmed
	case "http", "https":
		if parsed.Host == "" {
			return ""
		}
		return trimmed
	default:
		return ""
	}
}

func controlID(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	return "ff-" + trimmed
}
