// Package sanitize strips markup and script vectors from customer-supplied text.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	scriptBlock   = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptTag     = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	jsScheme      = regexp.MustCompile(`(?i)javascript\s*:`)
	inlineHandler = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)

	strict = bluemonday.StrictPolicy()
)

// Text returns s as plain text: script blocks, javascript: URLs, inline
// event handlers and every remaining tag are removed.
func Text(s string) string {
	s = scriptBlock.ReplaceAllString(s, "")
	s = scriptTag.ReplaceAllString(s, "")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	// Unescaping can resurrect markup that was entity-encoded in the input.
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = jsScheme.ReplaceAllString(s, "")
	s = inlineHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
