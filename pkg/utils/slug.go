package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]+`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// GenerateSlug creates a URL-friendly slug from a title.
// It never fails; input with no usable characters yields "", which
// callers must reject before persisting.
func GenerateSlug(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	// Strip everything that is not a word char, whitespace or hyphen
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	// Whitespace runs become single hyphens
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	// Collapse hyphen runs
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
