package utils

import (
	"regexp"
	"strings"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// CompanySlug derives the URL-safe identifier for a company name: lowercase,
// runs of non-alphanumeric characters collapsed to a single dash, dashes
// trimmed from both ends. An input with no usable characters falls back to
// "unknown" so the slug is never empty.
func CompanySlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonAlnumRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "unknown"
	}
	return slug
}
