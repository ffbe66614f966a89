package catalog

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the human-readable URL fragment from a product name:
// "Lune Noire" -> "lune-noire".
func Slug(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
