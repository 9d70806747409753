package scoring

import (
	"regexp"
	"strings"
)

var slugDisallowedChars = regexp.MustCompile(`[^a-z0-9-]`)

// NormalizeSlug canonicalizes a free-form questionnaire slug: trimmed,
// lower-cased, underscores turned into hyphens, CR/LF removed, surrounding
// slashes stripped, and anything outside [a-z0-9-] dropped.
func NormalizeSlug(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.Trim(s, "/")
	return slugDisallowedChars.ReplaceAllString(s, "")
}

// SlugKey collapses hyphens out of the normalized slug so that "RLS_6",
// "rls-6" and "rls6" all dispatch to the same strategy.
func SlugKey(slug string) string {
	return strings.ReplaceAll(NormalizeSlug(slug), "-", "")
}
