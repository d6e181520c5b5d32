package directory

import (
	"regexp"
	"strings"
)

var (
	titlePrefix = regexp.MustCompile(`^Dr\.\s*`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Slug derives the URL key for a doctor from their display name:
// "Dr. Valli Lakamsani" becomes "valli-lakamsani". Every link to a profile
// and every profile lookup must go through this function.
func Slug(name string) string {
	s := titlePrefix.ReplaceAllString(name, "")
	s = whitespace.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}
