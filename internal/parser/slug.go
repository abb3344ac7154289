package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	markRe      = regexp.MustCompile(`[®™]`)
	nonSlugRe   = regexp.MustCompile(`[^\w\s-]`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
	hyphenRunRe = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a product name.
func Slugify(name string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(name))
	s = markRe.ReplaceAllString(s, "")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "- ")
}
