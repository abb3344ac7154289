package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	firstPriceRe    = regexp.MustCompile(`\$([0-9,]+\.?[0-9]*)`)
	markdownImageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)
)

// Paragraphs starting with these are headings, lists, prices or bare images.
var skipParagraphPrefixes = []string{"#", "*", "$", "![", "[!["}

// Paragraphs containing these are storefront widgets.
var skipParagraphMarkers = []string{"Variant Selector", "Thank you"}

// ProductTitle returns the product name from a page title like
// "Alpet E3 Plus | D2 Sanitizers".
func ProductTitle(title string) string {
	name, _, _ := strings.Cut(title, "|")
	return strings.TrimSpace(name)
}

// FirstPrice returns the first dollar amount in markdown, if it is positive.
func FirstPrice(markdown string) *float64 {
	m := firstPriceRe.FindStringSubmatch(markdown)
	if m == nil {
		return nil
	}
	if p, ok := ParsePrice(m[1]); ok {
		return &p
	}
	return nil
}

// FirstImage returns the first markdown image URL starting with hostPrefix.
// An empty prefix accepts any image.
func FirstImage(markdown, hostPrefix string) string {
	for _, m := range markdownImageRe.FindAllStringSubmatch(markdown, -1) {
		if hostPrefix == "" || strings.HasPrefix(m[2], hostPrefix) {
			return m[2]
		}
	}
	return ""
}

// FirstParagraph returns the first body paragraph of markdown that reads as
// prose, cut to maxRunes.
func FirstParagraph(markdown string, minLen, maxRunes int) string {
	for _, para := range strings.Split(markdown, "\n\n") {
		if hasAnyPrefix(para, skipParagraphPrefixes) {
			continue
		}
		if containsAny(para, skipParagraphMarkers) {
			continue
		}
		para = strings.TrimSpace(para)
		if utf8.RuneCountInString(para) <= minLen {
			continue
		}
		return truncateRunes(para, maxRunes)
	}
	return ""
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
