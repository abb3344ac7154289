package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// HTMLSanitizeMiddleware strips HTML tags and entities from descriptions.
type HTMLSanitizeMiddleware struct {
	stripRe *regexp.Regexp
}

func NewHTMLSanitizeMiddleware() *HTMLSanitizeMiddleware {
	return &HTMLSanitizeMiddleware{
		stripRe: regexp.MustCompile(`<[^>]*>`),
	}
}

func (m *HTMLSanitizeMiddleware) Name() string { return "html_sanitize" }

func (m *HTMLSanitizeMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if c.Description == "" {
		return c, nil
	}
	cleaned := m.stripRe.ReplaceAllString(c.Description, "")
	cleaned = html.UnescapeString(cleaned)
	c.Description = strings.Join(strings.Fields(cleaned), " ")
	return c, nil
}

// CategoryPolicyMiddleware decides what happens to candidates no classifier
// rule matched. "drop" removes them, "other" files them under Other.
type CategoryPolicyMiddleware struct {
	Policy string
}

func (m *CategoryPolicyMiddleware) Name() string { return "category_policy" }

func (m *CategoryPolicyMiddleware) Process(c *types.Candidate) (*types.Candidate, error) {
	if c.Category != "" {
		return c, nil
	}
	switch m.Policy {
	case "", "drop":
		return nil, nil
	case "other":
		c.Category = string(classifier.Other)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown unclassified policy %q", m.Policy)
	}
}
