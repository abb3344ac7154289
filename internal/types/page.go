package types

import (
	"net/url"
	"path"
	"strings"
)

// PageMetadata is the head metadata captured by the crawler.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageRecord is one crawled page as exported by the crawler.
type PageRecord struct {
	// URL is the absolute, resolved page URL.
	URL string `json:"url"`

	// Markdown is the page body rendered as markdown.
	Markdown string `json:"markdown"`

	// Text is the plain-text page body.
	Text string `json:"text"`

	// Metadata holds title and description from the page head.
	Metadata PageMetadata `json:"metadata"`
}

// Segments returns the non-empty path segments of the page URL.
func (p PageRecord) Segments() []string {
	return PathSegments(p.URL)
}

// Slug returns the last path segment of the page URL.
func (p PageRecord) Slug() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// PathSegments splits the path of rawURL into non-empty segments.
// Query and fragment are ignored. Unparseable input is split as-is.
func PathSegments(rawURL string) []string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = path.Clean("/" + p)

	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
