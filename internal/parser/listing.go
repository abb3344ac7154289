package parser

import (
	"iter"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Listing block layouts found on category pages.
//
//	![alt](image)
//	### Name
//	$24.99
//
//	[![alt](image)](/product/slug)
//	### Name
var (
	pricedListingRe = regexp.MustCompile(`!\[([^\]]+)\]\(([^)]+)\)\s*###\s*([^\n]+)\s*\$([0-9.,]+)`)
	linkedListingRe = regexp.MustCompile(`\[!\[([^\]]+)\]\(([^)]+)\)\]\(([^)]+)\)\s*###\s*([^\n$]+)`)
)

// Listing is one raw match of a listing pattern.
type Listing struct {
	Alt   string
	Image string
	Name  string

	// Link is set by the linked layout only.
	Link string

	// Price is the raw captured amount, set by the priced layout only.
	Price string
}

// PricedListings yields every priced listing block in content, in source order.
func PricedListings(content string) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		for _, m := range pricedListingRe.FindAllStringSubmatch(content, -1) {
			l := Listing{
				Alt:   m[1],
				Image: strings.TrimSpace(m[2]),
				Name:  strings.TrimSpace(m[3]),
				Price: m[4],
			}
			if !yield(l) {
				return
			}
		}
	}
}

// LinkedListings yields every linked listing block in content, in source order.
func LinkedListings(content string) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		for _, m := range linkedListingRe.FindAllStringSubmatch(content, -1) {
			l := Listing{
				Alt:   m[1],
				Image: strings.TrimSpace(m[2]),
				Link:  strings.TrimSpace(m[3]),
				Name:  strings.TrimSpace(m[4]),
			}
			if !yield(l) {
				return
			}
		}
	}
}

// ParsePrice converts a captured amount like "1,299.00" to a number.
// Zero, negative and unparseable amounts are rejected.
func ParsePrice(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// LinkSlug returns the last path segment of a product link.
func LinkSlug(link string) string {
	segs := types.PathSegments(link)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// resolveLink resolves a product link against the page URL. The link is
// returned unchanged when either side does not parse.
func resolveLink(pageURL, link string) string {
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return link
	}
	return base.ResolveReference(ref).String()
}
