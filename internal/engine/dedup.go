package engine

import (
	"net/url"
	"sort"
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// UniquePages drops repeated page records, keeping the first record for
// each canonical URL.
func UniquePages(pages []types.PageRecord) []types.PageRecord {
	seen := make(map[string]struct{}, len(pages))
	out := make([]types.PageRecord, 0, len(pages))
	for _, p := range pages {
		key := CanonicalizeURL(p.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// CanonicalizeURL normalizes a URL for deduplication:
// - lowercases scheme and host
// - removes fragment
// - sorts query parameters
// - removes trailing slash (except root)
// - removes default ports (80 for http, 443 for https)
func CanonicalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	host := u.Hostname()
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = host
	}

	if u.RawQuery != "" {
		params := u.Query()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sorted []string
		for _, k := range keys {
			vals := params[k]
			sort.Strings(vals)
			for _, v := range vals {
				sorted = append(sorted, url.QueryEscape(k)+"="+url.QueryEscape(v))
			}
		}
		u.RawQuery = strings.Join(sorted, "&")
	}

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
	}
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}

	return u.String()
}

// Merger collapses candidates that describe the same product. A candidate
// joins an existing record when it shares that record's slug or normalized
// name. First occurrence wins; later ones only fill empty fields and add no
// keys of their own.
type Merger struct {
	products []*types.Product
	bySlug   map[string]int
	byName   map[string]int
	merged   int
}

// NewMerger creates an empty Merger.
func NewMerger() *Merger {
	return &Merger{
		bySlug: make(map[string]int),
		byName: make(map[string]int),
	}
}

// NormalizeName is the name key: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add folds c into the merged set. It reports whether c was merged into an
// existing record.
func (m *Merger) Add(c *types.Candidate) bool {
	slugKey := c.Slug
	nameKey := NormalizeName(c.Name)

	idx, ok := m.bySlug[slugKey]
	if !ok {
		idx, ok = m.byName[nameKey]
	}
	if !ok {
		m.products = append(m.products, toProduct(c))
		idx = len(m.products) - 1
		m.bySlug[slugKey] = idx
		m.byName[nameKey] = idx
		return false
	}

	fill(m.products[idx], c)
	m.merged++
	return true
}

// Products returns the merged products in first-seen order.
func (m *Merger) Products() []types.Product {
	out := make([]types.Product, len(m.products))
	for i, p := range m.products {
		out[i] = *p
	}
	return out
}

// Merged returns how many candidates were folded into earlier records.
func (m *Merger) Merged() int { return m.merged }

// Merge deduplicates candidates in one call.
func Merge(candidates []*types.Candidate) []types.Product {
	m := NewMerger()
	for _, c := range candidates {
		m.Add(c)
	}
	return m.Products()
}

func toProduct(c *types.Candidate) *types.Product {
	p := &types.Product{
		Name:        c.Name,
		Slug:        c.Slug,
		Image:       c.Image,
		Description: c.Description,
		Category:    c.Category,
		ProductURL:  c.ProductURL,
	}
	if c.Price != nil {
		price := *c.Price
		p.Price = &price
	}
	return p
}

// fill copies fields from c that p lacks. Present fields are never replaced.
func fill(p *types.Product, c *types.Candidate) {
	if p.Image == "" && c.Image != "" {
		p.Image = c.Image
	}
	if p.Price == nil && c.Price != nil && *c.Price > 0 {
		price := *c.Price
		p.Price = &price
	}
	if p.ProductURL == "" && c.ProductURL != "" {
		p.ProductURL = c.ProductURL
	}
	if p.Description == "" && c.Description != "" {
		p.Description = c.Description
	}
}
