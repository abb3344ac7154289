package catalog

import (
	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Build returns one Category per definition, in definition order. A
// category's image is taken from the first candidate with an image whose
// category or source page matches it; otherwise it stays empty.
func Build(defs []config.CategoryDef, candidates []*types.Candidate) []types.Category {
	out := make([]types.Category, len(defs))
	for i, d := range defs {
		out[i] = types.Category{
			Name:        d.Name,
			Slug:        d.Slug,
			Description: d.Description,
			URL:         d.URL,
		}
		if c := representative(d, candidates); c != nil {
			out[i].Image = c.Image
		}
	}
	return out
}

func representative(d config.CategoryDef, candidates []*types.Candidate) *types.Candidate {
	for _, c := range candidates {
		if c.Image == "" {
			continue
		}
		if c.Category == d.Name || (c.PageSlug != "" && c.PageSlug == d.Slug) {
			return c
		}
	}
	return nil
}

// CountByCategory returns product counts keyed by category name.
func CountByCategory(products []types.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}
