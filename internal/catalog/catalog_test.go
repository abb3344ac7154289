package catalog

import (
	"testing"

	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

func TestBuildBackfillsImages(t *testing.T) {
	candidates := []*types.Candidate{
		{Name: "Alpet E3 Plus", Category: string(classifier.HandSanitizers), Image: ""},
		{Name: "Alpet E3 Plus Gallon", Category: string(classifier.HandSanitizers), Image: "https://cdn.example.com/e3.jpg"},
		{Name: "Alpet E3 Plus Quart", Category: string(classifier.HandSanitizers), Image: "https://cdn.example.com/e3q.jpg"},
		{Name: "Mystery Item", Category: "", PageSlug: "dispensers", Image: "https://cdn.example.com/disp.jpg"},
	}

	cats := Build(config.DefaultCategories(), candidates)
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}

	byName := make(map[string]types.Category)
	for _, c := range cats {
		byName[c.Name] = c
	}

	if got := byName["Hand Sanitizers"].Image; got != "https://cdn.example.com/e3.jpg" {
		t.Errorf("expected first candidate image with a value, got %q", got)
	}
	if got := byName["Dispensing Options"].Image; got != "https://cdn.example.com/disp.jpg" {
		t.Errorf("expected image matched by page slug, got %q", got)
	}
	if got := byName["Peracetic Acid Products"].Image; got != "" {
		t.Errorf("expected empty image, got %q", got)
	}
}

func TestBuildKeepsStaticFields(t *testing.T) {
	defs := config.DefaultCategories()
	cats := Build(defs, nil)
	for i, c := range cats {
		if c.Name != defs[i].Name || c.Slug != defs[i].Slug || c.Description != defs[i].Description || c.URL != defs[i].URL {
			t.Errorf("category %d changed: %+v", i, c)
		}
		if c.Image != "" {
			t.Errorf("category %q: expected empty image without candidates", c.Name)
		}
	}
}

func TestCountByCategory(t *testing.T) {
	products := []types.Product{
		{Name: "A", Category: "Hand Soaps"},
		{Name: "B", Category: "Hand Soaps"},
		{Name: "C", Category: "Dispensing Options"},
	}
	counts := CountByCategory(products)
	if counts["Hand Soaps"] != 2 || counts["Dispensing Options"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
