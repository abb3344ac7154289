package engine

import (
	"testing"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

func price(v float64) *float64 { return &v }

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://WWW.D2Sanitizers.com/Dispensers/", "https://www.d2sanitizers.com/Dispensers"},
		{"https://www.d2sanitizers.com:443/wipes#top", "https://www.d2sanitizers.com/wipes"},
		{"https://www.d2sanitizers.com/shop?b=2&a=1", "https://www.d2sanitizers.com/shop?a=1&b=2"},
		{"https://www.d2sanitizers.com", "https://www.d2sanitizers.com/"},
		{"http://example.com:80/x", "http://example.com/x"},
	}

	for _, tt := range tests {
		if got := CanonicalizeURL(tt.input); got != tt.expected {
			t.Errorf("CanonicalizeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUniquePagesFirstWins(t *testing.T) {
	pages := []types.PageRecord{
		{URL: "https://example.com/a", Markdown: "first"},
		{URL: "https://example.com/b"},
		{URL: "https://example.com/a/", Markdown: "second"},
	}
	got := UniquePages(pages)
	if len(got) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(got))
	}
	if got[0].Markdown != "first" {
		t.Errorf("expected first record to win, got %q", got[0].Markdown)
	}
}

func TestMergeFillsMissingFields(t *testing.T) {
	candidates := []*types.Candidate{
		{Name: "Alpet E3 Plus", Slug: "alpet-e3-plus", Category: "Hand Sanitizers"},
		{Name: "Alpet E3 Plus", Slug: "alpet-e3-plus", Image: "a.jpg", Price: price(24.99), Category: "Hand Soaps"},
		{Name: "Alpet E3 Plus", Slug: "alpet-e3-plus", Image: "b.jpg", Price: price(30), ProductURL: "https://x/p"},
	}

	products := Merge(candidates)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	p := products[0]
	if p.Image != "a.jpg" {
		t.Errorf("image should come from the first candidate that had one, got %q", p.Image)
	}
	if p.Price == nil || *p.Price != 24.99 {
		t.Errorf("price should not be overwritten once set, got %v", p.Price)
	}
	if p.ProductURL != "https://x/p" {
		t.Errorf("product URL should be filled, got %q", p.ProductURL)
	}
	if p.Category != "Hand Sanitizers" {
		t.Errorf("category of the first occurrence is kept, got %q", p.Category)
	}
}

func TestMergeNeverDowngrades(t *testing.T) {
	candidates := []*types.Candidate{
		{Name: "Alpet D2", Slug: "alpet-d2", Image: "d2.jpg", Price: price(89), Description: "No-rinse sanitizer", ProductURL: "https://x/d2"},
		{Name: "Alpet D2", Slug: "alpet-d2"},
	}
	p := Merge(candidates)[0]
	if p.Image != "d2.jpg" || p.Price == nil || p.Description == "" || p.ProductURL == "" {
		t.Errorf("fields were lost: %+v", p)
	}
}

func TestMergeKeys(t *testing.T) {
	candidates := []*types.Candidate{
		// same name, different slug: joined by name
		{Name: "Alpet E3 Plus", Slug: "alpet-e3-plus"},
		{Name: "  alpet e3 plus ", Slug: "e3-plus-1-gal"},
		// different name, same slug: joined by slug
		{Name: "VersaClenz Foamer", Slug: "versaclenz-foamer"},
		{Name: "VersaClenz Foamer (White)", Slug: "versaclenz-foamer"},
		{Name: "Alpet D2", Slug: "alpet-d2"},
	}

	products := Merge(candidates)
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d: %+v", len(products), products)
	}
	order := []string{"alpet-e3-plus", "versaclenz-foamer", "alpet-d2"}
	for i, slug := range order {
		if products[i].Slug != slug {
			t.Errorf("position %d: expected %q, got %q", i, slug, products[i].Slug)
		}
	}
	if products[1].Name != "VersaClenz Foamer" {
		t.Errorf("first name is kept, got %q", products[1].Name)
	}
}

func TestMergeIgnoresKeysOfMergedCandidates(t *testing.T) {
	candidates := []*types.Candidate{
		{Name: "Alpet E3 Plus", Slug: "alpet-e3-plus"},
		// joins by name; its slug must not become a key of the first record
		{Name: "alpet e3 plus", Slug: "e3-plus-gallon"},
		// shares only that slug, so it is a product of its own
		{Name: "E3 Plus Gallon Jug", Slug: "e3-plus-gallon", Image: "g.jpg"},
	}

	products := Merge(candidates)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d: %+v", len(products), products)
	}
	if products[0].Slug != "alpet-e3-plus" || products[0].Image != "" {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if products[1].Name != "E3 Plus Gallon Jug" || products[1].Slug != "e3-plus-gallon" || products[1].Image != "g.jpg" {
		t.Errorf("unexpected second product: %+v", products[1])
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if seen[p.Slug] {
			t.Errorf("duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
}

func TestMergeMonotonic(t *testing.T) {
	pairs := [][2]*types.Candidate{
		{
			{Name: "A", Slug: "a", Image: "a.jpg"},
			{Name: "A", Slug: "a", Price: price(3), Description: "desc", ProductURL: "u"},
		},
		{
			{Name: "B", Slug: "b", Price: price(1), Description: "desc"},
			{Name: "b", Slug: "b2"},
		},
		{
			{Name: "C", Slug: "c"},
			{Name: "C2", Slug: "c", Image: "c.jpg", Price: price(2)},
		},
	}

	for _, pair := range pairs {
		first := toProduct(pair[0])
		second := toProduct(pair[1])
		merged := Merge([]*types.Candidate{pair[0], pair[1]})
		if len(merged) != 1 {
			t.Fatalf("%s: expected one merged record, got %d", pair[0].Name, len(merged))
		}
		want := max(first.FieldCount(), second.FieldCount())
		if got := merged[0].FieldCount(); got < want {
			t.Errorf("%s: merged field count %d < %d", pair[0].Name, got, want)
		}
	}
}

func TestMergerCounts(t *testing.T) {
	m := NewMerger()
	if m.Add(&types.Candidate{Name: "A", Slug: "a"}) {
		t.Error("first add should not report a merge")
	}
	if !m.Add(&types.Candidate{Name: "A", Slug: "a"}) {
		t.Error("second add should report a merge")
	}
	if m.Merged() != 1 || len(m.Products()) != 1 {
		t.Errorf("unexpected merger state: merged=%d products=%d", m.Merged(), len(m.Products()))
	}
}
