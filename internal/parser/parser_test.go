package parser

import (
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestExtractor() *Extractor {
	return NewExtractor(config.DefaultConfig().Extract, testLogger)
}

// --- Slug Tests ---

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Alpet E3 Plus", "alpet-e3-plus"},
		{"Alpet® E3™ Plus", "alpet-e3-plus"},
		{"VersaClenz  Foamer (White)", "versaclenz-foamer-white"},
		{"Dry Step - Floor Powder", "dry-step-floor-powder"},
		{"  Alpet PAA 5.6  ", "alpet-paa-56"},
		{"EZ Step, 1 Gal.", "ez-step-1-gal"},
		{"Alpet E2", "alpet-e2"},
		{"--Leading & trailing--", "leading-trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// --- Price Tests ---

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"24.99", 24.99, true},
		{"1,299.00", 1299, true},
		{"10.", 10, true},
		{"0.00", 0, false},
		{"0", 0, false},
		{"", 0, false},
		{",", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePrice(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

// --- Listing Pattern Tests ---

func TestPricedListings(t *testing.T) {
	content := "![Alpet E3](https://cdn.example.com/e3.jpg)\n### Alpet E3 Plus\n$24.99\n\n" +
		"![Quart](https://cdn.example.com/q.jpg)\n###   Alpet E3 Plus Quart  \n$12.50"

	got := slices.Collect(PricedListings(content))
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].Alt != "Alpet E3" || got[0].Image != "https://cdn.example.com/e3.jpg" ||
		got[0].Name != "Alpet E3 Plus" || got[0].Price != "24.99" {
		t.Errorf("unexpected first listing: %+v", got[0])
	}
	if got[1].Name != "Alpet E3 Plus Quart" || got[1].Price != "12.50" {
		t.Errorf("unexpected second listing: %+v", got[1])
	}

	// Restartable: a second pass sees the same matches.
	again := slices.Collect(PricedListings(content))
	if !slices.Equal(got, again) {
		t.Error("second pass differs from the first")
	}
}

func TestPricedListingsStopsEarly(t *testing.T) {
	content := "![a](a.jpg)\n### A\n$1\n![b](b.jpg)\n### B\n$2\n"
	n := 0
	for range PricedListings(content) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected iteration to stop after 1, got %d", n)
	}
}

func TestLinkedListings(t *testing.T) {
	content := "[![Dispenser](img.jpg)](/product/versaclenz-foamer)\n### VersaClenz Foamer\n" +
		"[![Mat](mat.jpg)](https://www.d2sanitizers.com/product/smartstep-mat/?v=2)\n### SmartStep Mat\n"

	got := slices.Collect(LinkedListings(content))
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].Link != "/product/versaclenz-foamer" || got[0].Name != "VersaClenz Foamer" || got[0].Image != "img.jpg" {
		t.Errorf("unexpected first listing: %+v", got[0])
	}
	if LinkSlug(got[1].Link) != "smartstep-mat" {
		t.Errorf("expected slug smartstep-mat, got %q", LinkSlug(got[1].Link))
	}
}

func TestListingsNoMatch(t *testing.T) {
	content := "# About us\n\nWe make sanitizers.\n\n![Team](team.jpg)\n\nNo headings here."
	if n := len(slices.Collect(PricedListings(content))); n != 0 {
		t.Errorf("expected no priced listings, got %d", n)
	}
	if n := len(slices.Collect(LinkedListings(content))); n != 0 {
		t.Errorf("expected no linked listings, got %d", n)
	}
}

// --- Extractor Tests ---

func TestExtractPricedListing(t *testing.T) {
	e := newTestExtractor()
	page := types.PageRecord{
		URL:      "https://www.d2sanitizers.com/hand-sanitizers",
		Markdown: "![Alpet E3](https://cdn.example.com/e3.jpg)\n### Alpet E3 Plus\n$24.99",
	}

	got := e.ExtractListings(page, classifier.HandSanitizers)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Name != "Alpet E3 Plus" || c.Slug != "alpet-e3-plus" {
		t.Errorf("unexpected name/slug: %q %q", c.Name, c.Slug)
	}
	if c.Price == nil || *c.Price != 24.99 {
		t.Errorf("expected price 24.99, got %v", c.Price)
	}
	if c.Image != "https://cdn.example.com/e3.jpg" {
		t.Errorf("unexpected image %q", c.Image)
	}
	if c.Category != string(classifier.HandSanitizers) {
		t.Errorf("expected Hand Sanitizers, got %q", c.Category)
	}
	if c.Origin != types.OriginPricedListing || c.PageSlug != "hand-sanitizers" {
		t.Errorf("unexpected origin/page slug: %q %q", c.Origin, c.PageSlug)
	}
}

func TestExtractLinkedListing(t *testing.T) {
	e := newTestExtractor()
	page := types.PageRecord{
		URL:      "https://www.d2sanitizers.com/dispensers",
		Markdown: "[![Dispenser](img.jpg)](/product/versaclenz-foamer)\n### VersaClenz Foamer",
	}

	got := e.ExtractListings(page, classifier.Dispensing)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Name != "VersaClenz Foamer" || c.Slug != "versaclenz-foamer" {
		t.Errorf("unexpected name/slug: %q %q", c.Name, c.Slug)
	}
	if c.Price != nil {
		t.Errorf("expected nil price, got %v", *c.Price)
	}
	if c.Category != string(classifier.Dispensing) {
		t.Errorf("expected Dispensing Options, got %q", c.Category)
	}
	if c.ProductURL != "https://www.d2sanitizers.com/product/versaclenz-foamer" {
		t.Errorf("unexpected product URL %q", c.ProductURL)
	}
}

func TestExtractRejectsZeroPrice(t *testing.T) {
	e := newTestExtractor()
	pages := []types.PageRecord{
		{URL: "https://www.d2sanitizers.com/floor-sanitizers", Markdown: "### Foo Cleaner\n$0.00"},
		{URL: "https://www.d2sanitizers.com/floor-sanitizers", Markdown: "![Foo](foo.jpg)\n### Foo Cleaner\n$0.00"},
	}
	for _, page := range pages {
		for _, c := range e.ExtractListings(page, classifier.FloorSanitizers) {
			if c.Price != nil && *c.Price == 0 {
				t.Errorf("candidate %q has zero price", c.Name)
			}
		}
	}
}

func TestExtractFallsBackToPageCategory(t *testing.T) {
	e := newTestExtractor()
	page := types.PageRecord{
		URL:      "https://www.d2sanitizers.com/peracetic-acid",
		Markdown: "![Jug](jug.jpg)\n### Sanitizer Concentrate 5 Gal\n$120.00",
	}
	got := e.ExtractListings(page, classifier.PeraceticAcid)
	if len(got) != 1 || got[0].Category != string(classifier.PeraceticAcid) {
		t.Fatalf("expected page category fallback, got %+v", got)
	}
}

func TestExtractProductPage(t *testing.T) {
	e := newTestExtractor()
	page := types.PageRecord{
		URL: "https://www.d2sanitizers.com/product/alpet-d2",
		Markdown: "![logo](https://example.com/logo.png)\n\n" +
			"![D2](https://cdn.prod.website-files.com/abc/d2.jpg)\n\n" +
			"# Alpet D2\n\n" +
			"$1,049.00\n\n" +
			"* 1 Gallon\n* 5 Gallon\n\n" +
			"Variant Selector: choose a size to see pricing and availability for your facility.\n\n" +
			"Short blurb.\n\n" +
			"Alpet D2 is a <b>no-rinse</b> food contact surface sanitizer that kills 99.999% of bacteria.\n",
		Metadata: types.PageMetadata{Title: "Alpet D2 Surface Sanitizer | D2 Sanitizers"},
	}

	if !e.IsProductPage(page) {
		t.Fatal("expected a product page")
	}
	got := e.Extract(page, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Name != "Alpet D2 Surface Sanitizer" || c.Slug != "alpet-d2" {
		t.Errorf("unexpected name/slug: %q %q", c.Name, c.Slug)
	}
	if c.Price == nil || *c.Price != 1049 {
		t.Errorf("expected price 1049, got %v", c.Price)
	}
	if c.Image != "https://cdn.prod.website-files.com/abc/d2.jpg" {
		t.Errorf("unexpected image %q", c.Image)
	}
	if c.Description != "Alpet D2 is a <b>no-rinse</b> food contact surface sanitizer that kills 99.999% of bacteria." {
		t.Errorf("unexpected description %q", c.Description)
	}
	if c.Category != string(classifier.FloorSanitizers) {
		t.Errorf("expected Floor Sanitizers, got %q", c.Category)
	}
	if c.ProductURL != page.URL || c.Origin != types.OriginProductPage {
		t.Errorf("unexpected product URL/origin: %q %q", c.ProductURL, c.Origin)
	}
}

func TestExtractProductPageWithoutTitle(t *testing.T) {
	e := newTestExtractor()
	page := types.PageRecord{
		URL:      "https://www.d2sanitizers.com/product/mystery",
		Markdown: "$5.00",
	}
	if got := e.Extract(page, ""); len(got) != 0 {
		t.Errorf("expected no candidate without a title, got %d", len(got))
	}
}

func TestProductPageHelpers(t *testing.T) {
	if got := ProductTitle("  Alpet E3 Plus | D2 | Shop "); got != "Alpet E3 Plus" {
		t.Errorf("ProductTitle: got %q", got)
	}
	if p := FirstPrice("Call for a quote. $0.00"); p != nil {
		t.Errorf("FirstPrice: expected nil, got %v", *p)
	}
	if p := FirstPrice("From $1,234.5 each"); p == nil || *p != 1234.5 {
		t.Errorf("FirstPrice: expected 1234.5, got %v", p)
	}
	if img := FirstImage("![a](https://a.com/1.png) ![b](https://b.com/2.png)", ""); img != "https://a.com/1.png" {
		t.Errorf("FirstImage any: got %q", img)
	}
	if img := FirstImage("![a](https://a.com/1.png)", "https://b.com"); img != "" {
		t.Errorf("FirstImage prefix: expected none, got %q", img)
	}

	long := ""
	for i := 0; i < 100; i++ {
		long += "ü"
	}
	long += " and some more words to pass the minimum length"
	if got := FirstParagraph(long, 50, 10); got != "üüüüüüüüüü" {
		t.Errorf("FirstParagraph truncation: got %q", got)
	}
}

func TestFirstParagraphMinLength(t *testing.T) {
	// 45 runes, 51 bytes
	accented := "Désinfectant sûr pour surfaces à café, été ok"
	long := accented + " et plus encore"

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"counts runes not bytes", accented, ""},
		{"longer than minimum", long, long},
		{"image paragraph skipped", "![Jug](https://cdn.example.com/jug.jpg) " + long + "\n\n" + long, long},
		{"linked image paragraph skipped", "[![Jug](https://cdn.example.com/jug.jpg)](/product/jug) " + long, ""},
		{"heading skipped", "# " + long, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstParagraph(tt.markdown, 50, 300); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
