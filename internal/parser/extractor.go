package parser

import (
	"log/slog"
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Extractor turns page records into product candidates.
type Extractor struct {
	cfg    config.ExtractConfig
	logger *slog.Logger
}

// NewExtractor creates a new extractor.
func NewExtractor(cfg config.ExtractConfig, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		logger: logger.With("component", "extractor"),
	}
}

// IsProductPage reports whether page is a single-product detail page.
func (e *Extractor) IsProductPage(page types.PageRecord) bool {
	return e.cfg.ProductPageMarker != "" && strings.Contains(page.URL, e.cfg.ProductPageMarker)
}

// Extract returns every candidate found on page. Product pages yield at most
// one candidate; every other page is scanned for listing blocks.
func (e *Extractor) Extract(page types.PageRecord, pageCategory classifier.Category) []*types.Candidate {
	if e.IsProductPage(page) {
		if c, ok := e.ExtractProductPage(page); ok {
			return []*types.Candidate{c}
		}
		return nil
	}
	return e.ExtractListings(page, pageCategory)
}

// ExtractListings runs both listing passes over the page markdown.
func (e *Extractor) ExtractListings(page types.PageRecord, pageCategory classifier.Category) []*types.Candidate {
	var out []*types.Candidate
	pageSlug := page.Slug()

	for l := range PricedListings(page.Markdown) {
		price, ok := ParsePrice(l.Price)
		if !ok {
			e.logger.Debug("price rejected", "url", page.URL, "name", l.Name, "raw", l.Price)
			continue
		}
		out = append(out, &types.Candidate{
			Name:      l.Name,
			Slug:      Slugify(l.Name),
			Price:     &price,
			Image:     l.Image,
			Category:  string(categoryFor(l.Name, pageCategory)),
			SourceURL: page.URL,
			PageSlug:  pageSlug,
			Origin:    types.OriginPricedListing,
		})
	}

	for l := range LinkedListings(page.Markdown) {
		slug := LinkSlug(l.Link)
		if slug == "" {
			slug = Slugify(l.Name)
		}
		out = append(out, &types.Candidate{
			Name:       l.Name,
			Slug:       slug,
			Image:      l.Image,
			Category:   string(categoryFor(l.Name, pageCategory)),
			SourceURL:  page.URL,
			ProductURL: resolveLink(page.URL, l.Link),
			PageSlug:   pageSlug,
			Origin:     types.OriginLinkedListing,
		})
	}

	if len(out) > 0 {
		e.logger.Debug("listings extracted", "url", page.URL, "count", len(out))
	}
	return out
}

// ExtractProductPage builds a candidate from a product detail page.
func (e *Extractor) ExtractProductPage(page types.PageRecord) (*types.Candidate, bool) {
	name := ProductTitle(page.Metadata.Title)
	if name == "" {
		e.logger.Debug("product page without title", "url", page.URL)
		return nil, false
	}

	slug := page.Slug()
	if slug == "" {
		slug = Slugify(name)
	}
	desc := FirstParagraph(page.Markdown, e.cfg.DescriptionMinLength, e.cfg.DescriptionMaxLength)
	category, _ := classifier.Classify(page.URL, name+" "+desc)

	return &types.Candidate{
		Name:        name,
		Slug:        slug,
		Price:       FirstPrice(page.Markdown),
		Image:       FirstImage(page.Markdown, e.cfg.ImageHostPrefix),
		Description: desc,
		Category:    string(category),
		SourceURL:   page.URL,
		ProductURL:  page.URL,
		PageSlug:    slug,
		Origin:      types.OriginProductPage,
	}, true
}

// categoryFor prefers the product name over the page category.
func categoryFor(name string, pageCategory classifier.Category) classifier.Category {
	if c, ok := classifier.ByName(name); ok {
		return c
	}
	return pageCategory
}
