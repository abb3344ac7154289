package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IshaanNene/CatalogGoat/internal/catalog"
	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/parser"
	"github.com/IshaanNene/CatalogGoat/internal/pipeline"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Stats tracks counts for one run.
type Stats struct {
	PagesIn            int
	PagesUnique        int
	PagesSkipped       int
	ProductPages       int
	CandidatesFound    int
	CandidatesDropped  int
	CandidatesMerged   int
	ProductsOut        int
	CategoriesWithImgs int
	Elapsed            time.Duration
}

// Snapshot returns the stats as a flat map.
func (s *Stats) Snapshot() map[string]int64 {
	return map[string]int64{
		"pages_in":             int64(s.PagesIn),
		"pages_unique":         int64(s.PagesUnique),
		"pages_skipped":        int64(s.PagesSkipped),
		"product_pages":        int64(s.ProductPages),
		"candidates_found":     int64(s.CandidatesFound),
		"candidates_dropped":   int64(s.CandidatesDropped),
		"candidates_merged":    int64(s.CandidatesMerged),
		"products_out":         int64(s.ProductsOut),
		"categories_with_imgs": int64(s.CategoriesWithImgs),
	}
}

// Result is the output of one run.
type Result struct {
	Catalog *types.Catalog
	Stats   Stats
}

// Pipeline is the interface for the candidate processing pipeline.
type Pipeline interface {
	Process(c *types.Candidate) (*types.Candidate, error)
}

// Engine runs the page-to-catalog transform.
type Engine struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *parser.Extractor
	pipeline  Pipeline
	listing   map[string]struct{}
}

// New creates a new Engine with the given configuration and the default
// candidate pipeline.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	e := &Engine{
		cfg:       cfg,
		logger:    logger.With("component", "engine"),
		extractor: parser.NewExtractor(cfg.Extract, logger),
		pipeline:  pipeline.Default(cfg.Classify.Unclassified, logger),
	}
	if len(cfg.Extract.ListingURLs) > 0 {
		e.listing = make(map[string]struct{}, len(cfg.Extract.ListingURLs))
		for _, u := range cfg.Extract.ListingURLs {
			e.listing[CanonicalizeURL(u)] = struct{}{}
		}
	}
	return e
}

// Run transforms pages into a catalog. It is a single pass over pages;
// ctx is checked between pages.
func (e *Engine) Run(ctx context.Context, pages []types.PageRecord) (*Result, error) {
	if len(pages) == 0 {
		return nil, types.ErrNoPages
	}

	start := time.Now()
	res := &Result{}
	res.Stats.PagesIn = len(pages)

	unique := UniquePages(pages)
	res.Stats.PagesUnique = len(unique)

	var candidates []*types.Candidate
	for _, page := range unique {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted: %w", err)
		}

		if !e.extractor.IsProductPage(page) && !e.isListingPage(page) {
			res.Stats.PagesSkipped++
			continue
		}
		if e.extractor.IsProductPage(page) {
			res.Stats.ProductPages++
		}

		pageCategory, _ := classifier.ByURL(page.URL)
		found := e.extractor.Extract(page, pageCategory)
		res.Stats.CandidatesFound += len(found)

		for _, c := range found {
			kept, err := e.pipeline.Process(c)
			if err != nil {
				return nil, err
			}
			if kept == nil {
				res.Stats.CandidatesDropped++
				continue
			}
			candidates = append(candidates, kept)
		}
	}

	merger := NewMerger()
	for _, c := range candidates {
		merger.Add(c)
	}
	products := merger.Products()
	categories := catalog.Build(e.cfg.Catalog.Categories, candidates)

	res.Catalog = &types.Catalog{
		Products:   products,
		Categories: categories,
	}
	res.Stats.CandidatesMerged = merger.Merged()
	res.Stats.ProductsOut = len(products)
	for _, c := range categories {
		if c.Image != "" {
			res.Stats.CategoriesWithImgs++
		}
	}
	res.Stats.Elapsed = time.Since(start)

	e.logger.Info("catalog built",
		"pages", res.Stats.PagesUnique,
		"candidates", res.Stats.CandidatesFound,
		"dropped", res.Stats.CandidatesDropped,
		"merged", res.Stats.CandidatesMerged,
		"products", res.Stats.ProductsOut,
	)

	return res, nil
}

// isListingPage reports whether listing extraction runs on page. With no
// configured listing URLs only category pages (URLs ByURL recognizes) are
// scanned.
func (e *Engine) isListingPage(page types.PageRecord) bool {
	if e.listing == nil {
		_, ok := classifier.ByURL(page.URL)
		return ok
	}
	_, ok := e.listing[CanonicalizeURL(page.URL)]
	return ok
}
