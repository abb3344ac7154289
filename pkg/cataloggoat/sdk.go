// Package cataloggoat provides a public SDK for embedding CatalogGoat as a library.
//
// Example usage:
//
//	b := cataloggoat.NewBuilder(
//	    cataloggoat.WithOutput("./src/data", "json", "csv"),
//	    cataloggoat.WithUnclassified("other"),
//	)
//
//	catalog, err := b.BuildFile(ctx, "./d2-apify-crawl.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = b.Write(ctx, catalog)
package cataloggoat

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/engine"
	"github.com/IshaanNene/CatalogGoat/internal/source"
	"github.com/IshaanNene/CatalogGoat/internal/storage"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Re-exported data types.
type (
	PageRecord   = types.PageRecord
	PageMetadata = types.PageMetadata
	Product      = types.Product
	Category     = types.Category
	Catalog      = types.Catalog
	CategoryDef  = config.CategoryDef
)

// Builder is the high-level API for using CatalogGoat as a library.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	stats  map[string]int64
}

// Option configures a Builder.
type Option func(*config.Config)

// WithOutput sets the output directory and the sinks to write.
func WithOutput(dir string, sinks ...string) Option {
	return func(c *config.Config) {
		c.Storage.OutputPath = dir
		if len(sinks) > 0 {
			c.Storage.Types = sinks
		}
	}
}

// WithSQLite adds a SQLite sink at path.
func WithSQLite(path string) Option {
	return func(c *config.Config) {
		c.Storage.SQLite.Path = path
		c.Storage.Types = append(c.Storage.Types, "sqlite")
	}
}

// WithMongo adds a MongoDB sink.
func WithMongo(uri, database string) Option {
	return func(c *config.Config) {
		c.Storage.Mongo.URI = uri
		c.Storage.Mongo.Database = database
		c.Storage.Types = append(c.Storage.Types, "mongodb")
	}
}

// WithUnclassified sets the policy for products no rule matches: drop or other.
func WithUnclassified(policy string) Option {
	return func(c *config.Config) { c.Classify.Unclassified = policy }
}

// WithListingURLs restricts listing extraction to the given pages.
func WithListingURLs(urls ...string) Option {
	return func(c *config.Config) { c.Extract.ListingURLs = urls }
}

// WithCategories replaces the storefront categories.
func WithCategories(defs ...CategoryDef) Option {
	return func(c *config.Config) { c.Catalog.Categories = defs }
}

// WithBaseURL sets the site URL used to name HTML snapshots.
func WithBaseURL(u string) Option {
	return func(c *config.Config) { c.Input.BaseURL = u }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// NewBuilder creates a new Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Builder{
		cfg:    cfg,
		logger: logger,
	}
}

// Build transforms page records into a catalog.
func (b *Builder) Build(ctx context.Context, pages []PageRecord) (*Catalog, error) {
	if err := config.Validate(b.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	res, err := engine.New(b.cfg, b.logger).Run(ctx, pages)
	if err != nil {
		return nil, err
	}
	b.stats = res.Stats.Snapshot()
	return res.Catalog, nil
}

// BuildFile loads a crawl dataset (JSON, JSONL, or HTML snapshots) and
// builds a catalog from it.
func (b *Builder) BuildFile(ctx context.Context, path string) (*Catalog, error) {
	in := b.cfg.Input
	in.Path = path
	in.Format = "auto"
	pages, err := source.NewLoader(in, b.logger).Load()
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, pages)
}

// Write stores the catalog in every configured sink.
func (b *Builder) Write(ctx context.Context, c *Catalog) error {
	store, err := storage.New(b.cfg.Storage, b.logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()
	return store.Write(ctx, c)
}

// Stats returns the counters of the last build.
func (b *Builder) Stats() map[string]int64 {
	return b.stats
}
