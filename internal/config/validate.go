package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	validFormats := map[string]bool{
		"auto": true, "json": true, "jsonl": true, "html": true,
	}
	if !validFormats[cfg.Input.Format] {
		return fmt.Errorf("input.format %q is not supported (valid: auto, json, jsonl, html)", cfg.Input.Format)
	}
	if cfg.Input.BaseURL != "" {
		if err := ValidateURL(cfg.Input.BaseURL); err != nil {
			return fmt.Errorf("input.base_url: %w", err)
		}
	}

	if cfg.Extract.DescriptionMinLength < 0 {
		return fmt.Errorf("extract.description_min_length must be >= 0, got %d", cfg.Extract.DescriptionMinLength)
	}
	if cfg.Extract.DescriptionMaxLength < 1 {
		return fmt.Errorf("extract.description_max_length must be >= 1, got %d", cfg.Extract.DescriptionMaxLength)
	}
	for _, u := range cfg.Extract.ListingURLs {
		if err := ValidateURL(u); err != nil {
			return fmt.Errorf("extract.listing_urls %q: %w", u, err)
		}
	}

	if cfg.Classify.Unclassified != "drop" && cfg.Classify.Unclassified != "other" {
		return fmt.Errorf("classify.unclassified must be 'drop' or 'other', got %q", cfg.Classify.Unclassified)
	}

	if len(cfg.Catalog.Categories) == 0 {
		return fmt.Errorf("catalog.categories must not be empty")
	}
	seen := make(map[string]bool, len(cfg.Catalog.Categories))
	for _, c := range cfg.Catalog.Categories {
		if c.Name == "" || c.Slug == "" {
			return fmt.Errorf("catalog.categories: name and slug are required (got name=%q slug=%q)", c.Name, c.Slug)
		}
		if seen[c.Slug] {
			return fmt.Errorf("catalog.categories: duplicate slug %q", c.Slug)
		}
		seen[c.Slug] = true
	}

	validStorageTypes := map[string]bool{
		"json": true, "jsonl": true, "csv": true, "mongodb": true, "sqlite": true,
	}
	if len(cfg.Storage.Types) == 0 {
		return fmt.Errorf("storage.types must list at least one backend")
	}
	for _, t := range cfg.Storage.Types {
		if !validStorageTypes[t] {
			return fmt.Errorf("storage.type %q is not supported (valid: json, jsonl, csv, mongodb, sqlite)", t)
		}
		if t == "mongodb" && cfg.Storage.Mongo.URI == "" {
			return fmt.Errorf("storage.mongo.uri is required for the mongodb backend")
		}
		if t == "sqlite" && cfg.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for the sqlite backend")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks that a URL string is absolute http(s).
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
