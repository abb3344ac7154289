// Package source loads crawl datasets into page records.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Input formats.
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatHTML  = "html"
)

// Loader reads page records from the configured input.
type Loader struct {
	cfg    config.InputConfig
	logger *slog.Logger
}

// NewLoader creates a new Loader.
func NewLoader(cfg config.InputConfig, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With("component", "source"),
	}
}

// Load reads every page record from the input path.
func (l *Loader) Load() ([]types.PageRecord, error) {
	format, err := DetectFormat(l.cfg.Path, l.cfg.Format)
	if err != nil {
		return nil, &types.LoadError{Path: l.cfg.Path, Err: err}
	}

	var pages []types.PageRecord
	switch format {
	case FormatJSON:
		pages, err = ReadJSONFile(l.cfg.Path)
	case FormatJSONL:
		pages, err = ReadJSONLFile(l.cfg.Path)
	case FormatHTML:
		pages, err = l.loadSnapshots()
	}
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, &types.LoadError{Path: l.cfg.Path, Err: types.ErrEmptyInput}
	}

	l.logger.Info("input loaded", "path", l.cfg.Path, "format", format, "pages", len(pages))
	return pages, nil
}

// DetectFormat resolves the "auto" format from the input path. Explicit
// formats are returned as-is after validation.
func DetectFormat(path, format string) (string, error) {
	switch format {
	case FormatJSON, FormatJSONL, FormatHTML:
		return format, nil
	case "", FormatAuto:
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return FormatHTML, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: cannot infer from %q", types.ErrUnknownFormat, path)
}

func (l *Loader) loadSnapshots() ([]types.PageRecord, error) {
	info, err := os.Stat(l.cfg.Path)
	if err != nil {
		return nil, &types.LoadError{Path: l.cfg.Path, Err: err}
	}

	files := []string{l.cfg.Path}
	if info.IsDir() {
		entries, err := os.ReadDir(l.cfg.Path)
		if err != nil {
			return nil, &types.LoadError{Path: l.cfg.Path, Err: err}
		}
		files = files[:0]
		// ReadDir returns entries sorted by filename.
		for _, e := range entries {
			if e.IsDir() || !isHTMLFile(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(l.cfg.Path, e.Name()))
		}
	}

	pages := make([]types.PageRecord, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return nil, &types.LoadError{Path: f, Err: err}
		}
		page, err := ParseSnapshot(raw, SnapshotURL(l.cfg.BaseURL, f))
		if err != nil {
			return nil, &types.LoadError{Path: f, Err: err}
		}
		l.logger.Debug("snapshot parsed", "file", f, "url", page.URL)
		pages = append(pages, page)
	}
	return pages, nil
}

func isHTMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}
