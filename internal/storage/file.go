package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// File names inside the output directory.
const (
	ProductsFile   = "products"
	CategoriesFile = "categories"
)

// WriteFileAtomic writes data to a temp file next to path and renames it
// over path, so readers never see a partial file. Missing parent
// directories are created.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output file: %w", err)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// --- JSON Storage ---

// JSONStorage writes products.json and categories.json as indented arrays.
type JSONStorage struct {
	dir    string
	logger *slog.Logger
}

// NewJSONStorage creates a new JSON file storage.
func NewJSONStorage(outputDir string, logger *slog.Logger) (*JSONStorage, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}
	return &JSONStorage{
		dir:    outputDir,
		logger: logger.With("component", "json_storage"),
	}, nil
}

func (s *JSONStorage) Name() string { return "json" }

func (s *JSONStorage) Write(ctx context.Context, c *types.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	products, err := encodeJSON(nonNil(c.Products))
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	categories, err := encodeJSON(nonNil(c.Categories))
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	productsPath := filepath.Join(s.dir, ProductsFile+".json")
	if err := WriteFileAtomic(productsPath, products); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	categoriesPath := filepath.Join(s.dir, CategoriesFile+".json")
	if err := WriteFileAtomic(categoriesPath, categories); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	s.logger.Info("JSON written", "products", productsPath, "categories", categoriesPath,
		"product_count", len(c.Products), "category_count", len(c.Categories))
	return nil
}

func (s *JSONStorage) Close() error { return nil }

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// --- JSONL Storage ---

// JSONLStorage writes one object per line to products.jsonl and categories.jsonl.
type JSONLStorage struct {
	dir    string
	logger *slog.Logger
}

// NewJSONLStorage creates a new JSONL file storage.
func NewJSONLStorage(outputDir string, logger *slog.Logger) (*JSONLStorage, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}
	return &JSONLStorage{
		dir:    outputDir,
		logger: logger.With("component", "jsonl_storage"),
	}, nil
}

func (s *JSONLStorage) Name() string { return "jsonl" }

func (s *JSONLStorage) Write(ctx context.Context, c *types.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var pb, cb bytes.Buffer
	penc := json.NewEncoder(&pb)
	penc.SetEscapeHTML(false)
	for _, p := range c.Products {
		if err := penc.Encode(p); err != nil {
			return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("encode JSONL: %w", err)}
		}
	}
	cenc := json.NewEncoder(&cb)
	cenc.SetEscapeHTML(false)
	for _, cat := range c.Categories {
		if err := cenc.Encode(cat); err != nil {
			return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("encode JSONL: %w", err)}
		}
	}

	if err := WriteFileAtomic(filepath.Join(s.dir, ProductsFile+".jsonl"), pb.Bytes()); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	if err := WriteFileAtomic(filepath.Join(s.dir, CategoriesFile+".jsonl"), cb.Bytes()); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	s.logger.Info("JSONL written", "dir", s.dir, "products", len(c.Products), "categories", len(c.Categories))
	return nil
}

func (s *JSONLStorage) Close() error { return nil }

// --- CSV Storage ---

// Column order is fixed so output diffs cleanly between runs.
var (
	productHeaders  = []string{"name", "slug", "price", "image", "description", "category", "productUrl"}
	categoryHeaders = []string{"name", "slug", "description", "url", "image"}
)

// CSVStorage writes products.csv and categories.csv.
type CSVStorage struct {
	dir    string
	logger *slog.Logger
}

// NewCSVStorage creates a new CSV file storage.
func NewCSVStorage(outputDir string, logger *slog.Logger) (*CSVStorage, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}
	return &CSVStorage{
		dir:    outputDir,
		logger: logger.With("component", "csv_storage"),
	}, nil
}

func (s *CSVStorage) Name() string { return "csv" }

func (s *CSVStorage) Write(ctx context.Context, c *types.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	productRows := make([][]string, 0, len(c.Products))
	for _, p := range c.Products {
		productRows = append(productRows, []string{
			p.Name, p.Slug, FormatPrice(p.Price), p.Image, p.Description, p.Category, p.ProductURL,
		})
	}
	categoryRows := make([][]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		categoryRows = append(categoryRows, []string{cat.Name, cat.Slug, cat.Description, cat.URL, cat.Image})
	}

	if err := writeCSV(filepath.Join(s.dir, ProductsFile+".csv"), productHeaders, productRows); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	if err := writeCSV(filepath.Join(s.dir, CategoriesFile+".csv"), categoryHeaders, categoryRows); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	s.logger.Info("CSV written", "dir", s.dir, "products", len(c.Products), "categories", len(c.Categories))
	return nil
}

func (s *CSVStorage) Close() error { return nil }

func writeCSV(path string, headers []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write CSV rows: %w", err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}

// FormatPrice renders a price for text sinks. A nil price is empty.
func FormatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// NewFileStorage creates the appropriate file-based storage by type.
func NewFileStorage(storageType, outputDir string, logger *slog.Logger) (Storage, error) {
	switch storageType {
	case "json":
		return NewJSONStorage(outputDir, logger)
	case "jsonl":
		return NewJSONLStorage(outputDir, logger)
	case "csv":
		return NewCSVStorage(outputDir, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
