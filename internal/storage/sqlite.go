package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	position    INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	price       REAL,
	image       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL,
	product_url TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE TABLE IF NOT EXISTS categories (
	position    INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT ''
);`

// SQLiteStorage replaces the products and categories tables of a SQLite file.
type SQLiteStorage struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStorage opens or creates the database at path.
func NewSQLiteStorage(path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		path:   path,
		logger: logger.With("component", "sqlite_storage"),
	}, nil
}

func (s *SQLiteStorage) Name() string { return "sqlite" }

// Write deletes both tables and inserts c in a single transaction.
func (s *SQLiteStorage) Write(ctx context.Context, c *types.Catalog) error {
	if err := s.write(ctx, c); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	s.logger.Info("catalog stored in sqlite", "path", s.path,
		"products", len(c.Products), "categories", len(c.Categories))
	return nil
}

func (s *SQLiteStorage) write(ctx context.Context, c *types.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	pstmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (position, name, slug, price, image, description, category, product_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare products: %w", err)
	}
	defer pstmt.Close()

	for i, p := range c.Products {
		var price sql.NullFloat64
		if p.Price != nil {
			price = sql.NullFloat64{Float64: *p.Price, Valid: true}
		}
		if _, err := pstmt.ExecContext(ctx, i, p.Name, p.Slug, price, p.Image, p.Description, p.Category, p.ProductURL); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Slug, err)
		}
	}

	cstmt, err := tx.PrepareContext(ctx,
		`INSERT INTO categories (position, name, slug, description, url, image) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare categories: %w", err)
	}
	defer cstmt.Close()

	for i, cat := range c.Categories {
		if _, err := cstmt.ExecContext(ctx, i, cat.Name, cat.Slug, cat.Description, cat.URL, cat.Image); err != nil {
			return fmt.Errorf("insert category %q: %w", cat.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ReadCatalog loads the stored catalog back in insertion order.
func (s *SQLiteStorage) ReadCatalog(ctx context.Context) (*types.Catalog, error) {
	c := &types.Catalog{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, slug, price, image, description, category, product_url FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			p     types.Product
			price sql.NullFloat64
		)
		if err := rows.Scan(&p.Name, &p.Slug, &price, &p.Image, &p.Description, &p.Category, &p.ProductURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		c.Products = append(c.Products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx,
		`SELECT name, slug, description, url, image FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var cat types.Category
		if err := crows.Scan(&cat.Name, &cat.Slug, &cat.Description, &cat.URL, &cat.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Categories = append(c.Categories, cat)
	}
	return c, crows.Err()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
