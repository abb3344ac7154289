package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Storage is the interface for all storage backends.
type Storage interface {
	// Write replaces the stored catalog with c.
	Write(ctx context.Context, c *types.Catalog) error

	// Close releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New builds the backends named in cfg.Types. A single backend is returned
// as-is; several are wrapped in a MultiStorage.
func New(cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	if len(cfg.Types) == 0 {
		return nil, types.ErrNoBackends
	}

	backends := make([]Storage, 0, len(cfg.Types))
	closeAll := func() {
		for _, b := range backends {
			_ = b.Close()
		}
	}

	for _, t := range cfg.Types {
		var (
			b   Storage
			err error
		)
		switch t {
		case "json", "jsonl", "csv":
			b, err = NewFileStorage(t, cfg.OutputPath, logger)
		case "mongodb":
			b, err = NewMongoStorage(cfg.Mongo, logger)
		case "sqlite":
			b, err = NewSQLiteStorage(cfg.SQLite.Path, logger)
		default:
			err = fmt.Errorf("unsupported storage type: %s", t)
		}
		if err != nil {
			closeAll()
			return nil, &types.StorageError{Backend: t, Err: err}
		}
		backends = append(backends, b)
	}

	if len(backends) == 1 {
		return backends[0], nil
	}
	return NewMultiStorage(backends, logger), nil
}

// --- Multi-Storage Fan-Out ---

// MultiStorage writes the catalog to multiple backends.
type MultiStorage struct {
	backends []Storage
	logger   *slog.Logger
}

// NewMultiStorage creates a storage that fans out to multiple backends.
func NewMultiStorage(backends []Storage, logger *slog.Logger) *MultiStorage {
	return &MultiStorage{
		backends: backends,
		logger:   logger.With("component", "multi_storage"),
	}
}

func (s *MultiStorage) Name() string { return "multi" }

// Write runs every backend and returns the first error.
func (s *MultiStorage) Write(ctx context.Context, c *types.Catalog) error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Write(ctx, c); err != nil {
			s.logger.Error("backend write failed", "backend", backend.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *MultiStorage) Close() error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
