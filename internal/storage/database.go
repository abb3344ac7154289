package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// MongoStorage replaces the products and categories collections of a
// MongoDB database.
type MongoStorage struct {
	client     *mongo.Client
	products   *mongo.Collection
	categories *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStorage creates a new MongoDB storage backend.
func NewMongoStorage(cfg config.MongoConfig, logger *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoStorage{
		client:     client,
		products:   db.Collection(cfg.ProductsCollection),
		categories: db.Collection(cfg.CategoryCollection),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

func (s *MongoStorage) Name() string { return "mongodb" }

// Write empties both collections and refills them from c.
func (s *MongoStorage) Write(ctx context.Context, c *types.Catalog) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := replaceCollection(ctx, s.products, c.Products); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("products: %w", err)}
	}
	if err := replaceCollection(ctx, s.categories, c.Categories); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("categories: %w", err)}
	}

	s.logger.Info("catalog stored in mongodb", "products", len(c.Products), "categories", len(c.Categories))
	return nil
}

func replaceCollection[T any](ctx context.Context, coll *mongo.Collection, docs []T) error {
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("mongodb delete: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	batch := make([]any, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	// Ordered inserts keep the collection in catalog order.
	if _, err := coll.InsertMany(ctx, batch, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("mongodb insert: %w", err)
	}
	return nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
