package storage

import (
	"context"
	"fmt"

	"github.com/drstein77/goldcatalog/internal/models"
	"go.uber.org/zap"
)

type Log interface {
	Info(string, ...zap.Field)
}

// Keeper interface for catalog source operations
type Keeper interface {
	LoadProducts(context.Context) ([]models.Product, error)
	Ping(context.Context) bool
	Close() bool
}

// MemoryStorage holds the catalog in process memory. It is filled exactly
// once, at construction, from the configured keeper; after that there is no
// writer, so reads need no locking.
type MemoryStorage struct {
	products []models.Product

	keeper Keeper
	log    Log
}

// NewMemoryStorage loads the catalog from the keeper. A load or validation
// error is returned to the caller and is fatal to startup: the service must
// not begin serving requests with a missing or corrupt catalog. An empty
// catalog is valid.
func NewMemoryStorage(ctx context.Context, keeper Keeper, log Log) (*MemoryStorage, error) {
	products, err := keeper.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := validateProducts(products); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	log.Info("Catalog loaded", zap.Int("count", len(products)))

	return &MemoryStorage{
		products: products,
		keeper:   keeper,
		log:      log,
	}, nil
}

// GetAllProducts returns the catalog in load order. The returned slice is a
// copy, so callers cannot mutate the shared catalog.
func (s *MemoryStorage) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

// validateProducts rejects malformed catalog entries at ingestion so the
// pricing engine can stay unvalidated and pure.
func validateProducts(products []models.Product) error {
	for i, p := range products {
		if p.Name == "" {
			return fmt.Errorf("product %d has an empty name", i)
		}
		if p.Weight <= 0 {
			return fmt.Errorf("product %q has non-positive weight %v", p.Name, p.Weight)
		}
		if p.PopularityScore < 0 || p.PopularityScore > 1 {
			return fmt.Errorf("product %q has popularityScore %v outside [0, 1]", p.Name, p.PopularityScore)
		}
	}
	return nil
}
