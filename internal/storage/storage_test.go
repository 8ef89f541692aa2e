package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/drstein77/goldcatalog/internal/logger"
	"github.com/drstein77/goldcatalog/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeKeeper struct {
	products []models.Product
	err      error
}

func (k fakeKeeper) LoadProducts(ctx context.Context) ([]models.Product, error) {
	return k.products, k.err
}
func (k fakeKeeper) Ping(ctx context.Context) bool { return true }
func (k fakeKeeper) Close() bool                   { return true }

func TestNewMemoryStorageLoadsOnce(t *testing.T) {
	products := []models.Product{
		{Name: "Ring 1", PopularityScore: 0.8, Weight: 5},
		{Name: "Ring 2", PopularityScore: 0.3, Weight: 2.5},
	}

	s, err := NewMemoryStorage(context.Background(), fakeKeeper{products: products}, logger.Logger{})
	require.NoError(t, err)

	got, err := s.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, products, got)
}

func TestNewMemoryStorageFailsOnKeeperError(t *testing.T) {
	_, err := NewMemoryStorage(context.Background(), fakeKeeper{err: errors.New("boom")}, logger.Logger{})
	require.Error(t, err)
}

func TestNewMemoryStorageAcceptsEmptyCatalog(t *testing.T) {
	s, err := NewMemoryStorage(context.Background(), fakeKeeper{}, logger.Logger{})
	require.NoError(t, err)

	got, err := s.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestNewMemoryStorageValidatesAtIngestion(t *testing.T) {
	cases := []struct {
		name    string
		product models.Product
	}{
		{"empty name", models.Product{Name: "", PopularityScore: 0.5, Weight: 1}},
		{"zero weight", models.Product{Name: "Ring", PopularityScore: 0.5, Weight: 0}},
		{"negative weight", models.Product{Name: "Ring", PopularityScore: 0.5, Weight: -2}},
		{"popularity above one", models.Product{Name: "Ring", PopularityScore: 1.2, Weight: 1}},
		{"negative popularity", models.Product{Name: "Ring", PopularityScore: -0.1, Weight: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keeper := fakeKeeper{products: []models.Product{tc.product}}
			_, err := NewMemoryStorage(context.Background(), keeper, logger.Logger{})
			require.Error(t, err)
		})
	}
}

func TestGetAllProductsReturnsACopy(t *testing.T) {
	products := []models.Product{{Name: "Ring", PopularityScore: 0.5, Weight: 1}}

	s, err := NewMemoryStorage(context.Background(), fakeKeeper{products: products}, logger.Logger{})
	require.NoError(t, err)

	first, err := s.GetAllProducts(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := s.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ring", second[0].Name)
}
