package pricing

import (
	"testing"

	"github.com/drstein77/goldcatalog/internal/models"
	"github.com/stretchr/testify/require"
)

func TestEnrichComputesDisplayFields(t *testing.T) {
	t.Run("popular item", func(t *testing.T) {
		products := []models.Product{{Name: "Ring", PopularityScore: 0.8, Weight: 5}}

		enriched := Enrich(products, 80)

		require.Len(t, enriched, 1)
		require.Equal(t, "720.00", enriched[0].Price)
		require.Equal(t, "4.0", enriched[0].Popularity5)
		require.Equal(t, "80.00", enriched[0].GoldPrice)
	})

	t.Run("zero popularity still prices by weight", func(t *testing.T) {
		products := []models.Product{{Name: "Ring", PopularityScore: 0, Weight: 2}}

		enriched := Enrich(products, 75)

		require.Equal(t, "150.00", enriched[0].Price)
		require.Equal(t, "0.0", enriched[0].Popularity5)
	})

	t.Run("trailing zeros are preserved", func(t *testing.T) {
		products := []models.Product{{Name: "Ring", PopularityScore: 0, Weight: 1}}

		enriched := Enrich(products, 2.5)

		require.Equal(t, "2.50", enriched[0].Price)
		require.Equal(t, "2.50", enriched[0].GoldPrice)
	})
}

func TestEnrichPreservesLengthAndOrder(t *testing.T) {
	products := []models.Product{
		{Name: "A", PopularityScore: 0.1, Weight: 1},
		{Name: "B", PopularityScore: 0.5, Weight: 2},
		{Name: "C", PopularityScore: 0.9, Weight: 3},
	}

	enriched := Enrich(products, 60)

	require.Len(t, enriched, len(products))
	for i, p := range products {
		require.Equal(t, p.Name, enriched[i].Name)
		require.Equal(t, p.Images, enriched[i].Images)
	}
}

func TestEnrichGoldPriceIdenticalAcrossItems(t *testing.T) {
	products := []models.Product{
		{Name: "A", PopularityScore: 0.2, Weight: 1.5},
		{Name: "B", PopularityScore: 0.7, Weight: 4.2},
	}

	enriched := Enrich(products, 63.789)

	require.Equal(t, enriched[0].GoldPrice, enriched[1].GoldPrice)
	require.Equal(t, "63.79", enriched[0].GoldPrice)
}

func TestEnrichIsIdempotent(t *testing.T) {
	products := []models.Product{
		{Name: "A", PopularityScore: 0.33, Weight: 2.7},
		{Name: "B", PopularityScore: 0.66, Weight: 1.1},
	}

	first := Enrich(products, 81.5)
	second := Enrich(products, 81.5)

	require.Equal(t, first, second)
}

func TestEnrichEmptyCatalog(t *testing.T) {
	enriched := Enrich(nil, 75)

	require.NotNil(t, enriched)
	require.Empty(t, enriched)
}
