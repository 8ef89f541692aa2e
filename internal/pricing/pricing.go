package pricing

import (
	"strconv"

	"github.com/drstein77/goldcatalog/internal/models"
)

// Enrich computes the display fields for every product against the given gold
// price per gram. It is a pure function: same inputs, same outputs, input
// order preserved, output length equal to input length. Validation of the
// product fields belongs to catalog ingestion, not here.
func Enrich(products []models.Product, perGram float64) []models.EnrichedProduct {
	goldPrice := formatDecimal(perGram, 2)

	enriched := make([]models.EnrichedProduct, len(products))
	for i, p := range products {
		price := (p.PopularityScore + 1) * p.Weight * perGram
		enriched[i] = models.EnrichedProduct{
			Product:     p,
			GoldPrice:   goldPrice,
			Price:       formatDecimal(price, 2),
			Popularity5: formatDecimal(p.PopularityScore*5, 1),
		}
	}

	return enriched
}

// formatDecimal renders v with a fixed number of decimal places, keeping
// trailing zeros ("12.50", not "12.5").
func formatDecimal(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
