package models

// Product is a single catalog entry as stored in the static catalog source.
// Name is the unique display key. Weight is in grams. Images maps a variant
// key ("yellow", "rose", "white") to an image URL; keys may be missing.
type Product struct {
	Name            string            `json:"name"`
	PopularityScore float64           `json:"popularityScore"`
	Weight          float64           `json:"weight"`
	Images          map[string]string `json:"images,omitempty"`
}

// EnrichedProduct is a Product augmented with the request-time gold price and
// the fields computed from it. The computed fields are serialized as
// fixed-decimal strings so the client always sees "720.00", never "720".
type EnrichedProduct struct {
	Product
	GoldPrice   string `json:"goldPrice"`
	Price       string `json:"price"`
	Popularity5 string `json:"popularity5"`
}
