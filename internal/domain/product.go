package domain

import (
	"encoding/json"
	"strings"
)

// Source tags identifying where a product came from.
const (
	SourceCatalog          = "KV"
	SourceOpenFoodFacts    = "OpenFoodFacts"
	SourceFoodRepo         = "FoodRepo"
	SourceOpenSupplementDB = "OpenSupplementDB"
)

// UnknownProductName is used when a source has a brand but no product name.
const UnknownProductName = "Unknown product"

// Product is the canonical protein powder record. Every source is mapped
// into this shape before it reaches the search pipeline.
type Product struct {
	ID                 string          `json:"id,omitempty"`
	Brand              *string         `json:"brand"`
	Product            *string         `json:"product"`
	Type               string          `json:"type"`
	PricePerKg         *float64        `json:"pricePerKg"`
	ServingSizeG       *float64        `json:"servingSizeG"`
	ProteinPer100g     *float64        `json:"proteinPer100g"`
	CaloriesPer100g    *float64        `json:"caloriesPer100g"`
	CaloriesPerServing *float64        `json:"caloriesPerServing"`
	CarbsPerServing    *float64        `json:"carbsPerServing"`
	FatPerServing      *float64        `json:"fatPerServing"`
	Origin             *string         `json:"origin"`
	Sweeteners         json.RawMessage `json:"sweeteners"`
	Allergens          json.RawMessage `json:"allergens"`
	Rating             json.RawMessage `json:"rating"`
	Source             string          `json:"source,omitempty"`
	URL                *string         `json:"url"`
}

// BrandName returns the brand or "" when unset.
func (p Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return *p.Brand
}

// ProductName returns the product name or "" when unset.
func (p Product) ProductName() string {
	if p.Product == nil {
		return ""
	}
	return *p.Product
}

// Identifiable reports whether the product carries a non-blank brand or name.
func (p Product) Identifiable() bool {
	return strings.TrimSpace(p.BrandName()) != "" || strings.TrimSpace(p.ProductName()) != ""
}

// productWire mirrors Product but accepts loosely typed numbers so that a
// stray string ("32 EUR") in the catalog does not poison the whole blob.
type productWire struct {
	ID                 any             `json:"id"`
	Brand              *string         `json:"brand"`
	Product            *string         `json:"product"`
	Type               *string         `json:"type"`
	PricePerKg         any             `json:"pricePerKg"`
	ServingSizeG       any             `json:"servingSizeG"`
	ProteinPer100g     any             `json:"proteinPer100g"`
	CaloriesPer100g    any             `json:"caloriesPer100g"`
	CaloriesPerServing any             `json:"caloriesPerServing"`
	CarbsPerServing    any             `json:"carbsPerServing"`
	FatPerServing      any             `json:"fatPerServing"`
	Origin             *string         `json:"origin"`
	Sweeteners         json.RawMessage `json:"sweeteners"`
	Allergens          json.RawMessage `json:"allergens"`
	Rating             json.RawMessage `json:"rating"`
	Source             *string         `json:"source"`
	URL                *string         `json:"url"`
}

// UnmarshalJSON decodes a product leniently: numeric fields accept numbers or
// numeric strings and fall back to null when they cannot be parsed.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Product{
		ID:                 StringValue(w.ID),
		Brand:              w.Brand,
		Product:            w.Product,
		PricePerKg:         ParseNumber(w.PricePerKg),
		ServingSizeG:       ParseNumber(w.ServingSizeG),
		ProteinPer100g:     ParseNumber(w.ProteinPer100g),
		CaloriesPer100g:    ParseNumber(w.CaloriesPer100g),
		CaloriesPerServing: ParseNumber(w.CaloriesPerServing),
		CarbsPerServing:    ParseNumber(w.CarbsPerServing),
		FatPerServing:      ParseNumber(w.FatPerServing),
		Origin:             w.Origin,
		Sweeteners:         nullIfEmpty(w.Sweeteners),
		Allergens:          nullIfEmpty(w.Allergens),
		Rating:             nullIfEmpty(w.Rating),
		URL:                w.URL,
	}
	if w.Type != nil {
		p.Type = *w.Type
	}
	if w.Source != nil {
		p.Source = *w.Source
	}
	return nil
}

// ForResponse returns the product in the shape served to clients: numbers are
// finite or null and opaque fields are explicit nulls rather than missing.
func (p Product) ForResponse() Product {
	p.PricePerKg = finitePtr(p.PricePerKg)
	p.ServingSizeG = finitePtr(p.ServingSizeG)
	p.ProteinPer100g = finitePtr(p.ProteinPer100g)
	p.CaloriesPer100g = finitePtr(p.CaloriesPer100g)
	p.CaloriesPerServing = finitePtr(p.CaloriesPerServing)
	p.CarbsPerServing = finitePtr(p.CarbsPerServing)
	p.FatPerServing = finitePtr(p.FatPerServing)
	p.Sweeteners = nullIfEmpty(p.Sweeteners)
	p.Allergens = nullIfEmpty(p.Allergens)
	p.Rating = nullIfEmpty(p.Rating)
	return p
}

// SearchRequest is the parsed form of a /search query string.
type SearchRequest struct {
	Query    string
	Type     string
	Sort     SortKey
	External bool
	// Limit is the raw limit parameter; zero means "use the default".
	Limit int
}

// SearchResponse is the body returned by /search.
type SearchResponse struct {
	Results []Product `json:"results"`
}

// SortKey selects one of the numeric result orderings.
type SortKey string

const (
	SortNone     SortKey = ""
	SortPrice    SortKey = "price"
	SortProtein  SortKey = "protein"
	SortCalories SortKey = "calories"
)

// ParseSortKey maps a query parameter to a SortKey. Unknown values mean no sort.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPrice:
		return SortPrice
	case SortProtein:
		return SortProtein
	case SortCalories:
		return SortCalories
	default:
		return SortNone
	}
}

var jsonNull = json.RawMessage("null")

func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return jsonNull
	}
	return raw
}
