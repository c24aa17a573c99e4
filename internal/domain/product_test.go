package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float", 82.5, Float(82.5)},
		{"int", 30, Float(30)},
		{"json number", json.Number("120"), Float(120)},
		{"numeric string", "32", Float(32)},
		{"string with unit", "32 EUR", Float(32)},
		{"currency prefix", "€40", Float(40)},
		{"negative", "-1.5", Float(-1.5)},
		{"unparseable string", "n/a", nil},
		{"blank string", "  ", nil},
		{"NaN", math.NaN(), nil},
		{"infinity", math.Inf(1), nil},
		{"bool", true, nil},
		{"nil pointer", (*float64)(nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestFirstNumberAndString(t *testing.T) {
	assert.Equal(t, Float(7), FirstNumber(nil, "x", 7, 9))
	assert.Nil(t, FirstNumber("", nil))

	s := FirstString("", "  ", 12.0, "later")
	require.NotNil(t, s)
	assert.Equal(t, "12", *s)
	assert.Nil(t, FirstString(nil, " "))
	assert.Nil(t, String("   "))
	assert.Equal(t, "Bulk", *String("  Bulk "))
}

func TestProduct_UnmarshalJSON(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{
		"id": 17,
		"brand": "Bulk",
		"product": "Vegan Protein Powder",
		"type": "Vegan",
		"pricePerKg": "28",
		"proteinPer100g": 77,
		"caloriesPerServing": "abc",
		"allergens": ["soy"],
		"source": "FoodRepo"
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "17", p.ID)
	assert.Equal(t, "Bulk", p.BrandName())
	assert.Equal(t, "Vegan Protein Powder", p.ProductName())
	assert.Equal(t, "Vegan", p.Type)
	assert.Equal(t, Float(28), p.PricePerKg)
	assert.Equal(t, Float(77), p.ProteinPer100g)
	assert.Nil(t, p.CaloriesPerServing)
	assert.JSONEq(t, `["soy"]`, string(p.Allergens))
	assert.Equal(t, "null", string(p.Rating))
	assert.Equal(t, SourceFoodRepo, p.Source)
}

func TestProduct_Identifiable(t *testing.T) {
	blank := "  "
	name := "ISO100"

	assert.False(t, Product{}.Identifiable())
	assert.False(t, Product{Brand: &blank, Product: &blank}.Identifiable())
	assert.True(t, Product{Product: &name}.Identifiable())
}

func TestProduct_ForResponse(t *testing.T) {
	nan := math.NaN()
	p := Product{PricePerKg: &nan, ProteinPer100g: Float(80)}

	data, err := json.Marshal(p.ForResponse())
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "null", string(out["origin"]))
	assert.Equal(t, "null", string(out["pricePerKg"]))
	assert.Equal(t, "80", string(out["proteinPer100g"]))
	assert.Equal(t, "null", string(out["sweeteners"]))
	assert.Equal(t, "null", string(out["rating"]))
	assert.NotContains(t, out, "source")
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPrice, ParseSortKey("price"))
	assert.Equal(t, SortProtein, ParseSortKey(" Protein "))
	assert.Equal(t, SortCalories, ParseSortKey("CALORIES"))
	assert.Equal(t, SortNone, ParseSortKey("rating"))
	assert.Equal(t, SortNone, ParseSortKey(""))
}
