package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/textnorm"
)

// matchesType reports whether the normalized type of p contains filter.
// filter must already be normalized; an empty filter matches everything.
func matchesType(p domain.Product, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(textnorm.Normalize(p.Type), filter)
}

// FilterByType keeps products whose normalized type contains typeFilter
func FilterByType(products []domain.Product, typeFilter string) []domain.Product {
	filter := textnorm.Normalize(typeFilter)
	if filter == "" {
		return products
	}

	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesType(p, filter) {
			kept = append(kept, p)
		}
	}
	return kept
}

// sortField describes how a SortKey orders products
type sortField struct {
	value      func(domain.Product) *float64
	descending bool
}

var sortFields = map[domain.SortKey]sortField{
	domain.SortPrice:    {value: func(p domain.Product) *float64 { return p.PricePerKg }},
	domain.SortProtein:  {value: func(p domain.Product) *float64 { return p.ProteinPer100g }, descending: true},
	domain.SortCalories: {value: func(p domain.Product) *float64 { return p.CaloriesPer100g }},
}

// compareNullable orders present values before nulls regardless of direction
func compareNullable(a, b *float64, descending bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case descending:
		return cmp.Compare(*b, *a)
	default:
		return cmp.Compare(*a, *b)
	}
}

// SortProducts orders products in place by key. Sorting is stable and an
// unknown or empty key leaves the order untouched.
func SortProducts(products []domain.Product, key domain.SortKey) {
	field, ok := sortFields[key]
	if !ok {
		return
	}
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		return compareNullable(field.value(a), field.value(b), field.descending)
	})
}

// ApplySortFilter filters by type then sorts by key, leaving products untouched
func ApplySortFilter(products []domain.Product, typeFilter string, key domain.SortKey) []domain.Product {
	result := slices.Clone(FilterByType(products, typeFilter))
	if result == nil {
		result = []domain.Product{}
	}
	SortProducts(result, key)
	return result
}
