package usecase

import (
	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/textnorm"
)

// DedupKey identifies a product across sources by normalized brand and name
func DedupKey(p domain.Product) string {
	return textnorm.Normalize(p.BrandName()) + "|" + textnorm.Normalize(p.ProductName())
}

// MergeResults appends external result sets, in adapter order, after the
// primary results. External products are type filtered and any product whose
// key was already seen is dropped, so catalog entries always win. The primary
// slice is neither filtered nor reordered here.
func MergeResults(primary []domain.Product, external [][]domain.Product, typeFilter string) []domain.Product {
	merged := make([]domain.Product, 0, len(primary))
	seen := make(map[string]struct{}, len(primary))

	for _, p := range primary {
		merged = append(merged, p)
		seen[DedupKey(p)] = struct{}{}
	}

	filter := textnorm.Normalize(typeFilter)
	for _, set := range external {
		for _, p := range set {
			if !p.Identifiable() || !matchesType(p, filter) {
				continue
			}
			key := DedupKey(p)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, p)
		}
	}

	return merged
}
