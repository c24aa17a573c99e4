package usecase

import (
	"reflect"
	"testing"

	"github.com/proteincompare/backend/internal/domain"
)

func withSource(p domain.Product, source string) domain.Product {
	p.Source = source
	return p
}

func TestDedupKey(t *testing.T) {
	testCases := []struct {
		name string
		p    domain.Product
		want string
	}{
		{"normalizes both fields", newProduct(" BULK ", "Vegan  Protein Powder", "Vegan"), "bulk|vegan protein powder"},
		{"strips accents", newProduct("Nutrí", "Protéine", ""), "nutri|proteine"},
		{"nil fields", domain.Product{}, "|"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DedupKey(tc.p); got != tc.want {
				t.Errorf("DedupKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMergeResults_CatalogWins(t *testing.T) {
	primary := []domain.Product{newProduct("Bulk", "Vegan Protein Powder", "Vegan")}
	external := [][]domain.Product{
		{withSource(newProduct("bulk", "VEGAN protein powder", "Vegan"), domain.SourceOpenFoodFacts)},
	}

	merged := MergeResults(primary, external, "")
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].Source != "" {
		t.Errorf("merged[0].Source = %q, want catalog entry", merged[0].Source)
	}
}

func TestMergeResults_OrderAndCrossSourceDedup(t *testing.T) {
	primary := []domain.Product{
		newProduct("MyProtein", "Impact Whey", "Whey"),
	}
	external := [][]domain.Product{
		{
			withSource(newProduct("Sponser", "Whey 94", "Whey"), domain.SourceOpenFoodFacts),
			withSource(newProduct("Vega", "Sport", "Vegan"), domain.SourceOpenFoodFacts),
		},
		{
			withSource(newProduct("Sponser", "Whey 94", "Whey"), domain.SourceFoodRepo),
			withSource(newProduct("Esn", "Designer Whey", "Whey"), domain.SourceFoodRepo),
		},
		nil,
		{
			withSource(domain.Product{Type: "Whey"}, domain.SourceOpenSupplementDB),
		},
	}

	merged := MergeResults(primary, external, "")

	want := []string{"Impact Whey", "Whey 94", "Sport", "Designer Whey"}
	if !reflect.DeepEqual(names(merged), want) {
		t.Errorf("merged = %v, want %v", names(merged), want)
	}
	if merged[1].Source != domain.SourceOpenFoodFacts {
		t.Errorf("first adapter should win among externals, got %q", merged[1].Source)
	}
}

func TestMergeResults_TypeFilterAppliesToExternalOnly(t *testing.T) {
	primary := []domain.Product{newProduct("MyProtein", "Impact Whey", "Whey")}
	external := [][]domain.Product{{
		withSource(newProduct("Vega", "Sport", "Vegan"), domain.SourceFoodRepo),
		withSource(newProduct("Esn", "Designer Whey", "Whey"), domain.SourceFoodRepo),
	}}

	merged := MergeResults(primary, external, "VEGAN")

	want := []string{"Impact Whey", "Sport"}
	if !reflect.DeepEqual(names(merged), want) {
		t.Errorf("merged = %v, want %v", names(merged), want)
	}
}

func TestMergeResults_DoesNotMutatePrimary(t *testing.T) {
	primary := []domain.Product{
		newProduct("B", "Two", ""),
		newProduct("A", "One", ""),
	}
	before := names(primary)

	MergeResults(primary, [][]domain.Product{{newProduct("C", "Three", "")}}, "")

	if !reflect.DeepEqual(names(primary), before) {
		t.Errorf("primary modified: %v", names(primary))
	}
}
