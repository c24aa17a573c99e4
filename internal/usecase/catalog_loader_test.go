package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/infrastructure/catalog"
)

// failingStore simulates an unreachable catalog store
type failingStore struct{}

func (failingStore) Read(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: connection refused", domain.ErrCatalogUnavailable)
}

func TestCatalogLoader_Load(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		store   domain.CatalogStore
		wantLen int
	}{
		{
			name:    "demo catalog",
			store:   catalog.NewDemoStore("products"),
			wantLen: 4,
		},
		{
			name:    "missing key",
			store:   catalog.NewMemoryStore(nil),
			wantLen: 0,
		},
		{
			name:    "malformed json",
			store:   catalog.NewMemoryStore(map[string][]byte{"products": []byte(`[{"brand": `)}),
			wantLen: 0,
		},
		{
			name:    "object instead of array",
			store:   catalog.NewMemoryStore(map[string][]byte{"products": []byte(`{"brand": "Bulk"}`)}),
			wantLen: 0,
		},
		{
			name:    "json null",
			store:   catalog.NewMemoryStore(map[string][]byte{"products": []byte(`null`)}),
			wantLen: 0,
		},
		{
			name:    "unreachable store",
			store:   failingStore{},
			wantLen: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewCatalogLoader(tc.store, "products").Load(ctx)
			if got == nil {
				t.Fatal("Load() returned nil, want non-nil slice")
			}
			if len(got) != tc.wantLen {
				t.Errorf("len(Load()) = %d, want %d", len(got), tc.wantLen)
			}
		})
	}
}

func TestParseCatalog_LenientNumbers(t *testing.T) {
	products, err := ParseCatalog([]byte(`[
		{"brand": "Bulk", "product": "Vegan", "pricePerKg": "28 EUR", "proteinPer100g": "n/a", "rating": 4}
	]`))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len = %d, want 1", len(products))
	}

	p := products[0]
	if p.PricePerKg == nil || *p.PricePerKg != 28 {
		t.Errorf("PricePerKg = %v, want 28", p.PricePerKg)
	}
	if p.ProteinPer100g != nil {
		t.Errorf("ProteinPer100g = %v, want nil", *p.ProteinPer100g)
	}
	if string(p.Rating) != "4" {
		t.Errorf("Rating = %s, want 4", p.Rating)
	}
}
