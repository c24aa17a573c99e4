package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/proteincompare/backend/internal/domain"
)

// FoodRepo searches the FoodRepo branded product repository. The API token is
// optional; without it the request is sent unauthenticated.
type FoodRepo struct {
	client     *Client
	baseURL    string
	token      string
	classifier domain.TypeClassifier
}

type foodRepoResponse struct {
	Data []foodRepoProduct `json:"data"`
}

type foodRepoNutrient struct {
	PerHundred any    `json:"per_hundred"`
	PerPortion any    `json:"per_portion"`
	Unit       string `json:"unit"`
}

type foodRepoProduct struct {
	ID                      any                         `json:"id"`
	Barcode                 string                      `json:"barcode"`
	Brand                   any                         `json:"brand"`
	BrandName               string                      `json:"brand_name"`
	DisplayNameTranslations map[string]string           `json:"display_name_translations"`
	NameTranslations        map[string]string           `json:"name_translations"`
	ProductName             string                      `json:"product_name"`
	Nutrients               map[string]foodRepoNutrient `json:"nutrients"`
	PortionQuantity         any                         `json:"portion_quantity"`
	OriginTranslations      map[string]string           `json:"origin_translations"`
	Origin                  any                         `json:"origin"`
	Country                 any                         `json:"country"`
	URL                     string                      `json:"url"`
}

func (p foodRepoProduct) name() string {
	if n := translation(p.DisplayNameTranslations); n != "" {
		return n
	}
	if n := translation(p.NameTranslations); n != "" {
		return n
	}
	return strings.TrimSpace(p.ProductName)
}

func (p foodRepoProduct) nutrient(key string) foodRepoNutrient {
	return p.Nutrients[key]
}

// NewFoodRepo creates a FoodRepo adapter
func NewFoodRepo(client *Client, classifier domain.TypeClassifier, baseURL, token string) *FoodRepo {
	return &FoodRepo{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		classifier: classifier,
	}
}

// Name identifies the source in logs and result provenance
func (f *FoodRepo) Name() string {
	return domain.SourceFoodRepo
}

// Fetch returns mapped products for query; failures yield no results
func (f *FoodRepo) Fetch(ctx context.Context, query string) []domain.Product {
	products, err := f.Search(ctx, query)
	if err != nil {
		log.Printf("[FOODREPO] Search failed for query %q: %v", query, err)
		return nil
	}
	return products
}

// Search queries the products endpoint and maps the response
func (f *FoodRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	reqURL := fmt.Sprintf("%s/api/v3/products?%s", f.baseURL, params.Encode())

	var header http.Header
	if f.token != "" {
		header = http.Header{}
		header.Set("Authorization", "Bearer "+f.token)
	}

	var resp foodRepoResponse
	if err := f.client.GetJSON(ctx, reqURL, header, &resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Data))
	for _, item := range resp.Data {
		if p, ok := f.mapProduct(item); ok {
			products = append(products, p)
		}
	}

	f.client.debugLog("Mapped %d of %d products for query %q", len(products), len(resp.Data), query)
	return products, nil
}

func (f *FoodRepo) mapProduct(item foodRepoProduct) (domain.Product, bool) {
	name := item.name()
	energy := item.nutrient("energy")
	energyKcalN := item.nutrient("energy_kcal")

	p := domain.Product{
		Brand:              domain.FirstString(item.Brand, item.BrandName),
		Product:            domain.String(name),
		Type:               f.classifier.Classify(name),
		ServingSizeG:       domain.ParseNumber(item.PortionQuantity),
		ProteinPer100g:     domain.ParseNumber(item.nutrient("protein").PerHundred),
		CaloriesPer100g:    energyKcal(energyKcalN.PerHundred, energy.PerHundred),
		CaloriesPerServing: energyKcal(energyKcalN.PerPortion, energy.PerPortion),
		CarbsPerServing:    domain.ParseNumber(item.nutrient("carbohydrates").PerPortion),
		FatPerServing:      domain.ParseNumber(item.nutrient("fat").PerPortion),
		Origin:             domain.FirstString(item.OriginTranslations["en"], item.Origin, item.Country),
		Source:             domain.SourceFoodRepo,
		URL:                domain.String(item.URL),
	}

	if id := strings.TrimSpace(domain.StringValue(item.ID)); id != "" {
		p.ID = "foodrepo-" + id
		if p.URL == nil {
			p.URL = domain.String(fmt.Sprintf("%s/en/products/%s", f.baseURL, url.PathEscape(id)))
		}
	}

	return finishProduct(p)
}
