package sources

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/proteincompare/backend/internal/domain"
)

// OpenFoodFacts searches the Open Food Facts product database
type OpenFoodFacts struct {
	client     *Client
	baseURL    string
	pageSize   int
	classifier domain.TypeClassifier
}

type offSearchResponse struct {
	Count    int          `json:"count"`
	Products []offProduct `json:"products"`
}

type offProduct struct {
	Code            any            `json:"code"`
	ProductName     string         `json:"product_name"`
	ProductNameEn   string         `json:"product_name_en"`
	GenericName     string         `json:"generic_name"`
	Brands          string         `json:"brands"`
	Categories      string         `json:"categories"`
	Origins         string         `json:"origins"`
	ServingQuantity any            `json:"serving_quantity"`
	Nutriments      map[string]any `json:"nutriments"`
	URL             string         `json:"url"`
}

// name returns the best available product name
func (p offProduct) name() string {
	for _, n := range []string{p.ProductName, p.ProductNameEn, p.GenericName} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return ""
}

// NewOpenFoodFacts creates an Open Food Facts adapter
func NewOpenFoodFacts(client *Client, classifier domain.TypeClassifier, baseURL string, pageSize int) *OpenFoodFacts {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &OpenFoodFacts{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
		classifier: classifier,
	}
}

// Name identifies the source in logs and result provenance
func (o *OpenFoodFacts) Name() string {
	return domain.SourceOpenFoodFacts
}

// Fetch returns mapped products for query; failures yield no results
func (o *OpenFoodFacts) Fetch(ctx context.Context, query string) []domain.Product {
	products, err := o.Search(ctx, query)
	if err != nil {
		log.Printf("[OFF] Search failed for query %q: %v", query, err)
		return nil
	}
	return products
}

// Search queries the full-text search endpoint and maps the response
func (o *OpenFoodFacts) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(o.pageSize))
	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", o.baseURL, params.Encode())

	var resp offSearchResponse
	if err := o.client.GetJSON(ctx, reqURL, nil, &resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Products))
	for _, item := range resp.Products {
		if p, ok := o.mapProduct(item); ok {
			products = append(products, p)
		}
	}

	o.client.debugLog("Mapped %d of %d products for query %q", len(products), len(resp.Products), query)
	return products, nil
}

func (o *OpenFoodFacts) mapProduct(item offProduct) (domain.Product, bool) {
	name := item.name()
	n := item.Nutriments

	p := domain.Product{
		Brand:              domain.String(firstListItem(item.Brands)),
		Product:            domain.String(name),
		Type:               o.classifier.Classify(name + " " + item.Categories),
		ServingSizeG:       domain.ParseNumber(item.ServingQuantity),
		ProteinPer100g:     domain.ParseNumber(n["proteins_100g"]),
		CaloriesPer100g:    energyKcal(n["energy-kcal_100g"], n["energy-kj_100g"]),
		CaloriesPerServing: energyKcal(n["energy-kcal_serving"], n["energy-kj_serving"]),
		CarbsPerServing:    domain.ParseNumber(n["carbohydrates_serving"]),
		FatPerServing:      domain.ParseNumber(n["fat_serving"]),
		Origin:             domain.String(item.Origins),
		Source:             domain.SourceOpenFoodFacts,
	}

	if code := strings.TrimSpace(domain.StringValue(item.Code)); code != "" {
		p.ID = "off-" + code
		if item.URL == "" {
			item.URL = fmt.Sprintf("%s/product/%s", o.baseURL, url.PathEscape(code))
		}
	}
	p.URL = domain.String(item.URL)

	return finishProduct(p)
}
