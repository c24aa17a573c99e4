package sources

import (
	"strings"

	"github.com/proteincompare/backend/internal/domain"
)

// KilojouleToKcal converts an energy value in kJ to kcal
const KilojouleToKcal = 0.239006

// energyKcal prefers a direct kcal value and falls back to converting kJ
func energyKcal(kcal, kj any) *float64 {
	if v := domain.ParseNumber(kcal); v != nil {
		return v
	}
	if v := domain.ParseNumber(kj); v != nil {
		return domain.Float(*v * KilojouleToKcal)
	}
	return nil
}

// firstListItem returns the first entry of a comma separated list such as
// the "brands" field of Open Food Facts
func firstListItem(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}

// finishProduct applies the rules every external record shares: records with
// neither brand nor name are rejected, and a missing name is defaulted.
func finishProduct(p domain.Product) (domain.Product, bool) {
	if !p.Identifiable() {
		return domain.Product{}, false
	}
	if p.Product == nil {
		p.Product = domain.String(domain.UnknownProductName)
	}
	return p, true
}

var translationLanguages = []string{"en", "de", "fr", "it"}

// translation picks the English entry of a translations object, falling back
// to the other catalog languages in a fixed order
func translation(m map[string]string) string {
	for _, lang := range translationLanguages {
		if v := strings.TrimSpace(m[lang]); v != "" {
			return v
		}
	}
	return ""
}
