package compare

import (
	"strings"

	"github.com/megambeast/fincompare/internal/models"
)

// Filter returns the products visible under the given category and filter
// state. All active constraints are ANDed. The input is not mutated and
// matches keep their catalog order. An empty result is a valid result.
func Filter(items []*models.Product, category models.Category, state models.FilterState) []*models.Product {
	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	out := make([]*models.Product, 0, len(items))
	for _, p := range items {
		if p.Category != category {
			continue
		}
		if !matchSearch(p, term) {
			continue
		}
		if !matchFeeTier(p, state.FeeTier) {
			continue
		}
		if !matchBalanceTier(p, category, state.BalanceTier) {
			continue
		}
		if !hasAllFeatures(p, state.RequiredFeatures) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchSearch does a case-insensitive substring match against the product
// name and provider. An empty term matches everything.
func matchSearch(p *models.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Provider), term)
}

// matchFeeTier buckets on the category's fee field. A product without a fee
// field is excluded whenever a non-all tier is active.
func matchFeeTier(p *models.Product, tier models.FeeTier) bool {
	if tier == models.FeeTierAll {
		return true
	}
	fee, ok := p.Fee()
	if !ok {
		return false
	}
	switch tier {
	case models.FeeTierFree:
		return fee == 0
	case models.FeeTierUnder10:
		return fee > 0 && fee <= 10
	case models.FeeTierUnder25:
		return fee > 0 && fee <= 25
	}
	return false
}

// matchBalanceTier buckets on the minimum balance. The constraint only
// applies to categories that define a balance facet.
func matchBalanceTier(p *models.Product, category models.Category, tier models.BalanceTier) bool {
	if tier == models.BalanceTierAll || !category.HasBalanceFacet() {
		return true
	}
	bal, ok := p.MinBalance()
	if !ok {
		return false
	}
	switch tier {
	case models.BalanceTierUnder1000:
		return bal < 1000
	case models.BalanceTierUnder5000:
		return bal >= 1000 && bal < 5000
	case models.BalanceTierUnder10000:
		return bal >= 5000 && bal < 10000
	}
	return false
}

// hasAllFeatures requires every tag, matched exactly and case-sensitively.
func hasAllFeatures(p *models.Product, required []string) bool {
	for _, tag := range required {
		if !p.HasFeature(tag) {
			return false
		}
	}
	return true
}
