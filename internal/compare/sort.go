package compare

import (
	"sort"

	"github.com/megambeast/fincompare/internal/models"
)

// Sort returns a new slice ordered by the numeric sort field. The sort is
// stable, so equal keys keep their relative catalog order, and the input is
// never mutated. A zero field returns the items unchanged (catalog order).
func Sort(items []*models.Product, field models.SortField, dir models.SortDirection) []*models.Product {
	out := make([]*models.Product, len(items))
	copy(out, items)

	if field == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := sortKey(out[i], field)
		b := sortKey(out[j], field)
		if dir == models.SortDesc {
			return a > b
		}
		return a < b
	})
	return out
}

// sortKey extracts the numeric key. Products without the field sort as zero.
func sortKey(p *models.Product, field models.SortField) float64 {
	switch field {
	case models.SortByFee:
		if fee, ok := p.Fee(); ok {
			return fee
		}
	case models.SortByRate:
		if rate, ok := p.Rate(); ok {
			return rate
		}
	case models.SortByRating:
		return p.Rating
	}
	return 0
}
