package compare

import (
	"fmt"

	"github.com/megambeast/fincompare/internal/models"
)

// rowTemplate names one comparison row and extracts its cell value.
type rowTemplate struct {
	label string
	value func(p *models.Product) string
}

// categoryRows is the per-category row dispatch table. Rows common to every
// category (features, promotion, rating) are appended by BuildComparison.
var categoryRows = map[models.Category][]rowTemplate{
	models.CategoryBusinessBanking: {
		{"Monthly Fee", func(p *models.Product) string { return feeCell(p.Banking.MonthlyFee) }},
		{"Interest Rate", func(p *models.Product) string { return percentCell(p.Banking.InterestRate) }},
		{"Minimum Balance", func(p *models.Product) string { return moneyCell(p.Banking.MinBalance) }},
		{"Transaction Fees", func(p *models.Product) string { return p.Banking.TransactionFee }},
	},
	models.CategoryFXAccounts: {
		{"Monthly Fee", func(p *models.Product) string { return feeCell(p.FX.MonthlyFee) }},
		{"Exchange Rate", func(p *models.Product) string { return fmt.Sprintf("Mid-market + %s", percentCell(p.FX.ExchangeMargin)) }},
		{"Transfer Fee", func(p *models.Product) string { return p.FX.TransferFee }},
	},
	models.CategoryCorporateCards: {
		{"Annual Fee", func(p *models.Product) string { return feeCell(p.Card.AnnualFee) }},
		{"Interest Rate", func(p *models.Product) string { return percentCell(p.Card.InterestRate) }},
		{"Rewards", func(p *models.Product) string { return p.Card.Rewards }},
	},
	models.CategorySavings: {
		{"Max Rate", func(p *models.Product) string { return fmt.Sprintf("%s p.a.", percentCell(p.Savings.MaxRate)) }},
		{"Base Rate", func(p *models.Product) string { return fmt.Sprintf("%s p.a.", percentCell(p.Savings.BaseRate)) }},
		{"Conditions", func(p *models.Product) string { return p.Savings.Conditions }},
		{"Finder Score", func(p *models.Product) string { return fmt.Sprintf("%.1f", p.Savings.FinderScore) }},
	},
}

// BuildComparison renders the side-by-side table for the selected products,
// columns in selection order. Products outside the category get empty cells
// for category rows rather than breaking the table.
func BuildComparison(category models.Category, products []*models.Product) *models.Comparison {
	cmp := &models.Comparison{
		Category: category,
		Columns:  make([]models.ComparisonColumn, 0, len(products)),
	}

	for _, p := range products {
		cmp.Columns = append(cmp.Columns, models.ComparisonColumn{
			ProductID: p.ID,
			Name:      p.Name,
			Provider:  p.Provider,
			Logo:      p.Logo,
		})
	}

	rows := categoryRows[category]
	for _, tmpl := range rows {
		row := models.ComparisonRow{Label: tmpl.label}
		for _, p := range products {
			if p.Category != category {
				row.Values = append(row.Values, "")
				continue
			}
			row.Values = append(row.Values, tmpl.value(p))
		}
		cmp.Rows = append(cmp.Rows, row)
	}

	cmp.Rows = append(cmp.Rows, featuresRow(products), promoRow(products), ratingRow(products))
	return cmp
}

func featuresRow(products []*models.Product) models.ComparisonRow {
	row := models.ComparisonRow{Label: "Features"}
	for _, p := range products {
		row.Values = append(row.Values, joinFeatures(p.Features))
	}
	return row
}

func promoRow(products []*models.Product) models.ComparisonRow {
	row := models.ComparisonRow{Label: "Current Promotion"}
	for _, p := range products {
		row.Values = append(row.Values, p.Promo)
	}
	return row
}

func ratingRow(products []*models.Product) models.ComparisonRow {
	row := models.ComparisonRow{Label: "Rating"}
	for _, p := range products {
		row.Values = append(row.Values, fmt.Sprintf("%.1f/5 (%d reviews)", p.Rating, p.Reviews))
	}
	return row
}

func joinFeatures(features []string) string {
	out := ""
	for i, f := range features {
		if i > 0 {
			out += ", "
		}
		out += f
	}
	return out
}

func feeCell(fee float64) string {
	if fee == 0 {
		return "$0 (Free)"
	}
	return moneyCell(fee)
}

func moneyCell(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func percentCell(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
