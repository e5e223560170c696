package models

// ComparisonColumn heads one column of the comparison table, in selection
// order.
type ComparisonColumn struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Logo      string `json:"logo,omitempty"`
}

// ComparisonRow is one labeled attribute row with a value per column.
type ComparisonRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Comparison is the side-by-side view of the selected products. The row set
// depends on the category.
type Comparison struct {
	Category Category           `json:"category"`
	Columns  []ComparisonColumn `json:"columns"`
	Rows     []ComparisonRow    `json:"rows"`
}
