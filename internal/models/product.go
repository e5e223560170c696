package models

import (
	"fmt"
	"strings"
)

// Category identifies a product vertical. Each category carries its own
// terms payload on Product.
type Category string

const (
	CategoryBusinessBanking Category = "business-banking"
	CategoryFXAccounts      Category = "fx-accounts"
	CategoryCorporateCards  Category = "corporate-cards"
	CategorySavings         Category = "savings"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryBusinessBanking,
		CategoryFXAccounts,
		CategoryCorporateCards,
		CategorySavings,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBusinessBanking, CategoryFXAccounts, CategoryCorporateCards, CategorySavings:
		return true
	}
	return false
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryBusinessBanking:
		return "Business Banking"
	case CategoryFXAccounts:
		return "FX Accounts"
	case CategoryCorporateCards:
		return "Corporate Cards"
	case CategorySavings:
		return "Savings Accounts"
	}
	return string(c)
}

// HasBalanceFacet reports whether the category defines a minimum balance
// that the balance tier filter can bucket on.
func (c Category) HasBalanceFacet() bool {
	return c == CategoryBusinessBanking
}

// Product is a comparable financial product. Common identity and review
// fields are shared across categories; the category-specific terms live in
// exactly one of the payload structs.
type Product struct {
	ID       string   `yaml:"id" json:"id"`
	Category Category `yaml:"-" json:"category"`
	Name     string   `yaml:"name" json:"name"`
	Provider string   `yaml:"provider" json:"provider"`
	Logo     string   `yaml:"logo" json:"logo,omitempty"`
	Rating   float64  `yaml:"rating" json:"rating"`
	Reviews  int      `yaml:"reviews" json:"reviews"`
	Promo    string   `yaml:"promo" json:"promo,omitempty"`
	Features []string `yaml:"features" json:"features"`

	Banking *BankingTerms `yaml:"banking,omitempty" json:"banking,omitempty"`
	FX      *FXTerms      `yaml:"fx,omitempty" json:"fx,omitempty"`
	Card    *CardTerms    `yaml:"card,omitempty" json:"card,omitempty"`
	Savings *SavingsTerms `yaml:"savings,omitempty" json:"savings,omitempty"`
}

// BankingTerms holds business transaction account terms.
type BankingTerms struct {
	MonthlyFee     float64 `yaml:"monthly_fee" json:"monthly_fee"`
	InterestRate   float64 `yaml:"interest_rate" json:"interest_rate"`
	MinBalance     float64 `yaml:"min_balance" json:"min_balance"`
	TransactionFee string  `yaml:"transaction_fee" json:"transaction_fee,omitempty"`
}

// FXTerms holds foreign exchange account terms. ExchangeMargin is the
// percentage margin over the mid-market rate.
type FXTerms struct {
	MonthlyFee     float64 `yaml:"monthly_fee" json:"monthly_fee"`
	ExchangeMargin float64 `yaml:"exchange_margin" json:"exchange_margin"`
	TransferFee    string  `yaml:"transfer_fee" json:"transfer_fee,omitempty"`
}

// CardTerms holds corporate card terms.
type CardTerms struct {
	AnnualFee    float64 `yaml:"annual_fee" json:"annual_fee"`
	InterestRate float64 `yaml:"interest_rate" json:"interest_rate"`
	RewardsRate  float64 `yaml:"rewards_rate" json:"rewards_rate"`
	Rewards      string  `yaml:"rewards" json:"rewards,omitempty"`
}

// SavingsTerms holds savings account terms.
type SavingsTerms struct {
	MaxRate     float64 `yaml:"max_rate" json:"max_rate"`
	BaseRate    float64 `yaml:"base_rate" json:"base_rate"`
	Conditions  string  `yaml:"conditions" json:"conditions,omitempty"`
	FinderScore float64 `yaml:"finder_score" json:"finder_score"`
}

// Fee returns the fee the fee tier filter buckets on: the monthly fee for
// banking and FX products, the annual fee for cards. Savings accounts have
// no fee facet and report absent.
func (p *Product) Fee() (float64, bool) {
	switch {
	case p.Banking != nil:
		return p.Banking.MonthlyFee, true
	case p.FX != nil:
		return p.FX.MonthlyFee, true
	case p.Card != nil:
		return p.Card.AnnualFee, true
	}
	return 0, false
}

// MinBalance returns the minimum balance requirement where the category
// defines one.
func (p *Product) MinBalance() (float64, bool) {
	if p.Banking != nil {
		return p.Banking.MinBalance, true
	}
	return 0, false
}

// Rate returns the headline rate for sorting: interest rate for banking and
// cards, exchange margin for FX, maximum rate for savings.
func (p *Product) Rate() (float64, bool) {
	switch {
	case p.Banking != nil:
		return p.Banking.InterestRate, true
	case p.FX != nil:
		return p.FX.ExchangeMargin, true
	case p.Card != nil:
		return p.Card.InterestRate, true
	case p.Savings != nil:
		return p.Savings.MaxRate, true
	}
	return 0, false
}

// HasFeature reports whether the product carries the exact feature tag.
// Matching is case-sensitive.
func (p *Product) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// termsCategory returns the category implied by the populated terms payload.
func (p *Product) termsCategory() (Category, int) {
	var cat Category
	n := 0
	if p.Banking != nil {
		cat = CategoryBusinessBanking
		n++
	}
	if p.FX != nil {
		cat = CategoryFXAccounts
		n++
	}
	if p.Card != nil {
		cat = CategoryCorporateCards
		n++
	}
	if p.Savings != nil {
		cat = CategorySavings
		n++
	}
	return cat, n
}

// Validate checks catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %s: name is required", p.ID)
	}
	if strings.TrimSpace(p.Provider) == "" {
		return fmt.Errorf("product %s: provider is required", p.ID)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %s: rating %.2f out of range", p.ID, p.Rating)
	}
	if p.Reviews < 0 {
		return fmt.Errorf("product %s: negative review count", p.ID)
	}
	if len(p.Features) == 0 {
		return fmt.Errorf("product %s: at least one feature is required", p.ID)
	}
	for _, f := range p.Features {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("product %s: empty feature tag", p.ID)
		}
	}
	cat, n := p.termsCategory()
	if n != 1 {
		return fmt.Errorf("product %s: exactly one terms payload is required, got %d", p.ID, n)
	}
	if cat != p.Category {
		return fmt.Errorf("product %s: terms payload %s does not match category %s", p.ID, cat, p.Category)
	}
	if fee, ok := p.Fee(); ok && fee < 0 {
		return fmt.Errorf("product %s: negative fee", p.ID)
	}
	if bal, ok := p.MinBalance(); ok && bal < 0 {
		return fmt.Errorf("product %s: negative minimum balance", p.ID)
	}
	return nil
}
