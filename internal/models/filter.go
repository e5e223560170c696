package models

import "fmt"

// FeeTier is a bucketed constraint over the product fee.
type FeeTier string

const (
	FeeTierAll     FeeTier = "all"
	FeeTierFree    FeeTier = "free"
	FeeTierUnder10 FeeTier = "under10"
	FeeTierUnder25 FeeTier = "under25"
)

// Valid reports whether t is a known fee tier.
func (t FeeTier) Valid() bool {
	switch t {
	case FeeTierAll, FeeTierFree, FeeTierUnder10, FeeTierUnder25:
		return true
	}
	return false
}

// BalanceTier is a bucketed constraint over the minimum balance. Tiers are
// ranges: under1000 is below $1,000, under5000 is $1,000–$4,999 and
// under10000 is $5,000–$9,999.
type BalanceTier string

const (
	BalanceTierAll        BalanceTier = "all"
	BalanceTierUnder1000  BalanceTier = "under1000"
	BalanceTierUnder5000  BalanceTier = "under5000"
	BalanceTierUnder10000 BalanceTier = "under10000"
)

// Valid reports whether t is a known balance tier.
func (t BalanceTier) Valid() bool {
	switch t {
	case BalanceTierAll, BalanceTierUnder1000, BalanceTierUnder5000, BalanceTierUnder10000:
		return true
	}
	return false
}

// FilterState holds the active facet constraints for a session. It is reset
// to defaults on category change and never persisted beyond the session.
type FilterState struct {
	SearchTerm       string      `json:"search_term,omitempty"`
	FeeTier          FeeTier     `json:"fee_tier"`
	BalanceTier      BalanceTier `json:"balance_tier"`
	RequiredFeatures []string    `json:"required_features,omitempty"`
}

// DefaultFilterState returns the unconstrained state.
func DefaultFilterState() FilterState {
	return FilterState{
		FeeTier:     FeeTierAll,
		BalanceTier: BalanceTierAll,
	}
}

// Normalize fills zero-valued tiers with their defaults so that a partially
// populated request body behaves as unconstrained.
func (f FilterState) Normalize() FilterState {
	if f.FeeTier == "" {
		f.FeeTier = FeeTierAll
	}
	if f.BalanceTier == "" {
		f.BalanceTier = BalanceTierAll
	}
	return f
}

// Validate checks the tier enums.
func (f FilterState) Validate() error {
	if !f.FeeTier.Valid() {
		return fmt.Errorf("unknown fee tier %q", f.FeeTier)
	}
	if !f.BalanceTier.Valid() {
		return fmt.Errorf("unknown balance tier %q", f.BalanceTier)
	}
	return nil
}

// SortField selects the numeric attribute products are ordered by.
type SortField string

const (
	SortByFee    SortField = "fee"
	SortByRate   SortField = "rate"
	SortByRating SortField = "rating"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByFee, SortByRate, SortByRating:
		return true
	}
	return false
}

// SortDirection is the order applied to the sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultDirection returns the direction used the first time a field is
// sorted on: ascending for fee-like fields, descending for rates and scores.
func (f SortField) DefaultDirection() SortDirection {
	if f == SortByFee {
		return SortAsc
	}
	return SortDesc
}

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortState is the active sort of a session. A zero Field means catalog
// order.
type SortState struct {
	Field     SortField     `json:"field,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}
