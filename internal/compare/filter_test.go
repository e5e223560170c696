package compare

import (
	"testing"

	"github.com/megambeast/fincompare/internal/models"
)

func bankingProduct(id, name, provider string, fee, minBalance float64) *models.Product {
	return &models.Product{
		ID:       id,
		Category: models.CategoryBusinessBanking,
		Name:     name,
		Provider: provider,
		Rating:   4.0,
		Reviews:  10,
		Features: []string{"Online banking", "Mobile app"},
		Banking: &models.BankingTerms{
			MonthlyFee: fee,
			MinBalance: minBalance,
		},
	}
}

func savingsProduct(id, name string, maxRate float64) *models.Product {
	return &models.Product{
		ID:       id,
		Category: models.CategorySavings,
		Name:     name,
		Provider: "Test Bank",
		Rating:   4.0,
		Reviews:  10,
		Features: []string{"No account fees"},
		Savings:  &models.SavingsTerms{MaxRate: maxRate},
	}
}

func bankingFixture() []*models.Product {
	return []*models.Product{
		bankingProduct("b1", "Business Pro Account", "National Bank", 15, 5000),
		bankingProduct("b2", "Startup Business Account", "Metro Bank", 0, 1000),
		bankingProduct("b3", "Enterprise Solution", "Commerce Bank", 25, 10000),
	}
}

func ids(products []*models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []*models.Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestFilterDefaultStateKeepsCategoryOrder(t *testing.T) {
	items := bankingFixture()
	items = append(items, savingsProduct("s1", "ING Savings Maximiser", 5.4))

	got := Filter(items, models.CategoryBusinessBanking, models.DefaultFilterState())
	assertIDs(t, got, "b1", "b2", "b3")
}

func TestFilterIsIdempotent(t *testing.T) {
	state := models.FilterState{
		FeeTier:     models.FeeTierUnder25,
		BalanceTier: models.BalanceTierAll,
	}

	once := Filter(bankingFixture(), models.CategoryBusinessBanking, state)
	twice := Filter(once, models.CategoryBusinessBanking, state)
	assertIDs(t, twice, ids(once)...)
}

func TestFilterFeeTiers(t *testing.T) {
	items := bankingFixture() // fees 15, 0, 25

	tests := []struct {
		tier models.FeeTier
		want []string
	}{
		{models.FeeTierAll, []string{"b1", "b2", "b3"}},
		{models.FeeTierFree, []string{"b2"}},
		{models.FeeTierUnder10, []string{}},
		{models.FeeTierUnder25, []string{"b1", "b3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			state := models.DefaultFilterState()
			state.FeeTier = tt.tier
			got := Filter(items, models.CategoryBusinessBanking, state)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterFeeTierExcludesProductsWithoutFee(t *testing.T) {
	items := []*models.Product{savingsProduct("s1", "ING Savings Maximiser", 5.4)}

	state := models.DefaultFilterState()
	state.FeeTier = models.FeeTierFree
	if got := Filter(items, models.CategorySavings, state); len(got) != 0 {
		t.Errorf("expected no products without a fee field under a fee tier, got %v", ids(got))
	}

	state.FeeTier = models.FeeTierAll
	if got := Filter(items, models.CategorySavings, state); len(got) != 1 {
		t.Errorf("expected the product back under the all tier, got %v", ids(got))
	}
}

func TestFilterBalanceTiersAreRanges(t *testing.T) {
	items := bankingFixture() // balances 5000, 1000, 10000

	tests := []struct {
		tier models.BalanceTier
		want []string
	}{
		{models.BalanceTierAll, []string{"b1", "b2", "b3"}},
		{models.BalanceTierUnder1000, []string{}},
		{models.BalanceTierUnder5000, []string{"b2"}},
		{models.BalanceTierUnder10000, []string{"b1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			state := models.DefaultFilterState()
			state.BalanceTier = tt.tier
			got := Filter(items, models.CategoryBusinessBanking, state)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestFilterBalanceTierIgnoredOutsideBalanceCategories(t *testing.T) {
	items := []*models.Product{savingsProduct("s1", "ING Savings Maximiser", 5.4)}

	state := models.DefaultFilterState()
	state.BalanceTier = models.BalanceTierUnder1000
	got := Filter(items, models.CategorySavings, state)
	assertIDs(t, got, "s1")
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	items := bankingFixture()

	state := models.DefaultFilterState()
	state.SearchTerm = "METRO"
	assertIDs(t, Filter(items, models.CategoryBusinessBanking, state), "b2")

	// Matches provider as well as name
	state.SearchTerm = "commerce"
	assertIDs(t, Filter(items, models.CategoryBusinessBanking, state), "b3")

	state.SearchTerm = "no such product"
	if got := Filter(items, models.CategoryBusinessBanking, state); len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}

func TestFilterFeaturesAreANDedAndCaseSensitive(t *testing.T) {
	items := bankingFixture()
	items[0].Features = append(items[0].Features, "24/7 support")

	state := models.DefaultFilterState()
	state.RequiredFeatures = []string{"Online banking", "24/7 support"}
	assertIDs(t, Filter(items, models.CategoryBusinessBanking, state), "b1")

	// Tag matching is exact, not case-folded
	state.RequiredFeatures = []string{"online banking"}
	if got := Filter(items, models.CategoryBusinessBanking, state); len(got) != 0 {
		t.Errorf("expected case-sensitive tag match to exclude all, got %v", ids(got))
	}
}

func TestFilterCombinesAllConstraints(t *testing.T) {
	items := bankingFixture()

	state := models.FilterState{
		SearchTerm:       "account",
		FeeTier:          models.FeeTierUnder25,
		BalanceTier:      models.BalanceTierUnder10000,
		RequiredFeatures: []string{"Mobile app"},
	}
	assertIDs(t, Filter(items, models.CategoryBusinessBanking, state), "b1")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := bankingFixture()
	before := ids(items)

	state := models.DefaultFilterState()
	state.FeeTier = models.FeeTierFree
	Filter(items, models.CategoryBusinessBanking, state)

	after := ids(items)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input order changed: %v -> %v", before, after)
		}
	}
}
