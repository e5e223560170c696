package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/megambeast/fincompare/internal/models"
)

func TestLoadCatalogsFromDir(t *testing.T) {
	// Use the actual catalogs directory
	catalogsDir := filepath.Join("..", "..", "catalogs")

	// Check it exists
	if _, err := os.Stat(catalogsDir); os.IsNotExist(err) {
		t.Skip("catalogs directory not found, skipping")
	}

	loader := NewLoader()
	if err := loader.LoadFromDir(catalogsDir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	if loader.Count() < 10 {
		t.Errorf("expected at least 10 products, got %d", loader.Count())
	}

	// Every category should be populated
	for _, cat := range models.Categories() {
		if len(loader.ListByCategory(cat)) < 3 {
			t.Errorf("expected at least 3 products in %s, got %d", cat, len(loader.ListByCategory(cat)))
		}
	}

	// Spot-check banking products keep file order
	banking := loader.ListByCategory(models.CategoryBusinessBanking)
	if banking[0].ID != "b1" || banking[1].ID != "b2" || banking[2].ID != "b3" {
		t.Errorf("expected banking products in file order, got %s %s %s", banking[0].ID, banking[1].ID, banking[2].ID)
	}

	b1 := loader.Get("b1")
	if b1 == nil {
		t.Fatal("product b1 not found")
	}
	if b1.Name != "Business Pro Account" {
		t.Errorf("unexpected b1 name: %s", b1.Name)
	}
	if b1.Banking == nil || b1.Banking.MonthlyFee != 15 {
		t.Errorf("unexpected b1 banking terms: %+v", b1.Banking)
	}
	if b1.Category != models.CategoryBusinessBanking {
		t.Errorf("expected category set from file, got %s", b1.Category)
	}

	// Feature facets collect in first-seen order, deduplicated
	features := loader.Features(models.CategoryBusinessBanking)
	if len(features) == 0 {
		t.Fatal("expected banking features")
	}
	if features[0] != "Online banking" {
		t.Errorf("expected 'Online banking' first, got %q", features[0])
	}
	seen := make(map[string]bool)
	for _, f := range features {
		if seen[f] {
			t.Errorf("duplicate feature %q", f)
		}
		seen[f] = true
	}

	t.Logf("Products: %d", loader.Count())
	for _, cat := range models.Categories() {
		t.Logf("  %s: %d products, %d features", cat, len(loader.ListByCategory(cat)), len(loader.Features(cat)))
	}
}

func TestAddRejectsInvalidAndDuplicate(t *testing.T) {
	loader := NewLoader()

	valid := &models.Product{
		ID:       "x1",
		Category: models.CategorySavings,
		Name:     "Test Saver",
		Provider: "Test Bank",
		Rating:   4.0,
		Reviews:  5,
		Features: []string{"No account fees"},
		Savings:  &models.SavingsTerms{MaxRate: 5.0},
	}
	if err := loader.Add(valid); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	dup := *valid
	if err := loader.Add(&dup); err == nil {
		t.Error("expected duplicate id to be rejected")
	}

	// Terms payload must match the category
	mismatched := &models.Product{
		ID:       "x2",
		Category: models.CategorySavings,
		Name:     "Wrong Terms",
		Provider: "Test Bank",
		Rating:   4.0,
		Reviews:  5,
		Features: []string{"Mobile app"},
		Banking:  &models.BankingTerms{MonthlyFee: 5},
	}
	if err := loader.Add(mismatched); err == nil {
		t.Error("expected category/terms mismatch to be rejected")
	}

	if loader.Count() != 1 {
		t.Errorf("expected 1 product, got %d", loader.Count())
	}
}

func TestListByCategoryReturnsCopy(t *testing.T) {
	loader := NewLoader()
	p := &models.Product{
		ID:       "x1",
		Category: models.CategorySavings,
		Name:     "Test Saver",
		Provider: "Test Bank",
		Rating:   4.0,
		Reviews:  5,
		Features: []string{"No account fees"},
		Savings:  &models.SavingsTerms{MaxRate: 5.0},
	}
	if err := loader.Add(p); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list := loader.ListByCategory(models.CategorySavings)
	list[0] = nil

	again := loader.ListByCategory(models.CategorySavings)
	if again[0] == nil || again[0].ID != "x1" {
		t.Error("mutating the returned slice should not affect the catalog")
	}
}
