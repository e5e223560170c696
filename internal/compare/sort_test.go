package compare

import (
	"testing"

	"github.com/megambeast/fincompare/internal/models"
)

func TestSortByFeeAscending(t *testing.T) {
	items := bankingFixture() // fees 15, 0, 25

	got := Sort(items, models.SortByFee, models.SortAsc)
	assertIDs(t, got, "b2", "b1", "b3")
}

func TestSortByFeeDescending(t *testing.T) {
	items := bankingFixture()

	got := Sort(items, models.SortByFee, models.SortDesc)
	assertIDs(t, got, "b3", "b1", "b2")
}

func TestSortByRating(t *testing.T) {
	items := bankingFixture()
	items[0].Rating = 4.5
	items[1].Rating = 4.2
	items[2].Rating = 4.7

	got := Sort(items, models.SortByRating, models.SortDesc)
	assertIDs(t, got, "b3", "b1", "b2")
}

func TestSortIsStable(t *testing.T) {
	items := []*models.Product{
		bankingProduct("b1", "A", "P", 10, 0),
		bankingProduct("b2", "B", "P", 10, 0),
		bankingProduct("b3", "C", "P", 5, 0),
		bankingProduct("b4", "D", "P", 10, 0),
	}

	got := Sort(items, models.SortByFee, models.SortAsc)
	assertIDs(t, got, "b3", "b1", "b2", "b4")
}

func TestSortEmptyFieldKeepsCatalogOrder(t *testing.T) {
	items := bankingFixture()

	got := Sort(items, "", models.SortAsc)
	assertIDs(t, got, "b1", "b2", "b3")
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := bankingFixture()

	Sort(items, models.SortByFee, models.SortAsc)
	assertIDs(t, items, "b1", "b2", "b3")
}

func TestSortMissingFieldSortsAsZero(t *testing.T) {
	items := []*models.Product{
		bankingProduct("b1", "A", "P", 10, 0),
		savingsProduct("s1", "S", 5.4), // no fee field
	}

	got := Sort(items, models.SortByFee, models.SortAsc)
	assertIDs(t, got, "s1", "b1")
}

func TestDirectionToggleRoundTrips(t *testing.T) {
	d := models.SortByRate.DefaultDirection()
	if d != models.SortDesc {
		t.Fatalf("expected rate default desc, got %s", d)
	}
	if models.SortByFee.DefaultDirection() != models.SortAsc {
		t.Fatal("expected fee default asc")
	}

	// An even number of toggles restores the starting direction
	if d.Toggle().Toggle() != d {
		t.Error("double toggle should round-trip")
	}
}
