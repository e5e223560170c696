package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/megambeast/fincompare/internal/catalog"
	"github.com/megambeast/fincompare/internal/models"
)

type fakeSource struct {
	items []models.RecommendedItem
	err   error
	calls int
}

func (f *fakeSource) Recommend(ctx context.Context, userID string, category models.Category) ([]models.RecommendedItem, error) {
	f.calls++
	return f.items, f.err
}

func testCatalog(t *testing.T, ids ...string) *catalog.Loader {
	t.Helper()
	loader := catalog.NewLoader()
	for _, id := range ids {
		p := &models.Product{
			ID:       id,
			Category: models.CategorySavings,
			Name:     "Account " + id,
			Provider: "Test Bank",
			Rating:   4.0,
			Reviews:  10,
			Features: []string{"Mobile app"},
			Savings:  &models.SavingsTerms{MaxRate: 5.0},
		}
		if err := loader.Add(p); err != nil {
			t.Fatalf("failed to add %s: %v", id, err)
		}
	}
	return loader
}

// identityShuffle keeps catalog order so fallback output is predictable.
func identityShuffle(n int, swap func(i, j int)) {}

func TestForUsesCollaboratorResults(t *testing.T) {
	loader := testCatalog(t, "s1", "s2", "s3")
	source := &fakeSource{items: []models.RecommendedItem{
		{ProductID: "s2", Explanation: "Best rate for your balance"},
		{ProductID: "s1", Explanation: "Popular in your area"},
	}}

	svc := NewService(loader, source)
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ProductID != "s2" || recs[1].ProductID != "s1" {
		t.Errorf("expected collaborator order preserved, got %s %s", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].Explanation != "Best rate for your balance" {
		t.Errorf("unexpected explanation: %q", recs[0].Explanation)
	}
	if recs[0].Product == nil || recs[0].Product.Name != "Account s2" {
		t.Error("expected recommendation resolved against the catalog")
	}
}

func TestForDropsUnknownIDs(t *testing.T) {
	loader := testCatalog(t, "s1")
	source := &fakeSource{items: []models.RecommendedItem{
		{ProductID: "s1", Explanation: "Known"},
		{ProductID: "ghost", Explanation: "Unknown"},
	}}

	svc := NewService(loader, source)
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 1 || recs[0].ProductID != "s1" {
		t.Fatalf("expected only the known id, got %+v", recs)
	}
}

func TestForFallsBackOnError(t *testing.T) {
	loader := testCatalog(t, "s1", "s2", "s3", "s4", "s5")
	source := &fakeSource{err: errors.New("connection refused")}

	svc := NewService(loader, source, WithShuffle(identityShuffle))
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 4 {
		t.Fatalf("expected at most 4 fallback recommendations, got %d", len(recs))
	}
	// Identity shuffle keeps catalog order
	for i, want := range []string{"s1", "s2", "s3", "s4"} {
		if recs[i].ProductID != want {
			t.Errorf("expected %s at %d, got %s", want, i, recs[i].ProductID)
		}
	}
	// Canned phrases cycle by index
	for i, rec := range recs {
		if rec.Explanation != fallbackReasons[i%len(fallbackReasons)] {
			t.Errorf("unexpected explanation at %d: %q", i, rec.Explanation)
		}
	}
}

func TestForFallsBackOnEmptyAnswer(t *testing.T) {
	loader := testCatalog(t, "s1", "s2")
	source := &fakeSource{} // no error, no items

	svc := NewService(loader, source, WithShuffle(identityShuffle))
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 2 {
		t.Fatalf("expected fallback capped at category size, got %d", len(recs))
	}
}

func TestForEmptyCategory(t *testing.T) {
	loader := testCatalog(t)
	source := &fakeSource{err: errors.New("down")}

	svc := NewService(loader, source)
	if recs := svc.For(context.Background(), "user-1", models.CategorySavings); len(recs) != 0 {
		t.Errorf("expected no recommendations for an empty category, got %d", len(recs))
	}
}

type hitCache struct {
	stored []*models.Recommendation
	sets   int
}

func (c *hitCache) GetRecommendations(ctx context.Context, userID string, category models.Category) ([]*models.Recommendation, error) {
	return c.stored, nil
}

func (c *hitCache) SetRecommendations(ctx context.Context, userID string, category models.Category, recs []*models.Recommendation, ttl time.Duration) error {
	c.sets++
	return nil
}

func TestForServesCachedList(t *testing.T) {
	loader := testCatalog(t, "s1")
	source := &fakeSource{items: []models.RecommendedItem{{ProductID: "s1", Explanation: "fresh"}}}
	cache := &hitCache{stored: []*models.Recommendation{{ProductID: "s1", Explanation: "cached"}}}

	svc := NewService(loader, source, WithCache(cache, 0))
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 1 || recs[0].Explanation != "cached" {
		t.Fatalf("expected the cached list, got %+v", recs)
	}
	if source.calls != 0 {
		t.Errorf("expected collaborator untouched on cache hit, got %d calls", source.calls)
	}
	if cache.sets != 0 {
		t.Errorf("expected no cache write on hit, got %d", cache.sets)
	}
}

func TestForWritesCacheOnMiss(t *testing.T) {
	loader := testCatalog(t, "s1")
	source := &fakeSource{items: []models.RecommendedItem{{ProductID: "s1", Explanation: "fresh"}}}
	cache := &hitCache{}

	svc := NewService(loader, source, WithCache(cache, 0))
	recs := svc.For(context.Background(), "user-1", models.CategorySavings)

	if len(recs) != 1 || recs[0].Explanation != "fresh" {
		t.Fatalf("expected the collaborator list, got %+v", recs)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
}
