package storage

import (
	"context"
	"testing"
	"time"

	"github.com/megambeast/fincompare/internal/models"
)

func memorySession(id string, expiresAt time.Time) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        id,
		Category:  models.CategoryBusinessBanking,
		Filters:   models.DefaultFilterState(),
		Selection: []string{"b1"},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiresAt,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := memorySession("abc123", time.Now().Add(time.Hour))
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := store.GetSession(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.ID != "abc123" || got.Category != models.CategoryBusinessBanking {
		t.Fatalf("unexpected session: %+v", got)
	}

	// Missing sessions return nil, nil
	missing, err := store.GetSession(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for missing session, got %v, %v", missing, err)
	}

	if err := store.DeleteSession(ctx, "abc123"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if got, _ := store.GetSession(ctx, "abc123"); got != nil {
		t.Error("expected session gone after delete")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := memorySession("abc123", time.Now().Add(time.Hour))
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	// Mutating the original after save must not leak into the store
	sess.Selection[0] = "tampered"

	got, _ := store.GetSession(ctx, "abc123")
	if got.Selection[0] != "b1" {
		t.Errorf("store leaked caller mutation: %v", got.Selection)
	}

	// Mutating the returned copy must not leak either
	got.Selection[0] = "tampered"
	again, _ := store.GetSession(ctx, "abc123")
	if again.Selection[0] != "b1" {
		t.Errorf("store leaked reader mutation: %v", again.Selection)
	}
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	live := memorySession("live", time.Now().Add(time.Hour))
	dead := memorySession("dead", time.Now().Add(-time.Minute))
	for _, s := range []*models.Session{live, dead} {
		if err := store.SaveSession(ctx, s); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
	}

	removed, err := store.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != "dead" {
		t.Fatalf("expected [dead] removed, got %v", removed)
	}

	if got, _ := store.GetSession(ctx, "live"); got == nil {
		t.Error("live session should survive the sweep")
	}
	if got, _ := store.GetSession(ctx, "dead"); got != nil {
		t.Error("expired session should be gone")
	}
}
