package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/megambeast/fincompare/internal/catalog"
	"github.com/megambeast/fincompare/internal/models"
	"github.com/megambeast/fincompare/internal/storage"
)

// Common errors
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryUnknown  = errors.New("unknown category")
	ErrSortFieldUnknown = errors.New("unknown sort field")
	ErrFilterInvalid    = errors.New("invalid filter state")
)

// Manager defines the interface for comparison session management
type Manager interface {
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	SetCategory(ctx context.Context, id string, category models.Category) (*models.Session, error)
	SetFilters(ctx context.Context, id string, filters models.FilterState) (*models.Session, error)
	ResetFilters(ctx context.Context, id string) (*models.Session, error)
	SortBy(ctx context.Context, id string, field models.SortField) (*models.Session, error)
	ToggleSelection(ctx context.Context, id, productID string) (*models.Session, error)
	ClearSelection(ctx context.Context, id string) (*models.Session, error)
	VisibleProducts(ctx context.Context, id string) ([]*models.Product, error)
	Comparison(ctx context.Context, id string) (*models.Comparison, error)
	Ping(ctx context.Context) error
}

// StoreManager implements Manager over a catalog and a session store. All
// state transitions run the pure engine functions and persist the result;
// nothing is kept in the manager itself.
type StoreManager struct {
	catalog *catalog.Loader
	store   storage.SessionStore
	ttl     time.Duration
}

// NewManager creates a StoreManager.
func NewManager(loader *catalog.Loader, store storage.SessionStore, ttl time.Duration) *StoreManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &StoreManager{
		catalog: loader,
		store:   store,
		ttl:     ttl,
	}
}

// Ping checks that the session store is reachable.
func (m *StoreManager) Ping(ctx context.Context) error {
	if err := m.store.Ping(ctx); err != nil {
		return fmt.Errorf("session store ping failed: %w", err)
	}
	return nil
}

// CreateSession starts a new comparison session in the given category with
// default filters, no sort and an empty selection.
func (m *StoreManager) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error) {
	category := req.Category
	if category == "" {
		category = models.CategoryBusinessBanking
	}
	if !category.Valid() {
		return nil, ErrCategoryUnknown
	}

	now := time.Now()
	s := &models.Session{
		ID:        uuid.New().String()[:12],
		UserID:    req.UserID,
		Category:  category,
		Filters:   models.DefaultFilterState(),
		Selection: []string{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// GetSession retrieves a live session by id.
func (m *StoreManager) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if s == nil || s.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// DeleteSession removes a session.
func (m *StoreManager) DeleteSession(ctx context.Context, id string) error {
	s, err := m.store.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if s == nil {
		return ErrSessionNotFound
	}
	return m.store.DeleteSession(ctx, id)
}

// SetCategory switches the session to another category. Filters, sort and
// selection are always reset; the old state has no meaning in the new
// category.
func (m *StoreManager) SetCategory(ctx context.Context, id string, category models.Category) (*models.Session, error) {
	if !category.Valid() {
		return nil, ErrCategoryUnknown
	}
	return m.update(ctx, id, func(s *models.Session) error {
		s.Category = category
		s.Filters = models.DefaultFilterState()
		s.Sort = models.SortState{}
		s.Selection = []string{}
		return nil
	})
}

// SetFilters replaces the session's filter state.
func (m *StoreManager) SetFilters(ctx context.Context, id string, filters models.FilterState) (*models.Session, error) {
	filters = filters.Normalize()
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFilterInvalid, err)
	}
	return m.update(ctx, id, func(s *models.Session) error {
		s.Filters = filters
		return nil
	})
}

// ResetFilters restores the default filter state.
func (m *StoreManager) ResetFilters(ctx context.Context, id string) (*models.Session, error) {
	return m.update(ctx, id, func(s *models.Session) error {
		s.Filters = models.DefaultFilterState()
		return nil
	})
}

// SortBy orders the session's list by the field. Repeating the active field
// flips the direction; a new field starts at its default direction.
func (m *StoreManager) SortBy(ctx context.Context, id string, field models.SortField) (*models.Session, error) {
	if !field.Valid() {
		return nil, ErrSortFieldUnknown
	}
	return m.update(ctx, id, func(s *models.Session) error {
		if s.Sort.Field == field {
			s.Sort.Direction = s.Sort.Direction.Toggle()
			return nil
		}
		s.Sort = models.SortState{Field: field, Direction: field.DefaultDirection()}
		return nil
	})
}

// ToggleSelection flips a catalog product in or out of the comparison
// selection. Adding past capacity is a no-op, not an error.
func (m *StoreManager) ToggleSelection(ctx context.Context, id, productID string) (*models.Session, error) {
	if m.catalog.Get(productID) == nil {
		return nil, ErrProductNotFound
	}
	return m.update(ctx, id, func(s *models.Session) error {
		s.Selection = Toggle(s.Selection, productID)
		return nil
	})
}

// ClearSelection empties the comparison selection.
func (m *StoreManager) ClearSelection(ctx context.Context, id string) (*models.Session, error) {
	return m.update(ctx, id, func(s *models.Session) error {
		s.Selection = []string{}
		return nil
	})
}

// VisibleProducts runs the session's filters and sort over the catalog.
func (m *StoreManager) VisibleProducts(ctx context.Context, id string) ([]*models.Product, error) {
	s, err := m.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	items := m.catalog.ListByCategory(s.Category)
	items = Filter(items, s.Category, s.Filters)
	return Sort(items, s.Sort.Field, s.Sort.Direction), nil
}

// Comparison builds the side-by-side view of the selected products in
// selection order. Selected ids no longer in the catalog are skipped.
func (m *StoreManager) Comparison(ctx context.Context, id string) (*models.Comparison, error) {
	s, err := m.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	products := make([]*models.Product, 0, len(s.Selection))
	for _, pid := range s.Selection {
		if p := m.catalog.Get(pid); p != nil {
			products = append(products, p)
		}
	}
	return BuildComparison(s.Category, products), nil
}

// update loads, mutates and saves a session, refreshing its timestamps.
func (m *StoreManager) update(ctx context.Context, id string, mutate func(*models.Session) error) (*models.Session, error) {
	s, err := m.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(s); err != nil {
		return nil, err
	}

	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	if err := m.store.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}
