package recommend

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/megambeast/fincompare/internal/catalog"
	"github.com/megambeast/fincompare/internal/models"
)

// fallbackCount is how many products the local fallback recommends.
const fallbackCount = 4

// fallbackReasons are cycled over fallback picks by position index.
var fallbackReasons = []string{
	"Popular with businesses like yours",
	"Low fees for everyday use",
	"Highly rated by other customers",
	"Strong feature set for growing teams",
}

// Source is the external recommendation collaborator.
type Source interface {
	Recommend(ctx context.Context, userID string, category models.Category) ([]models.RecommendedItem, error)
}

// Cache stores recommendation lists per user and category. Optional; a nil
// cache disables caching.
type Cache interface {
	GetRecommendations(ctx context.Context, userID string, category models.Category) ([]*models.Recommendation, error)
	SetRecommendations(ctx context.Context, userID string, category models.Category, recs []*models.Recommendation, ttl time.Duration) error
}

// Service produces recommended products for a user and category. It asks
// the external collaborator first and falls back to a local shuffle of the
// category when the collaborator fails, returns nothing, or returns ids the
// catalog does not know.
type Service struct {
	catalog  *catalog.Loader
	source   Source
	cache    Cache
	cacheTTL time.Duration
	shuffle  func(n int, swap func(i, j int))
}

// Option configures the service.
type Option func(*Service)

// WithShuffle replaces the fallback shuffle. Tests inject a deterministic
// one.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(s *Service) {
		s.shuffle = shuffle
	}
}

// WithCache enables caching of recommendation lists.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// NewService creates a recommendation service.
func NewService(loader *catalog.Loader, source Source, opts ...Option) *Service {
	s := &Service{
		catalog:  loader,
		source:   source,
		cacheTTL: 5 * time.Minute,
		shuffle:  rand.Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// For returns the recommendation list for a user in a category. Collaborator
// and cache failures are logged and absorbed; the caller always gets a list,
// possibly empty when the category itself is empty.
func (s *Service) For(ctx context.Context, userID string, category models.Category) []*models.Recommendation {
	if s.cache != nil {
		cached, err := s.cache.GetRecommendations(ctx, userID, category)
		if err != nil {
			slog.Debug("recommendation cache read failed", "error", err)
		} else if len(cached) > 0 {
			return cached
		}
	}

	recs := s.fromSource(ctx, userID, category)
	if len(recs) == 0 {
		recs = s.fallback(category)
	}

	if s.cache != nil && len(recs) > 0 {
		if err := s.cache.SetRecommendations(ctx, userID, category, recs, s.cacheTTL); err != nil {
			slog.Debug("recommendation cache write failed", "error", err)
		}
	}
	return recs
}

// fromSource queries the collaborator and resolves its ids against the
// catalog, dropping unknown ids. Any failure yields an empty list so the
// fallback takes over.
func (s *Service) fromSource(ctx context.Context, userID string, category models.Category) []*models.Recommendation {
	if s.source == nil {
		return nil
	}

	items, err := s.source.Recommend(ctx, userID, category)
	if err != nil {
		slog.Warn("recommendation collaborator failed, using fallback",
			"category", category,
			"error", err,
		)
		return nil
	}

	var recs []*models.Recommendation
	for _, item := range items {
		p := s.catalog.Get(item.ProductID)
		if p == nil || p.Category != category {
			slog.Debug("dropping unknown recommended product", "product_id", item.ProductID)
			continue
		}
		recs = append(recs, &models.Recommendation{
			ProductID:   item.ProductID,
			Explanation: item.Explanation,
			Product:     p,
		})
	}
	return recs
}

// fallback shuffles the category's products, takes the first few and cycles
// the canned explanations over them.
func (s *Service) fallback(category models.Category) []*models.Recommendation {
	products := s.catalog.ListByCategory(category)
	s.shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})

	n := fallbackCount
	if len(products) < n {
		n = len(products)
	}

	recs := make([]*models.Recommendation, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, &models.Recommendation{
			ProductID:   products[i].ID,
			Explanation: fallbackReasons[i%len(fallbackReasons)],
			Product:     products[i],
		})
	}
	return recs
}
