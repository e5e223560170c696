package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megambeast/fincompare/internal/models"
)

const (
	sessionKeyPrefix   = "fincompare:session:"
	recommendKeyPrefix = "fincompare:recs:"
)

// RedisStore implements SessionStore on Redis. Sessions are stored as JSON
// values whose key TTL tracks the session expiry, so Redis expires idle
// sessions on its own. The store doubles as the recommendation cache.
type RedisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewRedisStore connects to Redis and verifies connectivity.
func NewRedisStore(address, password string, db int, sessionTTL time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}

	return &RedisStore{
		client:     client,
		sessionTTL: sessionTTL,
	}, nil
}

// SaveSession writes the session JSON with a TTL matching its expiry.
func (s *RedisStore) SaveSession(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = s.sessionTTL
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession loads a session, or nil when absent or already expired.
func (s *RedisStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes a session key.
func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op; Redis expires session keys via TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) ([]string, error) {
	return nil, nil
}

// SetRecommendations caches a recommendation list for a user and category.
func (s *RedisStore) SetRecommendations(ctx context.Context, userID string, category models.Category, recs []*models.Recommendation, ttl time.Duration) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	key := fmt.Sprintf("%s%s:%s", recommendKeyPrefix, userID, category)
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}
	return nil
}

// GetRecommendations returns a cached recommendation list, or nil on miss.
func (s *RedisStore) GetRecommendations(ctx context.Context, userID string, category models.Category) ([]*models.Recommendation, error) {
	key := fmt.Sprintf("%s%s:%s", recommendKeyPrefix, userID, category)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var recs []*models.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}
	return recs, nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
