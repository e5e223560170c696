package storage

import (
	"context"
	"sync"

	"github.com/megambeast/fincompare/internal/models"
)

// MemorySessionStore implements SessionStore in process memory. Used in
// tests and single-node development; the cleanup worker sweeps its expired
// sessions.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// SaveSession stores a copy of the session.
func (s *MemorySessionStore) SaveSession(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	cp.Selection = append([]string(nil), sess.Selection...)
	s.sessions[sess.ID] = &cp
	return nil
}

// GetSession returns a copy of the session, or nil when absent.
func (s *MemorySessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}

	cp := *sess
	cp.Selection = append([]string(nil), sess.Selection...)
	return &cp, nil
}

// DeleteSession removes a session.
func (s *MemorySessionStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions and returns their ids.
func (s *MemorySessionStore) DeleteExpired(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for id, sess := range s.sessions {
		if sess.IsExpired() {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	return expired, nil
}

// Ping always succeeds.
func (s *MemorySessionStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *MemorySessionStore) Close() error {
	return nil
}
