package storage

import (
	"context"

	"github.com/megambeast/fincompare/internal/models"
)

// Repository defines the interface for durable persistence: API client
// auth records and the interaction journal.
type Repository interface {
	// API Clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Interaction journal
	SaveInteraction(ctx context.Context, ev *models.Event) error
	ListInteractions(ctx context.Context, limit int) ([]*models.Event, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// SessionStore defines the interface for comparison session state. Sessions
// are ephemeral; a store may expire them on its own (Redis TTL) or rely on
// the cleanup worker calling DeleteExpired.
type SessionStore interface {
	SaveSession(ctx context.Context, s *models.Session) error
	// GetSession returns nil, nil when the session does not exist.
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpired sweeps expired sessions and returns their ids. Stores
	// with native expiry return nothing.
	DeleteExpired(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
