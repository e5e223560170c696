package collab

import (
	"context"
	"sync"
)

// Collaborator is an external or internal dependency whose health the
// service reports on its readiness endpoint.
type Collaborator interface {
	// Type returns the collaborator type identifier
	Type() string

	// HealthCheck verifies the collaborator is reachable
	HealthCheck(ctx context.Context) error
}

// Registry manages collaborators
type Registry struct {
	mu            sync.RWMutex
	collaborators map[string]Collaborator
}

// NewRegistry creates a new collaborator registry
func NewRegistry() *Registry {
	return &Registry{
		collaborators: make(map[string]Collaborator),
	}
}

// Register adds a collaborator to the registry
func (r *Registry) Register(name string, c Collaborator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collaborators[name] = c
}

// Get retrieves a collaborator by name
func (r *Registry) Get(name string) Collaborator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collaborators[name]
}

// List returns all registered collaborator names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collaborators))
	for name := range r.collaborators {
		names = append(names, name)
	}
	return names
}

// HealthCheckAll checks health of all registered collaborators
func (r *Registry) HealthCheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make(map[string]error)
	for name, c := range r.collaborators {
		results[name] = c.HealthCheck(ctx)
	}
	return results
}

// Unregister removes a collaborator from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.collaborators, name)
}

// Pinger adapts anything with a Ping method (database pools, caches)
// into a Collaborator.
type Pinger struct {
	name string
	ping func(ctx context.Context) error
}

// NewPinger wraps a ping function as a registry collaborator.
func NewPinger(name string, ping func(ctx context.Context) error) *Pinger {
	return &Pinger{name: name, ping: ping}
}

// Type identifies the collaborator.
func (p *Pinger) Type() string {
	return p.name
}

// HealthCheck calls the wrapped ping function.
func (p *Pinger) HealthCheck(ctx context.Context) error {
	return p.ping(ctx)
}
