package experiment

import "github.com/google/uuid"

// IdentityProvider mints the opaque per-device identifier that variant
// assignment and tracking key on. Injected rather than read from ambient
// storage so tests can pin a fixed id.
type IdentityProvider interface {
	NewUserID() string
}

// UUIDIdentity mints random UUID identifiers.
type UUIDIdentity struct{}

// NewUserID returns a fresh random identifier.
func (UUIDIdentity) NewUserID() string {
	return uuid.New().String()
}

// StaticIdentity always returns the same identifier. Test helper.
type StaticIdentity string

// NewUserID returns the fixed identifier.
func (s StaticIdentity) NewUserID() string {
	return string(s)
}
