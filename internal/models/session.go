package models

import "time"

// MaxSelection caps how many products a session can mark for side-by-side
// comparison.
const MaxSelection = 3

// Session is the server-side comparison state of one visitor: the active
// category, facet filters, sort order and comparison selection. All state is
// serializable and mutated only through the compare manager.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	Category  Category    `json:"category"`
	Filters   FilterState `json:"filters"`
	Sort      SortState   `json:"sort"`
	Selection []string    `json:"selection"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// IsExpired checks if the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsSelected reports whether the product id is in the comparison selection.
func (s *Session) IsSelected(id string) bool {
	for _, sel := range s.Selection {
		if sel == id {
			return true
		}
	}
	return false
}

// CreateSessionRequest is the body for creating a session.
type CreateSessionRequest struct {
	Category Category `json:"category"`
	UserID   string   `json:"user_id,omitempty"`
}

// SetCategoryRequest is the body for switching a session's category.
type SetCategoryRequest struct {
	Category Category `json:"category"`
}

// SortRequest is the body for sorting a session's product list. Repeating
// the same field flips the direction.
type SortRequest struct {
	Field SortField `json:"field"`
}
