package models

import (
	"fmt"
	"strings"
	"time"
)

// Event is a tracked user interaction: a product view, a comparison, a
// filter change. Events are best-effort; losing one never affects the user.
type Event struct {
	UserID     string         `json:"user_id"`
	Type       string         `json:"event_type"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Validate checks the required event fields.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(e.Type) == "" {
		return fmt.Errorf("event_type is required")
	}
	return nil
}

// RecommendedItem is one entry of the recommendation collaborator's ranked
// list.
type RecommendedItem struct {
	ProductID   string `json:"product_id"`
	Explanation string `json:"explanation"`
}

// Recommendation is a recommended product resolved against the catalog,
// with a human-readable explanation.
type Recommendation struct {
	ProductID   string   `json:"product_id"`
	Explanation string   `json:"explanation"`
	Product     *Product `json:"product,omitempty"`
}
