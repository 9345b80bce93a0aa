package models

import "time"

// ActivityEvent is a fire-and-forget telemetry record published to the
// activity exchange.
type ActivityEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	UserUID    string    `json:"user_uid,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AdminStats is the dashboard aggregate for the admin app.
type AdminStats struct {
	TotalUsers     int            `json:"total_users"`
	TotalVendors   int            `json:"total_vendors"`
	PendingVendors int            `json:"pending_vendors"`
	TotalEvents    int            `json:"total_events"`
	QuotesByStatus map[string]int `json:"quotes_by_status"`
}
