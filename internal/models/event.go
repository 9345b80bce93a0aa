package models

import "time"

// Event is an occasion an organizer is planning vendors for.
type Event struct {
	ID         int64
	OwnerUID   string
	Title      string
	EventType  string // wedding, corporate, birthday, ...
	City       string
	Venue      string
	Date       *time.Time
	GuestCount int
	Budget     string // Free text, e.g. "₹2,00,000 - ₹5,00,000"
	Notes      string
	CreatedAt  time.Time
}

// Shortlist is an organizer's saved event↔vendor association, independent
// of the quote workflow.
type Shortlist struct {
	EventID   int64
	VendorID  int64
	AddedAt   time.Time
}

// Group is a shared planning group; the creator is always a member.
type Group struct {
	ID          int64
	Name        string
	Description string
	CreatorUID  string
	CreatedAt   time.Time
}
