package models

import "time"

// QuoteStatus is the lifecycle state of a quote request.
type QuoteStatus string

const (
	// QuotePending: created by the organizer, awaiting a vendor response.
	QuotePending QuoteStatus = "pending"
	// QuoteQuoted: vendor responded with a price.
	QuoteQuoted QuoteStatus = "quoted"
	// QuoteAccepted: organizer accepted; contact details are mutually
	// disclosed until ContactExpiresAt.
	QuoteAccepted QuoteStatus = "accepted"
	// QuoteRejected: organizer declined. Terminal.
	QuoteRejected QuoteStatus = "rejected"
	// QuoteRevisionRequested: organizer asked the vendor to re-quote.
	QuoteRevisionRequested QuoteStatus = "revision_requested"
	// QuoteArchived: contact window elapsed after acceptance. Terminal.
	QuoteArchived QuoteStatus = "archived"
)

// ContactWindow is how long mutual contact details stay retrievable after
// acceptance.
const ContactWindow = 15 * 24 * time.Hour

// quoteTransitions is the full transition table. A status absent from the
// map is terminal.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuotePending:           {QuoteQuoted},
	QuoteQuoted:            {QuoteAccepted, QuoteRejected, QuoteRevisionRequested},
	QuoteRevisionRequested: {QuoteQuoted},
	QuoteAccepted:          {QuoteArchived},
}

// CanTransition reports whether moving from s to next is permitted.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s QuoteStatus) Terminal() bool {
	return len(quoteTransitions[s]) == 0
}

// Valid reports whether s is a known status value.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteQuoted, QuoteAccepted, QuoteRejected,
		QuoteRevisionRequested, QuoteArchived:
		return true
	}
	return false
}

// QuoteRequest is a price inquiry linking an organizer, a vendor and an
// event. QuotedPrice is set only once the vendor responds;
// ContactExpiresAt only once the organizer accepts.
type QuoteRequest struct {
	ID                  int64
	OrganizerUID        string
	VendorID            int64
	EventID             int64
	BudgetRange         string // Free text, e.g. "₹50,000 - ₹1,00,000"
	Message             string
	SpecialRequirements string
	ResponseDeadline    *time.Time
	Status              QuoteStatus
	QuotedPrice         *float64
	VendorResponse      string
	RevisionNote        string // Organizer feedback from the latest revision request
	AttachmentURL       string
	CreatedAt           time.Time
	RespondedAt         *time.Time
	AcceptedAt          *time.Time
	ContactExpiresAt    *time.Time
}

// ContactOpen reports whether mutual contact details are retrievable at
// the given instant.
func (q *QuoteRequest) ContactOpen(now time.Time) bool {
	return q.Status == QuoteAccepted && q.ContactExpiresAt != nil && now.Before(*q.ContactExpiresAt)
}

// ContactInfo is the mutual disclosure returned while the contact window
// is open.
type ContactInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}
