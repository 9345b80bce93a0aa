package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{"pending to quoted", QuotePending, QuoteQuoted, true},
		{"pending to accepted is forbidden", QuotePending, QuoteAccepted, false},
		{"pending to rejected is forbidden", QuotePending, QuoteRejected, false},
		{"quoted to accepted", QuoteQuoted, QuoteAccepted, true},
		{"quoted to rejected", QuoteQuoted, QuoteRejected, true},
		{"quoted to revision_requested", QuoteQuoted, QuoteRevisionRequested, true},
		{"quoted to archived is forbidden", QuoteQuoted, QuoteArchived, false},
		{"revision loops back to quoted", QuoteRevisionRequested, QuoteQuoted, true},
		{"revision to accepted is forbidden", QuoteRevisionRequested, QuoteAccepted, false},
		{"accepted to archived", QuoteAccepted, QuoteArchived, true},
		{"accepted to rejected is forbidden", QuoteAccepted, QuoteRejected, false},
		{"rejected admits nothing", QuoteRejected, QuoteQuoted, false},
		{"archived admits nothing", QuoteArchived, QuotePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestQuoteStatus_Terminal(t *testing.T) {
	assert.True(t, QuoteRejected.Terminal())
	assert.True(t, QuoteArchived.Terminal())
	assert.False(t, QuotePending.Terminal())
	assert.False(t, QuoteQuoted.Terminal())
	assert.False(t, QuoteAccepted.Terminal())
	assert.False(t, QuoteRevisionRequested.Terminal())
}

func TestQuoteRequest_ContactOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(ContactWindow)

	q := &QuoteRequest{Status: QuoteAccepted, ContactExpiresAt: &expires}
	assert.True(t, q.ContactOpen(now))
	assert.True(t, q.ContactOpen(expires.Add(-time.Second)))
	assert.False(t, q.ContactOpen(expires))
	assert.False(t, q.ContactOpen(expires.Add(time.Hour)))

	q = &QuoteRequest{Status: QuoteQuoted, ContactExpiresAt: &expires}
	assert.False(t, q.ContactOpen(now))

	q = &QuoteRequest{Status: QuoteAccepted}
	assert.False(t, q.ContactOpen(now))
}
