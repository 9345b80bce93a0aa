package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/models"
)

func TestStorage_CreateQuote(t *testing.T) {
	type ids struct {
		organizerUID string
		vendorID     int64
		eventID      int64
	}

	tests := []struct {
		name    string
		setup   func(t *testing.T, factory *TestDataFactory) ids
		again   bool
		wantErr error
	}{
		{
			name: "successful create",
			setup: func(t *testing.T, factory *TestDataFactory) ids {
				organizerUID := uuid.New().String()
				ownerUID := uuid.New().String()
				factory.CreateUser(t, organizerUID, "org@example.com", "organizer", "hashedpassword", "user")
				factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
				vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)
				eventID := factory.CreateEvent(t, organizerUID, "Wedding", "wedding", "Mumbai", time.Now().AddDate(0, 2, 0))
				return ids{organizerUID, vendorID, eventID}
			},
		},
		{
			name: "duplicate organizer vendor event pair",
			setup: func(t *testing.T, factory *TestDataFactory) ids {
				organizerUID := uuid.New().String()
				ownerUID := uuid.New().String()
				factory.CreateUser(t, organizerUID, "org@example.com", "organizer", "hashedpassword", "user")
				factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
				vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)
				eventID := factory.CreateEvent(t, organizerUID, "Wedding", "wedding", "Mumbai", time.Now().AddDate(0, 2, 0))
				return ids{organizerUID, vendorID, eventID}
			},
			again:   true,
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			got := tt.setup(t, factory)

			quote := models.QuoteRequest{
				OrganizerUID: got.organizerUID,
				VendorID:     got.vendorID,
				EventID:      got.eventID,
				BudgetRange:  "50k-100k",
				Message:      "need catering for 200 guests",
			}

			id, err := storage.CreateQuote(context.Background(), quote)
			require.NoError(t, err)
			assert.Positive(t, id)

			if tt.again {
				_, err = storage.CreateQuote(context.Background(), quote)
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			read, err := storage.ReadQuote(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, models.QuotePending, read.Status)
			assert.Equal(t, "need catering for 200 guests", read.Message)
			assert.Nil(t, read.QuotedPrice)
		})
	}
}

func TestStorage_QuoteLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	organizerUID := uuid.New().String()
	ownerUID := uuid.New().String()
	factory.CreateUser(t, organizerUID, "org@example.com", "organizer", "hashedpassword", "user")
	factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
	vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)
	eventID := factory.CreateEvent(t, organizerUID, "Wedding", "wedding", "Mumbai", time.Now().AddDate(0, 2, 0))
	quoteID := factory.CreateQuote(t, organizerUID, vendorID, eventID, "need a quote", models.QuotePending)

	respondedAt := time.Now().UTC().Truncate(time.Second)
	err := storage.SaveQuoteResponse(ctx, quoteID, 75000, "we can do it", "https://cdn.example.com/quotes/menu.pdf", respondedAt)
	require.NoError(t, err)
	verify.VerifyQuoteStatus(t, quoteID, models.QuoteQuoted)

	read, err := storage.ReadQuote(ctx, quoteID)
	require.NoError(t, err)
	require.NotNil(t, read.QuotedPrice)
	assert.InDelta(t, 75000, *read.QuotedPrice, 0.01)
	assert.Equal(t, "https://cdn.example.com/quotes/menu.pdf", read.AttachmentURL)

	err = storage.RequestQuoteRevision(ctx, quoteID, "too expensive, drop the dessert course")
	require.NoError(t, err)
	verify.VerifyQuoteStatus(t, quoteID, models.QuoteRevisionRequested)

	read, err = storage.ReadQuote(ctx, quoteID)
	require.NoError(t, err)
	assert.Equal(t, "too expensive, drop the dessert course", read.RevisionNote)

	err = storage.SaveQuoteResponse(ctx, quoteID, 60000, "revised menu", "", respondedAt)
	require.NoError(t, err)
	verify.VerifyQuoteStatus(t, quoteID, models.QuoteQuoted)

	acceptedAt := time.Now().UTC().Truncate(time.Second)
	err = storage.AcceptQuote(ctx, quoteID, acceptedAt, acceptedAt.Add(models.ContactWindow))
	require.NoError(t, err)
	verify.VerifyQuoteStatus(t, quoteID, models.QuoteAccepted)

	read, err = storage.ReadQuote(ctx, quoteID)
	require.NoError(t, err)
	require.NotNil(t, read.ContactExpiresAt)
	assert.WithinDuration(t, acceptedAt.Add(models.ContactWindow), *read.ContactExpiresAt, time.Second)
}

func TestStorage_SetQuoteStatus_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.SetQuoteStatus(context.Background(), 9999, models.QuoteRejected)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ListQuotesByVendor(t *testing.T) {
	type args struct {
		limit  int
		offset int
	}

	tests := []struct {
		name      string
		args      args
		numQuotes int
		wantCount int
	}{
		{
			name:      "all quotes within limit",
			args:      args{limit: 10, offset: 0},
			numQuotes: 3,
			wantCount: 3,
		},
		{
			name:      "pagination cuts the tail",
			args:      args{limit: 2, offset: 2},
			numQuotes: 3,
			wantCount: 1,
		},
		{
			name:      "vendor without quotes",
			args:      args{limit: 10, offset: 0},
			numQuotes: 0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			ownerUID := uuid.New().String()
			factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
			vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)

			for i := range tt.numQuotes {
				organizerUID := uuid.New().String()
				factory.CreateUser(t, organizerUID,
					"org"+uuid.New().String()[:8]+"@example.com",
					"organizer"+uuid.New().String()[:8],
					"hashedpassword", "user")
				eventID := factory.CreateEvent(t, organizerUID, "Event", "wedding", "Mumbai", time.Now().AddDate(0, 1, i))
				factory.CreateQuote(t, organizerUID, vendorID, eventID, "need a quote", models.QuotePending)
			}

			got, err := storage.ListQuotesByVendor(context.Background(), vendorID, tt.args.limit, tt.args.offset)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ArchiveExpiredQuotes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()
	now := time.Now().UTC()

	organizerUID := uuid.New().String()
	ownerUID := uuid.New().String()
	factory.CreateUser(t, organizerUID, "org@example.com", "organizer", "hashedpassword", "user")
	factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
	vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)

	expiredEvent := factory.CreateEvent(t, organizerUID, "Past wedding", "wedding", "Mumbai", now.AddDate(0, -1, 0))
	openEvent := factory.CreateEvent(t, organizerUID, "Upcoming wedding", "wedding", "Mumbai", now.AddDate(0, 1, 0))
	pendingEvent := factory.CreateEvent(t, organizerUID, "Planning wedding", "wedding", "Mumbai", now.AddDate(0, 2, 0))

	expiredID := factory.CreateAcceptedQuote(t, organizerUID, vendorID, expiredEvent,
		now.Add(-16*24*time.Hour), now.Add(-24*time.Hour))
	openID := factory.CreateAcceptedQuote(t, organizerUID, vendorID, openEvent,
		now.Add(-24*time.Hour), now.Add(14*24*time.Hour))
	pendingID := factory.CreateQuote(t, organizerUID, vendorID, pendingEvent, "need a quote", models.QuotePending)

	archived, err := storage.ArchiveExpiredQuotes(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), archived)

	verify.VerifyQuoteStatus(t, expiredID, models.QuoteArchived)
	verify.VerifyQuoteStatus(t, openID, models.QuoteAccepted)
	verify.VerifyQuoteStatus(t, pendingID, models.QuotePending)

	// A second sweep finds nothing new.
	archived, err = storage.ArchiveExpiredQuotes(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, archived)
}

func TestStorage_Shortlist(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	organizerUID := uuid.New().String()
	ownerUID := uuid.New().String()
	factory.CreateUser(t, organizerUID, "org@example.com", "organizer", "hashedpassword", "user")
	factory.CreateUser(t, ownerUID, "owner@example.com", "owner", "hashedpassword", "user")
	vendorID := factory.CreateVendorProfile(t, ownerUID, "Royal Caterers", "royal-caterers", "catering", "Mumbai", true)
	eventID := factory.CreateEvent(t, organizerUID, "Wedding", "wedding", "Mumbai", time.Now().AddDate(0, 2, 0))

	require.NoError(t, storage.AddShortlist(ctx, eventID, vendorID))
	verify.VerifyShortlistSize(t, eventID, 1)

	// Re-adding the same vendor keeps the shortlist unchanged.
	require.NoError(t, storage.AddShortlist(ctx, eventID, vendorID))
	verify.VerifyShortlistSize(t, eventID, 1)

	vendors, err := storage.ListShortlistedVendors(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Royal Caterers", vendors[0].BusinessName)

	require.NoError(t, storage.RemoveShortlist(ctx, eventID, vendorID))
	verify.VerifyShortlistSize(t, eventID, 0)
}
