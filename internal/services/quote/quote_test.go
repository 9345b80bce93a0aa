package quote

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

type fakeRepo struct {
	quotes map[int64]*models.QuoteRequest
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{quotes: map[int64]*models.QuoteRequest{}, nextID: 1}
}

func (f *fakeRepo) CreateQuote(_ context.Context, q models.QuoteRequest) (int64, error) {
	for _, existing := range f.quotes {
		if existing.OrganizerUID == q.OrganizerUID && existing.VendorID == q.VendorID && existing.EventID == q.EventID {
			return 0, repository.ErrDuplicate
		}
	}
	q.ID = f.nextID
	q.Status = models.QuotePending
	q.CreatedAt = time.Now().UTC()
	f.quotes[q.ID] = &q
	f.nextID++
	return q.ID, nil
}

func (f *fakeRepo) ReadQuote(_ context.Context, id int64) (*models.QuoteRequest, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (f *fakeRepo) SaveQuoteResponse(_ context.Context, id int64, price float64, response, attachmentURL string, respondedAt time.Time) error {
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.Status = models.QuoteQuoted
	q.QuotedPrice = &price
	q.VendorResponse = response
	q.AttachmentURL = attachmentURL
	q.RespondedAt = &respondedAt
	q.RevisionNote = ""
	return nil
}

func (f *fakeRepo) AcceptQuote(_ context.Context, id int64, acceptedAt, contactExpiresAt time.Time) error {
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.Status = models.QuoteAccepted
	q.AcceptedAt = &acceptedAt
	q.ContactExpiresAt = &contactExpiresAt
	return nil
}

func (f *fakeRepo) SetQuoteStatus(_ context.Context, id int64, status models.QuoteStatus) error {
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.Status = status
	return nil
}

func (f *fakeRepo) RequestQuoteRevision(_ context.Context, id int64, note string) error {
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.Status = models.QuoteRevisionRequested
	q.RevisionNote = note
	return nil
}

func (f *fakeRepo) ListQuotesByOrganizer(_ context.Context, organizerUID string, _, _ int) ([]*models.QuoteRequest, error) {
	var out []*models.QuoteRequest
	for _, q := range f.quotes {
		if q.OrganizerUID == organizerUID {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListQuotesByVendor(_ context.Context, vendorID int64, _, _ int) ([]*models.QuoteRequest, error) {
	var out []*models.QuoteRequest
	for _, q := range f.quotes {
		if q.VendorID == vendorID {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeVendors struct {
	byID map[int64]*models.VendorProfile
}

func (f *fakeVendors) ReadVendorProfile(_ context.Context, id int64) (*models.VendorProfile, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeVendors) ReadVendorProfileByOwner(_ context.Context, ownerUID string) (*models.VendorProfile, error) {
	for _, v := range f.byID {
		if v.OwnerUID == ownerUID {
			return v, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeEvents struct {
	byID map[int64]*models.Event
}

func (f *fakeEvents) ReadEvent(_ context.Context, id int64) (*models.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

type fakeUsers struct {
	byUID map[string]*models.User
}

func (f *fakeUsers) GetUser(_ context.Context, uid string) (*models.User, error) {
	u, ok := f.byUID[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

const (
	organizerUID = "organizer-uid"
	vendorOwner  = "vendor-owner-uid"
	strangerUID  = "stranger-uid"
)

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	vendors := &fakeVendors{byID: map[int64]*models.VendorProfile{
		1: {ID: 1, OwnerUID: vendorOwner, BusinessName: "Royal Caterers", WhatsappLink: "https://wa.me/911234567890"},
	}}
	events := &fakeEvents{byID: map[int64]*models.Event{
		1: {ID: 1, OwnerUID: organizerUID, Title: "Wedding reception"},
	}}
	users := &fakeUsers{byUID: map[string]*models.User{
		organizerUID: {UID: organizerUID, Name: "Asha", Email: "asha@example.com", Phone: "+911111111111"},
		vendorOwner:  {UID: vendorOwner, Name: "Ravi", Email: "ravi@example.com", Phone: "+912222222222"},
	}}
	return New(repo, vendors, events, users, slog.New(discardHandler{})), repo
}

func mustRequest(t *testing.T, svc *Service) int64 {
	t.Helper()
	id, err := svc.Request(context.Background(), organizerUID, RequestInput{
		VendorID:    1,
		EventID:     1,
		Message:     "need catering for 200 guests",
		BudgetRange: "2-3 lakh",
	})
	require.NoError(t, err)
	return id
}

func TestRequest(t *testing.T) {
	svc, repo := newTestService(t)

	id := mustRequest(t, svc)

	q, err := repo.ReadQuote(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.QuotePending, q.Status)
	assert.Nil(t, q.QuotedPrice)
	assert.Nil(t, q.ContactExpiresAt)
}

func TestRequest_DuplicatePair(t *testing.T) {
	svc, _ := newTestService(t)

	mustRequest(t, svc)
	_, err := svc.Request(context.Background(), organizerUID, RequestInput{VendorID: 1, EventID: 1})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRequest_EventNotOwned(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Request(context.Background(), strangerUID, RequestInput{VendorID: 1, EventID: 1})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRequest_UnknownVendor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Request(context.Background(), organizerUID, RequestInput{VendorID: 42, EventID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespond(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	q, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "full package with service staff", "")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteQuoted, q.Status)
	require.NotNil(t, q.QuotedPrice)
	assert.Equal(t, 250000.0, *q.QuotedPrice)
	assert.NotNil(t, q.RespondedAt)
}

func TestRespond_NotOwningVendor(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), strangerUID, id, 100, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRespond_AfterAcceptRejected(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), organizerUID, id)
	require.NoError(t, err)

	_, err = svc.Respond(context.Background(), vendorOwner, id, 300000, "updated offer", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAccept_OpensContactWindow(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)

	q, err := svc.Accept(context.Background(), organizerUID, id)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteAccepted, q.Status)
	require.NotNil(t, q.AcceptedAt)
	require.NotNil(t, q.ContactExpiresAt)
	assert.Equal(t, q.AcceptedAt.Add(models.ContactWindow), *q.ContactExpiresAt)
}

func TestAccept_PendingNotAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Accept(context.Background(), organizerUID, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAccept_OnlyOrganizer(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), vendorOwner, id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReject_Terminal(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)
	q, err := svc.Reject(context.Background(), organizerUID, id)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteRejected, q.Status)

	_, err = svc.Respond(context.Background(), vendorOwner, id, 1, "again", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Accept(context.Background(), organizerUID, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRevisionLoop(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)

	q, err := svc.RequestRevision(context.Background(), organizerUID, id, "can you include decor?")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteRevisionRequested, q.Status)
	assert.Equal(t, "can you include decor?", q.RevisionNote)

	q, err = svc.Respond(context.Background(), vendorOwner, id, 280000, "with decor", "")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteQuoted, q.Status)
	assert.Empty(t, q.RevisionNote)
	assert.Equal(t, 280000.0, *q.QuotedPrice)
}

func TestContact_BothSides(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), organizerUID, id)
	require.NoError(t, err)

	forOrganizer, err := svc.Contact(context.Background(), organizerUID, id)
	require.NoError(t, err)
	assert.Equal(t, "Royal Caterers", forOrganizer.Name)
	assert.Equal(t, "ravi@example.com", forOrganizer.Email)
	assert.NotEmpty(t, forOrganizer.WhatsappLink)

	forVendor, err := svc.Contact(context.Background(), vendorOwner, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha", forVendor.Name)
	assert.Equal(t, "asha@example.com", forVendor.Email)

	_, err = svc.Contact(context.Background(), strangerUID, id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestContact_BeforeAccept(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)

	_, err = svc.Contact(context.Background(), organizerUID, id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestContact_ExpiredArchivesQuote(t *testing.T) {
	svc, repo := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), organizerUID, id)
	require.NoError(t, err)

	svc.now = func() time.Time {
		return time.Now().Add(models.ContactWindow + time.Hour)
	}

	_, err = svc.Contact(context.Background(), organizerUID, id)
	assert.ErrorIs(t, err, ErrContactExpired)

	q, err := repo.ReadQuote(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteArchived, q.Status)
}

func TestContact_WindowBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "")
	require.NoError(t, err)
	q, err := svc.Accept(context.Background(), organizerUID, id)
	require.NoError(t, err)

	// just inside the window
	svc.now = func() time.Time { return q.ContactExpiresAt.Add(-time.Second) }
	_, err = svc.Contact(context.Background(), organizerUID, id)
	assert.NoError(t, err)

	// exactly at expiry the window is closed
	svc.now = func() time.Time { return *q.ContactExpiresAt }
	_, err = svc.Contact(context.Background(), organizerUID, id)
	assert.ErrorIs(t, err, ErrContactExpired)
}

func TestAttachment(t *testing.T) {
	svc, _ := newTestService(t)
	id := mustRequest(t, svc)

	_, err := svc.Respond(context.Background(), vendorOwner, id, 250000, "offer", "https://media.bventy.in/quotes/offer.pdf")
	require.NoError(t, err)

	url, err := svc.Attachment(context.Background(), organizerUID, id)
	require.NoError(t, err)
	assert.Equal(t, "https://media.bventy.in/quotes/offer.pdf", url)

	_, err = svc.Attachment(context.Background(), strangerUID, id)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListForVendor(t *testing.T) {
	svc, _ := newTestService(t)
	mustRequest(t, svc)

	list, err := svc.ListForVendor(context.Background(), vendorOwner, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListForVendor(context.Background(), strangerUID, 20, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
