// Package quote contains the business logic of the quote-request
// lifecycle between organizers and vendors.
//
// Every mutation is checked against the status transition table in
// models before it reaches storage, and against the actor: only the
// owning vendor responds, only the requesting organizer decides.
package quote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

var (
	// ErrNotFound: the quote, vendor or event does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the actor is neither the requesting organizer nor
	// the owning vendor, or acts on the wrong side.
	ErrForbidden = errors.New("not permitted")
	// ErrInvalidTransition: the requested action is not allowed in the
	// quote's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDuplicate: the organizer already has a quote request against
	// this vendor+event pair.
	ErrDuplicate = errors.New("quote request already exists for this vendor and event")
	// ErrContactExpired: the contact window has elapsed.
	ErrContactExpired = errors.New("contact access expired")
)

// Repository is the storage contract for quote requests.
type Repository interface {
	CreateQuote(ctx context.Context, q models.QuoteRequest) (int64, error)
	ReadQuote(ctx context.Context, id int64) (*models.QuoteRequest, error)
	SaveQuoteResponse(ctx context.Context, id int64, price float64, response, attachmentURL string, respondedAt time.Time) error
	AcceptQuote(ctx context.Context, id int64, acceptedAt, contactExpiresAt time.Time) error
	SetQuoteStatus(ctx context.Context, id int64, status models.QuoteStatus) error
	RequestQuoteRevision(ctx context.Context, id int64, note string) error
	ListQuotesByOrganizer(ctx context.Context, organizerUID string, limit, offset int) ([]*models.QuoteRequest, error)
	ListQuotesByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]*models.QuoteRequest, error)
}

// VendorRepository resolves vendors for existence and ownership checks.
type VendorRepository interface {
	ReadVendorProfile(ctx context.Context, id int64) (*models.VendorProfile, error)
	ReadVendorProfileByOwner(ctx context.Context, ownerUID string) (*models.VendorProfile, error)
}

// EventRepository resolves events for existence checks.
type EventRepository interface {
	ReadEvent(ctx context.Context, id int64) (*models.Event, error)
}

// UserRepository resolves users for contact disclosure.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service implements the quote-request lifecycle.
type Service struct {
	repo    Repository
	vendors VendorRepository
	events  EventRepository
	users   UserRepository
	log     *slog.Logger
	now     func() time.Time
}

// New creates a quote Service.
func New(repo Repository, vendors VendorRepository, events EventRepository, users UserRepository, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		vendors: vendors,
		events:  events,
		users:   users,
		log:     log,
		now:     time.Now,
	}
}

// RequestInput is the organizer's quote request form.
type RequestInput struct {
	VendorID            int64
	EventID             int64
	Message             string
	BudgetRange         string
	SpecialRequirements string
	ResponseDeadline    *time.Time
}

// Request creates a pending quote request from an organizer against a
// vendor+event pair and returns its ID.
func (s *Service) Request(ctx context.Context, organizerUID string, in RequestInput) (int64, error) {
	if _, err := s.vendors.ReadVendorProfile(ctx, in.VendorID); err != nil {
		return 0, translate(err)
	}
	event, err := s.events.ReadEvent(ctx, in.EventID)
	if err != nil {
		return 0, translate(err)
	}
	if event.OwnerUID != organizerUID {
		return 0, ErrForbidden
	}

	id, err := s.repo.CreateQuote(ctx, models.QuoteRequest{
		OrganizerUID:        organizerUID,
		VendorID:            in.VendorID,
		EventID:             in.EventID,
		Message:             in.Message,
		BudgetRange:         in.BudgetRange,
		SpecialRequirements: in.SpecialRequirements,
		ResponseDeadline:    in.ResponseDeadline,
	})
	if err != nil {
		return 0, translate(err)
	}
	s.log.Info("created quote request", slog.Int64("id", id), slog.Int64("vendor_id", in.VendorID))
	return id, nil
}

// Respond records the vendor's price quote. Only the owning vendor may
// respond, and only while the quote is pending or a revision was
// requested. A re-response after a revision request overwrites the prior
// price, message and attachment.
func (s *Service) Respond(ctx context.Context, actorUID string, quoteID int64, price float64, message, attachmentURL string) (*models.QuoteRequest, error) {
	q, err := s.read(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.ReadVendorProfile(ctx, q.VendorID)
	if err != nil {
		return nil, translate(err)
	}
	if vendor.OwnerUID != actorUID {
		return nil, ErrForbidden
	}
	if !q.Status.CanTransition(models.QuoteQuoted) {
		return nil, ErrInvalidTransition
	}

	respondedAt := s.now().UTC()
	if err := s.repo.SaveQuoteResponse(ctx, quoteID, price, message, attachmentURL, respondedAt); err != nil {
		return nil, translate(err)
	}
	s.log.Info("vendor responded to quote", slog.Int64("id", quoteID))
	return s.read(ctx, quoteID)
}

// Accept is the organizer's acceptance: the quote moves to accepted and
// the mutual contact window opens for exactly models.ContactWindow.
func (s *Service) Accept(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error) {
	q, err := s.readForOrganizer(ctx, actorUID, quoteID)
	if err != nil {
		return nil, err
	}
	if !q.Status.CanTransition(models.QuoteAccepted) {
		return nil, ErrInvalidTransition
	}

	acceptedAt := s.now().UTC()
	expiresAt := acceptedAt.Add(models.ContactWindow)
	if err := s.repo.AcceptQuote(ctx, quoteID, acceptedAt, expiresAt); err != nil {
		return nil, translate(err)
	}
	s.log.Info("quote accepted", slog.Int64("id", quoteID),
		slog.Time("contact_expires_at", expiresAt))
	return s.read(ctx, quoteID)
}

// Reject is the organizer's refusal. Terminal.
func (s *Service) Reject(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error) {
	q, err := s.readForOrganizer(ctx, actorUID, quoteID)
	if err != nil {
		return nil, err
	}
	if !q.Status.CanTransition(models.QuoteRejected) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.SetQuoteStatus(ctx, quoteID, models.QuoteRejected); err != nil {
		return nil, translate(err)
	}
	return s.read(ctx, quoteID)
}

// RequestRevision sends the quote back to the vendor with feedback.
func (s *Service) RequestRevision(ctx context.Context, actorUID string, quoteID int64, note string) (*models.QuoteRequest, error) {
	q, err := s.readForOrganizer(ctx, actorUID, quoteID)
	if err != nil {
		return nil, err
	}
	if !q.Status.CanTransition(models.QuoteRevisionRequested) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.RequestQuoteRevision(ctx, quoteID, note); err != nil {
		return nil, translate(err)
	}
	return s.read(ctx, quoteID)
}

// Contact returns the other party's contact details while the quote is
// accepted and the window is open. Past expiry the quote is archived
// (lazily, should the background sweep not have run yet) and
// ErrContactExpired is returned.
func (s *Service) Contact(ctx context.Context, actorUID string, quoteID int64) (*models.ContactInfo, error) {
	q, err := s.read(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.ReadVendorProfile(ctx, q.VendorID)
	if err != nil {
		return nil, translate(err)
	}

	isOrganizer := q.OrganizerUID == actorUID
	isVendor := vendor.OwnerUID == actorUID
	if !isOrganizer && !isVendor {
		return nil, ErrForbidden
	}

	now := s.now().UTC()
	if q.Status == models.QuoteAccepted && !q.ContactOpen(now) {
		if err := s.repo.SetQuoteStatus(ctx, quoteID, models.QuoteArchived); err != nil {
			s.log.Warn("failed to archive expired quote", sl.Err(err))
		}
		return nil, ErrContactExpired
	}
	if q.Status == models.QuoteArchived {
		return nil, ErrContactExpired
	}
	if !q.ContactOpen(now) {
		return nil, ErrForbidden
	}

	if isVendor {
		organizer, err := s.users.GetUser(ctx, q.OrganizerUID)
		if err != nil {
			return nil, translate(err)
		}
		return &models.ContactInfo{
			Name:  organizer.Name,
			Email: organizer.Email,
			Phone: organizer.Phone,
		}, nil
	}

	owner, err := s.users.GetUser(ctx, vendor.OwnerUID)
	if err != nil {
		return nil, translate(err)
	}
	return &models.ContactInfo{
		Name:         vendor.BusinessName,
		Email:        owner.Email,
		Phone:        owner.Phone,
		WhatsappLink: vendor.WhatsappLink,
	}, nil
}

// Attachment returns the response attachment URL to either party.
func (s *Service) Attachment(ctx context.Context, actorUID string, quoteID int64) (string, error) {
	q, err := s.read(ctx, quoteID)
	if err != nil {
		return "", err
	}
	vendor, err := s.vendors.ReadVendorProfile(ctx, q.VendorID)
	if err != nil {
		return "", translate(err)
	}
	if q.OrganizerUID != actorUID && vendor.OwnerUID != actorUID {
		return "", ErrForbidden
	}
	if q.AttachmentURL == "" {
		return "", ErrNotFound
	}
	return q.AttachmentURL, nil
}

// ListForOrganizer returns the actor's own quote requests.
func (s *Service) ListForOrganizer(ctx context.Context, organizerUID string, limit, offset int) ([]*models.QuoteRequest, error) {
	list, err := s.repo.ListQuotesByOrganizer(ctx, organizerUID, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// ListForVendor returns the quote requests addressed to the actor's
// vendor profile.
func (s *Service) ListForVendor(ctx context.Context, ownerUID string, limit, offset int) ([]*models.QuoteRequest, error) {
	vendor, err := s.vendors.ReadVendorProfileByOwner(ctx, ownerUID)
	if err != nil {
		return nil, translate(err)
	}
	list, err := s.repo.ListQuotesByVendor(ctx, vendor.ID, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// read loads a quote, archiving it lazily if its contact window has
// already elapsed.
func (s *Service) read(ctx context.Context, quoteID int64) (*models.QuoteRequest, error) {
	q, err := s.repo.ReadQuote(ctx, quoteID)
	if err != nil {
		return nil, translate(err)
	}
	if q.Status == models.QuoteAccepted && q.ContactExpiresAt != nil && !s.now().UTC().Before(*q.ContactExpiresAt) {
		if err := s.repo.SetQuoteStatus(ctx, quoteID, models.QuoteArchived); err != nil {
			s.log.Warn("failed to archive expired quote", sl.Err(err))
		} else {
			q.Status = models.QuoteArchived
		}
	}
	return q, nil
}

// readForOrganizer loads a quote and verifies the actor is its organizer.
func (s *Service) readForOrganizer(ctx context.Context, actorUID string, quoteID int64) (*models.QuoteRequest, error) {
	q, err := s.read(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q.OrganizerUID != actorUID {
		return nil, ErrForbidden
	}
	return q, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
