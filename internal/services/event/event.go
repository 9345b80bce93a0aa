// Package event manages organizer events and their vendor shortlists.
package event

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

var (
	ErrNotFound  = errors.New("event not found")
	ErrForbidden = errors.New("not permitted")
)

// Repository is the storage contract for events and shortlists.
type Repository interface {
	CreateEvent(ctx context.Context, e models.Event) (int64, error)
	ReadEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Event, error)
	AddShortlist(ctx context.Context, eventID, vendorID int64) error
	RemoveShortlist(ctx context.Context, eventID, vendorID int64) error
	ListShortlistedVendors(ctx context.Context, eventID int64) ([]*models.VendorProfile, error)
}

// VendorRepository verifies shortlisted vendors exist.
type VendorRepository interface {
	ReadVendorProfile(ctx context.Context, id int64) (*models.VendorProfile, error)
}

// Service implements event planning operations.
type Service struct {
	repo    Repository
	vendors VendorRepository
	log     *slog.Logger
}

// New creates an event Service.
func New(repo Repository, vendors VendorRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, vendors: vendors, log: log}
}

// CreateInput is the event creation form. Budget is free text, the
// organizer writes whatever makes sense ("2-3 lakh", "flexible").
type CreateInput struct {
	Title      string
	EventType  string
	City       string
	Venue      string
	Date       *time.Time
	GuestCount int
	Budget     string
	Notes      string
}

// Create registers a new event for the organizer.
func (s *Service) Create(ctx context.Context, ownerUID string, in CreateInput) (*models.Event, error) {
	id, err := s.repo.CreateEvent(ctx, models.Event{
		OwnerUID:   ownerUID,
		Title:      in.Title,
		EventType:  in.EventType,
		City:       in.City,
		Venue:      in.Venue,
		Date:       in.Date,
		GuestCount: in.GuestCount,
		Budget:     in.Budget,
		Notes:      in.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("event created", slog.Int64("id", id), slog.String("owner", ownerUID))
	return s.repo.ReadEvent(ctx, id)
}

// Read returns an event, owner only.
func (s *Service) Read(ctx context.Context, actorUID string, id int64) (*models.Event, error) {
	event, err := s.repo.ReadEvent(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if event.OwnerUID != actorUID {
		return nil, ErrForbidden
	}
	return event, nil
}

// List returns the actor's events.
func (s *Service) List(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Event, error) {
	return s.repo.ListEvents(ctx, ownerUID, limit, offset)
}

// Shortlist adds a vendor to the event's shortlist. Adding an already
// shortlisted vendor is a no-op.
func (s *Service) Shortlist(ctx context.Context, actorUID string, eventID, vendorID int64) error {
	if _, err := s.Read(ctx, actorUID, eventID); err != nil {
		return err
	}
	if _, err := s.vendors.ReadVendorProfile(ctx, vendorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.AddShortlist(ctx, eventID, vendorID)
}

// Unshortlist removes a vendor from the event's shortlist.
func (s *Service) Unshortlist(ctx context.Context, actorUID string, eventID, vendorID int64) error {
	if _, err := s.Read(ctx, actorUID, eventID); err != nil {
		return err
	}
	return s.repo.RemoveShortlist(ctx, eventID, vendorID)
}

// ShortlistedVendors returns the event's shortlisted vendor profiles.
func (s *Service) ShortlistedVendors(ctx context.Context, actorUID string, eventID int64) ([]*models.VendorProfile, error) {
	if _, err := s.Read(ctx, actorUID, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListShortlistedVendors(ctx, eventID)
}
