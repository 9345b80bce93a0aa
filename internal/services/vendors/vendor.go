// Package vendor manages vendor profiles: onboarding, public listings
// and admin moderation. Public listings are cached in Redis because the
// discovery page is by far the hottest read path.
package vendor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

const listCacheTTL = 5 * time.Minute

var (
	ErrNotFound      = errors.New("vendor profile not found")
	ErrAlreadyExists = errors.New("user already has a vendor profile")
	ErrForbidden     = errors.New("not permitted")
)

// Repository is the storage contract for vendor profiles.
type Repository interface {
	CreateVendorProfile(ctx context.Context, v models.VendorProfile) (int64, error)
	ReadVendorProfile(ctx context.Context, id int64) (*models.VendorProfile, error)
	ReadVendorProfileBySlug(ctx context.Context, slug string) (*models.VendorProfile, error)
	ReadVendorProfileByOwner(ctx context.Context, ownerUID string) (*models.VendorProfile, error)
	UpdateVendorProfile(ctx context.Context, v models.VendorProfile) error
	SetVendorVerified(ctx context.Context, id int64, verified bool) error
	ListVendorProfiles(ctx context.Context, verifiedOnly bool, filter models.VendorFilter, limit, offset int) ([]*models.VendorProfile, error)
}

// Cache is the subset of the redis wrapper the listing path needs.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implements vendor onboarding, discovery and moderation.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates a vendor Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// OnboardInput is the vendor onboarding form.
type OnboardInput struct {
	BusinessName  string
	Category      string
	City          string
	Bio           string
	WhatsappLink  string
	GalleryImages []string
	PortfolioDocs []string
}

// Onboard creates an unverified vendor profile for the user. One profile
// per user; the business name is slugified for public URLs and suffixed
// on collision.
func (s *Service) Onboard(ctx context.Context, ownerUID string, in OnboardInput) (*models.VendorProfile, error) {
	if _, err := s.repo.ReadVendorProfileByOwner(ctx, ownerUID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile := models.VendorProfile{
		OwnerUID:      ownerUID,
		BusinessName:  in.BusinessName,
		Slug:          slug.Make(in.BusinessName),
		Category:      in.Category,
		City:          in.City,
		Bio:           in.Bio,
		WhatsappLink:  in.WhatsappLink,
		GalleryImages: in.GalleryImages,
		PortfolioDocs: in.PortfolioDocs,
	}

	id, err := s.repo.CreateVendorProfile(ctx, profile)
	if errors.Is(err, repository.ErrDuplicate) {
		// slug collision with another business of the same name
		profile.Slug = fmt.Sprintf("%s-%s", profile.Slug, uuid.NewString()[:8])
		id, err = s.repo.CreateVendorProfile(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.log.Info("vendor profile created", slog.Int64("id", id), slog.String("slug", profile.Slug))
	return s.repo.ReadVendorProfile(ctx, id)
}

// UpdateInput carries the editable profile fields. Nil means unchanged.
type UpdateInput struct {
	BusinessName    *string
	Category        *string
	City            *string
	Bio             *string
	WhatsappLink    *string
	PrimaryImageURL *string
	GalleryImages   []string
	PortfolioDocs   []string
}

// Update edits the actor's own vendor profile.
func (s *Service) Update(ctx context.Context, ownerUID string, in UpdateInput) (*models.VendorProfile, error) {
	profile, err := s.repo.ReadVendorProfileByOwner(ctx, ownerUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.BusinessName != nil {
		profile.BusinessName = *in.BusinessName
	}
	if in.Category != nil {
		profile.Category = *in.Category
	}
	if in.City != nil {
		profile.City = *in.City
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.WhatsappLink != nil {
		profile.WhatsappLink = *in.WhatsappLink
	}
	if in.PrimaryImageURL != nil {
		profile.PrimaryImageURL = *in.PrimaryImageURL
	}
	if in.GalleryImages != nil {
		profile.GalleryImages = in.GalleryImages
	}
	if in.PortfolioDocs != nil {
		profile.PortfolioDocs = in.PortfolioDocs
	}

	if err := s.repo.UpdateVendorProfile(ctx, *profile); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	return s.repo.ReadVendorProfile(ctx, profile.ID)
}

// Read returns a vendor profile by numeric ID.
func (s *Service) Read(ctx context.Context, id int64) (*models.VendorProfile, error) {
	profile, err := s.repo.ReadVendorProfile(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return profile, err
}

// ReadBySlug returns a vendor profile by its public slug.
func (s *Service) ReadBySlug(ctx context.Context, slugStr string) (*models.VendorProfile, error) {
	profile, err := s.repo.ReadVendorProfileBySlug(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return profile, err
}

// ReadOwn returns the actor's own profile, verified or not.
func (s *Service) ReadOwn(ctx context.Context, ownerUID string) (*models.VendorProfile, error) {
	profile, err := s.repo.ReadVendorProfileByOwner(ctx, ownerUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return profile, err
}

// List returns verified vendors for the public discovery page,
// cache-aside with a short TTL.
func (s *Service) List(ctx context.Context, filter models.VendorFilter, limit, offset int) ([]*models.VendorProfile, error) {
	key := listCacheKey(filter, limit, offset)

	var cached []*models.VendorProfile
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("vendor list cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	list, err := s.repo.ListVendorProfiles(ctx, true, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, list, listCacheTTL); err != nil {
		s.log.Warn("vendor list cache write failed", sl.Err(err))
	}
	return list, nil
}

// ListPending returns unverified profiles for the moderation queue.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*models.VendorProfile, error) {
	return s.repo.ListVendorProfiles(ctx, false, models.VendorFilter{}, limit, offset)
}

// Approve marks the vendor verified so it appears in public listings.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.setVerified(ctx, id, true)
}

// Reject revokes (or denies) verification.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.setVerified(ctx, id, false)
}

func (s *Service) setVerified(ctx context.Context, id int64, verified bool) error {
	err := s.repo.SetVendorVerified(ctx, id, verified)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.invalidateListings(ctx)
	s.log.Info("vendor verification changed", slog.Int64("id", id), slog.Bool("verified", verified))
	return nil
}

// invalidateListings drops the unfiltered first-page key. Filtered pages
// carry the short TTL and age out on their own.
func (s *Service) invalidateListings(ctx context.Context) {
	key := listCacheKey(models.VendorFilter{}, 20, 0)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("vendor list cache invalidation failed", sl.Err(err))
	}
}

func listCacheKey(filter models.VendorFilter, limit, offset int) string {
	return fmt.Sprintf("vendors:list:%s:%s:%d:%d", filter.Category, filter.City, limit, offset)
}
