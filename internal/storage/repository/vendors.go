package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bventy/platform/internal/models"
)

const vendorColumns = `id, owner_uid, business_name, slug, category, city, bio, whatsapp_link,
			      primary_image_url, gallery_images, portfolio_docs, verified, rating,
			      review_count, created_at, updated_at`

func scanVendor(row interface{ Scan(...any) error }) (*models.VendorProfile, error) {
	v := &models.VendorProfile{}
	var gallery, docs []byte
	if err := row.Scan(&v.ID, &v.OwnerUID, &v.BusinessName, &v.Slug, &v.Category,
		&v.City, &v.Bio, &v.WhatsappLink, &v.PrimaryImageURL, &gallery, &docs,
		&v.Verified, &v.Rating, &v.ReviewCount, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(gallery, &v.GalleryImages); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(docs, &v.PortfolioDocs); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVendorProfile inserts a new (unverified) vendor profile and
// returns its ID. One profile per owner and unique slugs are enforced by
// the schema.
func (s *Storage) CreateVendorProfile(ctx context.Context, v models.VendorProfile) (int64, error) {
	const op = "storage.CreateVendorProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	gallery, err := json.Marshal(v.GalleryImages)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	docs, err := json.Marshal(v.PortfolioDocs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO vendor_profiles (owner_uid, business_name, slug, category, city,
			      bio, whatsapp_link, primary_image_url, gallery_images, portfolio_docs)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int64
	err = s.DB.QueryRowContext(ctx, query,
		v.OwnerUID, v.BusinessName, v.Slug, v.Category, v.City, v.Bio,
		v.WhatsappLink, v.PrimaryImageURL, gallery, docs).Scan(&newID)
	if err != nil {
		return 0, translateErr(op, err)
	}
	return newID, nil
}

// ReadVendorProfile returns a vendor profile by ID.
func (s *Storage) ReadVendorProfile(ctx context.Context, id int64) (*models.VendorProfile, error) {
	const op = "storage.ReadVendorProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + vendorColumns + ` FROM vendor_profiles WHERE id = $1`
	v, err := scanVendor(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return v, nil
}

// ReadVendorProfileBySlug returns a vendor profile by its slug.
func (s *Storage) ReadVendorProfileBySlug(ctx context.Context, slug string) (*models.VendorProfile, error) {
	const op = "storage.ReadVendorProfileBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + vendorColumns + ` FROM vendor_profiles WHERE slug = $1`
	v, err := scanVendor(s.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return v, nil
}

// ReadVendorProfileByOwner returns the vendor profile owned by a user.
func (s *Storage) ReadVendorProfileByOwner(ctx context.Context, ownerUID string) (*models.VendorProfile, error) {
	const op = "storage.ReadVendorProfileByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + vendorColumns + ` FROM vendor_profiles WHERE owner_uid = $1`
	v, err := scanVendor(s.DB.QueryRowContext(ctx, query, ownerUID))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return v, nil
}

// UpdateVendorProfile overwrites the owner-editable fields of a profile.
func (s *Storage) UpdateVendorProfile(ctx context.Context, v models.VendorProfile) error {
	const op = "storage.UpdateVendorProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	gallery, err := json.Marshal(v.GalleryImages)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	docs, err := json.Marshal(v.PortfolioDocs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE vendor_profiles
			  SET business_name = $1, category = $2, city = $3, bio = $4, whatsapp_link = $5,
			      primary_image_url = $6, gallery_images = $7, portfolio_docs = $8, updated_at = $9
			  WHERE id = $10`
	result, err := s.DB.ExecContext(ctx, query,
		v.BusinessName, v.Category, v.City, v.Bio, v.WhatsappLink,
		v.PrimaryImageURL, gallery, docs, time.Now().UTC(), v.ID)
	if err != nil {
		return translateErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// SetVendorVerified flips the moderation flag.
func (s *Storage) SetVendorVerified(ctx context.Context, id int64, verified bool) error {
	const op = "storage.SetVendorVerified"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE vendor_profiles SET verified = $1, updated_at = now() WHERE id = $2`, verified, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListVendorProfiles returns vendor profiles with optional category/city
// filters and pagination. When verifiedOnly is set, unverified profiles
// are excluded (the public listing).
func (s *Storage) ListVendorProfiles(ctx context.Context, verifiedOnly bool, filter models.VendorFilter, limit, offset int) ([]*models.VendorProfile, error) {
	const op = "storage.ListVendorProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + vendorColumns + `
			  FROM vendor_profiles
			  WHERE ($1::boolean = false OR verified = true)
			    AND ($2::text = '' OR category = $2)
			    AND ($3::text = '' OR city = $3)
			  ORDER BY rating DESC, id
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query, verifiedOnly, filter.Category, filter.City, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.VendorProfile
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
