package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bventy/platform/internal/models"
)

// CreateEvent inserts a new event and returns its ID.
func (s *Storage) CreateEvent(ctx context.Context, e models.Event) (int64, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (owner_uid, title, event_type, city, venue, event_date,
			      guest_count, budget, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		e.OwnerUID, e.Title, e.EventType, e.City, e.Venue, e.Date,
		e.GuestCount, e.Budget, e.Notes).Scan(&newID)
	if err != nil {
		return 0, translateErr(op, err)
	}
	return newID, nil
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	var date sql.NullTime
	if err := row.Scan(&e.ID, &e.OwnerUID, &e.Title, &e.EventType, &e.City, &e.Venue,
		&date, &e.GuestCount, &e.Budget, &e.Notes, &e.CreatedAt); err != nil {
		return nil, err
	}
	if date.Valid {
		e.Date = &date.Time
	}
	return e, nil
}

const eventColumns = `id, owner_uid, title, event_type, city, venue, event_date, guest_count,
			      budget, notes, created_at`

// ReadEvent returns an event by ID.
func (s *Storage) ReadEvent(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.ReadEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return e, nil
}

// ListEvents returns the events owned by a user, newest first.
func (s *Storage) ListEvents(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE owner_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddShortlist saves an event↔vendor association.
func (s *Storage) AddShortlist(ctx context.Context, eventID, vendorID int64) error {
	const op = "storage.AddShortlist"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO shortlists (event_id, vendor_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, eventID, vendorID)
	if err != nil {
		return translateErr(op, err)
	}
	return nil
}

// RemoveShortlist deletes an event↔vendor association.
func (s *Storage) RemoveShortlist(ctx context.Context, eventID, vendorID int64) error {
	const op = "storage.RemoveShortlist"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM shortlists WHERE event_id = $1 AND vendor_id = $2`, eventID, vendorID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListShortlistedVendors returns the vendors shortlisted for an event.
func (s *Storage) ListShortlistedVendors(ctx context.Context, eventID int64) ([]*models.VendorProfile, error) {
	const op = "storage.ListShortlistedVendors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + vendorColumns + `
			  FROM vendor_profiles
			  JOIN shortlists sl ON sl.vendor_id = vendor_profiles.id
			  WHERE sl.event_id = $1
			  ORDER BY sl.added_at`
	rows, err := s.DB.QueryContext(ctx, query, eventID)
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
