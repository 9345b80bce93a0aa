package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bventy/platform/internal/models"
)

const quoteColumns = `id, organizer_uid, vendor_id, event_id, budget_range, message,
			      special_requirements, response_deadline, status, quoted_price,
			      vendor_response, revision_note, attachment_url, created_at,
			      responded_at, accepted_at, contact_expires_at`

func scanQuote(row interface{ Scan(...any) error }) (*models.QuoteRequest, error) {
	q := &models.QuoteRequest{}
	var deadline, respondedAt, acceptedAt, contactExpiresAt sql.NullTime
	var price sql.NullFloat64
	if err := row.Scan(&q.ID, &q.OrganizerUID, &q.VendorID, &q.EventID, &q.BudgetRange,
		&q.Message, &q.SpecialRequirements, &deadline, &q.Status, &price,
		&q.VendorResponse, &q.RevisionNote, &q.AttachmentURL, &q.CreatedAt,
		&respondedAt, &acceptedAt, &contactExpiresAt); err != nil {
		return nil, err
	}
	if deadline.Valid {
		q.ResponseDeadline = &deadline.Time
	}
	if price.Valid {
		q.QuotedPrice = &price.Float64
	}
	if respondedAt.Valid {
		q.RespondedAt = &respondedAt.Time
	}
	if acceptedAt.Valid {
		q.AcceptedAt = &acceptedAt.Time
	}
	if contactExpiresAt.Valid {
		q.ContactExpiresAt = &contactExpiresAt.Time
	}
	return q, nil
}

// CreateQuote inserts a new pending quote request and returns its ID.
// A second request for the same organizer+vendor+event pair fails with
// ErrDuplicate (schema unique constraint).
func (s *Storage) CreateQuote(ctx context.Context, q models.QuoteRequest) (int64, error) {
	const op = "storage.CreateQuote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO quote_requests (organizer_uid, vendor_id, event_id, budget_range,
			      message, special_requirements, response_deadline, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		q.OrganizerUID, q.VendorID, q.EventID, q.BudgetRange, q.Message,
		q.SpecialRequirements, q.ResponseDeadline, models.QuotePending).Scan(&newID)
	if err != nil {
		return 0, translateErr(op, err)
	}
	return newID, nil
}

// ReadQuote returns a quote request by ID.
func (s *Storage) ReadQuote(ctx context.Context, id int64) (*models.QuoteRequest, error) {
	const op = "storage.ReadQuote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + quoteColumns + ` FROM quote_requests WHERE id = $1`
	q, err := scanQuote(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return q, nil
}

// SaveQuoteResponse records the vendor response: price, message and
// optional attachment. Overwrites any prior response and clears the
// revision note.
func (s *Storage) SaveQuoteResponse(ctx context.Context, id int64, price float64, response, attachmentURL string, respondedAt time.Time) error {
	const op = "storage.SaveQuoteResponse"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE quote_requests
			  SET status = $1, quoted_price = $2, vendor_response = $3, attachment_url = $4,
			      revision_note = '', responded_at = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		models.QuoteQuoted, price, response, attachmentURL, respondedAt, id)
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

// AcceptQuote marks a quote accepted and opens the contact window.
func (s *Storage) AcceptQuote(ctx context.Context, id int64, acceptedAt, contactExpiresAt time.Time) error {
	const op = "storage.AcceptQuote"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE quote_requests
			  SET status = $1, accepted_at = $2, contact_expires_at = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, models.QuoteAccepted, acceptedAt, contactExpiresAt, id)
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

// SetQuoteStatus moves a quote to the given status without touching any
// other field. Used for reject and archive.
func (s *Storage) SetQuoteStatus(ctx context.Context, id int64, status models.QuoteStatus) error {
	const op = "storage.SetQuoteStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE quote_requests SET status = $1 WHERE id = $2`, status, id)
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

// RequestQuoteRevision moves a quote to revision_requested and records
// the organizer's feedback.
func (s *Storage) RequestQuoteRevision(ctx context.Context, id int64, note string) error {
	const op = "storage.RequestQuoteRevision"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE quote_requests SET status = $1, revision_note = $2 WHERE id = $3`,
		models.QuoteRevisionRequested, note, id)
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

func (s *Storage) listQuotes(ctx context.Context, op, where string, arg any, limit, offset int) ([]*models.QuoteRequest, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + quoteColumns + `
			  FROM quote_requests
			  WHERE ` + where + `
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.QuoteRequest
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListQuotesByOrganizer returns the quote requests created by a user.
func (s *Storage) ListQuotesByOrganizer(ctx context.Context, organizerUID string, limit, offset int) ([]*models.QuoteRequest, error) {
	return s.listQuotes(ctx, "storage.ListQuotesByOrganizer", "organizer_uid = $1", organizerUID, limit, offset)
}

// ListQuotesByVendor returns the quote requests addressed to a vendor.
func (s *Storage) ListQuotesByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]*models.QuoteRequest, error) {
	return s.listQuotes(ctx, "storage.ListQuotesByVendor", "vendor_id = $1", vendorID, limit, offset)
}

// ArchiveExpiredQuotes moves accepted quotes whose contact window has
// elapsed to archived and returns how many rows changed.
func (s *Storage) ArchiveExpiredQuotes(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.ArchiveExpiredQuotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE quote_requests
		 SET status = $1
		 WHERE status = $2 AND contact_expires_at <= $3`,
		models.QuoteArchived, models.QuoteAccepted, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// CountStats aggregates the admin dashboard numbers.
func (s *Storage) CountStats(ctx context.Context) (*models.AdminStats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.AdminStats{QuotesByStatus: map[string]int{}}
	err := s.DB.QueryRowContext(ctx, `SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM vendor_profiles),
			(SELECT count(*) FROM vendor_profiles WHERE verified = false),
			(SELECT count(*) FROM events)`).
		Scan(&stats.TotalUsers, &stats.TotalVendors, &stats.PendingVendors, &stats.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT status, count(*) FROM quote_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.QuotesByStatus[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
