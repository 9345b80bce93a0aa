package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bventy/platform/internal/models"
)

// RegisterUser saves a new user and returns its UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	permissions, err := json.Marshal(user.Permissions)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newUID string
	query := `INSERT INTO users (email, username, name, password_hash, role, permissions)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.Name, user.PasswordHash, user.Role,
		permissions).Scan(&newUID); err != nil {
		return "", translateErr(op, err)
	}
	return newUID, nil
}

const userColumns = `uid, email, username, name, password_hash, role, phone, city, bio,
			      avatar_url, permissions, created_at, last_login_at,
			      EXISTS (SELECT 1 FROM vendor_profiles v WHERE v.owner_uid = users.uid)`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var permissions []byte
	var lastLogin sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.Name, &u.PasswordHash,
		&u.Role, &u.Phone, &u.City, &u.Bio, &u.AvatarURL, &permissions,
		&u.CreatedAt, &lastLogin, &u.VendorProfileExists); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	if err := json.Unmarshal(permissions, &u.Permissions); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail returns a user by e-mail.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return u, nil
}

// GetUser returns a user by UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, translateErr(op, err)
	}
	return u, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (s *Storage) UpdateUserProfile(ctx context.Context, userUID string, user models.User) error {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, username = $2, phone = $3, city = $4, bio = $5, avatar_url = $6
			  WHERE uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		user.Name, user.Username, user.Phone, user.City, user.Bio, user.AvatarURL, userUID)
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

// UpdateUserRole changes the role of a user.
func (s *Storage) UpdateUserRole(ctx context.Context, userUID, role string) error {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $1 WHERE uid = $2`, role, userUID)
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

// TouchLastLogin records the login instant.
func (s *Storage) TouchLastLogin(ctx context.Context, userUID string, at time.Time) error {
	const op = "storage.TouchLastLogin"
	_, err := s.DB.ExecContext(ctx, `UPDATE users SET last_login_at = $1 WHERE uid = $2`, at, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsers returns users with pagination, newest first.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
