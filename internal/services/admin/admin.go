// Package admin implements the operations behind the admin panel:
// platform stats, user management and role changes.
package admin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidRole = errors.New("unknown role")
	ErrForbidden   = errors.New("not permitted")
)

// UserRepository is the storage contract for user administration.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, userUID, role string) error
}

// StatsRepository aggregates platform counters.
type StatsRepository interface {
	CountStats(ctx context.Context) (*models.AdminStats, error)
}

// Service implements admin-panel operations.
type Service struct {
	users UserRepository
	stats StatsRepository
	log   *slog.Logger
}

// New creates an admin Service.
func New(users UserRepository, stats StatsRepository, log *slog.Logger) *Service {
	return &Service{users: users, stats: stats, log: log}
}

// Stats returns the dashboard counters.
func (s *Service) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.stats.CountStats(ctx)
}

// ListUsers pages through all registered users.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.users.ListUsers(ctx, limit, offset)
}

// UpdateRole changes a user's role. Only a super_admin may grant or
// revoke super_admin; admins manage the lesser roles.
func (s *Service) UpdateRole(ctx context.Context, actorRole, targetUID, newRole string) error {
	switch newRole {
	case models.RoleUser, models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return ErrInvalidRole
	}

	target, err := s.users.GetUser(ctx, targetUID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if (newRole == models.RoleSuperAdmin || target.Role == models.RoleSuperAdmin) &&
		actorRole != models.RoleSuperAdmin {
		return ErrForbidden
	}

	if err := s.users.UpdateUserRole(ctx, targetUID, newRole); err != nil {
		return err
	}
	s.log.Info("user role updated",
		slog.String("uid", targetUID),
		slog.String("from", target.Role),
		slog.String("to", newRole))
	return nil
}
