// Package group manages planning groups used by the chat surface.
// Membership and message history live elsewhere; the API only creates
// groups and lists the ones the user belongs to.
package group

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bventy/platform/internal/models"
)

var ErrEmptyName = errors.New("group name is required")

// Repository is the storage contract for groups.
type Repository interface {
	CreateGroup(ctx context.Context, g models.Group) (int64, error)
	ListGroupsByMember(ctx context.Context, userUID string) ([]*models.Group, error)
}

// Service implements group operations.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a group Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create makes a new group with the actor as its first member.
func (s *Service) Create(ctx context.Context, creatorUID, name, description string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	id, err := s.repo.CreateGroup(ctx, models.Group{
		Name:        name,
		Description: description,
		CreatorUID:  creatorUID,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("group created", slog.Int64("id", id))
	return id, nil
}

// ListForUser returns the groups the actor is a member of.
func (s *Service) ListForUser(ctx context.Context, userUID string) ([]*models.Group, error) {
	return s.repo.ListGroupsByMember(ctx, userUID)
}
