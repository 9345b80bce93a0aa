package group

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/models"
)

type fakeRepo struct {
	groups  map[int64]*models.Group
	members map[int64][]string
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups:  map[int64]*models.Group{},
		members: map[int64][]string{},
		nextID:  1,
	}
}

func (f *fakeRepo) CreateGroup(_ context.Context, g models.Group) (int64, error) {
	g.ID = f.nextID
	f.nextID++
	f.groups[g.ID] = &g
	f.members[g.ID] = []string{g.CreatorUID}
	return g.ID, nil
}

func (f *fakeRepo) ListGroupsByMember(_ context.Context, userUID string) ([]*models.Group, error) {
	var result []*models.Group
	for id, members := range f.members {
		for _, m := range members {
			if m == userUID {
				result = append(result, f.groups[id])
			}
		}
	}
	return result, nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func TestService_Create(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.New(discardHandler{}))

	id, err := svc.Create(context.Background(), "uid-1", "Wedding planning", "vendors and family")
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, "Wedding planning", repo.groups[id].Name)
}

func TestService_Create_EmptyName(t *testing.T) {
	svc := New(newFakeRepo(), slog.New(discardHandler{}))

	_, err := svc.Create(context.Background(), "uid-1", "", "no name")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestService_ListForUser(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.New(discardHandler{}))

	_, err := svc.Create(context.Background(), "uid-1", "Wedding planning", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "uid-2", "Conference crew", "")
	require.NoError(t, err)

	got, err := svc.ListForUser(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Wedding planning", got[0].Name)

	got, err = svc.ListForUser(context.Background(), "uid-3")
	require.NoError(t, err)
	assert.Empty(t, got)
}
