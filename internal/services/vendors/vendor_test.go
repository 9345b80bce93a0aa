package vendor

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

type fakeRepo struct {
	profiles map[int64]*models.VendorProfile
	nextID   int64
	lists    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: map[int64]*models.VendorProfile{}, nextID: 1}
}

func (f *fakeRepo) CreateVendorProfile(_ context.Context, v models.VendorProfile) (int64, error) {
	for _, existing := range f.profiles {
		if existing.Slug == v.Slug || existing.OwnerUID == v.OwnerUID {
			return 0, repository.ErrDuplicate
		}
	}
	v.ID = f.nextID
	f.profiles[v.ID] = &v
	f.nextID++
	return v.ID, nil
}

func (f *fakeRepo) ReadVendorProfile(_ context.Context, id int64) (*models.VendorProfile, error) {
	v, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeRepo) ReadVendorProfileBySlug(_ context.Context, slug string) (*models.VendorProfile, error) {
	for _, v := range f.profiles {
		if v.Slug == slug {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) ReadVendorProfileByOwner(_ context.Context, ownerUID string) (*models.VendorProfile, error) {
	for _, v := range f.profiles {
		if v.OwnerUID == ownerUID {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) UpdateVendorProfile(_ context.Context, v models.VendorProfile) error {
	if _, ok := f.profiles[v.ID]; !ok {
		return repository.ErrNotFound
	}
	f.profiles[v.ID] = &v
	return nil
}

func (f *fakeRepo) SetVendorVerified(_ context.Context, id int64, verified bool) error {
	v, ok := f.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Verified = verified
	return nil
}

func (f *fakeRepo) ListVendorProfiles(_ context.Context, verifiedOnly bool, filter models.VendorFilter, _, _ int) ([]*models.VendorProfile, error) {
	f.lists++
	var out []*models.VendorProfile
	for _, v := range f.profiles {
		if verifiedOnly && !v.Verified {
			continue
		}
		if !verifiedOnly && v.Verified {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if filter.City != "" && v.City != filter.City {
			continue
		}
		copied := *v
		out = append(out, &copied)
	}
	return out, nil
}

type memCache struct {
	values map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}}
}

func (m *memCache) Get(_ context.Context, key string, result any) (bool, error) {
	data, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, result)
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	return nil
}

func (m *memCache) Invalidate(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, newMemCache(), slog.New(discardHandler{})), repo
}

func TestOnboard(t *testing.T) {
	svc, _ := newTestService()

	profile, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{
		BusinessName: "Royal Caterers & Co",
		Category:     "catering",
		City:         "Mumbai",
	})
	require.NoError(t, err)
	assert.Equal(t, "royal-caterers-co", profile.Slug)
	assert.False(t, profile.Verified)
}

func TestOnboard_OneProfilePerUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "First"})
	require.NoError(t, err)
	_, err = svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "Second"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestOnboard_SlugCollision(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "Royal Caterers"})
	require.NoError(t, err)
	second, err := svc.Onboard(context.Background(), "owner-2", OnboardInput{BusinessName: "Royal Caterers"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "royal-caterers-")
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "Royal Caterers", City: "Mumbai"})
	require.NoError(t, err)

	newCity := "Pune"
	updated, err := svc.Update(context.Background(), "owner-1", UpdateInput{City: &newCity})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "Royal Caterers", updated.BusinessName)
}

func TestUpdate_NoProfile(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "nobody", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_OnlyVerifiedAndCached(t *testing.T) {
	svc, repo := newTestService()

	verified, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "Verified One", Category: "catering"})
	require.NoError(t, err)
	_, err = svc.Onboard(context.Background(), "owner-2", OnboardInput{BusinessName: "Pending One", Category: "catering"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), verified.ID))

	list, err := svc.List(context.Background(), models.VendorFilter{}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Verified One", list[0].BusinessName)

	// second call is served from cache
	queries := repo.lists
	_, err = svc.List(context.Background(), models.VendorFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, queries, repo.lists)
}

func TestApproveInvalidatesListCache(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "First"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), first.ID))

	list, err := svc.List(context.Background(), models.VendorFilter{}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	second, err := svc.Onboard(context.Background(), "owner-2", OnboardInput{BusinessName: "Second"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), second.ID))

	list, err = svc.List(context.Background(), models.VendorFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestModeration(t *testing.T) {
	svc, _ := newTestService()

	profile, err := svc.Onboard(context.Background(), "owner-1", OnboardInput{BusinessName: "Royal Caterers"})
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, svc.Approve(context.Background(), profile.ID))
	got, err := svc.Read(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	require.NoError(t, svc.Reject(context.Background(), profile.ID))
	got, err = svc.Read(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.False(t, got.Verified)

	assert.ErrorIs(t, svc.Approve(context.Background(), 99), ErrNotFound)
}
