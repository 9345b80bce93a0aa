// Package auth contains the business logic for signup, login and the
// authenticated profile.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bventy/platform/internal/lib/jwt"
	"github.com/bventy/platform/internal/lib/password"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/models"
	"github.com/bventy/platform/internal/storage/repository"
)

var (
	// ErrInvalidCredentials: unknown e-mail or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken: signup with an e-mail or username already in use.
	ErrEmailTaken = errors.New("email or username already registered")
	// ErrNotFound: the profile does not exist.
	ErrNotFound = errors.New("user not found")
)

// UserRepository is the storage contract the auth service depends on.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userUID string, user models.User) error
	TouchLastLogin(ctx context.Context, userUID string, at time.Time) error
}

// Cache stores the authenticated profile between requests.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implements registration, login and profile management.
type Service struct {
	users    UserRepository
	cache    Cache
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New creates an auth Service.
func New(users UserRepository, cache Cache, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		cache:    cache,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

func profileKey(uid string) string {
	return fmt.Sprintf("profile:%s", uid)
}

// Register creates a new account with the default role and returns a
// session token plus the stored profile.
func (s *Service) Register(ctx context.Context, email, username, name, rawPassword string) (string, *models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	user.UID = uid
	user.CreatedAt = time.Now().UTC()

	token, err := s.jwtMaker.GenerateToken(jwt.Session{
		UserUID: uid,
		Email:   email,
		Role:    user.Role,
	})
	if err != nil {
		return "", nil, err
	}
	s.log.Info("registered new user", slog.String("uid", uid))
	return token, &user, nil
}

// Login verifies credentials and issues a session token. The claims are a
// snapshot; the session bridge re-reads the profile on every hop, so they
// are never used for routing after login.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(jwt.Session{
		UserUID:       user.UID,
		Email:         user.Email,
		Role:          user.Role,
		VendorProfile: user.VendorProfileExists,
	})
	if err != nil {
		return "", nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.UID, time.Now().UTC()); err != nil {
		s.log.Warn("failed to record login time", sl.Err(err))
	}
	if err := s.cache.Set(ctx, profileKey(user.UID), user, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", sl.Err(err))
	}
	return token, user, nil
}

// Logout drops the cached profile. Session tokens are stateless; the
// client deletes its copy.
func (s *Service) Logout(ctx context.Context, userUID string) error {
	return s.cache.Invalidate(ctx, profileKey(userUID))
}

// Profile returns the authenticated user's profile, cache-aside.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	var cached models.User
	found, err := s.cache.Get(ctx, profileKey(userUID), &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, profileKey(userUID), user, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", sl.Err(err))
	}
	return user, nil
}

// ProfileUpdate holds the mutable profile fields.
type ProfileUpdate struct {
	Name      string
	Username  string
	Phone     string
	City      string
	Bio       string
	AvatarURL string
}

// UpdateProfile overwrites the mutable fields and invalidates the cache.
func (s *Service) UpdateProfile(ctx context.Context, userUID string, upd ProfileUpdate) (*models.User, error) {
	err := s.users.UpdateUserProfile(ctx, userUID, models.User{
		Name:      upd.Name,
		Username:  upd.Username,
		Phone:     upd.Phone,
		City:      upd.City,
		Bio:       upd.Bio,
		AvatarURL: upd.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, profileKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate cached profile", sl.Err(err))
	}
	return s.Profile(ctx, userUID)
}
