// Package bridge implements the cross-subdomain session bridge.
//
// The platform's front-end apps live on separate subdomains that cannot
// reliably share cookies, so a logged-in session is carried over by a
// server-issued exchange code: the source app asks for a code, sends the
// user to the destination, and the destination redeems the code for a
// fresh session token. Codes are single-use and expire after a short TTL;
// the raw token never appears in a URL built by this service.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bventy/platform/internal/config"
	"github.com/bventy/platform/internal/lib/jwt"
	"github.com/bventy/platform/internal/models"
)

// CodeTTL is how long an unredeemed exchange code stays valid.
const CodeTTL = 60 * time.Second

// ErrCodeInvalid: the exchange code is unknown, expired or already used.
var ErrCodeInvalid = errors.New("invalid or expired exchange code")

// CodeStore is the single-use code storage. GetDel must be atomic so a
// code can be redeemed at most once.
type CodeStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	GetDel(ctx context.Context, key string, result any) (bool, error)
}

// ProfileReader loads the current user record. The bridge routes and
// mints tokens from it rather than from login-time claims, so a vendor
// profile onboarded after login is picked up on the next hop.
type ProfileReader interface {
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

// Service issues and redeems exchange codes and resolves hop destinations.
type Service struct {
	codes    CodeStore
	profiles ProfileReader
	maker    jwt.Maker
	urls     config.Subdomains
	log      *slog.Logger
}

// New creates a bridge Service.
func New(codes CodeStore, profiles ProfileReader, maker jwt.Maker, urls config.Subdomains, log *slog.Logger) *Service {
	return &Service{
		codes:    codes,
		profiles: profiles,
		maker:    maker,
		urls:     urls,
		log:      log,
	}
}

func codeKey(code string) string {
	return fmt.Sprintf("bridge:code:%s", code)
}

// sessionFor builds the routing identity from the current user record.
func sessionFor(user *models.User) jwt.Session {
	return jwt.Session{
		UserUID:       user.UID,
		Email:         user.Email,
		Role:          user.Role,
		VendorProfile: user.VendorProfileExists,
	}
}

// Start issues a single-use exchange code bound to the caller's account
// and returns it together with the destination dashboard URL. Role and
// vendor flag come from the current profile, not the presented token.
func (s *Service) Start(ctx context.Context, userUID, returnTo string) (code, destination string, err error) {
	user, err := s.profiles.Profile(ctx, userUID)
	if err != nil {
		return "", "", err
	}
	code = uuid.NewString()
	if err := s.codes.Set(ctx, codeKey(code), userUID, CodeTTL); err != nil {
		return "", "", err
	}
	destination = s.ResolveDestination(sessionFor(user), returnTo) + "/dashboard"
	s.log.Info("issued bridge code",
		slog.String("uid", userUID),
		slog.String("destination", destination))
	return code, destination, nil
}

// Redeem consumes an exchange code and mints a fresh session token from
// the current user record, returning both. A second redeem of the same
// code fails with ErrCodeInvalid.
func (s *Service) Redeem(ctx context.Context, code string) (string, *models.User, error) {
	var userUID string
	found, err := s.codes.GetDel(ctx, codeKey(code), &userUID)
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, ErrCodeInvalid
	}
	user, err := s.profiles.Profile(ctx, userUID)
	if err != nil {
		return "", nil, err
	}
	token, err := s.maker.GenerateToken(sessionFor(user))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveDestination picks the base URL of the app the session should land
// on. Precedence:
//
//  1. returnTo, when present: a hostname containing "admin" selects the
//     admin app, "vendor" the vendor app, anything else the main app. A
//     value that cannot be parsed falls back to the marketing site. The
//     result is always one of the configured base URLs; a caller-supplied
//     host selects a destination, it never becomes one.
//  2. admin and super_admin roles go to the admin app, ahead of the
//     vendor-profile check.
//  3. sessions with a vendor profile go to the vendor app.
//  4. everyone else goes to the main app.
func (s *Service) ResolveDestination(sess jwt.Session, returnTo string) string {
	if returnTo = strings.TrimSpace(returnTo); returnTo != "" {
		host, ok := returnToHost(returnTo)
		if !ok {
			return s.urls.WWWURL
		}
		switch {
		case strings.Contains(host, "admin"):
			return s.urls.AdminURL
		case strings.Contains(host, "vendor"):
			return s.urls.VendorURL
		default:
			return s.urls.AppURL
		}
	}

	switch {
	case sess.Role == "admin" || sess.Role == "super_admin":
		return s.urls.AdminURL
	case sess.VendorProfile:
		return s.urls.VendorURL
	default:
		return s.urls.AppURL
	}
}

// returnToHost extracts the hostname from a returnTo value, which may be a
// full URL or a bare host.
func returnToHost(returnTo string) (string, bool) {
	if strings.ContainsAny(returnTo, " \t\n") {
		return "", false
	}
	u, err := url.Parse(returnTo)
	if err != nil {
		return "", false
	}
	if u.Host != "" {
		return u.Hostname(), true
	}
	// bare host form, e.g. "vendor.bventy.in"
	host := returnTo
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return "", false
	}
	return host, true
}
