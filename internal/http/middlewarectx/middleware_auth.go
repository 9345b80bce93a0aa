// Package middlewarectx contains the HTTP middleware that authenticates
// requests and the context keys handlers use to read the caller's
// identity.
//
// JWTMiddleware parses the Bearer token from the Authorization header,
// verifies its signature and expiry, and on success places the session
// in the request context. On failure it replies 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bventy/platform/internal/http/response"
	"github.com/bventy/platform/internal/lib/jwt"
	"github.com/bventy/platform/internal/lib/sl"
)

// Key is the type for request context keys.
type Key string

const (
	// UserUID is the context key for the caller's user UID.
	UserUID Key = "user_uid"
	// Role is the context key for the caller's role.
	Role Key = "role"
	// SessionKey is the context key for the full session.
	SessionKey Key = "session"
)

// TokenParser validates a session token and returns its claims.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware returns middleware that requires a valid Bearer token.
//
// On success the session, user UID and role are placed in the request
// context, otherwise the request is rejected with 401 Unauthorized.
func JWTMiddleware(maker TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			sess := claims.Session()
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, UserUID, sess.UserUID)
			ctx = context.WithValue(ctx, Role, sess.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session, if any.
func SessionFromContext(ctx context.Context) (jwt.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(jwt.Session)
	return sess, ok
}
