// Package jwt implements generation and parsing of session tokens with
// platform-specific claim fields.
//
// Maker is the interface the rest of the service depends on; MakerImpl is
// the HS256 implementation backed by a shared secret and a token TTL.
package jwt

import (
	"time"
)

// Session carries the identity embedded in a token: who the bearer is,
// what role they hold and whether a vendor profile exists for them. Routing
// and authorization decisions downstream use only these fields.
type Session struct {
	UserUID       string
	Email         string
	Role          string
	VendorProfile bool
}

// Maker describes generation and parsing of session tokens.
type Maker interface {
	// GenerateToken signs a token embedding the given session identity.
	GenerateToken(s Session) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker using a secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker creates a MakerImpl from a secret key and TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
