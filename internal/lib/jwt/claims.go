package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims describes the platform data stored inside a session token.
type CustomClaims struct {
	UserUID              string `json:"uid"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
	VendorProfile        bool   `json:"vendor_profile"`
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt and the other standard claims
}

// Session converts the claims back into a Session value.
func (c *CustomClaims) Session() Session {
	return Session{
		UserUID:       c.UserUID,
		Email:         c.Email,
		Role:          c.Role,
		VendorProfile: c.VendorProfile,
	}
}

// GenerateToken signs an HS256 token for the given session identity.
// Token lifetime comes from the maker's TTL.
func (j *MakerImpl) GenerateToken(s Session) (string, error) {
	claims := CustomClaims{
		UserUID:       s.UserUID,
		Email:         s.Email,
		Role:          s.Role,
		VendorProfile: s.VendorProfile,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken validates the token signature and expiry and returns the
// embedded CustomClaims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
