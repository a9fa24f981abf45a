// Package authtoken verifies the HS256 bearer tokens issued by the identity
// provider and turns them into callers.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the registered claims plus the identity fields the service reads.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Verifier checks signatures with a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("authtoken: empty secret")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify validates signature and expiry and returns the caller named by the
// token. Every failure wraps ErrInvalidToken.
func (v *Verifier) Verify(token string) (identity.Caller, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return identity.Caller{}, fmt.Errorf("%w: unreadable claims", ErrInvalidToken)
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: user_id: %w", ErrInvalidToken, err)
	}
	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: role: %w", ErrInvalidToken, err)
	}
	return identity.NewCaller(id, role)
}

// Issue signs a token for userID with role, valid for ttl from now. The
// provider owns issuance in production; this serves tests and local tooling.
func (v *Verifier) Issue(userID kernel.UUID, role identity.Role, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID.String(),
		Role:   role.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
