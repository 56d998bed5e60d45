package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. Access tokens stay short-lived so a stolen
// one expires quickly; refresh tokens live for days for user convenience.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// AccessClaims are embedded in access tokens. They carry enough profile
// data to render "who is calling" without a database round-trip, though the
// auth gate still re-fetches the canonical record to catch drift.
type AccessClaims struct {
	jwt.RegisteredClaims

	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullname,omitempty"`
}

// RefreshClaims carry only the subject; everything else about the session
// lives on the user record.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds minimally-correct access claims.
func NewAccessClaims(
	subject, email, username, fullName string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) AccessClaims {
	return AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:    email,
		Username: username,
		FullName: fullName,
	}
}

// NewRefreshClaims builds minimally-correct refresh claims.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) RefreshClaims {
	return RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
