package jwtx

import (
	"bytes"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")

	ErrMissingSecret = errors.New("jwtx: signing secret not configured")
	ErrSharedSecret  = errors.New("jwtx: access and refresh secrets must differ")
)

// Issuer mints and verifies the two token classes. Access and refresh
// tokens are signed with distinct HS256 secrets so that compromise of one
// key cannot forge the other class.
type Issuer struct {
	issuer        string
	accessSecret  []byte
	refreshSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewIssuer validates the secrets and returns a ready Issuer. Zero TTLs
// fall back to the package defaults.
func NewIssuer(issuer string, accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, ErrMissingSecret
	}
	if bytes.Equal(accessSecret, refreshSecret) {
		return nil, ErrSharedSecret
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &Issuer{
		issuer:        issuer,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}, nil
}

// IssueAccess signs an access token for the given identity.
func (i *Issuer) IssueAccess(subject, email, username, fullName string, now time.Time) (string, error) {
	claims := NewAccessClaims(subject, email, username, fullName, i.issuer, i.AccessTTL, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.accessSecret)
}

// IssueRefresh signs a refresh token carrying only the subject claim.
func (i *Issuer) IssueRefresh(subject string, now time.Time) (string, error) {
	claims := NewRefreshClaims(subject, i.issuer, i.RefreshTTL, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.refreshSecret)
}

// VerifyAccess checks signature then expiry and returns the access claims.
// A token signed with the refresh secret fails with ErrInvalidSig.
func (i *Issuer) VerifyAccess(raw string) (AccessClaims, error) {
	var claims AccessClaims
	if err := i.verify(raw, &claims, i.accessSecret); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

// VerifyRefresh checks signature then expiry and returns the refresh claims.
func (i *Issuer) VerifyRefresh(raw string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := i.verify(raw, &claims, i.refreshSecret); err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

func (i *Issuer) verify(raw string, claims jwt.Claims, secret []byte) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return mapParseError(err)
	}
	return nil
}

// mapParseError collapses golang-jwt's error surface into our sentinels.
// Signature and structural failures are reported before expiry so a
// tampered-but-expired token never reads as merely expired.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrInvalidKey),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrExpired
	default:
		return ErrInvalidSig
	}
}
