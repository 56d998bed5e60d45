package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "vidora-auth-test"

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()

	iss, err := NewIssuer(
		testIssuer,
		[]byte("access-secret-for-tests-0123456789"),
		[]byte("refresh-secret-for-tests-9876543210"),
		0, 0,
	)
	require.NoError(t, err)
	return iss
}

func TestNewIssuer_Validation(t *testing.T) {
	t.Run("rejects empty secrets", func(t *testing.T) {
		_, err := NewIssuer(testIssuer, nil, []byte("x"), 0, 0)
		require.ErrorIs(t, err, ErrMissingSecret)

		_, err = NewIssuer(testIssuer, []byte("x"), nil, 0, 0)
		require.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("rejects shared secret across classes", func(t *testing.T) {
		_, err := NewIssuer(testIssuer, []byte("same"), []byte("same"), 0, 0)
		require.ErrorIs(t, err, ErrSharedSecret)
	})

	t.Run("zero TTLs fall back to defaults", func(t *testing.T) {
		iss := newTestIssuer(t)
		require.Equal(t, DefaultAccessTokenTTL, iss.AccessTTL)
		require.Equal(t, DefaultRefreshTokenTTL, iss.RefreshTTL)
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)
	now := time.Now().UTC()

	raw, err := iss.IssueAccess("user-1", "a@x.com", "alice", "Alice A", now)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := iss.VerifyAccess(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "Alice A", claims.FullName)
	require.Equal(t, testIssuer, claims.Issuer)
	require.WithinDuration(t, now.Add(iss.AccessTTL), claims.ExpiresAt.Time, time.Second)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)

	raw, err := iss.IssueRefresh("user-1", time.Now().UTC())
	require.NoError(t, err)

	claims, err := iss.VerifyRefresh(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestVerify_RejectsWrongClass(t *testing.T) {
	iss := newTestIssuer(t)
	now := time.Now().UTC()

	access, err := iss.IssueAccess("user-1", "a@x.com", "alice", "Alice A", now)
	require.NoError(t, err)
	refresh, err := iss.IssueRefresh("user-1", now)
	require.NoError(t, err)

	// Each verifier must reject the other class's tokens outright.
	_, err = iss.VerifyRefresh(access)
	require.ErrorIs(t, err, ErrInvalidSig)

	_, err = iss.VerifyAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_RejectsTampered(t *testing.T) {
	iss := newTestIssuer(t)

	raw, err := iss.IssueAccess("user-1", "a@x.com", "alice", "Alice A", time.Now().UTC())
	require.NoError(t, err)

	// Flip the last byte of the signature segment.
	tampered := raw[:len(raw)-1]
	if raw[len(raw)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = iss.VerifyAccess(tampered)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	iss := newTestIssuer(t)

	_, err := iss.VerifyAccess("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = iss.VerifyRefresh("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerify_RejectsExpired(t *testing.T) {
	iss := newTestIssuer(t)

	// Issue a token whose lifetime already lapsed. The signature itself is
	// valid, expiry alone must reject it.
	past := time.Now().UTC().Add(-2 * DefaultAccessTokenTTL)
	raw, err := iss.IssueAccess("user-1", "a@x.com", "alice", "Alice A", past)
	require.NoError(t, err)

	_, err = iss.VerifyAccess(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerify_RejectsForeignIssuer(t *testing.T) {
	iss := newTestIssuer(t)

	other, err := NewIssuer(
		"someone-else",
		[]byte("access-secret-for-tests-0123456789"),
		[]byte("refresh-secret-for-tests-9876543210"),
		0, 0,
	)
	require.NoError(t, err)

	raw, err := other.IssueAccess("user-1", "a@x.com", "alice", "Alice A", time.Now().UTC())
	require.NoError(t, err)

	_, err = iss.VerifyAccess(raw)
	require.Error(t, err)
}
