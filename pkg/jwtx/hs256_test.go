package jwtx_test

import (
	"testing"
	"time"

	"github.com/akashhsiv/api-drf/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "api-drf-auth"

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()
	s, err := jwtx.NewHS256("unit-test-secret", testIssuer)
	require.NoError(t, err)
	return s
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	now := time.Now().UTC()

	claims := jwtx.NewAccessClaims(
		"user-1", "session-1",
		"alice@example.com", "Alice", "staff", "manager", false,
		jwtx.DefaultAccessTokenTTL,
		testIssuer,
		now,
	)

	raw, err := s.Sign(claims)
	require.NoError(t, err)

	got, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "session-1", got.SID)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "staff", got.Kind)
	require.Equal(t, "manager", got.Role)
	require.False(t, got.Superuser)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	other, err := jwtx.NewHS256("a-different-secret", testIssuer)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"user-1", "sid", "a@b.c", "A", "customer", "", false,
		time.Minute, testIssuer, time.Now().UTC(),
	)
	raw, err := s.Sign(claims)
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	claims := jwtx.NewAccessClaims(
		"user-1", "sid", "a@b.c", "A", "customer", "", false,
		time.Minute, testIssuer, time.Now().UTC().Add(-time.Hour),
	)
	raw, err := s.Sign(claims)
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	claims := jwtx.NewAccessClaims(
		"user-1", "sid", "a@b.c", "A", "customer", "", false,
		time.Minute, "some-other-service", time.Now().UTC(),
	)
	raw, err := s.Sign(claims)
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	_, err := s.Verify("not.a.jwt")
	require.Error(t, err)
}

func TestNewHS256RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewHS256("", testIssuer)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
}
