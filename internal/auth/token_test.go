package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("super-secret", ttl)
	require.NoError(t, err)
	return m
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	want := Identity{UserID: "user-123", Email: "ada@example.com", Name: "Ada"}

	tok, err := m.Issue(want)
	require.NoError(t, err)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := m.Issue(Identity{UserID: "u1"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestManager(t, time.Hour)
	tok, err := issuer.Issue(Identity{UserID: "u2"})
	require.NoError(t, err)

	other, err := NewTokenManager("wrong-secret", time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)
	tok, err := m.Issue(Identity{UserID: "u3"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := m.Verify(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrInvalidToken), raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, raw)
	}
}

func TestNewTokenManager_Config(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("secret", 0)
	assert.Error(t, err)

	m, err := NewTokenManager("secret", 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, m.TTL())
}
