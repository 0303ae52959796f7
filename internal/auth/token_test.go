package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signin-labs/account-service/internal/domain"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, exp, err := tm.Issue("google-sub-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(domain.SessionTTL), exp, 5*time.Second)

	subjectID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", subjectID)
}

func TestTokenManager_IssueRequiresSecret(t *testing.T) {
	tm := NewTokenManager("")

	token, _, err := tm.Issue("google-sub-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Empty(t, token)
}

func TestTokenManager_IssueRequiresSubject(t *testing.T) {
	_, _, err := NewTokenManager(testSecret).Issue("")
	assert.Error(t, err)
}

func TestTokenManager_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager(testSecret)
	tm.now = fixedClock(issuedAt)

	token, exp, err := tm.Issue("google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), exp)

	tm.now = fixedClock(issuedAt.Add(domain.SessionTTL - time.Minute))
	subjectID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", subjectID)

	tm.now = fixedClock(issuedAt.Add(domain.SessionTTL + time.Minute))
	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assertKind(t, err, TokenExpired)
}

func TestTokenManager_VerifyRejects(t *testing.T) {
	tm := NewTokenManager(testSecret)
	other := NewTokenManager("a-different-secret-entirely-0000000")

	foreign, _, err := other.Issue("google-sub-1")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"googleId": "google-sub-1",
		"sub":      "google-sub-1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"googleId": "google-sub-1",
		"sub":      "google-sub-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	mismatched, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"googleId": "google-sub-1",
		"sub":      "someone-else",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		kind  TokenErrorKind
	}{
		{name: "missing", token: "", kind: TokenMissing},
		{name: "malformed", token: "not-a-jwt", kind: TokenMalformed},
		{name: "wrong secret", token: foreign, kind: TokenSignature},
		{name: "alg none", token: unsigned, kind: TokenSignature},
		{name: "no expiry", token: noExpiry, kind: TokenClaims},
		{name: "subject mismatch", token: mismatched, kind: TokenClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subjectID, err := tm.Verify(tt.token)
			require.Error(t, err)
			assert.Empty(t, subjectID)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestTokenManager_SecretRotationInvalidatesTokens(t *testing.T) {
	token, _, err := NewTokenManager(testSecret).Issue("google-sub-1")
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret + "-rotated").Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func assertKind(t *testing.T, err error, want TokenErrorKind) {
	t.Helper()
	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr), "expected *TokenError, got %T", err)
	assert.Equal(t, want, tokenErr.Kind)
}
