package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"vibenet_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "vibenet",
		Audience:      "vibenet-clients",
		AccessMinutes: 15,
		RefreshDays:   30,
	})
}

func TestCreateAccessToken_Claims(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.CreateAccessToken("user-1", "alice", "alice@x.com")
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "vibenet", claims.Issuer)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestCreateAccessToken_UniqueIDs(t *testing.T) {
	issuer := testIssuer()

	a, err := issuer.CreateAccessToken("u", "n", "e@x.com")
	require.NoError(t, err)
	b, err := issuer.CreateAccessToken("u", "n", "e@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseAccessToken_RejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := testIssuer()
	token, err := issuer.CreateAccessToken("u", "n", "e@x.com")
	require.NoError(t, err)

	other := NewTokenIssuer(config.JWTConfig{Secret: "other", Issuer: "vibenet", Audience: "vibenet-clients", AccessMinutes: 15})
	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := time.Now().Add(time.Hour)
	_, err = testIssuer().WithClock(func() time.Time { return later }).ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSubjectUnverified_IgnoresExpiryAndSignature(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	token, err := testIssuer().WithClock(func() time.Time { return past }).CreateAccessToken("user-9", "n", "e@x.com")
	require.NoError(t, err)

	sub, err := ParseSubjectUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", sub)

	_, err = ParseSubjectUnverified("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}

func TestGenerateOTPCode_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, OTPLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q", code)
		}
	}
}
