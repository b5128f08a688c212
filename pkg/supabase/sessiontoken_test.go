package supabase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test_secret"
	testUserID = "6f1d2c3b-7a4e-4f0a-9b1c-2d3e4f5a6b7c"
)

func TestVerifyAccessToken_Valid(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := SignAccessToken(testUserID, "ana@campus.edu", "authenticated", testSecret, now.Add(-time.Minute), 10*time.Minute)
	require.NoError(t, err)

	got, err := VerifyAccessToken(s, testSecret, "authenticated", now)
	require.NoError(t, err)
	assert.Equal(t, testUserID, got.UserID)
	assert.Equal(t, "ana@campus.edu", got.Email)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := SignAccessToken(testUserID, "", "authenticated", testSecret, now.Add(-time.Hour), 10*time.Minute)
	require.NoError(t, err)

	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.Error(t, err)
}

func TestVerifyAccessToken_AudienceMismatch(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := SignAccessToken(testUserID, "", "someone-else", testSecret, now, 10*time.Minute)
	require.NoError(t, err)

	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.EqualError(t, err, "audience mismatch")
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := SignAccessToken(testUserID, "", "authenticated", "other", now, 10*time.Minute)
	require.NoError(t, err)

	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.Error(t, err)
}

func TestVerifyAccessToken_RejectsAnonAndBadSubject(t *testing.T) {
	now := time.Unix(1700000000, 0)

	anon := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUserID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		Role: "anon",
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, anon).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.EqualError(t, err, "anonymous token")

	s, err = SignAccessToken("not-a-uuid", "", "authenticated", testSecret, now, time.Minute)
	require.NoError(t, err)
	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.Error(t, err)
}

func TestVerifyAccessToken_MissingExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  testUserID,
			Audience: jwt.ClaimStrings{"authenticated"},
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyAccessToken(s, testSecret, "authenticated", now)
	assert.Error(t, err)
}
