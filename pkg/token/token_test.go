package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, memberID, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		MemberID: memberID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	require.NoError(t, err)
	return signed
}

func TestParseSession(t *testing.T) {
	raw := signedToken(t, "u1", string(RoleCandidate), time.Hour)

	claims, err := ParseSession(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.MemberID)
	assert.Equal(t, "candidate", claims.Role)

	// Bearer prefix is tolerated
	claims, err = ParseSession("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.MemberID)
}

func TestParseSession_Invalid(t *testing.T) {
	_, err := ParseSession("")
	assert.Error(t, err)

	_, err = ParseSession("not-a-jwt")
	assert.Error(t, err)
}

func TestCheckNotExpired(t *testing.T) {
	ok, err := CheckNotExpired(signedToken(t, "u1", "candidate", time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckNotExpired(signedToken(t, "u1", "candidate", -time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}
