package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/perkvault/rewards_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "test-secret-key-that-is-long-enough"

	token, err := utils.GenerateJWT(42, "hr", secret, time.Hour, "rewards-test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "hr", claims.Role)
	assert.Equal(t, "rewards-test", claims.Issuer)

	employeeID, err := utils.SubjectToEmployeeID(claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, int64(42), employeeID)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT(42, "user", "correct-secret", time.Hour, "rewards-test")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "wrong-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	secret := "test-secret-key-that-is-long-enough"
	token, err := utils.GenerateJWT(42, "user", secret, -time.Minute, "rewards-test")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateInvitationCode(t *testing.T) {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := utils.GenerateInvitationCode()
		require.NoError(t, err)
		assert.Len(t, code, 10)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
		}
		seen[code] = true
	}
	// 50 draws from a 31^10 space colliding would mean broken randomness.
	assert.Len(t, seen, 50)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("hunter2-but-longer")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2-but-longer", hash)

	assert.True(t, utils.CheckPasswordHash("hunter2-but-longer", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))
}
