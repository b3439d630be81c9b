package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("staff-1", "r-1", TokenKindStaff, "waiter", "sess-1", StaffTokenTTL)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, "r-1", claims.RestaurantID)
	assert.Equal(t, TokenKindStaff, claims.Kind)
	assert.Equal(t, "waiter", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("r-1", "r-1", TokenKindRestaurant, "", "", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateToken("r-1", "r-1", TokenKindRestaurant, "", "", RestaurantTokenTTL)
	require.NoError(t, err)

	InitJWT("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
