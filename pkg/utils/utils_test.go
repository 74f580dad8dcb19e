package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/ecoduino/greenhouse-backend/pkg/errors"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(7, "grower@example.com", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "grower@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(7, "grower@example.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(7, "grower@example.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt", "secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestValidateStruct(t *testing.T) {
	type testRequest struct {
		Token string   `validate:"required,min=1,max=255"`
		Value *float64 `validate:"required,min=0,max=100"`
	}

	value := 42.0
	assert.NoError(t, ValidateStruct(&testRequest{Token: "ABC", Value: &value}))

	err := ValidateStruct(&testRequest{Value: &value})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Token")

	overflow := 150.0
	err = ValidateStruct(&testRequest{Token: "ABC", Value: &overflow})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidInput))
}
