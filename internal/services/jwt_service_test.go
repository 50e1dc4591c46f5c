package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func newTestJWTService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		Algorithm:     "HS256",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	service := newTestJWTService(30 * time.Minute)
	userID := uuid.New()

	token, err := service.GenerateAccessToken(userID, models.RoleFarmer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, models.RoleFarmer, claims.Role)
}

func TestRefreshTokenCarriesNoRole(t *testing.T) {
	service := newTestJWTService(30 * time.Minute)

	token, err := service.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestVerifyToken_Expired(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	token, err := service.GenerateAccessToken(uuid.New(), models.RoleFarmer)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, models.ErrExpiredToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(30 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:        "different-secret",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, err := service.GenerateAccessToken(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	service := newTestJWTService(30 * time.Minute)

	_, err := service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}
