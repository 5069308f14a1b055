package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough!",
		AccessTokenExpiration: expiration,
		Issuer:                "vansales-test",
	})
}

func TestJWTServiceRoundTrip(t *testing.T) {
	service := newTestService(15 * time.Minute)
	tenantID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := service.GenerateAccessToken(tenantID, userID, "driver1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Second)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "driver1", claims.Username)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.GenerateAccessToken(uuid.New(), uuid.New(), "")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	service := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-value!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "vansales-test",
	})

	token, _, err := other.GenerateAccessToken(uuid.New(), uuid.New(), "")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTServiceRejectsGarbage(t *testing.T) {
	service := newTestService(15 * time.Minute)

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
