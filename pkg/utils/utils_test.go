package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID, tenantID := uuid.New(), uuid.New()

	token, err := m.GenerateAccessToken(userID, tenantID, "ana@otica.com", "manager")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "manager", claims.Role)

	other := utils.NewJWTManager("another-secret", time.Hour, time.Hour)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenWithoutTenantIsRejected(t *testing.T) {
	m := utils.NewJWTManager("test-secret", time.Hour, time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), uuid.Nil, "x@y.z", "seller")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	m := utils.NewJWTManager("test-secret", time.Hour, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("1234")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("1234", hash))
	assert.False(t, utils.CheckPasswordHash("4321", hash))
	assert.False(t, utils.CheckPasswordHash("1234", ""))
}

func TestCodes(t *testing.T) {
	assert.Equal(t, "otica-visao-clara", utils.Slugify("  Otica Visao  Clara! "))
	assert.Equal(t, "otica-sao-joao", utils.Slugify("Ótica São João"))

	number := utils.GenerateOrderNumber(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(number, "OS-2025-"))
	assert.Len(t, number, len("OS-2025-")+8)
	assert.True(t, strings.HasPrefix(utils.GenerateProductCode(), "PRD-"))
}
