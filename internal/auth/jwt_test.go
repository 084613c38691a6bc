package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdash-backend/internal/config"
)

func testManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "shipdash-backend"
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager()

	token, err := m.GenerateToken("ops@example.com", "analyst", time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "analyst", claims.Role)
	assert.Equal(t, "shipdash-backend", claims.Issuer)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := testManager()

	token, err := m.GenerateToken("ops@example.com", "viewer", -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := testManager().GenerateToken("ops@example.com", "viewer", time.Hour)
	require.NoError(t, err)

	other := &config.Config{}
	other.JWT.Secret = "different-secret"

	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := testManager().ValidateToken("not.a.token")
	assert.Error(t, err)
}
