package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "AuthToken", cfg.Auth.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.True(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.Auth.StrictSessionCheck)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_JWT_ISSUER", "guid-project")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("AUTH_STRICT_SESSION_CHECK", "true")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "guid-project", cfg.Auth.JWTIssuer)
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.StrictSessionCheck)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Auth: AuthConfig{JWTSecret: "s", TokenTTLMinutes: 30, BcryptCost: 10, CookieName: "AuthToken"}}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.TokenTTLMinutes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.BcryptCost = 99
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty cookie name", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.CookieName = ""
		assert.Error(t, cfg.Validate())
	})
}
