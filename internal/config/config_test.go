package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Backend)
	assert.Equal(t, "data/mindscript.db", cfg.Database.Path)
	assert.Equal(t, 168, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "stub", cfg.Generator.Provider)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MINDSCRIPT_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("MINDSCRIPT_DATABASE_BACKEND", "memory")
	t.Setenv("MINDSCRIPT_AUTH_JWTSECRET", "env-secret")
	t.Setenv("MINDSCRIPT_AUTH_TOKENTTLHOURS", "24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Database.Backend)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("MINDSCRIPT_DATABASE_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
