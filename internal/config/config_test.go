package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfigDefaults(t *testing.T) {
	t.Setenv("ECHELON_AUTH_JWT_SECRET", "test-secret")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.NonceTTL)
	assert.Equal(t, "marketplace.feed", cfg.NATS.SubjectPrefix)
	assert.Equal(t, 200, cfg.Feed.MaxEvents)
	assert.Equal(t, 100, cfg.Feed.DefaultLimit)
}

func TestLoadAPIConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("ECHELON_AUTH_JWT_SECRET", "")

	_, err := LoadAPIConfig("", t.TempDir())
	assert.Error(t, err)
}

func TestLoadAPIConfigEnvOverrides(t *testing.T) {
	t.Setenv("ECHELON_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("ECHELON_SERVER_PORT", "9999")
	t.Setenv("ECHELON_DATABASE_HOST", "db.internal")
	t.Setenv("ECHELON_FEED_MAX_EVENTS", "50")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Feed.MaxEvents)
}

func TestLoadAPIConfigFromFile(t *testing.T) {
	t.Setenv("ECHELON_AUTH_JWT_SECRET", "test-secret")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 3001\ndatabase:\n  dbname: echelon\n")
	require.NoError(t, os.WriteFile(configPath, content, 0o600))

	cfg, err := LoadAPIConfig(configPath, dir)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "echelon", cfg.Database.DBName)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "marketplace",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=marketplace sslmode=disable",
		c.DSN())
}
