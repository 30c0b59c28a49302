package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKSEARCH_DATABASE_URL", "postgres://localhost:5432/worksearch")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 60*time.Second, cfg.TeamsCacheTTL)
	assert.Equal(t, 720*time.Hour, cfg.SearchLogMaxAge)
	assert.Equal(t, time.Hour, cfg.RetentionInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKSEARCH_DATABASE_URL", "postgres://localhost:5432/worksearch")
	t.Setenv("WORKSEARCH_PORT", "9090")
	t.Setenv("WORKSEARCH_DEBUG", "true")
	t.Setenv("WORKSEARCH_PROVIDER_TIMEOUT", "3s")
	t.Setenv("WORKSEARCH_SERVICE_KEY", "secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "secret", cfg.ServiceKey)
}

func TestHasGraph(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasGraph())

	cfg.GraphTenantID = "tenant"
	cfg.GraphClientID = "client"
	assert.False(t, cfg.HasGraph())

	cfg.GraphClientSecret = "secret"
	assert.True(t, cfg.HasGraph())
}
