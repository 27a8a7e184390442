package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderChic/abarroteria-192/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 10, cfg.App.LowStockThreshold)
	assert.Equal(t, "http://localhost:3000", cfg.Store.BaseURL)
	assert.Empty(t, cfg.Store.PathPrefix)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, ".session", cfg.Session.Dir)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BASE_URL", "https://tienda.example.com")
	t.Setenv("STORE_PATH_PREFIX", "/api")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("STORE_TIMEOUT_SECONDS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "https://tienda.example.com", cfg.Store.BaseURL)
	assert.Equal(t, "/api", cfg.Store.PathPrefix)
	assert.Equal(t, 5, cfg.App.LowStockThreshold)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
}
