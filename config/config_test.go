package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "ws://localhost:3000/admin", cfg.Upstream.URL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.ReconnectDelay)
	assert.Equal(t, 30*time.Second, cfg.Upstream.MaxReconnectWait)
	assert.Equal(t, 78.9629, cfg.Map.CenterLng)
	assert.Equal(t, 20.5937, cfg.Map.CenterLat)
	assert.Equal(t, 5.0, cfg.Map.Zoom)
	assert.Equal(t, "default", cfg.Map.DefaultTheme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_URL", "ws://feed.internal:3000/admin")
	t.Setenv("UPSTREAM_RECONNECT_DELAY", "500ms")
	t.Setenv("MAP_ZOOM", "7.5")
	t.Setenv("MAP_THEME", "dark")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "ws://feed.internal:3000/admin", cfg.Upstream.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Upstream.ReconnectDelay)
	assert.Equal(t, 7.5, cfg.Map.Zoom)
	assert.Equal(t, "dark", cfg.Map.DefaultTheme)
}

func TestBadNumericEnvFallsBack(t *testing.T) {
	t.Setenv("MAP_ZOOM", "very-close")
	t.Setenv("UPSTREAM_RECONNECT_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 5.0, cfg.Map.Zoom)
	assert.Equal(t, 2*time.Second, cfg.Upstream.ReconnectDelay)
}
