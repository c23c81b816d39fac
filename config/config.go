package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Map      MapConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
}

type UpstreamConfig struct {
	// Websocket URL of the admin event feed, e.g. ws://98.70.26.155:3000/admin
	URL              string
	ReconnectDelay   time.Duration
	MaxReconnectWait time.Duration
}

type MapConfig struct {
	// Home camera view. Defaults center on India to match the tile coverage.
	CenterLng    float64
	CenterLat    float64
	Zoom         float64
	Pitch        float64
	DefaultTheme string
}

type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			URL:              getEnv("UPSTREAM_URL", "ws://localhost:3000/admin"),
			ReconnectDelay:   getDuration("UPSTREAM_RECONNECT_DELAY", 2*time.Second),
			MaxReconnectWait: getDuration("UPSTREAM_MAX_RECONNECT_WAIT", 30*time.Second),
		},
		Map: MapConfig{
			CenterLng:    getFloat("MAP_CENTER_LNG", 78.9629),
			CenterLat:    getFloat("MAP_CENTER_LAT", 20.5937),
			Zoom:         getFloat("MAP_ZOOM", 5),
			Pitch:        getFloat("MAP_PITCH", 45),
			DefaultTheme: getEnv("MAP_THEME", "default"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
