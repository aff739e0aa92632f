package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		expected int
	}{
		{name: "unset returns default", set: false, expected: 42},
		{name: "valid integer", value: "100", set: true, expected: 100},
		{name: "negative integer", value: "-10", set: true, expected: -10},
		{name: "zero", value: "0", set: true, expected: 0},
		{name: "garbage returns default", value: "not-a-number", set: true, expected: 42},
		{name: "float returns default", value: "42.5", set: true, expected: 42},
		{name: "empty string returns default", value: "", set: true, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_INT_VAR", tt.value)
			}
			assert.Equal(t, tt.expected, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	fallback := 5 * time.Minute

	tests := []struct {
		name     string
		value    string
		set      bool
		expected time.Duration
	}{
		{name: "unset returns default", set: false, expected: fallback},
		{name: "minutes", value: "10m", set: true, expected: 10 * time.Minute},
		{name: "seconds", value: "30s", set: true, expected: 30 * time.Second},
		{name: "compound", value: "1h30m45s", set: true, expected: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "garbage returns default", value: "not-a-duration", set: true, expected: fallback},
		{name: "bare number returns default", value: "100", set: true, expected: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_DURATION_VAR", tt.value)
			}
			assert.Equal(t, tt.expected, getEnvAsDuration("TEST_DURATION_VAR", fallback))
		})
	}
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxConnLifetime, cfg.DBMaxConnLifetime)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 1*time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "bad-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxConnLifetime, cfg.DBMaxConnLifetime)
	})
}

func TestLoad_SpinRateLimitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultSpinRateLimit, cfg.SpinRateLimit)
		assert.Equal(t, DefaultSpinRateWindow, cfg.SpinRateWindow)
	})

	t.Run("custom kiosk budget", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("SPIN_RATE_LIMIT", "3")
		t.Setenv("SPIN_RATE_WINDOW", "30s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3, cfg.SpinRateLimit)
		assert.Equal(t, 30*time.Second, cfg.SpinRateWindow)
	})
}
