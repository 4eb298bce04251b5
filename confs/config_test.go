package confs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SESSION_SECRET", "WEATHER_API_KEY", "PORT", "SESSION_TTL", "LOG_LEVEL",
	"DB_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("all settings present", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_SECRET", "s3cret")
		t.Setenv("WEATHER_API_KEY", "key")
		t.Setenv("PORT", "3000")
		t.Setenv("DB_URL", "postgres://u:p@db.example.com/todo")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.SessionSecret)
		assert.Equal(t, "key", cfg.WeatherAPIKey)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "postgres://u:p@db.example.com/todo?sslmode=require", cfg.DatabaseDSN)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("missing settings are all reported", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "3000")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
		assert.Contains(t, err.Error(), "WEATHER_API_KEY")
		assert.Contains(t, err.Error(), "DB_URL")
		assert.NotContains(t, err.Error(), "PORT")
	})

	t.Run("invalid session ttl", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL", "forever")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_TTL")
	})
}

func TestDatabaseDSN(t *testing.T) {
	t.Run("url keeps explicit sslmode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_URL", "postgres://u:p@localhost/todo?sslmode=disable")

		dsn, err := DatabaseDSN()
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@localhost/todo?sslmode=disable", dsn)
	})

	t.Run("url with query gets sslmode appended", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_URL", "postgres://u:p@db/todo?connect_timeout=5")

		dsn, err := DatabaseDSN()
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@db/todo?connect_timeout=5&sslmode=require", dsn)
	})

	t.Run("individual parameters on localhost disable ssl", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_USER", "todo")
		t.Setenv("DB_PASSWORD", "pw")
		t.Setenv("DB_NAME", "todo")

		dsn, err := DatabaseDSN()
		require.NoError(t, err)
		assert.Contains(t, dsn, "host=localhost")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("incomplete parameters", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_HOST", "db")

		_, err := DatabaseDSN()
		assert.Error(t, err)
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	})

	t.Run("values are exported", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("WEATHER_API_KEY=from-file\n"), 0o600))
		// godotenv never overrides variables that are already set
		require.NoError(t, os.Unsetenv("WEATHER_API_KEY"))

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "from-file", os.Getenv("WEATHER_API_KEY"))
		t.Cleanup(func() { os.Unsetenv("WEATHER_API_KEY") })
	})
}

func TestNewLogger(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")

	assert.Equal(t, log.InfoLevel, NewLogger(&buf, "bogus").GetLevel())
}
