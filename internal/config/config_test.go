package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "handbook.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Act
		config, err := Load("")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		// Arrange
		file := writeFile(t, "data_dir: /srv/handbook\nlog_level: debug\ncors_origins:\n  - https://example.org\nrate_limit: 0\n")

		// Act
		config, err := Load(file)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/srv/handbook", config.DataDir)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, []string{"https://example.org"}, config.CORSOrigins)
		assert.Equal(t, ":8080", config.Address)
		assert.Zero(t, config.RateLimit)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		// Arrange
		file := writeFile(t, "data_dir: /srv/handbook\naddress: :9000\n")
		t.Setenv(EnvDataDir, "/tmp/catalog")
		t.Setenv(EnvCORSOrigins, "https://a.org, ,https://b.org")
		t.Setenv(EnvRateLimit, "2.5")
		t.Setenv(EnvRateBurst, "5")

		// Act
		config, err := Load(file)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/tmp/catalog", config.DataDir)
		assert.Equal(t, ":9000", config.Address)
		assert.Equal(t, []string{"https://a.org", "https://b.org"}, config.CORSOrigins)
		assert.Equal(t, 2.5, config.RateLimit)
		assert.Equal(t, 5, config.RateBurst)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed file", func(t *testing.T) {
		_, err := Load(writeFile(t, "data_dir: [unterminated"))

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Malformed environment", func(t *testing.T) {
		t.Setenv(EnvRateBurst, "many")

		_, err := Load("")

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	scenarios := []struct {
		name   string
		modify func(*Config)
	}{
		{"Empty data directory", func(config *Config) { config.DataDir = "" }},
		{"Unknown log level", func(config *Config) { config.LogLevel = "loud" }},
		{"Negative rate", func(config *Config) { config.RateLimit = -1 }},
		{"Rate without burst", func(config *Config) { config.RateBurst = 0 }},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			config := Default()
			scenario.modify(&config)

			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
