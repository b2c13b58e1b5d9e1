package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image-backend.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0, cfg.Limits.MaxPixels)
	assert.Equal(t, 75, cfg.Encode.JPEGQuality)
	assert.Equal(t, 0, cfg.Encode.WebPQuality)
	assert.Equal(t, 64*1024*1024, cfg.Server.MaxRequestBytes)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
json = true

[limits]
max_pixels = 4000000

[encode]
jpeg_quality = 90
webp_quality = 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 4000000, cfg.Limits.MaxPixels)

	e := cfg.Engine()
	assert.Equal(t, 4000000, e.MaxPixels)
	assert.Equal(t, 90, e.JPEGQuality)
	assert.Equal(t, 80, e.WebPQuality)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[limits]\nmax_pixels = 10\n")
	t.Setenv("IMAGE_BACKEND_LIMITS_MAX_PIXELS", "20")
	t.Setenv("IMAGE_BACKEND_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Limits.MaxPixels)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Log:    LogConfig{Level: "info"},
		Encode: EncodeConfig{JPEGQuality: 75},
		Server: ServerConfig{MaxRequestBytes: 1 << 20},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative limit", func(c *Config) { c.Limits.MaxPixels = -1 }},
		{"jpeg quality zero", func(c *Config) { c.Encode.JPEGQuality = 0 }},
		{"webp quality too high", func(c *Config) { c.Encode.WebPQuality = 101 }},
		{"tiny request", func(c *Config) { c.Server.MaxRequestBytes = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
