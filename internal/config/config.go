// Package config loads the backend configuration from defaults, an optional
// TOML file and IMAGE_BACKEND_* environment variables, in increasing order of
// precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-backend/internal/imaging"
)

// EnvPrefix is prepended to every environment override, e.g.
// IMAGE_BACKEND_LOG_LEVEL or IMAGE_BACKEND_LIMITS_MAX_PIXELS.
const EnvPrefix = "IMAGE_BACKEND"

// ConfigName is the base name of the optional config file.
const ConfigName = "image-backend"

// Config holds the application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Limits LimitsConfig `mapstructure:"limits"`
	Encode EncodeConfig `mapstructure:"encode"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig controls logging on stderr
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// LimitsConfig bounds the work a single request may cause
type LimitsConfig struct {
	// MaxPixels rejects decoded images larger than width*height; 0 disables.
	MaxPixels int `mapstructure:"max_pixels"`
}

// EncodeConfig holds default encoder settings for Convert
type EncodeConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`

	// WebPQuality of 0 keeps WebP output lossless.
	WebPQuality int `mapstructure:"webp_quality"`
}

// ServerConfig holds transport settings
type ServerConfig struct {
	// MaxRequestBytes caps one JSON-RPC line. Base64 images are large.
	MaxRequestBytes int `mapstructure:"max_request_bytes"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("limits.max_pixels", 0)
	v.SetDefault("encode.jpeg_quality", imaging.DefaultJPEGQuality)
	v.SetDefault("encode.webp_quality", 0)
	v.SetDefault("server.max_request_bytes", 64*1024*1024)
}

// Load reads configuration. When path is empty the working directory and
// the user config directory are searched for image-backend.toml; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "could not read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot honor.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "invalid log.level %q", c.Log.Level)
	}
	if c.Limits.MaxPixels < 0 {
		return errors.Errorf("limits.max_pixels must not be negative, got %d", c.Limits.MaxPixels)
	}
	if c.Encode.JPEGQuality < 1 || c.Encode.JPEGQuality > 100 {
		return errors.Errorf("encode.jpeg_quality must be within 1-100, got %d", c.Encode.JPEGQuality)
	}
	if c.Encode.WebPQuality < 0 || c.Encode.WebPQuality > 100 {
		return errors.Errorf("encode.webp_quality must be within 0-100, got %d", c.Encode.WebPQuality)
	}
	if c.Server.MaxRequestBytes < 1024 {
		return errors.Errorf("server.max_request_bytes must be at least 1024, got %d", c.Server.MaxRequestBytes)
	}
	return nil
}

// Engine builds the transform engine described by the configuration.
func (c *Config) Engine() imaging.Engine {
	return imaging.Engine{
		MaxPixels:   c.Limits.MaxPixels,
		JPEGQuality: c.Encode.JPEGQuality,
		WebPQuality: c.Encode.WebPQuality,
	}
}

// LogLevel returns the configured zerolog level.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
