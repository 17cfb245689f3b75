package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the FinSync client
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Server ServerConfig `mapstructure:"server"`
	Upload UploadConfig `mapstructure:"upload"`
	UI     UIConfig     `mapstructure:"ui"`
}

// APIConfig holds backend gateway configuration
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ServerConfig holds local serve-mode configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// UploadConfig holds file upload constraints
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// UIConfig holds terminal rendering settings
type UIConfig struct {
	TypewriterSpeedMS    int `mapstructure:"typewriter_speed_ms"`
	TypewriterVarianceMS int `mapstructure:"typewriter_variance_ms"`
	ProgressGraceMS      int `mapstructure:"progress_grace_ms"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("FINSYNC")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout_seconds", 0)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("ui.typewriter_speed_ms", 15)
	v.SetDefault("ui.typewriter_variance_ms", 10)
	v.SetDefault("ui.progress_grace_ms", 3000)
}

// Address returns the local server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Timeout returns the HTTP client timeout; zero means no client-side timeout
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxFileSizeBytes returns the upload size limit in bytes
func (c UploadConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// TypewriterSpeed returns the per-character reveal delay
func (c UIConfig) TypewriterSpeed() time.Duration {
	return time.Duration(c.TypewriterSpeedMS) * time.Millisecond
}

// TypewriterVariance returns the random per-character delay variance
func (c UIConfig) TypewriterVariance() time.Duration {
	return time.Duration(c.TypewriterVarianceMS) * time.Millisecond
}

// ProgressGrace returns how long terminal upload states stay visible
func (c UIConfig) ProgressGrace() time.Duration {
	return time.Duration(c.ProgressGraceMS) * time.Millisecond
}
