package config

import (
	"os"
	"strconv"
	"time"

	"datadeck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AIConfig holds narrative-generation settings
type AIConfig struct {
	GeminiKey   string
	GeminiModel string
	Timeout     time.Duration
}

// UploadConfig holds file ingestion limits
type UploadConfig struct {
	MaxFileSize int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "5000"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		AI: AIConfig{
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:     getDurationEnv("AI_TIMEOUT", 90*time.Second),
		},
		Upload: UploadConfig{
			MaxFileSize: getInt64Env("MAX_UPLOAD_BYTES", 50*1024*1024),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.AI.GeminiKey == "" {
		return errors.New(errors.CodeDependency, "GEMINI_API_KEY is required")
	}
	if config.AI.Timeout <= 0 {
		return errors.New(errors.CodeInternal, "AI_TIMEOUT must be positive")
	}
	if config.Upload.MaxFileSize <= 0 {
		return errors.New(errors.CodeInternal, "MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
