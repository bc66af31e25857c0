// Package config provides configuration management with 2-tier priority:
// Environment variables (including .env file) > Default values
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Generation  GenerationConfig
	Embedding   EmbeddingConfig
	Retrieval   RetrievalConfig
	Catalog     CatalogConfig
	Database    DatabaseConfig
	LogRotation LogRotationConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host     string
	Port     int
	LogLevel string
}

// GenerationConfig holds the OpenAI-compatible text-generation settings.
// An empty APIKey disables the generative rewrite strategy; the pipeline
// then always uses the deterministic fallback.
type GenerationConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	TopP           float64
	MaxTokens      int
	TimeoutSeconds int
}

// EmbeddingConfig holds the OpenAI-compatible embeddings settings used by
// the semantic similarity backend. Disabled or unconfigured embedding
// routes retrieval to the in-process TF-IDF backend.
type EmbeddingConfig struct {
	Enabled        bool
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// RetrievalConfig holds similarity search settings.
type RetrievalConfig struct {
	TopN          int
	MaxVocabulary int
}

// CatalogConfig holds example catalog source settings.
// FilePath, when set, points to a YAML catalog that replaces both the
// database rows and the builtin seed.
type CatalogConfig struct {
	FilePath string
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string
}

// LogRotationConfig holds log rotation settings powered by lumberjack.
type LogRotationConfig struct {
	MaxSizeMB  int  // Maximum size in MB before rotation
	MaxBackups int  // Maximum number of old log files to retain
	MaxAgeDays int  // Maximum number of days to retain old log files
	Compress   bool // Whether to gzip compress rotated files
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8000,
			LogLevel: "INFO",
		},
		Generation: GenerationConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:          "gemini-pro",
			Temperature:    0.7,
			TopP:           0.9,
			MaxTokens:      1024,
			TimeoutSeconds: 10,
		},
		Embedding: EmbeddingConfig{
			Enabled:        false,
			Model:          "text-embedding-3-small",
			TimeoutSeconds: 10,
		},
		Retrieval: RetrievalConfig{
			TopN:          3,
			MaxVocabulary: 5000,
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			MaxRequests:   100,
			WindowSeconds: 60,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be between 1 and 65535"}
	}
	if c.Retrieval.TopN < 1 {
		return &ConfigError{Field: "retrieval.top_n", Message: "must be at least 1"}
	}
	if c.Generation.TimeoutSeconds < 1 {
		return &ConfigError{Field: "generation.timeout_seconds", Message: "must be at least 1"}
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return &ConfigError{Field: "generation.temperature", Message: "must be between 0 and 2"}
	}
	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		return &ConfigError{Field: "generation.top_p", Message: "must be in (0, 1]"}
	}
	if c.Embedding.Enabled && c.Embedding.BaseURL == "" {
		return &ConfigError{Field: "embedding.base_url", Message: "required when embedding is enabled"}
	}
	return nil
}

// GenerativeConfigured reports whether the generative strategy has a credential.
func (c *Config) GenerativeConfigured() bool {
	return c.Generation.APIKey != ""
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + ": " + e.Message
}

// Helper functions for environment variable parsing.

func getEnvStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	lower := strings.ToLower(v)
	return lower == "true" || lower == "1" || lower == "yes" || lower == "on"
}
