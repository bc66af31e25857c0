package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/promptlab-go/internal/pkg/paths"
)

// Load loads configuration with 2-tier priority:
// Environment variables (including .env file) > Default values
func Load() (*Config, error) {
	// Load .env file if exists
	loadDotEnv()

	// Start with defaults
	cfg := DefaultConfig()

	// Set database path
	cfg.Database.Path = paths.GetDBPath()

	// Apply environment variable overrides (highest priority)
	applyEnvOverrides(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads a .env file from the base path.
func loadDotEnv() {
	envFile := filepath.Join(paths.GetBasePath(), ".env")
	data, err := os.ReadFile(envFile)
	if err != nil {
		return // .env file is optional
	}

	// Simple .env parser: KEY=VALUE lines
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if idx := strings.IndexByte(line, '='); idx > 0 {
			key := strings.TrimSpace(line[:idx])
			val := strings.TrimSpace(line[idx+1:])
			val = trimQuotes(val)
			// Real env vars take precedence over the .env file
			if os.Getenv(key) == "" {
				os.Setenv(key, val)
			}
		}
	}
}

// applyEnvOverrides applies PROMPTLAB_* environment variables.
func applyEnvOverrides(cfg *Config) {
	cfg.Server.Host = getEnvStr("PROMPTLAB_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("PROMPTLAB_PORT", cfg.Server.Port)
	cfg.Server.LogLevel = getEnvStr("PROMPTLAB_LOG_LEVEL", cfg.Server.LogLevel)

	cfg.Generation.BaseURL = getEnvStr("PROMPTLAB_GENERATION_BASE_URL", cfg.Generation.BaseURL)
	cfg.Generation.APIKey = getEnvStr("PROMPTLAB_GENERATION_API_KEY", cfg.Generation.APIKey)
	// Legacy key from the first deployment; still honored.
	if cfg.Generation.APIKey == "" {
		cfg.Generation.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	cfg.Generation.Model = getEnvStr("PROMPTLAB_GENERATION_MODEL", cfg.Generation.Model)
	cfg.Generation.Temperature = getEnvFloat("PROMPTLAB_GENERATION_TEMPERATURE", cfg.Generation.Temperature)
	cfg.Generation.TopP = getEnvFloat("PROMPTLAB_GENERATION_TOP_P", cfg.Generation.TopP)
	cfg.Generation.MaxTokens = getEnvInt("PROMPTLAB_GENERATION_MAX_TOKENS", cfg.Generation.MaxTokens)
	cfg.Generation.TimeoutSeconds = getEnvInt("PROMPTLAB_GENERATION_TIMEOUT_SECONDS", cfg.Generation.TimeoutSeconds)

	cfg.Embedding.Enabled = getEnvBool("PROMPTLAB_EMBEDDING_ENABLED", cfg.Embedding.Enabled)
	cfg.Embedding.BaseURL = getEnvStr("PROMPTLAB_EMBEDDING_BASE_URL", cfg.Embedding.BaseURL)
	cfg.Embedding.APIKey = getEnvStr("PROMPTLAB_EMBEDDING_API_KEY", cfg.Embedding.APIKey)
	cfg.Embedding.Model = getEnvStr("PROMPTLAB_EMBEDDING_MODEL", cfg.Embedding.Model)
	cfg.Embedding.TimeoutSeconds = getEnvInt("PROMPTLAB_EMBEDDING_TIMEOUT_SECONDS", cfg.Embedding.TimeoutSeconds)

	cfg.Retrieval.TopN = getEnvInt("PROMPTLAB_RETRIEVAL_TOP_N", cfg.Retrieval.TopN)
	cfg.Retrieval.MaxVocabulary = getEnvInt("PROMPTLAB_RETRIEVAL_MAX_VOCABULARY", cfg.Retrieval.MaxVocabulary)

	cfg.Catalog.FilePath = getEnvStr("PROMPTLAB_CATALOG_FILE", cfg.Catalog.FilePath)

	cfg.Database.Path = getEnvStr("PROMPTLAB_DB", cfg.Database.Path)

	cfg.LogRotation.MaxSizeMB = getEnvInt("PROMPTLAB_LOG_MAX_SIZE_MB", cfg.LogRotation.MaxSizeMB)
	cfg.LogRotation.MaxBackups = getEnvInt("PROMPTLAB_LOG_MAX_BACKUPS", cfg.LogRotation.MaxBackups)
	cfg.LogRotation.MaxAgeDays = getEnvInt("PROMPTLAB_LOG_MAX_AGE_DAYS", cfg.LogRotation.MaxAgeDays)
	cfg.LogRotation.Compress = getEnvBool("PROMPTLAB_LOG_COMPRESS", cfg.LogRotation.Compress)

	cfg.RateLimit.Enabled = getEnvBool("PROMPTLAB_RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.MaxRequests = getEnvInt("PROMPTLAB_RATE_LIMIT_MAX_REQUESTS", cfg.RateLimit.MaxRequests)
	cfg.RateLimit.WindowSeconds = getEnvInt("PROMPTLAB_RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimit.WindowSeconds)
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
