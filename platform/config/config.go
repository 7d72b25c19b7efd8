// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// ChatAIConfig provides settings for the chat completion provider.
type ChatAIConfig interface {
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetChatModel() string
}

// FileAnalysisConfig provides settings for the document/image analysis provider.
type FileAnalysisConfig interface {
	GetAnthropicAPIKey() string
	GetFileAnalysisModel() string
	IsFileAnalysisEnabled() bool
}

// HubSpotConfig provides settings for CRM synchronization.
type HubSpotConfig interface {
	GetHubSpotAccessToken() string
	GetHubSpotBaseURL() string
	GetHubSpotWebhookTargetURL() string
	IsHubSpotEnabled() bool
}

// GeoConfig provides settings for IP geolocation.
type GeoConfig interface {
	GetIPInfoToken() string
	GetIPInfoBaseURL() string
	GetGeoProbeIP() string
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	MigrationsDir       string
	JWTAccessSecret     string
	AccessTokenTTL      time.Duration
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	ChatModel           string
	AnthropicAPIKey     string
	FileAnalysisModel   string
	HubSpotAccessToken  string
	HubSpotBaseURL      string
	HubSpotWebhookURL   string
	IPInfoToken         string
	IPInfoBaseURL       string
	GeoProbeIP          string
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// ChatAIConfig implementation
func (c *Config) GetOpenAIAPIKey() string  { return c.OpenAIAPIKey }
func (c *Config) GetOpenAIBaseURL() string { return c.OpenAIBaseURL }
func (c *Config) GetChatModel() string     { return c.ChatModel }

// FileAnalysisConfig implementation
func (c *Config) GetAnthropicAPIKey() string   { return c.AnthropicAPIKey }
func (c *Config) GetFileAnalysisModel() string { return c.FileAnalysisModel }
func (c *Config) IsFileAnalysisEnabled() bool  { return c.AnthropicAPIKey != "" }

// HubSpotConfig implementation
func (c *Config) GetHubSpotAccessToken() string      { return c.HubSpotAccessToken }
func (c *Config) GetHubSpotBaseURL() string          { return c.HubSpotBaseURL }
func (c *Config) GetHubSpotWebhookTargetURL() string { return c.HubSpotWebhookURL }
func (c *Config) IsHubSpotEnabled() bool             { return c.HubSpotAccessToken != "" }

// GeoConfig implementation
func (c *Config) GetIPInfoToken() string   { return c.IPInfoToken }
func (c *Config) GetIPInfoBaseURL() string { return c.IPInfoBaseURL }
func (c *Config) GetGeoProbeIP() string    { return c.GeoProbeIP }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:     mustDuration(getEnv("JWT_ACCESS_TTL", "24h")),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:          getEnv("CHAT_MODEL", "gpt-4-turbo"),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		FileAnalysisModel:  getEnv("FILE_ANALYSIS_MODEL", "claude-3-opus-20240229"),
		HubSpotAccessToken: getEnv("HUBSPOT_ACCESS_TOKEN", ""),
		HubSpotBaseURL:     getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		HubSpotWebhookURL:  getEnv("HUBSPOT_WEBHOOK_TARGET_URL", ""),
		IPInfoToken:        getEnv("IPINFO_TOKEN", ""),
		IPInfoBaseURL:      getEnv("IPINFO_BASE_URL", "https://ipinfo.io"),
		GeoProbeIP:         getEnv("GEO_PROBE_IP", "103.48.198.141"),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:     getEnv("ASYNQ_QUEUE_NAME", "default"),
		AsynqConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
