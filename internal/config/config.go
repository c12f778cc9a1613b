package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultTokenTTLMinutes is the access-token lifetime
	DefaultTokenTTLMinutes = 30
	// defaultJWTSecret matches the development default; Load warns when it is in use
	defaultJWTSecret = "supersecretkey"
	// defaultAuthPasswordHash is the bcrypt hash of "wonderland", the seeded dev credential
	defaultAuthPasswordHash = "$2b$12$ur0pG2FmbfThG4dX65ITIeCV8QoEwGdae0NUY6mv3KBiZcjemk2Yu"
)

// Config holds application configuration
type Config struct {
	DatabaseURL     string
	ServerPort      string
	FrontendURL     string
	LogDir          string
	ServerDebugMode bool

	AIBaseURL string
	AIModel   string
	AIAPIKey  string

	JWTSecret        string
	TokenTTLMinutes  int
	AuthUsername     string
	AuthPasswordHash string

	RedisURL   string
	EnableHSTS bool

	OTELEnabled  bool
	OTELEndpoint string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),

		AIBaseURL: getEnv("AI_BASE_URL", "http://localhost:8000/v1"),
		AIModel:   getEnv("AI_MODEL", "phi-3-mini-4k-instruct"),
		AIAPIKey:  getEnv("AI_API_KEY", "local"),

		JWTSecret:        getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTLMinutes:  getEnvInt("TOKEN_TTL_MINUTES", DefaultTokenTTLMinutes),
		AuthUsername:     getEnv("AUTH_USERNAME", "alice"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", defaultAuthPasswordHash),

		RedisURL:   getEnv("REDIS_URL", ""),
		EnableHSTS: getEnvBool("ENABLE_HSTS", false),

		OTELEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", cfg.TokenTTLMinutes)
	}

	return cfg, nil
}

// UsingDefaultSecret reports whether the development JWT secret is in use
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
