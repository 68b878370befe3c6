package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Server  ServerConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// TokenPath is the single well-known location the bearer token survives
	// restarts in, until explicit logout or server-side invalidation.
	TokenPath string
}

type ServerConfig struct {
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	SeedData  bool
}

type LogConfig struct {
	// File receives TUI logs; stdout is owned by the alternate screen.
	File string
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8090"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			TokenPath: getEnv("TOKEN_PATH", defaultTokenPath()),
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8090"),
			JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),
			JWTTTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
			SeedData:  getEnvAsBool("SEED_DATA", true),
		},
		Log: LogConfig{
			File: getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".tablebook-token")
	}
	return filepath.Join(dir, "tablebook", "token")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
