// Package config loads server settings from the environment, reading an
// optional .env file first.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	LogLevel string
}

type DBConfig struct {
	Path string
}

type HTTPConfig struct {
	Addr           string
	StaticPath     string // empty disables the static file handler
	RequestTimeout time.Duration
}

type AuthConfig struct {
	AdminPIN  string // empty disables authentication
	JWTSecret string // empty means a random secret per process
	TokenTTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDuration("TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		DB: DBConfig{
			Path: getEnv("DB_PATH", "./data/cantineo.db"),
		},
		HTTP: HTTPConfig{
			Addr:           getEnv("HTTP_ADDR", ":8080"),
			StaticPath:     getEnv("STATIC_PATH", ""),
			RequestTimeout: requestTimeout,
		},
		Auth: AuthConfig{
			AdminPIN:  getEnv("ADMIN_PIN", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  tokenTTL,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
