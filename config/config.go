package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSecret = "change-me"
	releaseMode   = "release"
)

type Config struct {
	Port           string
	PlatformAPIURL string
	APITimeout     time.Duration
	SecretKey      string
	SealKey        string
	RedisURL       string
	SessionTTL     time.Duration
	AllowedOrigins []string
	GinMode        string
	LogLevel       string
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	secret := getEnv("SECRET_KEY", defaultSecret)
	return &Config{
		Port:           getEnv("PORT", "8000"),
		PlatformAPIURL: strings.TrimRight(getEnv("PLATFORM_API_URL", "http://localhost:8080/api/v1"), "/"),
		APITimeout:     time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		SecretKey:      secret,
		SealKey:        getEnv("SEAL_KEY", secret),
		RedisURL:       os.Getenv("REDIS_URL"),
		SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL", 86400)) * time.Second,
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// Validate refuses the development secrets in release mode.
func (c *Config) Validate() error {
	if c.GinMode != releaseMode {
		return nil
	}
	if c.SecretKey == "" || c.SecretKey == defaultSecret {
		return errors.New("SECRET_KEY must be set when GIN_MODE=release")
	}
	if c.SealKey == "" || c.SealKey == defaultSecret {
		return errors.New("SEAL_KEY must not fall back to the default secret when GIN_MODE=release")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
