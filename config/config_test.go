package config

import (
	"testing"
	"time"

	"gopkg.in/go-playground/assert.v1"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PLATFORM_API_URL", "API_TIMEOUT_SECONDS", "SECRET_KEY", "SEAL_KEY", "REDIS_URL", "SESSION_TTL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, cfg.Port, "8000")
	assert.Equal(t, cfg.APITimeout, 10*time.Second)
	assert.Equal(t, cfg.SealKey, cfg.SecretKey)
	assert.Equal(t, cfg.RedisURL, "")
	assert.Equal(t, cfg.SessionTTL, 24*time.Hour)
	assert.Equal(t, cfg.AllowedOrigins, []string{"http://localhost:3000"})
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PLATFORM_API_URL", "https://platform.example/api/v1/")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("SEAL_KEY", "k")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("SESSION_TTL", "60")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	assert.Equal(t, cfg.Port, "9090")
	assert.Equal(t, cfg.PlatformAPIURL, "https://platform.example/api/v1")
	assert.Equal(t, cfg.APITimeout, 3*time.Second)
	assert.Equal(t, cfg.SealKey, "k")
	assert.Equal(t, cfg.RedisURL, "redis://cache:6379/0")
	assert.Equal(t, cfg.SessionTTL, time.Minute)
	assert.Equal(t, cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"})
}

func TestGetEnvAsInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	assert.Equal(t, getEnvAsInt("SESSION_TTL", 5), 5)
}

func TestValidate_ReleaseNeedsSecrets(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		secret  string
		seal    string
		wantErr bool
	}{
		{"debug with defaults", "debug", "", "", false},
		{"release without secret", "release", "", "", true},
		{"release with secret", "release", "prod-secret", "", false},
		{"release with explicit default", "release", "change-me", "", true},
		{"release with default seal", "release", "prod-secret", "change-me", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GIN_MODE", tt.mode)
			t.Setenv("SECRET_KEY", tt.secret)
			t.Setenv("SEAL_KEY", tt.seal)

			err := Load().Validate()
			assert.Equal(t, err != nil, tt.wantErr)
		})
	}
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, Load().LogLevel, "debug")
}
