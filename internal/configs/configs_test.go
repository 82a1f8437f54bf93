package configs

import (
	"strings"
	"testing"
)

// setRequiredStorageEnv fills in the storage settings every load needs.
func setRequiredStorageEnv(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "quikchat-media")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "minioadmin")
	t.Setenv("S3_SECRET_ACCESS_KEY", "minioadmin")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("PUBLIC_ASSET_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected a development fallback JWT secret")
	}
	if cfg.DatabaseDSN == "" {
		t.Error("expected a development fallback database DSN")
	}
	if cfg.PublicAssetBaseURL != "http://localhost:9000/quikchat-media" {
		t.Errorf("PublicAssetBaseURL = %q, want endpoint/bucket fallback", cfg.PublicAssetBaseURL)
	}
}

func TestLoadConfigParsesOrigins(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("first origin = %q", cfg.AllowedOrigins[0])
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for non-numeric port")
	}

	t.Setenv("PORT", "80")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for privileged port")
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected JWT_SECRET error, got %v", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DATABASE_URL", "")

	_, err = LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("expected DATABASE_URL error, got %v", err)
	}
}

func TestLoadConfigMissingStorageSettings(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("S3_BUCKET_NAME", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when S3 bucket is not configured")
	}
}

func TestLoadConfigPublicAssetBaseURLOverride(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("PUBLIC_ASSET_BASE_URL", "https://cdn.example.com/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.PublicAssetBaseURL != "https://cdn.example.com" {
		t.Errorf("PublicAssetBaseURL = %q, want trailing slash trimmed", cfg.PublicAssetBaseURL)
	}
}
