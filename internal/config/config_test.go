package config

import (
	"testing"
	"time"

	"github.com/fplarchive/pipeline/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2025")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FPLBaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected FPLBaseURL: %q", cfg.FPLBaseURL)
	}
	if cfg.FetchConcurrency != 20 {
		t.Fatalf("expected FetchConcurrency=20, got %d", cfg.FetchConcurrency)
	}
	if cfg.FPLMaxRetries != 3 {
		t.Fatalf("expected FPLMaxRetries=3, got %d", cfg.FPLMaxRetries)
	}
	if cfg.FPLTimeout != 30*time.Second {
		t.Fatalf("unexpected FPLTimeout: %s", cfg.FPLTimeout)
	}
	if cfg.SeasonName != "2025/26" {
		t.Fatalf("unexpected derived SeasonName: %q", cfg.SeasonName)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_FetchConcurrencyBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2025")
	t.Setenv("FETCH_CONCURRENCY", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for FETCH_CONCURRENCY=0")
	}

	t.Setenv("FETCH_CONCURRENCY", "500")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for FETCH_CONCURRENCY above the ceiling")
	}
}

func TestLoad_SeasonOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2024")
	t.Setenv("SEASON_NAME", "2024/25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SeasonID != 2024 {
		t.Fatalf("unexpected SeasonID: %d", cfg.SeasonID)
	}
	if cfg.SeasonName != "2024/25" {
		t.Fatalf("unexpected SeasonName: %q", cfg.SeasonName)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2025")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2025")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_ID", "2025")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}
