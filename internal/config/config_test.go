package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "dream-eleven-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.ResolveTimeout != 10*time.Second {
		t.Fatalf("unexpected ResolveTimeout: %s", cfg.ResolveTimeout)
	}
	if cfg.RecommendMaxConcurrent != 5 {
		t.Fatalf("unexpected RecommendMaxConcurrent: %d", cfg.RecommendMaxConcurrent)
	}
	if cfg.CricdataMaxRetries != 1 {
		t.Fatalf("unexpected CricdataMaxRetries: %d", cfg.CricdataMaxRetries)
	}
	if !cfg.CricdataCircuitEnabled {
		t.Fatalf("expected CricdataCircuitEnabled=true by default")
	}
	if cfg.DBEnabled {
		t.Fatalf("expected DBEnabled=false by default")
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.SelectionMinWicketkeepers != 1 || cfg.SelectionMinBatters != 3 || cfg.SelectionMinBowlers != 3 || cfg.SelectionMinAllRounders != 1 {
		t.Fatalf("unexpected selection minimums: %+v", cfg)
	}
	if cfg.ReferenceDatasetPath != "data/reference_players.json" {
		t.Fatalf("unexpected ReferenceDatasetPath: %q", cfg.ReferenceDatasetPath)
	}
	if cfg.RecommendRetryBackoff != 500*time.Millisecond {
		t.Fatalf("unexpected RecommendRetryBackoff: %s", cfg.RecommendRetryBackoff)
	}
	if cfg.ScoringBattingWeight != 0.5 || cfg.ScoringBowlingWeight != 0.5 || cfg.ScoringPitchShift != 0.1 {
		t.Fatalf("unexpected scoring weights: %+v", cfg)
	}
}

func TestLoad_ScoringOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORING_BATTING_WEIGHT", "0.7")
	t.Setenv("SCORING_BOWLING_WEIGHT", "0.3")
	t.Setenv("SCORING_PITCH_SHIFT", "0.2")
	t.Setenv("RECOMMEND_RETRY_BACKOFF", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoringBattingWeight != 0.7 {
		t.Fatalf("unexpected ScoringBattingWeight: %v", cfg.ScoringBattingWeight)
	}
	if cfg.ScoringBowlingWeight != 0.3 {
		t.Fatalf("unexpected ScoringBowlingWeight: %v", cfg.ScoringBowlingWeight)
	}
	if cfg.ScoringPitchShift != 0.2 {
		t.Fatalf("unexpected ScoringPitchShift: %v", cfg.ScoringPitchShift)
	}
	if cfg.RecommendRetryBackoff != 250*time.Millisecond {
		t.Fatalf("unexpected RecommendRetryBackoff: %s", cfg.RecommendRetryBackoff)
	}
}

func TestLoad_ScoringWeightsValidated(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORING_BATTING_WEIGHT", "1.5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out of range SCORING_BATTING_WEIGHT")
	}
}

func TestLoad_RetryBackoffMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RECOMMEND_RETRY_BACKOFF", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive RECOMMEND_RETRY_BACKOFF")
	}
}

func TestLoad_CricdataOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CRICDATA_BASE_URL", "https://sandbox.cricdata.io/v1")
	t.Setenv("CRICDATA_API_KEY", "key-123")
	t.Setenv("CRICDATA_TIMEOUT", "3s")
	t.Setenv("CRICDATA_MAX_RETRIES", "2")
	t.Setenv("CRICDATA_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CricdataBaseURL != "https://sandbox.cricdata.io/v1" {
		t.Fatalf("unexpected CricdataBaseURL: %q", cfg.CricdataBaseURL)
	}
	if cfg.CricdataAPIKey != "key-123" {
		t.Fatalf("unexpected CricdataAPIKey")
	}
	if cfg.CricdataTimeout != 3*time.Second {
		t.Fatalf("unexpected CricdataTimeout: %s", cfg.CricdataTimeout)
	}
	if cfg.CricdataMaxRetries != 2 {
		t.Fatalf("unexpected CricdataMaxRetries: %d", cfg.CricdataMaxRetries)
	}
	if cfg.CricdataCircuitFailures != 7 {
		t.Fatalf("unexpected CricdataCircuitFailures: %d", cfg.CricdataCircuitFailures)
	}
}

func TestLoad_ProdRequiresCricdataAPIKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("CRICDATA_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without CRICDATA_API_KEY")
	}
}

func TestLoad_DBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_ENABLED=true without DB_URL")
	}
}

func TestLoad_SelectionMinimumsValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SELECTION_MIN_BATTERS", "6")
	t.Setenv("SELECTION_MIN_BOWLERS", "6")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when role minimums exceed eleven")
	}
}

func TestLoad_InvalidDurationsRejected(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESOLVE_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid RESOLVE_TIMEOUT")
	}
}

func TestLoad_CORSOriginsParsed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}
