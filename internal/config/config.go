package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pitchside/dream-eleven/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBEnabled                  bool
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	CricdataBaseURL            string
	CricdataAPIKey             string
	CricdataTimeout            time.Duration
	CricdataMaxRetries         int
	CricdataCircuitEnabled     bool
	CricdataCircuitFailures    int
	CricdataCircuitOpenTimeout time.Duration
	CricdataCircuitHalfOpenMax int
	ResolveTimeout             time.Duration
	RecommendMaxConcurrent     int
	RecommendRetryBackoff      time.Duration
	ScoringBattingWeight       float64
	ScoringBowlingWeight       float64
	ScoringPitchShift          float64
	SelectionMinWicketkeepers  int
	SelectionMinBatters        int
	SelectionMinBowlers        int
	SelectionMinAllRounders    int
	ReferenceDatasetPath       string
	InternalJobToken           string
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cricdataTimeout, err := time.ParseDuration(getEnv("CRICDATA_TIMEOUT", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_TIMEOUT: %w", err)
	}
	if cricdataTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICDATA_TIMEOUT must be > 0")
	}
	cricdataMaxRetries, err := getEnvAsInt("CRICDATA_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_MAX_RETRIES: %w", err)
	}
	if cricdataMaxRetries < 0 {
		return Config{}, fmt.Errorf("CRICDATA_MAX_RETRIES must be >= 0")
	}
	cricdataCircuitEnabled, err := strconv.ParseBool(getEnv("CRICDATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_CIRCUIT_ENABLED: %w", err)
	}
	cricdataCircuitFailures, err := getEnvAsInt("CRICDATA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cricdataCircuitFailures < 1 {
		return Config{}, fmt.Errorf("CRICDATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cricdataCircuitOpenTimeout, err := time.ParseDuration(getEnv("CRICDATA_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cricdataCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICDATA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cricdataCircuitHalfOpenMax, err := getEnvAsInt("CRICDATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICDATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cricdataCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("CRICDATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cricdataBaseURL := strings.TrimSpace(getEnv("CRICDATA_BASE_URL", "https://api.cricdata.io/v1"))
	cricdataAPIKey := strings.TrimSpace(getEnv("CRICDATA_API_KEY", ""))
	if appEnv == EnvProd && cricdataAPIKey == "" {
		return Config{}, fmt.Errorf("CRICDATA_API_KEY is required when APP_ENV=prod")
	}

	resolveTimeout, err := time.ParseDuration(getEnv("RESOLVE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESOLVE_TIMEOUT: %w", err)
	}
	if resolveTimeout <= 0 {
		return Config{}, fmt.Errorf("RESOLVE_TIMEOUT must be > 0")
	}

	recommendMaxConcurrent, err := getEnvAsInt("RECOMMEND_MAX_CONCURRENT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMEND_MAX_CONCURRENT: %w", err)
	}
	if recommendMaxConcurrent < 1 {
		return Config{}, fmt.Errorf("RECOMMEND_MAX_CONCURRENT must be >= 1")
	}

	recommendRetryBackoff, err := time.ParseDuration(getEnv("RECOMMEND_RETRY_BACKOFF", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMEND_RETRY_BACKOFF: %w", err)
	}
	if recommendRetryBackoff <= 0 {
		return Config{}, fmt.Errorf("RECOMMEND_RETRY_BACKOFF must be > 0")
	}

	scoringBattingWeight, err := getEnvAsFloat("SCORING_BATTING_WEIGHT", 0.5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_BATTING_WEIGHT: %w", err)
	}
	scoringBowlingWeight, err := getEnvAsFloat("SCORING_BOWLING_WEIGHT", 0.5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_BOWLING_WEIGHT: %w", err)
	}
	scoringPitchShift, err := getEnvAsFloat("SCORING_PITCH_SHIFT", 0.1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_PITCH_SHIFT: %w", err)
	}
	for _, weight := range []struct {
		name  string
		value float64
	}{
		{"SCORING_BATTING_WEIGHT", scoringBattingWeight},
		{"SCORING_BOWLING_WEIGHT", scoringBowlingWeight},
		{"SCORING_PITCH_SHIFT", scoringPitchShift},
	} {
		if weight.value < 0 || weight.value > 1 {
			return Config{}, fmt.Errorf("%s must be within [0, 1]", weight.name)
		}
	}

	selectionMinWicketkeepers, err := getEnvAsInt("SELECTION_MIN_WICKETKEEPERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTION_MIN_WICKETKEEPERS: %w", err)
	}
	selectionMinBatters, err := getEnvAsInt("SELECTION_MIN_BATTERS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTION_MIN_BATTERS: %w", err)
	}
	selectionMinBowlers, err := getEnvAsInt("SELECTION_MIN_BOWLERS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTION_MIN_BOWLERS: %w", err)
	}
	selectionMinAllRounders, err := getEnvAsInt("SELECTION_MIN_ALL_ROUNDERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTION_MIN_ALL_ROUNDERS: %w", err)
	}
	for _, quota := range []struct {
		name  string
		value int
	}{
		{"SELECTION_MIN_WICKETKEEPERS", selectionMinWicketkeepers},
		{"SELECTION_MIN_BATTERS", selectionMinBatters},
		{"SELECTION_MIN_BOWLERS", selectionMinBowlers},
		{"SELECTION_MIN_ALL_ROUNDERS", selectionMinAllRounders},
	} {
		if quota.value < 0 {
			return Config{}, fmt.Errorf("%s must be >= 0", quota.name)
		}
	}
	if sum := selectionMinWicketkeepers + selectionMinBatters + selectionMinBowlers + selectionMinAllRounders; sum > 11 {
		return Config{}, fmt.Errorf("selection role minimums add up to %d, cannot exceed 11", sum)
	}

	dbEnabled, err := strconv.ParseBool(getEnv("DB_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DB_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "dream-eleven-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBEnabled:                  dbEnabled,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		CricdataBaseURL:            cricdataBaseURL,
		CricdataAPIKey:             cricdataAPIKey,
		CricdataTimeout:            cricdataTimeout,
		CricdataMaxRetries:         cricdataMaxRetries,
		CricdataCircuitEnabled:     cricdataCircuitEnabled,
		CricdataCircuitFailures:    cricdataCircuitFailures,
		CricdataCircuitOpenTimeout: cricdataCircuitOpenTimeout,
		CricdataCircuitHalfOpenMax: cricdataCircuitHalfOpenMax,
		ResolveTimeout:             resolveTimeout,
		RecommendMaxConcurrent:     recommendMaxConcurrent,
		RecommendRetryBackoff:      recommendRetryBackoff,
		ScoringBattingWeight:       scoringBattingWeight,
		ScoringBowlingWeight:       scoringBowlingWeight,
		ScoringPitchShift:          scoringPitchShift,
		SelectionMinWicketkeepers:  selectionMinWicketkeepers,
		SelectionMinBatters:        selectionMinBatters,
		SelectionMinBowlers:        selectionMinBowlers,
		SelectionMinAllRounders:    selectionMinAllRounders,
		ReferenceDatasetPath:       strings.TrimSpace(getEnv("REFERENCE_DATASET_PATH", "data/reference_players.json")),
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
