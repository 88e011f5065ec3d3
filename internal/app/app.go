package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pitchside/dream-eleven/external/cricdata"
	"github.com/pitchside/dream-eleven/internal/config"
	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/domain/selection"
	"github.com/pitchside/dream-eleven/internal/infrastructure/reference"
	cacherepo "github.com/pitchside/dream-eleven/internal/infrastructure/repository/cache"
	"github.com/pitchside/dream-eleven/internal/infrastructure/repository/memory"
	"github.com/pitchside/dream-eleven/internal/infrastructure/repository/postgres"
	"github.com/pitchside/dream-eleven/internal/interfaces/httpapi"
	basecache "github.com/pitchside/dream-eleven/internal/platform/cache"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
	"github.com/pitchside/dream-eleven/internal/platform/metrics"
	"github.com/pitchside/dream-eleven/internal/platform/resilience"
	"github.com/pitchside/dream-eleven/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server    *http.Server
	DB        *sqlx.DB
	Reference *usecase.ReferenceService
}

func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("dream_eleven")
	}

	statsRepo, db, err := buildStatsRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := cricdata.NewClient(cricdata.ClientConfig{
		BaseURL:    cfg.CricdataBaseURL,
		APIKey:     cfg.CricdataAPIKey,
		Timeout:    cfg.CricdataTimeout,
		MaxRetries: cfg.CricdataMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CricdataCircuitEnabled,
			FailureThreshold: cfg.CricdataCircuitFailures,
			OpenTimeout:      cfg.CricdataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CricdataCircuitHalfOpenMax,
		},
	})

	rules := selection.DefaultRules()
	rules.MinWicketkeepers = cfg.SelectionMinWicketkeepers
	rules.MinBatters = cfg.SelectionMinBatters
	rules.MinBowlers = cfg.SelectionMinBowlers
	rules.MinAllRounders = cfg.SelectionMinAllRounders

	weights := selection.DefaultWeights()
	weights.AllRounderBattingShare = cfg.ScoringBattingWeight
	weights.AllRounderBowlingShare = cfg.ScoringBowlingWeight
	weights.PitchShift = cfg.ScoringPitchShift

	statsSvc := usecase.NewPlayerStatsService(statsRepo, provider, cfg.ResolveTimeout, appLogger, m)
	recommendSvc := usecase.NewRecommendationService(statsSvc, rules, weights, cfg.RecommendMaxConcurrent, cfg.RecommendRetryBackoff, appLogger, m)
	referenceSvc := usecase.NewReferenceService(reference.NewFileSource(cfg.ReferenceDatasetPath), appLogger)

	var metricsHandler http.Handler
	if m != nil {
		metricsHandler = m.Handler()
	}

	handler := httpapi.NewHandler(statsSvc, recommendSvc, referenceSvc, metricsHandler, appLogger)
	router := httpapi.NewRouter(handler, logger, m, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, DB: db, Reference: referenceSvc}, nil
}

func buildStatsRepository(cfg config.Config, logger *slog.Logger) (playerstats.Repository, *sqlx.DB, error) {
	var repo playerstats.Repository
	var db *sqlx.DB

	if cfg.DBEnabled {
		opened, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		repo = postgres.NewPlayerStatsRepository(db)
		logger.Info("player stats storage", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		repo = memory.NewPlayerStatsRepository()
		logger.Info("player stats storage", "backend", "memory")
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewPlayerStatsRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	return repo, db, nil
}
