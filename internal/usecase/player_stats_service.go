package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
	"github.com/pitchside/dream-eleven/internal/platform/metrics"
	"github.com/pitchside/dream-eleven/internal/platform/resilience"
)

// StatsProvider fetches a player's current stats from the upstream data
// source. Implementations report misses with ErrNotFound and transient
// exhaustion with ErrDependencyUnavailable.
type StatsProvider interface {
	FetchPlayerStats(ctx context.Context, name string) (playerstats.Stats, error)
}

const defaultResolveTimeout = 10 * time.Second

type PlayerStatsService struct {
	statsRepo playerstats.Repository
	provider  StatsProvider
	flight    resilience.SingleFlight
	timeout   time.Duration
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

func NewPlayerStatsService(statsRepo playerstats.Repository, provider StatsProvider, timeout time.Duration, logger *logging.Logger, m *metrics.Metrics) *PlayerStatsService {
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerStatsService{
		statsRepo: statsRepo,
		provider:  provider,
		timeout:   timeout,
		logger:    logger,
		metrics:   m,
	}
}

// Resolve returns the stats for one player, serving from the durable store
// when possible and fetching from the provider on a miss. Concurrent
// resolutions for the same normalized name collapse to a single fetch.
func (s *PlayerStatsService) Resolve(ctx context.Context, name string) (playerstats.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerStatsService.Resolve")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return playerstats.Stats{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	nameKey := playerstats.NormalizeName(name)

	result, err, _ := s.flight.Do(nameKey, func() (any, error) {
		return s.resolveOnce(ctx, name, nameKey)
	})
	if err != nil {
		return playerstats.Stats{}, err
	}

	stats, ok := result.(playerstats.Stats)
	if !ok {
		return playerstats.Stats{}, fmt.Errorf("%w: unexpected resolution result type", ErrResolutionFailed)
	}
	return stats, nil
}

func (s *PlayerStatsService) resolveOnce(ctx context.Context, name, nameKey string) (playerstats.Stats, error) {
	cached, found, err := s.statsRepo.GetByNameKey(ctx, nameKey)
	if err != nil {
		return playerstats.Stats{}, s.classifyStorageError(ctx, nameKey, "read", err)
	}
	if found {
		s.countResolution(metrics.OutcomeCached)
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.Inc()
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.Inc()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.provider.FetchPlayerStats(fetchCtx, name)
	s.countProviderRequest(err)
	if err != nil {
		return playerstats.Stats{}, s.classifyFetchError(fetchCtx, nameKey, err)
	}

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return playerstats.Stats{}, s.classifyStorageError(ctx, nameKey, "persist", err)
	}

	s.countResolution(metrics.OutcomeResolved)
	return stats, nil
}

// classifyStorageError separates a lapsed caller deadline from a real
// store outage. A repository that honors context surfaces ctx.Err() once
// the request deadline passes; that is a timed out resolution and must
// stay non-fatal for callers that degrade on timeouts.
func (s *PlayerStatsService) classifyStorageError(ctx context.Context, nameKey, op string, err error) error {
	if ctx.Err() != nil {
		s.countResolution(metrics.OutcomeTimedOut)
		return fmt.Errorf("%w: %s", ErrResolutionTimeout, nameKey)
	}
	return fmt.Errorf("%w: %s stats for %q: %v", ErrStorageUnavailable, op, nameKey, err)
}

func (s *PlayerStatsService) classifyFetchError(fetchCtx context.Context, nameKey string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		s.countResolution(metrics.OutcomeNotFound)
		return err
	case errors.Is(fetchCtx.Err(), context.DeadlineExceeded):
		s.countResolution(metrics.OutcomeTimedOut)
		return fmt.Errorf("%w: %s", ErrResolutionTimeout, nameKey)
	case errors.Is(err, ErrDependencyUnavailable):
		s.countResolution(metrics.OutcomeFailed)
		return err
	default:
		s.countResolution(metrics.OutcomeFailed)
		s.logger.WarnContext(fetchCtx, "player stats fetch failed", "name_key", nameKey, "error", err)
		return fmt.Errorf("%w: %v", ErrResolutionFailed, err)
	}
}

func (s *PlayerStatsService) countProviderRequest(err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	s.metrics.ProviderRequestsTotal.WithLabelValues(result).Inc()
}

func (s *PlayerStatsService) countResolution(outcome string) {
	if s.metrics != nil {
		s.metrics.ResolutionsTotal.WithLabelValues(outcome).Inc()
	}
}
