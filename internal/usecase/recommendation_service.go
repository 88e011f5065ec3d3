package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pitchside/dream-eleven/internal/domain/pitch"
	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/domain/selection"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
	"github.com/pitchside/dream-eleven/internal/platform/metrics"
)

// StatsResolver is the resolution facade the recommendation pipeline fans
// out over.
type StatsResolver interface {
	Resolve(ctx context.Context, name string) (playerstats.Stats, error)
}

const (
	defaultRecommendConcurrency = 5
	defaultRetryBackoff         = 500 * time.Millisecond
)

type RecommendationInput struct {
	Players     []string
	PitchReport string
}

type Recommendation struct {
	BestEleven  []selection.ScoredPlayer
	Captain     selection.ScoredPlayer
	ViceCaptain selection.ScoredPlayer
	Pitch       pitch.Characteristics
	Warnings    []string
}

type RecommendationService struct {
	resolver      StatsResolver
	rules         selection.Rules
	weights       selection.Weights
	maxConcurrent int
	retryBackoff  time.Duration
	logger        *logging.Logger
	metrics       *metrics.Metrics
}

func NewRecommendationService(resolver StatsResolver, rules selection.Rules, weights selection.Weights, maxConcurrent int, retryBackoff time.Duration, logger *logging.Logger, m *metrics.Metrics) *RecommendationService {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultRecommendConcurrency
	}
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecommendationService{
		resolver:      resolver,
		rules:         rules,
		weights:       weights,
		maxConcurrent: maxConcurrent,
		retryBackoff:  retryBackoff,
		logger:        logger,
		metrics:       m,
	}
}

type resolutionRow struct {
	position int
	stats    playerstats.Stats
	degraded bool
	warning  string
	fatal    error
}

// Recommend resolves the full candidate squad, scores it against the pitch
// report, and returns the best eleven with captaincy picks. Per-player
// resolution failures degrade to placeholders; only storage outages abort
// the call.
func (s *RecommendationService) Recommend(ctx context.Context, input RecommendationInput) (Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "RecommendationService.Recommend")
	defer span.End()

	start := time.Now()

	names, err := s.validateInput(input)
	if err != nil {
		s.countRecommendation(metrics.OutcomeRejected)
		return Recommendation{}, err
	}

	characteristics := pitch.Analyze(input.PitchReport)

	rows, err := s.resolveSquad(ctx, names)
	if err != nil {
		s.countRecommendation(metrics.OutcomeFailed)
		return Recommendation{}, err
	}

	warnings := make([]string, 0, 4)
	degradedCount := 0
	candidates := make([]selection.ScoredPlayer, 0, len(rows))
	for _, row := range rows {
		if row.degraded {
			degradedCount++
			warnings = append(warnings, row.warning)
		}
		candidates = append(candidates, selection.ScoredPlayer{
			Stats:         row.stats,
			Score:         selection.Score(row.stats, characteristics, s.weights),
			SquadPosition: row.position,
			Degraded:      row.degraded,
		})
	}

	eleven, selectionWarnings, err := selection.PickEleven(candidates, s.rules)
	if err != nil {
		s.countRecommendation(metrics.OutcomeFailed)
		return Recommendation{}, fmt.Errorf("pick eleven: %w", err)
	}
	captain, viceCaptain, err := selection.PickCaptaincy(eleven)
	if err != nil {
		s.countRecommendation(metrics.OutcomeFailed)
		return Recommendation{}, fmt.Errorf("pick captaincy: %w", err)
	}

	warnings = append(warnings, selectionWarnings...)
	sort.Strings(warnings)

	s.countRecommendation(metrics.OutcomeCompleted)
	if s.metrics != nil {
		s.metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
		s.metrics.DegradedPlayersPerSquad.Observe(float64(degradedCount))
	}
	s.logger.InfoContext(ctx, "recommendation completed",
		"candidates", len(candidates),
		"degraded", degradedCount,
		"warnings", len(warnings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return Recommendation{
		BestEleven:  eleven,
		Captain:     captain,
		ViceCaptain: viceCaptain,
		Pitch:       characteristics,
		Warnings:    warnings,
	}, nil
}

func (s *RecommendationService) validateInput(input RecommendationInput) ([]string, error) {
	if len(input.Players) != s.rules.CandidatePool {
		return nil, fmt.Errorf("%w: %w: got %d players, need %d",
			ErrInvalidInput, selection.ErrInvalidCandidateCount, len(input.Players), s.rules.CandidatePool)
	}
	if strings.TrimSpace(input.PitchReport) == "" {
		return nil, fmt.Errorf("%w: pitch report is required", ErrInvalidInput)
	}

	names := make([]string, 0, len(input.Players))
	seen := make(map[string]string, len(input.Players))
	for i, raw := range input.Players {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has an empty name", ErrInvalidInput, i+1)
		}
		nameKey := playerstats.NormalizeName(name)
		if first, ok := seen[nameKey]; ok {
			return nil, fmt.Errorf("%w: %w: %q and %q",
				ErrInvalidInput, selection.ErrDuplicatePlayerInSquad, first, name)
		}
		seen[nameKey] = name
		names = append(names, name)
	}
	return names, nil
}

func (s *RecommendationService) resolveSquad(ctx context.Context, names []string) ([]resolutionRow, error) {
	pool, err := ants.NewPool(minInt(s.maxConcurrent, len(names)))
	if err != nil {
		return nil, fmt.Errorf("create resolution pool: %w", err)
	}
	defer pool.Release()

	results := make(chan resolutionRow, len(names))
	var degradedCount atomic.Int32

	var workers sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.resolvePlayer(ctx, name, i+1, &degradedCount)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit resolution task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	rows := make([]resolutionRow, 0, len(names))
	for row := range results {
		if row.fatal != nil {
			return nil, row.fatal
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].position < rows[j].position })
	return rows, nil
}

func (s *RecommendationService) resolvePlayer(ctx context.Context, name string, position int, degradedCount *atomic.Int32) resolutionRow {
	row := resolutionRow{position: position}

	stats, err := s.resolver.Resolve(ctx, name)
	if err != nil && isRetryableResolution(err) && ctx.Err() == nil {
		select {
		case <-time.After(s.retryBackoff):
			stats, err = s.resolver.Resolve(ctx, name)
		case <-ctx.Done():
		}
	}

	switch {
	case err == nil:
		row.stats = stats
		return row
	case errors.Is(err, ErrStorageUnavailable):
		row.fatal = err
		return row
	default:
		degradedCount.Add(1)
		s.countResolutionDegraded()
		s.logger.WarnContext(ctx, "scoring player as placeholder", "player", name, "error", err)
		row.stats = playerstats.Placeholder(name, time.Now().UTC())
		row.degraded = true
		row.warning = fmt.Sprintf("no reliable stats for %q, scored as placeholder", name)
		return row
	}
}

func isRetryableResolution(err error) bool {
	return errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, ErrResolutionTimeout)
}

func (s *RecommendationService) countRecommendation(outcome string) {
	if s.metrics != nil {
		s.metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *RecommendationService) countResolutionDegraded() {
	if s.metrics != nil {
		s.metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeDegraded).Inc()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
