package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	"github.com/pitchside/dream-eleven/internal/domain/reference"
	"github.com/pitchside/dream-eleven/internal/platform/logging"
)

const defaultSuggestLimit = 10

// ReferenceService serves name suggestions from a locally loaded player
// dataset. The dataset is replaced atomically on reload so lookups never
// see a partial list.
type ReferenceService struct {
	source  reference.Source
	logger  *logging.Logger
	entries atomic.Value
}

func NewReferenceService(source reference.Source, logger *logging.Logger) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &ReferenceService{source: source, logger: logger}
	s.entries.Store([]reference.Entry(nil))
	return s
}

// Reload replaces the in-memory dataset from the source. The previous
// dataset stays live if loading fails.
func (s *ReferenceService) Reload(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "ReferenceService.Reload")
	defer span.End()

	entries, err := s.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load reference dataset: %w", err)
	}

	sorted := make([]reference.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return playerstats.NormalizeName(sorted[i].Name) < playerstats.NormalizeName(sorted[j].Name)
	})

	s.entries.Store(sorted)
	s.logger.InfoContext(ctx, "reference dataset reloaded", "entries", len(sorted))
	return len(sorted), nil
}

// Suggest returns dataset entries whose normalized name starts with the
// normalized query prefix, up to limit.
func (s *ReferenceService) Suggest(ctx context.Context, query string, limit int) ([]reference.Entry, error) {
	_, span := startUsecaseSpan(ctx, "ReferenceService.Suggest")
	defer span.End()

	prefix := playerstats.NormalizeName(query)
	if prefix == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	entries, _ := s.entries.Load().([]reference.Entry)
	matches := make([]reference.Entry, 0, limit)
	for _, entry := range entries {
		if strings.HasPrefix(playerstats.NormalizeName(entry.Name), prefix) {
			matches = append(matches, entry)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}
