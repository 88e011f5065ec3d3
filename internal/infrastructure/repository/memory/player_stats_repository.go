package memory

import (
	"context"
	"sync"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	byKey map[string]playerstats.Stats
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{byKey: make(map[string]playerstats.Stats)}
}

func (r *PlayerStatsRepository) GetByNameKey(_ context.Context, nameKey string) (playerstats.Stats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.byKey[nameKey]
	return stats, ok, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, stats playerstats.Stats) error {
	if err := stats.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[stats.Identity.NameKey] = stats
	return nil
}
