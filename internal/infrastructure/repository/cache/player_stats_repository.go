// Package cache decorates repositories with a short-lived in-process
// hot cache in front of the durable store.
package cache

import (
	"context"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	basecache "github.com/pitchside/dream-eleven/internal/platform/cache"
)

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

type cachedStatsByKey struct {
	value  playerstats.Stats
	exists bool
}

func (r *PlayerStatsRepository) GetByNameKey(ctx context.Context, nameKey string) (playerstats.Stats, bool, error) {
	key := "stats:key:" + nameKey
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNameKey(ctx, nameKey)
		if err != nil {
			return nil, err
		}
		return cachedStatsByKey{value: item, exists: exists}, nil
	})
	if err != nil {
		return playerstats.Stats{}, false, err
	}

	cached, _ := v.(cachedStatsByKey)
	return cached.value, cached.exists, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, stats playerstats.Stats) error {
	if err := r.next.Upsert(ctx, stats); err != nil {
		return err
	}
	r.cache.Delete(ctx, "stats:key:"+stats.Identity.NameKey)
	return nil
}
