package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	qb "github.com/pitchside/dream-eleven/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) GetByNameKey(ctx context.Context, nameKey string) (playerstats.Stats, bool, error) {
	query, args, err := qb.Select(
		"name_key",
		"name",
		"provider_id",
		"role",
		"bowling_style",
		"batting_metrics",
		"bowling_metrics",
		"fetched_at",
	).From("player_stats").
		Where(qb.Eq("name_key", nameKey)).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstats.Stats{}, false, fmt.Errorf("build get player stats query: %w", err)
	}

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.Stats{}, false, nil
		}
		return playerstats.Stats{}, false, fmt.Errorf("get player stats: %w", err)
	}

	return playerstats.Stats{
		Identity: playerstats.Identity{
			Name:       row.Name,
			NameKey:    row.NameKey,
			ProviderID: row.ProviderID,
		},
		Role:           playerstats.Role(row.Role),
		BowlingStyle:   playerstats.BowlingStyle(row.BowlingStyle),
		BattingMetrics: decodeMetricMap(row.BattingMetrics),
		BowlingMetrics: decodeMetricMap(row.BowlingMetrics),
		FetchedAt:      row.FetchedAt.UTC(),
	}, true, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, stats playerstats.Stats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("validate player stats: %w", err)
	}

	model := playerStatsTableModel{
		NameKey:        stats.Identity.NameKey,
		Name:           stats.Identity.Name,
		ProviderID:     stats.Identity.ProviderID,
		Role:           string(stats.Role),
		BowlingStyle:   string(stats.BowlingStyle),
		BattingMetrics: encodeMetricMap(stats.BattingMetrics),
		BowlingMetrics: encodeMetricMap(stats.BowlingMetrics),
		FetchedAt:      stats.FetchedAt.UTC(),
	}

	query, args, err := qb.InsertModel("player_stats", model, `ON CONFLICT (name_key)
DO UPDATE SET
    name = EXCLUDED.name,
    provider_id = EXCLUDED.provider_id,
    role = EXCLUDED.role,
    bowling_style = EXCLUDED.bowling_style,
    batting_metrics = EXCLUDED.batting_metrics,
    bowling_metrics = EXCLUDED.bowling_metrics,
    fetched_at = EXCLUDED.fetched_at`)
	if err != nil {
		return fmt.Errorf("build upsert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stats name_key=%s: %w", stats.Identity.NameKey, err)
	}
	return nil
}
