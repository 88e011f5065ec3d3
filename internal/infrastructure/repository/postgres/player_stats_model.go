package postgres

import "time"

type playerStatsTableModel struct {
	NameKey        string    `db:"name_key"`
	Name           string    `db:"name"`
	ProviderID     string    `db:"provider_id"`
	Role           string    `db:"role"`
	BowlingStyle   string    `db:"bowling_style"`
	BattingMetrics string    `db:"batting_metrics"`
	BowlingMetrics string    `db:"bowling_metrics"`
	FetchedAt      time.Time `db:"fetched_at"`
}
