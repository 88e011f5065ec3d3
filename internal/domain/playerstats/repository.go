package playerstats

import "context"

// Repository describes durable stat-sheet persistence needs from use cases.
type Repository interface {
	GetByNameKey(ctx context.Context, nameKey string) (Stats, bool, error)
	Upsert(ctx context.Context, stats Stats) error
}
