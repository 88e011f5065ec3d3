package reference

import (
	"context"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

// Entry is one row of the locally bundled player-name dataset backing
// the suggestion endpoint. It is display data only; resolution always
// goes through the provider.
type Entry struct {
	Name    string
	Country string
	Role    playerstats.Role
}

// Source loads the full reference dataset. Implementations should
// return a fresh slice per call so callers can own the result.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}
