package selection

import (
	"errors"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

var (
	ErrInvalidCandidateCount  = errors.New("invalid candidate count")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrInsufficientCandidates = errors.New("insufficient candidates for captaincy")
)

// Rules stores lineup composition parameters. Minimums are soft
// constraints: the selector records a warning instead of failing when a
// quota cannot be met from the candidate pool.
type Rules struct {
	TeamSize         int
	CandidatePool    int
	MinWicketkeepers int
	MinBatters       int
	MinBowlers       int
	MinAllRounders   int
}

func DefaultRules() Rules {
	return Rules{
		TeamSize:         11,
		CandidatePool:    22,
		MinWicketkeepers: 1,
		MinBatters:       3,
		MinBowlers:       3,
		MinAllRounders:   1,
	}
}

// quotaOrder fixes the order quotas are filled in so selection stays
// deterministic when candidates qualify for more than one pass.
var quotaOrder = []playerstats.Role{
	playerstats.RoleWicketkeeper,
	playerstats.RoleBatter,
	playerstats.RoleBowler,
	playerstats.RoleAllRounder,
}

func (r Rules) minForRole(role playerstats.Role) int {
	switch role {
	case playerstats.RoleWicketkeeper:
		return r.MinWicketkeepers
	case playerstats.RoleBatter:
		return r.MinBatters
	case playerstats.RoleBowler:
		return r.MinBowlers
	case playerstats.RoleAllRounder:
		return r.MinAllRounders
	default:
		return 0
	}
}
