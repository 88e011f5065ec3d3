package selection

import (
	"fmt"
	"sort"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

// ScoredPlayer pins a candidate's score and submission order together.
// SquadPosition is the one-based position the name arrived at; it is the
// tie-breaker everywhere, so earlier submissions win equal scores.
type ScoredPlayer struct {
	Stats         playerstats.Stats
	Score         float64
	SquadPosition int
	Degraded      bool
}

// SortCandidates orders by score descending, then submission order
// ascending. Stable so equal entries keep their relative order.
func SortCandidates(candidates []ScoredPlayer) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].SquadPosition < candidates[j].SquadPosition
	})
}

// PickEleven fills role quotas first from the score-ordered candidate
// list, then tops up remaining slots by pure score order. Quotas are
// soft: an unmet minimum produces a warning, never a failure, and the
// returned lineup always has exactly rules.TeamSize entries as long as
// the pool is large enough.
func PickEleven(candidates []ScoredPlayer, rules Rules) ([]ScoredPlayer, []string, error) {
	if len(candidates) < rules.TeamSize {
		return nil, nil, fmt.Errorf("%w: need at least %d, got %d", ErrInvalidCandidateCount, rules.TeamSize, len(candidates))
	}

	ordered := append([]ScoredPlayer(nil), candidates...)
	SortCandidates(ordered)

	picked := make([]bool, len(ordered))
	lineup := make([]ScoredPlayer, 0, rules.TeamSize)
	var warnings []string

	for _, role := range quotaOrder {
		need := rules.minForRole(role)
		if need <= 0 {
			continue
		}

		have := 0
		for i, candidate := range ordered {
			if have == need || len(lineup) == rules.TeamSize {
				break
			}
			if picked[i] || candidate.Stats.Role != role {
				continue
			}
			picked[i] = true
			lineup = append(lineup, candidate)
			have++
		}
		if have < need {
			warnings = append(warnings, fmt.Sprintf("role quota unmet: wanted %d %s, found %d", need, roleLabel(role), have))
		}
	}

	for i, candidate := range ordered {
		if len(lineup) == rules.TeamSize {
			break
		}
		if picked[i] {
			continue
		}
		picked[i] = true
		lineup = append(lineup, candidate)
	}

	SortCandidates(lineup)
	return lineup, warnings, nil
}

// PickCaptaincy returns the two highest-scored members of the lineup.
// The eleven from PickEleven always has at least two entries; the count
// check guards direct callers.
func PickCaptaincy(lineup []ScoredPlayer) (captain ScoredPlayer, viceCaptain ScoredPlayer, err error) {
	if len(lineup) < 2 {
		return ScoredPlayer{}, ScoredPlayer{}, fmt.Errorf("%w: need at least 2, got %d", ErrInsufficientCandidates, len(lineup))
	}

	ordered := append([]ScoredPlayer(nil), lineup...)
	SortCandidates(ordered)
	return ordered[0], ordered[1], nil
}

func roleLabel(role playerstats.Role) string {
	switch role {
	case playerstats.RoleWicketkeeper:
		return "wicketkeeper(s)"
	case playerstats.RoleBatter:
		return "batter(s)"
	case playerstats.RoleBowler:
		return "bowler(s)"
	case playerstats.RoleAllRounder:
		return "all-rounder(s)"
	default:
		return string(role)
	}
}
