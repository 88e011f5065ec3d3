package selection

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func candidate(name string, role playerstats.Role, score float64, position int) ScoredPlayer {
	return ScoredPlayer{
		Stats: playerstats.Stats{
			Identity: playerstats.Identity{Name: name, NameKey: playerstats.NormalizeName(name), ProviderID: "p-" + name},
			Role:     role,
		},
		Score:         score,
		SquadPosition: position,
	}
}

// balancedPool builds 22 candidates with enough of every role to satisfy
// the default quotas. Scores descend with position so ordering is easy
// to reason about.
func balancedPool() []ScoredPlayer {
	roles := []playerstats.Role{
		playerstats.RoleWicketkeeper, playerstats.RoleWicketkeeper,
		playerstats.RoleBatter, playerstats.RoleBatter, playerstats.RoleBatter, playerstats.RoleBatter,
		playerstats.RoleBatter, playerstats.RoleBatter, playerstats.RoleBatter,
		playerstats.RoleBowler, playerstats.RoleBowler, playerstats.RoleBowler, playerstats.RoleBowler,
		playerstats.RoleBowler, playerstats.RoleBowler,
		playerstats.RoleAllRounder, playerstats.RoleAllRounder, playerstats.RoleAllRounder,
		playerstats.RoleAllRounder, playerstats.RoleAllRounder,
		playerstats.RoleBatter, playerstats.RoleBowler,
	}

	pool := make([]ScoredPlayer, 0, len(roles))
	for i, role := range roles {
		pool = append(pool, candidate(fmt.Sprintf("player %02d", i), role, float64(100-i), i))
	}
	return pool
}

func TestPickElevenReturnsExactlyTeamSize(t *testing.T) {
	t.Parallel()

	lineup, warnings, err := PickEleven(balancedPool(), DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lineup) != 11 {
		t.Fatalf("expected 11 picks, got %d", len(lineup))
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for balanced pool, got %v", warnings)
	}

	seen := make(map[string]struct{}, len(lineup))
	for _, pick := range lineup {
		if _, dup := seen[pick.Stats.Identity.NameKey]; dup {
			t.Fatalf("duplicate pick %q", pick.Stats.Identity.Name)
		}
		seen[pick.Stats.Identity.NameKey] = struct{}{}
	}
}

func TestPickElevenFillsRoleQuotas(t *testing.T) {
	t.Parallel()

	// Wicketkeepers score at the bottom of the pool; the quota pass
	// must still pull one in ahead of higher-scored leftovers.
	pool := balancedPool()
	for i := range pool {
		if pool[i].Stats.Role == playerstats.RoleWicketkeeper {
			pool[i].Score = 1
		}
	}

	lineup, warnings, err := PickEleven(pool, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	keepers := 0
	for _, pick := range lineup {
		if pick.Stats.Role == playerstats.RoleWicketkeeper {
			keepers++
		}
	}
	if keepers < 1 {
		t.Fatal("expected at least one wicketkeeper in the lineup")
	}
}

func TestPickElevenWarnsOnUnmetQuota(t *testing.T) {
	t.Parallel()

	// No wicketkeepers at all: the selector must still return 11 and
	// surface the unmet quota as a warning.
	pool := balancedPool()
	for i := range pool {
		if pool[i].Stats.Role == playerstats.RoleWicketkeeper {
			pool[i].Stats.Role = playerstats.RoleBatter
		}
	}

	lineup, warnings, err := PickEleven(pool, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lineup) != 11 {
		t.Fatalf("expected 11 picks despite unmet quota, got %d", len(lineup))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "wicketkeeper") {
		t.Fatalf("expected wicketkeeper quota warning, got %v", warnings)
	}
}

func TestPickElevenTieBreaksBySubmissionOrder(t *testing.T) {
	t.Parallel()

	pool := balancedPool()
	// Give two batters identical scores; the earlier submission must
	// sort first.
	pool[3].Score = 55
	pool[4].Score = 55

	lineup, _, err := PickEleven(pool, DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstIdx, secondIdx := -1, -1
	for i, pick := range lineup {
		switch pick.SquadPosition {
		case 3:
			firstIdx = i
		case 4:
			secondIdx = i
		}
	}
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatal("expected both tied batters in the lineup")
	}
	if firstIdx > secondIdx {
		t.Fatal("expected earlier submission to win the tie")
	}
}

func TestPickElevenRejectsShortPool(t *testing.T) {
	t.Parallel()

	_, _, err := PickEleven(balancedPool()[:10], DefaultRules())
	if !errors.Is(err, ErrInvalidCandidateCount) {
		t.Fatalf("expected ErrInvalidCandidateCount, got %v", err)
	}
}

func TestPickCaptaincy(t *testing.T) {
	t.Parallel()

	lineup, _, err := PickEleven(balancedPool(), DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	captain, vice, err := PickCaptaincy(lineup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captain.Stats.Identity.NameKey == vice.Stats.Identity.NameKey {
		t.Fatal("captain and vice-captain must differ")
	}
	for _, pick := range lineup {
		if pick.Score > captain.Score {
			t.Fatalf("captain is not the highest scored pick: %v > %v", pick.Score, captain.Score)
		}
	}
	if vice.Score > captain.Score {
		t.Fatal("vice-captain must not outscore the captain")
	}
}

func TestPickCaptaincyTieBreaksBySubmissionOrder(t *testing.T) {
	t.Parallel()

	lineup := []ScoredPlayer{
		candidate("late equal", playerstats.RoleBatter, 90, 7),
		candidate("early equal", playerstats.RoleBatter, 90, 2),
		candidate("third", playerstats.RoleBowler, 50, 1),
	}

	captain, vice, err := PickCaptaincy(lineup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captain.Stats.Identity.Name != "early equal" {
		t.Fatalf("expected earlier submission as captain, got %q", captain.Stats.Identity.Name)
	}
	if vice.Stats.Identity.Name != "late equal" {
		t.Fatalf("expected later equal as vice-captain, got %q", vice.Stats.Identity.Name)
	}
}

func TestPickCaptaincyRejectsShortLineup(t *testing.T) {
	t.Parallel()

	_, _, err := PickCaptaincy([]ScoredPlayer{candidate("solo", playerstats.RoleBatter, 10, 0)})
	if !errors.Is(err, ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
}
