package playerstats

import (
	"fmt"
	"strings"
	"time"
)

// Role represents cricket role categories used by selection rules.
type Role string

const (
	RoleBatter       Role = "BAT"
	RoleBowler       Role = "BOWL"
	RoleAllRounder   Role = "AR"
	RoleWicketkeeper Role = "WK"
	RoleUnknown      Role = "UNKNOWN"
)

var AllRoles = map[Role]struct{}{
	RoleBatter:       {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketkeeper: {},
	RoleUnknown:      {},
}

// BowlingStyle distinguishes pace from spin for pitch-aware scoring.
type BowlingStyle string

const (
	BowlingPace    BowlingStyle = "PACE"
	BowlingSpin    BowlingStyle = "SPIN"
	BowlingUnknown BowlingStyle = "UNKNOWN"
)

// Metric keys stored in the batting and bowling metric maps.
const (
	MetricBattingAverage    = "average"
	MetricBattingStrikeRate = "strike_rate"
	MetricBowlingAverage    = "average"
	MetricBowlingEconomy    = "economy"
	MetricBowlingWickets    = "wickets"
)

// Identity carries the caller-supplied name alongside the provider id
// that was resolved for it. ProviderID is empty for degraded entries.
type Identity struct {
	Name       string
	NameKey    string
	ProviderID string
}

// Stats is a resolved per-player stat sheet. Metric maps hold only the
// metrics the provider reported; absent keys mean the provider had no
// value, not zero.
type Stats struct {
	Identity       Identity
	Role           Role
	BowlingStyle   BowlingStyle
	BattingMetrics map[string]float64
	BowlingMetrics map[string]float64
	FetchedAt      time.Time
}

func (s Stats) Validate() error {
	if strings.TrimSpace(s.Identity.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if s.Identity.NameKey == "" {
		return fmt.Errorf("player name key is required")
	}
	if _, ok := AllRoles[s.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", s.Role)
	}

	return nil
}

// Batting returns the named batting metric and whether it was reported.
func (s Stats) Batting(key string) (float64, bool) {
	v, ok := s.BattingMetrics[key]
	return v, ok
}

// Bowling returns the named bowling metric and whether it was reported.
func (s Stats) Bowling(key string) (float64, bool) {
	v, ok := s.BowlingMetrics[key]
	return v, ok
}

// Placeholder builds an empty stat sheet for a player whose resolution
// failed permanently. It carries no metrics and an unknown role so the
// player still appears in downstream selection output.
func Placeholder(name string, at time.Time) Stats {
	return Stats{
		Identity: Identity{
			Name:    strings.TrimSpace(name),
			NameKey: NormalizeName(name),
		},
		Role:           RoleUnknown,
		BowlingStyle:   BowlingUnknown,
		BattingMetrics: map[string]float64{},
		BowlingMetrics: map[string]float64{},
		FetchedAt:      at,
	}
}

// NormalizeName folds a display name into the canonical cache key:
// lowercase, interior whitespace collapsed to single spaces. Two names
// that normalize equally are treated as the same player everywhere.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}
