package cricdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

type playerFinderEnvelope struct {
	Data []playerFinderMatch `json:"data"`
}

type playerFinderMatch struct {
	ID   string `json:"pid"`
	Name string `json:"name"`
}

type playerInfoEnvelope struct {
	Data *playerInfoItem `json:"data"`
}

type playerInfoItem struct {
	ID           string           `json:"pid"`
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	BattingStyle string           `json:"battingStyle"`
	BowlingStyle string           `json:"bowlingStyle"`
	Stats        []playerStatItem `json:"stats"`
}

type playerStatItem struct {
	Fn    string `json:"fn"`
	Stat  string `json:"stat"`
	Value string `json:"value"`
}

// Provider stat labels, as they appear in the stats array.
const (
	statFnBatting = "batting"
	statFnBowling = "bowling"
)

func mapInfoToStats(requestedName string, item playerInfoItem) playerstats.Stats {
	stats := playerstats.Stats{
		Identity: playerstats.Identity{
			Name:       requestedName,
			NameKey:    playerstats.NormalizeName(requestedName),
			ProviderID: strings.TrimSpace(item.ID),
		},
		Role:           parseRole(item.Role),
		BowlingStyle:   parseBowlingStyle(item.BowlingStyle),
		BattingMetrics: map[string]float64{},
		BowlingMetrics: map[string]float64{},
		FetchedAt:      time.Now().UTC(),
	}

	for _, entry := range item.Stats {
		value, ok := parseStatValue(entry.Value)
		if !ok {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(entry.Fn)) {
		case statFnBatting:
			if key := battingMetricKey(entry.Stat); key != "" {
				stats.BattingMetrics[key] = value
			}
		case statFnBowling:
			if key := bowlingMetricKey(entry.Stat); key != "" {
				stats.BowlingMetrics[key] = value
			}
		}
	}

	return stats
}

func battingMetricKey(stat string) string {
	switch strings.ToLower(strings.TrimSpace(stat)) {
	case "avg", "average":
		return playerstats.MetricBattingAverage
	case "sr", "strike rate", "strike_rate":
		return playerstats.MetricBattingStrikeRate
	default:
		return ""
	}
}

func bowlingMetricKey(stat string) string {
	switch strings.ToLower(strings.TrimSpace(stat)) {
	case "avg", "average":
		return playerstats.MetricBowlingAverage
	case "econ", "economy":
		return playerstats.MetricBowlingEconomy
	case "wkts", "wickets":
		return playerstats.MetricBowlingWickets
	default:
		return ""
	}
}

// parseStatValue tolerates the provider's habit of returning "-" or
// empty strings for metrics a player has no record for.
func parseStatValue(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseRole(raw string) playerstats.Role {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case normalized == "":
		return playerstats.RoleUnknown
	case strings.Contains(normalized, "wk") || strings.Contains(normalized, "keeper"):
		return playerstats.RoleWicketkeeper
	case strings.Contains(normalized, "allrounder") || strings.Contains(normalized, "all-rounder") || strings.Contains(normalized, "all rounder"):
		return playerstats.RoleAllRounder
	case strings.Contains(normalized, "bowl"):
		return playerstats.RoleBowler
	case strings.Contains(normalized, "bat"):
		return playerstats.RoleBatter
	default:
		return playerstats.RoleUnknown
	}
}

func parseBowlingStyle(raw string) playerstats.BowlingStyle {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case normalized == "":
		return playerstats.BowlingUnknown
	case strings.Contains(normalized, "spin"),
		strings.Contains(normalized, "break"),
		strings.Contains(normalized, "orthodox"),
		strings.Contains(normalized, "chinaman"):
		return playerstats.BowlingSpin
	case strings.Contains(normalized, "fast"),
		strings.Contains(normalized, "medium"),
		strings.Contains(normalized, "pace"):
		return playerstats.BowlingPace
	default:
		return playerstats.BowlingUnknown
	}
}
