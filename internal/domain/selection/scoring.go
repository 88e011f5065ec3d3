package selection

import (
	"github.com/pitchside/dream-eleven/internal/domain/pitch"
	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
)

// Weights makes every coefficient in the scoring blend explicit so two
// deployments can disagree about emphasis without code changes. All
// component weights within a facet should sum to 1.
type Weights struct {
	// Facet shares for all-rounders; specialist roles use the
	// specialist shares below.
	AllRounderBattingShare float64
	AllRounderBowlingShare float64
	// Specialist shares: how much the off-facet still contributes for
	// a pure batter or bowler (a batter's occasional overs, a bowler's
	// tail-end runs).
	SpecialistPrimaryShare   float64
	SpecialistSecondaryShare float64

	BattingAverageWeight float64
	StrikeRateWeight     float64

	BowlingAverageWeight float64
	EconomyWeight        float64
	WicketsWeight        float64

	// PitchShift moves facet shares toward batting on high scoring
	// surfaces and toward bowling on low scoring ones.
	PitchShift float64
	// StyleBonus is added to the bowling component when the surface
	// favors the player's bowling style.
	StyleBonus float64
}

func DefaultWeights() Weights {
	return Weights{
		AllRounderBattingShare:   0.5,
		AllRounderBowlingShare:   0.5,
		SpecialistPrimaryShare:   0.8,
		SpecialistSecondaryShare: 0.2,
		BattingAverageWeight:     0.6,
		StrikeRateWeight:         0.4,
		BowlingAverageWeight:     0.4,
		EconomyWeight:            0.35,
		WicketsWeight:            0.25,
		PitchShift:               0.1,
		StyleBonus:               10,
	}
}

// Normalization caps. Metrics beyond these are clamped so a single
// outlier stat cannot dominate the blend.
const (
	battingAverageCap = 80
	strikeRateCap     = 200
	bowlingAverageCap = 60
	economyCap        = 12
	wicketsCap        = 400
)

// Score folds a stat sheet and a pitch readout into one scalar on a
// 0..100-ish scale. It is deterministic and side-effect free: identical
// inputs always produce the identical value. Missing metrics contribute
// zero, so a degraded placeholder scores at the bottom of the pool.
func Score(stats playerstats.Stats, characteristics pitch.Characteristics, weights Weights) float64 {
	batting := battingComponent(stats, weights)
	bowling := bowlingComponent(stats, weights)

	if characteristics.PaceFriendly && stats.BowlingStyle == playerstats.BowlingPace {
		bowling += weights.StyleBonus
	}
	if characteristics.SpinFriendly && stats.BowlingStyle == playerstats.BowlingSpin {
		bowling += weights.StyleBonus
	}

	battingShare, bowlingShare := facetShares(stats.Role, weights)
	if characteristics.HighScoring {
		battingShare += weights.PitchShift
		bowlingShare -= weights.PitchShift
	}
	if characteristics.LowScoring {
		battingShare -= weights.PitchShift
		bowlingShare += weights.PitchShift
	}
	battingShare = clamp(battingShare, 0, 1)
	bowlingShare = clamp(bowlingShare, 0, 1)

	return battingShare*batting + bowlingShare*bowling
}

func facetShares(role playerstats.Role, weights Weights) (batting, bowling float64) {
	switch role {
	case playerstats.RoleBatter, playerstats.RoleWicketkeeper:
		return weights.SpecialistPrimaryShare, weights.SpecialistSecondaryShare
	case playerstats.RoleBowler:
		return weights.SpecialistSecondaryShare, weights.SpecialistPrimaryShare
	case playerstats.RoleAllRounder:
		return weights.AllRounderBattingShare, weights.AllRounderBowlingShare
	default:
		return weights.AllRounderBattingShare, weights.AllRounderBowlingShare
	}
}

func battingComponent(stats playerstats.Stats, weights Weights) float64 {
	var component float64
	if avg, ok := stats.Batting(playerstats.MetricBattingAverage); ok {
		component += clamp(avg, 0, battingAverageCap) / battingAverageCap * 100 * weights.BattingAverageWeight
	}
	if sr, ok := stats.Batting(playerstats.MetricBattingStrikeRate); ok {
		component += clamp(sr, 0, strikeRateCap) / strikeRateCap * 100 * weights.StrikeRateWeight
	}
	return component
}

func bowlingComponent(stats playerstats.Stats, weights Weights) float64 {
	var component float64
	// Bowling average and economy reward lower values.
	if avg, ok := stats.Bowling(playerstats.MetricBowlingAverage); ok {
		component += (bowlingAverageCap - clamp(avg, 0, bowlingAverageCap)) / bowlingAverageCap * 100 * weights.BowlingAverageWeight
	}
	if econ, ok := stats.Bowling(playerstats.MetricBowlingEconomy); ok {
		component += (economyCap - clamp(econ, 0, economyCap)) / economyCap * 100 * weights.EconomyWeight
	}
	if wickets, ok := stats.Bowling(playerstats.MetricBowlingWickets); ok {
		component += clamp(wickets, 0, wicketsCap) / wicketsCap * 100 * weights.WicketsWeight
	}
	return component
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
