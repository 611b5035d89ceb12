package engine

import (
	"math"
	"strings"
)

const (
	// CoopXPMultiplier applies to every battle reward when an ally joined.
	CoopXPMultiplier = 1.15

	// ConsolationDivisor shrinks the reward after a loss.
	ConsolationDivisor = 4

	VolumePerStrPoint = 800
	SetsPerStaPoint   = 6
	ExercisesPerAgi   = 3
)

func XPMultiplier(prep Preparation) float64 {
	if prep.Coop {
		return CoopXPMultiplier
	}
	return 1
}

// ComputeXPGain returns the battle reward: full on a win, a quarter (floored) on a loss,
// scaled by the coop multiplier either way.
func ComputeXPGain(baseReward int, prep Preparation, didWin bool) int {
	base := baseReward
	if !didWin {
		base = int(math.Floor(float64(baseReward) / ConsolationDivisor))
	}
	return roundHalfUp(float64(base) * XPMultiplier(prep))
}

// ComputeStatBoosts derives the permanent stat increments earned by a workout.
func ComputeStatBoosts(w Workout, totalVolume float64, totalSets int, achievements []PRAchievement) Stats {
	var maxWeightPRs, volumePRs int
	for _, a := range achievements {
		switch a.Metric {
		case MetricMaxWeight:
			maxWeightPRs++
		case MetricTotalVolume:
			volumePRs++
		}
	}

	exerciseCount := 0
	for _, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) != "" {
			exerciseCount++
		}
	}

	boost := Stats{
		Str: int(math.Floor(totalVolume/VolumePerStrPoint)) + maxWeightPRs,
		Sta: totalSets / SetsPerStaPoint,
		Agi: exerciseCount / ExercisesPerAgi,
		Int: volumePRs,
	}
	if strings.TrimSpace(w.Notes) != "" {
		boost.Int++
	}
	return nonNegative(boost)
}

// PRBonusXP sums the xp bonuses carried by a workout's achievements.
func PRBonusXP(achievements []PRAchievement) int {
	total := 0
	for _, a := range achievements {
		total += a.XPBonus
	}
	return total
}
