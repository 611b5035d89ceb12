package engine

import "math"

const (
	// XPGrowthRate scales xpToNext on every level-up.
	XPGrowthRate = 1.15

	// LevelUpStatBonus is added to every stat per level gained.
	LevelUpStatBonus = 1

	// EvolutionLevel is the level at which a stage 1 creature evolves.
	EvolutionLevel = 5

	// EvolvedName replaces the creature name on evolution.
	EvolvedName = "Gymbrute"

	// EvolutionStatBonus is the one-time bonus added to every stat on evolution.
	EvolutionStatBonus = 5

	BaseMaxEnergy     = 30
	MaxEnergyPerLevel = 5

	MinWorkoutXP = 20
)

// roundHalfUp rounds .5 towards +Inf, matching the formulas' rounding on both signs.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// MaxEnergyForLevel returns the energy ceiling: 30 + 5 per level above 1.
func MaxEnergyForLevel(level int) int {
	extra := level - 1
	if extra < 0 {
		extra = 0
	}
	return BaseMaxEnergy + extra*MaxEnergyPerLevel
}

// ClampEnergyToLevel bounds energy to [0, MaxEnergyForLevel(level)].
func ClampEnergyToLevel(energy, level int) int {
	if energy < 0 {
		return 0
	}
	if ceiling := MaxEnergyForLevel(level); energy > ceiling {
		return ceiling
	}
	return energy
}

// ApplyXPGain adds xp, resolves every level-up it pays for, applies the one-off stat boost and
// runs the evolution check. The result always satisfies 0 <= XP < XPToNext.
func ApplyXPGain(c Creature, xpGain int, boost Stats) Creature {
	out := c.Clone()
	if out.XPToNext <= 0 {
		out.XPToNext = DefaultXPToNext
	}
	if xpGain > 0 {
		out.XP += xpGain
	}
	if out.XP < 0 {
		out.XP = 0
	}

	for out.XP >= out.XPToNext {
		out.XP -= out.XPToNext
		out.Level++
		out.XPToNext = roundHalfUp(float64(out.XPToNext) * XPGrowthRate)
		out.Stats = out.Stats.Add(Flat(LevelUpStatBonus))
	}

	out.Stats = out.Stats.Add(nonNegative(boost))
	return CheckEvolution(out)
}

// CheckEvolution moves a stage 1 creature at EvolutionLevel or above to stage 2. It never fires twice.
func CheckEvolution(c Creature) Creature {
	if c.Level >= EvolutionLevel && c.EvolutionStage == 1 {
		c.EvolutionStage = 2
		c.Name = EvolvedName
		c.Stats = c.Stats.Add(Flat(EvolutionStatBonus))
	}
	return c
}

// nonNegative drops negative deltas so stats never decrease.
func nonNegative(s Stats) Stats {
	return Stats{
		Str: max(s.Str, 0),
		Agi: max(s.Agi, 0),
		Sta: max(s.Sta, 0),
		Int: max(s.Int, 0),
	}
}
