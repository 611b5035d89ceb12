package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"gymling/internal/storage"
)

type WorkoutResult struct {
	Workout        Workout
	Metrics        WorkoutMetrics
	PRBonusXP      int
	StatBoost      Stats
	CreatureBefore Creature
	CreatureAfter  Creature
	LevelsGained   int
	Evolved        bool
	PlayerStats    PlayerStats
	LockCleared    bool
}

// LogWorkout saves a session: PRs, xp, stat boosts, energy refill and cooldown reset.
func (s *Service) LogWorkout(ctx context.Context, in Workout) (*WorkoutResult, error) {
	if err := ValidateExercises(in.Exercises); err != nil {
		return nil, err
	}
	if !HasLoggedSets(in.Exercises) {
		return nil, ErrEmptyWorkout
	}
	c, err := s.Creature(ctx)
	if err != nil {
		return nil, err
	}

	w := Workout{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Date:      s.now(),
		Notes:     strings.TrimSpace(in.Notes),
		Exercises: CopyExercises(in.Exercises),
	}
	if w.Title == "" {
		w.Title = "Workout " + DayKey(w.Date)
	}

	res := &WorkoutResult{CreatureBefore: c}
	err = s.kv.WithTx(ctx, func(kv *storage.KVRepo) error {
		records, err := loadRecords(ctx, kv)
		if err != nil {
			return err
		}
		stats, err := loadPlayerStats(ctx, kv, c.Level)
		if err != nil {
			return err
		}
		lock, err := loadBattleLock(ctx, kv)
		if err != nil {
			return err
		}
		wl, err := loadWorkoutLog(ctx, kv)
		if err != nil {
			return err
		}

		metrics := CalculateWorkoutMetrics(w)
		updated, achievements := EvaluatePersonalRecords(w.Exercises, records, w.ID, w.Date)
		bonus := PRBonusXP(achievements)
		xp := metrics.BaseXP + bonus
		boost := ComputeStatBoosts(w, metrics.TotalVolume, metrics.TotalSets, achievements)
		after := ApplyXPGain(c, xp, boost)

		stats.XP += xp
		stats.Energy = MaxEnergyForLevel(after.Level)

		w.TotalVolume = metrics.TotalVolume
		w.XPEarned = xp
		w.PRAchievements = achievements
		wl.Workouts = append([]Workout{w}, wl.Workouts...)

		if err := kv.Set(ctx, storage.KeyWorkoutLog, wl); err != nil {
			return err
		}
		if err := kv.Set(ctx, storage.KeyPersonalRecords, updated); err != nil {
			return err
		}
		if err := kv.Set(ctx, storage.KeyCreature, after); err != nil {
			return err
		}
		if err := kv.Set(ctx, storage.KeyPlayerStats, stats); err != nil {
			return err
		}
		if err := saveBattleLock(ctx, kv, nil); err != nil {
			return err
		}

		res.Workout = w
		res.Metrics = metrics
		res.PRBonusXP = bonus
		res.StatBoost = boost
		res.CreatureAfter = after
		res.LevelsGained = after.Level - c.Level
		res.Evolved = after.EvolutionStage > c.EvolutionStage
		res.PlayerStats = stats
		res.LockCleared = lock != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.creatures.publish(res.CreatureAfter)
	s.log.Info("workout saved",
		slog.String("id", w.ID),
		slog.Float64("volume", res.Metrics.TotalVolume),
		slog.Int("sets", res.Metrics.TotalSets),
		slog.Int("xp", res.Workout.XPEarned),
		slog.Int("prs", len(res.Workout.PRAchievements)),
		slog.Bool("lock_cleared", res.LockCleared),
	)
	for _, a := range res.Workout.PRAchievements {
		s.log.Debug("personal record", slog.String("exercise", a.Exercise), slog.String("metric", string(a.Metric)), slog.Float64("value", a.NewValue))
	}
	if res.Evolved {
		s.log.Info("creature evolved", slog.String("name", res.CreatureAfter.Name))
	}
	return res, nil
}
