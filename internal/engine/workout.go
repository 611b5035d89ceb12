package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// CardioSegment durations are minutes, distances kilometres.
type CardioSegment struct {
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
}

type Exercise struct {
	Name   string          `json:"name"`
	Sets   []Set           `json:"sets"`
	Cardio []CardioSegment `json:"cardio,omitempty"`
}

type Workout struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Date           time.Time       `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	Exercises      []Exercise      `json:"exercises"`
	TotalVolume    float64         `json:"totalVolume,omitempty"`
	XPEarned       int             `json:"xpEarned,omitempty"`
	PRAchievements []PRAchievement `json:"prAchievements,omitempty"`
}

// WorkoutLog is the persisted list of saved workouts, newest first.
type WorkoutLog struct {
	Workouts []Workout `json:"workouts"`
}

type WorkoutTemplate struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Workout Workout `json:"workout"`
}

// CopyExercises deep-copies exercises so templates and saved workouts never share slices.
func CopyExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	for i, ex := range in {
		out[i] = Exercise{Name: ex.Name}
		if ex.Sets != nil {
			out[i].Sets = append([]Set(nil), ex.Sets...)
		}
		if ex.Cardio != nil {
			out[i].Cardio = append([]CardioSegment(nil), ex.Cardio...)
		}
	}
	return out
}

// HasLoggedSets reports whether at least one named exercise has a set with reps.
// Input ceilings. Anything above is a typo and would overflow the reward maths.
const (
	MaxSetWeight      = 2000.0
	MaxCardioDuration = 24 * 60.0
	MaxCardioDistance = 1000.0
)

func validAmount(v, ceiling float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= ceiling
}

// ValidateExercises rejects negative, non-finite or absurd weights and cardio values.
func ValidateExercises(exercises []Exercise) error {
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			if s.Reps < 0 || !validAmount(s.Weight, MaxSetWeight) {
				return fmt.Errorf("%w: %s set %dx%g", ErrBadExerciseFormat, ex.Name, s.Reps, s.Weight)
			}
		}
		for _, c := range ex.Cardio {
			if !validAmount(c.Duration, MaxCardioDuration) || !validAmount(c.Distance, MaxCardioDistance) {
				return fmt.Errorf("%w: %s cardio %gmin %gkm", ErrBadExerciseFormat, ex.Name, c.Duration, c.Distance)
			}
		}
	}
	return nil
}

func HasLoggedSets(exercises []Exercise) bool {
	for _, ex := range exercises {
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		for _, s := range ex.Sets {
			if s.Reps > 0 && s.Weight >= 0 {
				return true
			}
		}
	}
	return false
}

// WorkoutMetrics are the per-session aggregates that drive workout rewards.
type WorkoutMetrics struct {
	TotalVolume   float64
	TotalSets     int
	ExerciseCount int
	BaseXP        int
}

// CalculateWorkoutMetrics sums volume (weight x reps) and sets across all exercises.
func CalculateWorkoutMetrics(w Workout) WorkoutMetrics {
	var m WorkoutMetrics
	for _, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) != "" {
			m.ExerciseCount++
		}
		for _, s := range ex.Sets {
			m.TotalVolume += s.Weight * float64(s.Reps)
			m.TotalSets++
		}
	}
	m.BaseXP = WorkoutBaseXP(m.TotalVolume, m.TotalSets)
	return m
}

// WorkoutBaseXP is the XP for a session before PR bonuses: max(20, round(volume/15) + sets*4).
func WorkoutBaseXP(totalVolume float64, totalSets int) int {
	xp := roundHalfUp(totalVolume/15) + totalSets*4
	if xp < MinWorkoutXP {
		return MinWorkoutXP
	}
	return xp
}
