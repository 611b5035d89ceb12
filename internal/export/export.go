// Package export writes the workout log, personal records and battle history as CSV.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"gymling/internal/engine"
)

// WorkoutCSV is one row of the workout export.
type WorkoutCSV struct {
	ID        string  `csv:"id"`
	Date      string  `csv:"date"`
	Title     string  `csv:"title"`
	Exercises int     `csv:"exercises"`
	Sets      int     `csv:"sets"`
	Volume    float64 `csv:"total_volume"`
	XP        int     `csv:"xp_earned"`
	PRs       int     `csv:"prs"`
	Notes     string  `csv:"notes"`
}

type RecordCSV struct {
	Exercise    string  `csv:"exercise"`
	MaxWeight   float64 `csv:"max_weight"`
	TotalVolume float64 `csv:"total_volume"`
	UpdatedAt   string  `csv:"updated_at"`
	WorkoutID   string  `csv:"workout_id"`
}

type BattleCSV struct {
	Date       string `csv:"date"`
	MonsterID  string `csv:"monster_id"`
	Monster    string `csv:"monster"`
	Element    string `csv:"element"`
	Prep       string `csv:"prep"`
	Result     string `csv:"result"`
	XP         int    `csv:"xp_gain"`
	Rounds     int    `csv:"rounds"`
	CreatureHP int    `csv:"creature_hp"`
	MonsterHP  int    `csv:"monster_hp"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func WorkoutRow(w engine.Workout) WorkoutCSV {
	m := engine.CalculateWorkoutMetrics(w)
	return WorkoutCSV{
		ID:        w.ID,
		Date:      formatTime(w.Date),
		Title:     w.Title,
		Exercises: m.ExerciseCount,
		Sets:      m.TotalSets,
		Volume:    m.TotalVolume,
		XP:        w.XPEarned,
		PRs:       len(w.PRAchievements),
		Notes:     w.Notes,
	}
}

func RecordRow(r engine.PersonalRecord) RecordCSV {
	return RecordCSV{
		Exercise:    r.Exercise,
		MaxWeight:   r.MaxWeight,
		TotalVolume: r.TotalVolume,
		UpdatedAt:   formatTime(r.UpdatedAt),
		WorkoutID:   r.WorkoutID,
	}
}

func BattleRow(b engine.BattleRecord) BattleCSV {
	result := "loss"
	if b.DidWin {
		result = "win"
	}
	return BattleCSV{
		Date:       formatTime(b.Date),
		MonsterID:  b.MonsterID,
		Monster:    b.MonsterName,
		Element:    string(b.Element),
		Prep:       strings.Join(b.Prep, "+"),
		Result:     result,
		XP:         b.XPGain,
		Rounds:     b.Rounds,
		CreatureHP: b.CreatureHP,
		MonsterHP:  b.MonsterHP,
	}
}

// Workouts writes one row per workout, in log order.
func Workouts(out io.Writer, workouts []engine.Workout) error {
	rows := make([]WorkoutCSV, 0, len(workouts))
	for _, w := range workouts {
		rows = append(rows, WorkoutRow(w))
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("writing workouts: %w", err)
	}
	return nil
}

// Records writes the personal record ledger sorted by exercise.
func Records(out io.Writer, records engine.PersonalRecordMap) error {
	sorted := records.Sorted()
	rows := make([]RecordCSV, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, RecordRow(r))
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

func Battles(out io.Writer, history []engine.BattleRecord) error {
	rows := make([]BattleCSV, 0, len(history))
	for _, b := range history {
		rows = append(rows, BattleRow(b))
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("writing battles: %w", err)
	}
	return nil
}
