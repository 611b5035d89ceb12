package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gymling/internal/engine"
)

var when = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func lines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestWorkouts(t *testing.T) {
	ws := []engine.Workout{{
		ID:       "w1",
		Date:     when,
		Title:    "Push",
		XPEarned: 110,
		Exercises: []engine.Exercise{
			{Name: "Bench", Sets: []engine.Set{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 100}}},
		},
		PRAchievements: []engine.PRAchievement{{Exercise: "Bench"}},
	}}

	var buf bytes.Buffer
	if err := Workouts(&buf, ws); err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	got := lines(t, &buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want header + 1:\n%s", len(got), buf.String())
	}
	if got[0] != "id,date,title,exercises,sets,total_volume,xp_earned,prs,notes" {
		t.Fatalf("header=%q", got[0])
	}
	if got[1] != "w1,2026-10-19T09:30:00Z,Push,1,2,1000,110,1," {
		t.Fatalf("row=%q", got[1])
	}
}

func TestRecordsSortedByExercise(t *testing.T) {
	recs := engine.PersonalRecordMap{
		"squat": {Exercise: "Squat", MaxWeight: 140, TotalVolume: 2800, UpdatedAt: when, WorkoutID: "w2"},
		"bench": {Exercise: "Bench", MaxWeight: 100, TotalVolume: 1000, UpdatedAt: when, WorkoutID: "w1"},
	}
	var buf bytes.Buffer
	if err := Records(&buf, recs); err != nil {
		t.Fatalf("Records: %v", err)
	}
	got := lines(t, &buf)
	if len(got) != 3 || !strings.HasPrefix(got[1], "Bench,") || !strings.HasPrefix(got[2], "Squat,") {
		t.Fatalf("records csv:\n%s", buf.String())
	}
}

func TestBattles(t *testing.T) {
	hist := []engine.BattleRecord{{
		Date: when, MonsterID: "sapling-guardian", MonsterName: "Sapling Guardian", Element: engine.ElementEarth,
		Prep: []string{"fed", "coop"}, DidWin: true, XPGain: 40, Rounds: 2, CreatureHP: 100, MonsterHP: 0,
	}}
	var buf bytes.Buffer
	if err := Battles(&buf, hist); err != nil {
		t.Fatalf("Battles: %v", err)
	}
	got := lines(t, &buf)
	want := "2026-10-19T09:30:00Z,sapling-guardian,Sapling Guardian,Earth,fed+coop,win,40,2,100,0"
	if len(got) != 2 || got[1] != want {
		t.Fatalf("battles csv:\n%s\nwant row %q", buf.String(), want)
	}
}
