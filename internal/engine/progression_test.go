package engine

import (
	"math"
	"testing"
)

func TestApplyXPGainResolvesEveryLevel(t *testing.T) {
	c := ApplyXPGain(DefaultCreature(), 250, Stats{})
	// 250 -> pay 100 (next 115) -> pay 115 (next 132) -> 35 left.
	if c.Level != 3 || c.XP != 35 || c.XPToNext != 132 {
		t.Fatalf("level/xp/next=%d/%d/%d, want 3/35/132", c.Level, c.XP, c.XPToNext)
	}
	if c.Stats != Flat(3) {
		t.Fatalf("stats=%+v, want all 3", c.Stats)
	}
	if c.XP < 0 || c.XP >= c.XPToNext {
		t.Fatalf("xp %d out of [0,%d)", c.XP, c.XPToNext)
	}
}

func TestApplyXPGainBoostIsNotPerLevel(t *testing.T) {
	c := ApplyXPGain(DefaultCreature(), 250, Stats{Str: 2, Int: -4})
	want := Stats{Str: 5, Agi: 3, Sta: 3, Int: 3}
	if c.Stats != want {
		t.Fatalf("stats=%+v, want %+v", c.Stats, want)
	}
}

func TestEvolutionHappensOnce(t *testing.T) {
	c := DefaultCreature()
	c.Name = "Pebble"
	c.Level = 4

	evolved := ApplyXPGain(c, 100, Stats{})
	if evolved.Level != 5 || evolved.EvolutionStage != 2 || evolved.Name != EvolvedName {
		t.Fatalf("creature=%+v, want stage 2 %s at level 5", evolved, EvolvedName)
	}
	if evolved.Stats != Flat(7) {
		t.Fatalf("stats=%+v, want all 7", evolved.Stats)
	}

	again := ApplyXPGain(evolved, 10, Stats{})
	if again.EvolutionStage != 2 || again.Stats != Flat(7) || again.XP != 10 {
		t.Fatalf("second gain re-evolved: %+v", again)
	}

	renamed := again
	renamed.Name = "Rocky"
	if got := CheckEvolution(renamed); got.Name != "Rocky" {
		t.Fatalf("evolution overwrote a stage 2 name: %q", got.Name)
	}
}

func TestNormalizeCreatureRepairsBadData(t *testing.T) {
	c := NormalizeCreature(Creature{Level: 0, XP: -5, XPToNext: 0, Stats: Stats{Str: -1, Agi: 2}})
	if c.Level != 1 || c.EvolutionStage != 1 || c.XP != 0 || c.XPToNext != DefaultXPToNext {
		t.Fatalf("normalized=%+v", c)
	}
	if c.Stats.Str != 0 || c.Stats.Agi != 2 || c.Bag == nil {
		t.Fatalf("normalized stats/bag=%+v/%v", c.Stats, c.Bag)
	}
}

func TestWorkoutBaseXP(t *testing.T) {
	if got := WorkoutBaseXP(0, 1); got != MinWorkoutXP {
		t.Fatalf("tiny session xp=%d, want floor %d", got, MinWorkoutXP)
	}
	if got := WorkoutBaseXP(1500, 10); got != 140 {
		t.Fatalf("xp=%d, want 140", got)
	}
}

func TestEvaluatePersonalRecordsPriority(t *testing.T) {
	existing := PersonalRecordMap{
		"squat": {ID: "r1", Exercise: "Squat", MaxWeight: 100, TotalVolume: 2000},
	}
	exercises := []Exercise{
		// Heavier top set and more volume: one maxWeight achievement.
		{Name: " squat ", Sets: []Set{{Reps: 5, Weight: 110}, {Reps: 5, Weight: 110}, {Reps: 5, Weight: 110}, {Reps: 5, Weight: 110}}},
		{Name: "Deadlift", Sets: []Set{{Reps: 3, Weight: 140}}},
		{Name: "", Sets: []Set{{Reps: 10, Weight: 500}}},
	}

	updated, achievements := EvaluatePersonalRecords(exercises, existing, "w1", testNow)
	if len(achievements) != 2 {
		t.Fatalf("achievements=%+v, want 2", achievements)
	}

	sq := achievements[0]
	if sq.Metric != MetricMaxWeight || sq.NewValue != 110 || sq.PreviousValue == nil || *sq.PreviousValue != 100 {
		t.Fatalf("squat achievement=%+v", sq)
	}
	rec := updated["squat"]
	if rec.ID != "r1" || rec.MaxWeight != 110 || rec.TotalVolume != 2200 || rec.WorkoutID != "w1" {
		t.Fatalf("squat record=%+v", rec)
	}

	dl := achievements[1]
	if dl.Metric != MetricMaxWeight || dl.PreviousValue != nil || dl.XPBonus != PRXPBonus {
		t.Fatalf("deadlift achievement=%+v", dl)
	}
	if updated["deadlift"].ID == "" {
		t.Fatalf("new record has no id")
	}
	if existing["squat"].MaxWeight != 100 {
		t.Fatalf("existing map was mutated")
	}
	if _, ok := updated[""]; ok {
		t.Fatalf("unnamed exercise produced a record")
	}
}

func TestEvaluatePersonalRecordsVolumeOnly(t *testing.T) {
	existing := PersonalRecordMap{"bench press": {ID: "r1", Exercise: "Bench Press", MaxWeight: 100, TotalVolume: 1000}}
	exercises := []Exercise{{Name: "Bench Press", Sets: []Set{{Reps: 8, Weight: 90}, {Reps: 8, Weight: 90}}}}

	updated, achievements := EvaluatePersonalRecords(exercises, existing, "w2", testNow)
	if len(achievements) != 1 || achievements[0].Metric != MetricTotalVolume || achievements[0].NewValue != 1440 {
		t.Fatalf("achievements=%+v", achievements)
	}
	if r := updated["bench press"]; r.MaxWeight != 100 || r.TotalVolume != 1440 {
		t.Fatalf("record=%+v, want max kept and volume raised", r)
	}

	_, none := EvaluatePersonalRecords(exercises, updated, "w3", testNow)
	if len(none) != 0 {
		t.Fatalf("repeat session produced %d achievements", len(none))
	}
}

func TestComputeStatBoosts(t *testing.T) {
	w := Workout{
		Notes: "felt strong",
		Exercises: []Exercise{
			{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: " "},
		},
	}
	achievements := []PRAchievement{{Metric: MetricMaxWeight}, {Metric: MetricTotalVolume}}
	got := ComputeStatBoosts(w, 1700, 13, achievements)
	want := Stats{Str: 3, Agi: 1, Sta: 2, Int: 2}
	if got != want {
		t.Fatalf("boost=%+v, want %+v", got, want)
	}
	if z := ComputeStatBoosts(Workout{}, 0, 0, nil); z != (Stats{}) {
		t.Fatalf("empty boost=%+v", z)
	}
}

func TestAIRivalCountersDominantStat(t *testing.T) {
	c := DefaultCreature()
	rival := NewAIRival(&c)
	if rival.ID != AIRivalID || rival.Level != 2 || rival.Element != ElementWater {
		t.Fatalf("rival=%+v", rival)
	}
	if rival.Health != 72 || rival.Attack != 8 || rival.Defense != 5 || rival.XPReward != 60 {
		t.Fatalf("rival numbers=%d/%d/%d/%d", rival.Health, rival.Attack, rival.Defense, rival.XPReward)
	}

	c.Stats.Int = 9
	if e := NewAIRival(&c).Element; e != ElementShadow {
		t.Fatalf("INT rival element=%s, want Shadow", e)
	}
}

func TestAvailableMonsters(t *testing.T) {
	if got := AvailableMonsters(nil); len(got) != 3 || got[0].ID != AIRivalID {
		t.Fatalf("nil creature roster=%v", got)
	}

	c := DefaultCreature()
	got := AvailableMonsters(&c)
	if len(got) != 3 {
		t.Fatalf("got %d monsters, want 3", len(got))
	}
	prev := -1
	for _, m := range got {
		d := absInt(m.Level - c.Level)
		if d > MatchmakingLevelWindow || d < prev {
			t.Fatalf("monsters not ordered by level distance: %v", got)
		}
		prev = d
	}
}

func TestSummarizeWorkouts(t *testing.T) {
	ws := []Workout{
		{XPEarned: 50, Exercises: []Exercise{{Name: "Row", Sets: []Set{{Reps: 10, Weight: 100}}}}},
		{XPEarned: 70, PRAchievements: []PRAchievement{{}}, Exercises: []Exercise{{Name: "Row", Sets: []Set{{Reps: 10, Weight: 100}, {Reps: 10, Weight: 100}}}}},
	}
	s := SummarizeWorkouts(ws)
	if s.Count != 2 || s.TotalVolume != 3000 || s.MeanVolume != 1500 || s.TotalXP != 120 || s.TotalSets != 3 || s.PRCount != 1 {
		t.Fatalf("summary=%+v", s)
	}
	if math.Abs(s.StdDevVolume-707.1068) > 0.001 {
		t.Fatalf("stddev=%f, want ~707.107", s.StdDevVolume)
	}
	if one := SummarizeWorkouts(ws[:1]); one.StdDevVolume != 0 {
		t.Fatalf("single workout stddev=%f", one.StdDevVolume)
	}
}
