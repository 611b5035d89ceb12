package engine

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"gymling/internal/storage"
)

// fixedRand always returns the same roll, making battles fully deterministic.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db,
		WithClock(func() time.Time { return testNow }),
		WithSimulator(NewSimulator(fixedRand(0.5), SimulatorOptions{EquipmentEffects: true})),
	)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func setPlayerStats(t *testing.T, svc *Service, ps PlayerStats) {
	t.Helper()
	if err := svc.KV().Set(context.Background(), storage.KeyPlayerStats, ps); err != nil {
		t.Fatalf("set player stats: %v", err)
	}
}

func benchWorkout() Workout {
	return Workout{
		Title: "Push day",
		Exercises: []Exercise{
			{Name: "Bench Press", Sets: []Set{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 100}}},
		},
	}
}

func TestEnergyCeiling(t *testing.T) {
	if got := MaxEnergyForLevel(1); got != 30 {
		t.Fatalf("MaxEnergyForLevel(1)=%d, want 30", got)
	}
	if got := MaxEnergyForLevel(5); got != 50 {
		t.Fatalf("MaxEnergyForLevel(5)=%d, want 50", got)
	}
	if got := ClampEnergyToLevel(-4, 1); got != 0 {
		t.Fatalf("ClampEnergyToLevel(-4,1)=%d, want 0", got)
	}
	if got := ClampEnergyToLevel(80, 2); got != 35 {
		t.Fatalf("ClampEnergyToLevel(80,2)=%d, want 35", got)
	}
}

func TestLostBattleLocksUntilWorkout(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	rep, err := svc.Battle(ctx, "hydra-prime", Preparation{})
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	if rep.Refused {
		t.Fatalf("battle refused: %s", rep.Gate.Message)
	}
	if rep.Outcome.DidWin {
		t.Fatalf("expected a fresh creature to lose against Hydra Prime")
	}
	if rep.XPGain != 30 {
		t.Fatalf("consolation xp=%d, want 30", rep.XPGain)
	}
	if rep.PlayerStats.Energy != 20 {
		t.Fatalf("energy=%d, want 20", rep.PlayerStats.Energy)
	}

	lock, err := svc.BattleLock(ctx)
	if err != nil {
		t.Fatalf("BattleLock: %v", err)
	}
	if lock == nil || lock.LockedUntil != "2026-10-19" {
		t.Fatalf("lock=%+v, want locked until 2026-10-19", lock)
	}

	again, err := svc.Battle(ctx, "sapling-guardian", Preparation{})
	if err != nil {
		t.Fatalf("second Battle: %v", err)
	}
	if !again.Refused || again.Gate.Reason != GateCooldown {
		t.Fatalf("expected cooldown refusal, got %+v", again.Gate)
	}
	var ge GateError
	if !errors.As(again.Gate.Err(), &ge) || ge.Reason != GateCooldown {
		t.Fatalf("Gate.Err()=%v, want GateError(cooldown)", again.Gate.Err())
	}

	res, err := svc.LogWorkout(ctx, benchWorkout())
	if err != nil {
		t.Fatalf("LogWorkout: %v", err)
	}
	if !res.LockCleared {
		t.Fatalf("expected workout to report a cleared lock")
	}
	lock, err = svc.BattleLock(ctx)
	if err != nil {
		t.Fatalf("BattleLock after workout: %v", err)
	}
	if lock != nil {
		t.Fatalf("lock=%+v, want cleared", lock)
	}
	gate, err := svc.CheckBattle(ctx)
	if err != nil {
		t.Fatalf("CheckBattle: %v", err)
	}
	if !gate.Allowed {
		t.Fatalf("expected battle gate open after workout, got %+v", gate)
	}
}

func TestLogWorkoutRewards(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setPlayerStats(t, svc, PlayerStats{Energy: 3, XP: 10})

	res, err := svc.LogWorkout(ctx, benchWorkout())
	if err != nil {
		t.Fatalf("LogWorkout: %v", err)
	}
	// volume 1000, 2 sets: round(1000/15)+8 = 75, plus one 35 xp PR.
	if res.Metrics.BaseXP != 75 {
		t.Fatalf("base xp=%d, want 75", res.Metrics.BaseXP)
	}
	if res.Workout.XPEarned != 110 {
		t.Fatalf("xp earned=%d, want 110", res.Workout.XPEarned)
	}
	if len(res.Workout.PRAchievements) != 1 || res.Workout.PRAchievements[0].Metric != MetricMaxWeight {
		t.Fatalf("achievements=%+v, want one maxWeight", res.Workout.PRAchievements)
	}

	c := res.CreatureAfter
	if c.Level != 2 || c.XP != 10 || c.XPToNext != 115 {
		t.Fatalf("creature level/xp/next=%d/%d/%d, want 2/10/115", c.Level, c.XP, c.XPToNext)
	}
	want := Stats{Str: 4, Agi: 2, Sta: 2, Int: 2}
	if c.Stats != want {
		t.Fatalf("stats=%+v, want %+v", c.Stats, want)
	}
	if res.PlayerStats.Energy != 35 {
		t.Fatalf("energy=%d, want refill to 35", res.PlayerStats.Energy)
	}
	if res.PlayerStats.XP != 120 {
		t.Fatalf("player xp=%d, want 120", res.PlayerStats.XP)
	}

	ws, err := svc.Workouts(ctx)
	if err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	if len(ws) != 1 || ws[0].ID != res.Workout.ID {
		t.Fatalf("workout log=%+v, want the saved workout", ws)
	}
	recs, err := svc.PersonalRecords(ctx)
	if err != nil {
		t.Fatalf("PersonalRecords: %v", err)
	}
	rec, ok := recs["bench press"]
	if !ok || rec.MaxWeight != 100 || rec.TotalVolume != 1000 || rec.WorkoutID != res.Workout.ID {
		t.Fatalf("record=%+v ok=%v", rec, ok)
	}

	// Same session again: nothing improves, so no bonus.
	res2, err := svc.LogWorkout(ctx, benchWorkout())
	if err != nil {
		t.Fatalf("LogWorkout #2: %v", err)
	}
	if len(res2.Workout.PRAchievements) != 0 || res2.Workout.XPEarned != 75 {
		t.Fatalf("repeat workout prs=%d xp=%d, want 0/75", len(res2.Workout.PRAchievements), res2.Workout.XPEarned)
	}
}

func TestLogWorkoutRejectsEmptySession(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.LogWorkout(context.Background(), Workout{
		Exercises: []Exercise{{Name: "  ", Sets: []Set{{Reps: 5, Weight: 10}}}, {Name: "Squat"}},
	})
	if !errors.Is(err, ErrEmptyWorkout) {
		t.Fatalf("err=%v, want ErrEmptyWorkout", err)
	}
}

func TestLogWorkoutRejectsNonFiniteWeights(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for _, w := range []float64{math.Inf(1), math.NaN(), -20, 1e300} {
		_, err := svc.LogWorkout(ctx, Workout{
			Exercises: []Exercise{{Name: "Bench Press", Sets: []Set{{Reps: 5, Weight: w}}}},
		})
		if !errors.Is(err, ErrBadExerciseFormat) {
			t.Fatalf("weight %v err=%v, want ErrBadExerciseFormat", w, err)
		}
	}
	_, err := svc.LogWorkout(ctx, Workout{
		Exercises: []Exercise{{Name: "Run", Cardio: []CardioSegment{{Distance: math.Inf(1)}}}},
	})
	if !errors.Is(err, ErrBadExerciseFormat) {
		t.Fatalf("cardio err=%v, want ErrBadExerciseFormat", err)
	}
	if _, err := svc.SaveTemplate(ctx, "broken", Workout{
		Exercises: []Exercise{{Name: "Bench Press", Sets: []Set{{Reps: 5, Weight: math.NaN()}}}},
	}); !errors.Is(err, ErrBadExerciseFormat) {
		t.Fatalf("template err=%v, want ErrBadExerciseFormat", err)
	}

	wl, err := svc.Workouts(ctx)
	if err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	if len(wl) != 0 {
		t.Fatalf("workouts=%d, want nothing saved", len(wl))
	}
}

func TestBattleRefusedWithoutEnergy(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setPlayerStats(t, svc, PlayerStats{Energy: 4, XP: 0})
	rep, err := svc.Battle(ctx, "sapling-guardian", Preparation{})
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	if !rep.Refused || rep.Gate.Reason != GateNoEnergy || rep.Gate.EnergyDeficit != 6 {
		t.Fatalf("gate=%+v, want no_energy with deficit 6", rep.Gate)
	}
	ps, err := svc.PlayerStats(ctx)
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if ps.Energy != 4 {
		t.Fatalf("energy=%d, want untouched 4", ps.Energy)
	}
	hist, err := svc.BattleHistory(ctx)
	if err != nil {
		t.Fatalf("BattleHistory: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("history=%d, want none for a refused battle", len(hist))
	}
}

func TestBattleUnknownMonster(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	if _, err := svc.Battle(context.Background(), "nope", Preparation{}); !errors.Is(err, ErrUnknownMonster) {
		t.Fatalf("err=%v, want ErrUnknownMonster", err)
	}
}

func TestWonBattleClearsLockAndRecordsHistory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreatureStore().Update(ctx, func(c Creature) Creature {
		c.Stats.Str = 50
		return c
	}); err != nil {
		t.Fatalf("update creature: %v", err)
	}
	// A lock from an earlier day does not block today.
	if err := svc.KV().Set(ctx, storage.KeyBattleLock, BattleLock{LockedUntil: "2026-10-18"}); err != nil {
		t.Fatalf("set lock: %v", err)
	}

	rep, err := svc.Battle(ctx, "sapling-guardian", Preparation{Coop: true})
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	if rep.Refused || !rep.Outcome.DidWin {
		t.Fatalf("expected a win, got refused=%v outcome=%+v", rep.Refused, rep.Outcome)
	}
	// 35 * 1.15 = 40.25
	if rep.XPGain != 40 {
		t.Fatalf("xp=%d, want 40", rep.XPGain)
	}
	lock, err := svc.BattleLock(ctx)
	if err != nil {
		t.Fatalf("BattleLock: %v", err)
	}
	if lock != nil {
		t.Fatalf("lock=%+v, want cleared after a win", lock)
	}
	hist, err := svc.BattleHistory(ctx)
	if err != nil {
		t.Fatalf("BattleHistory: %v", err)
	}
	if len(hist) != 1 || !hist[0].DidWin || hist[0].MonsterID != "sapling-guardian" || hist[0].Prep[0] != "coop" {
		t.Fatalf("history=%+v", hist)
	}
	c, ok := svc.CreatureStore().Current()
	if !ok || c.XP != 40 {
		t.Fatalf("cached creature xp=%d ok=%v, want 40", c.XP, ok)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.LogWorkout(ctx, benchWorkout()); err != nil {
		t.Fatalf("LogWorkout: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Creature.Level != 1 || st.Creature.XP != 0 || st.PlayerStats.Energy != DefaultEnergy || st.PlayerStats.XP != 0 {
		t.Fatalf("status after reset=%+v", st)
	}
	ws, _ := svc.Workouts(ctx)
	recs, _ := svc.PersonalRecords(ctx)
	if len(ws) != 0 || len(recs) != 0 {
		t.Fatalf("workouts=%d records=%d, want empty", len(ws), len(recs))
	}
}

func TestRenameRequiresName(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.Rename(ctx, "   ", ""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err=%v, want ErrNameRequired", err)
	}
	c, err := svc.Rename(ctx, " Bolt ", "https://example.com/bolt.png")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if c.Name != "Bolt" || c.ImageURL != "https://example.com/bolt.png" {
		t.Fatalf("creature=%+v", c)
	}
}

func TestTemplatesRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	src := benchWorkout()
	tpl, err := svc.SaveTemplate(ctx, "Push A", src)
	if err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	src.Exercises[0].Sets[0].Weight = 999

	w, err := svc.WorkoutFromTemplate(ctx, "push a")
	if err != nil {
		t.Fatalf("WorkoutFromTemplate: %v", err)
	}
	if w.ID == "" || w.ID == tpl.ID || !w.Date.Equal(testNow) {
		t.Fatalf("instantiated workout id/date=%q/%v", w.ID, w.Date)
	}
	if w.Exercises[0].Sets[0].Weight != 100 {
		t.Fatalf("template shares sets with its source")
	}

	if err := svc.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if _, err := svc.FindTemplate(ctx, "Push A"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err=%v, want ErrTemplateNotFound", err)
	}
	if _, err := svc.SaveTemplate(ctx, " ", src); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err=%v, want ErrNameRequired", err)
	}
}

func TestCreatureStoreNotifiesSubscribers(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	store := svc.CreatureStore()

	if _, ok := store.Current(); ok {
		t.Fatalf("expected empty cache before hydrate")
	}

	var seen []string
	unsubscribe := store.Subscribe(func(c Creature) { seen = append(seen, c.Name) })

	if _, err := store.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if _, err := store.Update(ctx, func(c Creature) Creature {
		c.Name = "Rex"
		return c
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	unsubscribe()
	if _, err := store.Update(ctx, func(c Creature) Creature {
		c.Name = "Ignored"
		return c
	}); err != nil {
		t.Fatalf("Update #2: %v", err)
	}

	if len(seen) != 2 || seen[0] != "" || seen[1] != "Rex" {
		t.Fatalf("notifications=%q, want [\"\" \"Rex\"]", seen)
	}

	// A second store over the same KV sees the persisted value.
	other := NewCreatureStore(svc.KV())
	c, err := other.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Name != "Ignored" {
		t.Fatalf("persisted name=%q, want Ignored", c.Name)
	}
}
