package engine

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"gymling/internal/storage"
)

type Service struct {
	db        *sql.DB
	kv        *storage.KVRepo
	creatures *CreatureStore
	sim       *Simulator
	log       *slog.Logger
	now       func() time.Time

	energyCost int
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now; the battle lock uses the clock's calendar day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSimulator(sim *Simulator) Option {
	return func(s *Service) {
		if sim != nil {
			s.sim = sim
		}
	}
}

func WithEnergyCost(cost int) Option {
	return func(s *Service) {
		if cost >= 0 {
			s.energyCost = cost
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	kv := storage.NewKVRepo(db)
	s := &Service{
		db:         db,
		kv:         kv,
		creatures:  NewCreatureStore(kv),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
		energyCost: EnergyCost,
	}
	s.sim = NewSimulator(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), SimulatorOptions{EquipmentEffects: true})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) KV() *storage.KVRepo            { return s.kv }
func (s *Service) CreatureStore() *CreatureStore { return s.creatures }
func (s *Service) Simulator() *Simulator         { return s.sim }
func (s *Service) EnergyCost() int               { return s.energyCost }

// Creature returns the current creature, hydrating the store on first use.
func (s *Service) Creature(ctx context.Context) (Creature, error) {
	return s.creatures.Get(ctx)
}

func loadPlayerStats(ctx context.Context, kv KV, level int) (PlayerStats, error) {
	ps := DefaultPlayerStats()
	if _, err := kv.Get(ctx, storage.KeyPlayerStats, &ps); err != nil {
		return PlayerStats{}, err
	}
	if ps.XP < 0 {
		ps.XP = 0
	}
	ps.Energy = ClampEnergyToLevel(ps.Energy, level)
	return ps, nil
}

func loadBattleLock(ctx context.Context, kv KV) (*BattleLock, error) {
	var lock BattleLock
	found, err := kv.Get(ctx, storage.KeyBattleLock, &lock)
	if err != nil {
		return nil, err
	}
	if !found || lock.LockedUntil == "" {
		return nil, nil
	}
	return &lock, nil
}

func saveBattleLock(ctx context.Context, kv KV, lock *BattleLock) error {
	if lock == nil {
		return kv.Delete(ctx, storage.KeyBattleLock)
	}
	return kv.Set(ctx, storage.KeyBattleLock, lock)
}

func loadRecords(ctx context.Context, kv KV) (PersonalRecordMap, error) {
	recs := PersonalRecordMap{}
	if _, err := kv.Get(ctx, storage.KeyPersonalRecords, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = PersonalRecordMap{}
	}
	return recs, nil
}

func loadWorkoutLog(ctx context.Context, kv KV) (WorkoutLog, error) {
	var wl WorkoutLog
	if _, err := kv.Get(ctx, storage.KeyWorkoutLog, &wl); err != nil {
		return WorkoutLog{}, err
	}
	return wl, nil
}

func (s *Service) PlayerStats(ctx context.Context) (PlayerStats, error) {
	c, err := s.Creature(ctx)
	if err != nil {
		return PlayerStats{}, err
	}
	return loadPlayerStats(ctx, s.kv, c.Level)
}

func (s *Service) BattleLock(ctx context.Context) (*BattleLock, error) {
	return loadBattleLock(ctx, s.kv)
}

func (s *Service) PersonalRecords(ctx context.Context) (PersonalRecordMap, error) {
	return loadRecords(ctx, s.kv)
}

// Workouts returns the saved workouts, newest first.
func (s *Service) Workouts(ctx context.Context) ([]Workout, error) {
	wl, err := loadWorkoutLog(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	return wl.Workouts, nil
}

type Status struct {
	Creature    Creature
	PlayerStats PlayerStats
	MaxEnergy   int
	Lock        *BattleLock
	Locked      bool
	Gate        BattleGate
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	c, err := s.Creature(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := loadPlayerStats(ctx, s.kv, c.Level)
	if err != nil {
		return nil, err
	}
	lock, err := loadBattleLock(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &Status{
		Creature:    c,
		PlayerStats: ps,
		MaxEnergy:   MaxEnergyForLevel(c.Level),
		Lock:        lock,
		Locked:      lock.ActiveOn(DayKey(now)),
		Gate:        CheckBattleGate(&c, ps, lock, s.energyCost, now),
	}, nil
}

// CheckBattle reports whether a battle may start right now.
func (s *Service) CheckBattle(ctx context.Context) (BattleGate, error) {
	st, err := s.Status(ctx)
	if err != nil {
		return BattleGate{}, err
	}
	return st.Gate, nil
}
