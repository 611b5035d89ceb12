package engine

import (
	"context"
	"log/slog"
	"time"

	"gymling/internal/storage"
)

// MaxBattleHistory bounds the persisted battle history.
const MaxBattleHistory = 200

type BattleReport struct {
	Refused        bool
	Gate           BattleGate
	Monster        Monster
	Prep           Preparation
	Outcome        BattleOutcome
	XPGain         int
	CreatureBefore Creature
	CreatureAfter  Creature
	LevelsGained   int
	Evolved        bool
	PlayerStats    PlayerStats
	Lock           *BattleLock
}

// BattleRecord is one line of the persisted battle history.
type BattleRecord struct {
	Date        time.Time `json:"date"`
	MonsterID   string    `json:"monsterId"`
	MonsterName string    `json:"monsterName"`
	Element     Element   `json:"element"`
	Prep        []string  `json:"prep,omitempty"`
	DidWin      bool      `json:"didWin"`
	XPGain      int       `json:"xpGain"`
	Rounds      int       `json:"rounds"`
	CreatureHP  int       `json:"creatureHP"`
	MonsterHP   int       `json:"monsterHP"`
}

func (s *Service) BattleHistory(ctx context.Context) ([]BattleRecord, error) {
	var hist []BattleRecord
	if _, err := s.kv.Get(ctx, storage.KeyBattleHistory, &hist); err != nil {
		return nil, err
	}
	return hist, nil
}

// Battle gates, simulates and settles one fight. A refused battle is reported, not returned as an error.
func (s *Service) Battle(ctx context.Context, monsterID string, prep Preparation) (*BattleReport, error) {
	c, err := s.Creature(ctx)
	if err != nil {
		return nil, err
	}
	m, err := FindMonster(&c, monsterID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	report := &BattleReport{Monster: m, Prep: prep, CreatureBefore: c, CreatureAfter: c}
	err = s.kv.WithTx(ctx, func(kv *storage.KVRepo) error {
		stats, err := loadPlayerStats(ctx, kv, c.Level)
		if err != nil {
			return err
		}
		lock, err := loadBattleLock(ctx, kv)
		if err != nil {
			return err
		}
		report.PlayerStats = stats
		report.Lock = lock

		report.Gate = CheckBattleGate(&c, stats, lock, s.energyCost, now)
		if !report.Gate.Allowed {
			report.Refused = true
			return nil
		}

		outcome := s.sim.Simulate(&c, m, prep)
		xp := ComputeXPGain(m.XPReward, prep, outcome.DidWin)
		after := ApplyXPGain(c, xp, Stats{})

		stats.Energy = ClampEnergyToLevel(max(0, stats.Energy-s.energyCost), after.Level)
		stats.XP += xp
		lock = LockAfterBattle(outcome.DidWin, now)

		if err := kv.Set(ctx, storage.KeyCreature, after); err != nil {
			return err
		}
		if err := kv.Set(ctx, storage.KeyPlayerStats, stats); err != nil {
			return err
		}
		if err := saveBattleLock(ctx, kv, lock); err != nil {
			return err
		}

		var hist []BattleRecord
		if _, err := kv.Get(ctx, storage.KeyBattleHistory, &hist); err != nil {
			return err
		}
		creatureHP, monsterHP := outcome.FinalHP()
		hist = append([]BattleRecord{{
			Date:        now,
			MonsterID:   m.ID,
			MonsterName: m.Name,
			Element:     m.Element,
			Prep:        prep.Active(),
			DidWin:      outcome.DidWin,
			XPGain:      xp,
			Rounds:      outcome.Rounds(),
			CreatureHP:  creatureHP,
			MonsterHP:   monsterHP,
		}}, hist...)
		if len(hist) > MaxBattleHistory {
			hist = hist[:MaxBattleHistory]
		}
		if err := kv.Set(ctx, storage.KeyBattleHistory, hist); err != nil {
			return err
		}

		report.Outcome = outcome
		report.XPGain = xp
		report.CreatureAfter = after
		report.LevelsGained = after.Level - c.Level
		report.Evolved = after.EvolutionStage > c.EvolutionStage
		report.PlayerStats = stats
		report.Lock = lock
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Refused {
		s.log.Info("battle refused", slog.String("monster", m.ID), slog.String("reason", string(report.Gate.Reason)))
		return report, nil
	}

	s.creatures.publish(report.CreatureAfter)
	s.log.Info("battle resolved",
		slog.String("monster", m.ID),
		slog.Any("outcome", report.Outcome),
		slog.Int("xp", report.XPGain),
		slog.Int("energy", report.PlayerStats.Energy),
	)
	if report.LevelsGained > 0 {
		s.log.Info("level up", slog.Any("creature", report.CreatureAfter))
	}
	if report.Evolved {
		s.log.Info("creature evolved", slog.String("name", report.CreatureAfter.Name))
	}
	return report, nil
}
