package engine

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format of the battle lock.
const DayLayout = "2006-01-02"

// EnergyCost is debited when a battle starts.
const EnergyCost = 10

// DayKey is the calendar day of t in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// BattleLock blocks battles through LockedUntil (inclusive). A nil lock means unlocked.
type BattleLock struct {
	LockedUntil string `json:"lockedUntil"`
}

func (l *BattleLock) ActiveOn(day string) bool {
	return l != nil && l.LockedUntil != "" && l.LockedUntil == day
}

// LockAfterBattle returns the lock to persist: today after a loss, nil after a win.
func LockAfterBattle(didWin bool, now time.Time) *BattleLock {
	if didWin {
		return nil
	}
	return &BattleLock{LockedUntil: DayKey(now)}
}

type GateReason string

const (
	GateOpen       GateReason = ""
	GateNoCreature GateReason = "no_creature"
	GateCooldown   GateReason = "cooldown"
	GateNoEnergy   GateReason = "no_energy"
)

// BattleGate says whether a battle may start. Refusal is an ordinary result, not an error.
type BattleGate struct {
	Allowed       bool
	Reason        GateReason
	Message       string
	EnergyDeficit int
}

// Err converts a refusal into a GateError for callers that prefer error flow.
func (g BattleGate) Err() error {
	if g.Allowed {
		return nil
	}
	return GateError{Reason: g.Reason, Message: g.Message}
}

// CheckBattleGate consults the cooldown lock first, then energy.
func CheckBattleGate(c *Creature, stats PlayerStats, lock *BattleLock, energyCost int, now time.Time) BattleGate {
	if c == nil {
		return BattleGate{Reason: GateNoCreature, Message: "No creature loaded."}
	}
	if lock.ActiveOn(DayKey(now)) {
		return BattleGate{
			Reason:  GateCooldown,
			Message: fmt.Sprintf("%s must recover. Log a workout to reset the cooldown.", c.DisplayName()),
		}
	}
	if stats.Energy < energyCost {
		deficit := energyCost - stats.Energy
		return BattleGate{
			Reason:        GateNoEnergy,
			Message:       fmt.Sprintf("Need %d energy (%d more) to queue a fight.", energyCost, deficit),
			EnergyDeficit: deficit,
		}
	}
	return BattleGate{Allowed: true}
}
