package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gymling/internal/engine"
)

type halfRand struct{}

func (halfRand) Float64() float64 { return 0.5 }

func testReport(t *testing.T) *engine.BattleReport {
	t.Helper()
	m, err := engine.FindMonster(nil, "sapling-guardian")
	if err != nil {
		t.Fatalf("FindMonster: %v", err)
	}
	c := engine.DefaultCreature()
	c.Name = "Pebble"
	c.Bag = nil
	out := engine.NewSimulator(halfRand{}, engine.SimulatorOptions{}).Simulate(&c, m, engine.Preparation{})
	return &engine.BattleReport{Monster: m, Outcome: out, CreatureBefore: c, CreatureAfter: c, XPGain: 8}
}

func TestPlaybackAdvancesOneEventPerTick(t *testing.T) {
	rep := testReport(t)
	var model tea.Model = newPlaybackModel(rep, 0)

	model, cmd := model.Update(tickMsg{})
	pm := model.(playbackModel)
	if pm.shown != 1 || pm.done || cmd == nil {
		t.Fatalf("after one tick shown=%d done=%v cmd=%v", pm.shown, pm.done, cmd != nil)
	}
	if pm.monsterHP != rep.Outcome.Events[0].MonsterHP {
		t.Fatalf("monster hp=%d, want %d", pm.monsterHP, rep.Outcome.Events[0].MonsterHP)
	}
	if !strings.Contains(pm.View(), "Round 1: Pebble hits Sapling Guardian") {
		t.Fatalf("view missing first event:\n%s", pm.View())
	}

	for i := 1; i < len(rep.Outcome.Events); i++ {
		model, _ = model.Update(tickMsg{})
	}
	pm = model.(playbackModel)
	if !pm.done || pm.shown != len(rep.Outcome.Events) {
		t.Fatalf("shown=%d done=%v, want all events", pm.shown, pm.done)
	}
	if !strings.Contains(pm.View(), "DEFEAT") {
		t.Fatalf("final view missing outcome:\n%s", pm.View())
	}
}

func TestPlaybackSkip(t *testing.T) {
	rep := testReport(t)
	m := newPlaybackModel(rep, 0)
	m.quitOnDone = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	pm := next.(playbackModel)
	if !pm.done || cmd == nil {
		t.Fatalf("skip did not finish playback")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("skip should quit when running standalone")
	}
	creatureHP, monsterHP := rep.Outcome.FinalHP()
	if pm.creatureHP != creatureHP || pm.monsterHP != monsterHP {
		t.Fatalf("hp=%d/%d, want %d/%d", pm.creatureHP, pm.monsterHP, creatureHP, monsterHP)
	}
}

func TestPlaybackDefaultsSpeed(t *testing.T) {
	if m := newPlaybackModel(testReport(t), 0); m.speed != DefaultPlaybackSpeed {
		t.Fatalf("speed=%v, want %v", m.speed, DefaultPlaybackSpeed)
	}
}
