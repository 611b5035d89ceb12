package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

// DefaultPlaybackSpeed is the delay between replayed battle events.
const DefaultPlaybackSpeed = 1100 * time.Millisecond

const playbackLogLines = 8

type tickMsg struct{}

// playbackModel replays a resolved battle one event per tick.
type playbackModel struct {
	report *engine.BattleReport
	speed  time.Duration

	shown      int
	creatureHP int
	monsterHP  int
	done       bool
	quitOnDone bool
}

func newPlaybackModel(report *engine.BattleReport, speed time.Duration) playbackModel {
	if speed <= 0 {
		speed = DefaultPlaybackSpeed
	}
	return playbackModel{
		report:     report,
		speed:      speed,
		creatureHP: report.Outcome.InitialCreatureHP,
		monsterHP:  report.Outcome.InitialMonsterHP,
		done:       len(report.Outcome.Events) == 0,
	}
}

func (m playbackModel) tick() tea.Cmd {
	return tea.Tick(m.speed, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m playbackModel) Init() tea.Cmd {
	if m.done {
		return m.finish()
	}
	return m.tick()
}

func (m playbackModel) finish() tea.Cmd {
	if m.quitOnDone {
		return tea.Quit
	}
	return nil
}

func (m playbackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		m = m.advance(1)
		if m.done {
			return m, m.finish()
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "s", "enter", " ":
			if m.done {
				return m, tea.Quit
			}
			m = m.advance(len(m.report.Outcome.Events))
			return m, m.finish()
		}
	}
	return m, nil
}

// advance reveals up to n more events.
func (m playbackModel) advance(n int) playbackModel {
	events := m.report.Outcome.Events
	m.shown = min(m.shown+n, len(events))
	if m.shown > 0 {
		last := events[m.shown-1]
		m.creatureHP, m.monsterHP = last.CreatureHP, last.MonsterHP
	}
	m.done = m.shown == len(events)
	return m
}

func (m playbackModel) View() string {
	r := m.report
	out := r.Outcome
	name := r.CreatureBefore.DisplayName()

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSwords, fmt.Sprintf("%s vs %s %s", name, r.Monster.Icon, r.Monster.Name)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%-14s %s\n", name, ui.HPBar(m.creatureHP, out.InitialCreatureHP, 20)))
	b.WriteString(fmt.Sprintf("%-14s %s\n\n", r.Monster.Name, ui.HPBar(m.monsterHP, out.InitialMonsterHP, 20)))

	from := max(0, m.shown-playbackLogLines)
	for _, ev := range out.Events[from:m.shown] {
		line := ev.Message
		if ev.Attacker == engine.AttackerMonster {
			line = ui.Warn.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.done {
		b.WriteString("\n" + ui.Outcome(out.DidWin))
		b.WriteString(fmt.Sprintf("  +%d XP", r.XPGain))
		if r.LevelsGained > 0 {
			b.WriteString("  " + ui.BadgeLevelUp)
		}
		if r.Evolved {
			b.WriteString("  " + ui.BadgeEvolved)
		}
		b.WriteString("\n")
		if !m.quitOnDone {
			b.WriteString(ui.Muted.Render("press q to close") + "\n")
		}
	} else {
		b.WriteString("\n" + ui.Muted.Render("s: skip  q: quit") + "\n")
	}
	return b.String()
}
