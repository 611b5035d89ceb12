package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

// boardModel is the creature dashboard: status on the left, opponents on the right.
// Starting a fight swaps in a playback model until it is closed.
type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	status   *engine.Status
	monsters []engine.Monster
	prep     engine.Preparation

	selected int
	battle   *playbackModel

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status   *engine.Status
	monsters []engine.Monster
	err      error
}

type foughtMsg struct {
	report *engine.BattleReport
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{status: st, monsters: engine.AvailableMonsters(&st.Creature)}
	}
}

func (m boardModel) fightCmd(id string, prep engine.Preparation) tea.Cmd {
	return func() tea.Msg {
		rep, err := m.svc.Battle(m.ctx, id, prep)
		return foughtMsg{report: rep, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.battle != nil {
		return m.updateBattle(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.monsters = msg.monsters
		if m.selected >= len(m.monsters) {
			m.selected = max(0, len(m.monsters)-1)
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case foughtMsg:
		if msg.err != nil {
			m.lastLog = "Battle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.report.Refused {
			m.lastLog = msg.report.Gate.Message
			return m, nil
		}
		pb := newPlaybackModel(msg.report, DefaultPlaybackSpeed)
		m.battle = &pb
		m.prep = engine.Preparation{}
		return m, pb.Init()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.monsters)-1 {
				m.selected++
			}
			return m, nil
		case "1", "2", "3", "4":
			i := int(msg.String()[0] - '1')
			m.prep = m.prep.Toggle(engine.PrepOptions[i].Key)
			return m, nil
		case "f", "enter":
			if m.selected < 0 || m.selected >= len(m.monsters) {
				return m, nil
			}
			target := m.monsters[m.selected]
			m.lastLog = fmt.Sprintf("Engaging %s…", target.Name)
			return m, m.fightCmd(target.ID, m.prep)
		}
	}
	return m, nil
}

// updateBattle routes messages to the running playback; closing it reloads the board.
func (m boardModel) updateBattle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			m.battle = nil
			m.lastLog = "Battle closed."
			return m, m.loadCmd()
		}
	}
	next, cmd := m.battle.Update(msg)
	pb := next.(playbackModel)
	m.battle = &pb
	return m, cmd
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.battle != nil {
		return m.battle.View()
	}

	leftW := 34
	if m.width > 0 {
		leftW = min(leftW, max(m.width/2, 20))
	}

	linesLeft := strings.Split(m.renderCreature(), "\n")
	linesRight := strings.Split(m.renderMonsters(), "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}
	return m.renderHeader() + "\n\n" + body.String() + "\n" + m.lastLog
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return "Gymling | loading…"
	}
	c := m.status.Creature
	return fmt.Sprintf("Gymling | %s %s | Level %d | XP %d/%d %s",
		ui.CreatureIcon(c.EvolutionStage), c.DisplayName(), c.Level, c.XP, c.XPToNext, ui.Bar(c.XP, c.XPToNext, 20))
}

func (m boardModel) renderCreature() string {
	if m.status == nil {
		return "Creature\n\nLoading…"
	}
	st := m.status
	s := st.Creature.Stats
	lines := []string{
		"Creature",
		fmt.Sprintf("STR %-3d AGI %-3d", s.Str, s.Agi),
		fmt.Sprintf("STA %-3d INT %-3d", s.Sta, s.Int),
		fmt.Sprintf("Energy %d/%d %s", st.PlayerStats.Energy, st.MaxEnergy, ui.Bar(st.PlayerStats.Energy, st.MaxEnergy, 10)),
	}
	if st.Locked {
		lines = append(lines, ui.IconLock+" resting until a workout")
	}
	lines = append(lines, "", "Prep")
	for i, opt := range engine.PrepOptions {
		lines = append(lines, toggleLine(i+1, opt.Title, m.prep.Has(opt.Key)))
	}
	lines = append(lines, "", "Keys", "- ↑/↓ or j/k: move", "- f/enter: fight", "- r: refresh", "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMonsters() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Opponents"}
	if len(m.monsters) == 0 {
		return strings.Join(append(out, "(none)"), "\n")
	}
	for i, mon := range m.monsters {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s %s L%d %s (hp %d, atk %d, def %d, xp %d)",
			cursor, mon.Icon, mon.Name, mon.Level, ui.ElementIcon(string(mon.Element)), mon.Health, mon.Attack, mon.Defense, mon.XPReward))
	}
	return strings.Join(out, "\n")
}

func toggleLine(n int, label string, on bool) string {
	mark := "[ ]"
	if on {
		mark = "[x]"
	}
	return fmt.Sprintf("- %d %s %s", n, mark, label)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
