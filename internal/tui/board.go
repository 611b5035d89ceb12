package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gymling/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// RunBattle replays a resolved battle and exits when the last event is shown.
func RunBattle(ctx context.Context, report *engine.BattleReport, speed time.Duration, out io.Writer) error {
	m := newPlaybackModel(report, speed)
	m.quitOnDone = true
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
