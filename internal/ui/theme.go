package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gymling theme (CLI + TUI).

const (
	IconCreature = "🐣"
	IconEvolved  = "🦍"
	IconSparkle  = "✨"
	IconDumbbell = "🏋️"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconSwords   = "⚔️"
	IconHeart    = "❤️"
	IconLock     = "🔒"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconBag      = "🎒"
	IconScroll   = "📜"
	IconPotion   = "🧪"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeEvolved = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("EVOLVED")
	BadgePR      = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("PR")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Outcome renders a battle result word.
func Outcome(didWin bool) string {
	if didWin {
		return Good.Render("VICTORY")
	}
	return Bad.Render("DEFEAT")
}

// CreatureIcon picks the portrait emoji for an evolution stage.
func CreatureIcon(stage int) string {
	if stage >= 2 {
		return IconEvolved
	}
	return IconCreature
}

// ElementIcon maps an element name to its glyph.
func ElementIcon(element string) string {
	switch strings.ToLower(element) {
	case "fire":
		return "🔥"
	case "water":
		return "💧"
	case "earth":
		return "🪨"
	case "air":
		return "🌪️"
	case "lightning":
		return IconBolt
	case "shadow":
		return "🌑"
	case "light":
		return "🌟"
	default:
		return "❔"
	}
}

// Bar renders value/total as a fixed-width bar.
func Bar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// HPBar colours the bar by remaining health.
func HPBar(hp, maxHP, width int) string {
	bar := Bar(hp, maxHP, width)
	label := fmt.Sprintf("%s %d/%d", bar, max(hp, 0), maxHP)
	switch {
	case maxHP <= 0 || hp*100/maxHP > 50:
		return Good.Render(label)
	case hp*100/maxHP > 20:
		return Warn.Render(label)
	default:
		return Bad.Render(label)
	}
}
