package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gymling/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show creature, energy and battle readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			c := st.Creature
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.CreatureIcon(c.EvolutionStage), c.DisplayName()))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (stage %d)", c.Level, c.EvolutionStage)))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s", c.XP, c.XPToNext, ui.Bar(c.XP, c.XPToNext, 20))))
			fmt.Fprintln(out, ui.LabelValue("Energy", fmt.Sprintf("%d/%d %s", st.PlayerStats.Energy, st.MaxEnergy, ui.Bar(st.PlayerStats.Energy, st.MaxEnergy, 10))))
			fmt.Fprintln(out, ui.LabelValue("Player XP", st.PlayerStats.XP))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- 💪 STR: %d\n", c.Stats.Str)
			fmt.Fprintf(out, "- 🏃 AGI: %d\n", c.Stats.Agi)
			fmt.Fprintf(out, "- ❤️ STA: %d\n", c.Stats.Sta)
			fmt.Fprintf(out, "- 🧠 INT: %d\n", c.Stats.Int)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconBag+" Bag"))
			if len(c.Bag) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for _, item := range c.Bag {
				fmt.Fprintf(out, "- %s %s %s\n", item.Icon, item.Name, ui.Muted.Render(item.Description))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconSwords+" Battle"))
			switch {
			case st.Gate.Allowed:
				fmt.Fprintf(out, "- %s %s\n", ui.Good.Render("ready"), ui.Muted.Render(fmt.Sprintf("(costs %d energy)", svc.EnergyCost())))
			case st.Locked:
				fmt.Fprintf(out, "- %s %s\n", ui.Bad.Render(ui.IconLock+" resting"), st.Gate.Message)
			default:
				fmt.Fprintf(out, "- %s %s\n", ui.Warn.Render("blocked"), st.Gate.Message)
			}
			if opts := svc.Simulator().Options(); !opts.EquipmentEffects {
				fmt.Fprintln(out, ui.Muted.Render("- bag items have no effect in battle (battle.equipment_effects: false)"))
			}
			return nil
		},
	}

	return cmd
}
