package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

func newMonstersCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "List opponents near your creature's level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.Creature(ctx)
			if err != nil {
				return err
			}
			list := engine.AvailableMonsters(&c)
			title := "Available opponents"
			if all {
				list = engine.Roster(&c)
				title = "Bestiary"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSwords, title))
			for _, m := range list {
				fmt.Fprintf(out, "%s %s %s\n", m.Icon, ui.H2.Render(m.Name), ui.Muted.Render("("+m.ID+")"))
				fmt.Fprintf(out, "   L%d %s %s  hp %d  atk %d  def %d  xp %d  rec. STR %d\n",
					m.Level, ui.ElementIcon(string(m.Element)), m.Element, m.Health, m.Attack, m.Defense, m.XPReward, m.RecommendedStr)
				if m.FeaturedLoot != "" {
					fmt.Fprintf(out, "   %s %s\n", ui.Muted.Render("loot:"), m.FeaturedLoot)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show the full roster")
	return cmd
}
