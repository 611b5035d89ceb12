package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"prs"},
		Short:   "Show personal records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := svc.PersonalRecords(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Personal records"))
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet, log a workout)"))
				return nil
			}
			for _, r := range recs.Sorted() {
				fmt.Fprintf(out, "- %s  max %g  volume %g  %s\n",
					ui.H2.Render(r.Exercise), r.MaxWeight, r.TotalVolume, ui.Muted.Render(engine.DayKey(r.UpdatedAt)))
			}
			return nil
		},
	}

	return cmd
}
