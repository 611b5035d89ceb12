package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gymling/internal/ui"
)

func newRenameCmd() *cobra.Command {
	var image string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Name your creature",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.Rename(ctx, strings.Join(args, " "), image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.CreatureIcon(c.EvolutionStage), ui.Good.Render("Your creature is now "+c.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "Portrait image URL")
	return cmd
}
