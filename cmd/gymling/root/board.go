package root

import (
	"context"

	"github.com/spf13/cobra"

	"gymling/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive creature dashboard",
		Long:  "Shows your creature, energy and nearby monsters. Keys 1-4 toggle preparations, f or enter fights the selected monster.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
