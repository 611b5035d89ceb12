package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gymling/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress and hatch a new creature",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset erases everything; pass --yes to confirm")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Progress reset."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
