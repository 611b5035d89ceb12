package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/export"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:       "export <workouts|records|battles>",
		Short:     "Export data as CSV",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"workouts", "records", "battles"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}
			return writeExport(ctx, svc, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func writeExport(ctx context.Context, svc *engine.Service, kind string, out io.Writer) error {
	switch kind {
	case "workouts":
		ws, err := svc.Workouts(ctx)
		if err != nil {
			return err
		}
		return export.Workouts(out, ws)
	case "records":
		recs, err := svc.PersonalRecords(ctx)
		if err != nil {
			return err
		}
		return export.Records(out, recs)
	case "battles":
		hist, err := svc.BattleHistory(ctx)
		if err != nil {
			return err
		}
		return export.Battles(out, hist)
	default:
		return fmt.Errorf("unknown export %q", kind)
	}
}
