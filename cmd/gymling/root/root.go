package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gymling/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig string
	flagDB     string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gymling",
		Short:         "Gymling: raise a creature by logging workouts",
		Long:          "Gymling is a local-first fitness tracker. Workouts level up your creature, which battles monsters for XP.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config overlay")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config and $GYMLING_DB)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newMonstersCmd(),
		newFightCmd(),
		newWorkoutCmd(),
		newTemplateCmd(),
		newRecordsCmd(),
		newRenameCmd(),
		newResetCmd(),
		newExportCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
