package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage reusable workout templates",
	}
	cmd.AddCommand(newTemplateSaveCmd(), newTemplateListCmd(), newTemplateDeleteCmd(), newTemplateUseCmd())
	return cmd
}

func exactlyOne(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func newTemplateSaveCmd() *cobra.Command {
	var title, notes string
	var lifts, cardio []string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save exercises as a named template",
		Args:  exactlyOne("template name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := parseExerciseFlags(lifts, cardio)
			if err != nil {
				return err
			}
			if !engine.HasLoggedSets(exercises) {
				return engine.ErrEmptyWorkout
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.SaveTemplate(ctx, args[0], engine.Workout{Title: title, Notes: notes, Exercises: exercises})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconSparkle, ui.Good.Render("Saved template "+t.Name), ui.Muted.Render("("+t.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Workout title")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	cmd.Flags().StringArrayVarP(&lifts, "exercise", "e", nil, `Exercise as "Name:REPSxWEIGHT,..." (repeatable)`)
	cmd.Flags().StringArrayVar(&cardio, "cardio", nil, `Cardio as "Name:30m,5km" (repeatable)`)
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Templates(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no templates)"))
				return nil
			}
			for _, t := range list {
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(t.Name), ui.Muted.Render("("+t.ID+")"))
				for _, ex := range t.Workout.Exercises {
					fmt.Fprintf(out, "   - %s: %d sets\n", ex.Name, len(ex.Sets)+len(ex.Cardio))
				}
			}
			return nil
		},
	}
}

func newTemplateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name|id>",
		Short: "Delete a template",
		Args:  exactlyOne("template name or id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteTemplate(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+args[0]))
			return nil
		},
	}
}

func newTemplateUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name|id>",
		Short: "Log a workout from a template",
		Args:  exactlyOne("template name or id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := svc.WorkoutFromTemplate(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := svc.LogWorkout(ctx, w)
			if err != nil {
				return err
			}
			printWorkoutResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
