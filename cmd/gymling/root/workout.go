package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/ui"
)

func newWorkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Log and review workouts",
	}
	cmd.AddCommand(newWorkoutLogCmd(), newWorkoutListCmd(), newWorkoutSummaryCmd())
	return cmd
}

// parseExerciseFlags turns repeated --exercise/--cardio values into exercises.
func parseExerciseFlags(lifts, cardio []string) ([]engine.Exercise, error) {
	var out []engine.Exercise
	for _, s := range lifts {
		ex, err := engine.ParseExercise(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	for _, s := range cardio {
		ex, err := engine.ParseCardio(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

func newWorkoutLogCmd() *cobra.Command {
	var title, notes string
	var lifts, cardio []string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Save a workout",
		Example: `  gymling workout log --title "Push" --exercise "Bench:5x100,5x100" --exercise "Dips:10,10"
  gymling workout log --exercise "Squat:5x140" --cardio "Run:20m,3km" --notes "knees ok"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := parseExerciseFlags(lifts, cardio)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.LogWorkout(ctx, engine.Workout{Title: title, Notes: notes, Exercises: exercises})
			if err != nil {
				return err
			}
			printWorkoutResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Workout title")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes (earn +1 INT)")
	cmd.Flags().StringArrayVarP(&lifts, "exercise", "e", nil, `Exercise as "Name:REPSxWEIGHT,..." (repeatable)`)
	cmd.Flags().StringArrayVar(&cardio, "cardio", nil, `Cardio as "Name:30m,5km" (repeatable)`)
	return cmd
}

func printWorkoutResult(out io.Writer, res *engine.WorkoutResult) {
	w := res.Workout
	fmt.Fprintln(out, ui.Heading(ui.IconDumbbell, "Saved "+w.Title))
	fmt.Fprintln(out, ui.LabelValue("Volume", fmt.Sprintf("%.0f over %d sets", res.Metrics.TotalVolume, res.Metrics.TotalSets)))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("+%d (%d base, %d PR bonus)", w.XPEarned, res.Metrics.BaseXP, res.PRBonusXP)))
	for _, a := range w.PRAchievements {
		prev := "first record"
		if a.PreviousValue != nil {
			prev = fmt.Sprintf("was %g", *a.PreviousValue)
		}
		fmt.Fprintf(out, "%s %s %s %g %s\n", ui.BadgePR, a.Exercise, a.Metric, a.NewValue, ui.Muted.Render("("+prev+")"))
	}
	if b := res.StatBoost; b.Total() > 0 {
		fmt.Fprintln(out, ui.LabelValue("Stats", fmt.Sprintf("+%d STR +%d AGI +%d STA +%d INT", b.Str, b.Agi, b.Sta, b.Int)))
	}
	if res.LevelsGained > 0 {
		fmt.Fprintf(out, "%s now level %d\n", ui.BadgeLevelUp, res.CreatureAfter.Level)
	}
	if res.Evolved {
		fmt.Fprintf(out, "%s %s evolved into %s!\n", ui.BadgeEvolved, res.CreatureBefore.DisplayName(), res.CreatureAfter.Name)
	}
	fmt.Fprintln(out, ui.LabelValue("Energy", fmt.Sprintf("%d (refilled)", res.PlayerStats.Energy)))
	if res.LockCleared {
		fmt.Fprintln(out, ui.Good.Render("Cooldown cleared, ready to battle."))
	}
}

func newWorkoutListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved workouts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ws, err := svc.Workouts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ws) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no workouts yet)"))
				return nil
			}
			if limit > 0 && len(ws) > limit {
				ws = ws[:limit]
			}
			for _, w := range ws {
				names := make([]string, 0, len(w.Exercises))
				for _, ex := range w.Exercises {
					names = append(names, ex.Name)
				}
				prs := ""
				if n := len(w.PRAchievements); n > 0 {
					prs = " " + ui.Gold.Render(fmt.Sprintf("%d PR", n))
				}
				fmt.Fprintf(out, "%s %s  %s  vol %.0f  +%d XP%s\n",
					ui.Muted.Render(engine.DayKey(w.Date)), ui.H2.Render(w.Title), strings.Join(names, ", "), w.TotalVolume, w.XPEarned, prs)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum workouts to show (0 = all)")
	return cmd
}

func newWorkoutSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate stats over the workout log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.WorkoutSummary(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Training summary"))
			fmt.Fprintln(out, ui.LabelValue("Workouts", s.Count))
			fmt.Fprintln(out, ui.LabelValue("Sets", s.TotalSets))
			fmt.Fprintln(out, ui.LabelValue("Total volume", fmt.Sprintf("%.0f", s.TotalVolume)))
			fmt.Fprintln(out, ui.LabelValue("Volume / workout", fmt.Sprintf("%.1f ± %.1f", s.MeanVolume, s.StdDevVolume)))
			fmt.Fprintln(out, ui.LabelValue("XP earned", s.TotalXP))
			fmt.Fprintln(out, ui.LabelValue("Personal records", s.PRCount))
			return nil
		},
	}

	return cmd
}
