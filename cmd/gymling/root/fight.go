package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"gymling/internal/engine"
	"gymling/internal/tui"
	"gymling/internal/ui"
)

func newFightCmd() *cobra.Command {
	var prep engine.Preparation
	var prepList string
	var watch bool
	var speed time.Duration

	cmd := &cobra.Command{
		Use:   "fight <monster-id>",
		Short: "Battle a monster (costs energy)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("monster id is required (see `gymling monsters`)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := engine.ParsePreparation(prepList)
			if err != nil {
				return err
			}
			prep.Fed = prep.Fed || extra.Fed
			prep.Charm = prep.Charm || extra.Charm
			prep.Potion = prep.Potion || extra.Potion
			prep.Coop = prep.Coop || extra.Coop

			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := svc.Battle(ctx, args[0], prep)
			if err != nil {
				return err
			}
			if rep.Refused {
				return rep.Gate.Err()
			}

			out := cmd.OutOrStdout()
			if watch {
				if !cmd.Flags().Changed("speed") {
					speed = cfg.Playback.Speed
				}
				if err := tui.RunBattle(ctx, rep, speed, out); err != nil {
					return err
				}
			} else {
				printBattleLog(out, rep)
			}
			printBattleSummary(out, rep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prep.Fed, "fed", false, "Eat before the fight (+2 STA)")
	cmd.Flags().BoolVar(&prep.Charm, "charm", false, "Wear a focus charm (+5 defense)")
	cmd.Flags().BoolVar(&prep.Potion, "potion", false, "Carry a healing potion")
	cmd.Flags().BoolVar(&prep.Coop, "coop", false, "Bring an ally (extra strike, +15% XP)")
	cmd.Flags().StringVar(&prepList, "prep", "", "Preparation list, e.g. fed,coop")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Replay the battle round by round")
	cmd.Flags().DurationVar(&speed, "speed", tui.DefaultPlaybackSpeed, "Delay between replayed events")
	return cmd
}

func printBattleLog(out io.Writer, rep *engine.BattleReport) {
	fmt.Fprintln(out, ui.Heading(ui.IconSwords, fmt.Sprintf("%s vs %s %s", rep.CreatureBefore.DisplayName(), rep.Monster.Icon, rep.Monster.Name)))
	for _, ev := range rep.Outcome.Events {
		line := ev.Message
		if ev.Attacker == engine.AttackerMonster {
			line = ui.Warn.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	if n := len(rep.Outcome.Log); n > 0 {
		fmt.Fprintln(out, ui.Muted.Render(rep.Outcome.Log[n-1]))
	}
	fmt.Fprintln(out, "")
}

func printBattleSummary(out io.Writer, rep *engine.BattleReport) {
	if rep.Outcome.DidWin {
		fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Victory! +%d XP", ui.IconTrophy, rep.XPGain)))
	} else {
		fmt.Fprintln(out, ui.Bad.Render(fmt.Sprintf("Defeat. Consolation +%d XP", rep.XPGain)))
	}
	after := rep.CreatureAfter
	if rep.LevelsGained > 0 {
		fmt.Fprintf(out, "%s now level %d\n", ui.BadgeLevelUp, after.Level)
	}
	if rep.Evolved {
		fmt.Fprintf(out, "%s %s evolved into %s!\n", ui.BadgeEvolved, rep.CreatureBefore.DisplayName(), after.Name)
	}
	fmt.Fprintln(out, ui.LabelValue("Energy", rep.PlayerStats.Energy))
	if rep.Lock != nil {
		fmt.Fprintln(out, ui.Muted.Render(ui.IconLock+" Log a workout to battle again today."))
	}
}
