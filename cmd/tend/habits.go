package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tend/internal/cli"
	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/report"
	"github.com/Veraticus/tend/internal/service"
	"github.com/Veraticus/tend/internal/streak"
)

func habitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habits",
		Aliases: []string{"habit", "h"},
		Short:   "Track daily habits and streaks",
	}

	cmd.AddCommand(habitsAddCmd())
	cmd.AddCommand(habitsListCmd())
	cmd.AddCommand(habitsShowCmd())
	cmd.AddCommand(habitsDoneCmd())
	cmd.AddCommand(habitsSkipCmd())
	cmd.AddCommand(habitsToggleCmd())
	cmd.AddCommand(habitsArchiveCmd())

	return cmd
}

func habitsAddCmd() *cobra.Command {
	var habit model.Habit

	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Start tracking a habit",
		Example: `  tend habits add "Drink water" --icon 💧 --color "#3B82F6"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			habit.Title = strings.TrimSpace(args[0])
			if err := a.store.CreateHabit(ctx, &habit); err != nil {
				return fmt.Errorf("failed to add habit: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Now tracking "+habit.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&habit.Description, "description", "d", "", "what the habit is about")
	cmd.Flags().StringVar(&habit.Icon, "icon", "✅", "icon shown next to the title")
	cmd.Flags().StringVar(&habit.Color, "color", "#10B981", "hex color")

	return cmd
}

func habitsListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with today's state and current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			history, err := loadHabitHistory(ctx, a.store, all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No habits yet. Add one with 'tend habits add <title>'."))
				return nil
			}

			now := a.now()
			for _, h := range history {
				fmt.Fprintln(out, renderHabitLine(report.ProgressOf(h, now)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include archived habits")

	return cmd
}

func habitsShowCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show a habit's streaks and recent history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			habit, err := a.store.FindHabitByTitle(ctx, args[0])
			if err != nil {
				return err
			}
			logs, err := a.store.GetHabitLogs(ctx, habit.ID)
			if err != nil {
				return fmt.Errorf("failed to load habit history: %w", err)
			}

			now := a.now()
			fmt.Fprintln(cmd.OutOrStdout(), renderHabitDetail(*habit, streak.Calculate(logs, now), logs, now, days))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "days of history to draw")

	return cmd
}

func habitsDoneCmd() *cobra.Command {
	var when, note string

	cmd := &cobra.Command{
		Use:   "done <title>",
		Short: "Mark a habit done for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return logHabitDay(cmd, args[0], when, &model.HabitLog{Note: note})
		},
	}

	cmd.Flags().StringVarP(&when, "when", "w", "", "day to mark (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&note, "note", "m", "", "note for the day")

	return cmd
}

func habitsSkipCmd() *cobra.Command {
	var when, reason string

	cmd := &cobra.Command{
		Use:   "skip <title>",
		Short: "Mark a habit deliberately skipped for a day",
		Long: `Mark a habit deliberately skipped for a day. A skip is recorded in the
history but still ends the current streak.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return logHabitDay(cmd, args[0], when, &model.HabitLog{Skipped: true, SkipReason: reason})
		},
	}

	cmd.Flags().StringVarP(&when, "when", "w", "", "day to mark (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "why it was skipped")

	return cmd
}

// logHabitDay fills in entry's habit and day, stores it, and prints the new streak.
func logHabitDay(cmd *cobra.Command, title, when string, entry *model.HabitLog) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	habit, err := a.store.FindHabitByTitle(ctx, title)
	if err != nil {
		return err
	}

	now := a.now()
	at, err := dates.Parse(when, now)
	if err != nil {
		return err
	}
	entry.HabitID = habit.ID
	entry.CompletedAt = at

	if err := a.store.LogHabit(ctx, entry); err != nil {
		return fmt.Errorf("failed to log habit: %w", err)
	}

	verb := "Done"
	if entry.Skipped {
		verb = "Skipped"
	}
	return printStreak(ctx, cmd, a, habit, fmt.Sprintf("%s: %s (%s)", verb, habit.Title, at.Format(dayFormat)))
}

func habitsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <title>",
		Short: "Flip today's entry: mark done, or clear it if already logged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			habit, err := a.store.FindHabitByTitle(ctx, args[0])
			if err != nil {
				return err
			}

			completed, err := a.store.ToggleCompletion(ctx, habit.ID, a.now())
			if err != nil {
				return fmt.Errorf("failed to toggle habit: %w", err)
			}

			message := "Cleared today for " + habit.Title
			if completed {
				message = "Done today: " + habit.Title
			}
			return printStreak(ctx, cmd, a, habit, message)
		},
	}
}

func printStreak(ctx context.Context, cmd *cobra.Command, a *app, habit *model.Habit, message string) error {
	logs, err := a.store.GetHabitLogs(ctx, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to load habit history: %w", err)
	}
	info := streak.Calculate(logs, a.now())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(message))
	fmt.Fprintf(out, "  %s  %s\n",
		cli.FormatStreak(info.FireEmojis, info.StreakColor, info.CurrentStreak),
		cli.SubtleStyle.Render(streak.Message(info.CurrentStreak)))
	return nil
}

func habitsArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <title>",
		Short: "Stop tracking a habit but keep its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			habit, err := a.store.FindHabitByTitle(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.store.ArchiveHabit(ctx, habit.ID); err != nil {
				return fmt.Errorf("failed to archive habit: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Archived "+habit.Title))
			return nil
		},
	}
}

func loadHabitHistory(ctx context.Context, store service.Storage, includeArchived bool) ([]report.HabitHistory, error) {
	habits, err := store.ListHabits(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	history := make([]report.HabitHistory, 0, len(habits))
	for _, h := range habits {
		logs, err := store.GetHabitLogs(ctx, h.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load history for %s: %w", h.Title, err)
		}
		history = append(history, report.HabitHistory{Habit: h, Logs: logs})
	}
	return history, nil
}
