package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tend/internal/cli"
	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/report"
	"github.com/Veraticus/tend/internal/service"
	"github.com/Veraticus/tend/internal/tui"
	"github.com/Veraticus/tend/internal/tui/themes"
)

func reviewCmd() *cobra.Command {
	var (
		tag       string
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Step through overdue people and send a drafted message",
		Long: `Step through everyone who is overdue, most neglected first.

For each person, three drafts are shown. Press c, f, or d to log the casual,
friendly, or direct draft as a text you sent, s to skip, q to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if themeName == "" {
				themeName = a.cfg.Theme
			}
			theme, ok := themes.ByName(themeName)
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("unknown theme %q (available: %s)", themeName, strings.Join(themes.Names(), ", ")),
					common.ErrInvalidConfig,
				)
			}

			people, err := a.store.ListPeople(ctx, service.PersonFilter{Tag: tag})
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			queue := report.NeedsAttention(drift.EvaluateAll(people, a.now()))
			out := cmd.OutOrStdout()
			if len(queue) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("Nobody is overdue. Nice work "+cli.LeafIcon))
				return nil
			}

			slog.Debug("Starting review", "queue", len(queue), "theme", theme.Name)
			result, err := tui.Run(ctx,
				tui.WithStorage(a.store),
				tui.WithQueue(queue),
				tui.WithTheme(theme),
				tui.WithClock(a.now),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, renderReviewResult(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only review people with this tag")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme (default from display.theme)")

	return cmd
}

func renderReviewResult(r tui.Result) string {
	msg := fmt.Sprintf("Reached out to %s, skipped %d", plural(r.Logged, "person", "people"), r.Skipped)
	if r.Remaining > 0 {
		msg += fmt.Sprintf(", %d still waiting", r.Remaining)
	}
	return cli.FormatSuccess(msg)
}
