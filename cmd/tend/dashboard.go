package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tend/internal/report"
	"github.com/Veraticus/tend/internal/service"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"today"},
		Short:   "Who is overdue and how your habits are going today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			people, err := a.store.ListPeople(ctx, service.PersonFilter{})
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}
			history, err := loadHabitHistory(ctx, a.store, false)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(report.Dashboard(people, history, a.now())))
			return nil
		},
	}
}
