package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tend/internal/cli"
	"github.com/Veraticus/tend/internal/importer"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <roster.yaml>",
		Short: "Import people and habits from a YAML roster",
		Long: `Import people and habits from a YAML roster. Entries that already exist
(matched by name or title, ignoring case) are left alone, so the same file can
be imported again after adding to it. Use - to read from stdin.`,
		Example: `  tend import roster.yaml

  # roster.yaml
  people:
    - name: Sarah Chen
      priority: high
      cadence_days: 7
      tags: [family]
      last_contact: 2024-05-28
      last_contact_type: call
  habits:
    - title: Drink water
      icon: 💧`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := readRoster(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if roster.Len() == 0 {
				fmt.Fprintln(out, cli.FormatInfo("Roster is empty, nothing to import."))
				return nil
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			handler := cli.NewInterruptHandler(out)
			ctx := handler.HandleInterrupts(cmd.Context(), "Import", "Entries imported so far were saved. Run the import again to finish.")
			defer handler.Stop()

			prompter := cli.NewPrompter(cmd.InOrStdin(), out)
			prompter.StartProgress(roster.Len(), "Importing")

			result, err := importer.New(a.store).Import(ctx, roster, importer.Options{
				Now:                a.now(),
				DefaultCadenceDays: a.cfg.DefaultCadenceDays,
				DryRun:             dryRun,
				OnEntry:            prompter.Advance,
			})
			if handler.WasInterrupted() {
				return nil
			}
			prompter.FinishProgress()
			if err != nil {
				return err
			}

			renderImportResult(out, result, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be imported without saving")

	return cmd
}

func readRoster(stdin io.Reader, path string) (*importer.Roster, error) {
	if path == "-" {
		return importer.Parse(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	return importer.Parse(f)
}

func renderImportResult(w io.Writer, r importer.Result, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}

	fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s %s and %s",
		verb, plural(r.PeopleCreated, "person", "people"), plural(r.HabitsCreated, "habit", "habits"))))

	if skipped := r.PeopleSkipped + r.HabitsSkipped; skipped > 0 {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("%s already existed", plural(skipped, "entry", "entries"))))
	}
	for _, f := range r.Failures {
		fmt.Fprintln(w, cli.FormatWarning(f.Error()))
	}
}
