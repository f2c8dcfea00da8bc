package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tend/internal/cli"
	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/outreach"
	"github.com/Veraticus/tend/internal/report"
	"github.com/Veraticus/tend/internal/service"
)

func peopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "people",
		Aliases: []string{"person", "p"},
		Short:   "Manage the people you keep in touch with",
	}

	cmd.AddCommand(peopleAddCmd())
	cmd.AddCommand(peopleListCmd())
	cmd.AddCommand(peopleShowCmd())
	cmd.AddCommand(peopleLogCmd())
	cmd.AddCommand(peopleSuggestCmd())
	cmd.AddCommand(peopleEditCmd())
	cmd.AddCommand(peopleDeleteCmd())

	return cmd
}

type personFlags struct {
	priority    string
	tags        []string
	phone       string
	email       string
	birthday    string
	notes       string
	lastContact string
	lastType    string
	cadence     int
}

func (f *personFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "priority (low, normal, high)")
	cmd.Flags().IntVarP(&f.cadence, "cadence", "c", 0, "days between contacts (default from people.default_cadence_days)")
	cmd.Flags().StringSliceVarP(&f.tags, "tags", "t", nil, "comma-separated tags (family, friend, work, ...)")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.birthday, "birthday", "", "birthday (free-form, e.g. 1990-04-12)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
}

func peopleAddCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Long: `Add someone to keep in touch with.

Use --last-contact to record when you last spoke, otherwise drift is measured
from today.`,
		Example: `  tend people add "Sarah Chen" --priority high --cadence 7 --tags family
  tend people add "Marcus Webb" --last-contact 2024-05-01 --last-type in_person`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			priority, err := model.ParsePriority(flags.priority)
			if err != nil {
				return err
			}

			person := &model.Person{
				FullName:             strings.TrimSpace(args[0]),
				Priority:             priority,
				PreferredCadenceDays: flags.cadence,
				Tags:                 flags.tags,
				Phone:                flags.phone,
				Email:                flags.email,
				Birthday:             flags.birthday,
				Notes:                flags.notes,
			}
			if person.PreferredCadenceDays == 0 {
				person.PreferredCadenceDays = a.cfg.DefaultCadenceDays
			}

			if flags.lastContact != "" {
				at, err := dates.Parse(flags.lastContact, a.now())
				if err != nil {
					return err
				}
				kind, err := model.ParseInteractionType(flags.lastType)
				if err != nil {
					return err
				}
				person.LastInteractionAt = &at
				person.LastInteractionType = kind
			}

			if err := a.store.CreatePerson(ctx, person); err != nil {
				return fmt.Errorf("failed to add person: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Added %s (every %s, %s priority)",
				person.FullName, plural(person.PreferredCadenceDays, "day", "days"), person.Priority)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.lastContact, "last-contact", "", "when you last spoke (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&flags.lastType, "last-type", string(model.InteractionOther), "how you last spoke (call, text, in_person, email, other)")

	return cmd
}

func peopleListCmd() *cobra.Command {
	var (
		tag      string
		priority string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List people grouped by how overdue they are",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := service.PersonFilter{Tag: tag}
			if priority != "" {
				if filter.Priority, err = model.ParsePriority(priority); err != nil {
					return err
				}
			}

			people, err := a.store.ListPeople(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(people) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No people yet. Add someone with 'tend people add <name>'."))
				return nil
			}

			renderBuckets(out, report.BucketPeople(drift.EvaluateAll(people, a.now())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only people with this tag")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "only people with this priority")

	return cmd
}

func peopleShowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a person and their recent interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.store.FindPersonByName(ctx, args[0])
			if err != nil {
				return err
			}
			interactions, err := a.store.GetInteractions(ctx, person.ID, limit)
			if err != nil {
				return fmt.Errorf("failed to load interactions: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPersonDetail(drift.Evaluate(*person, a.now()), interactions))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of interactions to show (0 for all)")

	return cmd
}

func peopleLogCmd() *cobra.Command {
	var (
		kind string
		when string
		note string
	)

	cmd := &cobra.Command{
		Use:   "log <name>",
		Short: "Record that you got in touch with someone",
		Example: `  tend people log Sarah --type call
  tend people log "Marcus Webb" --type in_person --when yesterday --note "coffee downtown"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.store.FindPersonByName(ctx, args[0])
			if err != nil {
				return err
			}

			if kind == "" {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if kind, err = prompter.Choose(ctx, "How did you get in touch?", interactionChoices()); err != nil {
					return err
				}
			}
			interactionType, err := model.ParseInteractionType(kind)
			if err != nil {
				return err
			}
			now := a.now()
			at, err := dates.Parse(when, now)
			if err != nil {
				return err
			}

			if err := a.store.LogInteraction(ctx, &model.Interaction{
				PersonID:   person.ID,
				OccurredAt: at,
				Type:       interactionType,
				Summary:    note,
			}); err != nil {
				return fmt.Errorf("failed to log interaction: %w", err)
			}

			updated, err := a.store.GetPerson(ctx, person.ID)
			if err != nil {
				return fmt.Errorf("failed to reload person: %w", err)
			}
			view := drift.Evaluate(*updated, now)

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged %s with %s", strings.ReplaceAll(string(interactionType), "_", " "), person.FullName)))
			fmt.Fprintln(cmd.OutOrStdout(), "  "+cli.FormatStatus(view.Result, updated.PreferredCadenceDays))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "interaction type (call, text, in_person, email, other; asked when omitted)")
	cmd.Flags().StringVarP(&when, "when", "w", "", "when it happened (YYYY-MM-DD, today, yesterday; default now)")
	cmd.Flags().StringVarP(&note, "note", "m", "", "what you talked about")

	return cmd
}

func peopleSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <name>",
		Short: "Draft three ways to reach out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.store.FindPersonByName(ctx, args[0])
			if err != nil {
				return err
			}

			view := drift.Evaluate(*person, a.now())
			fmt.Fprintln(cmd.OutOrStdout(), renderSuggestions(view, outreach.SuggestFor(view)))
			return nil
		},
	}
}

func peopleEditCmd() *cobra.Command {
	var (
		flags personFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Change a person's details",
		Long:  `Change a person's details. Only the flags you pass are updated.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.store.FindPersonByName(ctx, args[0])
			if err != nil {
				return err
			}

			changed, err := applyPersonEdits(person, cmd, &flags, name)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing to change. Pass at least one flag, see --help."))
				return nil
			}

			if err := a.store.UpdatePerson(ctx, person); err != nil {
				return fmt.Errorf("failed to update person: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+person.FullName))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "new full name")

	return cmd
}

// applyPersonEdits copies the flags the user actually set onto person.
func applyPersonEdits(person *model.Person, cmd *cobra.Command, flags *personFlags, name string) (bool, error) {
	set := cmd.Flags().Changed
	changed := false

	if set("name") {
		person.FullName = strings.TrimSpace(name)
		changed = true
	}
	if set("priority") {
		priority, err := model.ParsePriority(flags.priority)
		if err != nil {
			return false, err
		}
		person.Priority = priority
		changed = true
	}
	if set("cadence") {
		if flags.cadence <= 0 {
			return false, model.ErrInvalidCadence
		}
		person.PreferredCadenceDays = flags.cadence
		changed = true
	}
	if set("tags") {
		person.Tags = flags.tags
		changed = true
	}
	for flag, field := range map[string]*string{
		"phone":    &person.Phone,
		"email":    &person.Email,
		"birthday": &person.Birthday,
		"notes":    &person.Notes,
	} {
		if set(flag) {
			*field = cmd.Flags().Lookup(flag).Value.String()
			changed = true
		}
	}

	return changed, nil
}

func peopleDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a person and their interaction history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.store.FindPersonByName(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirmDelete(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), person.FullName)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Kept "+person.FullName))
					return nil
				}
			}

			if err := a.store.DeletePerson(ctx, person.ID); err != nil {
				return fmt.Errorf("failed to delete person: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+person.FullName))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func interactionChoices() []string {
	choices := make([]string, 0, len(model.InteractionTypes))
	for _, t := range model.InteractionTypes {
		choices = append(choices, string(t))
	}
	return choices
}

func confirmDelete(ctx context.Context, in io.Reader, out io.Writer, name string) (bool, error) {
	prompter := cli.NewPrompter(in, out)
	return prompter.Confirm(ctx, fmt.Sprintf("Delete %s and all their interactions?", name))
}
