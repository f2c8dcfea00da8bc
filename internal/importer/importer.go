package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/service"
)

// Options controls an import run.
type Options struct {
	// Now anchors relative last_contact values. Zero means the current time.
	Now time.Time
	// OnEntry is called after each roster entry, whatever its outcome.
	OnEntry            func()
	DefaultCadenceDays int
	DryRun             bool
}

// Result counts what an import did.
type Result struct {
	Failures      []Failure
	PeopleCreated int
	PeopleSkipped int
	HabitsCreated int
	HabitsSkipped int
}

// Failure records an entry that could not be imported.
type Failure struct {
	Err   error
	Kind  string
	Label string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %q: %v", f.Kind, f.Label, f.Err)
}

// Importer writes rosters into storage.
type Importer struct {
	store service.Storage
}

// New creates an importer backed by store.
func New(store service.Storage) *Importer {
	return &Importer{store: store}
}

// Import adds every roster entry that does not already exist. People match on
// full name and habits on title, both case-insensitively. Invalid entries are
// collected in Result.Failures and do not stop the run; a canceled context or
// storage failure does.
func (imp *Importer) Import(ctx context.Context, roster *Roster, opts Options) (Result, error) {
	var result Result
	if opts.DefaultCadenceDays <= 0 {
		return result, fmt.Errorf("%w: default cadence must be positive", common.ErrInvalidConfig)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	for _, entry := range roster.People {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		created, err := imp.importPerson(ctx, entry, opts)
		failed, err := imp.record(&result.Failures, "person", entry.Name, err)
		switch {
		case err != nil:
			return result, err
		case failed:
		case created:
			result.PeopleCreated++
		default:
			result.PeopleSkipped++
		}
		notify(opts.OnEntry)
	}

	for _, entry := range roster.Habits {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		created, err := imp.importHabit(ctx, entry, opts)
		failed, err := imp.record(&result.Failures, "habit", entry.Title, err)
		switch {
		case err != nil:
			return result, err
		case failed:
		case created:
			result.HabitsCreated++
		default:
			result.HabitsSkipped++
		}
		notify(opts.OnEntry)
	}

	common.LogInfo("Roster imported", common.Fields{
		"people_created": result.PeopleCreated,
		"people_skipped": result.PeopleSkipped,
		"habits_created": result.HabitsCreated,
		"habits_skipped": result.HabitsSkipped,
		"failures":       len(result.Failures),
		"dry_run":        opts.DryRun,
	})
	return result, nil
}

// invalidEntryError marks per-entry problems that are collected rather than fatal.
type invalidEntryError struct {
	err error
}

func (e *invalidEntryError) Error() string { return e.err.Error() }
func (e *invalidEntryError) Unwrap() error { return e.err }

// record collects invalid entries into failures and reports whether err was
// one. Any other error is returned wrapped.
func (imp *Importer) record(failures *[]Failure, kind, label string, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	var invalidErr *invalidEntryError
	if errors.As(err, &invalidErr) {
		*failures = append(*failures, Failure{Kind: kind, Label: label, Err: invalidErr.err})
		slog.Warn("Skipping roster entry", "kind", kind, "label", label, "error", err)
		return true, nil
	}
	return false, fmt.Errorf("failed to import %s %q: %w", kind, label, err)
}

func (imp *Importer) importPerson(ctx context.Context, entry PersonEntry, opts Options) (bool, error) {
	person, err := entry.ToPerson(opts.DefaultCadenceDays, opts.Now)
	if err != nil {
		return false, invalid(err)
	}

	existing, err := imp.store.FindPersonByName(ctx, person.FullName)
	switch {
	case err == nil && strings.EqualFold(existing.FullName, person.FullName):
		common.LogDebug("Person already exists", common.Fields{"name": person.FullName, "id": existing.ID})
		return false, nil
	case err != nil && !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrAmbiguous):
		return false, err
	}

	if opts.DryRun {
		return true, nil
	}

	// The last contact is stored as an interaction, which also sets the
	// person's last-interaction fields.
	lastAt, lastType := person.LastInteractionAt, person.LastInteractionType
	person.LastInteractionAt, person.LastInteractionType = nil, ""
	if err := imp.store.CreatePerson(ctx, person); err != nil {
		return false, err
	}
	if lastAt != nil {
		if err := imp.store.LogInteraction(ctx, &model.Interaction{
			PersonID:   person.ID,
			OccurredAt: *lastAt,
			Type:       lastType,
			Summary:    "Imported from roster",
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (imp *Importer) importHabit(ctx context.Context, entry HabitEntry, opts Options) (bool, error) {
	habit, err := entry.ToHabit()
	if err != nil {
		return false, invalid(err)
	}

	existing, err := imp.store.FindHabitByTitle(ctx, habit.Title)
	switch {
	case err == nil && strings.EqualFold(existing.Title, habit.Title):
		common.LogDebug("Habit already exists", common.Fields{"title": habit.Title, "id": existing.ID})
		return false, nil
	case err != nil && !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrAmbiguous):
		return false, err
	}

	if opts.DryRun {
		return true, nil
	}
	if err := imp.store.CreateHabit(ctx, habit); err != nil {
		return false, err
	}
	return true, nil
}

func invalid(err error) error {
	return &invalidEntryError{err: err}
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
