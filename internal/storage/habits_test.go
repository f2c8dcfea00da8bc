package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/model"
)

func TestSQLiteStorage_HabitLifecycle(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	water := createTestHabit(t, store, "Drink water")
	store.SetClock(func() time.Time { return testNow.Add(time.Minute) })
	read := createTestHabit(t, store, "Read")

	got, err := store.GetHabit(ctx, water.ID)
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if got.Title != "Drink water" || got.Icon != "💧" || got.Color != "#3B82F6" || got.Archived {
		t.Errorf("GetHabit() = %+v", got)
	}

	if err := store.ArchiveHabit(ctx, water.ID); err != nil {
		t.Fatalf("ArchiveHabit() error = %v", err)
	}

	active, err := store.ListHabits(ctx, false)
	if err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != read.ID {
		t.Errorf("ListHabits(false) = %+v, want only Read", active)
	}

	all, err := store.ListHabits(ctx, true)
	if err != nil {
		t.Fatalf("ListHabits(true) error = %v", err)
	}
	if len(all) != 2 || all[0].ID != water.ID || !all[0].Archived {
		t.Errorf("ListHabits(true) = %+v, want archived water first", all)
	}

	if err := store.ArchiveHabit(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("ArchiveHabit(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetHabit(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetHabit(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_CreateHabitValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		habit   *model.Habit
		wantErr error
		name    string
	}{
		{name: "nil", habit: nil, wantErr: ErrNilParameter},
		{name: "no title", habit: &model.Habit{}, wantErr: ErrInvalidHabit},
		{name: "bad color", habit: &model.Habit{Title: "Walk", Color: "red"}, wantErr: ErrInvalidHabit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.CreateHabit(ctx, tt.habit); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateHabit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_FindHabitByTitle(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	stretch := createTestHabit(t, store, "Stretch")
	createTestHabit(t, store, "Study Spanish")
	old := createTestHabit(t, store, "Stop snacking")
	if err := store.ArchiveHabit(ctx, old.ID); err != nil {
		t.Fatalf("ArchiveHabit() error = %v", err)
	}

	tests := []struct {
		wantErr error
		name    string
		query   string
		wantID  string
	}{
		{name: "exact", query: "stretch", wantID: stretch.ID},
		{name: "prefix", query: "Stre", wantID: stretch.ID},
		{name: "ambiguous", query: "St", wantErr: common.ErrAmbiguous},
		{name: "archived hidden by title", query: "Stop snacking", wantErr: common.ErrNotFound},
		{name: "archived reachable by id", query: old.ID, wantID: old.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.FindHabitByTitle(ctx, tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindHabitByTitle(%q) error = %v, want %v", tt.query, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindHabitByTitle(%q) error = %v", tt.query, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindHabitByTitle(%q) = %s, want %s", tt.query, got.ID, tt.wantID)
			}
		})
	}
}

func TestSQLiteStorage_LogHabit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	habit := createTestHabit(t, store, "Meditate")
	morning := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	if err := store.LogHabit(ctx, &model.HabitLog{HabitID: habit.ID, CompletedAt: morning, Note: "10 min"}); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}
	if err := store.LogHabit(ctx, &model.HabitLog{HabitID: habit.ID, CompletedAt: morning.AddDate(0, 0, -1)}); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}

	// Same day again: replaces the morning entry with a skip.
	evening := morning.Add(12 * time.Hour)
	if err := store.LogHabit(ctx, &model.HabitLog{
		HabitID:     habit.ID,
		CompletedAt: evening,
		Skipped:     true,
		SkipReason:  "sick",
	}); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}

	logs, err := store.GetHabitLogs(ctx, habit.ID)
	if err != nil {
		t.Fatalf("GetHabitLogs() error = %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("GetHabitLogs() returned %d entries, want 2", len(logs))
	}
	if !logs[0].CompletedAt.Equal(morning.AddDate(0, 0, -1)) || logs[0].Skipped {
		t.Errorf("logs[0] = %+v, want yesterday's completion", logs[0])
	}
	if !logs[1].CompletedAt.Equal(evening) || !logs[1].Skipped || logs[1].SkipReason != "sick" {
		t.Errorf("logs[1] = %+v, want today's skip", logs[1])
	}
	if logs[1].Note != "" {
		t.Errorf("replaced entry kept note %q", logs[1].Note)
	}

	err = store.LogHabit(ctx, &model.HabitLog{HabitID: "missing", CompletedAt: morning})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("LogHabit(missing habit) error = %v, want ErrNotFound", err)
	}
	err = store.LogHabit(ctx, &model.HabitLog{HabitID: habit.ID, CompletedAt: morning, SkipReason: "no"})
	if !errors.Is(err, ErrInvalidHabitLog) {
		t.Errorf("LogHabit(reason without skip) error = %v, want ErrInvalidHabitLog", err)
	}
}

func TestSQLiteStorage_LogHabitUsesEntryLocation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	habit := createTestHabit(t, store, "Journal")
	la := time.FixedZone("PST", -8*3600)

	// 23:00 and 23:30 local on the same evening are 07:00/07:30 UTC the next day;
	// they must still collapse into one local day.
	first := time.Date(2024, 3, 14, 23, 0, 0, 0, la)
	second := first.Add(30 * time.Minute)
	for _, at := range []time.Time{first, second} {
		if err := store.LogHabit(ctx, &model.HabitLog{HabitID: habit.ID, CompletedAt: at}); err != nil {
			t.Fatalf("LogHabit() error = %v", err)
		}
	}

	logs, err := store.GetHabitLogs(ctx, habit.ID)
	if err != nil {
		t.Fatalf("GetHabitLogs() error = %v", err)
	}
	if len(logs) != 1 || !logs[0].CompletedAt.Equal(second) {
		t.Errorf("GetHabitLogs() = %+v, want single entry at %v", logs, second)
	}
}

func TestSQLiteStorage_ToggleCompletion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	habit := createTestHabit(t, store, "Walk")

	steps := []struct {
		at        time.Time
		name      string
		wantDone  bool
		wantCount int
	}{
		{name: "first tap completes", at: testNow, wantDone: true, wantCount: 1},
		{name: "second tap same day clears", at: testNow.Add(time.Hour), wantDone: false, wantCount: 0},
		{name: "third tap completes again", at: testNow.Add(2 * time.Hour), wantDone: true, wantCount: 1},
		{name: "other day is independent", at: testNow.AddDate(0, 0, -1), wantDone: true, wantCount: 2},
	}

	for _, step := range steps {
		done, err := store.ToggleCompletion(ctx, habit.ID, step.at)
		if err != nil {
			t.Fatalf("%s: ToggleCompletion() error = %v", step.name, err)
		}
		if done != step.wantDone {
			t.Errorf("%s: ToggleCompletion() = %v, want %v", step.name, done, step.wantDone)
		}
		logs, err := store.GetHabitLogs(ctx, habit.ID)
		if err != nil {
			t.Fatalf("%s: GetHabitLogs() error = %v", step.name, err)
		}
		if len(logs) != step.wantCount {
			t.Errorf("%s: %d logs, want %d", step.name, len(logs), step.wantCount)
		}
	}

	// A skip is an entry too, so toggling removes it.
	skipDay := testNow.AddDate(0, 0, -3)
	if err := store.LogHabit(ctx, &model.HabitLog{HabitID: habit.ID, CompletedAt: skipDay, Skipped: true}); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}
	done, err := store.ToggleCompletion(ctx, habit.ID, skipDay)
	if err != nil || done {
		t.Errorf("ToggleCompletion(skipped day) = %v, %v; want false, nil", done, err)
	}

	if _, err := store.ToggleCompletion(ctx, "missing", testNow); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("ToggleCompletion(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.ToggleCompletion(ctx, habit.ID, time.Time{}); !errors.Is(err, ErrNilParameter) {
		t.Errorf("ToggleCompletion(zero time) error = %v, want ErrNilParameter", err)
	}
}
