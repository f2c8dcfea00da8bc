// Package testutil provides test utilities for tend: an in-memory database
// with seeding helpers and fluent builders for people and habits.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/service"
	"github.com/Veraticus/tend/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	Now     time.Time
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	Now    time.Time
	People []*model.Person
	Habits []*model.Habit
}

// SetupTestDB creates a new in-memory test database, migrated and with the
// storage clock pinned to opts.Now (or a fixed default).
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.TestDBOptions{
//		People: []*model.Person{testutil.NewPerson("Sam").Cadence(7).Build()},
//	})
func SetupTestDB(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = DefaultNow
	}
	store.SetClock(func() time.Time { return now })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{Storage: store, Now: now, t: t}
	for _, p := range opts.People {
		db.MustCreatePerson(p)
	}
	for _, h := range opts.Habits {
		db.MustCreateHabit(h)
	}
	return db
}

// MustCreatePerson stores a person or fails the test.
func (db *TestDB) MustCreatePerson(person *model.Person) *model.Person {
	db.t.Helper()
	if err := db.Storage.CreatePerson(context.Background(), person); err != nil {
		db.t.Fatalf("failed to seed person %q: %v", person.FullName, err)
	}
	return person
}

// MustCreateHabit stores a habit or fails the test.
func (db *TestDB) MustCreateHabit(habit *model.Habit) *model.Habit {
	db.t.Helper()
	if err := db.Storage.CreateHabit(context.Background(), habit); err != nil {
		db.t.Fatalf("failed to seed habit %q: %v", habit.Title, err)
	}
	return habit
}

// MustCompleteDays logs completions for the given day offsets relative to db.Now
// (0 is today, 1 yesterday).
func (db *TestDB) MustCompleteDays(habitID string, offsets ...int) {
	db.t.Helper()
	for _, offset := range offsets {
		entry := &model.HabitLog{HabitID: habitID, CompletedAt: db.Now.AddDate(0, 0, -offset)}
		if err := db.Storage.LogHabit(context.Background(), entry); err != nil {
			db.t.Fatalf("failed to log habit %s: %v", habitID, err)
		}
	}
}
