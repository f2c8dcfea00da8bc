// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tend/internal/model"
)

// PersonFilter narrows person listings.
type PersonFilter struct {
	Tag      string
	Priority model.Priority
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Person operations
	CreatePerson(ctx context.Context, person *model.Person) error
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	FindPersonByName(ctx context.Context, name string) (*model.Person, error)
	ListPeople(ctx context.Context, filter PersonFilter) ([]model.Person, error)
	UpdatePerson(ctx context.Context, person *model.Person) error
	DeletePerson(ctx context.Context, id string) error

	// Interaction operations
	LogInteraction(ctx context.Context, interaction *model.Interaction) error
	GetInteractions(ctx context.Context, personID string, limit int) ([]model.Interaction, error)

	// Habit operations
	CreateHabit(ctx context.Context, habit *model.Habit) error
	GetHabit(ctx context.Context, id string) (*model.Habit, error)
	FindHabitByTitle(ctx context.Context, title string) (*model.Habit, error)
	ListHabits(ctx context.Context, includeArchived bool) ([]model.Habit, error)
	ArchiveHabit(ctx context.Context, id string) error

	// Habit log operations
	LogHabit(ctx context.Context, entry *model.HabitLog) error
	ToggleCompletion(ctx context.Context, habitID string, at time.Time) (bool, error)
	GetHabitLogs(ctx context.Context, habitID string) ([]model.HabitLog, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
