package testutil

import (
	"time"

	"github.com/Veraticus/tend/internal/model"
)

// DefaultNow is the clock used by test databases unless overridden.
var DefaultNow = time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)

// PersonBuilder provides a fluent interface for constructing test people.
type PersonBuilder struct {
	person model.Person
	now    time.Time
}

// NewPerson starts a person with a 14-day cadence, created long before DefaultNow.
func NewPerson(name string) *PersonBuilder {
	return &PersonBuilder{
		now: DefaultNow,
		person: model.Person{
			FullName:             name,
			Priority:             model.PriorityNormal,
			PreferredCadenceDays: 14,
			CreatedAt:            DefaultNow.AddDate(-1, 0, 0),
		},
	}
}

// RelativeTo changes the reference time used by ContactedDaysAgo.
func (b *PersonBuilder) RelativeTo(now time.Time) *PersonBuilder {
	b.now = now
	return b
}

// Cadence sets the preferred cadence in days.
func (b *PersonBuilder) Cadence(days int) *PersonBuilder {
	b.person.PreferredCadenceDays = days
	return b
}

// Priority sets the priority.
func (b *PersonBuilder) Priority(p model.Priority) *PersonBuilder {
	b.person.Priority = p
	return b
}

// Tags sets the tags.
func (b *PersonBuilder) Tags(tags ...string) *PersonBuilder {
	b.person.Tags = tags
	return b
}

// ContactedDaysAgo sets the last interaction to n days before the reference time.
func (b *PersonBuilder) ContactedDaysAgo(n int, kind model.InteractionType) *PersonBuilder {
	at := b.now.AddDate(0, 0, -n)
	b.person.LastInteractionAt = &at
	b.person.LastInteractionType = kind
	return b
}

// CreatedDaysAgo sets the creation time to n days before the reference time.
func (b *PersonBuilder) CreatedDaysAgo(n int) *PersonBuilder {
	b.person.CreatedAt = b.now.AddDate(0, 0, -n)
	return b
}

// Build returns a copy of the person.
func (b *PersonBuilder) Build() *model.Person {
	p := b.person
	p.Tags = append([]string(nil), b.person.Tags...)
	return &p
}

// NewHabit returns an active habit with the given title.
func NewHabit(title string) *model.Habit {
	return &model.Habit{
		Title:     title,
		Icon:      "✅",
		Color:     "#10B981",
		CreatedAt: DefaultNow.AddDate(0, -1, 0),
	}
}

// CompletedDays returns completions for day offsets relative to now (0 is today).
func CompletedDays(habitID string, now time.Time, offsets ...int) []model.HabitLog {
	logs := make([]model.HabitLog, 0, len(offsets))
	for _, offset := range offsets {
		logs = append(logs, model.HabitLog{
			HabitID:     habitID,
			CompletedAt: now.AddDate(0, 0, -offset),
		})
	}
	return logs
}
