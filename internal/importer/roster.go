// Package importer loads a YAML roster of people and habits into storage.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/model"
)

// Roster is the top-level import document.
type Roster struct {
	People []PersonEntry `yaml:"people"`
	Habits []HabitEntry  `yaml:"habits"`
}

// PersonEntry describes one person. LastContact is a YYYY-MM-DD date, an
// RFC 3339 timestamp, or one of "today" and "yesterday".
type PersonEntry struct {
	Name            string   `yaml:"name"`
	Priority        string   `yaml:"priority"`
	LastContact     string   `yaml:"last_contact"`
	LastContactType string   `yaml:"last_contact_type"`
	Phone           string   `yaml:"phone"`
	Email           string   `yaml:"email"`
	Birthday        string   `yaml:"birthday"`
	Notes           string   `yaml:"notes"`
	Tags            []string `yaml:"tags"`
	CadenceDays     int      `yaml:"cadence_days"`
}

// HabitEntry describes one habit.
type HabitEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

// Parse decodes a roster. Unknown fields are rejected so typos surface early.
func Parse(r io.Reader) (*Roster, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var roster Roster
	if err := decoder.Decode(&roster); err != nil {
		if errors.Is(err, io.EOF) {
			return &roster, nil
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidRoster, err)
	}
	return &roster, nil
}

// Len is the number of entries an import will process.
func (r *Roster) Len() int {
	return len(r.People) + len(r.Habits)
}

// ToPerson converts the entry, filling the cadence with defaultCadence when
// unset. LastContact is read relative to now and lands in now's location.
func (e PersonEntry) ToPerson(defaultCadence int, now time.Time) (*model.Person, error) {
	priority, err := model.ParsePriority(e.Priority)
	if err != nil {
		return nil, err
	}

	person := &model.Person{
		FullName:             strings.TrimSpace(e.Name),
		Priority:             priority,
		Tags:                 model.NormalizeTags(e.Tags),
		PreferredCadenceDays: e.CadenceDays,
		Phone:                e.Phone,
		Email:                e.Email,
		Birthday:             e.Birthday,
		Notes:                e.Notes,
	}
	if person.PreferredCadenceDays == 0 {
		person.PreferredCadenceDays = defaultCadence
	}

	if e.LastContact != "" {
		at, err := dates.Parse(e.LastContact, now)
		if err != nil {
			return nil, fmt.Errorf("last_contact: %w", err)
		}
		kind := model.InteractionOther
		if e.LastContactType != "" {
			if kind, err = model.ParseInteractionType(e.LastContactType); err != nil {
				return nil, err
			}
		}
		person.LastInteractionAt = &at
		person.LastInteractionType = kind
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}
	return person, nil
}

// ToHabit converts the entry.
func (e HabitEntry) ToHabit() (*model.Habit, error) {
	habit := &model.Habit{
		Title:       strings.TrimSpace(e.Title),
		Description: e.Description,
		Icon:        e.Icon,
		Color:       e.Color,
	}
	if err := habit.Validate(); err != nil {
		return nil, err
	}
	return habit, nil
}
