// Package storage provides the data persistence layer for the tend application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tend/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidPerson      = errors.New("invalid person")
	ErrInvalidInteraction = errors.New("invalid interaction")
	ErrInvalidHabit       = errors.New("invalid habit")
	ErrInvalidHabitLog    = errors.New("invalid habit log")
	ErrCorruptRow         = errors.New("corrupt row")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validatePerson(person *model.Person) error {
	if person == nil {
		return fmt.Errorf("%w: person", ErrNilParameter)
	}
	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPerson, err)
	}
	return nil
}

func validateInteraction(interaction *model.Interaction) error {
	if interaction == nil {
		return fmt.Errorf("%w: interaction", ErrNilParameter)
	}
	if err := interaction.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInteraction, err)
	}
	return nil
}

func validateHabit(habit *model.Habit) error {
	if habit == nil {
		return fmt.Errorf("%w: habit", ErrNilParameter)
	}
	if err := habit.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHabit, err)
	}
	return nil
}

func validateHabitLog(entry *model.HabitLog) error {
	if entry == nil {
		return fmt.Errorf("%w: habit log", ErrNilParameter)
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHabitLog, err)
	}
	return nil
}
