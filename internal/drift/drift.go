// Package drift classifies how far contact with a person has fallen behind
// their preferred cadence.
//
// Classification is a pure function of the interaction history and "now". A
// person is ok while the days since last contact stay within three quarters of
// the cadence, due soon up to and including the cadence itself, and overdue
// after that. People who were never contacted are measured from the day their
// record was created.
package drift

import (
	"time"

	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/model"
)

// Status is the three-state drift classification.
type Status string

const (
	// StatusOK means contact is within the comfortable part of the cadence.
	StatusOK Status = "ok"
	// StatusDueSoon means the cadence is about to run out.
	StatusDueSoon Status = "dueSoon"
	// StatusOverdue means the cadence has been exceeded.
	StatusOverdue Status = "overdue"
)

// okFraction is the share of the cadence that still counts as ok.
const okFraction = 0.75

// Result is the outcome of classifying one person.
type Result struct {
	Status    Status
	DaysSince int
	// NeverContacted is set when DaysSince was measured from the record's creation.
	NeverContacted bool
}

// Classify derives days-since-contact and the drift status.
//
// The reference date is lastInteractionAt when present and createdAt otherwise.
// preferredCadenceDays must be positive; callers validate it beforehand.
func Classify(lastInteractionAt *time.Time, preferredCadenceDays int, createdAt, now time.Time) Result {
	reference := createdAt
	if lastInteractionAt != nil {
		reference = *lastInteractionAt
	}

	daysSince := dates.DaysBetween(now, reference)

	return Result{
		DaysSince:      daysSince,
		Status:         statusFor(daysSince, preferredCadenceDays),
		NeverContacted: lastInteractionAt == nil,
	}
}

func statusFor(daysSince, cadence int) Status {
	okThreshold := float64(cadence) * okFraction
	switch {
	case float64(daysSince) <= okThreshold:
		return StatusOK
	case daysSince <= cadence:
		return StatusDueSoon
	default:
		return StatusOverdue
	}
}

// IsImportantAndNeglected reports whether a high-priority person is overdue.
func IsImportantAndNeglected(priority model.Priority, status Status) bool {
	return priority == model.PriorityHigh && status == StatusOverdue
}

// PersonDrift is the derived drift view of a person.
type PersonDrift struct {
	Person                  model.Person
	Result                  Result
	IsImportantAndNeglected bool
}

// Evaluate classifies a person at now.
func Evaluate(person model.Person, now time.Time) PersonDrift {
	result := Classify(person.LastInteractionAt, person.PreferredCadenceDays, person.CreatedAt, now)
	return PersonDrift{
		Person:                  person,
		Result:                  result,
		IsImportantAndNeglected: IsImportantAndNeglected(person.Priority, result.Status),
	}
}

// EvaluateAll classifies every person at the same instant.
func EvaluateAll(people []model.Person, now time.Time) []PersonDrift {
	views := make([]PersonDrift, 0, len(people))
	for _, p := range people {
		views = append(views, Evaluate(p, now))
	}
	return views
}

// DaysOverdue returns how many days past the cadence the person is, or 0 if not overdue.
func (d PersonDrift) DaysOverdue() int {
	if over := d.Result.DaysSince - d.Person.PreferredCadenceDays; over > 0 {
		return over
	}
	return 0
}
