package report

import (
	"time"

	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/streak"
)

// HabitHistory is a habit together with its log entries.
type HabitHistory struct {
	Habit model.Habit
	Logs  []model.HabitLog
}

// HabitProgress is a habit's streak and today's state.
type HabitProgress struct {
	Habit        model.Habit
	Streak       streak.Info
	DoneToday    bool
	SkippedToday bool
}

// Summary is the dashboard at a single instant.
type Summary struct {
	MostOverdue  *drift.PersonDrift
	BestStreak   *HabitProgress
	Greeting     string
	Habits       []HabitProgress
	OverdueCount int
	HabitsDone   int
}

// MostOverdueDays is how far past cadence MostOverdue is, or 0 when nobody is overdue.
func (s Summary) MostOverdueDays() int {
	if s.MostOverdue == nil {
		return 0
	}
	return s.MostOverdue.DaysOverdue()
}

// Progress computes streaks and today's state for each habit. Archived habits are skipped.
func Progress(habits []HabitHistory, now time.Time) []HabitProgress {
	out := make([]HabitProgress, 0, len(habits))
	for _, h := range habits {
		if h.Habit.Archived {
			continue
		}
		out = append(out, ProgressOf(h, now))
	}
	return out
}

// ProgressOf computes one habit's streak and today's state.
func ProgressOf(h HabitHistory, now time.Time) HabitProgress {
	p := HabitProgress{
		Habit:  h.Habit,
		Streak: streak.Calculate(h.Logs, now),
	}
	for _, entry := range h.Logs {
		if !dates.SameDay(now, entry.CompletedAt) {
			continue
		}
		// A completion anywhere in the day wins over a skip.
		if entry.Skipped {
			p.SkippedToday = !p.DoneToday
		} else {
			p.DoneToday = true
			p.SkippedToday = false
		}
	}
	return p
}

// Dashboard builds the summary. The most overdue person is the one furthest past
// their cadence; ties go to the earlier entry in people.
func Dashboard(people []model.Person, habits []HabitHistory, now time.Time) Summary {
	summary := Summary{
		Greeting: dates.Greeting(now),
		Habits:   Progress(habits, now),
	}

	for _, view := range drift.EvaluateAll(people, now) {
		if view.Result.Status != drift.StatusOverdue {
			continue
		}
		summary.OverdueCount++
		if summary.MostOverdue == nil || view.DaysOverdue() > summary.MostOverdue.DaysOverdue() {
			v := view
			summary.MostOverdue = &v
		}
	}

	for i := range summary.Habits {
		h := &summary.Habits[i]
		if h.DoneToday {
			summary.HabitsDone++
		}
		if h.Streak.CurrentStreak > 0 &&
			(summary.BestStreak == nil || h.Streak.CurrentStreak > summary.BestStreak.Streak.CurrentStreak) {
			summary.BestStreak = h
		}
	}

	return summary
}
