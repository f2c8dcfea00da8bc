package model

import (
	"fmt"
	"strings"
	"time"
)

// Habit is a recurring practice the user tracks day by day.
type Habit struct {
	CreatedAt   time.Time
	ID          string
	Title       string
	Description string
	Icon        string
	Color       string
	Archived    bool
}

// Validate ensures the habit has valid data.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title is required")
	}
	if h.Color != "" && !strings.HasPrefix(h.Color, "#") {
		return fmt.Errorf("habit color must be a hex code, got %q", h.Color)
	}
	return nil
}

// HabitLog records one day of a habit: either a completion or an explicit skip.
type HabitLog struct {
	CompletedAt time.Time
	ID          string
	HabitID     string
	SkipReason  string
	Note        string
	Skipped     bool
}

// Validate ensures the log entry has valid data.
func (l *HabitLog) Validate() error {
	if l.HabitID == "" {
		return fmt.Errorf("habit ID is required")
	}
	if l.CompletedAt.IsZero() {
		return fmt.Errorf("completed at is required")
	}
	if !l.Skipped && l.SkipReason != "" {
		return fmt.Errorf("skip reason is only valid on skipped entries")
	}
	return nil
}
