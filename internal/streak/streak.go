// Package streak derives habit streaks and completion statistics from a sparse
// log of daily completions and skips.
package streak

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/model"
)

const (
	// RateWindowDays is the length of the completion-rate window.
	RateWindowDays = 30
	maxRate        = 100
)

// Info is the derived streak view of a habit.
type Info struct {
	FireEmojis       string
	StreakColor      string
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletionRate   int
	StreakLevel      int
}

// Calculate derives streak statistics from logs at now.
//
// Skipped entries never count as completions: a skip breaks the current streak
// exactly like a missing day. The logs slice is not modified.
func Calculate(logs []model.HabitLog, now time.Time) Info {
	loc := now.Location()

	// Completed calendar days keyed by DayKey.
	completedDays := make(map[string]time.Time, len(logs))
	total := 0
	recent := 0
	windowStart := now.AddDate(0, 0, -RateWindowDays)

	for _, entry := range logs {
		if entry.Skipped {
			continue
		}
		total++
		completedDays[dates.DayKey(entry.CompletedAt, loc)] = dates.StartOfDay(entry.CompletedAt.In(loc))
		if !entry.CompletedAt.Before(windowStart) {
			recent++
		}
	}

	current := currentStreak(completedDays, now)
	tier := TierFor(current)

	return Info{
		CurrentStreak:    current,
		LongestStreak:    longestStreak(completedDays),
		TotalCompletions: total,
		CompletionRate:   completionRate(recent),
		StreakLevel:      tier.Level,
		FireEmojis:       tier.Emojis,
		StreakColor:      tier.Color,
	}
}

// currentStreak counts consecutive completed days ending today.
func currentStreak(completedDays map[string]time.Time, now time.Time) int {
	streak := 0
	day := dates.StartOfDay(now)
	for {
		if _, ok := completedDays[dates.DayKey(day, nil)]; !ok {
			return streak
		}
		streak++
		day = dates.AddDays(day, -1)
	}
}

// longestStreak finds the longest run of consecutive completed days anywhere in history.
func longestStreak(completedDays map[string]time.Time) int {
	if len(completedDays) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(completedDays))
	for _, day := range completedDays {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if dates.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// completionRate is capped at 100 because a day can carry more than one entry.
func completionRate(recent int) int {
	rate := int(math.Round(float64(recent) / RateWindowDays * 100))
	if rate > maxRate {
		return maxRate
	}
	return rate
}
