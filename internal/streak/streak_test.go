package streak

import (
	"testing"
	"time"

	"github.com/Veraticus/tend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

// done returns a completion n days before now at the given hour.
func done(n, hour int) model.HabitLog {
	d := now.AddDate(0, 0, -n)
	return model.HabitLog{
		HabitID:     "h1",
		CompletedAt: time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC),
	}
}

func skipped(n int) model.HabitLog {
	l := done(n, 9)
	l.Skipped = true
	return l
}

func TestCalculate_Empty(t *testing.T) {
	for _, logs := range [][]model.HabitLog{nil, {}} {
		got := Calculate(logs, now)
		assert.Equal(t, Info{StreakColor: "#9CA3AF"}, got)
	}
}

func TestCalculate_OnlySkips(t *testing.T) {
	got := Calculate([]model.HabitLog{skipped(0), skipped(1)}, now)

	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 0, got.LongestStreak)
	assert.Equal(t, 0, got.TotalCompletions)
	assert.Equal(t, 0, got.CompletionRate)
	assert.Equal(t, 0, got.StreakLevel)
}

func TestCalculate_CurrentStreak(t *testing.T) {
	tests := []struct {
		name     string
		logs     []model.HabitLog
		expected int
	}{
		{
			name:     "today yesterday and two days ago",
			logs:     []model.HabitLog{done(0, 8), done(1, 20), done(2, 7)},
			expected: 3,
		},
		{
			name:     "order of entries does not matter",
			logs:     []model.HabitLog{done(2, 7), done(0, 8), done(1, 20)},
			expected: 3,
		},
		{
			name:     "gap yesterday breaks the streak",
			logs:     []model.HabitLog{done(0, 8), done(2, 8), done(3, 8), done(4, 8)},
			expected: 1,
		},
		{
			name:     "skip yesterday breaks the streak",
			logs:     []model.HabitLog{done(0, 8), skipped(1), done(2, 8), done(3, 8)},
			expected: 1,
		},
		{
			name:     "nothing today means no current streak",
			logs:     []model.HabitLog{done(1, 8), done(2, 8), done(3, 8)},
			expected: 0,
		},
		{
			name:     "skip today means no current streak",
			logs:     []model.HabitLog{skipped(0), done(1, 8), done(2, 8)},
			expected: 0,
		},
		{
			name:     "duplicate entries on one day count once",
			logs:     []model.HabitLog{done(0, 8), done(0, 12), done(1, 8), done(1, 21)},
			expected: 2,
		},
		{
			name:     "completion and skip on the same day still completes it",
			logs:     []model.HabitLog{done(0, 8), skipped(0), done(1, 8)},
			expected: 2,
		},
		{
			name:     "future entries are ignored",
			logs:     []model.HabitLog{done(-1, 8), done(0, 8)},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.logs, now).CurrentStreak)
		})
	}
}

func TestCalculate_LongStreakAcrossMonths(t *testing.T) {
	var logs []model.HabitLog
	for i := 0; i < 45; i++ {
		logs = append(logs, done(i, 6))
	}

	got := Calculate(logs, now)

	assert.Equal(t, 45, got.CurrentStreak)
	assert.Equal(t, 45, got.LongestStreak)
	assert.Equal(t, 5, got.StreakLevel)
	assert.Equal(t, "🔥🔥🔥🔥", got.FireEmojis)
	assert.Equal(t, "#DC2626", got.StreakColor)
}

func TestCalculate_LongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		logs     []model.HabitLog
		expected int
	}{
		{
			name: "five day run then gap then two day run",
			logs: []model.HabitLog{
				done(20, 8), done(19, 8), done(18, 8), done(17, 8), done(16, 8),
				done(1, 8), done(0, 8),
			},
			expected: 5,
		},
		{
			name:     "single entry",
			logs:     []model.HabitLog{done(40, 8)},
			expected: 1,
		},
		{
			name: "duplicates are not increments and not breaks",
			logs: []model.HabitLog{
				done(10, 8), done(10, 9), done(9, 8), done(9, 22), done(8, 8),
			},
			expected: 3,
		},
		{
			name: "skips are excluded and break runs",
			logs: []model.HabitLog{
				done(10, 8), done(9, 8), skipped(8), done(7, 8), done(6, 8), done(5, 8),
			},
			expected: 3,
		},
		{
			name: "recent run longer than old one",
			logs: []model.HabitLog{
				done(30, 8), done(29, 8),
				done(3, 8), done(2, 8), done(1, 8), done(0, 8),
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.logs, now).LongestStreak)
		})
	}
}

func TestCalculate_CompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		logs     func() []model.HabitLog
		expected int
	}{
		{
			name: "fifteen completions in window",
			logs: func() []model.HabitLog {
				var logs []model.HabitLog
				for i := 0; i < 15; i++ {
					logs = append(logs, done(i*2, 8))
				}
				return logs
			},
			expected: 50,
		},
		{
			name: "entries older than thirty days are excluded",
			logs: func() []model.HabitLog {
				return []model.HabitLog{done(0, 8), done(31, 8), done(45, 8)}
			},
			expected: 3,
		},
		{
			name: "skips are excluded",
			logs: func() []model.HabitLog {
				return []model.HabitLog{done(0, 8), skipped(1), skipped(2)}
			},
			expected: 3,
		},
		{
			name: "rounds to nearest percent",
			logs: func() []model.HabitLog {
				return []model.HabitLog{done(0, 8), done(1, 8)}
			},
			expected: 7,
		},
		{
			name: "every day in window",
			logs: func() []model.HabitLog {
				var logs []model.HabitLog
				for i := 0; i < 30; i++ {
					logs = append(logs, done(i, 20))
				}
				return logs
			},
			expected: 100,
		},
		{
			name: "several entries per day are capped at one hundred",
			logs: func() []model.HabitLog {
				var logs []model.HabitLog
				for i := 0; i < 30; i++ {
					logs = append(logs, done(i, 8), done(i, 20))
				}
				return logs
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.logs(), now).CompletionRate)
		})
	}
}

func TestCalculate_WindowBoundaryIsInclusive(t *testing.T) {
	edge := model.HabitLog{HabitID: "h1", CompletedAt: now.AddDate(0, 0, -30)}
	justOutside := model.HabitLog{HabitID: "h1", CompletedAt: now.AddDate(0, 0, -30).Add(-time.Second)}

	assert.Equal(t, 3, Calculate([]model.HabitLog{edge}, now).CompletionRate)
	assert.Equal(t, 0, Calculate([]model.HabitLog{justOutside}, now).CompletionRate)
}

func TestCalculate_TotalCompletions(t *testing.T) {
	logs := []model.HabitLog{done(0, 8), done(100, 8), done(400, 8), skipped(1), done(0, 20)}
	assert.Equal(t, 4, Calculate(logs, now).TotalCompletions)
}

func TestCalculate_UsesNowLocationForDays(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	localNow := time.Date(2024, 6, 16, 8, 0, 0, 0, tokyo)

	// 22:00 UTC on June 15 is 07:00 on June 16 in Tokyo, so it counts as today.
	logs := []model.HabitLog{
		{HabitID: "h1", CompletedAt: time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)},
		{HabitID: "h1", CompletedAt: time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC)},
	}

	got := Calculate(logs, localNow)
	assert.Equal(t, 2, got.CurrentStreak)
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	logs := []model.HabitLog{done(2, 8), done(0, 8), done(1, 8)}
	original := append([]model.HabitLog(nil), logs...)

	_ = Calculate(logs, now)

	assert.Equal(t, original, logs)
}

func TestCalculate_Deterministic(t *testing.T) {
	logs := []model.HabitLog{done(0, 8), done(1, 8), skipped(2), done(3, 8), done(4, 8), done(5, 8)}

	first := Calculate(logs, now)
	second := Calculate(logs, now)

	require.Equal(t, first, second)
	assert.Equal(t, 2, first.CurrentStreak)
	assert.Equal(t, 3, first.LongestStreak)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		emojis string
		color  string
		streak int
		level  int
	}{
		{streak: -1, level: 0, emojis: "", color: "#9CA3AF"},
		{streak: 0, level: 0, emojis: "", color: "#9CA3AF"},
		{streak: 1, level: 1, emojis: "🌱", color: "#10B981"},
		{streak: 2, level: 1, emojis: "🌱", color: "#10B981"},
		{streak: 3, level: 2, emojis: "🔥", color: "#F59E0B"},
		{streak: 6, level: 2, emojis: "🔥", color: "#F59E0B"},
		{streak: 7, level: 3, emojis: "🔥🔥", color: "#F97316"},
		{streak: 13, level: 3, emojis: "🔥🔥", color: "#F97316"},
		{streak: 14, level: 4, emojis: "🔥🔥🔥", color: "#EF4444"},
		{streak: 29, level: 4, emojis: "🔥🔥🔥", color: "#EF4444"},
		{streak: 30, level: 5, emojis: "🔥🔥🔥🔥", color: "#DC2626"},
		{streak: 59, level: 5, emojis: "🔥🔥🔥🔥", color: "#DC2626"},
		{streak: 60, level: 6, emojis: "🔥🔥🔥🔥🔥", color: "#B91C1C"},
		{streak: 99, level: 6, emojis: "🔥🔥🔥🔥🔥", color: "#B91C1C"},
		{streak: 100, level: 7, emojis: "🔥🔥🔥🔥🔥💯", color: "#7C2D12"},
		{streak: 1000, level: 7, emojis: "🔥🔥🔥🔥🔥💯", color: "#7C2D12"},
	}

	for _, tt := range tests {
		got := TierFor(tt.streak)
		assert.Equal(t, tt.level, got.Level, "streak %d", tt.streak)
		assert.Equal(t, tt.emojis, got.Emojis, "streak %d", tt.streak)
		assert.Equal(t, tt.color, got.Color, "streak %d", tt.streak)
	}
}

func TestTiersAreOrdered(t *testing.T) {
	for i := 1; i < len(Tiers); i++ {
		assert.Greater(t, Tiers[i].MinDays, Tiers[i-1].MinDays)
		assert.Equal(t, Tiers[i-1].Level+1, Tiers[i].Level)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		expected string
		streak   int
	}{
		{streak: 0, expected: "Start your streak today!"},
		{streak: 1, expected: "Great start! Keep it going!"},
		{streak: 2, expected: "Building momentum!"},
		{streak: 6, expected: "Building momentum!"},
		{streak: 7, expected: "You're on fire!"},
		{streak: 13, expected: "You're on fire!"},
		{streak: 14, expected: "Incredible consistency!"},
		{streak: 29, expected: "Incredible consistency!"},
		{streak: 30, expected: "Unstoppable!"},
		{streak: 59, expected: "Unstoppable!"},
		{streak: 60, expected: "Legendary streak!"},
		{streak: 99, expected: "Legendary streak!"},
		{streak: 100, expected: "HALL OF FAME! 🏆"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Message(tt.streak), "streak %d", tt.streak)
	}
}
