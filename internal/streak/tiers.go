package streak

// Tier is the presentation data for a range of streak lengths.
type Tier struct {
	Emojis  string
	Color   string
	MinDays int
	Level   int
}

// Tiers is ordered by MinDays. A streak belongs to the last tier whose MinDays it reaches.
var Tiers = []Tier{
	{MinDays: 0, Level: 0, Emojis: "", Color: "#9CA3AF"},
	{MinDays: 1, Level: 1, Emojis: "🌱", Color: "#10B981"},
	{MinDays: 3, Level: 2, Emojis: "🔥", Color: "#F59E0B"},
	{MinDays: 7, Level: 3, Emojis: "🔥🔥", Color: "#F97316"},
	{MinDays: 14, Level: 4, Emojis: "🔥🔥🔥", Color: "#EF4444"},
	{MinDays: 30, Level: 5, Emojis: "🔥🔥🔥🔥", Color: "#DC2626"},
	{MinDays: 60, Level: 6, Emojis: "🔥🔥🔥🔥🔥", Color: "#B91C1C"},
	{MinDays: 100, Level: 7, Emojis: "🔥🔥🔥🔥🔥💯", Color: "#7C2D12"},
}

// TierFor returns the presentation tier of a streak length. Negative lengths map to tier 0.
func TierFor(streak int) Tier {
	return lookup(Tiers, streak, func(t Tier) int { return t.MinDays })
}

type encouragement struct {
	text    string
	minDays int
}

var encouragements = []encouragement{
	{minDays: 0, text: "Start your streak today!"},
	{minDays: 1, text: "Great start! Keep it going!"},
	{minDays: 2, text: "Building momentum!"},
	{minDays: 7, text: "You're on fire!"},
	{minDays: 14, text: "Incredible consistency!"},
	{minDays: 30, text: "Unstoppable!"},
	{minDays: 60, text: "Legendary streak!"},
	{minDays: 100, text: "HALL OF FAME! 🏆"},
}

// Message returns an encouragement line for a streak length.
func Message(streak int) string {
	return lookup(encouragements, streak, func(e encouragement) int { return e.minDays }).text
}

// lookup returns the last row whose lower bound is <= value, or the first row.
func lookup[T any](rows []T, value int, lowerBound func(T) int) T {
	match := rows[0]
	for _, row := range rows[1:] {
		if lowerBound(row) > value {
			break
		}
		match = row
	}
	return match
}
