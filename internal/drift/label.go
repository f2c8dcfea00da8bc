package drift

import "fmt"

// Status colors.
const (
	ColorOK      = "#10B981"
	ColorDueSoon = "#F59E0B"
	ColorOverdue = "#EF4444"
)

// Color returns the hex color used to render a status.
func Color(status Status) string {
	switch status {
	case StatusDueSoon:
		return ColorDueSoon
	case StatusOverdue:
		return ColorOverdue
	default:
		return ColorOK
	}
}

// Label returns a short human description of a drift result.
func Label(result Result, cadence int) string {
	if result.NeverContacted {
		return "Never contacted"
	}

	switch result.Status {
	case StatusDueSoon:
		remaining := cadence - result.DaysSince
		if remaining <= 0 {
			return "Due today"
		}
		return fmt.Sprintf("Due in %s", pluralDays(remaining))
	case StatusOverdue:
		return fmt.Sprintf("%s overdue", pluralDays(result.DaysSince-cadence))
	default:
		if result.DaysSince == 0 {
			return "Contacted today"
		}
		return fmt.Sprintf("Contacted %s ago", pluralDays(result.DaysSince))
	}
}

// Title returns the display name of a status.
func (s Status) Title() string {
	switch s {
	case StatusDueSoon:
		return "Due Soon"
	case StatusOverdue:
		return "Overdue"
	default:
		return "All Good"
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
