// Package cli provides styled terminal output and line-based prompting.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tend/internal/drift"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#10B981")
	// AccentColor highlights names and numbers.
	AccentColor  = lipgloss.Color("#8B5CF6")
	SuccessColor = lipgloss.Color(drift.ColorOK)
	WarningColor = lipgloss.Color(drift.ColorDueSoon)
	ErrorColor   = lipgloss.Color(drift.ColorOverdue)
	InfoColor    = lipgloss.Color("#60A5FA")
	SubtleColor  = lipgloss.Color("#6B7280")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	AccentStyle  = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(1, 2)

	// SectionStyle underlines bucket headings in people listings.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(SubtleColor)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	LeafIcon     = "🌿"
	PersonIcon   = "👤"
	HabitIcon    = "✅"
	MessageIcon  = "💬"
	CalendarIcon = "📅"
	StarIcon     = "⭐"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(LeafIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}

// StatusStyle returns the foreground style for a drift status.
func StatusStyle(status drift.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(drift.Color(status)))
}

// FormatStatus renders a colored dot followed by the drift label.
func FormatStatus(result drift.Result, cadenceDays int) string {
	return StatusStyle(result.Status).Render("● " + drift.Label(result, cadenceDays))
}

// FormatStreak renders a streak count in its tier color, e.g. "🔥🔥 7 days".
func FormatStreak(emojis, color string, days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	text := fmt.Sprintf("%d %s", days, unit)
	if emojis != "" {
		text = emojis + " " + text
	}
	if color == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// SectionHeader renders a bucket heading with its member count.
func SectionHeader(title string, count int) string {
	return SectionStyle.Render(fmt.Sprintf("%s (%d)", title, count))
}
