// Package themes holds the color themes for the review screen.
package themes

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Card          lipgloss.Style
	Draft         lipgloss.Style
	DraftKey      lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Border        lipgloss.Color
}

type palette struct {
	primary, accent, foreground, muted, border string
	success, warning, danger                   string
}

func newTheme(name string, p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	return Theme{
		Name:    name,
		Primary: lipgloss.Color(p.primary),
		Accent:  lipgloss.Color(p.accent),
		Border:  lipgloss.Color(p.border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Normal: lipgloss.NewStyle().Foreground(fg),
		Bold:   lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(1, 2),
		Draft: lipgloss.NewStyle().
			Foreground(fg).
			PaddingLeft(4),
		DraftKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.accent)),

		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(p.warning)).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme("default", palette{
	primary:    "#10b981",
	accent:     "#8b5cf6",
	foreground: "#fafafa",
	muted:      "#737373",
	border:     "#404040",
	success:    "#10b981",
	warning:    "#f59e0b",
	danger:     "#ef4444",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme("catppuccin", palette{
	primary:    "#a6e3a1",
	accent:     "#cba6f7",
	foreground: "#cdd6f4",
	muted:      "#6c7086",
	border:     "#45475a",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	danger:     "#f38ba8",
})

// Light suits terminals with a light background.
var Light = newTheme("light", palette{
	primary:    "#047857",
	accent:     "#6d28d9",
	foreground: "#111827",
	muted:      "#6b7280",
	border:     "#d1d5db",
	success:    "#047857",
	warning:    "#b45309",
	danger:     "#b91c1c",
})

var registry = map[string]Theme{
	Default.Name:         Default,
	CatppuccinMocha.Name: CatppuccinMocha,
	Light.Name:           Light,
}

// ByName looks a theme up case-insensitively.
func ByName(name string) (Theme, bool) {
	t, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names lists the registered themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
