package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/outreach"
)

var styleLabels = map[outreach.Style]string{
	outreach.StyleCasual:   "Casual",
	outreach.StyleFriendly: "Friendly",
	outreach.StyleDirect:   "Direct",
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateDone {
		return m.renderDone()
	}

	sections := []string{
		m.renderHeader(),
		m.renderCard(),
		m.renderDrafts(),
		m.renderStatus(),
		m.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(fmt.Sprintf("🌿 Review  %d/%d", m.index+1, len(m.queue)))
	bar := m.progress.ViewAs(float64(m.index) / float64(len(m.queue)))
	return lipgloss.JoinVertical(lipgloss.Left, title, bar, "")
}

func (m Model) renderCard() string {
	view := m.current()
	person := view.Person

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color(drift.Color(view.Result.Status))).
		Render("● " + drift.Label(view.Result, person.PreferredCadenceDays))

	lines := []string{m.theme.Bold.Render(person.FullName) + "  " + status}

	meta := []string{fmt.Sprintf("every %d days", person.PreferredCadenceDays), string(person.Priority) + " priority"}
	if view.IsImportantAndNeglected {
		meta = append(meta, m.theme.StatusError.Render("important & neglected"))
	}
	lines = append(lines, m.theme.Muted.Render(strings.Join(meta, " · ")))

	if len(person.Tags) > 0 {
		lines = append(lines, m.theme.Muted.Render("tags: "+strings.Join(person.Tags, ", ")))
	}
	if !view.Result.NeverContacted && person.LastInteractionType != "" {
		lines = append(lines, m.theme.Muted.Render("last: "+strings.ReplaceAll(string(person.LastInteractionType), "_", " ")))
	}

	return m.theme.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDrafts() string {
	bindings := map[outreach.Style]key.Binding{
		outreach.StyleCasual:   m.keymap.Casual,
		outreach.StyleFriendly: m.keymap.Friendly,
		outreach.StyleDirect:   m.keymap.Direct,
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, style := range outreach.Styles {
		label := fmt.Sprintf("[%s] %s", bindings[style].Help().Key, styleLabels[style])
		b.WriteString(m.theme.DraftKey.Render(label))
		b.WriteString("\n")
		b.WriteString(m.theme.Draft.Render(m.drafts.Get(style)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	switch {
	case m.state == StateSaving:
		return m.spinner.View() + " " + m.theme.Muted.Render("Logging...")
	case m.lastError != nil:
		return m.theme.StatusError.Render("✗ " + m.lastError.Error())
	case m.status != "":
		return m.theme.StatusSuccess.Render("✓ " + m.status)
	default:
		return ""
	}
}

func (m Model) renderHelp() string {
	var groups [][]key.Binding
	if m.showHelp {
		groups = m.keymap.FullHelp()
	} else {
		groups = [][]key.Binding{m.keymap.ShortHelp()}
	}

	rows := make([]string, 0, len(groups))
	for _, group := range groups {
		parts := make([]string, 0, len(group))
		for _, b := range group {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
		rows = append(rows, strings.Join(parts, " • "))
	}
	return "\n" + m.theme.Subtitle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderDone() string {
	summary := fmt.Sprintf("Logged %d, skipped %d.", m.logged, m.skipped)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("🌿 All caught up!"),
		m.theme.Normal.Render(summary),
	) + "\n"
}
