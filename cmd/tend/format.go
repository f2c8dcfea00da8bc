package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tend/internal/cli"
	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/outreach"
	"github.com/Veraticus/tend/internal/report"
	"github.com/Veraticus/tend/internal/streak"
)

const dayFormat = "Mon Jan 2, 2006"

func renderBuckets(w io.Writer, buckets []report.Bucket) {
	for i, bucket := range report.NonEmpty(buckets) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, cli.SectionHeader(bucket.Title, len(bucket.People)))
		for _, view := range bucket.People {
			fmt.Fprintln(w, renderPersonLine(view))
		}
	}
}

// renderPersonLine is one row of the people list: name, status, and tags.
func renderPersonLine(view drift.PersonDrift) string {
	var b strings.Builder
	b.WriteString("  ")
	if view.Person.Priority == model.PriorityHigh {
		b.WriteString(cli.StarIcon + " ")
	}
	b.WriteString(cli.BoldStyle.Render(view.Person.FullName))
	b.WriteString("  ")
	b.WriteString(cli.FormatStatus(view.Result, view.Person.PreferredCadenceDays))
	if len(view.Person.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(cli.SubtleStyle.Render("#" + strings.Join(view.Person.Tags, " #")))
	}
	return b.String()
}

func renderPersonDetail(view drift.PersonDrift, interactions []model.Interaction) string {
	p := view.Person
	lines := []string{
		cli.FormatStatus(view.Result, p.PreferredCadenceDays),
		fmt.Sprintf("Priority: %s   Cadence: every %s", p.Priority, plural(p.PreferredCadenceDays, "day", "days")),
	}
	if view.IsImportantAndNeglected {
		lines = append(lines, cli.ErrorStyle.Render("Important and neglected"))
	}
	if p.NeverContacted() {
		lines = append(lines, "Last contact: never")
	} else {
		lines = append(lines, fmt.Sprintf("Last contact: %s (%s)",
			p.LastInteractionAt.Format(dayFormat), interactionLabel(p.LastInteractionType)))
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(p.Tags, ", "))
	}
	for _, field := range []struct{ label, value string }{
		{"Phone", p.Phone},
		{"Email", p.Email},
		{"Birthday", p.Birthday},
		{"Notes", p.Notes},
	} {
		if field.value != "" {
			lines = append(lines, field.label+": "+field.value)
		}
	}

	lines = append(lines, "", cli.BoldStyle.Render("Recent interactions"))
	if len(interactions) == 0 {
		lines = append(lines, cli.SubtleStyle.Render("  none yet"))
	}
	for _, i := range interactions {
		lines = append(lines, renderInteraction(i))
	}

	return cli.RenderBox(cli.PersonIcon+" "+p.FullName, strings.Join(lines, "\n"))
}

func renderInteraction(i model.Interaction) string {
	line := fmt.Sprintf("  %s %s  %s", cli.CalendarIcon, i.OccurredAt.Format(dayFormat), interactionLabel(i.Type))
	if i.Summary != "" {
		line += cli.SubtleStyle.Render("  " + i.Summary)
	}
	return line
}

func interactionLabel(t model.InteractionType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func renderSuggestions(view drift.PersonDrift, drafts outreach.Suggestions) string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Reach out to " + view.Person.FullName))
	b.WriteString("\n")
	b.WriteString(cli.FormatStatus(view.Result, view.Person.PreferredCadenceDays))
	b.WriteString("\n\n")
	for _, style := range outreach.Styles {
		b.WriteString(cli.AccentStyle.Render(fmt.Sprintf("%s %s", cli.MessageIcon, titleCase(string(style)))))
		b.WriteString("\n  ")
		b.WriteString(drafts.Get(style))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHabitLine(p report.HabitProgress) string {
	mark := "○"
	switch {
	case p.DoneToday:
		mark = cli.SuccessStyle.Render("●")
	case p.SkippedToday:
		mark = cli.SubtleStyle.Render("–")
	}

	title := p.Habit.Title
	if p.Habit.Icon != "" {
		title = p.Habit.Icon + " " + title
	}
	if p.Habit.Archived {
		title += cli.SubtleStyle.Render(" (archived)")
	}

	return fmt.Sprintf("  %s %s  %s", mark, cli.BoldStyle.Render(title),
		cli.FormatStreak(p.Streak.FireEmojis, p.Streak.StreakColor, p.Streak.CurrentStreak))
}

func renderHabitDetail(habit model.Habit, info streak.Info, logs []model.HabitLog, now time.Time, days int) string {
	lines := []string{
		fmt.Sprintf("Current streak: %s", cli.FormatStreak(info.FireEmojis, info.StreakColor, info.CurrentStreak)),
		fmt.Sprintf("Longest streak: %s", plural(info.LongestStreak, "day", "days")),
		fmt.Sprintf("Completions:    %d total, %d%% of the last %d days", info.TotalCompletions, info.CompletionRate, streak.RateWindowDays),
		cli.SubtleStyle.Render(streak.Message(info.CurrentStreak)),
		"",
		renderCalendar(logs, now, days),
	}
	if habit.Description != "" {
		lines = append([]string{habit.Description, ""}, lines...)
	}

	title := cli.HabitIcon + " " + habit.Title
	if habit.Icon != "" {
		title = habit.Icon + " " + habit.Title
	}
	return cli.RenderBox(title, strings.Join(lines, "\n"))
}

// renderCalendar draws the last days as a strip of cells, oldest on the left:
// ● done, – skipped, · nothing logged.
func renderCalendar(logs []model.HabitLog, now time.Time, days int) string {
	state := make(map[string]bool, len(logs))
	for _, entry := range logs {
		key := dates.DayKey(entry.CompletedAt, now.Location())
		state[key] = state[key] || !entry.Skipped
	}

	cells := make([]string, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		key := dates.DayKey(dates.AddDays(now, -offset), nil)
		done, logged := state[key]
		switch {
		case done:
			cells = append(cells, cli.SuccessStyle.Render("●"))
		case logged:
			cells = append(cells, cli.SubtleStyle.Render("–"))
		default:
			cells = append(cells, cli.SubtleStyle.Render("·"))
		}
	}
	return strings.Join(cells, " ")
}

func renderDashboard(s report.Summary) string {
	sections := []string{cli.FormatTitle(s.Greeting)}

	people := cli.FormatSuccess("Everyone is up to date")
	if s.OverdueCount > 0 {
		people = cli.WarningStyle.Render(fmt.Sprintf("%s overdue", plural(s.OverdueCount, "person", "people")))
		if s.MostOverdue != nil {
			people += fmt.Sprintf("\nMost overdue: %s (%s past cadence)",
				cli.BoldStyle.Render(s.MostOverdue.Person.FullName),
				plural(s.MostOverdueDays(), "day", "days"))
		}
	}
	sections = append(sections, cli.RenderBox(cli.PersonIcon+" People", people))

	habits := cli.SubtleStyle.Render("No habits yet. Add one with 'tend habits add <title>'.")
	if len(s.Habits) > 0 {
		lines := []string{fmt.Sprintf("%d of %d done today", s.HabitsDone, len(s.Habits))}
		if s.BestStreak != nil {
			lines = append(lines, fmt.Sprintf("Best streak: %s %s",
				cli.BoldStyle.Render(s.BestStreak.Habit.Title),
				cli.FormatStreak(s.BestStreak.Streak.FireEmojis, s.BestStreak.Streak.StreakColor, s.BestStreak.Streak.CurrentStreak)))
		}
		lines = append(lines, "")
		for _, h := range s.Habits {
			lines = append(lines, renderHabitLine(h))
		}
		habits = strings.Join(lines, "\n")
	}
	sections = append(sections, cli.RenderBox(cli.HabitIcon+" Habits", habits))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
