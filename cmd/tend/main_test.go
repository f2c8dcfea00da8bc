package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata" // zone lookups on minimal systems

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tend/internal/common"
)

// runTend executes one command line against dbPath and returns everything written.
func runTend(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return filepath.Join(t.TempDir(), "nested", "tend.db")
}

func TestPeopleWorkflow(t *testing.T) {
	db := setupCLI(t)
	monthAgo := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	steps := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name: "add overdue person",
			args: []string{"people", "add", "Sarah Chen", "--priority", "high", "--tags", "family",
				"--last-contact", monthAgo, "--last-type", "call"},
			want: []string{"Added Sarah Chen", "every 14 days", "high priority"},
		},
		{
			name: "add with cadence",
			args: []string{"people", "add", "Marcus Webb", "--cadence", "30"},
			want: []string{"Added Marcus Webb", "every 30 days"},
		},
		{
			name: "list buckets",
			args: []string{"people", "list"},
			want: []string{"Important & Neglected (1)", "Sarah Chen", "16 days overdue", "#family", "All Good (1)", "Marcus Webb"},
		},
		{
			name: "suggest",
			args: []string{"people", "suggest", "sarah"},
			want: []string{"Reach out to Sarah Chen", "Casual", "Friendly", "Direct", "Sarah"},
		},
		{
			name: "log interaction",
			args: []string{"people", "log", "sarah", "--type", "in-person", "--note", "lunch downtown"},
			want: []string{"Logged in person with Sarah Chen", "Contacted today"},
		},
		{
			name: "show",
			args: []string{"people", "show", "Sarah Chen"},
			want: []string{"Sarah Chen", "Priority: high", "Last contact:", "(in person)", "Recent interactions", "lunch downtown"},
		},
		{
			name:  "log asks for the type",
			stdin: "carrier pigeon\nemail\n",
			args:  []string{"people", "log", "marcus"},
			want:  []string{"Please choose one of", "Logged email with Marcus Webb"},
		},
		{
			name: "edit",
			args: []string{"people", "edit", "marcus", "--cadence", "7", "--email", "marcus@example.com"},
			want: []string{"Updated Marcus Webb"},
		},
		{
			name:  "delete declined",
			stdin: "n\n",
			args:  []string{"people", "delete", "marcus"},
			want:  []string{"Kept Marcus Webb"},
		},
		{
			name:  "delete confirmed",
			stdin: "y\n",
			args:  []string{"people", "delete", "marcus"},
			want:  []string{"Deleted Marcus Webb"},
		},
		{
			name: "dashboard",
			args: []string{"dashboard"},
			want: []string{"Everyone is up to date", "No habits yet"},
		},
	}

	for _, step := range steps {
		out, err := runTend(t, db, step.stdin, step.args...)
		require.NoError(t, err, step.name)
		for _, want := range step.want {
			assert.Contains(t, out, want, step.name)
		}
	}

	_, err := runTend(t, db, "", "people", "show", "Marcus")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHabitsWorkflow(t *testing.T) {
	db := setupCLI(t)

	steps := []struct {
		name string
		args []string
		want []string
	}{
		{"add", []string{"habits", "add", "Drink water", "--icon", "💧"}, []string{"Now tracking Drink water"}},
		{"done", []string{"habits", "done", "drink"}, []string{"Done: Drink water", "1 day", "Great start!"}},
		{"backfill", []string{"habits", "done", "drink", "--when", "yesterday"}, []string{"2 days"}},
		{"list", []string{"habits", "list"}, []string{"💧 Drink water", "2 days"}},
		{"toggle clears today", []string{"habits", "toggle", "drink"}, []string{"Cleared today for Drink water", "0 days"}},
		{"skip", []string{"habits", "skip", "drink", "--reason", "sick"}, []string{"Skipped: Drink water"}},
		{"show", []string{"habits", "show", "Drink water", "--days", "7"}, []string{"Longest streak: 1 day", "Completions:    1 total"}},
		{"archive", []string{"habits", "archive", "drink"}, []string{"Archived Drink water"}},
		{"list hides archived", []string{"habits", "list"}, []string{"No habits yet"}},
		{"list all", []string{"habits", "list", "--all"}, []string{"Drink water", "(archived)"}},
	}

	for _, step := range steps {
		out, err := runTend(t, db, "", step.args...)
		require.NoError(t, err, step.name)
		for _, want := range step.want {
			assert.Contains(t, out, want, step.name)
		}
	}
}

func TestHabitsTimestampUsesConfiguredZone(t *testing.T) {
	db := setupCLI(t)
	t.Setenv("TEND_DISPLAY_TIMEZONE", "Pacific/Kiritimati")

	loc, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	// Local midnight is 10:00 UTC on the previous calendar day.
	midnight := time.Now().In(loc)
	midnight = time.Date(midnight.Year(), midnight.Month(), midnight.Day(), 0, 0, 0, 0, loc)

	_, err = runTend(t, db, "", "habits", "add", "Stretch")
	require.NoError(t, err)

	out, err := runTend(t, db, "", "habits", "done", "stretch", "--when", midnight.UTC().Format(time.RFC3339))
	require.NoError(t, err)
	assert.Contains(t, out, "1 day")

	out, err = runTend(t, db, "", "habits", "toggle", "stretch")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared today for Stretch")

	out, err = runTend(t, db, "", "habits", "show", "stretch")
	require.NoError(t, err)
	assert.Contains(t, out, "Completions:    0 total")
}

func TestImportCommand(t *testing.T) {
	db := setupCLI(t)

	_, err := runTend(t, db, "", "people", "add", "Sarah Chen")
	require.NoError(t, err)

	roster := `
people:
  - name: Grandma Rose
    priority: high
    cadence_days: 7
  - name: sarah chen
  - name: Nobody
    priority: urgent
habits:
  - title: Read
`

	out, err := runTend(t, db, roster, "import", "-", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would import 1 person and 1 habit")

	out, err = runTend(t, db, roster, "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 person and 1 habit")
	assert.Contains(t, out, "1 entry already existed")
	assert.Contains(t, out, `person "Nobody"`)

	out, err = runTend(t, db, "", "people", "list", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Grandma Rose")
	assert.NotContains(t, out, "Sarah Chen")

	_, err = runTend(t, db, "people: [", "import", "-")
	assert.ErrorIs(t, err, common.ErrInvalidRoster)
}

func TestReviewWithNobodyOverdue(t *testing.T) {
	db := setupCLI(t)

	out, err := runTend(t, db, "", "review")
	require.NoError(t, err)
	assert.Contains(t, out, "Nobody is overdue")

	_, err = runTend(t, db, "", "review", "--theme", "neon")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersion(t *testing.T) {
	out, err := runTend(t, setupCLI(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tend dev\n", out)
}
