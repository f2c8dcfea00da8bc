// Package tui implements the interactive review: it walks people who need
// attention, shows three outreach drafts for each, and logs the one picked.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/outreach"
	"github.com/Veraticus/tend/internal/service"
	"github.com/Veraticus/tend/internal/tui/themes"
)

// State represents the current state of the review.
type State int

const (
	StateReviewing State = iota
	StateSaving
	StateDone
)

// Config holds everything the review needs.
type Config struct {
	Storage service.Storage
	Now     func() time.Time
	Theme   themes.Theme
	Queue   []drift.PersonDrift
	Width   int
	Height  int
}

// Option configures the review.
type Option func(*Config)

// WithStorage sets where picked drafts are logged.
func WithStorage(s service.Storage) Option {
	return func(c *Config) { c.Storage = s }
}

// WithQueue sets the people to review, in order.
func WithQueue(queue []drift.PersonDrift) Option {
	return func(c *Config) { c.Queue = queue }
}

// WithTheme sets the theme.
func WithTheme(t themes.Theme) Option {
	return func(c *Config) { c.Theme = t }
}

// WithClock sets the clock used to timestamp logged interactions.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

func defaultConfig() Config {
	return Config{
		Now:    time.Now,
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// Model holds the review state.
type Model struct {
	ctx       context.Context
	storage   service.Storage
	now       func() time.Time
	lastError error
	theme     themes.Theme
	progress  progress.Model
	spinner   spinner.Model
	keymap    KeyMap
	drafts    outreach.Suggestions
	status    string
	queue     []drift.PersonDrift
	logged    int
	skipped   int
	index     int
	width     int
	height    int
	state     State
	showHelp  bool
	quitting  bool
}

func newModel(ctx context.Context, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = cfg.Theme.DraftKey

	m := Model{
		ctx:      ctx,
		storage:  cfg.Storage,
		now:      cfg.Now,
		theme:    cfg.Theme,
		queue:    cfg.Queue,
		keymap:   DefaultKeyMap(),
		spinner:  s,
		progress: progress.New(progress.WithSolidFill(string(cfg.Theme.Primary)), progress.WithoutPercentage()),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.resizeProgress()

	if len(m.queue) == 0 {
		m.state = StateDone
	} else {
		m.drafts = outreach.SuggestFor(m.queue[0])
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.state == StateDone {
		return tea.Quit
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeProgress()

	case interactionLoggedMsg:
		if msg.err != nil {
			m.state = StateReviewing
			m.lastError = msg.err
			return m, nil
		}
		m.logged++
		m.lastError = nil
		m.status = "Logged " + string(msg.style) + " text to " + msg.name
		return m.advance()

	case spinner.TickMsg:
		if m.state != StateSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.state == StateSaving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.state != StateReviewing {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Casual):
		return m.pick(outreach.StyleCasual)
	case key.Matches(msg, m.keymap.Friendly):
		return m.pick(outreach.StyleFriendly)
	case key.Matches(msg, m.keymap.Direct):
		return m.pick(outreach.StyleDirect)
	case key.Matches(msg, m.keymap.Skip):
		m.skipped++
		m.lastError = nil
		m.status = "Skipped " + m.current().Person.FullName
		return m.advance()
	}

	return m, nil
}

func (m Model) pick(style outreach.Style) (tea.Model, tea.Cmd) {
	m.state = StateSaving
	m.lastError = nil
	return m, tea.Batch(m.spinner.Tick, m.logDraft(m.current(), style, m.drafts.Get(style)))
}

// advance moves to the next person, finishing when the queue is exhausted.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.queue) {
		m.state = StateDone
		return m, tea.Quit
	}
	m.state = StateReviewing
	m.drafts = outreach.SuggestFor(m.queue[m.index])
	return m, nil
}

func (m Model) current() drift.PersonDrift {
	return m.queue[m.index]
}

func (m *Model) resizeProgress() {
	w := m.width - 8
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	m.progress.Width = w
}

// Result summarizes a finished review.
func (m Model) Result() Result {
	remaining := len(m.queue) - m.index
	if remaining < 0 {
		remaining = 0
	}
	return Result{Logged: m.logged, Skipped: m.skipped, Remaining: remaining}
}

// Result counts what happened during a review.
type Result struct {
	Logged    int
	Skipped   int
	Remaining int
}
