package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the review and blocks until the user finishes or quits.
func Run(ctx context.Context, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Storage == nil {
		return Result{}, fmt.Errorf("storage is required")
	}
	if len(cfg.Queue) == 0 {
		return Result{}, nil
	}

	program := tea.NewProgram(
		newModel(ctx, cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run review: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}
