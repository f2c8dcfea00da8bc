package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/outreach"
)

type interactionLoggedMsg struct {
	err   error
	name  string
	style outreach.Style
}

// logDraft records the picked draft as a text interaction.
func (m Model) logDraft(view drift.PersonDrift, style outreach.Style, draft string) tea.Cmd {
	return func() tea.Msg {
		msg := interactionLoggedMsg{name: view.Person.FullName, style: style}
		if m.storage == nil {
			msg.err = fmt.Errorf("storage not configured")
			return msg
		}

		ctx, cancel := context.WithTimeout(m.ctx, 10*time.Second)
		defer cancel()

		msg.err = m.storage.LogInteraction(ctx, &model.Interaction{
			PersonID:   view.Person.ID,
			OccurredAt: m.now(),
			Type:       model.InteractionText,
			Summary:    draft,
		})
		return msg
	}
}
