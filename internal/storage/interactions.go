package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/model"
)

// LogInteraction records a contact with a person. The person's last-interaction
// fields move forward only when the new interaction is the most recent one.
func (s *SQLiteStorage) LogInteraction(ctx context.Context, interaction *model.Interaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInteraction(interaction); err != nil {
		return err
	}

	if interaction.ID == "" {
		interaction.ID = newID()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = s.now()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM people WHERE id = ?)`, interaction.PersonID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check person existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: person %s", common.ErrNotFound, interaction.PersonID)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO interactions (id, person_id, occurred_at, type, summary, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			interaction.ID,
			interaction.PersonID,
			formatTime(interaction.OccurredAt),
			string(interaction.Type),
			nullString(interaction.Summary),
			formatTime(interaction.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert interaction: %w", err)
		}

		return s.advanceLastInteraction(ctx, tx, interaction)
	})
}

func (s *SQLiteStorage) advanceLastInteraction(ctx context.Context, q queryable, interaction *model.Interaction) error {
	occurred := formatTime(interaction.OccurredAt)
	_, err := q.ExecContext(ctx, `
		UPDATE people SET
			last_interaction_at = ?,
			last_interaction_type = ?,
			updated_at = ?
		WHERE id = ?
		  AND (last_interaction_at IS NULL OR last_interaction_at <= ?)
	`,
		occurred,
		string(interaction.Type),
		formatTime(s.now()),
		interaction.PersonID,
		occurred,
	)
	if err != nil {
		return fmt.Errorf("failed to update last interaction: %w", err)
	}
	return nil
}

// GetInteractions returns a person's interactions, newest first. A limit of zero returns all.
func (s *SQLiteStorage) GetInteractions(ctx context.Context, personID string, limit int) ([]model.Interaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(personID, "personID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, person_id, occurred_at, type, summary, created_at
		FROM interactions
		WHERE person_id = ?
		ORDER BY occurred_at DESC`
	args := []any{personID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var interactions []model.Interaction
	for rows.Next() {
		var (
			interaction model.Interaction
			kind        string
			summary     sql.NullString
			occurredAt  string
			createdAt   string
		)
		if err := rows.Scan(
			&interaction.ID,
			&interaction.PersonID,
			&occurredAt,
			&kind,
			&summary,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		if interaction.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, err
		}
		if interaction.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		interaction.Type = model.InteractionType(kind)
		interaction.Summary = summary.String
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}

	return interactions, nil
}
