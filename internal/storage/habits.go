package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/dates"
	"github.com/Veraticus/tend/internal/model"
)

const habitColumns = `id, title, description, icon, color, archived, created_at`

// CreateHabit inserts a new habit.
func (s *SQLiteStorage) CreateHabit(ctx context.Context, habit *model.Habit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHabit(habit); err != nil {
		return err
	}

	if habit.ID == "" {
		habit.ID = newID()
	}
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		habit.ID,
		habit.Title,
		nullString(habit.Description),
		habit.Icon,
		habit.Color,
		habit.Archived,
		formatTime(habit.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: habit %s", common.ErrDuplicateEntry, habit.ID)
		}
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

// GetHabit retrieves a habit by ID.
func (s *SQLiteStorage) GetHabit(ctx context.Context, id string) (*model.Habit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	habit, err := scanHabit(s.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: habit %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return habit, nil
}

// FindHabitByTitle resolves a habit by ID, exact title, or unique title prefix.
// Archived habits are only matched by ID.
func (s *SQLiteStorage) FindHabitByTitle(ctx context.Context, title string) (*model.Habit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(title, "title"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE id = ?
		   OR (archived = 0 AND (title = ? COLLATE NOCASE OR title LIKE ? ESCAPE '\'))
		ORDER BY title COLLATE NOCASE
	`, title, title, escapeLike(title)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*model.Habit
	for rows.Next() {
		habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", scanErr)
		}
		if habit.ID == title || strings.EqualFold(habit.Title, title) {
			return habit, nil
		}
		matches = append(matches, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: habit %q", common.ErrNotFound, title)
	case 1:
		return matches[0], nil
	default:
		titles := make([]string, 0, len(matches))
		for _, m := range matches {
			titles = append(titles, m.Title)
		}
		return nil, common.NewUserError(
			fmt.Sprintf("%q matches several habits (%s)", title, strings.Join(titles, ", ")),
			common.ErrAmbiguous,
		)
	}
}

// ListHabits returns habits in creation order.
func (s *SQLiteStorage) ListHabits(ctx context.Context, includeArchived bool) ([]model.Habit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY created_at, title`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []model.Habit
	for rows.Next() {
		habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", scanErr)
		}
		habits = append(habits, *habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

// ArchiveHabit hides a habit from default listings. Its history is kept.
func (s *SQLiteStorage) ArchiveHabit(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE habits SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	return requireAffected(result, "habit", id)
}

// LogHabit records a completion or skip. A habit has at most one entry per
// calendar day (in the entry's own location); logging again replaces it.
func (s *SQLiteStorage) LogHabit(ctx context.Context, entry *model.HabitLog) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHabitLog(entry); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = newID()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := habitExists(ctx, tx, entry.HabitID); err != nil {
			return err
		}
		day := dates.DayKey(entry.CompletedAt, nil)
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM habit_logs WHERE habit_id = ? AND day = ?`, entry.HabitID, day,
		); err != nil {
			return fmt.Errorf("failed to replace habit log: %w", err)
		}
		return insertHabitLog(ctx, tx, entry, day)
	})
}

// ToggleCompletion flips the entry for the day of at. An existing entry (done
// or skipped) is removed; otherwise a completion is added. It reports whether
// the day ends up completed.
func (s *SQLiteStorage) ToggleCompletion(ctx context.Context, habitID string, at time.Time) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(habitID, "habitID"); err != nil {
		return false, err
	}
	if at.IsZero() {
		return false, fmt.Errorf("%w: at", ErrNilParameter)
	}

	var completed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := habitExists(ctx, tx, habitID); err != nil {
			return err
		}

		day := dates.DayKey(at, nil)
		result, err := tx.ExecContext(ctx,
			`DELETE FROM habit_logs WHERE habit_id = ? AND day = ?`, habitID, day)
		if err != nil {
			return fmt.Errorf("failed to clear habit log: %w", err)
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if removed > 0 {
			completed = false
			return nil
		}

		completed = true
		return insertHabitLog(ctx, tx, &model.HabitLog{
			ID:          newID(),
			HabitID:     habitID,
			CompletedAt: at,
		}, day)
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

// GetHabitLogs returns every entry for a habit, oldest first.
func (s *SQLiteStorage) GetHabitLogs(ctx context.Context, habitID string) ([]model.HabitLog, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(habitID, "habitID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, habit_id, completed_at, skipped, skip_reason, note
		FROM habit_logs
		WHERE habit_id = ?
		ORDER BY completed_at
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []model.HabitLog
	for rows.Next() {
		var (
			entry       model.HabitLog
			completedAt string
			skipReason  sql.NullString
			note        sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.HabitID,
			&completedAt,
			&entry.Skipped,
			&skipReason,
			&note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		if entry.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}
		entry.SkipReason = skipReason.String
		entry.Note = note.String
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habit logs: %w", err)
	}

	return logs, nil
}

func habitExists(ctx context.Context, q queryable, id string) error {
	var exists bool
	if err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM habits WHERE id = ?)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: habit %s", common.ErrNotFound, id)
	}
	return nil
}

func insertHabitLog(ctx context.Context, q queryable, entry *model.HabitLog, day string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO habit_logs (id, habit_id, completed_at, skipped, skip_reason, note, day)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.HabitID,
		formatTime(entry.CompletedAt),
		entry.Skipped,
		nullString(entry.SkipReason),
		nullString(entry.Note),
		day,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit log: %w", err)
	}
	return nil
}

func scanHabit(row rowScanner) (*model.Habit, error) {
	var (
		habit       model.Habit
		description sql.NullString
		createdAt   string
	)
	if err := row.Scan(
		&habit.ID,
		&habit.Title,
		&description,
		&habit.Icon,
		&habit.Color,
		&habit.Archived,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	if habit.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	habit.Description = description.String
	return &habit, nil
}
