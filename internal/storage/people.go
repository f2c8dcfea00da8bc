package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tend/internal/common"
	"github.com/Veraticus/tend/internal/model"
	"github.com/Veraticus/tend/internal/service"
)

const personColumns = `id, full_name, tags, priority, preferred_cadence_days,
	last_interaction_at, last_interaction_type, phone, email, birthday, notes,
	created_at, updated_at`

// CreatePerson inserts a new person. ID and timestamps are assigned when empty.
func (s *SQLiteStorage) CreatePerson(ctx context.Context, person *model.Person) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if person != nil && person.Priority == "" {
		person.Priority = model.PriorityNormal
	}
	if err := validatePerson(person); err != nil {
		return err
	}

	now := s.now()
	if person.ID == "" {
		person.ID = newID()
	}
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now
	person.Tags = model.NormalizeTags(person.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO people (`+personColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		person.ID,
		person.FullName,
		strings.Join(person.Tags, ","),
		string(person.Priority),
		person.PreferredCadenceDays,
		formatNullTime(person.LastInteractionAt),
		nullString(string(person.LastInteractionType)),
		nullString(person.Phone),
		nullString(person.Email),
		nullString(person.Birthday),
		person.Notes,
		formatTime(person.CreatedAt),
		formatTime(person.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: person %s", common.ErrDuplicateEntry, person.ID)
		}
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

// GetPerson retrieves a person by ID.
func (s *SQLiteStorage) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: person %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// FindPersonByName looks a person up by ID, exact full name, or unique name prefix
// (case-insensitive, in that order).
func (s *SQLiteStorage) FindPersonByName(ctx context.Context, name string) (*model.Person, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+personColumns+`
		FROM people
		WHERE id = ?
		   OR full_name = ? COLLATE NOCASE
		   OR full_name LIKE ? ESCAPE '\'
		ORDER BY full_name COLLATE NOCASE
	`, name, name, escapeLike(name)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*model.Person
	for rows.Next() {
		person, scanErr := scanPerson(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan person: %w", scanErr)
		}
		if person.ID == name || strings.EqualFold(person.FullName, name) {
			return person, nil
		}
		matches = append(matches, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: person %q", common.ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.FullName)
		}
		return nil, common.NewUserError(
			fmt.Sprintf("%q matches several people (%s)", name, strings.Join(names, ", ")),
			common.ErrAmbiguous,
		)
	}
}

// ListPeople returns people ordered by name.
func (s *SQLiteStorage) ListPeople(ctx context.Context, filter service.PersonFilter) ([]model.Person, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + personColumns + ` FROM people`
	var (
		conditions []string
		args       []any
	)
	if filter.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(filter.Priority))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name COLLATE NOCASE"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var people []model.Person
	for rows.Next() {
		person, scanErr := scanPerson(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan person: %w", scanErr)
		}
		// Tags are stored as a comma-separated list, so membership is checked here.
		if filter.Tag != "" && !person.HasTag(filter.Tag) {
			continue
		}
		people = append(people, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// UpdatePerson overwrites a person's editable fields.
func (s *SQLiteStorage) UpdatePerson(ctx context.Context, person *model.Person) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if person != nil && person.Priority == "" {
		person.Priority = model.PriorityNormal
	}
	if err := validatePerson(person); err != nil {
		return err
	}
	if err := validateString(person.ID, "id"); err != nil {
		return err
	}

	person.UpdatedAt = s.now()
	person.Tags = model.NormalizeTags(person.Tags)

	result, err := s.db.ExecContext(ctx, `
		UPDATE people SET
			full_name = ?,
			tags = ?,
			priority = ?,
			preferred_cadence_days = ?,
			last_interaction_at = ?,
			last_interaction_type = ?,
			phone = ?,
			email = ?,
			birthday = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`,
		person.FullName,
		strings.Join(person.Tags, ","),
		string(person.Priority),
		person.PreferredCadenceDays,
		formatNullTime(person.LastInteractionAt),
		nullString(string(person.LastInteractionType)),
		nullString(person.Phone),
		nullString(person.Email),
		nullString(person.Birthday),
		person.Notes,
		formatTime(person.UpdatedAt),
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	return requireAffected(result, "person", person.ID)
}

// DeletePerson removes a person and their interactions.
func (s *SQLiteStorage) DeletePerson(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM interactions WHERE person_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete interactions: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return requireAffected(result, "person", id)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*model.Person, error) {
	var (
		person    model.Person
		tags      string
		priority  string
		lastAt    sql.NullString
		lastType  sql.NullString
		phone     sql.NullString
		email     sql.NullString
		birthday  sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(
		&person.ID,
		&person.FullName,
		&tags,
		&priority,
		&person.PreferredCadenceDays,
		&lastAt,
		&lastType,
		&phone,
		&email,
		&birthday,
		&person.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if person.LastInteractionAt, err = parseNullTime(lastAt); err != nil {
		return nil, err
	}
	if person.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if person.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	person.Tags = model.ParseTags(tags)
	person.Priority = model.Priority(priority)
	person.LastInteractionType = model.InteractionType(lastType.String)
	person.Phone = phone.String
	person.Email = email.String
	person.Birthday = birthday.String

	return &person, nil
}

func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", common.ErrNotFound, kind, id)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
