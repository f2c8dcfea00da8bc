package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS people (
					id TEXT PRIMARY KEY,
					full_name TEXT NOT NULL,
					tags TEXT NOT NULL DEFAULT '',
					priority TEXT NOT NULL DEFAULT 'normal',
					preferred_cadence_days INTEGER NOT NULL CHECK (preferred_cadence_days > 0),
					last_interaction_at TEXT,
					last_interaction_type TEXT,
					created_at TEXT NOT NULL,
					updated_at TEXT NOT NULL
				)`,
				`CREATE INDEX idx_people_full_name ON people(full_name COLLATE NOCASE)`,

				`CREATE TABLE IF NOT EXISTS interactions (
					id TEXT PRIMARY KEY,
					person_id TEXT NOT NULL,
					occurred_at TEXT NOT NULL,
					type TEXT NOT NULL,
					summary TEXT,
					created_at TEXT NOT NULL,
					FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_interactions_person ON interactions(person_id, occurred_at)`,

				`CREATE TABLE IF NOT EXISTS habits (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					description TEXT,
					icon TEXT NOT NULL DEFAULT '',
					color TEXT NOT NULL DEFAULT '',
					archived INTEGER NOT NULL DEFAULT 0,
					created_at TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS habit_logs (
					id TEXT PRIMARY KEY,
					habit_id TEXT NOT NULL,
					completed_at TEXT NOT NULL,
					skipped INTEGER NOT NULL DEFAULT 0,
					FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_habit_logs_habit ON habit_logs(habit_id, completed_at)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add contact details to people",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE people ADD COLUMN phone TEXT`,
				`ALTER TABLE people ADD COLUMN email TEXT`,
				`ALTER TABLE people ADD COLUMN birthday TEXT`,
				`ALTER TABLE people ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
			)
		},
	},
	{
		Version:     3,
		Description: "Add skip reasons and notes to habit logs",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE habit_logs ADD COLUMN skip_reason TEXT`,
				`ALTER TABLE habit_logs ADD COLUMN note TEXT`,
				// Local day of the entry, so one-entry-per-day can be enforced.
				`ALTER TABLE habit_logs ADD COLUMN day TEXT NOT NULL DEFAULT ''`,
				`UPDATE habit_logs SET day = substr(completed_at, 1, 10) WHERE day = ''`,
				`CREATE INDEX idx_habit_logs_day ON habit_logs(habit_id, day)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
