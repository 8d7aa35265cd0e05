package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wanderlog/expenseclient/internal/logger"
)

func createMigrationsTable(db *sql.DB) error {
	ctx := context.Background()

	statement, err := db.PrepareContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	if err != nil {
		return err
	}
	defer statement.Close()
	_, err = statement.ExecContext(ctx)
	return err
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current schema version
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Define migrations
	migrations := []struct {
		name string
		up   func(*sql.Tx) error
	}{
		{
			name: "Create expenses table",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS expenses
					(
					id INTEGER PRIMARY KEY,
					date TEXT NOT NULL,
					category TEXT NOT NULL,
					amount REAL NOT NULL,
					payment_method TEXT NOT NULL,
					note TEXT NOT NULL,
					user_id INTEGER NOT NULL,
					is_deleted INTEGER NOT NULL DEFAULT 0,
					created_at INTEGER NOT NULL,
					updated_at INTEGER NOT NULL
					) STRICT;`)
				return err
			},
		},
		{
			name: "Create public expenses table",
			up: func(tx *sql.Tx) error {
				// The shared list is read-only fixture data; it lives in
				// its own table so personal mutations can never reach it.
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS public_expenses
					(
					id INTEGER PRIMARY KEY,
					date TEXT NOT NULL,
					category TEXT NOT NULL,
					amount REAL NOT NULL,
					payment_method TEXT NOT NULL,
					note TEXT NOT NULL,
					created_at INTEGER NOT NULL
					) STRICT;`)
				return err
			},
		},
	}

	// Apply pending migrations
	for i, migration := range migrations {
		migrationVersion := i + 1
		if migrationVersion <= currentVersion {
			continue
		}

		logger.Info("Applying migration",
			"version", migrationVersion,
			"name", migration.name)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w",
				migrationVersion, err)
		}

		if err = migration.up(tx); err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return fmt.Errorf("migration %d failed: %w", migrationVersion, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			migrationVersion, time.Now().Unix(),
		)
		if err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return fmt.Errorf("failed to record migration %d: %w",
				migrationVersion, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w",
				migrationVersion, err)
		}

		logger.Info("Migration applied successfully", "version", migrationVersion)
	}

	return nil
}
