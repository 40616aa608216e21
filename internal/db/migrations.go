package db

import (
	"database/sql"
	"fmt"
)

// Only runtime settings live in the database. Generated stories are never stored.
const baseSchema = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: index for prefix lookups (story.*)
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_settings_key_prefix ON settings(key COLLATE NOCASE)`); err != nil {
		return fmt.Errorf("create idx_settings_key_prefix: %w", err)
	}

	return nil
}
