package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every open. Statements must stay
// idempotent (IF NOT EXISTS) since the list is re-run each time.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS catalog_projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		sheet_id    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT '',
		is_template INTEGER NOT NULL DEFAULT 0,
		row_order   INTEGER NOT NULL DEFAULT 0,
		cached_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_projects_sheet ON catalog_projects(sheet_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
