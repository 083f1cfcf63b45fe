package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so
// Migrate can run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS conflicts (
		id               TEXT PRIMARY KEY,
		wedding_id       TEXT NOT NULL,
		type             TEXT NOT NULL
		                 CHECK(type IN ('timing','vendor','resource','cultural')),
		severity         TEXT NOT NULL
		                 CHECK(severity IN ('warning','critical')),
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		affected_events  TEXT NOT NULL DEFAULT '[]',
		affected_vendors TEXT NOT NULL DEFAULT '[]',
		detail           TEXT NOT NULL DEFAULT '{}',
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','resolved','dismissed')),
		resolution_id    TEXT,
		dismiss_reason   TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_conflicts_wedding ON conflicts(wedding_id, status)`,

	`CREATE TABLE IF NOT EXISTS resolution_options (
		id              TEXT PRIMARY KEY,
		conflict_id     TEXT NOT NULL REFERENCES conflicts(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		type            TEXT NOT NULL
		                CHECK(type IN ('reschedule','change_vendor','add_resource','dismiss')),
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		effort          TEXT NOT NULL
		                CHECK(effort IN ('low','medium','high')),
		required_action TEXT NOT NULL DEFAULT '',
		auto_resolvable INTEGER NOT NULL DEFAULT 0,
		UNIQUE(conflict_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resolution_options_conflict ON resolution_options(conflict_id)`,
}
