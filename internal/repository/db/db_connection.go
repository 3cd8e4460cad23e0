package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

// Numeric columns are TEXT on purpose: values round-trip in the fixed
// two-decimal dot format shared with the spreadsheet backend.
const schemaObjects = `
CREATE TABLE IF NOT EXISTS objects (
    object_id TEXT PRIMARY KEY,
    engine_hours TEXT NOT NULL,
    fuel_capacity TEXT NOT NULL,
    current_fuel TEXT NOT NULL,
    fuel_usage_per_hour TEXT NOT NULL
);
`

const schemaReadingLogs = `
CREATE TABLE IF NOT EXISTS reading_logs (
    id TEXT PRIMARY KEY,
    ts TIMESTAMP NOT NULL,
    object_id TEXT NOT NULL,
    prev_hours TEXT NOT NULL,
    new_hours TEXT NOT NULL,
    hours_delta TEXT NOT NULL,
    fuel_added TEXT NOT NULL,
    full_tank BOOLEAN NOT NULL,
    calculated_current_fuel TEXT NOT NULL,
    user_id INTEGER NOT NULL,
    username TEXT
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaObjects,
		schemaReadingLogs,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
