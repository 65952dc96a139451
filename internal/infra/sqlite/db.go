// Package sqlite provides SQLite-based persistent storage for Stepling.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations. Old databases pick up new
// tables on open; missing progress keys default on read, which is the
// migration-on-load story for the evolving snapshot schema.
func (d *DB) migrate() error {
	migrations := []string{
		// Progress snapshot (totals, phase, streak, paywall flags)
		`CREATE TABLE IF NOT EXISTS progress (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Rolling daily step history; past days immutable once written
		`CREATE TABLE IF NOT EXISTS daily_history (
			date     TEXT PRIMARY KEY,
			steps    INTEGER NOT NULL,
			goal_met BOOLEAN NOT NULL DEFAULT 0
		)`,

		// Coin ledger (double-entry bookkeeping between mint and wallet)
		`CREATE TABLE IF NOT EXISTS coin_ledger (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			type       TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			account    TEXT NOT NULL,
			amount     INTEGER NOT NULL,
			reason     TEXT,
			balance    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_coin_ts ON coin_ledger(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_coin_account ON coin_ledger(account)`,

		// Cosmetic inventory
		`CREATE TABLE IF NOT EXISTS cosmetic_owned (
			item_id     TEXT PRIMARY KEY,
			acquired_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cosmetic_loadout (
			category TEXT PRIMARY KEY,
			item_id  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cosmetic_purchases (
			id      TEXT PRIMARY KEY,
			item_id TEXT NOT NULL,
			date    INTEGER NOT NULL,
			price   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_date ON cosmetic_purchases(date)`,

		// Daily missions (regenerated wholesale each calendar day)
		`CREATE TABLE IF NOT EXISTS missions (
			id          TEXT PRIMARY KEY,
			type        TEXT NOT NULL,
			title       TEXT NOT NULL,
			target      INTEGER NOT NULL,
			progress    INTEGER NOT NULL DEFAULT 0,
			coin_reward INTEGER NOT NULL,
			date_string TEXT NOT NULL,
			position    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_missions_date ON missions(date_string)`,

		// Premium weekly challenge (one row per ISO week)
		`CREATE TABLE IF NOT EXISTS weekly_challenge (
			week_string TEXT PRIMARY KEY,
			id          TEXT NOT NULL,
			type        TEXT NOT NULL,
			title       TEXT NOT NULL,
			target      INTEGER NOT NULL,
			progress    INTEGER NOT NULL DEFAULT 0,
			coin_reward INTEGER NOT NULL,
			rewarded    BOOLEAN NOT NULL DEFAULT 0
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Progress Key-Value ─────────────────────────────────────────────────────

// SetProgress stores a progress key-value pair.
func (d *DB) SetProgress(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetProgress retrieves a progress value by key.
// Returns "" if key not found — absent keys default at the service layer.
func (d *DB) GetProgress(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM progress WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
