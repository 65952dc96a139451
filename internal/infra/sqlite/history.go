package sqlite

import (
	"database/sql"

	"github.com/stepling-app/stepling/internal/domain"
)

// ─── Daily History ──────────────────────────────────────────────────────────

// UpsertDay writes a day's authoritative step total, replacing any
// previous value for that date.
func (d *DB) UpsertDay(rec domain.DayRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_history (date, steps, goal_met) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET steps=excluded.steps, goal_met=excluded.goal_met`,
		rec.Date, rec.Steps, rec.GoalMet,
	)
	return err
}

// UpsertDayIfHigher writes a day's steps only when they exceed the
// already-recorded value (monotonic per day, used for backfill).
func (d *DB) UpsertDayIfHigher(rec domain.DayRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_history (date, steps, goal_met) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			steps=excluded.steps, goal_met=excluded.goal_met
		 WHERE excluded.steps > daily_history.steps`,
		rec.Date, rec.Steps, rec.GoalMet,
	)
	return err
}

// GetDay returns the record for a date, or nil if no data.
func (d *DB) GetDay(date string) (*domain.DayRecord, error) {
	row := d.db.QueryRow(
		`SELECT date, steps, goal_met FROM daily_history WHERE date = ?`, date,
	)
	var rec domain.DayRecord
	err := row.Scan(&rec.Date, &rec.Steps, &rec.GoalMet)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDays returns records with date in [from, to] inclusive, ascending.
// Dates are YYYY-MM-DD strings, so lexical order is chronological.
func (d *DB) ListDays(from, to string) ([]domain.DayRecord, error) {
	rows, err := d.db.Query(
		`SELECT date, steps, goal_met FROM daily_history
		 WHERE date >= ? AND date <= ? ORDER BY date ASC`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.DayRecord
	for rows.Next() {
		var rec domain.DayRecord
		if err := rows.Scan(&rec.Date, &rec.Steps, &rec.GoalMet); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GoalMetDayCount returns the lifetime number of days with the goal met.
func (d *DB) GoalMetDayCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM daily_history WHERE goal_met = 1`).Scan(&count)
	return count, err
}

// ActiveDayCount returns the lifetime number of days with any steps recorded.
func (d *DB) ActiveDayCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM daily_history WHERE steps > 0`).Scan(&count)
	return count, err
}

// BestDay returns the all-time highest-step day, or nil if no history.
// Ties resolve to the earliest date.
func (d *DB) BestDay() (*domain.DayRecord, error) {
	row := d.db.QueryRow(
		`SELECT date, steps, goal_met FROM daily_history
		 ORDER BY steps DESC, date ASC LIMIT 1`,
	)
	var rec domain.DayRecord
	err := row.Scan(&rec.Date, &rec.Steps, &rec.GoalMet)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
