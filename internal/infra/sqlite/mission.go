package sqlite

import (
	"database/sql"

	"github.com/stepling-app/stepling/internal/domain"
)

// ─── Daily Missions ─────────────────────────────────────────────────────────

// ReplaceMissions atomically replaces the stored mission set. Missions
// regenerate wholesale per calendar day, so the previous day's rows
// (and any same-day set with the wrong count) are discarded.
func (d *DB) ReplaceMissions(missions []domain.DailyMission) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM missions`); err != nil {
		return err
	}
	for i, m := range missions {
		_, err := tx.Exec(
			`INSERT INTO missions (id, type, title, target, progress, coin_reward, date_string, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, string(m.Type), m.Title, m.Target, m.Progress, m.CoinReward, m.DateString, i,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListMissions returns the stored mission set in generation order.
func (d *DB) ListMissions() ([]domain.DailyMission, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, target, progress, coin_reward, date_string
		 FROM missions ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []domain.DailyMission
	for rows.Next() {
		var m domain.DailyMission
		if err := rows.Scan(&m.ID, &m.Type, &m.Title, &m.Target,
			&m.Progress, &m.CoinReward, &m.DateString); err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

// SetMissionProgress writes a mission's re-derived progress value.
func (d *DB) SetMissionProgress(id string, progress int) error {
	_, err := d.db.Exec(`UPDATE missions SET progress = ? WHERE id = ?`, progress, id)
	return err
}

// ─── Weekly Challenge ───────────────────────────────────────────────────────

// UpsertChallenge stores the challenge for its week.
func (d *DB) UpsertChallenge(c domain.WeeklyChallenge) error {
	_, err := d.db.Exec(
		`INSERT INTO weekly_challenge (week_string, id, type, title, target, progress, coin_reward, rewarded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		 ON CONFLICT(week_string) DO UPDATE SET
			id=excluded.id, type=excluded.type, title=excluded.title,
			target=excluded.target, progress=excluded.progress,
			coin_reward=excluded.coin_reward`,
		c.WeekString, c.ID, string(c.Type), c.Title, c.Target, c.Progress, c.CoinReward,
	)
	return err
}

// GetChallenge returns the challenge for a week, or nil if none stored.
func (d *DB) GetChallenge(weekString string) (*domain.WeeklyChallenge, error) {
	row := d.db.QueryRow(
		`SELECT week_string, id, type, title, target, progress, coin_reward
		 FROM weekly_challenge WHERE week_string = ?`, weekString,
	)
	var c domain.WeeklyChallenge
	err := row.Scan(&c.WeekString, &c.ID, &c.Type, &c.Title, &c.Target, &c.Progress, &c.CoinReward)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetChallengeProgress writes the challenge's re-derived progress.
func (d *DB) SetChallengeProgress(weekString string, progress int) error {
	_, err := d.db.Exec(
		`UPDATE weekly_challenge SET progress = ? WHERE week_string = ?`,
		progress, weekString,
	)
	return err
}

// MarkChallengeRewarded flags the week's challenge reward as paid out.
// Returns true only on the first call for that week (idempotent award).
func (d *DB) MarkChallengeRewarded(weekString string) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE weekly_challenge SET rewarded = 1 WHERE week_string = ? AND rewarded = 0`,
		weekString,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}
