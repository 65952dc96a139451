package sqlite

import (
	"database/sql"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
)

// ─── Coin Ledger ────────────────────────────────────────────────────────────

// InsertCoinEntry appends one ledger row and returns its ID.
func (d *DB) InsertCoinEntry(e domain.CoinLedgerEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO coin_ledger (timestamp, type, entry_type, account, amount, reason, balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), string(e.Type), string(e.EntryType),
		e.Account, e.Amount, e.Reason, e.Balance,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CoinBalance returns the latest running balance for an account.
// A fresh account has balance 0.
func (d *DB) CoinBalance(account string) (int, error) {
	var balance int
	err := d.db.QueryRow(
		`SELECT balance FROM coin_ledger WHERE account = ?
		 ORDER BY id DESC LIMIT 1`, account,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return balance, err
}

// CoinEntries returns recent ledger rows for an account, newest first.
func (d *DB) CoinEntries(account string, limit int) ([]domain.CoinLedgerEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, type, entry_type, account, amount, reason, balance
		 FROM coin_ledger WHERE account = ? ORDER BY id DESC LIMIT ?`,
		account, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CoinLedgerEntry
	for rows.Next() {
		var e domain.CoinLedgerEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Type, &e.EntryType, &e.Account,
			&e.Amount, &e.Reason, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LifetimeEarned returns the total coins ever credited to an account.
func (d *DB) LifetimeEarned(account string) (int, error) {
	var total sql.NullInt64
	err := d.db.QueryRow(
		`SELECT SUM(amount) FROM coin_ledger
		 WHERE account = ? AND entry_type = ?`,
		account, string(domain.CoinEntryCredit),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
