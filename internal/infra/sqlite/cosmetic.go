package sqlite

import (
	"database/sql"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
)

// ─── Cosmetic Inventory ─────────────────────────────────────────────────────

// AddOwnedItem records an item as owned. Idempotent.
func (d *DB) AddOwnedItem(itemID string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO cosmetic_owned (item_id, acquired_at) VALUES (?, ?)`,
		itemID, at.Unix(),
	)
	return err
}

// IsItemOwned checks whether an item is in the inventory.
func (d *DB) IsItemOwned(itemID string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM cosmetic_owned WHERE item_id = ?`, itemID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// OwnedItemIDs returns all owned item IDs.
func (d *DB) OwnedItemIDs() (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT item_id FROM cosmetic_owned`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owned[id] = true
	}
	return owned, rows.Err()
}

// SetLoadoutSlot equips an item in a category slot; itemID "" clears it.
func (d *DB) SetLoadoutSlot(cat domain.CosmeticCategory, itemID string) error {
	if itemID == "" {
		_, err := d.db.Exec(`DELETE FROM cosmetic_loadout WHERE category = ?`, string(cat))
		return err
	}
	_, err := d.db.Exec(
		`INSERT INTO cosmetic_loadout (category, item_id) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET item_id=excluded.item_id`,
		string(cat), itemID,
	)
	return err
}

// Loadout returns the equipped item per slot.
func (d *DB) Loadout() (domain.CosmeticLoadout, error) {
	rows, err := d.db.Query(`SELECT category, item_id FROM cosmetic_loadout`)
	if err != nil {
		return domain.CosmeticLoadout{}, err
	}
	defer rows.Close()

	var loadout domain.CosmeticLoadout
	for rows.Next() {
		var cat, id string
		if err := rows.Scan(&cat, &id); err != nil {
			return domain.CosmeticLoadout{}, err
		}
		loadout.Equip(domain.CosmeticCategory(cat), id)
	}
	return loadout, rows.Err()
}

// InsertPurchase appends a purchase-history record.
func (d *DB) InsertPurchase(p domain.CosmeticPurchase) error {
	_, err := d.db.Exec(
		`INSERT INTO cosmetic_purchases (id, item_id, date, price) VALUES (?, ?, ?, ?)`,
		p.ID, p.ItemID, p.Date.Unix(), p.Price,
	)
	return err
}

// ListPurchases returns purchase history, newest first.
func (d *DB) ListPurchases(limit int) ([]domain.CosmeticPurchase, error) {
	rows, err := d.db.Query(
		`SELECT id, item_id, date, price FROM cosmetic_purchases
		 ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.CosmeticPurchase
	for rows.Next() {
		var p domain.CosmeticPurchase
		var ts int64
		if err := rows.Scan(&p.ID, &p.ItemID, &ts, &p.Price); err != nil {
			return nil, err
		}
		p.Date = time.Unix(ts, 0)
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// PurchaseCount returns the lifetime number of shop purchases.
func (d *DB) PurchaseCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM cosmetic_purchases`).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}
