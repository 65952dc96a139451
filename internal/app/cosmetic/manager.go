package cosmetic

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stepling-app/stepling/internal/app/coin"
	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/metrics"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

// PlayerState is the progression snapshot purchase gates check against.
type PlayerState struct {
	IsPremium  bool
	Phase      int
	Streak     int
	TotalSteps int
}

// Manager owns the cosmetic inventory, loadout, and purchases.
type Manager struct {
	db    *sqlite.DB
	coins *coin.Service
}

// NewManager creates a cosmetic manager.
func NewManager(db *sqlite.DB, coins *coin.Service) *Manager {
	return &Manager{db: db, coins: coins}
}

// CanPurchase evaluates the ordered purchase gates for an item. An item
// can fail several gates at once; only the first is reported.
func (m *Manager) CanPurchase(item domain.CosmeticItem, st PlayerState, now time.Time) (domain.Eligibility, error) {
	owned, err := m.db.IsItemOwned(item.ID)
	if err != nil {
		return domain.Eligibility{}, fmt.Errorf("check ownership: %w", err)
	}
	if owned {
		return domain.Eligibility{Code: domain.EligibilityAlreadyOwned}, nil
	}
	if item.RequiresPremium && !st.IsPremium {
		return domain.Eligibility{Code: domain.EligibilityRequiresPremium}, nil
	}
	if item.RequiredPhase > st.Phase {
		return domain.Eligibility{Code: domain.EligibilityRequiresPhase, Value: item.RequiredPhase}, nil
	}
	if item.RequiredStreak > st.Streak {
		return domain.Eligibility{Code: domain.EligibilityRequiresStreak, Value: item.RequiredStreak}, nil
	}
	if item.RequiredTotalSteps > st.TotalSteps {
		return domain.Eligibility{Code: domain.EligibilityRequiresSteps, Value: item.RequiredTotalSteps}, nil
	}
	if item.IsLimited && !IsInSeason(item, int(now.Month()), now.Day()) {
		return domain.Eligibility{Code: domain.EligibilityNotAvailable}, nil
	}

	balance, err := m.coins.Balance()
	if err != nil {
		return domain.Eligibility{}, fmt.Errorf("check balance: %w", err)
	}
	if balance < item.Price {
		return domain.Eligibility{Code: domain.EligibilityInsufficientCoins, Value: item.Price - balance}, nil
	}
	return domain.Eligibility{Code: domain.EligibilityCanBuy}, nil
}

// Purchase re-validates eligibility, deducts the price, and adds the
// item to the inventory with a history record.
func (m *Manager) Purchase(itemID string, st PlayerState, now time.Time) (*domain.CosmeticItem, error) {
	item := Item(itemID)
	if item == nil {
		return nil, fmt.Errorf("purchase %s: %w", itemID, domain.ErrItemNotFound)
	}

	elig, err := m.CanPurchase(*item, st, now)
	if err != nil {
		return nil, err
	}
	if !elig.CanBuy() {
		metrics.PurchasesBlocked.WithLabelValues(string(elig.Code)).Inc()
		if elig.Code == domain.EligibilityInsufficientCoins {
			return nil, fmt.Errorf("purchase %s: need %d more coins: %w",
				itemID, elig.Value, domain.ErrInsufficientCoins)
		}
		return nil, fmt.Errorf("purchase %s: %s: %w", itemID, elig.Code, domain.ErrNotEligible)
	}

	if err := m.coins.Spend(item.Price, "cosmetic:"+item.ID); err != nil {
		return nil, err
	}
	if err := m.db.AddOwnedItem(item.ID, now); err != nil {
		return nil, fmt.Errorf("add to inventory: %w", err)
	}
	err = m.db.InsertPurchase(domain.CosmeticPurchase{
		ID:     uuid.NewString(),
		ItemID: item.ID,
		Date:   now,
		Price:  item.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	metrics.Purchases.WithLabelValues(string(item.Category)).Inc()
	return item, nil
}

// Equip places an owned item in its category slot.
func (m *Manager) Equip(itemID string) error {
	item := Item(itemID)
	if item == nil {
		return fmt.Errorf("equip %s: %w", itemID, domain.ErrItemNotFound)
	}
	owned, err := m.db.IsItemOwned(itemID)
	if err != nil {
		return fmt.Errorf("check ownership: %w", err)
	}
	if !owned {
		return fmt.Errorf("equip %s: %w", itemID, domain.ErrNotOwned)
	}
	return m.db.SetLoadoutSlot(item.Category, itemID)
}

// Unequip clears a category slot.
func (m *Manager) Unequip(cat domain.CosmeticCategory) error {
	return m.db.SetLoadoutSlot(cat, "")
}

// Loadout returns the equipped item per slot. Dangling references
// (items no longer owned or absent from the catalog) read as empty.
func (m *Manager) Loadout() (domain.CosmeticLoadout, error) {
	raw, err := m.db.Loadout()
	if err != nil {
		return domain.CosmeticLoadout{}, err
	}
	owned, err := m.db.OwnedItemIDs()
	if err != nil {
		return domain.CosmeticLoadout{}, err
	}

	var loadout domain.CosmeticLoadout
	for _, cat := range domain.CosmeticCategories() {
		id := raw.Equipped(cat)
		if id == "" || !owned[id] || Item(id) == nil {
			continue
		}
		loadout.Equip(cat, id)
	}
	return loadout, nil
}

// OwnedItems returns the owned catalog entries in one category.
func (m *Manager) OwnedItems(cat domain.CosmeticCategory) ([]domain.CosmeticItem, error) {
	owned, err := m.db.OwnedItemIDs()
	if err != nil {
		return nil, err
	}
	var items []domain.CosmeticItem
	for _, item := range ItemsFor(cat) {
		if owned[item.ID] {
			items = append(items, item)
		}
	}
	return items, nil
}

// PurchaseHistory returns recent purchases, newest first.
func (m *Manager) PurchaseHistory(limit int) ([]domain.CosmeticPurchase, error) {
	return m.db.ListPurchases(limit)
}
