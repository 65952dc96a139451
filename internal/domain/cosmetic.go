package domain

import (
	"fmt"
	"time"
)

// CosmeticCategory is the loadout slot a cosmetic occupies.
type CosmeticCategory string

const (
	CategoryBackground CosmeticCategory = "background"
	CategoryHat        CosmeticCategory = "hat"
	CategoryAccessory  CosmeticCategory = "accessory"
	CategorySkin       CosmeticCategory = "skin"
)

// CosmeticCategories lists all loadout slots.
func CosmeticCategories() []CosmeticCategory {
	return []CosmeticCategory{CategoryBackground, CategoryHat, CategoryAccessory, CategorySkin}
}

// CosmeticRarity orders items for pricing and the featured rotation.
type CosmeticRarity string

const (
	RarityCommon    CosmeticRarity = "common"
	RarityUncommon  CosmeticRarity = "uncommon"
	RarityRare      CosmeticRarity = "rare"
	RarityEpic      CosmeticRarity = "epic"
	RarityLegendary CosmeticRarity = "legendary"
	RaritySeasonal  CosmeticRarity = "seasonal"
)

// MonthDay is a year-agnostic calendar position for seasonal windows.
type MonthDay struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// CosmeticItem is one entry in the immutable catalog.
type CosmeticItem struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Category           CosmeticCategory `json:"category"`
	Rarity             CosmeticRarity   `json:"rarity"`
	Price              int              `json:"price"`
	RequiresPremium    bool             `json:"requires_premium"`
	RequiredPhase      int              `json:"required_phase"`
	RequiredStreak     int              `json:"required_streak"`
	RequiredTotalSteps int              `json:"required_total_steps"`
	IsLimited          bool             `json:"is_limited"`
	AvailableFrom      *MonthDay        `json:"available_from,omitempty"`
	AvailableTo        *MonthDay        `json:"available_to,omitempty"`
}

// CosmeticLoadout is the currently equipped item per slot. A dangling
// reference (item no longer owned or absent from the catalog) is treated
// as an empty slot.
type CosmeticLoadout struct {
	Background string `json:"background,omitempty"`
	Hat        string `json:"hat,omitempty"`
	Accessory  string `json:"accessory,omitempty"`
	Skin       string `json:"skin,omitempty"`
}

// Equipped returns the equipped item ID for a slot ("" when empty).
func (l CosmeticLoadout) Equipped(cat CosmeticCategory) string {
	switch cat {
	case CategoryBackground:
		return l.Background
	case CategoryHat:
		return l.Hat
	case CategoryAccessory:
		return l.Accessory
	case CategorySkin:
		return l.Skin
	}
	return ""
}

// Equip sets the slot for a category; pass "" to unequip.
func (l *CosmeticLoadout) Equip(cat CosmeticCategory, itemID string) {
	switch cat {
	case CategoryBackground:
		l.Background = itemID
	case CategoryHat:
		l.Hat = itemID
	case CategoryAccessory:
		l.Accessory = itemID
	case CategorySkin:
		l.Skin = itemID
	}
}

// CosmeticPurchase records one shop purchase for history.
type CosmeticPurchase struct {
	ID     string    `json:"id"`
	ItemID string    `json:"item_id"`
	Date   time.Time `json:"date"`
	Price  int       `json:"price"`
}

// ─── Purchase Eligibility ───────────────────────────────────────────────────

// EligibilityCode enumerates the ordered purchase gates. Only the first
// failing gate is reported to the caller.
type EligibilityCode string

const (
	EligibilityAlreadyOwned      EligibilityCode = "already_owned"
	EligibilityRequiresPremium   EligibilityCode = "requires_premium"
	EligibilityRequiresPhase     EligibilityCode = "requires_phase"
	EligibilityRequiresStreak    EligibilityCode = "requires_streak"
	EligibilityRequiresSteps     EligibilityCode = "requires_steps"
	EligibilityNotAvailable      EligibilityCode = "not_available"
	EligibilityInsufficientCoins EligibilityCode = "insufficient_coins"
	EligibilityCanBuy            EligibilityCode = "can_buy"
)

// Eligibility is the typed result of a purchase check. Value carries the
// gate's threshold (phase, streak days, steps) or the coin deficit.
type Eligibility struct {
	Code  EligibilityCode `json:"code"`
	Value int             `json:"value,omitempty"`
}

// CanBuy reports whether the item is purchasable right now.
func (e Eligibility) CanBuy() bool { return e.Code == EligibilityCanBuy }

// LockMessage returns the user-facing reason a locked item can't be
// bought, or "" for can_buy / already_owned.
func (e Eligibility) LockMessage() string {
	switch e.Code {
	case EligibilityInsufficientCoins:
		return fmt.Sprintf("Need %d more coins", e.Value)
	case EligibilityRequiresPremium:
		return "Premium required"
	case EligibilityRequiresPhase:
		return fmt.Sprintf("Reach Phase %d", e.Value)
	case EligibilityRequiresStreak:
		return fmt.Sprintf("%d-day streak needed", e.Value)
	case EligibilityRequiresSteps:
		return fmt.Sprintf("%d total steps needed", e.Value)
	case EligibilityNotAvailable:
		return "Not available right now"
	default:
		return ""
	}
}
