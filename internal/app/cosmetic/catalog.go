// Package cosmetic implements the shop: the static item catalog,
// purchase eligibility, inventory and loadout, and the featured
// rotation.
package cosmetic

import "github.com/stepling-app/stepling/internal/domain"

func md(month, day int) *domain.MonthDay {
	return &domain.MonthDay{Month: month, Day: day}
}

// Catalog returns the full immutable item registry: 10 backgrounds,
// 12 hats, 8 accessories, 7 skins.
func Catalog() []domain.CosmeticItem {
	items := make([]domain.CosmeticItem, 0, len(backgrounds)+len(hats)+len(accessories)+len(skins))
	items = append(items, backgrounds...)
	items = append(items, hats...)
	items = append(items, accessories...)
	items = append(items, skins...)
	return items
}

// Item looks up a catalog entry by ID, or nil.
func Item(id string) *domain.CosmeticItem {
	for _, item := range Catalog() {
		if item.ID == id {
			item := item
			return &item
		}
	}
	return nil
}

// ItemsFor returns the catalog entries in one category.
func ItemsFor(cat domain.CosmeticCategory) []domain.CosmeticItem {
	var items []domain.CosmeticItem
	for _, item := range Catalog() {
		if item.Category == cat {
			items = append(items, item)
		}
	}
	return items
}

var backgrounds = []domain.CosmeticItem{
	{ID: "bg_softglow", Name: "Soft Glow", Category: domain.CategoryBackground, Rarity: domain.RarityCommon, Price: 100},
	{ID: "bg_ocean", Name: "Ocean Wave", Category: domain.CategoryBackground, Rarity: domain.RarityCommon, Price: 150},
	{ID: "bg_sunset", Name: "Sunset Blaze", Category: domain.CategoryBackground, Rarity: domain.RarityUncommon, Price: 300},
	{ID: "bg_forest", Name: "Forest Mist", Category: domain.CategoryBackground, Rarity: domain.RarityUncommon, Price: 300},
	{ID: "bg_electric", Name: "Electric Pulse", Category: domain.CategoryBackground, Rarity: domain.RarityRare, Price: 600},
	{ID: "bg_cherry", Name: "Cherry Blossom", Category: domain.CategoryBackground, Rarity: domain.RarityRare, Price: 600},
	{ID: "bg_galaxy", Name: "Galaxy Swirl", Category: domain.CategoryBackground, Rarity: domain.RarityEpic, Price: 1200, RequiresPremium: true},
	{ID: "bg_northern", Name: "Northern Lights", Category: domain.CategoryBackground, Rarity: domain.RarityEpic, Price: 1200, RequiresPremium: true},
	{ID: "bg_golden", Name: "Golden Flame", Category: domain.CategoryBackground, Rarity: domain.RarityLegendary, Price: 2500, RequiredPhase: 3},
	{ID: "bg_void", Name: "Void Portal", Category: domain.CategoryBackground, Rarity: domain.RarityLegendary, Price: 2500, RequiredPhase: 4},
}

var hats = []domain.CosmeticItem{
	{ID: "hat_baseball", Name: "Baseball Cap", Category: domain.CategoryHat, Rarity: domain.RarityCommon, Price: 100},
	{ID: "hat_beanie", Name: "Beanie", Category: domain.CategoryHat, Rarity: domain.RarityCommon, Price: 100},
	{ID: "hat_headband", Name: "Headband", Category: domain.CategoryHat, Rarity: domain.RarityCommon, Price: 150},
	{ID: "hat_catears", Name: "Cat Ears", Category: domain.CategoryHat, Rarity: domain.RarityUncommon, Price: 300},
	{ID: "hat_crown", Name: "Crown", Category: domain.CategoryHat, Rarity: domain.RarityUncommon, Price: 400},
	{ID: "hat_wizard", Name: "Wizard Hat", Category: domain.CategoryHat, Rarity: domain.RarityRare, Price: 700},
	{ID: "hat_viking", Name: "Viking Helmet", Category: domain.CategoryHat, Rarity: domain.RarityRare, Price: 700},
	{ID: "hat_halo", Name: "Halo", Category: domain.CategoryHat, Rarity: domain.RarityEpic, Price: 1500, RequiresPremium: true},
	{ID: "hat_firecrown", Name: "Fire Crown", Category: domain.CategoryHat, Rarity: domain.RarityEpic, Price: 1500, RequiredStreak: 30},
	// Party Hat is limited but carries no window: always available.
	{ID: "hat_party", Name: "Party Hat", Category: domain.CategoryHat, Rarity: domain.RaritySeasonal, Price: 500, IsLimited: true},
	{ID: "hat_santa", Name: "Pixel Santa", Category: domain.CategoryHat, Rarity: domain.RaritySeasonal, Price: 800, IsLimited: true,
		AvailableFrom: md(12, 1), AvailableTo: md(12, 31)},
	{ID: "hat_legendary", Name: "Legendary Helm", Category: domain.CategoryHat, Rarity: domain.RarityLegendary, Price: 3000, RequiredPhase: 4},
}

var accessories = []domain.CosmeticItem{
	{ID: "acc_scarf", Name: "Scarf", Category: domain.CategoryAccessory, Rarity: domain.RarityCommon, Price: 100},
	{ID: "acc_backpack", Name: "Backpack", Category: domain.CategoryAccessory, Rarity: domain.RarityCommon, Price: 150},
	{ID: "acc_sunglasses", Name: "Sunglasses", Category: domain.CategoryAccessory, Rarity: domain.RarityUncommon, Price: 300},
	{ID: "acc_wings_small", Name: "Wings", Category: domain.CategoryAccessory, Rarity: domain.RarityRare, Price: 800},
	{ID: "acc_shield", Name: "Shield", Category: domain.CategoryAccessory, Rarity: domain.RarityRare, Price: 800, RequiresPremium: true},
	{ID: "acc_lightning", Name: "Lightning Bolt", Category: domain.CategoryAccessory, Rarity: domain.RarityEpic, Price: 1500, RequiresPremium: true},
	{ID: "acc_angel_wings", Name: "Angel Wings", Category: domain.CategoryAccessory, Rarity: domain.RarityLegendary, Price: 3000, RequiredStreak: 100},
	{ID: "acc_sword", Name: "Pixel Sword", Category: domain.CategoryAccessory, Rarity: domain.RarityLegendary, Price: 3000, RequiredTotalSteps: 50_000},
}

var skins = []domain.CosmeticItem{
	{ID: "skin_luffy", Name: "Straw Hat Pirate", Category: domain.CategorySkin, Rarity: domain.RarityEpic, Price: 1000},
	{ID: "skin_naruto", Name: "Orange Ninja", Category: domain.CategorySkin, Rarity: domain.RarityEpic, Price: 1000},
	{ID: "skin_goku", Name: "Saiyan Warrior", Category: domain.CategorySkin, Rarity: domain.RarityEpic, Price: 1000},
	{ID: "skin_tanjiro", Name: "Demon Hunter", Category: domain.CategorySkin, Rarity: domain.RarityEpic, Price: 1000},
	{ID: "skin_eren", Name: "Survey Scout", Category: domain.CategorySkin, Rarity: domain.RarityRare, Price: 800},
	{ID: "skin_kakashi", Name: "Copy Ninja", Category: domain.CategorySkin, Rarity: domain.RarityLegendary, Price: 2000},
	{ID: "skin_gojo", Name: "Cursed Sorcerer", Category: domain.CategorySkin, Rarity: domain.RarityLegendary, Price: 2000},
}

// IsInSeason reports whether a limited item's window contains now.
// Windowless limited items are always in season; cross-month windows
// (e.g. Nov 20 to Jan 5) wrap around the year boundary.
func IsInSeason(item domain.CosmeticItem, month, day int) bool {
	if !item.IsLimited {
		return true
	}
	if item.AvailableFrom == nil || item.AvailableTo == nil {
		return true
	}
	from, to := *item.AvailableFrom, *item.AvailableTo

	if from.Month == to.Month {
		return month == from.Month && day >= from.Day && day <= to.Day
	}
	if month == from.Month {
		return day >= from.Day
	}
	if month == to.Month {
		return day <= to.Day
	}
	if from.Month < to.Month {
		return month > from.Month && month < to.Month
	}
	// Window wraps the year boundary, e.g. Nov 20 through Jan 5.
	return month > from.Month || month < to.Month
}

// SeasonalItems returns the limited items currently in season.
func SeasonalItems(month, day int) []domain.CosmeticItem {
	var items []domain.CosmeticItem
	for _, item := range Catalog() {
		if item.IsLimited && IsInSeason(item, month, day) {
			items = append(items, item)
		}
	}
	return items
}
