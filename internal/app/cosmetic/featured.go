package cosmetic

import (
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/seedrand"
)

// The featured shop rotates in 3-day blocks counted from a fixed epoch.
var rotationEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	rotationDays = 3
	featuredSize = 3

	// Knuth multiplicative constant; spreads adjacent rotation indexes
	// into unrelated seeds.
	rotationSeedMultiplier = 2654435761
)

func daysSinceEpoch(now time.Time) int {
	days := int(now.Sub(rotationEpoch).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

// FeaturedItems returns the 3 featured shop items for the current
// rotation block. Premium users see the next rotation a day early.
// Selection is deterministic per block, drawn from non-limited items
// above common rarity, with category variety for the first two picks.
func FeaturedItems(now time.Time, isPremium bool) []domain.CosmeticItem {
	days := daysSinceEpoch(now)
	if isPremium {
		days++
	}
	rotationIndex := days / rotationDays

	rng := seedrand.New(uint64(rotationIndex) * rotationSeedMultiplier)

	var pool []domain.CosmeticItem
	for _, item := range Catalog() {
		if !item.IsLimited && item.Rarity != domain.RarityCommon {
			pool = append(pool, item)
		}
	}
	if len(pool) <= featuredSize {
		return pool
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	result := make([]domain.CosmeticItem, 0, featuredSize)
	used := map[domain.CosmeticCategory]bool{}
	for _, item := range pool {
		if len(result) >= featuredSize {
			break
		}
		if len(result) < featuredSize-1 && used[item.Category] {
			continue
		}
		result = append(result, item)
		used[item.Category] = true
	}

	// Backfill if category variety ran the pool dry.
	for _, item := range pool {
		if len(result) >= featuredSize {
			break
		}
		dup := false
		for _, r := range result {
			if r.ID == item.ID {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, item)
		}
	}
	return result
}

// TimeUntilNextRotation returns how long the current featured block has
// left.
func TimeUntilNextRotation(now time.Time) time.Duration {
	currentBlock := daysSinceEpoch(now) / rotationDays
	nextStart := rotationEpoch.AddDate(0, 0, (currentBlock+1)*rotationDays)
	return nextStart.Sub(now)
}
