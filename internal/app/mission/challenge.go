package mission

import (
	"fmt"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/seedrand"
)

// WeekString formats a time as the ISO year-week challenge key,
// e.g. "2026-W35".
func WeekString(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// LoadOrGenerateChallenge returns this week's challenge, generating it
// on first access. Weekly challenges are premium-only; free users get
// nil without error.
func (e *Engine) LoadOrGenerateChallenge(now time.Time, weeklyAverage int, isPremium bool) (*domain.WeeklyChallenge, error) {
	if !isPremium {
		return nil, nil
	}

	week := WeekString(now)
	saved, err := e.db.GetChallenge(week)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if saved != nil {
		return saved, nil
	}

	c := generateChallenge(week, weeklyAverage)
	if err := e.db.UpsertChallenge(c); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}
	return &c, nil
}

// UpdateChallengeProgress re-derives the week's challenge progress
// from the weekly stats snapshot. It returns the coin reward exactly
// once, on the call where the challenge first completes; later calls
// return 0.
func (e *Engine) UpdateChallengeProgress(now time.Time, stats domain.WeeklyStats) (int, error) {
	week := WeekString(now)
	c, err := e.db.GetChallenge(week)
	if err != nil {
		return 0, fmt.Errorf("load challenge: %w", err)
	}
	if c == nil {
		return 0, nil
	}

	progress := deriveChallengeProgress(c.Type, stats)
	if progress != c.Progress {
		if err := e.db.SetChallengeProgress(week, progress); err != nil {
			return 0, fmt.Errorf("update challenge: %w", err)
		}
		c.Progress = progress
	}

	if !c.IsCompleted() {
		return 0, nil
	}
	first, err := e.db.MarkChallengeRewarded(week)
	if err != nil {
		return 0, fmt.Errorf("mark challenge rewarded: %w", err)
	}
	if !first {
		return 0, nil
	}
	return c.CoinReward, nil
}

// Challenge returns the stored challenge for now's week, or nil.
func (e *Engine) Challenge(now time.Time) (*domain.WeeklyChallenge, error) {
	return e.db.GetChallenge(WeekString(now))
}

func deriveChallengeProgress(typ domain.WeeklyChallengeType, stats domain.WeeklyStats) int {
	switch typ {
	case domain.ChallengeTotalSteps:
		return stats.WeeklySteps
	case domain.ChallengeActiveDays:
		return stats.ActiveDays
	case domain.ChallengeStreakWeek:
		return stats.StreakDays
	case domain.ChallengeBigDay:
		return stats.BestDaySteps
	case domain.ChallengeConsistentWeek:
		return stats.ConsistentDays
	}
	return 0
}

// generateChallenge picks one of the five challenge types uniformly
// from the week-seeded RNG and sizes its target.
func generateChallenge(week string, weeklyAverage int) domain.WeeklyChallenge {
	rng := seedrand.FromString(week)

	types := domain.WeeklyChallengeTypes()
	typ := types[rng.Intn(len(types))]

	dailyAvg := weeklyAverage
	if dailyAvg < minDailyAverage {
		dailyAvg = minDailyAverage
	}

	var (
		title  string
		target int
		reward int
	)
	switch typ {
	case domain.ChallengeTotalSteps:
		scaled := int(float64(dailyAvg*7) * rng.Float64InRange(0.9, 1.2))
		target = (scaled / 1000) * 1000
		title = fmt.Sprintf("Walk %d steps this week", target)
		reward = 150
	case domain.ChallengeActiveDays:
		target = 5
		title = "Meet your daily goal 5 days this week"
		reward = 100
	case domain.ChallengeStreakWeek:
		target = 7
		title = "Keep your streak alive all 7 days"
		reward = 200
	case domain.ChallengeBigDay:
		target = 10_000
		title = "Hit 10,000+ steps in a single day"
		reward = 125
	case domain.ChallengeConsistentWeek:
		target = 7
		title = "Walk 5,000+ steps every day this week"
		reward = 175
	}

	return domain.WeeklyChallenge{
		ID:         fmt.Sprintf("%s_%s", week, typ),
		Type:       typ,
		Title:      title,
		Target:     target,
		CoinReward: reward,
		WeekString: week,
	}
}
