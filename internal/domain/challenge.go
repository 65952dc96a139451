package domain

// WeeklyChallengeType identifies one of the five premium weekly goals.
type WeeklyChallengeType string

const (
	ChallengeTotalSteps     WeeklyChallengeType = "total_steps"
	ChallengeActiveDays     WeeklyChallengeType = "active_days"
	ChallengeStreakWeek     WeeklyChallengeType = "streak_week"
	ChallengeBigDay         WeeklyChallengeType = "big_day"
	ChallengeConsistentWeek WeeklyChallengeType = "consistent_week"
)

// WeeklyChallengeTypes lists all challenge types in the fixed
// pre-selection order used by the seeded RNG.
func WeeklyChallengeTypes() []WeeklyChallengeType {
	return []WeeklyChallengeType{
		ChallengeTotalSteps,
		ChallengeActiveDays,
		ChallengeStreakWeek,
		ChallengeBigDay,
		ChallengeConsistentWeek,
	}
}

// WeeklyChallenge is the premium-only, week-scoped analog of a daily
// mission. One active challenge per ISO week.
type WeeklyChallenge struct {
	ID         string              `json:"id"`
	Type       WeeklyChallengeType `json:"type"`
	Title      string              `json:"title"`
	Target     int                 `json:"target"`
	Progress   int                 `json:"progress"`
	CoinReward int                 `json:"coin_reward"`
	WeekString string              `json:"week_string"` // e.g. "2026-W35"
}

// IsCompleted reports whether the challenge target has been reached.
func (c WeeklyChallenge) IsCompleted() bool {
	return c.Progress >= c.Target
}

// ProgressFraction returns completion in [0,1] for display.
func (c WeeklyChallenge) ProgressFraction() float64 {
	if c.Target <= 0 {
		return 0
	}
	f := float64(c.Progress) / float64(c.Target)
	if f > 1 {
		f = 1
	}
	return f
}

// WeeklyStats is the snapshot a challenge recompute derives from.
// Callers must only feed non-decreasing inputs within a week; the
// recompute itself is last-writer-wins.
type WeeklyStats struct {
	WeeklySteps    int
	ActiveDays     int // days this week with goal met
	BestDaySteps   int // best single day this week
	StreakDays     int // consecutive goal-met days ending at the latest day
	ConsistentDays int // days this week with >= 5,000 steps
}
