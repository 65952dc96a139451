package domain

// MissionType identifies one of the six daily mission behaviors.
type MissionType string

const (
	MissionStepTarget    MissionType = "step_target"
	MissionMorningWalk   MissionType = "morning_walk"
	MissionEveningPush   MissionType = "evening_push"
	MissionStreakExtend  MissionType = "streak_extend"
	MissionGoalCrush     MissionType = "goal_crush"
	MissionConsistentDay MissionType = "consistent_day"
)

// MissionTypes lists all mission types in a fixed order. The order is
// part of the deterministic generation contract — it is the pre-shuffle
// order fed to the seeded RNG.
func MissionTypes() []MissionType {
	return []MissionType{
		MissionStepTarget,
		MissionMorningWalk,
		MissionEveningPush,
		MissionStreakExtend,
		MissionGoalCrush,
		MissionConsistentDay,
	}
}

// DailyMission is a single regenerating micro-goal.
// Regenerated wholesale each calendar day; no carry-over.
type DailyMission struct {
	ID         string      `json:"id"`
	Type       MissionType `json:"type"`
	Title      string      `json:"title"`
	Target     int         `json:"target"`
	Progress   int         `json:"progress"`
	CoinReward int         `json:"coin_reward"`
	DateString string      `json:"date_string"` // YYYY-MM-DD
}

// IsCompleted reports whether the mission target has been reached.
func (m DailyMission) IsCompleted() bool {
	return m.Progress >= m.Target
}

// ProgressFraction returns completion in [0,1] for display.
func (m DailyMission) ProgressFraction() float64 {
	if m.Target <= 0 {
		return 0
	}
	f := float64(m.Progress) / float64(m.Target)
	if f > 1 {
		f = 1
	}
	return f
}

// MissionInput is the live state a progress recompute derives from.
// Progress is re-derived from this snapshot on every update, never
// accumulated from deltas.
type MissionInput struct {
	TodaySteps    int
	CurrentStreak int
	Hour          int
}
