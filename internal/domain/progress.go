package domain

import "time"

// ProgressState is the persisted aggregate record for the single local
// user. Created once per installation; mutated only by the orchestrator
// after each step refresh.
//
// Invariants: CurrentPhase never decreases; CoinBalance (held in the
// coin ledger, mirrored here for snapshots) never goes negative.
type ProgressState struct {
	TotalStepsSinceStart int        `json:"total_steps_since_start"`
	CurrentPhase         int        `json:"current_phase"` // 1..4, monotonic
	TodaySteps           int        `json:"today_steps"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	BestDaySteps         int        `json:"best_day_steps"`
	BestDayDate          *time.Time `json:"best_day_date,omitempty"`
	TotalActiveDays      int        `json:"total_active_days"`
	HasSeenPaywall       bool       `json:"has_seen_paywall"`
	LastPaywallDate      *time.Time `json:"last_paywall_date,omitempty"`
	HasRequestedReview   bool       `json:"has_requested_review"`
}

// NewProgressState returns the initial record for a fresh installation.
func NewProgressState() ProgressState {
	return ProgressState{CurrentPhase: 1}
}

// PhaseName returns the display name for an evolution phase.
func PhaseName(phase int) string {
	switch phase {
	case 1:
		return "Seedling"
	case 2:
		return "Growing"
	case 3:
		return "Thriving"
	case 4:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// DayRecord is one calendar day in the rolling history.
// Past days are immutable once written; only today is overwritten.
type DayRecord struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Steps   int    `json:"steps"`
	GoalMet bool   `json:"goal_met"`
}

// DailyGoal is the step count a day needs to count toward the streak.
const DailyGoal = 7500
