package avatar

// Evolution phase thresholds in cumulative lifetime steps.
// Phases 3 and 4 are premium-gated; free users cap at phase 2.
const (
	Phase2Threshold = 25_000
	Phase3Threshold = 75_000
	Phase4Threshold = 200_000
)

// CurrentPhase computes the phase for a lifetime step total.
// The result is what the steps earn right now; callers must apply it as
// max(existing, computed) — a reached phase is never reversed, even if
// premium lapses.
func CurrentPhase(totalSteps int, isPremium bool) int {
	switch {
	case totalSteps >= Phase4Threshold && isPremium:
		return 4
	case totalSteps >= Phase3Threshold && isPremium:
		return 3
	case totalSteps >= Phase2Threshold:
		return 2
	default:
		return 1
	}
}

// NextThreshold returns the cumulative step total that unlocks the
// phase after the given one. At phase 4 it returns the phase 4
// threshold (the bar reads full).
func NextThreshold(phase int) int {
	switch {
	case phase <= 1:
		return Phase2Threshold
	case phase == 2:
		return Phase3Threshold
	case phase == 3:
		return Phase4Threshold
	default:
		return Phase4Threshold
	}
}

// WeeklyProgress reports display progress toward the next threshold
// using this week's steps as the numerator, clamped to [0,1].
func WeeklyProgress(weeklySteps, phase int) float64 {
	threshold := NextThreshold(phase)
	if threshold <= 0 {
		return 1
	}
	if weeklySteps < 0 {
		weeklySteps = 0
	}
	p := float64(weeklySteps) / float64(threshold)
	if p > 1 {
		p = 1
	}
	return p
}
