package progress

// stepMilestones is the ascending list of lifetime-step thresholds that
// earn a celebration.
var stepMilestones = []int{
	10_000,
	25_000,
	50_000,
	100_000,
	250_000,
	500_000,
	1_000_000,
}

// CheckMilestone reports the highest threshold crossed between the
// previous and current cumulative totals. A large jump (backfill) that
// crosses several thresholds yields only the highest; skipped
// thresholds are not rewarded retroactively.
func CheckMilestone(previousSteps, currentSteps int) (int, bool) {
	crossed := 0
	for _, m := range stepMilestones {
		if previousSteps < m && currentSteps >= m {
			crossed = m
		}
	}
	return crossed, crossed > 0
}

// StreakMilestones is the set of streak day counts that earn a
// celebration.
var StreakMilestones = []int{7, 14, 30, 60, 100, 365}

// IsStreakMilestone reports whether a streak length is a milestone.
func IsStreakMilestone(days int) bool {
	for _, m := range StreakMilestones {
		if days == m {
			return true
		}
	}
	return false
}
