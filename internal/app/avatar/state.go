// Package avatar derives the pet's visible state and evolution phase.
// Both calculators are pure functions over injected inputs (no clocks,
// no storage), so every caller passes its own time.Time.
package avatar

import (
	"time"

	"github.com/stepling-app/stepling/internal/domain"
)

// DefaultBaseline substitutes for users with no step history yet.
const DefaultBaseline = 5000

// DetermineState maps today's steps to a mood by pacing them against
// the baseline over an assumed 08:00–20:00 active day.
//
// Before 08:00 the pet is never low: vital if already past 100 steps,
// neutral otherwise. After that, expected steps grow linearly with the
// active hours passed; >=110% of expected is vital, >=70% neutral,
// below that low.
func DetermineState(currentSteps, baselineSteps int, now time.Time) domain.AvatarState {
	if currentSteps < 0 {
		currentSteps = 0
	}

	hour := now.Hour()
	if hour < 8 {
		if currentSteps > 100 {
			return domain.StateVital
		}
		return domain.StateNeutral
	}

	baseline := float64(baselineSteps)
	if baseline <= 0 {
		baseline = DefaultBaseline
	}

	activeHours := hour - 8
	if activeHours > 12 {
		activeHours = 12
	}
	expected := baseline * float64(activeHours) / 12.0

	steps := float64(currentSteps)
	switch {
	case steps >= expected*1.1:
		return domain.StateVital
	case steps >= expected*0.7:
		return domain.StateNeutral
	default:
		return domain.StateLow
	}
}
