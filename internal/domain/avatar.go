// Package domain holds the pure types of the Stepling progression engine.
// No infrastructure dependencies — services under internal/app operate on
// these types and persist them through internal/infra/sqlite.
package domain

// AvatarState is the pet's current mood, derived from today's steps
// against the expected pace for the hour of day.
type AvatarState string

const (
	StateVital   AvatarState = "vital"
	StateNeutral AvatarState = "neutral"
	StateLow     AvatarState = "low"
)

// Description returns the user-facing label for the state.
func (s AvatarState) Description() string {
	switch s {
	case StateVital:
		return "Vital"
	case StateNeutral:
		return "Neutral"
	case StateLow:
		return "Low Energy"
	default:
		return "Unknown"
	}
}

// StepReading is one refresh from the external step source.
// CurrentSteps resets daily; CumulativeSteps is the monotonic lifetime
// total since the profile start date. Readings may repeat unchanged —
// the engine must treat redundant readings as no-ops.
type StepReading struct {
	CurrentSteps    int `json:"current_steps"`
	CumulativeSteps int `json:"cumulative_steps"`
}
