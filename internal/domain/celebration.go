package domain

import "fmt"

// CelebrationKind tags the variant of a celebration event.
type CelebrationKind string

const (
	CelebrationStreakMilestone CelebrationKind = "streak_milestone"
	CelebrationPhaseEvolution  CelebrationKind = "phase_evolution"
	CelebrationDailyGoalMet    CelebrationKind = "daily_goal_met"
	CelebrationPersonalRecord  CelebrationKind = "personal_record"
	CelebrationStepMilestone   CelebrationKind = "step_milestone"
)

// CelebrationEvent is a queued, one-per-session, user-facing milestone.
// Value carries the variant payload (days, phase, steps, cumulative);
// RecordType is set only for personal records.
type CelebrationEvent struct {
	Kind       CelebrationKind `json:"kind"`
	Value      int             `json:"value"`
	RecordType string          `json:"record_type,omitempty"`
}

// StreakMilestone builds a streak celebration for the given day count.
func StreakMilestone(days int) CelebrationEvent {
	return CelebrationEvent{Kind: CelebrationStreakMilestone, Value: days}
}

// PhaseEvolution builds a phase-evolution celebration.
func PhaseEvolution(phase int) CelebrationEvent {
	return CelebrationEvent{Kind: CelebrationPhaseEvolution, Value: phase}
}

// DailyGoalMet builds a daily-goal celebration for today's steps.
func DailyGoalMet(steps int) CelebrationEvent {
	return CelebrationEvent{Kind: CelebrationDailyGoalMet, Value: steps}
}

// PersonalRecord builds a record celebration, e.g. ("Best Day", 14200).
func PersonalRecord(recordType string, value int) CelebrationEvent {
	return CelebrationEvent{Kind: CelebrationPersonalRecord, Value: value, RecordType: recordType}
}

// StepMilestone builds a cumulative-step milestone celebration.
func StepMilestone(cumulative int) CelebrationEvent {
	return CelebrationEvent{Kind: CelebrationStepMilestone, Value: cumulative}
}

// ID is the stable identity used for queue and session dedup.
func (e CelebrationEvent) ID() string {
	switch e.Kind {
	case CelebrationStreakMilestone:
		return fmt.Sprintf("streak_%d", e.Value)
	case CelebrationPhaseEvolution:
		return fmt.Sprintf("phase_%d", e.Value)
	case CelebrationDailyGoalMet:
		return fmt.Sprintf("goal_%d", e.Value)
	case CelebrationPersonalRecord:
		return fmt.Sprintf("record_%s_%d", e.RecordType, e.Value)
	case CelebrationStepMilestone:
		return fmt.Sprintf("milestone_%d", e.Value)
	}
	return string(e.Kind)
}

// Title returns the overlay headline for the event.
func (e CelebrationEvent) Title() string {
	switch e.Kind {
	case CelebrationStreakMilestone:
		return fmt.Sprintf("%d-Day Streak!", e.Value)
	case CelebrationPhaseEvolution:
		return fmt.Sprintf("Phase %d Unlocked!", e.Value)
	case CelebrationDailyGoalMet:
		return "Goal Crushed!"
	case CelebrationPersonalRecord:
		return fmt.Sprintf("New %s!", e.RecordType)
	case CelebrationStepMilestone:
		return fmt.Sprintf("%d Steps!", e.Value)
	}
	return ""
}

// Subtitle returns the overlay detail line for the event.
func (e CelebrationEvent) Subtitle() string {
	switch e.Kind {
	case CelebrationStreakMilestone:
		return fmt.Sprintf("You've walked %d days in a row. Incredible!", e.Value)
	case CelebrationPhaseEvolution:
		return fmt.Sprintf("Your pet evolved to %s!", PhaseName(e.Value))
	case CelebrationDailyGoalMet:
		return fmt.Sprintf("%d steps today. You did it!", e.Value)
	case CelebrationPersonalRecord:
		return fmt.Sprintf("%d steps - a new personal best!", e.Value)
	case CelebrationStepMilestone:
		return fmt.Sprintf("%d total steps and counting!", e.Value)
	}
	return ""
}
