// Package mission generates and tracks daily missions and the premium
// weekly challenge. Generation is deterministic per calendar day (or
// ISO week): the same date, weekly average, and premium flag always
// produce the same set.
package mission

import (
	"fmt"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/metrics"
	"github.com/stepling-app/stepling/internal/infra/seedrand"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

const (
	freeMissionCount    = 3
	premiumMissionCount = 5

	// Floor for the weekly average fed into target scaling, so new
	// users with little history still get reachable targets.
	minDailyAverage = 3000
)

// Engine is the daily-mission service.
type Engine struct {
	db *sqlite.DB
}

// NewEngine creates a mission engine.
func NewEngine(db *sqlite.DB) *Engine {
	return &Engine{db: db}
}

// LoadOrGenerate returns today's mission set, generating it if none
// exists for today. If the stored count no longer matches the premium
// entitlement (status flipped mid-day), the set is regenerated with the
// corrected count and same-day progress is discarded.
func (e *Engine) LoadOrGenerate(now time.Time, weeklyAverage int, isPremium bool) ([]domain.DailyMission, error) {
	dateString := now.Format("2006-01-02")
	expected := freeMissionCount
	if isPremium {
		expected = premiumMissionCount
	}

	saved, err := e.db.ListMissions()
	if err != nil {
		return nil, fmt.Errorf("load missions: %w", err)
	}
	if len(saved) == expected && saved[0].DateString == dateString {
		return saved, nil
	}

	missions := generate(dateString, weeklyAverage, expected)
	if err := e.db.ReplaceMissions(missions); err != nil {
		return nil, fmt.Errorf("store missions: %w", err)
	}
	return missions, nil
}

// UpdateProgress re-derives every mission's progress from the live
// state snapshot and returns the missions that completed during this
// call. Progress is recomputed, never accumulated, so repeated calls
// with the same input are idempotent. Completed missions are frozen.
func (e *Engine) UpdateProgress(input domain.MissionInput) ([]domain.DailyMission, error) {
	missions, err := e.db.ListMissions()
	if err != nil {
		return nil, fmt.Errorf("load missions: %w", err)
	}

	var completed []domain.DailyMission
	for i := range missions {
		m := &missions[i]
		if m.IsCompleted() {
			continue
		}

		progress := deriveProgress(*m, input)
		if progress == m.Progress {
			continue
		}
		if err := e.db.SetMissionProgress(m.ID, progress); err != nil {
			return nil, fmt.Errorf("update mission %s: %w", m.ID, err)
		}
		m.Progress = progress
		if m.IsCompleted() {
			completed = append(completed, *m)
			metrics.MissionsCompleted.WithLabelValues(string(m.Type)).Inc()
		}
	}
	return completed, nil
}

// Missions returns the stored mission set without regenerating.
func (e *Engine) Missions() ([]domain.DailyMission, error) {
	return e.db.ListMissions()
}

// deriveProgress maps live state onto one mission's progress value.
func deriveProgress(m domain.DailyMission, in domain.MissionInput) int {
	switch m.Type {
	case domain.MissionStepTarget, domain.MissionGoalCrush:
		return in.TodaySteps
	case domain.MissionMorningWalk:
		// Frozen at whatever was reached once the morning ends.
		if in.Hour < 12 {
			return in.TodaySteps
		}
		return m.Progress
	case domain.MissionEveningPush:
		if in.Hour >= 17 {
			if in.TodaySteps > m.Target {
				return m.Target
			}
			return in.TodaySteps
		}
		return m.Progress
	case domain.MissionStreakExtend:
		if in.TodaySteps >= domain.DailyGoal {
			return 1
		}
		return 0
	case domain.MissionConsistentDay:
		activeHours := in.Hour - 7
		if activeHours < 1 {
			activeHours = 1
		}
		if in.TodaySteps/activeHours >= 500 {
			if activeHours > m.Target {
				return m.Target
			}
			return activeHours
		}
		return m.Progress
	}
	return m.Progress
}

// generate builds the day's mission set from the date-seeded RNG.
func generate(dateString string, weeklyAverage, count int) []domain.DailyMission {
	rng := seedrand.FromString(dateString)

	types := domain.MissionTypes()
	rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})

	dailyAvg := weeklyAverage
	if dailyAvg < minDailyAverage {
		dailyAvg = minDailyAverage
	}

	missions := make([]domain.DailyMission, 0, count)
	for i := 0; i < count; i++ {
		typ := types[i%len(types)]
		missions = append(missions, create(typ, dateString, dailyAvg, i, rng))
	}
	return missions
}

func create(typ domain.MissionType, dateString string, dailyAvg, index int, rng *seedrand.Source) domain.DailyMission {
	var (
		title  string
		target int
		reward int
	)

	switch typ {
	case domain.MissionStepTarget:
		scaled := int(float64(dailyAvg) * rng.Float64InRange(0.7, 1.2))
		target = (scaled / 500) * 500
		title = fmt.Sprintf("Walk %d steps today", target)
		reward = 20
		if target >= domain.DailyGoal {
			reward = 40
		}
	case domain.MissionMorningWalk:
		title = "Hit 1,000 steps before noon"
		target = 1000
		reward = 25
	case domain.MissionEveningPush:
		title = "Walk 2,000 steps after 5pm"
		target = 2000
		reward = 30
	case domain.MissionStreakExtend:
		title = "Keep your streak alive"
		target = 1
		reward = 20
	case domain.MissionGoalCrush:
		target = domain.DailyGoal * 3 / 2
		title = fmt.Sprintf("Crush your goal: hit %d steps", target)
		reward = 50
	case domain.MissionConsistentDay:
		title = "Stay active for 4+ hours (500+ steps/hr)"
		target = 4
		reward = 35
	}

	return domain.DailyMission{
		ID:         fmt.Sprintf("%s_%s_%d", dateString, typ, index),
		Type:       typ,
		Title:      title,
		Target:     target,
		CoinReward: reward,
		DateString: dateString,
	}
}
