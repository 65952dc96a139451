// Package app wires the progression services into the top-level update
// cycle. Given a new step reading, the orchestrator recomputes avatar
// state, history and streak, phase, missions, records, and
// celebrations in a fixed order, awarding coins along the way.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/stepling-app/stepling/internal/app/avatar"
	"github.com/stepling-app/stepling/internal/app/celebrate"
	"github.com/stepling-app/stepling/internal/app/coin"
	"github.com/stepling-app/stepling/internal/app/history"
	"github.com/stepling-app/stepling/internal/app/mission"
	"github.com/stepling-app/stepling/internal/app/progress"
	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/metrics"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

// Config carries the orchestrator's injected collaborators. Premium is
// read at call time and may change between calls; Clock defaults to
// time.Now.
type Config struct {
	Premium  func() bool
	Clock    func() time.Time
	Baseline int // avatar pacing baseline; 0 uses the default
}

// Orchestrator runs the serialized update cycle over the engine state.
// All mutation happens under one mutex; callers may deliver readings
// from any goroutine.
type Orchestrator struct {
	mu sync.Mutex

	progress     *progress.Service
	history      *history.Manager
	missions     *mission.Engine
	celebrations *celebrate.Manager
	coins        *coin.Service

	premium  func() bool
	clock    func() time.Time
	baseline int
}

// NewOrchestrator builds the engine over one database.
func NewOrchestrator(db *sqlite.DB, cfg Config) *Orchestrator {
	if cfg.Premium == nil {
		cfg.Premium = func() bool { return false }
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Orchestrator{
		progress:     progress.NewService(db),
		history:      history.NewManager(db),
		missions:     mission.NewEngine(db),
		celebrations: celebrate.NewManager(),
		coins:        coin.NewService(db),
		premium:      cfg.Premium,
		clock:        cfg.Clock,
		baseline:     cfg.Baseline,
	}
}

// UpdateResult is the plain-data outcome of one update cycle. The engine
// performs no UI or notification side effects; callers react to these
// fields.
type UpdateResult struct {
	AvatarState       domain.AvatarState       `json:"avatar_state"`
	Phase             int                      `json:"phase"`
	PhaseChanged      bool                     `json:"phase_changed"`
	TodaySteps        int                      `json:"today_steps"`
	WeeklySteps       int                      `json:"weekly_steps"`
	Streak            int                      `json:"streak"`
	LongestStreak     int                      `json:"longest_streak"`
	CoinsAwarded      int                      `json:"coins_awarded"`
	CompletedMissions []domain.DailyMission    `json:"completed_missions,omitempty"`
	Celebration       *domain.CelebrationEvent `json:"celebration,omitempty"`
	ShowPaywall       bool                     `json:"show_paywall"`
	RequestReview     bool                     `json:"request_review"`
}

// Update runs the full cycle for a new step reading. Safe to call
// redundantly with unchanged values; a no-op reading changes nothing
// and awards nothing.
func (o *Orchestrator) Update(reading domain.StepReading) (*UpdateResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	now := o.clock()
	isPremium := o.premium()

	state, err := o.progress.Load()
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{TodaySteps: reading.CurrentSteps}

	// 1. Avatar state from today's pace.
	result.AvatarState = avatar.DetermineState(reading.CurrentSteps, o.baseline, now)

	// 2. History and streak. The pre-update value of today's entry
	// drives the goal-crossed-first-time check later.
	prevToday := 0
	if rec, err := o.history.Day(now); err == nil && rec != nil {
		prevToday = rec.Steps
	}
	if err := o.history.UpdateToday(now, reading.CurrentSteps); err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	streak, err := o.history.CurrentStreak(now)
	if err != nil {
		return nil, fmt.Errorf("compute streak: %w", err)
	}
	result.Streak = streak
	state.CurrentStreak = streak
	if streak > state.LongestStreak {
		state.LongestStreak = streak
	}
	result.LongestStreak = state.LongestStreak

	// 3. Weekly total from the rolling 7-day history.
	week, err := o.history.Last7Days(now)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	for _, rec := range week {
		result.WeeklySteps += rec.Steps
	}
	weeklyAverage := result.WeeklySteps / 7

	// 4. Phase from cumulative steps; applied only when it increases.
	computed := avatar.CurrentPhase(reading.CumulativeSteps, isPremium)
	result.Phase = state.CurrentPhase
	if computed > state.CurrentPhase {
		state.CurrentPhase = computed
		result.Phase = computed
		result.PhaseChanged = true

		o.celebrations.TryTrigger(domain.PhaseEvolution(computed))
		o.award(result, coin.PhaseEvolutionReward, "phase_evolution")

		if computed == 2 && !isPremium && !state.HasSeenPaywall {
			state.HasSeenPaywall = true
			state.LastPaywallDate = &now
			result.ShowPaywall = true
			metrics.PaywallTriggers.Inc()
		}
		if state.CurrentPhase >= 2 && !state.HasRequestedReview {
			state.HasRequestedReview = true
			result.RequestReview = true
		}
	}

	// 5. Mission progress; newly completed missions pay out once.
	missions, err := o.missions.LoadOrGenerate(now, weeklyAverage, isPremium)
	if err != nil {
		return nil, err
	}
	completed, err := o.missions.UpdateProgress(domain.MissionInput{
		TodaySteps:    reading.CurrentSteps,
		CurrentStreak: streak,
		Hour:          now.Hour(),
	})
	if err != nil {
		return nil, err
	}
	result.CompletedMissions = completed
	for _, m := range completed {
		o.award(result, m.CoinReward, "mission:"+string(m.Type))
	}

	// 6. Daily goal crossed for the first time today, and streak
	// milestones. The celebration queue's ID dedup makes redundant
	// update calls award nothing.
	if reading.CurrentSteps >= domain.DailyGoal && prevToday < domain.DailyGoal {
		if o.celebrations.TryTrigger(domain.DailyGoalMet(reading.CurrentSteps)) {
			o.award(result, coin.DailyGoalReward, "daily_goal")
		}
	}
	if progress.IsStreakMilestone(streak) {
		if o.celebrations.TryTrigger(domain.StreakMilestone(streak)) {
			o.award(result, coin.StreakMilestoneReward(streak), fmt.Sprintf("streak_%d", streak))
		}
		if o.tryPaywallReengagement(&state, now, isPremium) {
			result.ShowPaywall = true
		}
	}

	// Re-engagement upsell when a free user clears all three missions.
	if !isPremium && len(missions) == 3 {
		if fresh, err := o.missions.Missions(); err == nil && allComplete(fresh) {
			if o.tryPaywallReengagement(&state, now, isPremium) {
				result.ShowPaywall = true
			}
		}
	}

	// 7. Personal record and cumulative milestones.
	if reading.CurrentSteps > state.BestDaySteps {
		state.BestDaySteps = reading.CurrentSteps
		state.BestDayDate = &now
		if reading.CurrentSteps > 1000 {
			if o.celebrations.TryTrigger(domain.PersonalRecord("Best Day", reading.CurrentSteps)) {
				o.award(result, coin.PersonalRecordReward, "personal_record")
			}
		}
	}
	if milestone, crossed := progress.CheckMilestone(state.TotalStepsSinceStart, reading.CumulativeSteps); crossed {
		if o.celebrations.TryTrigger(domain.StepMilestone(milestone)) {
			o.award(result, coin.StepMilestoneReward(milestone), "step_milestone")
		}
	}

	// Weekly challenge (premium): generate and recompute from weekly
	// aggregates; pays out once on completion.
	if _, err := o.missions.LoadOrGenerateChallenge(now, weeklyAverage, isPremium); err != nil {
		return nil, err
	}
	if isPremium {
		stats, err := o.history.WeeklyStats(now)
		if err != nil {
			return nil, fmt.Errorf("weekly stats: %w", err)
		}
		reward, err := o.missions.UpdateChallengeProgress(now, stats)
		if err != nil {
			return nil, err
		}
		if reward > 0 {
			o.award(result, reward, "weekly_challenge")
		}
	}

	// Persist the snapshot. Cumulative total never decreases even if
	// the source reports a transient lower value.
	if reading.CumulativeSteps > state.TotalStepsSinceStart {
		state.TotalStepsSinceStart = reading.CumulativeSteps
	}
	state.TodaySteps = reading.CurrentSteps
	if active, err := o.history.TotalActiveDays(); err == nil {
		state.TotalActiveDays = active
	}
	if err := o.progress.Save(state); err != nil {
		return nil, err
	}

	// 8. Surface at most one queued celebration.
	result.Celebration = o.celebrations.DequeueNext()

	metrics.UpdateCycles.Inc()
	metrics.UpdateLatency.Observe(time.Since(start).Seconds())
	metrics.StepsToday.Set(float64(reading.CurrentSteps))
	metrics.CurrentPhase.Set(float64(result.Phase))
	metrics.CurrentStreak.Set(float64(streak))
	return result, nil
}

// award pays coins and tallies them on the result. Ledger failures on
// an otherwise-valid cycle are not fatal to the update.
func (o *Orchestrator) award(result *UpdateResult, amount int, reason string) {
	if amount <= 0 {
		return
	}
	if err := o.coins.Award(amount, reason); err != nil {
		return
	}
	result.CoinsAwarded += amount
}

// tryPaywallReengagement flags a paywall prompt for non-premium users
// at phase 2+, at most once per 7 days.
func (o *Orchestrator) tryPaywallReengagement(state *domain.ProgressState, now time.Time, isPremium bool) bool {
	if isPremium || state.CurrentPhase < 2 {
		return false
	}
	if state.LastPaywallDate != nil && now.Sub(*state.LastPaywallDate) < 7*24*time.Hour {
		return false
	}
	state.LastPaywallDate = &now
	metrics.PaywallTriggers.Inc()
	return true
}

func allComplete(missions []domain.DailyMission) bool {
	if len(missions) == 0 {
		return false
	}
	for _, m := range missions {
		if !m.IsCompleted() {
			return false
		}
	}
	return true
}

// ResetSession re-arms the one-celebration-per-session gate; callers
// invoke it when the app returns to the foreground.
func (o *Orchestrator) ResetSession() {
	o.celebrations.ResetSession()
}

// Progress returns the current persisted snapshot.
func (o *Orchestrator) Progress() (domain.ProgressState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress.Load()
}

// Backfill records past days from an external source without running
// celebrations. Backfilled values never lower an already-recorded day.
func (o *Orchestrator) Backfill(days map[string]int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock()
	for date, steps := range days {
		d, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return fmt.Errorf("backfill %q: %w", date, err)
		}
		if err := o.history.RecordDay(d, steps, now); err != nil {
			return err
		}
	}
	return nil
}

// History exposes the read side of the daily history.
func (o *Orchestrator) History() *history.Manager { return o.history }

// Missions exposes the mission engine's read side.
func (o *Orchestrator) Missions() *mission.Engine { return o.missions }

// Coins exposes the coin ledger service.
func (o *Orchestrator) Coins() *coin.Service { return o.coins }

// Celebrations exposes the celebration queue.
func (o *Orchestrator) Celebrations() *celebrate.Manager { return o.celebrations }

// Clock returns the orchestrator's time source.
func (o *Orchestrator) Clock() time.Time { return o.clock() }

// IsPremium reads the entitlement at call time.
func (o *Orchestrator) IsPremium() bool { return o.premium() }

// Baseline returns the configured avatar pacing baseline (0 = default).
func (o *Orchestrator) Baseline() int { return o.baseline }
