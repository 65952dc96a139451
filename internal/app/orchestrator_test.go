package app

import (
	"testing"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

func newTestOrchestrator(t *testing.T, premium bool, at time.Time) *Orchestrator {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewOrchestrator(db, Config{
		Premium: func() bool { return premium },
		Clock:   func() time.Time { return at },
	})
}

var afternoon = time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

func walletReasons(t *testing.T, o *Orchestrator) map[string]int {
	t.Helper()
	entries, err := o.Coins().History(100)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	reasons := map[string]int{}
	for _, e := range entries {
		reasons[e.Reason] += e.Amount
	}
	return reasons
}

func TestUpdate_PhaseEvolution(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	res, err := o.Update(domain.StepReading{CurrentSteps: 500, CumulativeSteps: 9000})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if res.Phase != 1 || res.PhaseChanged {
		t.Errorf("result = phase %d changed=%v, want phase 1 unchanged", res.Phase, res.PhaseChanged)
	}

	// Crossing 25,000 evolves to phase 2, celebrates, pays 250 coins,
	// and shows the paywall once for free users.
	res, err = o.Update(domain.StepReading{CurrentSteps: 502, CumulativeSteps: 25_001})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if res.Phase != 2 || !res.PhaseChanged {
		t.Errorf("result = phase %d changed=%v, want phase 2 changed", res.Phase, res.PhaseChanged)
	}
	if !res.ShowPaywall {
		t.Error("first phase-2 evolution should flag the paywall for free users")
	}
	if !res.RequestReview {
		t.Error("reaching phase 2 should request a review once")
	}
	if res.Celebration == nil || res.Celebration.Kind != domain.CelebrationPhaseEvolution {
		t.Errorf("celebration = %+v, want phase evolution first", res.Celebration)
	}

	reasons := walletReasons(t, o)
	if reasons["phase_evolution"] != 250 {
		t.Errorf("phase coins = %d, want 250", reasons["phase_evolution"])
	}
	// 25,000 lifetime milestone crossed in the same update.
	if reasons["step_milestone"] != 100 {
		t.Errorf("milestone coins = %d, want 100", reasons["step_milestone"])
	}
}

func TestUpdate_PhaseNeverDecreases(t *testing.T) {
	o := newTestOrchestrator(t, true, afternoon)

	o.Update(domain.StepReading{CurrentSteps: 100, CumulativeSteps: 80_000})
	res, _ := o.Update(domain.StepReading{CurrentSteps: 100, CumulativeSteps: 80_000})
	if res.Phase != 3 {
		t.Fatalf("phase = %d, want 3", res.Phase)
	}

	// A transient lower cumulative reading must not demote.
	res, err := o.Update(domain.StepReading{CurrentSteps: 100, CumulativeSteps: 20_000})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if res.Phase != 3 {
		t.Errorf("phase after lower reading = %d, want 3 (monotonic)", res.Phase)
	}
	state, _ := o.Progress()
	if state.TotalStepsSinceStart != 80_000 {
		t.Errorf("cumulative total = %d, want 80000 preserved", state.TotalStepsSinceStart)
	}
}

func TestUpdate_FreeUserPhaseCap(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	res, _ := o.Update(domain.StepReading{CurrentSteps: 100, CumulativeSteps: 500_000})
	if res.Phase != 2 {
		t.Errorf("free user phase = %d, want capped at 2", res.Phase)
	}
}

func TestUpdate_RedundantCallAwardsNothing(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	reading := domain.StepReading{CurrentSteps: 8000, CumulativeSteps: 30_000}
	first, err := o.Update(reading)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if first.CoinsAwarded == 0 {
		t.Fatal("first update with goal met should award coins")
	}

	again, err := o.Update(reading)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if again.CoinsAwarded != 0 {
		t.Errorf("redundant update awarded %d coins, want 0", again.CoinsAwarded)
	}
}

func TestUpdate_DailyGoalAwardedOnce(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	o.Update(domain.StepReading{CurrentSteps: 3000, CumulativeSteps: 3000})
	o.Update(domain.StepReading{CurrentSteps: 7600, CumulativeSteps: 7600})
	o.Update(domain.StepReading{CurrentSteps: 9000, CumulativeSteps: 9000})

	if got := walletReasons(t, o)["daily_goal"]; got != 25 {
		t.Errorf("daily goal coins = %d, want 25 exactly once", got)
	}
}

func TestUpdate_StreakMilestone(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	// Six goal-met days before today; today's goal completes day 7.
	for offset := 1; offset <= 6; offset++ {
		o.History().RecordDay(afternoon.AddDate(0, 0, -offset), 8000, afternoon)
	}

	res, err := o.Update(domain.StepReading{CurrentSteps: 8000, CumulativeSteps: 56_000})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if res.Streak != 7 {
		t.Fatalf("streak = %d, want 7", res.Streak)
	}
	if got := walletReasons(t, o)["streak_7"]; got != 100 {
		t.Errorf("streak coins = %d, want 100", got)
	}

	// Unchanged streak on the next cycle must not pay again.
	o.Update(domain.StepReading{CurrentSteps: 8100, CumulativeSteps: 56_100})
	if got := walletReasons(t, o)["streak_7"]; got != 100 {
		t.Errorf("streak coins after repeat = %d, want still 100", got)
	}
}

func TestUpdate_PersonalRecordThreshold(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	// A best day of 800 steps updates the record silently.
	o.Update(domain.StepReading{CurrentSteps: 800, CumulativeSteps: 800})
	if got := walletReasons(t, o)["personal_record"]; got != 0 {
		t.Errorf("record coins for 800-step day = %d, want 0", got)
	}
	state, _ := o.Progress()
	if state.BestDaySteps != 800 {
		t.Errorf("BestDaySteps = %d, want 800", state.BestDaySteps)
	}

	o.Update(domain.StepReading{CurrentSteps: 1500, CumulativeSteps: 1500})
	if got := walletReasons(t, o)["personal_record"]; got != 150 {
		t.Errorf("record coins for 1500-step day = %d, want 150", got)
	}
}

func TestUpdate_MissionCompletionPaysOnce(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	res, err := o.Update(domain.StepReading{CurrentSteps: 12_000, CumulativeSteps: 12_000})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(res.CompletedMissions) == 0 {
		t.Fatal("12,000-step day should complete at least one mission")
	}

	again, _ := o.Update(domain.StepReading{CurrentSteps: 12_000, CumulativeSteps: 12_000})
	if len(again.CompletedMissions) != 0 {
		t.Errorf("redundant update reported %d completions, want 0", len(again.CompletedMissions))
	}
}

func TestUpdate_OneCelebrationPerSession(t *testing.T) {
	o := newTestOrchestrator(t, false, afternoon)

	// Goal met and a record in one cycle queue multiple celebrations.
	res, _ := o.Update(domain.StepReading{CurrentSteps: 9000, CumulativeSteps: 12_000})
	if res.Celebration == nil {
		t.Fatal("first update should surface a celebration")
	}

	res, _ = o.Update(domain.StepReading{CurrentSteps: 9001, CumulativeSteps: 12_001})
	if res.Celebration != nil {
		t.Errorf("second celebration in one session = %+v, want nil", res.Celebration)
	}

	o.ResetSession()
	res, _ = o.Update(domain.StepReading{CurrentSteps: 9002, CumulativeSteps: 12_002})
	if res.Celebration == nil {
		t.Error("queued celebration should surface after session reset")
	}
}

func TestUpdate_PremiumWeeklyChallenge(t *testing.T) {
	o := newTestOrchestrator(t, true, afternoon)

	if _, err := o.Update(domain.StepReading{CurrentSteps: 5000, CumulativeSteps: 5000}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	c, err := o.Missions().Challenge(afternoon)
	if err != nil {
		t.Fatalf("Challenge() error: %v", err)
	}
	if c == nil {
		t.Fatal("premium update should generate a weekly challenge")
	}
	if c.WeekString != "2026-W35" {
		t.Errorf("WeekString = %q, want 2026-W35", c.WeekString)
	}
}

func TestUpdate_PaywallCooldown(t *testing.T) {
	clock := afternoon
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	o := NewOrchestrator(db, Config{
		Premium: func() bool { return false },
		Clock:   func() time.Time { return clock },
	})

	// Reach phase 2 and consume the first-show flag.
	res, _ := o.Update(domain.StepReading{CurrentSteps: 100, CumulativeSteps: 30_000})
	if !res.ShowPaywall {
		t.Fatal("expected first paywall at phase 2")
	}

	// Streak milestone the next day: cooldown suppresses re-engagement.
	for offset := 1; offset <= 6; offset++ {
		o.History().RecordDay(clock.AddDate(0, 0, -offset), 8000, clock)
	}
	res, _ = o.Update(domain.StepReading{CurrentSteps: 8000, CumulativeSteps: 38_000})
	if res.Streak != 7 {
		t.Fatalf("streak = %d, want 7", res.Streak)
	}
	if res.ShowPaywall {
		t.Error("paywall re-shown inside the 7-day cooldown")
	}
}
