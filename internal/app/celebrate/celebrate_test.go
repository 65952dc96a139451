package celebrate

import (
	"testing"

	"github.com/stepling-app/stepling/internal/domain"
)

func TestTryTrigger_QueuesAndDedupes(t *testing.T) {
	m := NewManager()

	if !m.TryTrigger(domain.StreakMilestone(7)) {
		t.Error("first trigger should queue")
	}
	if m.TryTrigger(domain.StreakMilestone(7)) {
		t.Error("duplicate ID should be rejected while queued")
	}
	if !m.TryTrigger(domain.StreakMilestone(14)) {
		t.Error("different ID should queue")
	}
	if m.Pending() != 2 {
		t.Errorf("pending = %d, want 2", m.Pending())
	}
}

func TestDequeueNext_OnePerSession(t *testing.T) {
	m := NewManager()
	m.TryTrigger(domain.PhaseEvolution(2))
	m.TryTrigger(domain.DailyGoalMet(8000))

	first := m.DequeueNext()
	if first == nil || first.Kind != domain.CelebrationPhaseEvolution {
		t.Fatalf("first dequeue = %+v, want phase evolution (FIFO)", first)
	}
	if second := m.DequeueNext(); second != nil {
		t.Errorf("second dequeue same session = %+v, want nil", second)
	}

	m.ResetSession()
	third := m.DequeueNext()
	if third == nil || third.Kind != domain.CelebrationDailyGoalMet {
		t.Errorf("dequeue after reset = %+v, want daily goal", third)
	}
}

func TestDequeueNext_EmptyQueue(t *testing.T) {
	m := NewManager()
	if got := m.DequeueNext(); got != nil {
		t.Errorf("dequeue on empty queue = %+v, want nil", got)
	}
}

func TestShownEventNeverRepeats(t *testing.T) {
	m := NewManager()
	m.TryTrigger(domain.StreakMilestone(7))
	m.DequeueNext()
	m.ResetSession()

	// Same streak reported by a later update cycle: already shown.
	if m.TryTrigger(domain.StreakMilestone(7)) {
		t.Error("shown event re-queued after session reset")
	}
	if got := m.DequeueNext(); got != nil {
		t.Errorf("dequeue = %+v, want nil", got)
	}
}

func TestMultipleEventsSurfaceAcrossSessions(t *testing.T) {
	m := NewManager()
	m.TryTrigger(domain.PhaseEvolution(2))
	m.TryTrigger(domain.StreakMilestone(7))
	m.TryTrigger(domain.StepMilestone(25_000))

	var kinds []domain.CelebrationKind
	for i := 0; i < 3; i++ {
		if e := m.DequeueNext(); e != nil {
			kinds = append(kinds, e.Kind)
		}
		m.ResetSession()
	}

	want := []domain.CelebrationKind{
		domain.CelebrationPhaseEvolution,
		domain.CelebrationStreakMilestone,
		domain.CelebrationStepMilestone,
	}
	if len(kinds) != len(want) {
		t.Fatalf("surfaced %d events, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %s, want %s (trigger order)", i, kinds[i], want[i])
		}
	}
}
