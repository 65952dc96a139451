package progress

import (
	"testing"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad_FreshInstallation(t *testing.T) {
	svc := NewService(newTestDB(t))

	state, err := svc.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state.CurrentPhase != 1 {
		t.Errorf("fresh phase = %d, want 1", state.CurrentPhase)
	}
	if state.TotalStepsSinceStart != 0 || state.HasSeenPaywall {
		t.Errorf("fresh state not zeroed: %+v", state)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	svc := NewService(newTestDB(t))

	best := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	saved, err := svc.Mutate(func(s *domain.ProgressState) {
		s.TotalStepsSinceStart = 123_456
		s.CurrentPhase = 3
		s.CurrentStreak = 12
		s.LongestStreak = 40
		s.BestDaySteps = 18_000
		s.BestDayDate = &best
		s.HasSeenPaywall = true
	})
	if err != nil {
		t.Fatalf("Mutate() error: %v", err)
	}

	loaded, err := svc.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.TotalStepsSinceStart != saved.TotalStepsSinceStart ||
		loaded.CurrentPhase != 3 || loaded.LongestStreak != 40 {
		t.Errorf("loaded = %+v, want saved snapshot back", loaded)
	}
	if loaded.BestDayDate == nil || !loaded.BestDayDate.Equal(best) {
		t.Errorf("BestDayDate = %v, want %v", loaded.BestDayDate, best)
	}
}

func TestCheckMilestone(t *testing.T) {
	cases := []struct {
		prev, cur, want int
		crossed         bool
	}{
		{0, 5000, 0, false},
		{9999, 10_000, 10_000, true},
		{10_000, 10_001, 0, false}, // already past
		{24_000, 30_000, 25_000, true},
		// Backfill jump across several thresholds: highest only.
		{5000, 120_000, 100_000, true},
		{999_999, 1_000_000, 1_000_000, true},
		{1_000_000, 2_000_000, 0, false},
	}
	for _, c := range cases {
		got, crossed := CheckMilestone(c.prev, c.cur)
		if got != c.want || crossed != c.crossed {
			t.Errorf("CheckMilestone(%d, %d) = (%d, %v), want (%d, %v)",
				c.prev, c.cur, got, crossed, c.want, c.crossed)
		}
	}
}

func TestIsStreakMilestone(t *testing.T) {
	for _, days := range []int{7, 14, 30, 60, 100, 365} {
		if !IsStreakMilestone(days) {
			t.Errorf("IsStreakMilestone(%d) = false, want true", days)
		}
	}
	for _, days := range []int{0, 1, 6, 8, 15, 99, 364} {
		if IsStreakMilestone(days) {
			t.Errorf("IsStreakMilestone(%d) = true, want false", days)
		}
	}
}
