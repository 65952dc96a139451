package history

import (
	"errors"
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

// A Wednesday, so the ISO week spans Monday the 24th through today.
var wednesday = time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

func TestUpdateToday_Overwrites(t *testing.T) {
	m := NewManager(newTestDB(t))

	if err := m.UpdateToday(wednesday, 9000); err != nil {
		t.Fatalf("UpdateToday() error: %v", err)
	}
	// A later sync with a lower authoritative total still wins.
	if err := m.UpdateToday(wednesday, 4000); err != nil {
		t.Fatalf("UpdateToday() error: %v", err)
	}

	rec, err := m.Day(wednesday)
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if rec == nil || rec.Steps != 4000 {
		t.Errorf("rec = %+v, want steps 4000", rec)
	}
	if rec.GoalMet {
		t.Error("4000 steps should not meet the goal")
	}
}

func TestRecordDay_MonotonicBackfill(t *testing.T) {
	m := NewManager(newTestDB(t))
	past := wednesday.AddDate(0, 0, -10)

	m.RecordDay(past, 8000, wednesday)
	m.RecordDay(past, 3000, wednesday) // lower, must not overwrite

	rec, _ := m.Day(past)
	if rec == nil || rec.Steps != 8000 {
		t.Errorf("rec = %+v, want steps 8000 preserved", rec)
	}

	m.RecordDay(past, 12000, wednesday) // higher, wins
	rec, _ = m.Day(past)
	if rec.Steps != 12000 {
		t.Errorf("steps = %d, want 12000", rec.Steps)
	}
}

func TestRecordDay_RejectsFuture(t *testing.T) {
	m := NewManager(newTestDB(t))

	err := m.RecordDay(wednesday.AddDate(0, 0, 1), 500, wednesday)
	if !errors.Is(err, domain.ErrFutureDate) {
		t.Errorf("error = %v, want ErrFutureDate", err)
	}
}

func TestCurrentStreak_WalksBackFromYesterday(t *testing.T) {
	m := NewManager(newTestDB(t))

	for offset := 1; offset <= 5; offset++ {
		m.RecordDay(wednesday.AddDate(0, 0, -offset), 8000, wednesday)
	}

	streak, err := m.CurrentStreak(wednesday)
	if err != nil {
		t.Fatalf("CurrentStreak() error: %v", err)
	}
	if streak != 5 {
		t.Errorf("streak = %d, want 5", streak)
	}
}

func TestCurrentStreak_TodayJoinsOnceGoalMet(t *testing.T) {
	m := NewManager(newTestDB(t))

	m.RecordDay(wednesday.AddDate(0, 0, -1), 8000, wednesday)

	// Today below goal: streak holds at 1, not broken yet.
	m.UpdateToday(wednesday, 3000)
	if streak, _ := m.CurrentStreak(wednesday); streak != 1 {
		t.Errorf("streak with short today = %d, want 1", streak)
	}

	// Today crosses the goal: counts immediately.
	m.UpdateToday(wednesday, 7500)
	if streak, _ := m.CurrentStreak(wednesday); streak != 2 {
		t.Errorf("streak with goal met today = %d, want 2", streak)
	}
}

func TestCurrentStreak_MissedDayBreaks(t *testing.T) {
	m := NewManager(newTestDB(t))

	m.RecordDay(wednesday.AddDate(0, 0, -3), 9000, wednesday)
	m.RecordDay(wednesday.AddDate(0, 0, -2), 2000, wednesday) // missed
	m.RecordDay(wednesday.AddDate(0, 0, -1), 9000, wednesday)

	if streak, _ := m.CurrentStreak(wednesday); streak != 1 {
		t.Errorf("streak = %d, want 1 (broken by missed day)", streak)
	}
}

func TestCurrentStreak_Empty(t *testing.T) {
	m := NewManager(newTestDB(t))
	if streak, _ := m.CurrentStreak(wednesday); streak != 0 {
		t.Errorf("streak with no history = %d, want 0", streak)
	}
}

func TestLast7Days_DenseAndOrdered(t *testing.T) {
	m := NewManager(newTestDB(t))

	m.RecordDay(wednesday.AddDate(0, 0, -2), 6000, wednesday)
	m.UpdateToday(wednesday, 1000)

	recs, err := m.Last7Days(wednesday)
	if err != nil {
		t.Fatalf("Last7Days() error: %v", err)
	}
	if len(recs) != 7 {
		t.Fatalf("len = %d, want 7", len(recs))
	}
	if recs[6].Date != DateKey(wednesday) || recs[6].Steps != 1000 {
		t.Errorf("last entry = %+v, want today with 1000 steps", recs[6])
	}
	if recs[4].Steps != 6000 {
		t.Errorf("recs[4].Steps = %d, want 6000", recs[4].Steps)
	}
	if recs[0].Steps != 0 {
		t.Errorf("unrecorded day steps = %d, want 0 placeholder", recs[0].Steps)
	}
}

func TestWeeklyTotal_ISOWeekOnly(t *testing.T) {
	m := NewManager(newTestDB(t))

	// Sunday the 23rd is the previous ISO week; it must not count.
	m.RecordDay(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), 9999, wednesday)
	m.RecordDay(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), 5000, wednesday)
	m.RecordDay(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), 6000, wednesday)
	m.UpdateToday(wednesday, 1000)

	total, err := m.WeeklyTotal(wednesday)
	if err != nil {
		t.Fatalf("WeeklyTotal() error: %v", err)
	}
	if total != 12000 {
		t.Errorf("total = %d, want 12000", total)
	}
}

func TestWeeklyAverage(t *testing.T) {
	m := NewManager(newTestDB(t))

	for offset := 0; offset < 7; offset++ {
		m.RecordDay(wednesday.AddDate(0, 0, -offset), 7000, wednesday)
	}
	avg, err := m.WeeklyAverage(wednesday)
	if err != nil {
		t.Fatalf("WeeklyAverage() error: %v", err)
	}
	if avg != 7000 {
		t.Errorf("avg = %d, want 7000", avg)
	}
}

func TestWeeklyStats(t *testing.T) {
	m := NewManager(newTestDB(t))

	m.RecordDay(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), 8000, wednesday)
	m.RecordDay(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), 5500, wednesday)
	m.UpdateToday(wednesday, 12000)

	stats, err := m.WeeklyStats(wednesday)
	if err != nil {
		t.Fatalf("WeeklyStats() error: %v", err)
	}
	if stats.WeeklySteps != 25500 {
		t.Errorf("WeeklySteps = %d, want 25500", stats.WeeklySteps)
	}
	if stats.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d, want 2 (goal-met days)", stats.ActiveDays)
	}
	if stats.BestDaySteps != 12000 {
		t.Errorf("BestDaySteps = %d, want 12000", stats.BestDaySteps)
	}
	// Monday met, Tuesday missed, Wednesday met: run ends at 1.
	if stats.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", stats.StreakDays)
	}
	if stats.ConsistentDays != 3 {
		t.Errorf("ConsistentDays = %d, want 3", stats.ConsistentDays)
	}
}

func TestBestDay(t *testing.T) {
	m := NewManager(newTestDB(t))

	if rec, _ := m.BestDay(); rec != nil {
		t.Errorf("BestDay() with no history = %+v, want nil", rec)
	}

	m.RecordDay(wednesday.AddDate(0, 0, -5), 9000, wednesday)
	m.RecordDay(wednesday.AddDate(0, 0, -3), 15000, wednesday)
	m.RecordDay(wednesday.AddDate(0, 0, -1), 11000, wednesday)

	rec, err := m.BestDay()
	if err != nil {
		t.Fatalf("BestDay() error: %v", err)
	}
	if rec.Steps != 15000 {
		t.Errorf("best steps = %d, want 15000", rec.Steps)
	}
}

func TestWeekString(t *testing.T) {
	if ws := WeekString(wednesday); ws != "2026-W35" {
		t.Errorf("WeekString = %q, want 2026-W35", ws)
	}
	// Jan 1 2027 falls in ISO week 53 of 2026.
	jan1 := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if ws := WeekString(jan1); ws != "2026-W53" {
		t.Errorf("WeekString(2027-01-01) = %q, want 2026-W53", ws)
	}
}
