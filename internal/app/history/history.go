// Package history maintains the rolling daily step history and derives
// streaks, weekly aggregates, and the 7/30-day views from it.
package history

import (
	"fmt"
	"time"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

// ConsistentDayFloor is the step count a day needs to count as
// "consistent" for weekly stats.
const ConsistentDayFloor = 5000

// Manager is the daily-history service.
type Manager struct {
	db *sqlite.DB
}

// NewManager creates a history manager.
func NewManager(db *sqlite.DB) *Manager {
	return &Manager{db: db}
}

// DateKey formats a time as the canonical YYYY-MM-DD history key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// UpdateToday overwrites today's step total. Callers pass the
// authoritative total for the day, not a delta.
func (m *Manager) UpdateToday(now time.Time, steps int) error {
	if steps < 0 {
		steps = 0
	}
	return m.db.UpsertDay(domain.DayRecord{
		Date:    DateKey(now),
		Steps:   steps,
		GoalMet: steps >= domain.DailyGoal,
	})
}

// RecordDay backfills a past day. It never lowers an already-recorded
// value, and rejects dates after today.
func (m *Manager) RecordDay(date time.Time, steps int, now time.Time) error {
	key := DateKey(date)
	if key > DateKey(now) {
		return fmt.Errorf("record day %s: %w", key, domain.ErrFutureDate)
	}
	if steps < 0 {
		steps = 0
	}
	return m.db.UpsertDayIfHigher(domain.DayRecord{
		Date:    key,
		Steps:   steps,
		GoalMet: steps >= domain.DailyGoal,
	})
}

// Day returns the record for a date, or nil if none is recorded.
func (m *Manager) Day(date time.Time) (*domain.DayRecord, error) {
	return m.db.GetDay(DateKey(date))
}

// CurrentStreak counts consecutive goal-met days walking backward from
// yesterday. Today joins the streak as soon as its goal is met, but a
// short today does not break it until the day ends.
func (m *Manager) CurrentStreak(now time.Time) (int, error) {
	byDate, err := m.recentByDate(now, 400)
	if err != nil {
		return 0, err
	}

	streak := 0
	if rec, ok := byDate[DateKey(now)]; ok && rec.GoalMet {
		streak++
	}
	for offset := 1; ; offset++ {
		rec, ok := byDate[DateKey(now.AddDate(0, 0, -offset))]
		if !ok || !rec.GoalMet {
			break
		}
		streak++
	}
	return streak, nil
}

// LastNDays returns a dense slice of n records ending today, oldest
// first, with zero-step placeholders for unrecorded days.
func (m *Manager) LastNDays(now time.Time, n int) ([]domain.DayRecord, error) {
	byDate, err := m.recentByDate(now, n)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DayRecord, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		key := DateKey(now.AddDate(0, 0, -offset))
		if rec, ok := byDate[key]; ok {
			out = append(out, rec)
		} else {
			out = append(out, domain.DayRecord{Date: key})
		}
	}
	return out, nil
}

// Last7Days returns the trailing week's view.
func (m *Manager) Last7Days(now time.Time) ([]domain.DayRecord, error) {
	return m.LastNDays(now, 7)
}

// Last30Days returns the trailing month's view.
func (m *Manager) Last30Days(now time.Time) ([]domain.DayRecord, error) {
	return m.LastNDays(now, 30)
}

// WeeklyTotal sums the steps of the current ISO week (Monday through
// today).
func (m *Manager) WeeklyTotal(now time.Time) (int, error) {
	recs, err := m.currentWeek(now)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range recs {
		total += rec.Steps
	}
	return total, nil
}

// WeeklyAverage returns the average daily steps over the trailing 7
// days, counting unrecorded days as zero.
func (m *Manager) WeeklyAverage(now time.Time) (int, error) {
	recs, err := m.Last7Days(now)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range recs {
		total += rec.Steps
	}
	return total / 7, nil
}

// WeeklyStats derives the aggregate inputs the weekly challenge tracks
// from the current ISO week.
func (m *Manager) WeeklyStats(now time.Time) (domain.WeeklyStats, error) {
	recs, err := m.currentWeek(now)
	if err != nil {
		return domain.WeeklyStats{}, err
	}

	var stats domain.WeeklyStats
	run := 0
	for _, rec := range recs {
		stats.WeeklySteps += rec.Steps
		if rec.Steps > stats.BestDaySteps {
			stats.BestDaySteps = rec.Steps
		}
		if rec.GoalMet {
			stats.ActiveDays++
			run++
		} else {
			run = 0
		}
		if rec.Steps >= ConsistentDayFloor {
			stats.ConsistentDays++
		}
	}
	stats.StreakDays = run
	return stats, nil
}

// BestDay returns the all-time record day, or nil with no history.
func (m *Manager) BestDay() (*domain.DayRecord, error) {
	return m.db.BestDay()
}

// TotalActiveDays returns the lifetime count of days with steps.
func (m *Manager) TotalActiveDays() (int, error) {
	return m.db.ActiveDayCount()
}

// WeekString formats a time as the ISO year-week challenge key,
// e.g. "2026-W09".
func WeekString(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// weekStart returns the Monday of t's ISO week.
func weekStart(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -back)
}

func (m *Manager) currentWeek(now time.Time) ([]domain.DayRecord, error) {
	return m.db.ListDays(DateKey(weekStart(now)), DateKey(now))
}

func (m *Manager) recentByDate(now time.Time, n int) (map[string]domain.DayRecord, error) {
	from := DateKey(now.AddDate(0, 0, -(n - 1)))
	recs, err := m.db.ListDays(from, DateKey(now))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.DayRecord, len(recs))
	for _, rec := range recs {
		byDate[rec.Date] = rec
	}
	return byDate, nil
}
