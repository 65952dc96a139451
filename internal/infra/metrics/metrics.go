// Package metrics provides Prometheus metrics for the Stepling engine.
// Counters and histograms cover the update cycle, coin economy, shop,
// missions, and celebrations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Update Cycle ───────────────────────────────────────────────────────────

// UpdateCycles counts orchestrator update cycles.
var UpdateCycles = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "update_cycles_total",
	Help:      "Total step-reading update cycles processed.",
})

// UpdateLatency tracks update cycle duration in seconds.
var UpdateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "stepling",
	Name:      "update_latency_seconds",
	Help:      "Update cycle duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// StepsToday reports the last observed daily step count.
var StepsToday = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stepling",
	Name:      "steps_today",
	Help:      "Most recent daily step reading.",
})

// CurrentPhase reports the pet's evolution phase.
var CurrentPhase = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stepling",
	Name:      "phase",
	Help:      "Current evolution phase (1-4).",
})

// CurrentStreak reports the active goal streak in days.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stepling",
	Name:      "streak_days",
	Help:      "Current consecutive goal-met day count.",
})

// ─── Coins ──────────────────────────────────────────────────────────────────

// CoinsEarned counts coins credited to the wallet by reason.
var CoinsEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "coins_earned_total",
	Help:      "Total coins earned.",
}, []string{"reason"})

// CoinsSpent counts coins spent in the shop.
var CoinsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "coins_spent_total",
	Help:      "Total coins spent on cosmetics.",
})

// ─── Missions & Celebrations ────────────────────────────────────────────────

// MissionsCompleted counts completed missions by type.
var MissionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "missions_completed_total",
	Help:      "Total daily missions completed.",
}, []string{"type"})

// CelebrationsQueued counts celebration events accepted into the queue.
var CelebrationsQueued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "celebrations_queued_total",
	Help:      "Total celebration events queued.",
}, []string{"kind"})

// CelebrationsShown counts celebrations surfaced to the caller.
var CelebrationsShown = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "celebrations_shown_total",
	Help:      "Total celebrations dequeued for display.",
})

// ─── Shop ───────────────────────────────────────────────────────────────────

// Purchases counts successful cosmetic purchases by category.
var Purchases = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "purchases_total",
	Help:      "Total successful cosmetic purchases.",
}, []string{"category"})

// PurchasesBlocked counts purchase attempts rejected by eligibility gate.
var PurchasesBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "purchases_blocked_total",
	Help:      "Total purchase attempts blocked, by gate.",
}, []string{"gate"})

// PaywallTriggers counts paywall-show flags raised by the engine.
var PaywallTriggers = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "stepling",
	Name:      "paywall_triggers_total",
	Help:      "Total times the engine flagged the paywall.",
})
