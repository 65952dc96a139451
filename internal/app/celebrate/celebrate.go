// Package celebrate queues and dedupes celebration events. At most one
// celebration surfaces per session; the rest wait for the next
// foreground.
package celebrate

import (
	"sync"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/metrics"
)

// Manager is the in-memory celebration queue.
type Manager struct {
	mu       sync.Mutex
	queue    []domain.CelebrationEvent
	shown    map[string]bool
	hasShown bool
}

// NewManager creates an empty celebration manager.
func NewManager() *Manager {
	return &Manager{shown: make(map[string]bool)}
}

// TryTrigger queues an event. Returns false if an event with the same
// derived ID is already queued or was already shown.
func (m *Manager) TryTrigger(event domain.CelebrationEvent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := event.ID()
	if m.shown[id] {
		return false
	}
	for _, queued := range m.queue {
		if queued.ID() == id {
			return false
		}
	}

	m.queue = append(m.queue, event)
	metrics.CelebrationsQueued.WithLabelValues(string(event.Kind)).Inc()
	return true
}

// DequeueNext pops the next celebration to show. Returns nil if one was
// already shown this session or the queue is empty.
func (m *Manager) DequeueNext() *domain.CelebrationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasShown || len(m.queue) == 0 {
		return nil
	}

	event := m.queue[0]
	m.queue = m.queue[1:]
	m.shown[event.ID()] = true
	m.hasShown = true
	metrics.CelebrationsShown.Inc()
	return &event
}

// ResetSession re-arms the one-per-session gate. Shown-event dedup
// survives the reset so the same event never repeats.
func (m *Manager) ResetSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasShown = false
}

// Pending returns the number of queued events.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
