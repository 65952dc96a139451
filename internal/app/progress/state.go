// Package progress persists the aggregate progression snapshot and
// detects cumulative-step milestones.
package progress

import (
	"encoding/json"
	"fmt"

	"github.com/stepling-app/stepling/internal/domain"
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

const stateKey = "state"

// Service loads and saves the ProgressState snapshot.
type Service struct {
	db *sqlite.DB
}

// NewService creates a progress service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Load returns the persisted snapshot, or a fresh phase-1 record for a
// new installation.
func (s *Service) Load() (domain.ProgressState, error) {
	raw, err := s.db.GetProgress(stateKey)
	if err != nil {
		return domain.ProgressState{}, fmt.Errorf("load progress: %w", err)
	}
	if raw == "" {
		return domain.NewProgressState(), nil
	}

	var state domain.ProgressState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.ProgressState{}, fmt.Errorf("decode progress: %w", err)
	}
	if state.CurrentPhase < 1 {
		state.CurrentPhase = 1
	}
	return state, nil
}

// Save persists the snapshot, replacing the previous one.
func (s *Service) Save(state domain.ProgressState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.db.SetProgress(stateKey, string(raw)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Mutate loads the snapshot, applies fn, and saves the result.
func (s *Service) Mutate(fn func(*domain.ProgressState)) (domain.ProgressState, error) {
	state, err := s.Load()
	if err != nil {
		return domain.ProgressState{}, err
	}
	fn(&state)
	if err := s.Save(state); err != nil {
		return domain.ProgressState{}, err
	}
	return state, nil
}
