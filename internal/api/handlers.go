package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/stepling-app/stepling/internal/app/avatar"
	"github.com/stepling-app/stepling/internal/app/cosmetic"
	"github.com/stepling-app/stepling/internal/domain"
)

// ─── Step Ingest ────────────────────────────────────────────────────────────

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	var reading domain.StepReading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if reading.CurrentSteps < 0 || reading.CumulativeSteps < 0 {
		writeError(w, http.StatusBadRequest, "step counts must be non-negative")
		return
	}

	result, err := s.engine.Update(reading)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Snapshot Reads ─────────────────────────────────────────────────────────

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"phase":       state.CurrentPhase,
		"phase_name":  domain.PhaseName(state.CurrentPhase),
		"today_steps": state.TodaySteps,
		"streak":      state.CurrentStreak,
		"premium":     s.engine.IsPremium(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := s.engine.Clock()
	weekly, err := s.weeklySteps()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	balance, err := s.engine.Coins().Balance()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"avatar_state":            avatar.DetermineState(state.TodaySteps, s.engine.Baseline(), now),
		"phase":                   state.CurrentPhase,
		"phase_name":              domain.PhaseName(state.CurrentPhase),
		"today_steps":             state.TodaySteps,
		"weekly_steps":            weekly,
		"current_streak":          state.CurrentStreak,
		"longest_streak":          state.LongestStreak,
		"best_day_steps":          state.BestDaySteps,
		"total_active_days":       state.TotalActiveDays,
		"total_steps_since_start": state.TotalStepsSinceStart,
		"coin_balance":            balance,
		"premium":                 s.engine.IsPremium(),
	})
}

func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	mood := avatar.DetermineState(state.TodaySteps, s.engine.Baseline(), s.engine.Clock())
	loadout, err := s.shop.Loadout()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":       mood,
		"description": mood.Description(),
		"phase":       state.CurrentPhase,
		"phase_name":  domain.PhaseName(state.CurrentPhase),
		"loadout":     loadout,
	})
}

func (s *Server) handlePhase(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	weekly, err := s.weeklySteps()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"phase":           state.CurrentPhase,
		"phase_name":      domain.PhaseName(state.CurrentPhase),
		"total_steps":     state.TotalStepsSinceStart,
		"next_threshold":  avatar.NextThreshold(state.CurrentPhase),
		"weekly_progress": avatar.WeeklyProgress(weekly, state.CurrentPhase),
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_streak": state.CurrentStreak,
		"longest_streak": state.LongestStreak,
		"daily_goal":     domain.DailyGoal,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}
	records, err := s.engine.History().LastNDays(s.engine.Clock(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days": records,
	})
}

// ─── Missions & Challenge ───────────────────────────────────────────────────

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.engine.Missions().Missions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if missions == nil {
		missions = []domain.DailyMission{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions": missions,
	})
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	if !s.engine.IsPremium() {
		writeError(w, http.StatusForbidden, domain.ErrPremiumRequired.Error())
		return
	}
	challenge, err := s.engine.Missions().Challenge(s.engine.Clock())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if challenge == nil {
		writeError(w, http.StatusNotFound, "no challenge for the current week yet")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// ─── Coins ──────────────────────────────────────────────────────────────────

func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	balance, err := s.engine.Coins().Balance()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	lifetime, err := s.engine.Coins().LifetimeEarned()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	history, err := s.engine.Coins().History(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []domain.CoinLedgerEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":         balance,
		"lifetime_earned": lifetime,
		"history":         history,
	})
}

// ─── Shop ───────────────────────────────────────────────────────────────────

// catalogEntry pairs an item with its eligibility for the current player.
type catalogEntry struct {
	Item        domain.CosmeticItem `json:"item"`
	Eligibility domain.Eligibility  `json:"eligibility"`
	LockMessage string              `json:"lock_message,omitempty"`
}

func (s *Server) playerState() (cosmetic.PlayerState, error) {
	state, err := s.engine.Progress()
	if err != nil {
		return cosmetic.PlayerState{}, err
	}
	return cosmetic.PlayerState{
		IsPremium:  s.engine.IsPremium(),
		Phase:      state.CurrentPhase,
		Streak:     state.CurrentStreak,
		TotalSteps: state.TotalStepsSinceStart,
	}, nil
}

func (s *Server) handleShopCatalog(w http.ResponseWriter, r *http.Request) {
	player, err := s.playerState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := s.engine.Clock()

	items := cosmetic.Catalog()
	if v := r.URL.Query().Get("category"); v != "" {
		cat := domain.CosmeticCategory(v)
		items = cosmetic.ItemsFor(cat)
		if len(items) == 0 {
			writeError(w, http.StatusBadRequest, "unknown category: "+v)
			return
		}
	}

	entries := make([]catalogEntry, 0, len(items))
	for _, item := range items {
		elig, err := s.shop.CanPurchase(item, player, now)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		entries = append(entries, catalogEntry{
			Item:        item,
			Eligibility: elig,
			LockMessage: elig.LockMessage(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": entries,
	})
}

func (s *Server) handleShopFeatured(w http.ResponseWriter, r *http.Request) {
	now := s.engine.Clock()
	items := cosmetic.FeaturedItems(now, s.engine.IsPremium())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":         items,
		"next_rotation": cosmetic.TimeUntilNextRotation(now).Seconds(),
	})
}

func (s *Server) handleShopLoadout(w http.ResponseWriter, r *http.Request) {
	loadout, err := s.shop.Loadout()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	owned := make(map[string][]domain.CosmeticItem, 4)
	for _, cat := range domain.CosmeticCategories() {
		items, err := s.shop.OwnedItems(cat)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []domain.CosmeticItem{}
		}
		owned[string(cat)] = items
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadout": loadout,
		"owned":   owned,
	})
}

func (s *Server) handleShopPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	player, err := s.playerState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := s.engine.Clock()

	item, err := s.shop.Purchase(req.ItemID, player, now)
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrInsufficientCoins):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, domain.ErrNotEligible):
		// Re-run the check to surface which gate blocked the purchase.
		detail := "purchase blocked"
		if cat := cosmetic.Item(req.ItemID); cat != nil {
			if elig, err := s.shop.CanPurchase(*cat, player, now); err == nil {
				if msg := elig.LockMessage(); msg != "" {
					detail = msg
				} else {
					detail = string(elig.Code)
				}
			}
		}
		writeError(w, http.StatusConflict, detail)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	balance, err := s.engine.Coins().Balance()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item":    item,
		"balance": balance,
	})
}

func (s *Server) handleShopEquip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	err := s.shop.Equip(req.ItemID)
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrNotOwned):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	loadout, err := s.shop.Loadout()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadout": loadout,
	})
}

func (s *Server) handleShopUnequip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	cat := domain.CosmeticCategory(req.Category)
	valid := false
	for _, c := range domain.CosmeticCategories() {
		if c == cat {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}

	if err := s.shop.Unequip(cat); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	loadout, err := s.shop.Loadout()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadout": loadout,
	})
}

// ─── Celebrations & Session ─────────────────────────────────────────────────

func (s *Server) handleCelebrationNext(w http.ResponseWriter, r *http.Request) {
	event := s.engine.Celebrations().DequeueNext()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"celebration": event,
		"pending":     s.engine.Celebrations().Pending(),
	})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	s.engine.ResetSession()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// weeklySteps sums the rolling 7-day history, matching the update cycle.
func (s *Server) weeklySteps() (int, error) {
	week, err := s.engine.History().Last7Days(s.engine.Clock())
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range week {
		total += rec.Steps
	}
	return total, nil
}
