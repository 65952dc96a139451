// Package api provides the local HTTP server for Stepling.
// A companion app POSTs step readings in and reads progression state
// (avatar, phase, streak, missions, shop) back out.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stepling-app/stepling/internal/app"
	"github.com/stepling-app/stepling/internal/app/cosmetic"
)

// Server is the Stepling HTTP API server.
type Server struct {
	engine         *app.Orchestrator
	shop           *cosmetic.Manager
	metricsEnabled bool
}

// NewServer creates a new API server over the progression engine.
func NewServer(engine *app.Orchestrator, shop *cosmetic.Manager) *Server {
	return &Server{engine: engine, shop: shop}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/steps", s.handleSteps)
		r.Get("/status", s.handleStatus)
		r.Get("/summary", s.handleSummary)
		r.Get("/avatar", s.handleAvatar)
		r.Get("/phase", s.handlePhase)
		r.Get("/streak", s.handleStreak)
		r.Get("/history", s.handleHistory)
		r.Get("/missions", s.handleMissions)
		r.Get("/challenge", s.handleChallenge)
		r.Get("/coins", s.handleCoins)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/catalog", s.handleShopCatalog)
			r.Get("/featured", s.handleShopFeatured)
			r.Get("/loadout", s.handleShopLoadout)
			r.Post("/purchase", s.handleShopPurchase)
			r.Post("/equip", s.handleShopEquip)
			r.Post("/unequip", s.handleShopUnequip)
		})

		r.Get("/celebrations/next", s.handleCelebrationNext)
		r.Post("/session/reset", s.handleSessionReset)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
