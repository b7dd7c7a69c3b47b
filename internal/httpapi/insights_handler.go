package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
	"github.com/gratitudenest/gratitude-service/internal/insights"
)

type insightsHandler struct {
	service *challenge.Service
}

// RegisterInsightsRoutes registers the word-frequency, heatmap and stats routes.
func RegisterInsightsRoutes(r chi.Router, svc *challenge.Service) {
	h := &insightsHandler{service: svc}

	r.Route("/v1/insights", func(r chi.Router) {
		r.Get("/words", h.getWordFrequencies)
		r.Get("/heatmap", h.getHeatmap)
	})
	r.Get("/v1/journal/stats", h.getStats)
}

func (h *insightsHandler) getWordFrequencies(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	state, err := h.service.State(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	lang := r.URL.Query().Get("lang")
	words := insights.WordFrequencies(state.Entries, lang)
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

func (h *insightsHandler) getHeatmap(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	now := time.Now().UTC()
	month := clampInt(parsePositiveInt(r.URL.Query().Get("month"), int(now.Month())), 1, 12)
	year := clampInt(parsePositiveInt(r.URL.Query().Get("year"), now.Year()), 1970, 2100)

	state, err := h.service.State(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights.Heatmap(state.Entries, month, year, now))
}

func (h *insightsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	state, err := h.service.State(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights.Stats(state))
}
