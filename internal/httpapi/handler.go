package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
	"github.com/gratitudenest/gratitude-service/internal/logging"
)

const maxSubmitPayloadBytes = 64 << 10 // 64KB

type handler struct {
	service *challenge.Service
	logger  *slog.Logger
}

type submitEntryRequest struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

type shareRequest struct {
	Channel string `json:"channel"`
}

// RegisterRoutes registers the challenge and journal routes.
func RegisterRoutes(r chi.Router, svc *challenge.Service, logger *slog.Logger) {
	h := &handler{service: svc, logger: logger}

	r.Route("/v1/challenge", func(r chi.Router) {
		r.Get("/", h.getOverview)
		r.Post("/entries", h.submitEntry)
		r.Post("/reset", h.resetChallenge)
		r.Post("/share", h.recordShare)
		r.Get("/export", h.exportState)
		r.Post("/import", h.importState)
	})

	r.Route("/v1/journal", func(r chi.Router) {
		r.Get("/", h.getJournal)
	})

	r.Route("/v1/prompts", func(r chi.Router) {
		r.Get("/today", h.getTodayPrompt)
	})

	r.Route("/v1/quotes", func(r chi.Router) {
		r.Get("/random", h.getRandomQuote)
	})
}

func (h *handler) getOverview(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	overview, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *handler) submitEntry(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	var req submitEntryRequest
	body := http.MaxBytesReader(w, r.Body, maxSubmitPayloadBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Submit(r.Context(), userID, req.Text, req.Prompt)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	log := logging.WithRequestID(r.Context(), h.logger, middleware.GetReqID(r.Context()))
	if !result.Persisted {
		// Accepted transition that failed to write back; the client keeps
		// working off the returned state for the rest of the session.
		log.Warn("challenge state not persisted", slog.String("userId", userID))
	}
	for _, badge := range result.NewBadges {
		log.Info("badge unlocked",
			slog.String("userId", userID), slog.String("badge", badge))
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *handler) resetChallenge(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	if err := h.service.Reset(r.Context(), userID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *handler) recordShare(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Channel = ""
	}
	if req.Channel == "" {
		req.Channel = "link"
	}

	result, err := h.service.Share(r.Context(), userID, req.Channel)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) exportState(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	state, err := h.service.Export(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="gratitude-journal.json"`)
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) importState(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	var snapshot challenge.ChallengeState
	body := http.MaxBytesReader(w, r.Body, maxSubmitPayloadBytes)
	if err := json.NewDecoder(body).Decode(&snapshot); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid snapshot body")
		return
	}

	state, err := h.service.Import(r.Context(), userID, &snapshot)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) getJournal(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	entries, err := h.service.Journal(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *handler) getTodayPrompt(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, map[string]any{
		"day":    state.CurrentDay,
		"prompt": challenge.PromptForDay(state.CurrentDay),
	})
}

func (h *handler) getRandomQuote(w http.ResponseWriter, r *http.Request) {
	quotes := challenge.Quotes()
	quote := quotes[int(time.Now().UnixNano())%len(quotes)]
	writeJSON(w, http.StatusOK, quote)
}
