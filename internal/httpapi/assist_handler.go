package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gratitudenest/gratitude-service/internal/assist"
	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

const assistTimeout = 20 * time.Second

type assistHandler struct {
	service   *challenge.Service
	assistant assist.Assistant
	logger    *slog.Logger
}

type extractKeywordsRequest struct {
	Text string `json:"text"`
}

// RegisterAssistRoutes registers the AI prompt-suggestion and
// keyword-extraction routes. The assistant runs outside the engine; its
// output is plain text handed back to the client.
func RegisterAssistRoutes(r chi.Router, svc *challenge.Service, assistant assist.Assistant, logger *slog.Logger) {
	h := &assistHandler{service: svc, assistant: assistant, logger: logger}

	r.Route("/v1/assist", func(r chi.Router) {
		r.Post("/prompt", h.suggestPrompt)
		r.Post("/keywords", h.extractKeywords)
	})
}

func (h *assistHandler) suggestPrompt(w http.ResponseWriter, r *http.Request) {
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

	past := make([]string, 0, len(state.Entries))
	for _, e := range state.Entries {
		past = append(past, e.Text)
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistTimeout)
	defer cancel()

	prompt, err := h.assistant.SuggestPrompt(ctx, past)
	if err != nil {
		h.logger.Warn("prompt suggestion failed, using daily prompt",
			slog.String("reason", err.Error()))
		prompt = challenge.PromptForDay(state.CurrentDay)
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggested_prompt": prompt})
}

func (h *assistHandler) extractKeywords(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "missing user ID")
		return
	}

	var req extractKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		// Default to the user's whole journal when no text is supplied.
		state, err := h.service.State(r.Context(), userID)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		parts := make([]string, 0, len(state.Entries))
		for _, e := range state.Entries {
			parts = append(parts, e.Text)
		}
		text = strings.Join(parts, "\n")
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistTimeout)
	defer cancel()

	keywords, err := h.assistant.ExtractKeywords(ctx, text)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "keyword extraction unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": keywords})
}
