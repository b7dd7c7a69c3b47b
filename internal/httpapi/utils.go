package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/gratitudenest/gratitude-service/internal/apierrors"
	"github.com/gratitudenest/gratitude-service/internal/auth"
	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

type errorResponse = apierrors.ErrorResponse

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	code := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// respondDomainError translates engine/service rejections into the error
// envelope. Unknown errors become opaque 500s.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var code, message string
	switch {
	case errors.Is(err, challenge.ErrEntryTooShort):
		code, message = "unprocessable", err.Error()
	case errors.Is(err, challenge.ErrAlreadySubmittedToday):
		code, message = "conflict", err.Error()
	case errors.Is(err, challenge.ErrInvalidSnapshot):
		code, message = "bad_request", err.Error()
	case errors.Is(err, challenge.ErrMissingUserID):
		code, message = "unauthorized", err.Error()
	default:
		code, message = "internal", "internal server error"
	}
	writeJSON(w, apierrors.ToStatusCode(code), errorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// requestUserID resolves the subject: the auth middleware context first,
// then the internal service-to-service header.
func requestUserID(r *http.Request) string {
	if user, ok := auth.UserFromContext(r.Context()); ok && user.UserID != "" {
		return user.UserID
	}
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	return r.Header.Get("x-user-id")
}

func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
