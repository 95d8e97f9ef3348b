// Package http holds the REST handlers. Every response uses the
// {"status": "success"|"error"} envelope; failures map to the error
// taxonomy (validation 400, identity 401, not found 404, rest 500).
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/quiz"
)

func writeJSON(w http.ResponseWriter, code int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func success(w http.ResponseWriter, code int, payload map[string]any) {
	body := map[string]any{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, code, body)
}

func failure(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{"status": "error", "message": message})
}

// writeError maps err onto the HTTP error taxonomy. Validation
// messages are user-facing; everything unexpected becomes a generic
// 500 with the detail logged server-side only.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	if ve, ok := quiz.AsValidation(err); ok {
		failure(w, http.StatusBadRequest, ve.Error())
		return
	}
	if errors.Is(err, quiz.ErrNotFound) {
		failure(w, http.StatusNotFound, "quiz not found")
		return
	}
	if errors.Is(err, auth.ErrUnauthenticated) {
		failure(w, http.StatusUnauthorized, "authentication required")
		return
	}
	log.Error("request failed", "err", err)
	failure(w, http.StatusInternalServerError, "internal server error")
}

// identity pulls the authenticated caller from the context. The auth
// middleware guarantees it is present on protected routes.
func identity(r *http.Request) (auth.Identity, bool) {
	return auth.IdentityFromContext(r.Context())
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
