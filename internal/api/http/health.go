package http

import (
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
)

// GET /health returns liveness plus a DB connectivity probe. No auth.
func HealthHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			failure(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		success(w, http.StatusOK, map[string]any{"database": "up"})
	}
}
