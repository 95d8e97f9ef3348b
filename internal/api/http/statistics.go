package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/stats"
)

// GET /api/statistics
func StatisticsHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		rows, err := store.ListResultStats(r.Context(), id.UserID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusOK, map[string]any{
			"statistics": stats.Compute(rows, time.Now()),
		})
	}
}
