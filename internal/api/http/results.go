package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
)

type recordResultRequest struct {
	QuizID         string              `json:"quizId"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"totalQuestions"`
	UserAnswers    []quiz.AnswerRecord `json:"userAnswers"`
	TimeTaken      int                 `json:"timeTaken"` // reserved, recorded as submitted
}

// POST /api/quiz-results
func RecordResultHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req recordResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			failure(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		result, err := store.RecordResult(r.Context(), quiz.Result{
			QuizID:         req.QuizID,
			UserID:         id.UserID,
			Score:          req.Score,
			TotalQuestions: req.TotalQuestions,
			UserAnswers:    req.UserAnswers,
			TimeTaken:      req.TimeTaken,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusCreated, map[string]any{"result": result})
	}
}
