package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
)

type recordHistoryRequest struct {
	QuizID               string `json:"quizId"`
	PromptUsed           string `json:"promptUsed"`
	GenerationParameters struct {
		Topic        string `json:"topic"`
		Difficulty   string `json:"difficulty"`
		NumQuestions int    `json:"numQuestions"`
		QuestionType string `json:"questionType"`
		Language     string `json:"language"`
	} `json:"generationParameters"`
}

// POST /api/quiz-history
func RecordHistoryHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req recordHistoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			failure(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		gp := req.GenerationParameters
		if gp.Language == "" {
			gp.Language = quiz.DefaultLanguage
		}
		h, err := store.RecordHistory(r.Context(), quiz.History{
			QuizID:       req.QuizID,
			UserID:       id.UserID,
			PromptUsed:   req.PromptUsed,
			Topic:        gp.Topic,
			Difficulty:   gp.Difficulty,
			NumQuestions: gp.NumQuestions,
			QuestionType: gp.QuestionType,
			Language:     gp.Language,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusCreated, map[string]any{"history": h})
	}
}
