package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/quiz"
)

// createQuizRequest carries raw questions: the body may come straight
// from a generative model, so questions go through the normalizer
// before anything touches the database.
type createQuizRequest struct {
	Title        string             `json:"title"`
	Topic        string             `json:"topic"`
	NumQuestions int                `json:"numQuestions"`
	Difficulty   string             `json:"difficulty"`
	QuestionType string             `json:"questionType"`
	Language     string             `json:"language"`
	Questions    []quiz.RawQuestion `json:"questions"`
}

// POST /api/quizzes
func CreateQuizHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req createQuizRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			failure(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Language == "" {
			req.Language = quiz.DefaultLanguage
		}

		questions, err := quiz.NormalizeQuestions(req.QuestionType, req.Questions)
		if err != nil {
			writeError(w, log, err)
			return
		}

		created, err := store.CreateQuiz(r.Context(), quiz.Quiz{
			UserID:       id.UserID,
			Username:     id.Username,
			Title:        req.Title,
			Topic:        req.Topic,
			NumQuestions: req.NumQuestions,
			Difficulty:   req.Difficulty,
			QuestionType: req.QuestionType,
			Language:     req.Language,
			Questions:    questions,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusCreated, map[string]any{"quiz": created})
	}
}

// GET /api/quizzes?page=&limit=
func ListQuizzesHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		opts := quiz.ListOpts{
			Page:  parseIntDefault(r.URL.Query().Get("page"), 1),
			Limit: parseIntDefault(r.URL.Query().Get("limit"), 10),
		}
		quizzes, pg, err := store.ListQuizzes(r.Context(), id.UserID, opts)
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusOK, map[string]any{
			"quizzes":    quizzes,
			"pagination": pg,
		})
	}
}

// GET /api/quizzes/{quizID}
func GetQuizDetailHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		detail, err := store.GetQuizDetail(r.Context(), id.UserID, chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusOK, map[string]any{
			"quiz":          detail.Quiz,
			"attempts":      detail.Attempts,
			"highest_score": detail.HighestScore,
			"average_score": detail.AverageScore,
		})
	}
}

// GET /api/quizzes/{quizID}/take returns the quiz with answers and explanations withheld.
func TakeQuizHandler(store quiz.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(r)
		if !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		q, err := store.GetQuizForTaking(r.Context(), id.UserID, chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusOK, map[string]any{"quiz": q})
	}
}
