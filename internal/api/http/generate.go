package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizforge/internal/generator"
)

// POST /api/quizzes/generate runs server-side generation for clients
// without their own model API key. The draft is returned, not
// persisted; the client saves it via POST /api/quizzes and records the
// generation event via POST /api/quiz-history.
func GenerateQuizHandler(svc *generator.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity(r); !ok {
			failure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var params generator.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			failure(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		draft, err := svc.Generate(r.Context(), params)
		if err != nil {
			writeError(w, log, err)
			return
		}

		success(w, http.StatusOK, map[string]any{"draft": draft})
	}
}
