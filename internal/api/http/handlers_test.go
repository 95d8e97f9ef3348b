package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/generator"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
)

func newTestServer(t *testing.T, genSvc *generator.Service) *httptest.Server {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file:"+t.TempDir()+"/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	store := quiz.NewSQLStore(dbh, "sqlite")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Get("/health", api.HealthHandler(store))
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(auth.HeaderProvider{}))
		pr.Route("/api", func(ar chi.Router) {
			ar.Post("/quizzes", api.CreateQuizHandler(store, log))
			ar.Get("/quizzes", api.ListQuizzesHandler(store, log))
			ar.Get("/quizzes/{quizID}", api.GetQuizDetailHandler(store, log))
			ar.Get("/quizzes/{quizID}/take", api.TakeQuizHandler(store, log))
			ar.Post("/quiz-results", api.RecordResultHandler(store, log))
			ar.Post("/quiz-history", api.RecordHistoryHandler(store, log))
			ar.Get("/statistics", api.StatisticsHandler(store, log))
			if genSvc != nil {
				ar.Post("/quizzes/generate", api.GenerateQuizHandler(genSvc, log))
			}
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, userID string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req, err := nethttp.NewRequest(method, srv.URL+path, buf)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set(auth.HeaderUserID, userID)
		req.Header.Set(auth.HeaderUsername, "user-"+userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func quizBody(numQuestions int, questions []map[string]any) map[string]any {
	return map[string]any{
		"title":        "Capitals",
		"topic":        "Geography",
		"numQuestions": numQuestions,
		"difficulty":   "Easy",
		"questionType": "MCQ",
		"questions":    questions,
	}
}

func mcqQuestion(i int) map[string]any {
	return map[string]any{
		"question":      fmt.Sprintf("Question %d?", i),
		"options":       []string{fmt.Sprintf("a%d", i), "b", "c", "d"},
		"correctAnswer": i % 4,
		"explanation":   "because",
	}
}

func TestMissingIdentityIs401(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/quizzes", "/api/statistics"} {
		resp, body := doJSON(t, srv, nethttp.MethodGet, path, "", nil)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "error", body["status"])
	}
}

func TestHealthNeedsNoAuth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := doJSON(t, srv, nethttp.MethodGet, "/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "up", body["database"])
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)

	questions := []map[string]any{mcqQuestion(1), mcqQuestion(2)}
	resp, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1", quizBody(2, questions))
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, "%v", body)

	created := body["quiz"].(map[string]any)
	quizID := created["id"].(string)
	require.NotEmpty(t, quizID)

	resp, body = doJSON(t, srv, nethttp.MethodGet, "/api/quizzes/"+quizID, "u1", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	got := body["quiz"].(map[string]any)["questions"].([]any)
	require.Len(t, got, 2)
	first := got[0].(map[string]any)
	assert.Equal(t, "Question 1?", first["question"])
	assert.Equal(t, []any{"a1", "b", "c", "d"}, first["options"].([]any))
	assert.Equal(t, float64(1), first["correctAnswer"])
	assert.Equal(t, "because", first["explanation"])
}

func TestCreateQuiz_CountMismatchNeverPersists(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1",
		quizBody(3, []map[string]any{mcqQuestion(1), mcqQuestion(2)}))
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", body["status"])

	_, body = doJSON(t, srv, nethttp.MethodGet, "/api/quizzes", "u1", nil)
	assert.Empty(t, body["quizzes"].([]any))
}

func TestCreateQuiz_NormalizationErrorNamesQuestion(t *testing.T) {
	srv := newTestServer(t, nil)

	bad := mcqQuestion(2)
	bad["question"] = "Capital of France is ___ and ___"
	body := quizBody(2, []map[string]any{mcqQuestion(1), bad})
	body["questionType"] = "Fill in the Blanks"
	body["questions"].([]map[string]any)[0]["question"] = "Capital of Spain is ___"

	resp, decoded := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1", body)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decoded["message"], "question 2")
}

func TestGetQuizDetail_OtherUsersQuizIs404(t *testing.T) {
	srv := newTestServer(t, nil)

	_, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "user-a",
		quizBody(1, []map[string]any{mcqQuestion(1)}))
	quizID := body["quiz"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, srv, nethttp.MethodGet, "/api/quizzes/"+quizID, "user-b", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body, "quiz", "no content leaks on ownership mismatch")
}

func TestTakeQuizWithholdsAnswers(t *testing.T) {
	srv := newTestServer(t, nil)

	_, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1",
		quizBody(1, []map[string]any{mcqQuestion(1)}))
	quizID := body["quiz"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, srv, nethttp.MethodGet, "/api/quizzes/"+quizID+"/take", "u1", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	q := body["quiz"].(map[string]any)["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(-1), q["correctAnswer"])
	assert.Equal(t, "", q["explanation"])
	assert.Len(t, q["options"].([]any), 4)
}

func TestRecordResultFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	_, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1",
		quizBody(2, []map[string]any{mcqQuestion(1), mcqQuestion(2)}))
	quizID := body["quiz"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, srv, nethttp.MethodPost, "/api/quiz-results", "u1", map[string]any{
		"quizId":         quizID,
		"score":          1,
		"totalQuestions": 2,
		"userAnswers": []map[string]any{
			{"questionIndex": 0, "answer": "a1", "correct": true},
			{"questionIndex": 1, "answer": "b", "correct": false},
		},
		"timeTaken": 0,
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, "%v", body)

	// Unknown quiz id is a 400, not a 500.
	resp, _ = doJSON(t, srv, nethttp.MethodPost, "/api/quiz-results", "u1", map[string]any{
		"quizId": "nope", "score": 1, "totalQuestions": 2,
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, srv, nethttp.MethodGet, "/api/quizzes/"+quizID, "u1", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["highest_score"])
	attempts := body["attempts"].([]any)
	require.Len(t, attempts, 1)
}

func TestRecordHistoryFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	_, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes", "u1",
		quizBody(1, []map[string]any{mcqQuestion(1)}))
	quizID := body["quiz"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, srv, nethttp.MethodPost, "/api/quiz-history", "u1", map[string]any{
		"quizId":     quizID,
		"promptUsed": "Topic: Geography\n",
		"generationParameters": map[string]any{
			"topic": "Geography", "difficulty": "Easy", "numQuestions": 1, "questionType": "MCQ",
		},
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, "%v", body)
	h := body["history"].(map[string]any)
	assert.Equal(t, "English", h["language"], "language defaults when omitted")
}

func TestStatisticsEmptyUser(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, srv, nethttp.MethodGet, "/api/statistics", "fresh-user", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	st := body["statistics"].(map[string]any)
	assert.Equal(t, float64(0), st["total_quizzes"])
	assert.Equal(t, float64(0), st["total_attempts"])
	assert.Equal(t, float64(0), st["average_score_percentage"])
	assert.Equal(t, float64(0), st["max_score"])
	assert.Equal(t, "None", st["topics"])
	assert.Equal(t, "None", st["difficulties"])
	assert.Empty(t, st["monthly"])
}

func TestGenerateEndpoint(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"questions": []map[string]any{
			{"question": "Capital of France?", "options": []string{"Paris", "Lyon", "Nice", "Lille"},
				"correctAnswer": 0, "explanation": "capital"},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	svc := generator.NewService(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := newTestServer(t, svc)

	resp, body := doJSON(t, srv, nethttp.MethodPost, "/api/quizzes/generate", "u1", map[string]any{
		"topic": "France", "numQuestions": 1, "difficulty": "Easy", "questionType": "MCQ",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, "%v", body)

	draft := body["draft"].(map[string]any)
	assert.Equal(t, "France Quiz", draft["title"])
	assert.NotEmpty(t, draft["prompt_used"])
	assert.Len(t, draft["questions"].([]any), 1)
}
