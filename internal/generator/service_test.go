package generator

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mockPayload(t *testing.T, questions []map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	return b
}

func validMCQ(prompt string) map[string]any {
	return map[string]any{
		"question":      prompt,
		"options":       []string{"Paris", "Lyon", "Nice", "Lille"},
		"correctAnswer": 0,
		"explanation":   "capital city",
	}
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: mockPayload(t, []map[string]any{validMCQ("Capital of France?"), validMCQ("Capital of Spain?")}),
	})
	svc := NewService(mock, discardLogger())

	draft, err := svc.Generate(context.Background(), Params{
		Topic:        "European Capitals",
		NumQuestions: 2,
		Difficulty:   quiz.DifficultyEasy,
		QuestionType: quiz.TypeMCQ,
	})
	require.NoError(t, err)

	assert.Equal(t, "European Capitals Quiz", draft.Title)
	assert.Len(t, draft.Questions, 2)
	assert.Equal(t, quiz.DefaultLanguage, draft.Params.Language, "language is defaulted")
	assert.NotEmpty(t, draft.PromptUsed)
	assert.Contains(t, draft.PromptUsed, "Topic: European Capitals")
	assert.Contains(t, draft.PromptUsed, "Number of questions: 2")

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, draft.PromptUsed, req.Prompt, "persisted prompt is exactly what was sent")
	assert.Same(t, QuestionSetSchema, req.Schema)
}

func TestGenerate_InvalidParams(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), discardLogger())

	cases := []Params{
		{},                                     // no topic
		{Topic: "X", NumQuestions: 50},         // over limit
		{Topic: "X", Difficulty: "Impossible"}, // bad difficulty
		{Topic: "X", QuestionType: "Essay"},    // bad type
		{Topic: "X", Language: "Klingon"},      // bad language
	}
	for _, p := range cases {
		_, err := svc.Generate(context.Background(), p)
		require.Error(t, err, "%+v", p)
		_, ok := quiz.AsValidation(err)
		assert.True(t, ok, "expected validation error for %+v, got %v", p, err)
	}
}

func TestGenerate_CountMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: mockPayload(t, []map[string]any{validMCQ("Only one?")}),
	})
	svc := NewService(mock, discardLogger())

	_, err := svc.Generate(context.Background(), Params{
		Topic: "X", NumQuestions: 3, Difficulty: quiz.DifficultyEasy, QuestionType: quiz.TypeMCQ,
	})
	require.Error(t, err)
	_, ok := quiz.AsValidation(err)
	assert.True(t, ok)
}

func TestGenerate_NormalizationFailure(t *testing.T) {
	bad := validMCQ("Busted?")
	bad["options"] = []string{"a", "a", "b", "c"}
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: mockPayload(t, []map[string]any{bad}),
	})
	svc := NewService(mock, discardLogger())

	_, err := svc.Generate(context.Background(), Params{
		Topic: "X", NumQuestions: 1, Difficulty: quiz.DifficultyEasy, QuestionType: quiz.TypeMCQ,
	})
	require.Error(t, err)
	ve, ok := quiz.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Message, "duplicate")
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue → provider unavailable
	svc := NewService(mock, discardLogger())

	_, err := svc.Generate(context.Background(), Params{
		Topic: "X", NumQuestions: 1, Difficulty: quiz.DifficultyEasy, QuestionType: quiz.TypeMCQ,
	})
	require.Error(t, err)
	_, ok := quiz.AsValidation(err)
	assert.False(t, ok, "provider failures are not validation errors")
}

func TestParams_ApplyDefaults(t *testing.T) {
	p := Params{Topic: "X"}
	p.ApplyDefaults()

	assert.Equal(t, 5, p.NumQuestions)
	assert.Equal(t, quiz.DifficultyMedium, p.Difficulty)
	assert.Equal(t, quiz.TypeMCQ, p.QuestionType)
	assert.Equal(t, quiz.DefaultLanguage, p.Language)
}

func TestBuildPrompt_FillBlankReminder(t *testing.T) {
	p := Params{Topic: "Rivers", NumQuestions: 2, Difficulty: quiz.DifficultyHard,
		QuestionType: quiz.TypeFillBlank, Language: "English"}
	prompt := BuildPrompt(p)
	assert.Contains(t, prompt, `exactly one "___" blank`)

	p.QuestionType = quiz.TypeMCQ
	assert.NotContains(t, BuildPrompt(p), "___")
}
