package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
)

const maxResponseTokens = 8192

// Draft is a generated, normalized quiz that has not been persisted.
// The client saves it through the quiz endpoints, including PromptUsed
// in the history record.
type Draft struct {
	Title      string          `json:"title"`
	Params     Params          `json:"params"`
	Questions  []quiz.Question `json:"questions"`
	PromptUsed string          `json:"prompt_used"`
	Model      string          `json:"model"`
}

// Service drives one generation: prompt → provider → normalize.
type Service struct {
	provider llm.Provider
	log      *slog.Logger
}

func NewService(provider llm.Provider, log *slog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// Generate produces a normalized draft quiz for the given parameters.
// Any normalization failure is returned as a *quiz.ValidationError;
// nothing unvalidated ever leaves this function.
func (s *Service) Generate(ctx context.Context, p Params) (*Draft, error) {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(p)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Schema:      QuestionSetSchema,
		MaxTokens:   maxResponseTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var payload struct {
		Questions []quiz.RawQuestion `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, quiz.Invalid("model returned malformed JSON")
	}

	questions, err := quiz.NormalizeQuestions(p.QuestionType, payload.Questions)
	if err != nil {
		s.log.Warn("model output failed normalization",
			"model", resp.Model, "topic", p.Topic, "err", err)
		return nil, err
	}
	if len(questions) != p.NumQuestions {
		return nil, quiz.Invalid("model returned %d questions, wanted %d", len(questions), p.NumQuestions)
	}

	return &Draft{
		Title:      fmt.Sprintf("%s Quiz", p.Topic),
		Params:     p,
		Questions:  questions,
		PromptUsed: prompt,
		Model:      resp.Model,
	}, nil
}
