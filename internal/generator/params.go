// Package generator turns generation parameters into a prompt, calls
// the configured model provider, and normalizes the output into a
// canonical question set.
package generator

import (
	"github.com/quizforge/quizforge/internal/quiz"
)

const (
	minQuestions = 1
	maxQuestions = 20
)

// Params is the draft quiz configuration: the tuple a user fills in
// before generating. The same tuple is persisted in quiz history for
// audit/replay. It is an explicit value object with a defined
// lifecycle, built per request and discarded after generation.
type Params struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"numQuestions"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"questionType"`
	Language     string `json:"language"`
}

// ApplyDefaults fills unset optional fields.
func (p *Params) ApplyDefaults() {
	if p.NumQuestions == 0 {
		p.NumQuestions = 5
	}
	if p.Difficulty == "" {
		p.Difficulty = quiz.DifficultyMedium
	}
	if p.QuestionType == "" {
		p.QuestionType = quiz.TypeMCQ
	}
	if p.Language == "" {
		p.Language = quiz.DefaultLanguage
	}
}

// Validate checks the parameter tuple after defaulting.
func (p Params) Validate() error {
	if p.Topic == "" {
		return quiz.Invalid("topic is required")
	}
	if p.NumQuestions < minQuestions || p.NumQuestions > maxQuestions {
		return quiz.Invalid("numQuestions must be between %d and %d", minQuestions, maxQuestions)
	}
	if !quiz.ValidDifficulty(p.Difficulty) {
		return quiz.Invalid("difficulty must be Easy, Medium or Hard")
	}
	if !quiz.ValidQuestionType(p.QuestionType) {
		return quiz.Invalid("unsupported question type %q", p.QuestionType)
	}
	if !quiz.ValidLanguage(p.Language) {
		return quiz.Invalid("unsupported language %q", p.Language)
	}
	return nil
}
