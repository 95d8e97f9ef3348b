package generator

import "github.com/quizforge/quizforge/internal/llm"

// QuestionSetSchema is the JSON schema requested from the model. It is
// deliberately loose about correctAnswer (the normalizer coerces
// booleans, strings and numbers) but pins the overall shape so obvious
// garbage is rejected before normalization runs.
var QuestionSetSchema = &llm.Schema{
	Name: "quiz-question-set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the user",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for MCQ and Fill in the Blanks; omitted for True/False",
						},
						"correctAnswer": map[string]any{
							"description": "0-based option index, or true/false for True/False questions",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Short explanation of why the answer is correct",
						},
					},
					"required": []any{"question", "correctAnswer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}
