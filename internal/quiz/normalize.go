package quiz

import (
	"strconv"
	"strings"
)

// BlankMarker is the placeholder a fill-in-the-blanks prompt must
// contain exactly once.
const BlankMarker = "___"

// RawQuestion is one untyped question object as emitted by the
// generative model. The model is treated as a best-effort JSON emitter:
// every field may be missing, null, or of the wrong type.
type RawQuestion struct {
	Question      any `json:"question"`
	Options       any `json:"options"`
	CorrectAnswer any `json:"correctAnswer"`
	Explanation   any `json:"explanation"`
}

// NormalizeQuestions validates and canonicalizes a raw question batch
// for the given question type. On the first failure the whole batch is
// rejected; the returned error names the offending question. Nothing
// unvalidated is ever persisted.
func NormalizeQuestions(questionType string, raw []RawQuestion) ([]Question, error) {
	if !ValidQuestionType(questionType) {
		return nil, Invalid("unsupported question type %q", questionType)
	}
	if len(raw) == 0 {
		return nil, Invalid("no questions provided")
	}

	out := make([]Question, 0, len(raw))
	for i, rq := range raw {
		q, err := normalizeOne(questionType, i, rq)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func normalizeOne(questionType string, idx int, rq RawQuestion) (Question, error) {
	prompt, ok := rq.Question.(string)
	if !ok || strings.TrimSpace(prompt) == "" {
		return Question{}, invalidAt(idx, "question text is missing or empty")
	}
	prompt = strings.TrimSpace(prompt)

	if rq.CorrectAnswer == nil {
		return Question{}, invalidAt(idx, "correct answer is missing")
	}

	explanation := ""
	if s, ok := rq.Explanation.(string); ok {
		explanation = s
	}

	if questionType == TypeTrueFalse {
		if !strings.HasSuffix(prompt, "?") && !strings.HasSuffix(prompt, ".") {
			prompt += "."
		}
		// Any supplied options are discarded for true/false.
		return Question{
			Question:      prompt,
			Options:       []string{"True", "False"},
			CorrectAnswer: trueFalseIndex(rq.CorrectAnswer),
			Explanation:   explanation,
		}, nil
	}

	options, err := normalizeOptions(idx, rq.Options)
	if err != nil {
		return Question{}, err
	}
	answer, ok := answerIndex(rq.CorrectAnswer)
	if !ok || answer < 0 || answer > 3 {
		return Question{}, invalidAt(idx, "correct answer must be an option index between 0 and 3")
	}

	if questionType == TypeFillBlank {
		if n := strings.Count(prompt, BlankMarker); n != 1 {
			return Question{}, invalidAt(idx, "question must contain exactly one %q blank, found %d", BlankMarker, n)
		}
	}

	return Question{
		Question:      prompt,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
	}, nil
}

func normalizeOptions(idx int, v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidAt(idx, "options must be an array")
	}
	if len(arr) != 4 {
		return nil, invalidAt(idx, "expected 4 options, got %d", len(arr))
	}
	out := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)
	for _, o := range arr {
		s, ok := o.(string)
		if !ok {
			return nil, invalidAt(idx, "options must be strings")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, invalidAt(idx, "options must be non-empty")
		}
		if _, dup := seen[s]; dup {
			return nil, invalidAt(idx, "duplicate option %q", s)
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// trueFalseIndex canonicalizes any boolean-ish representation to an
// option index: truthy values map to 0 ("True"), everything else to 1.
func trueFalseIndex(v any) int {
	switch x := v.(type) {
	case bool:
		if x {
			return 0
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1":
			return 0
		}
	case float64:
		if x == 1 {
			return 0
		}
	case int:
		if x == 1 {
			return 0
		}
	}
	return 1
}

// answerIndex coerces a correct-answer value to an integer index.
func answerIndex(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int(x)) {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
