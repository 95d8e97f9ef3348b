package generator

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

const systemPrompt = `You are a quiz author generating question sets for a quiz application.

Rules:
- Generate exactly the requested number of questions on the given topic, at the given difficulty, in the given language.
- Return only JSON matching the requested schema: an object with a "questions" array.
- Every question needs a short explanation of the correct answer.
- MCQ: provide exactly 4 distinct, plausible options; "correctAnswer" is the 0-based index of the right one.
- True/False: the statement must be unambiguously true or false; "correctAnswer" is true or false.
- Fill in the Blanks: the question text must contain exactly one "___" placeholder; provide 4 distinct candidate fillers and the 0-based index of the correct one.
- Do not repeat questions within the set.`

// BuildPrompt renders the user message for the given parameters. The
// exact returned string is what gets persisted in quiz history.
func BuildPrompt(p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", p.Topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", p.NumQuestions)
	fmt.Fprintf(&b, "Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&b, "Question type: %s\n", p.QuestionType)
	fmt.Fprintf(&b, "Language: %s\n", p.Language)
	if p.QuestionType == quiz.TypeFillBlank {
		b.WriteString("\nRemember: each question contains exactly one \"___\" blank.\n")
	}
	return b.String()
}
