package quiz

// Difficulty levels accepted for generated quizzes.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question types. The type decides how options and the correct-answer
// index are interpreted, see normalize.go.
const (
	TypeMCQ       = "MCQ"
	TypeTrueFalse = "True/False"
	TypeFillBlank = "Fill in the Blanks"
)

// DefaultLanguage is used when a quiz submission omits the language field.
const DefaultLanguage = "English"

// SupportedLanguages enumerates the languages the generation prompt
// supports. Stored as-is on the quiz row.
var SupportedLanguages = []string{
	"English", "Spanish", "French", "German", "Hindi", "Portuguese", "Japanese",
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	Title        string     `json:"title"`
	Topic        string     `json:"topic,omitempty"`
	NumQuestions int        `json:"num_questions"`
	Difficulty   string     `json:"difficulty"`
	QuestionType string     `json:"question_type"`
	Language     string     `json:"language"`
	Questions    []Question `json:"questions"`
	CreatedAt    int64      `json:"created_at"`
	UpdatedAt    int64      `json:"updated_at"`
}

// Summary is the list-view projection of a quiz: no question bodies,
// annotated with attempt aggregates scoped to the same owner.
type Summary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Topic        string `json:"topic,omitempty"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
	Language     string `json:"language"`
	CreatedAt    int64  `json:"created_at"`
	AttemptCount int    `json:"attempt_count"`
	HighestScore int    `json:"highest_score"` // raw correct count, not a percentage
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Detail is a quiz plus its full attempt history, most recent first.
type Detail struct {
	Quiz         Quiz     `json:"quiz"`
	Attempts     []Result `json:"attempts"`
	HighestScore int      `json:"highest_score"`
	AverageScore float64  `json:"average_score"`
}

// AnswerRecord is one per-question entry in a submitted attempt.
type AnswerRecord struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
}

// Result is one completed attempt at a quiz. Immutable once recorded.
type Result struct {
	ID             string         `json:"id"`
	QuizID         string         `json:"quiz_id"`
	UserID         string         `json:"user_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	UserAnswers    []AnswerRecord `json:"user_answers"`
	TimeTaken      int            `json:"time_taken"` // reserved: clients currently always send 0
	CompletedAt    int64          `json:"completed_at"`
}

// History records one generation event: the exact prompt sent to the
// model plus the parameters that built it. Write-once, for audit/replay.
type History struct {
	ID           string `json:"id"`
	QuizID       string `json:"quiz_id"`
	UserID       string `json:"user_id"`
	PromptUsed   string `json:"prompt_used"`
	Topic        string `json:"topic,omitempty"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
	QuestionType string `json:"question_type"`
	Language     string `json:"language"`
	CreatedAt    int64  `json:"created_at"`
}

// ValidDifficulty reports whether d is one of the accepted levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ValidQuestionType reports whether t is one of the accepted types.
func ValidQuestionType(t string) bool {
	return t == TypeMCQ || t == TypeTrueFalse || t == TypeFillBlank
}

// ValidLanguage reports whether lang is in the supported set.
func ValidLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
