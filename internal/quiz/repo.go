package quiz

import "context"

// ListOpts controls quiz list pagination. Page is 1-based.
type ListOpts struct {
	Page  int
	Limit int
}

// ResultStat is one attempt row joined with its quiz's metadata, the
// unit the statistics aggregator consumes.
type ResultStat struct {
	QuizID         string
	Score          int
	TotalQuestions int
	CompletedAt    int64
	Topic          string
	Difficulty     string
}

// Store is the persistence boundary. Every method is scoped to one
// owner id; the owner always comes from the authenticated request,
// never from a client-supplied body field.
type Store interface {
	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	ListQuizzes(ctx context.Context, userID string, opts ListOpts) ([]Summary, Pagination, error)
	GetQuizDetail(ctx context.Context, userID, quizID string) (Detail, error)
	// GetQuizForTaking returns the quiz with correct answers and
	// explanations withheld, for presenting a quiz to take.
	GetQuizForTaking(ctx context.Context, userID, quizID string) (Quiz, error)
	RecordResult(ctx context.Context, r Result) (Result, error)
	RecordHistory(ctx context.Context, h History) (History, error)
	ListResultStats(ctx context.Context, userID string) ([]ResultStat, error)
	Ping(ctx context.Context) error
}
