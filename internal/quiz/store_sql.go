package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// validateQuiz enforces the repository-level contract: the declared
// count matches the question array, and choice questions carry options.
func validateQuiz(q Quiz) error {
	if q.Title == "" {
		return Invalid("title is required")
	}
	if !ValidDifficulty(q.Difficulty) {
		return Invalid("difficulty must be Easy, Medium or Hard")
	}
	if !ValidQuestionType(q.QuestionType) {
		return Invalid("unsupported question type %q", q.QuestionType)
	}
	if !ValidLanguage(q.Language) {
		return Invalid("unsupported language %q", q.Language)
	}
	if q.NumQuestions != len(q.Questions) {
		return Invalid("declared question count %d does not match %d questions", q.NumQuestions, len(q.Questions))
	}
	if q.QuestionType != TypeTrueFalse {
		for i, qu := range q.Questions {
			if len(qu.Options) < 2 {
				return invalidAt(i, "choice questions need at least 2 options")
			}
		}
	}
	return nil
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if err := validateQuiz(q); err != nil {
		return Quiz{}, err
	}
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return Quiz{}, fmt.Errorf("marshal questions: %w", err)
	}
	q.ID = uuid.NewString()
	now := time.Now().Unix()
	q.CreatedAt = now
	q.UpdatedAt = now
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes
		(id,user_id,username,title,topic,num_questions,difficulty,question_type,language,questions_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		q.ID, q.UserID, q.Username, q.Title, q.Topic, q.NumQuestions,
		q.Difficulty, q.QuestionType, q.Language, string(qj), q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, userID string, opts ListOpts) ([]Summary, Pagination, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultPageLimit
	}
	if opts.Limit > maxPageLimit {
		opts.Limit = maxPageLimit
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quizzes WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count quizzes: %w", err)
	}

	offset := (opts.Page - 1) * opts.Limit
	rows, err := s.db.QueryContext(ctx, `SELECT
			q.id, q.title, q.topic, q.num_questions, q.difficulty, q.question_type, q.language, q.created_at,
			COUNT(r.id), COALESCE(MAX(r.score), 0)
		FROM quizzes q
		LEFT JOIN quiz_results r ON r.quiz_id = q.id AND r.user_id = q.user_id
		WHERE q.user_id = $1
		GROUP BY q.id, q.title, q.topic, q.num_questions, q.difficulty, q.question_type, q.language, q.created_at
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT $2 OFFSET $3`, userID, opts.Limit, offset)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Topic, &sm.NumQuestions, &sm.Difficulty,
			&sm.QuestionType, &sm.Language, &sm.CreatedAt, &sm.AttemptCount, &sm.HighestScore); err != nil {
			return nil, Pagination{}, fmt.Errorf("scan quiz summary: %w", err)
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	pg := Pagination{
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    opts.Page < totalPages,
	}
	return out, pg, nil
}

func (s *SQLStore) getQuiz(ctx context.Context, userID, quizID string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
			id,user_id,username,title,topic,num_questions,difficulty,question_type,language,questions_json,created_at,updated_at
		FROM quizzes WHERE id=$1 AND user_id=$2`, quizID, userID)
	var q Quiz
	var qjson string
	err := row.Scan(&q.ID, &q.UserID, &q.Username, &q.Title, &q.Topic, &q.NumQuestions,
		&q.Difficulty, &q.QuestionType, &q.Language, &qjson, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrNotFound
	}
	if err != nil {
		return Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("decode questions: %w", err)
	}
	return q, nil
}

func (s *SQLStore) GetQuizDetail(ctx context.Context, userID, quizID string) (Detail, error) {
	q, err := s.getQuiz(ctx, userID, quizID)
	if err != nil {
		return Detail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
			id,quiz_id,user_id,score,total_questions,user_answers_json,time_taken,completed_at
		FROM quiz_results WHERE quiz_id=$1 AND user_id=$2
		ORDER BY completed_at DESC, id DESC`, quizID, userID)
	if err != nil {
		return Detail{}, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	d := Detail{Quiz: q, Attempts: []Result{}}
	sum := 0
	for rows.Next() {
		var r Result
		var ajson string
		if err := rows.Scan(&r.ID, &r.QuizID, &r.UserID, &r.Score, &r.TotalQuestions,
			&ajson, &r.TimeTaken, &r.CompletedAt); err != nil {
			return Detail{}, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(ajson), &r.UserAnswers); err != nil {
			r.UserAnswers = []AnswerRecord{}
		}
		if r.Score > d.HighestScore {
			d.HighestScore = r.Score
		}
		sum += r.Score
		d.Attempts = append(d.Attempts, r)
	}
	if err := rows.Err(); err != nil {
		return Detail{}, err
	}
	if n := len(d.Attempts); n > 0 {
		d.AverageScore = float64(sum) / float64(n)
	}
	return d, nil
}

func (s *SQLStore) GetQuizForTaking(ctx context.Context, userID, quizID string) (Quiz, error) {
	q, err := s.getQuiz(ctx, userID, quizID)
	if err != nil {
		return Quiz{}, err
	}
	// Withhold answers and explanations when serving a quiz to take.
	for i := range q.Questions {
		q.Questions[i].CorrectAnswer = -1
		q.Questions[i].Explanation = ""
	}
	return q, nil
}

func (s *SQLStore) RecordResult(ctx context.Context, r Result) (Result, error) {
	if r.QuizID == "" {
		return Result{}, Invalid("quiz_id is required")
	}
	if r.TotalQuestions <= 0 {
		return Result{}, Invalid("total_questions must be positive")
	}
	if r.Score < 0 || r.Score > r.TotalQuestions {
		return Result{}, Invalid("score must be between 0 and total_questions")
	}
	if r.UserAnswers == nil {
		r.UserAnswers = []AnswerRecord{}
	}
	aj, err := json.Marshal(r.UserAnswers)
	if err != nil {
		return Result{}, fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM quizzes WHERE id=$1 AND user_id=$2`, r.QuizID, r.UserID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, Invalid("referenced quiz does not exist")
	}
	if err != nil {
		return Result{}, fmt.Errorf("check quiz: %w", err)
	}

	r.ID = uuid.NewString()
	r.CompletedAt = time.Now().Unix()
	_, err = tx.ExecContext(ctx, `INSERT INTO quiz_results
		(id,quiz_id,user_id,score,total_questions,user_answers_json,time_taken,completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.QuizID, r.UserID, r.Score, r.TotalQuestions, string(aj), r.TimeTaken, r.CompletedAt)
	if err != nil {
		return Result{}, fmt.Errorf("insert result: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("commit result: %w", err)
	}
	return r, nil
}

func (s *SQLStore) RecordHistory(ctx context.Context, h History) (History, error) {
	if h.QuizID == "" {
		return History{}, Invalid("quiz_id is required")
	}
	if h.PromptUsed == "" {
		return History{}, Invalid("prompt_used is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return History{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM quizzes WHERE id=$1 AND user_id=$2`, h.QuizID, h.UserID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return History{}, Invalid("referenced quiz does not exist")
	}
	if err != nil {
		return History{}, fmt.Errorf("check quiz: %w", err)
	}

	h.ID = uuid.NewString()
	h.CreatedAt = time.Now().Unix()
	_, err = tx.ExecContext(ctx, `INSERT INTO quiz_history
		(id,quiz_id,user_id,prompt_used,topic,difficulty,num_questions,question_type,language,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		h.ID, h.QuizID, h.UserID, h.PromptUsed, h.Topic, h.Difficulty,
		h.NumQuestions, h.QuestionType, h.Language, h.CreatedAt)
	if err != nil {
		return History{}, fmt.Errorf("insert history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return History{}, fmt.Errorf("commit history: %w", err)
	}
	return h, nil
}

func (s *SQLStore) ListResultStats(ctx context.Context, userID string) ([]ResultStat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
			r.quiz_id, r.score, r.total_questions, r.completed_at, q.topic, q.difficulty
		FROM quiz_results r
		JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.user_id = $1
		ORDER BY r.completed_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list result stats: %w", err)
	}
	defer rows.Close()

	out := []ResultStat{}
	for rows.Next() {
		var st ResultStat
		if err := rows.Scan(&st.QuizID, &st.Score, &st.TotalQuestions, &st.CompletedAt,
			&st.Topic, &st.Difficulty); err != nil {
			return nil, fmt.Errorf("scan result stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
