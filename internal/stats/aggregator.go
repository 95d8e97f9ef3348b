// Package stats derives per-user summary statistics from stored quiz
// results. Everything is computed on read; there is no caching layer.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// monthsBack is how far the monthly series reaches.
const monthsBack = 12

// noneToken renders an empty topic/difficulty set.
const noneToken = "None"

type MonthlyBucket struct {
	Month                  string  `json:"month"` // "2006-01"
	Attempts               int     `json:"attempts"`
	AverageScorePercentage float64 `json:"average_score_percentage"`
}

// Statistics is the derived per-user aggregate. Every numeric field is
// a finite number: zero when no results exist, never null or NaN.
type Statistics struct {
	TotalQuizzes           int             `json:"total_quizzes"`
	TotalAttempts          int             `json:"total_attempts"`
	AverageScorePercentage float64         `json:"average_score_percentage"`
	BestScorePercentage    float64         `json:"best_score_percentage"`
	MaxScore               int             `json:"max_score"` // raw correct count
	FirstAttemptAt         int64           `json:"first_attempt_at"`
	LastAttemptAt          int64           `json:"last_attempt_at"`
	Topics                 string          `json:"topics"`
	Difficulties           string          `json:"difficulties"`
	Monthly                []MonthlyBucket `json:"monthly"`
}

// percentage treats zero-question totals as zero to avoid division faults.
func percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// Compute aggregates one owner's result rows. rows may be empty; the
// result is then all zeros with "None" topic/difficulty strings.
func Compute(rows []quiz.ResultStat, now time.Time) Statistics {
	st := Statistics{
		Topics:       noneToken,
		Difficulties: noneToken,
		Monthly:      []MonthlyBucket{},
	}
	if len(rows) == 0 {
		return st
	}

	quizzes := map[string]struct{}{}
	topics := map[string]struct{}{}
	difficulties := map[string]struct{}{}
	pctSum := 0.0

	for _, r := range rows {
		quizzes[r.QuizID] = struct{}{}
		if t := strings.TrimSpace(r.Topic); t != "" {
			topics[t] = struct{}{}
		}
		if r.Difficulty != "" {
			difficulties[r.Difficulty] = struct{}{}
		}

		pct := percentage(r.Score, r.TotalQuestions)
		pctSum += pct
		if pct > st.BestScorePercentage {
			st.BestScorePercentage = pct
		}
		if r.Score > st.MaxScore {
			st.MaxScore = r.Score
		}
		if st.FirstAttemptAt == 0 || r.CompletedAt < st.FirstAttemptAt {
			st.FirstAttemptAt = r.CompletedAt
		}
		if r.CompletedAt > st.LastAttemptAt {
			st.LastAttemptAt = r.CompletedAt
		}
	}

	st.TotalQuizzes = len(quizzes)
	st.TotalAttempts = len(rows)
	st.AverageScorePercentage = pctSum / float64(len(rows))
	st.Topics = joinSet(topics)
	st.Difficulties = joinSet(difficulties)
	st.Monthly = monthlySeries(rows, now)
	return st
}

func joinSet(set map[string]struct{}) string {
	if len(set) == 0 {
		return noneToken
	}
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return strings.Join(vals, ", ")
}

// monthlySeries buckets attempts by calendar month over the most
// recent 12 months, oldest bucket first. Months without attempts are
// omitted.
func monthlySeries(rows []quiz.ResultStat, now time.Time) []MonthlyBucket {
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := cur.AddDate(0, -(monthsBack - 1), 0)

	type acc struct {
		attempts int
		pctSum   float64
	}
	buckets := map[string]*acc{}
	for _, r := range rows {
		t := time.Unix(r.CompletedAt, 0).UTC()
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		if month.Before(cutoff) || month.After(cur) {
			continue
		}
		key := month.Format("2006-01")
		a := buckets[key]
		if a == nil {
			a = &acc{}
			buckets[key] = a
		}
		a.attempts++
		a.pctSum += percentage(r.Score, r.TotalQuestions)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		a := buckets[k]
		out = append(out, MonthlyBucket{
			Month:                  k,
			Attempts:               a.attempts,
			AverageScorePercentage: a.pctSum / float64(a.attempts),
		})
	}
	return out
}
