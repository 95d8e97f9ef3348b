package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMCQ(prompt string, options []any, answer any) RawQuestion {
	return RawQuestion{
		Question:      prompt,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   "because",
	}
}

func TestNormalizeMCQ_Valid(t *testing.T) {
	qs, err := NormalizeQuestions(TypeMCQ, []RawQuestion{
		rawMCQ("Capital of France?", []any{"Paris", "Lyon", "Nice", "Lille"}, float64(0)),
		rawMCQ("2+2?", []any{" 3", "4 ", "5", "6"}, "1"),
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	for _, q := range qs {
		assert.Len(t, q.Options, 4)
		seen := map[string]bool{}
		for _, o := range q.Options {
			assert.NotEmpty(t, o)
			assert.Equal(t, strings.TrimSpace(o), o)
			assert.False(t, seen[o], "options must be distinct")
			seen[o] = true
		}
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.LessOrEqual(t, q.CorrectAnswer, 3)
	}
	assert.Equal(t, 1, qs[1].CorrectAnswer, "string answers are coerced to ints")
}

func TestNormalizeMCQ_Rejections(t *testing.T) {
	tests := []struct {
		name string
		q    RawQuestion
		want string
	}{
		{"missing prompt", RawQuestion{CorrectAnswer: float64(0), Options: []any{"a", "b", "c", "d"}}, "question text"},
		{"blank prompt", rawMCQ("   ", []any{"a", "b", "c", "d"}, float64(0)), "question text"},
		{"nil answer", RawQuestion{Question: "q?", Options: []any{"a", "b", "c", "d"}}, "correct answer"},
		{"options not array", RawQuestion{Question: "q?", Options: "abc", CorrectAnswer: float64(0)}, "options must be an array"},
		{"three options", rawMCQ("q?", []any{"a", "b", "c"}, float64(0)), "expected 4 options"},
		{"empty option", rawMCQ("q?", []any{"a", " ", "c", "d"}, float64(0)), "non-empty"},
		{"duplicate options", rawMCQ("q?", []any{"a", "a ", "c", "d"}, float64(0)), "duplicate"},
		{"answer out of range", rawMCQ("q?", []any{"a", "b", "c", "d"}, float64(4)), "between 0 and 3"},
		{"answer negative", rawMCQ("q?", []any{"a", "b", "c", "d"}, float64(-1)), "between 0 and 3"},
		{"answer not parseable", rawMCQ("q?", []any{"a", "b", "c", "d"}, "first"), "between 0 and 3"},
		{"answer fractional", rawMCQ("q?", []any{"a", "b", "c", "d"}, 1.5), "between 0 and 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeQuestions(TypeMCQ, []RawQuestion{tt.q})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalize_FirstErrorWins(t *testing.T) {
	_, err := NormalizeQuestions(TypeMCQ, []RawQuestion{
		rawMCQ("ok?", []any{"a", "b", "c", "d"}, float64(0)),
		rawMCQ("bad", []any{"a", "b"}, float64(0)),
		rawMCQ("", nil, nil),
	})
	require.Error(t, err)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Index, "error reports the first offending question")
}

func TestNormalizeTrueFalse_Coercion(t *testing.T) {
	truthy := []any{true, "true", "TRUE ", "1", float64(1), 1}
	falsy := []any{false, "false", "0", float64(0), 0, "yes", "nope", float64(2)}

	for _, v := range truthy {
		qs, err := NormalizeQuestions(TypeTrueFalse, []RawQuestion{{Question: "The sky is blue", CorrectAnswer: v}})
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, 0, qs[0].CorrectAnswer, "value %v should be truthy", v)
	}
	for _, v := range falsy {
		qs, err := NormalizeQuestions(TypeTrueFalse, []RawQuestion{{Question: "The sky is green", CorrectAnswer: v}})
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, 1, qs[0].CorrectAnswer, "value %v should be falsy", v)
	}
}

func TestNormalizeTrueFalse_Canonicalization(t *testing.T) {
	qs, err := NormalizeQuestions(TypeTrueFalse, []RawQuestion{
		{Question: "Water boils at 100C", CorrectAnswer: true, Options: []any{"ignored", "stuff"}},
		{Question: "Is ice cold?", CorrectAnswer: true},
		{Question: "Done.", CorrectAnswer: false},
	})
	require.NoError(t, err)

	// Supplied options are discarded; the fixed pair is always used.
	assert.Equal(t, []string{"True", "False"}, qs[0].Options)
	// A terminal "." is appended when the prompt ends with neither "?" nor ".".
	assert.Equal(t, "Water boils at 100C.", qs[0].Question)
	assert.Equal(t, "Is ice cold?", qs[1].Question)
	assert.Equal(t, "Done.", qs[2].Question)
}

func TestNormalizeFillBlank_BlankMarker(t *testing.T) {
	qs, err := NormalizeQuestions(TypeFillBlank, []RawQuestion{
		rawMCQ("Capital of France is ___", []any{"Paris", "Lyon", "Nice", "Lille"}, float64(0)),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, qs[0].CorrectAnswer)

	_, err = NormalizeQuestions(TypeFillBlank, []RawQuestion{
		rawMCQ("Capital of France is ___", []any{"Paris", "Lyon", "Nice", "Lille"}, float64(0)),
		rawMCQ("Capital of France is ___ and ___", []any{"Paris", "Lyon", "Nice", "Lille"}, float64(0)),
	})
	require.Error(t, err)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, 1, ve.Index)
	assert.Contains(t, ve.Error(), "question 2")
	assert.Contains(t, ve.Message, "exactly one")

	_, err = NormalizeQuestions(TypeFillBlank, []RawQuestion{
		rawMCQ("No blanks here", []any{"a", "b", "c", "d"}, float64(0)),
	})
	require.Error(t, err)
}

func TestNormalize_ExplanationDefaults(t *testing.T) {
	qs, err := NormalizeQuestions(TypeMCQ, []RawQuestion{
		{Question: "q?", Options: []any{"a", "b", "c", "d"}, CorrectAnswer: float64(0)},
		{Question: "q2?", Options: []any{"a", "b", "c", "d"}, CorrectAnswer: float64(0), Explanation: 42},
	})
	require.NoError(t, err)
	assert.Equal(t, "", qs[0].Explanation, "missing explanation defaults to empty")
	assert.Equal(t, "", qs[1].Explanation, "non-string explanation defaults to empty")
}

func TestNormalize_BatchGuards(t *testing.T) {
	_, err := NormalizeQuestions("Essay", []RawQuestion{{Question: "q", CorrectAnswer: float64(0)}})
	assert.Error(t, err)

	_, err = NormalizeQuestions(TypeMCQ, nil)
	assert.Error(t, err)
}
