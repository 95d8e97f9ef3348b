package quiz

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row matches an (id, owner) pair. An
// ownership mismatch is indistinguishable from non-existence: callers
// must not be able to probe other users' quizzes.
var ErrNotFound = errors.New("quiz not found")

// ValidationError reports malformed or out-of-range input, including
// normalization failures of model output. Its message is user-facing.
type ValidationError struct {
	// Index is the offending question's position, or -1 when the error
	// is not tied to a specific question.
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Message)
}

// Invalid builds a batch-level validation error.
func Invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Index: -1, Message: fmt.Sprintf(format, args...)}
}

func invalidAt(idx int, format string, args ...any) *ValidationError {
	return &ValidationError{Index: idx, Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
