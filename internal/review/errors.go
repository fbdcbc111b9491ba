package review

import (
	"errors"
	"fmt"
)

var (
	// ErrAnalysisFailed matches every analysis failure surfaced as StageError.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrAnalysisTimeout matches a failure caused by Config.AnalysisTimeout.
	ErrAnalysisTimeout = errors.New("analysis timed out")

	errNoFeedback = errors.New("empty analysis response")
)

// FailureError is the error attached to a session in StageError.
type FailureError struct {
	Cause error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%v: %v", ErrAnalysisFailed, e.Cause)
}

func (e *FailureError) Unwrap() []error {
	return []error{ErrAnalysisFailed, e.Cause}
}

// Message renders a failure for the error card.
func Message(err error) string {
	var fe *FailureError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAnalysisTimeout):
		return "The third umpire took too long. Close and try the review again."
	case errors.As(err, &fe):
		return "The third umpire could not reach a decision: " + fe.Cause.Error()
	default:
		return err.Error()
	}
}
