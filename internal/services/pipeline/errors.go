package pipeline

import "fmt"

// Stage tags identify pipeline stages in progress events and fatal errors
const (
	StagePlan     = "plan_generation"
	StageImage    = "background_generation"
	StageCompose  = "composition"
	StageEvaluate = "evaluation"
	StagePersist  = "dataset_capture"
	StageEnsemble = "ensemble_selection"
)

// StageError is a fatal pipeline failure surfaced to the caller with a
// stage tag and a human-readable remediation suggestion. Only plan-stage
// and image-stage failures ever reach callers; every other stage owns its
// own fallback.
type StageError struct {
	Stage      string
	Message    string
	Suggestion string
	Err        error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewImageTimeoutError reports an image generation timeout
func NewImageTimeoutError(err error) *StageError {
	return &StageError{
		Stage:      StageImage,
		Message:    "Image generation timed out",
		Suggestion: "Try simplifying your input or try again later",
		Err:        err,
	}
}

// NewImageFailedError reports retry exhaustion on image generation
func NewImageFailedError(err error) *StageError {
	return &StageError{
		Stage:      StageImage,
		Message:    "Image generation failed",
		Suggestion: "Try simplifying your input or check your API quota",
		Err:        err,
	}
}

// NewEnsembleFailedError reports an ensemble run in which no branch succeeded
func NewEnsembleFailedError(err error) *StageError {
	return &StageError{
		Stage:      StageEnsemble,
		Message:    "All generation attempts failed",
		Suggestion: "Try again with fewer variations or a simpler input",
		Err:        err,
	}
}
