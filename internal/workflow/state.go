// Package workflow implements the iterative suggestion loop: extract the
// exemplars' writing style, derive a feedback framework, generate content
// suggestions, then evaluate and refine them until they score well enough or
// the iteration budget runs out.
package workflow

import (
	"errors"
	"fmt"

	"github.com/jonathan/essay-assistant/internal/types"
)

// Phase identifies the stage a workflow state was produced by.
type Phase string

const (
	PhaseExtractStyle    Phase = "extract_style"
	PhaseExtractCriteria Phase = "extract_criteria"
	PhaseGenerate        Phase = "generate"
	PhaseEvaluate        Phase = "evaluate"
	PhaseRefine          Phase = "refine"
	PhaseComplete        Phase = "complete"
)

// ErrMissingFramework indicates evaluation was reached without a feedback
// framework. The controller always derives the framework first, so hitting
// this means the stages were wired out of order.
var ErrMissingFramework = errors.New("evaluation requires a feedback framework")

// StageError wraps a failure in a specific workflow stage.
type StageError struct {
	Phase Phase
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("workflow stage %s: %v", e.Phase, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// State is a snapshot of the workflow at one point in time. Stages take a
// State value and return a new one; the controller owns the current version,
// so stages never mutate shared data.
type State struct {
	EssayText        string
	EssayPrompt      string
	UserInstructions string
	School           string
	Context          types.RetrievalContext

	StyleAttributes   []types.WritingStyleAttribute
	StyleApplications []types.WritingStyleApplication
	Framework         *types.FeedbackFramework

	Suggestions []types.ContentSuggestion
	Evaluation  *types.EvaluationResult
	Iteration   int
	Phase       Phase
}

func newState(req types.AnalysisRequest, rc types.RetrievalContext) State {
	return State{
		EssayText:        req.EssayText,
		EssayPrompt:      req.EssayPrompt,
		UserInstructions: req.UserInstructions,
		School:           req.School,
		Context:          rc,
		Phase:            PhaseExtractStyle,
	}
}
