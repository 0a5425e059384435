package workflow

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// evaluate scores every suggestion in the current batch against the feedback
// framework. Suggestions are scored concurrently; each result lands at the
// index of the suggestion it belongs to regardless of completion order. The
// overall score is the arithmetic mean, and the iteration counter advances
// exactly once per pass.
func evaluate(ctx context.Context, client llm.Client, state State) (State, error) {
	if state.Framework == nil {
		return state, &StageError{Phase: PhaseEvaluate, Cause: ErrMissingFramework}
	}

	template, err := prompts.Get("workflow.json", "evaluate-suggestion")
	if err != nil {
		return state, &StageError{Phase: PhaseEvaluate, Cause: err}
	}
	frameworkJSON, err := json.Marshal(state.Framework)
	if err != nil {
		return state, &StageError{Phase: PhaseEvaluate, Cause: err}
	}

	feedback := make([]types.SuggestionFeedback, len(state.Suggestions))
	g, gctx := errgroup.WithContext(ctx)
	for i, suggestion := range state.Suggestions {
		g.Go(func() error {
			suggestionJSON, err := json.Marshal(suggestion)
			if err != nil {
				return err
			}
			prompt := prompts.Format(template, map[string]string{
				"Suggestion": string(suggestionJSON),
				"Framework":  string(frameworkJSON),
			})
			raw, err := client.GenerateJSON(gctx, prompt, llm.TierEvaluate)
			if err != nil {
				return err
			}
			var fb types.SuggestionFeedback
			if err := schemas.Decode(raw, schemas.SuggestionFeedback, &fb); err != nil {
				return err
			}
			feedback[i] = fb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return state, &StageError{Phase: PhaseEvaluate, Cause: err}
	}

	var total float64
	for _, fb := range feedback {
		total += fb.Score
	}
	overall := 0.0
	if len(feedback) > 0 {
		overall = total / float64(len(feedback))
	}

	state.Evaluation = &types.EvaluationResult{
		SuggestionFeedback: feedback,
		OverallScore:       overall,
	}
	state.Iteration++
	return state, nil
}
