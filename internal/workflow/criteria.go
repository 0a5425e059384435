package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// extractCriteria distills the expert feedback attached to the exemplars into
// a named evaluation framework. The framework is derived once per run and is
// immutable afterwards.
func extractCriteria(ctx context.Context, client llm.Client, state State) (State, error) {
	prompt, err := prompts.Get("workflow.json", "feedback-criteria")
	if err != nil {
		return state, &StageError{Phase: PhaseExtractCriteria, Cause: err}
	}
	prompt = prompts.Format(prompt, map[string]string{
		"Feedback": formatExemplarFeedback(state.Context.RelevantExamples),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierExtract)
	if err != nil {
		return state, &StageError{Phase: PhaseExtractCriteria, Cause: err}
	}

	var framework types.FeedbackFramework
	if err := schemas.Decode(raw, schemas.FeedbackFramework, &framework); err != nil {
		return state, &StageError{Phase: PhaseExtractCriteria, Cause: err}
	}

	state.Framework = &framework
	state.Phase = PhaseGenerate
	return state, nil
}

func formatExemplarFeedback(examples []types.ExemplarPair) string {
	var sb strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&sb, "Feedback %d:\n%s\n\n", i+1, ex.Feedback)
	}
	return sb.String()
}
