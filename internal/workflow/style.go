package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// extractStyle derives a taxonomy of writing style attributes and then
// describes how the retrieved exemplars apply each one. Two separate LLM
// calls: the taxonomy is essay-independent, the applications are grounded in
// the exemplars. Exemplar text is an input to the second call, never part of
// its output.
func extractStyle(ctx context.Context, client llm.Client, state State) (State, error) {
	attrPrompt, err := prompts.Get("workflow.json", "style-attributes")
	if err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}
	raw, err := client.GenerateJSON(ctx, attrPrompt, llm.TierExtract)
	if err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}

	var attrs struct {
		Attributes []types.WritingStyleAttribute `json:"attributes"`
	}
	if err := schemas.Decode(raw, schemas.WritingStyleAttributes, &attrs); err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}

	attrsJSON, err := json.Marshal(attrs.Attributes)
	if err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}

	appPrompt, err := prompts.Get("workflow.json", "style-applications")
	if err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}
	appPrompt = prompts.Format(appPrompt, map[string]string{
		"Attributes": string(attrsJSON),
		"Essays":     formatExemplars(state.Context.RelevantExamples),
	})

	raw, err = client.GenerateJSON(ctx, appPrompt, llm.TierExtract)
	if err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}

	var apps struct {
		Applications []types.WritingStyleApplication `json:"applications"`
	}
	if err := schemas.Decode(raw, schemas.WritingStyleApplications, &apps); err != nil {
		return state, &StageError{Phase: PhaseExtractStyle, Cause: err}
	}

	state.StyleAttributes = attrs.Attributes
	state.StyleApplications = apps.Applications
	state.Phase = PhaseExtractCriteria
	return state, nil
}

func formatExemplars(examples []types.ExemplarPair) string {
	var sb strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&sb, "Example %d:\n%s\n\n", i+1, ex.Essay)
	}
	return sb.String()
}
