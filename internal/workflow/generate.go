package workflow

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

type suggestionBatch struct {
	Suggestions []types.ContentSuggestion `json:"suggestions"`
}

// generate produces the initial batch of content suggestions from the essay,
// the school guidelines, and the extracted style applications.
func generate(ctx context.Context, client llm.Client, state State) (State, error) {
	prompt, err := prompts.Get("workflow.json", "initial-suggestions")
	if err != nil {
		return state, &StageError{Phase: PhaseGenerate, Cause: err}
	}

	appsJSON, err := json.Marshal(state.StyleApplications)
	if err != nil {
		return state, &StageError{Phase: PhaseGenerate, Cause: err}
	}
	prompt = prompts.Format(prompt, map[string]string{
		"Prompt":            state.EssayPrompt,
		"Text":              state.EssayText,
		"UserInstructions":  state.UserInstructions,
		"SchoolGuidelines":  strings.Join(state.Context.Guidelines, "\n"),
		"StyleApplications": string(appsJSON),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return state, &StageError{Phase: PhaseGenerate, Cause: err}
	}

	var batch suggestionBatch
	if err := schemas.Decode(raw, schemas.ContentSuggestions, &batch); err != nil {
		return state, &StageError{Phase: PhaseGenerate, Cause: err}
	}

	state.Suggestions = batch.Suggestions
	state.Phase = PhaseEvaluate
	return state, nil
}

// refine replaces the suggestion batch with an improved one informed by the
// latest evaluation. Without evaluation feedback there is nothing to act on,
// so the state passes through unchanged.
func refine(ctx context.Context, client llm.Client, state State) (State, error) {
	if state.Evaluation == nil || len(state.Evaluation.SuggestionFeedback) == 0 {
		state.Phase = PhaseEvaluate
		return state, nil
	}

	prompt, err := prompts.Get("workflow.json", "refine-suggestions")
	if err != nil {
		return state, &StageError{Phase: PhaseRefine, Cause: err}
	}

	previous, err := formatScoredSuggestions(state.Suggestions, state.Evaluation.SuggestionFeedback)
	if err != nil {
		return state, &StageError{Phase: PhaseRefine, Cause: err}
	}
	appsJSON, err := json.Marshal(state.StyleApplications)
	if err != nil {
		return state, &StageError{Phase: PhaseRefine, Cause: err}
	}
	prompt = prompts.Format(prompt, map[string]string{
		"PreviousSuggestions": previous,
		"StyleApplications":   string(appsJSON),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return state, &StageError{Phase: PhaseRefine, Cause: err}
	}

	var batch suggestionBatch
	if err := schemas.Decode(raw, schemas.ContentSuggestions, &batch); err != nil {
		return state, &StageError{Phase: PhaseRefine, Cause: err}
	}

	state.Suggestions = batch.Suggestions
	state.Phase = PhaseEvaluate
	return state, nil
}

// formatScoredSuggestions pairs each suggestion with the feedback it earned,
// by index, so the model sees what to fix about each one.
func formatScoredSuggestions(suggestions []types.ContentSuggestion, feedback []types.SuggestionFeedback) (string, error) {
	type scored struct {
		Suggestion types.ContentSuggestion   `json:"suggestion"`
		Feedback   *types.SuggestionFeedback `json:"feedback,omitempty"`
	}
	pairs := make([]scored, len(suggestions))
	for i, s := range suggestions {
		pairs[i] = scored{Suggestion: s}
		if i < len(feedback) {
			pairs[i].Feedback = &feedback[i]
		}
	}
	out, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
