package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// generalFeedback produces section-level coaching feedback grounded in the
// school guidelines and retrieved exemplars.
func generalFeedback(ctx context.Context, client llm.Client, req types.AnalysisRequest, rc types.RetrievalContext) ([]types.GeneralFeedbackItem, error) {
	prompt, err := prompts.Get("analysis.json", "general-feedback")
	if err != nil {
		return nil, err
	}
	prompt = prompts.Format(prompt, map[string]string{
		"School":           req.School,
		"EssayPrompt":      req.EssayPrompt,
		"EssayText":        req.EssayText,
		"UserInstructions": req.UserInstructions,
		"Guidelines":       strings.Join(rc.Guidelines, "\n"),
		"Examples":         formatExamples(rc.RelevantExamples),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return nil, err
	}

	var out struct {
		Feedback []types.GeneralFeedbackItem `json:"general_feedback"`
	}
	if err := schemas.Decode(raw, schemas.GeneralFeedback, &out); err != nil {
		return nil, err
	}
	return out.Feedback, nil
}

func formatExamples(examples []types.ExemplarPair) string {
	var sb strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&sb, "Example %d:\nEssay: %s\nExpert feedback: %s\n\n", i+1, ex.Essay, ex.Feedback)
	}
	return sb.String()
}
