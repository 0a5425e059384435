package analyzer

import (
	"context"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// languageEdits asks for sentence-level before/after rewrites. This branch
// deliberately ignores the retrieval context; it is about prose mechanics,
// not content.
func languageEdits(ctx context.Context, client llm.Client, req types.AnalysisRequest) ([]types.LanguageEdit, error) {
	prompt, err := prompts.Get("analysis.json", "language-edits")
	if err != nil {
		return nil, err
	}
	prompt = prompts.Format(prompt, map[string]string{
		"EssayText":        req.EssayText,
		"UserInstructions": req.UserInstructions,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return nil, err
	}

	var out struct {
		Edits []types.LanguageEdit `json:"language_edits"`
	}
	if err := schemas.Decode(raw, schemas.LanguageEdits, &out); err != nil {
		return nil, err
	}
	return out.Edits, nil
}
