// Package wordcut suggests edits that bring an essay under a word limit
// without flattening its voice.
package wordcut

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/prompts"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/types"
)

// Cutter generates word-reduction edits via the LLM.
type Cutter struct {
	client llm.Client
}

func New(client llm.Client) *Cutter {
	return &Cutter{client: client}
}

// Cut proposes edits that reduce the essay to the requested word limit.
// Totals are recomputed from the returned edits rather than trusted from the
// model. An essay already under the limit returns no edits and makes no LLM
// call.
func (c *Cutter) Cut(ctx context.Context, req types.WordCutRequest) (*types.WordCutResponse, error) {
	current := CountWords(req.EssayText)
	wordsToCut := current - req.WordLimit
	if wordsToCut <= 0 {
		return &types.WordCutResponse{
			TotalBeforeWordCount: current,
			TotalAfterWordCount:  current,
		}, nil
	}

	prompt, err := prompts.Get("wordcut.json", "cut-words")
	if err != nil {
		return nil, err
	}
	prompt = prompts.Format(prompt, map[string]string{
		"CurrentWordCount": strconv.Itoa(current),
		"TargetWordCount":  strconv.Itoa(req.WordLimit),
		"WordsToCut":       strconv.Itoa(wordsToCut),
		"EssayText":        req.EssayText,
	})

	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierGenerate)
	if err != nil {
		return nil, err
	}

	var out struct {
		Edits []types.WordCutEdit `json:"edits"`
	}
	if err := schemas.Decode(raw, schemas.WordCutEdits, &out); err != nil {
		return nil, err
	}

	resp := &types.WordCutResponse{
		TotalBeforeWordCount: current,
		Edits:                out.Edits,
	}
	for i := range resp.Edits {
		edit := &resp.Edits[i]
		// Recount so the accounting holds even if the model miscounted.
		edit.BeforeWordCount = CountWords(edit.Before)
		edit.AfterWordCount = CountWords(edit.After)
		edit.WordCountDiff = edit.BeforeWordCount - edit.AfterWordCount
		resp.TotalWordCountDiff += edit.WordCountDiff
	}
	resp.TotalAfterWordCount = current - resp.TotalWordCountDiff
	return resp, nil
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
