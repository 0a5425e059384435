// Package analyzer orchestrates a full essay analysis: the suggestion
// workflow, sentence-level language edits, and section-level general feedback
// run as three independent branches over one shared retrieval context.
package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/retrieval"
	"github.com/jonathan/essay-assistant/internal/types"
	"github.com/jonathan/essay-assistant/internal/workflow"
)

// SuggestionRunner produces the content suggestion batch for a request.
// Satisfied by workflow.Controller.
type SuggestionRunner interface {
	Run(ctx context.Context, req types.AnalysisRequest, rc types.RetrievalContext) ([]types.ContentSuggestion, error)
}

// ContextProvider builds the retrieval context for an essay and school.
// Satisfied by retrieval.Builder.
type ContextProvider interface {
	GetContext(ctx context.Context, essayText, essayPrompt, school string) (types.RetrievalContext, error)
}

var _ ContextProvider = (*retrieval.Builder)(nil)
var _ SuggestionRunner = (*workflow.Controller)(nil)

// Analyzer runs the three analysis branches and merges their output.
type Analyzer struct {
	client   llm.Client
	provider ContextProvider
	workflow SuggestionRunner
}

func New(client llm.Client, provider ContextProvider, wf SuggestionRunner) *Analyzer {
	return &Analyzer{client: client, provider: provider, workflow: wf}
}

// Analyze fetches the retrieval context once, then runs content suggestions,
// language edits, and general feedback concurrently. All three branches must
// succeed; a single failure fails the whole analysis.
func (a *Analyzer) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResponse, error) {
	rc, err := a.provider.GetContext(ctx, req.EssayText, req.EssayPrompt, req.School)
	if err != nil {
		return nil, fmt.Errorf("building retrieval context: %w", err)
	}

	var resp types.AnalysisResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		suggestions, err := a.workflow.Run(gctx, req, rc)
		if err != nil {
			return fmt.Errorf("content suggestions: %w", err)
		}
		resp.ContentSuggestions = suggestions
		return nil
	})
	g.Go(func() error {
		edits, err := languageEdits(gctx, a.client, req)
		if err != nil {
			return fmt.Errorf("language edits: %w", err)
		}
		resp.LanguageEdits = edits
		return nil
	})
	g.Go(func() error {
		feedback, err := generalFeedback(gctx, a.client, req, rc)
		if err != nil {
			return fmt.Errorf("general feedback: %w", err)
		}
		resp.GeneralFeedback = feedback
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}
