package workflow

import (
	"context"
	"log"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/types"
)

const (
	// DefaultQualityThreshold is the mean score at which the batch is accepted.
	DefaultQualityThreshold = 8.0
	// DefaultMaxIterations caps how many evaluation passes a run may perform.
	DefaultMaxIterations = 5
)

// Controller drives the suggestion workflow from style extraction through the
// evaluate/refine loop to completion.
type Controller struct {
	client        llm.Client
	threshold     float64
	maxIterations int
}

// Option configures a Controller.
type Option func(*Controller)

func WithQualityThreshold(t float64) Option {
	return func(c *Controller) { c.threshold = t }
}

func WithMaxIterations(n int) Option {
	return func(c *Controller) { c.maxIterations = n }
}

func NewController(client llm.Client, opts ...Option) *Controller {
	c := &Controller{
		client:        client,
		threshold:     DefaultQualityThreshold,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the full workflow and returns the accepted suggestion batch.
// The loop exits as soon as the mean score meets the threshold or the
// iteration budget is exhausted, whichever comes first. An exact-threshold
// score on the first pass completes without any refinement.
func (c *Controller) Run(ctx context.Context, req types.AnalysisRequest, rc types.RetrievalContext) ([]types.ContentSuggestion, error) {
	state := newState(req, rc)

	state, err := extractStyle(ctx, c.client, state)
	if err != nil {
		return nil, err
	}
	state, err = extractCriteria(ctx, c.client, state)
	if err != nil {
		return nil, err
	}
	state, err = generate(ctx, c.client, state)
	if err != nil {
		return nil, err
	}

	for {
		state, err = evaluate(ctx, c.client, state)
		if err != nil {
			return nil, err
		}

		if state.Evaluation.OverallScore >= c.threshold || state.Iteration >= c.maxIterations {
			break
		}

		log.Printf("workflow: iteration %d scored %.1f, refining", state.Iteration, state.Evaluation.OverallScore)
		state, err = refine(ctx, c.client, state)
		if err != nil {
			return nil, err
		}
	}

	state.Phase = PhaseComplete
	return state.Suggestions, nil
}
