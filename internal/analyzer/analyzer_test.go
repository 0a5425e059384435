package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/types"
)

type mockLLM struct {
	editsResponse    string
	feedbackResponse string
	editsErr         error
}

func (m *mockLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "expert editor specializing"):
		if m.editsErr != nil {
			return "", m.editsErr
		}
		return m.editsResponse, nil
	case strings.Contains(prompt, "professional MBA admissions coach"):
		return m.feedbackResponse, nil
	}
	return "", fmt.Errorf("unexpected prompt: %.60s", prompt)
}

func (m *mockLLM) Close() error { return nil }

type mockProvider struct {
	rc    types.RetrievalContext
	err   error
	calls int
}

func (m *mockProvider) GetContext(_ context.Context, _, _, _ string) (types.RetrievalContext, error) {
	m.calls++
	return m.rc, m.err
}

type mockRunner struct {
	suggestions []types.ContentSuggestion
	err         error
}

func (m *mockRunner) Run(_ context.Context, _ types.AnalysisRequest, _ types.RetrievalContext) ([]types.ContentSuggestion, error) {
	return m.suggestions, m.err
}

const (
	editsJSON    = `{"language_edits":[{"before":"utilize synergies","after":"work together"}]}`
	feedbackJSON = `{"general_feedback":[{"section":"opening","feedback":"strong hook","suggestion":"keep it","example_application":"first paragraph"}]}`
)

func request() types.AnalysisRequest {
	return types.AnalysisRequest{
		EssayText: "My essay.",
		School:    "Stanford GSB",
	}
}

func TestAnalyzeMergesAllBranches(t *testing.T) {
	provider := &mockProvider{rc: types.RetrievalContext{Guidelines: []string{"g"}}}
	runner := &mockRunner{suggestions: []types.ContentSuggestion{{Suggestion: "add stakes"}}}
	client := &mockLLM{editsResponse: editsJSON, feedbackResponse: feedbackJSON}

	a := New(client, provider, runner)
	resp, err := a.Analyze(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.ContentSuggestions, 1)
	assert.Equal(t, "add stakes", resp.ContentSuggestions[0].Suggestion)
	require.Len(t, resp.LanguageEdits, 1)
	assert.Equal(t, "work together", resp.LanguageEdits[0].After)
	require.Len(t, resp.GeneralFeedback, 1)
	assert.Equal(t, "opening", resp.GeneralFeedback[0].Section)
	assert.Equal(t, 1, provider.calls, "context is fetched once and shared")
}

func TestAnalyzeSingleBranchFailureFailsAll(t *testing.T) {
	provider := &mockProvider{}
	runner := &mockRunner{suggestions: []types.ContentSuggestion{{Suggestion: "s"}}}
	client := &mockLLM{editsErr: errors.New("rate limited"), feedbackResponse: feedbackJSON}

	a := New(client, provider, runner)
	_, err := a.Analyze(context.Background(), request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language edits")
}

func TestAnalyzeWorkflowFailure(t *testing.T) {
	provider := &mockProvider{}
	runner := &mockRunner{err: errors.New("loop failed")}
	client := &mockLLM{editsResponse: editsJSON, feedbackResponse: feedbackJSON}

	a := New(client, provider, runner)
	_, err := a.Analyze(context.Background(), request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content suggestions")
}

func TestAnalyzeContextFailure(t *testing.T) {
	provider := &mockProvider{err: errors.New("embedding quota")}
	a := New(&mockLLM{}, provider, &mockRunner{})

	_, err := a.Analyze(context.Background(), request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval context")
}
