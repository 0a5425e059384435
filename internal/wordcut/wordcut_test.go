package wordcut

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/types"
)

type mockClient struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (m *mockClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.calls++
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockClient) Close() error { return nil }

func TestCutRecomputesTotalsFromEdits(t *testing.T) {
	client := &mockClient{response: `{"edits":[
		{"before":"in order to achieve the goal","after":"to achieve the goal","before_word_count":99,"after_word_count":99,"word_count_diff":0,"explanation":"drop filler"},
		{"before":"a large number of people","after":"many people","before_word_count":0,"after_word_count":0,"word_count_diff":0,"explanation":"tighten"}
	]}`}

	essay := strings.Repeat("word ", 20)
	c := New(client)
	resp, err := c.Cut(context.Background(), types.WordCutRequest{EssayText: essay, WordLimit: 10})
	require.NoError(t, err)

	require.Len(t, resp.Edits, 2)
	// Model word counts are ignored and recomputed.
	assert.Equal(t, 6, resp.Edits[0].BeforeWordCount)
	assert.Equal(t, 4, resp.Edits[0].AfterWordCount)
	assert.Equal(t, 2, resp.Edits[0].WordCountDiff)
	assert.Equal(t, 5, resp.Edits[1].BeforeWordCount)
	assert.Equal(t, 2, resp.Edits[1].AfterWordCount)
	assert.Equal(t, 3, resp.Edits[1].WordCountDiff)

	assert.Equal(t, 20, resp.TotalBeforeWordCount)
	assert.Equal(t, 5, resp.TotalWordCountDiff)
	assert.Equal(t, 15, resp.TotalAfterWordCount)
}

func TestCutUnderLimitSkipsModel(t *testing.T) {
	client := &mockClient{}
	c := New(client)

	resp, err := c.Cut(context.Background(), types.WordCutRequest{EssayText: "short essay text", WordLimit: 100})
	require.NoError(t, err)

	assert.Zero(t, client.calls)
	assert.Empty(t, resp.Edits)
	assert.Equal(t, 3, resp.TotalBeforeWordCount)
	assert.Equal(t, 3, resp.TotalAfterWordCount)
	assert.Zero(t, resp.TotalWordCountDiff)
}

func TestCutPromptIncludesCounts(t *testing.T) {
	client := &mockClient{response: `{"edits":[{"before":"x y","after":"x","before_word_count":2,"after_word_count":1,"word_count_diff":1,"explanation":"e"}]}`}
	c := New(client)

	essay := strings.Repeat("word ", 30)
	_, err := c.Cut(context.Background(), types.WordCutRequest{EssayText: essay, WordLimit: 25})
	require.NoError(t, err)

	assert.Contains(t, client.prompt, "30")
	assert.Contains(t, client.prompt, "25")
	assert.Contains(t, client.prompt, "5")
}

func TestCutModelError(t *testing.T) {
	client := &mockClient{err: errors.New("timeout")}
	c := New(client)

	_, err := c.Cut(context.Background(), types.WordCutRequest{EssayText: strings.Repeat("w ", 50), WordLimit: 10})
	assert.Error(t, err)
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 4, CountWords("one two\tthree\nfour"))
}
