package cohere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerank(t *testing.T) {
	var gotBody rerankRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/rerank", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"index": 2, "relevance_score": 0.91},
				{"index": 0, "relevance_score": 0.42},
			},
		})
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	results, err := client.Rerank(context.Background(), "query", []string{"a", "b", "c"}, 6)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Index)
	assert.InDelta(t, 0.91, results[0].RelevanceScore, 1e-9)

	assert.Equal(t, DefaultModel, gotBody.Model)
	assert.Equal(t, 6, gotBody.TopN)
	assert.Equal(t, []string{"a", "b", "c"}, gotBody.Documents)
}

func TestRerankEmptyDocumentsShortCircuits(t *testing.T) {
	// The client must not call the service at all; an unroutable base URL
	// would fail the test otherwise.
	client, err := New(Config{APIKey: "secret", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	results, err := client.Rerank(context.Background(), "query", nil, 6)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRerankServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Rerank(context.Background(), "query", []string{"a"}, 6)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
