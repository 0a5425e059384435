package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{IndexHost: "https://example.test"})
	assert.Error(t, err)

	_, err = New(Config{APIKey: "key"})
	assert.Error(t, err)

	c, err := New(Config{APIKey: "key", IndexHost: "https://example.test"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestQueryBuildsFilterAndParsesMatches(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{
					"id":    "e1",
					"score": 0.92,
					"metadata": map[string]string{
						"essay":    "essay one",
						"prompt":   "prompt one",
						"school":   "Harvard Business School",
						"feedback": "feedback one",
					},
				},
			},
		})
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "secret", IndexHost: server.URL})
	require.NoError(t, err)

	results, err := client.Query(context.Background(), []float32{0.1, 0.2}, "Harvard Business School", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "essay one", results[0].Essay)
	assert.Equal(t, "feedback one", results[0].Feedback)
	assert.InDelta(t, 0.92, results[0].Score, 1e-9)

	assert.EqualValues(t, 5, gotBody["topK"])
	assert.Equal(t, true, gotBody["includeMetadata"])
	filter := gotBody["filter"].(map[string]any)
	school := filter["school"].(map[string]any)
	assert.Equal(t, "Harvard Business School", school["$eq"])
}

func TestQueryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "secret", IndexHost: server.URL})
	require.NoError(t, err)

	_, err = client.Query(context.Background(), []float32{0.1}, "Wharton", 5)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

func TestUpsert(t *testing.T) {
	var gotBody upsertRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vectors/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "secret", IndexHost: server.URL})
	require.NoError(t, err)

	vectors := []Vector{{
		ID:     "e1",
		Values: []float32{0.1, 0.2},
		Metadata: map[string]string{
			"essay":  "essay one",
			"school": "MIT Sloan",
		},
	}}
	require.NoError(t, client.Upsert(context.Background(), vectors))
	require.Len(t, gotBody.Vectors, 1)
	assert.Equal(t, "e1", gotBody.Vectors[0].ID)
}

func TestUpsertEmptyIsNoop(t *testing.T) {
	client, err := New(Config{APIKey: "secret", IndexHost: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.NoError(t, client.Upsert(context.Background(), nil))
}
