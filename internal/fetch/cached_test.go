package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-assistant/internal/cache"
)

func TestCachedFetcherServesFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(essayPage))
	}))
	defer srv.Close()

	f := NewCachedFetcher(cache.New(cache.Options{}), nil)

	first, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Contains(t, first.Text, "carpentry")

	second, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCachedFetcherSkipCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(essayPage))
	}))
	defer srv.Close()

	f := NewCachedFetcher(cache.New(cache.Options{}), nil)
	f.SkipCache(true)

	for i := 0; i < 2; i++ {
		result, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.False(t, result.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcherFailureNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewCachedFetcher(cache.New(cache.Options{}), nil)

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
