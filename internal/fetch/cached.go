package fetch

import (
	"context"

	"github.com/jonathan/essay-assistant/internal/cache"
)

// CachedFetcher wraps URL fetching with an in-memory LRU cache so repeated
// ingestion runs over the same archive do not refetch every page.
type CachedFetcher struct {
	cache     *cache.Cache
	options   *Options
	skipCache bool
}

// NewCachedFetcher creates a fetcher backed by the given cache. A nil cache
// disables caching.
func NewCachedFetcher(c *cache.Cache, opts *Options) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &CachedFetcher{cache: c, options: opts}
}

// SkipCache forces fresh fetches, for ingestion runs that must see updates.
func (f *CachedFetcher) SkipCache(skip bool) {
	f.skipCache = skip
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, serving from cache when possible. Successful fetches
// have their main text extracted and are cached; failures are not cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	key := "fetch:" + urlStr

	if !f.skipCache && f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			if result, ok := cached.(*Result); ok {
				return &CachedResult{Result: result, FromCache: true}, nil
			}
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	text, _ := ExtractMainText(result.HTML, EssayPageSelectors(), EssayPageNoiseSelectors()...)
	result.Text = text

	if f.cache != nil {
		f.cache.Set(key, result)
	}
	return &CachedResult{Result: result}, nil
}
