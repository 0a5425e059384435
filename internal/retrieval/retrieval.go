// Package retrieval assembles the school-specific context used by analysis:
// reranked exemplar essays from the vector store plus curated guidelines.
package retrieval

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/essay-assistant/internal/cache"
	"github.com/jonathan/essay-assistant/internal/cohere"
	"github.com/jonathan/essay-assistant/internal/pinecone"
	"github.com/jonathan/essay-assistant/internal/types"
)

const (
	// DefaultTopK is how many candidates to pull from the vector store.
	DefaultTopK = 5
	// DefaultTopN is how many candidates the reranker keeps.
	DefaultTopN = 6
	// DefaultRelevanceThreshold drops reranked candidates below this score.
	DefaultRelevanceThreshold = 0.3
)

// Candidate is one exemplar pulled from the vector store before reranking.
type Candidate struct {
	Essay    string
	Prompt   string
	School   string
	Feedback string
}

// Embedder produces an embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher queries the vector store for exemplar candidates.
type Searcher interface {
	Search(ctx context.Context, vector []float32, school string, topK int) ([]Candidate, error)
}

// Reranker orders candidate documents by relevance to a query.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]cohere.Result, error)
}

// PineconeSearcher adapts a pinecone client to the Searcher interface.
type PineconeSearcher struct {
	client *pinecone.Client
}

func NewPineconeSearcher(client *pinecone.Client) *PineconeSearcher {
	return &PineconeSearcher{client: client}
}

func (s *PineconeSearcher) Search(ctx context.Context, vector []float32, school string, topK int) ([]Candidate, error) {
	results, err := s.client.Query(ctx, vector, school, topK)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Essay:    r.Essay,
			Prompt:   r.Prompt,
			School:   r.School,
			Feedback: r.Feedback,
		})
	}
	return candidates, nil
}

// Builder fetches, reranks, and caches retrieval context for an essay.
type Builder struct {
	embedder Embedder
	searcher Searcher
	reranker Reranker
	cache    *cache.Cache

	topK      int
	topN      int
	threshold float64
}

// Option configures a Builder.
type Option func(*Builder)

func WithTopK(k int) Option {
	return func(b *Builder) { b.topK = k }
}

func WithTopN(n int) Option {
	return func(b *Builder) { b.topN = n }
}

func WithRelevanceThreshold(t float64) Option {
	return func(b *Builder) { b.threshold = t }
}

// NewBuilder constructs a Builder. The cache may be nil, in which case every
// call recomputes the context.
func NewBuilder(embedder Embedder, searcher Searcher, reranker Reranker, c *cache.Cache, opts ...Option) *Builder {
	b := &Builder{
		embedder:  embedder,
		searcher:  searcher,
		reranker:  reranker,
		cache:     c,
		topK:      DefaultTopK,
		topN:      DefaultTopN,
		threshold: DefaultRelevanceThreshold,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetContext returns the retrieval context for an essay and school. Results
// are cached per school and essay text, so repeated calls within the cache
// window return identical contexts. Vector store failures degrade to an empty
// example list; guidelines are always populated.
func (b *Builder) GetContext(ctx context.Context, essayText, essayPrompt, school string) (types.RetrievalContext, error) {
	query := "Essay Content: " + essayText
	contextKey := fmt.Sprintf("context:%s:%s", school, query)

	if b.cache != nil {
		if cached, ok := b.cache.Get(contextKey); ok {
			if rc, ok := cached.(types.RetrievalContext); ok {
				return rc, nil
			}
		}
	}

	vector, err := b.embedding(ctx, query)
	if err != nil {
		return types.RetrievalContext{}, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := b.searcher.Search(ctx, vector, school, b.topK)
	if err != nil {
		log.Printf("retrieval: vector search failed, continuing without examples: %v", err)
		candidates = nil
	}

	examples, err := b.rerank(ctx, query, candidates)
	if err != nil {
		return types.RetrievalContext{}, fmt.Errorf("reranking candidates: %w", err)
	}

	rc := types.RetrievalContext{
		RelevantExamples: examples,
		Guidelines:       GuidelinesFor(school),
	}
	if b.cache != nil {
		b.cache.Set(contextKey, rc)
	}
	return rc, nil
}

// embedding returns the embedding for a query, caching by query text alone so
// the same essay shares one embedding across schools.
func (b *Builder) embedding(ctx context.Context, query string) ([]float32, error) {
	key := "embedding:" + query
	if b.cache != nil {
		if cached, ok := b.cache.Get(key); ok {
			if vec, ok := cached.([]float32); ok {
				return vec, nil
			}
		}
	}
	vec, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if b.cache != nil {
		b.cache.Set(key, vec)
	}
	return vec, nil
}

// rerank orders candidates by relevance and drops those under the threshold,
// preserving the reranker's ordering.
func (b *Builder) rerank(ctx context.Context, query string, candidates []Candidate) ([]types.ExemplarPair, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = fmt.Sprintf("School: %s\nPrompt: %s\nEssay: %s\nFeedback: %s",
			c.School, c.Prompt, c.Essay, c.Feedback)
	}

	ranked, err := b.reranker.Rerank(ctx, query, documents, b.topN)
	if err != nil {
		return nil, err
	}

	examples := make([]types.ExemplarPair, 0, len(ranked))
	for _, r := range ranked {
		if r.RelevanceScore < b.threshold {
			continue
		}
		if r.Index < 0 || r.Index >= len(candidates) {
			continue
		}
		c := candidates[r.Index]
		examples = append(examples, types.ExemplarPair{
			Essay:    c.Essay,
			Feedback: c.Feedback,
		})
	}
	return examples, nil
}
