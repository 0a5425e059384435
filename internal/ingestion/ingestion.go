// Package ingestion loads exemplar essays, embeds them, and upserts the
// vectors into the index that retrieval queries at analysis time.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/pinecone"
)

// Exemplar is one essay with its expert feedback, ready for indexing.
type Exemplar struct {
	Essay    string `json:"essay"`
	Prompt   string `json:"prompt"`
	School   string `json:"school"`
	Feedback string `json:"feedback"`
}

// Upserter writes vectors into the index. Satisfied by pinecone.Client.
type Upserter interface {
	Upsert(ctx context.Context, vectors []pinecone.Vector) error
}

// DefaultBatchSize is how many vectors are upserted per request.
const DefaultBatchSize = 50

// Stats summarizes an ingestion run.
type Stats struct {
	Ingested int
	Failed   int
}

// Pipeline embeds exemplars and upserts them in batches.
type Pipeline struct {
	embedder  llm.Embedder
	upserter  Upserter
	batchSize int
}

func NewPipeline(embedder llm.Embedder, upserter Upserter) *Pipeline {
	return &Pipeline{
		embedder:  embedder,
		upserter:  upserter,
		batchSize: DefaultBatchSize,
	}
}

// LoadFile reads a JSON array of exemplars from disk.
func LoadFile(path string) ([]Exemplar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exemplar file %s: %w", path, err)
	}

	var exemplars []Exemplar
	if err := json.Unmarshal(data, &exemplars); err != nil {
		return nil, fmt.Errorf("failed to parse exemplar file %s: %w", path, err)
	}
	return exemplars, nil
}

// Run embeds every exemplar and upserts the vectors. A failed embedding
// skips that exemplar and continues; the batch upsert itself must succeed.
// The query side embeds "Essay Content: <text>", so exemplars are embedded
// with the same prefix.
func (p *Pipeline) Run(ctx context.Context, exemplars []Exemplar) (Stats, error) {
	var stats Stats
	batch := make([]pinecone.Vector, 0, p.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.upserter.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("upserting %d vectors: %w", len(batch), err)
		}
		batch = batch[:0]
		return nil
	}

	for i, ex := range exemplars {
		if ex.Essay == "" {
			log.Printf("ingestion: skipping exemplar %d with empty essay", i)
			stats.Failed++
			continue
		}

		values, err := p.embedder.Embed(ctx, "Essay Content: "+ex.Essay)
		if err != nil {
			log.Printf("ingestion: embedding exemplar %d failed: %v", i, err)
			stats.Failed++
			continue
		}

		batch = append(batch, pinecone.Vector{
			ID:     VectorID(ex),
			Values: values,
			Metadata: map[string]string{
				"essay":    ex.Essay,
				"prompt":   ex.Prompt,
				"school":   ex.School,
				"feedback": ex.Feedback,
			},
		})
		stats.Ingested++

		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

// VectorID derives a stable ID from the essay content, so re-running
// ingestion over the same corpus updates vectors instead of duplicating them.
func VectorID(ex Exemplar) string {
	sum := sha256.Sum256([]byte(ex.School + "\x00" + ex.Essay))
	return hex.EncodeToString(sum[:])
}
