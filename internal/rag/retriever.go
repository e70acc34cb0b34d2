package rag

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/embedding"
)

// Retriever finds the chunks of a session's documents most similar to a
// query.
type Retriever struct {
	store         domain.ChunkStore
	embedder      embedding.Embedder
	topK          int
	minSimilarity float32
}

// NewRetriever creates a retriever over the given chunk store.
func NewRetriever(store domain.ChunkStore, embedder embedding.Embedder, topK int, minSimilarity float32) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		store:         store,
		embedder:      embedder,
		topK:          topK,
		minSimilarity: minSimilarity,
	}
}

// Retrieve returns up to topK chunks of the session ranked by cosine
// similarity to the query.
func (r *Retriever) Retrieve(ctx context.Context, sessionID, query string) ([]domain.ScoredChunk, error) {
	chunks, err := r.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		similarity, err := CosineSimilarity(queryEmbedding, chunk.Embedding)
		if err != nil {
			log.Warn().Err(err).Int64("chunk_id", chunk.ID).Msg("skipping chunk with bad embedding")
			continue
		}
		if similarity >= r.minSimilarity {
			scored = append(scored, domain.ScoredChunk{Chunk: chunk, Score: similarity})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}
	return scored, nil
}
