package domain

import "context"

// Chunk is a slice of extracted document text together with the metadata
// needed to cite it back to the user.
type Chunk struct {
	ID        int64
	SessionID string
	File      string
	Page      int
	Content   string
	Embedding []float32
}

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// ChunkStore defines the interface for per-session chunk storage.
type ChunkStore interface {
	SaveChunks(ctx context.Context, sessionID string, chunks []Chunk) error
	ListBySession(ctx context.Context, sessionID string) ([]Chunk, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// UploadedFile is a document received in an upload batch, held in memory
// until ingestion completes.
type UploadedFile struct {
	Name string
	Data []byte
}
