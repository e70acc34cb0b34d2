package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/embedding"
	"github.com/adiwiguna/chatpdf/internal/ingest"
	"github.com/adiwiguna/chatpdf/internal/session"
)

// IngestService turns an upload batch into a queryable session: extract
// text, chunk it, embed the chunks, store them, register the session.
type IngestService struct {
	registry *session.Registry
	store    domain.ChunkStore
	embedder embedding.Embedder
	splitter *ingest.Splitter
}

// NewIngestService creates a new ingest service
func NewIngestService(registry *session.Registry, store domain.ChunkStore, embedder embedding.Embedder, splitter *ingest.Splitter) *IngestService {
	return &IngestService{
		registry: registry,
		store:    store,
		embedder: embedder,
		splitter: splitter,
	}
}

// Process ingests an upload batch and returns the new session id.
func (s *IngestService) Process(ctx context.Context, files []domain.UploadedFile) (string, error) {
	start := time.Now()

	pages, err := ingest.ExtractPages(files)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	chunks := s.splitter.Split(pages)
	if len(chunks) == 0 {
		return "", fmt.Errorf("no extractable text in uploaded files")
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return "", fmt.Errorf("failed to embed chunks: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	sessionID := uuid.New().String()
	if err := s.store.SaveChunks(ctx, sessionID, chunks); err != nil {
		return "", fmt.Errorf("failed to store chunks: %w", err)
	}

	fileNames := make([]string, len(files))
	for i, file := range files {
		fileNames[i] = file.Name
	}
	s.registry.Create(sessionID, fileNames)

	log.Info().
		Str("session_id", sessionID).
		Int("files", len(files)).
		Int("chunks", len(chunks)).
		Dur("elapsed", time.Since(start)).
		Msg("documents processed")

	return sessionID, nil
}
