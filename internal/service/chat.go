package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/llm"
	"github.com/adiwiguna/chatpdf/internal/rag"
	"github.com/adiwiguna/chatpdf/internal/session"
)

// Retriever finds document context for a question.
type Retriever interface {
	Retrieve(ctx context.Context, sessionID, query string) ([]domain.ScoredChunk, error)
}

// Answer is the result of one question against a session.
type Answer struct {
	Text    string
	Sources []string
}

// ChatService answers questions against a processed session and records the
// exchange in the session history.
type ChatService struct {
	registry  *session.Registry
	retriever Retriever
	provider  llm.Provider
}

// NewChatService creates a new chat service
func NewChatService(registry *session.Registry, retriever Retriever, provider llm.Provider) *ChatService {
	return &ChatService{
		registry:  registry,
		retriever: retriever,
		provider:  provider,
	}
}

// Ask answers a question against a session's documents.
func (s *ChatService) Ask(ctx context.Context, sessionID, question, modelName string) (*Answer, error) {
	if !s.registry.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	if !s.registry.IsProcessed(sessionID) {
		return nil, domain.ErrSessionNotProcessed
	}

	scored, err := s.retriever.Retrieve(ctx, sessionID, question)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	resp, err := s.provider.Answer(ctx, llm.Request{
		Question: question,
		Context:  buildContext(scored),
	}, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("answer generated")

	s.registry.AppendHistory(sessionID, string(domain.RoleUser), question)
	s.registry.AppendHistory(sessionID, string(domain.RoleAssistant), resp.Answer)

	return &Answer{
		Text:    resp.Answer,
		Sources: citeSources(scored),
	}, nil
}

// buildContext joins retrieved chunks into the prompt context block.
func buildContext(scored []domain.ScoredChunk) string {
	var b strings.Builder
	for _, sc := range scored {
		b.WriteString(sc.Chunk.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// citeSources deduplicates the retrieved chunks into "file (page N)"
// citations, sorted for stable output.
func citeSources(scored []domain.ScoredChunk) []string {
	seen := make(map[string]bool)
	sources := make([]string, 0, len(scored))
	for _, sc := range scored {
		citation := fmt.Sprintf("%s (page %d)", sc.Chunk.File, sc.Chunk.Page)
		if !seen[citation] {
			seen[citation] = true
			sources = append(sources, citation)
		}
	}
	sort.Strings(sources)
	return sources
}

// compile-time check that the rag retriever satisfies the interface
var _ Retriever = (*rag.Retriever)(nil)
