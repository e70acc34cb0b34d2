package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chunks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chunks := []domain.Chunk{
		{File: "a.pdf", Page: 1, Content: "first chunk", Embedding: []float32{0.1, 0.2}},
		{File: "a.pdf", Page: 2, Content: "second chunk", Embedding: []float32{0.3, 0.4}},
	}
	require.NoError(t, s.SaveChunks(ctx, "abc123", chunks))

	got, err := s.ListBySession(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Insertion order is preserved.
	assert.Equal(t, "first chunk", got[0].Content)
	assert.Equal(t, "abc123", got[0].SessionID)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, []float32{0.1, 0.2}, got[0].Embedding)
	assert.Equal(t, []float32{0.3, 0.4}, got[1].Embedding)
	assert.NotZero(t, got[0].ID)
}

func TestSQLiteStore_SessionsAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveChunks(ctx, "one", []domain.Chunk{{File: "a.pdf", Page: 1, Content: "x"}}))
	require.NoError(t, s.SaveChunks(ctx, "two", []domain.Chunk{{File: "b.pdf", Page: 1, Content: "y"}}))

	got, err := s.ListBySession(ctx, "one")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.pdf", got[0].File)
}

func TestSQLiteStore_DeleteBySession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveChunks(ctx, "one", []domain.Chunk{{File: "a.pdf", Page: 1, Content: "x"}}))
	require.NoError(t, s.SaveChunks(ctx, "two", []domain.Chunk{{File: "b.pdf", Page: 1, Content: "y"}}))

	require.NoError(t, s.DeleteBySession(ctx, "one"))

	got, err := s.ListBySession(ctx, "one")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListBySession(ctx, "two")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Deleting an unknown session is not an error.
	assert.NoError(t, s.DeleteBySession(ctx, "missing"))
}

func TestSQLiteStore_EmptyEmbedding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveChunks(ctx, "abc123", []domain.Chunk{{File: "a.pdf", Page: 1, Content: "bare"}}))

	got, err := s.ListBySession(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Embedding)
}
