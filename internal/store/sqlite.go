package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// SQLiteStore persists document chunks and their embeddings per session.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the chunk database.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS chunks (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL,
        file TEXT NOT NULL,
        page INTEGER NOT NULL,
        content TEXT NOT NULL,
        embedding_json TEXT -- JSON-encoded []float32
    );

    CREATE INDEX IF NOT EXISTS idx_chunks_session ON chunks (session_id);
    `
	_, err := s.db.Exec(schema)
	return err
}

// SaveChunks inserts a session's chunks in one transaction.
func (s *SQLiteStore) SaveChunks(ctx context.Context, sessionID string, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (session_id, file, page, content, embedding_json) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingJSON, err := json.Marshal(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("failed to encode embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, sessionID, chunk.File, chunk.Page, chunk.Content, string(embeddingJSON)); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	return tx.Commit()
}

// ListBySession returns all chunks of a session with decoded embeddings.
func (s *SQLiteStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_id, file, page, content, embedding_json FROM chunks WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingJSON string
		if err := rows.Scan(&chunk.ID, &chunk.SessionID, &chunk.File, &chunk.Page, &chunk.Content, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if embeddingJSON != "" {
			if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
				return nil, fmt.Errorf("failed to decode embedding for chunk %d: %w", chunk.ID, err)
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// DeleteBySession removes every chunk belonging to a session.
func (s *SQLiteStore) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session chunks: %w", err)
	}
	return nil
}
