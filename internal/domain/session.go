package domain

import "time"

// Session represents a processed document batch on the server side.
// A session exists only for the lifetime of the process; there is no
// cross-restart persistence.
type Session struct {
	ID        string    `json:"session_id"`
	Files     []string  `json:"files"`
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
	History   []HistoryEntry
}

// HistoryEntry is one message in a session's server-side chat history.
// The wire shape ({"type": ..., "content": ...}) is part of the API contract.
type HistoryEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// SessionStatus tracks the client-side document-processing lifecycle.
type SessionStatus int

const (
	StatusUnprocessed SessionStatus = iota
	StatusProcessing
	StatusProcessed
)

func (s SessionStatus) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusProcessed:
		return "processed"
	default:
		return "unprocessed"
	}
}
