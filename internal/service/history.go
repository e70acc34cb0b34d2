package service

import (
	"fmt"

	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/report"
	"github.com/adiwiguna/chatpdf/internal/session"
)

// HistoryService reads, clears, and exports a session's chat history.
type HistoryService struct {
	registry *session.Registry
}

// NewHistoryService creates a new history service
func NewHistoryService(registry *session.Registry) *HistoryService {
	return &HistoryService{registry: registry}
}

// History returns a session's chat history.
func (s *HistoryService) History(sessionID string) ([]domain.HistoryEntry, error) {
	if !s.registry.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	return s.registry.History(sessionID), nil
}

// Clear empties a session's chat history. The document index is kept so the
// session stays usable for further questions.
func (s *HistoryService) Clear(sessionID string) error {
	if !s.registry.Exists(sessionID) {
		return domain.ErrSessionNotFound
	}
	s.registry.ClearHistory(sessionID)
	return nil
}

// Export renders a session's chat history as a PDF report.
func (s *HistoryService) Export(sessionID string) ([]byte, error) {
	if !s.registry.Exists(sessionID) {
		return nil, domain.ErrSessionNotFound
	}
	history := s.registry.History(sessionID)
	if len(history) == 0 {
		return nil, domain.ErrEmptyHistory
	}

	pdf, err := report.Generate(history)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return pdf, nil
}
