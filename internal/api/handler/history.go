package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adiwiguna/chatpdf/internal/api/response"
	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Historian reads, clears and exports session chat history.
type Historian interface {
	History(sessionID string) ([]domain.HistoryEntry, error)
	Clear(sessionID string) error
	Export(sessionID string) ([]byte, error)
}

// HistoryHandler handles the history endpoints
type HistoryHandler struct {
	history Historian
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history Historian) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Get handles GET /history/{sessionID}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	history, err := h.history.History(sessionID)
	if err != nil {
		response.NotFound(w, "Session not found")
		return
	}
	if history == nil {
		history = []domain.HistoryEntry{}
	}

	response.OK(w, map[string]any{"history": history})
}

// Clear handles DELETE /history/{sessionID}
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.history.Clear(sessionID); err != nil {
		response.NotFound(w, "Session not found")
		return
	}

	response.OK(w, map[string]string{"message": "Chat history cleared"})
}

// Download handles GET /download/{sessionID}: the chat history as a PDF.
func (h *HistoryHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	pdf, err := h.history.Export(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			response.NotFound(w, "Session not found")
		case errors.Is(err, domain.ErrEmptyHistory):
			response.BadRequest(w, "No chat history to download")
		default:
			response.InternalError(w, fmt.Sprintf("Error generating PDF: %s", err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="chat_history_%s.pdf"`, sessionID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
