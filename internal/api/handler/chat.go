package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/adiwiguna/chatpdf/internal/api/response"
	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/llm"
	"github.com/adiwiguna/chatpdf/internal/service"
)

var validate = validator.New()

// Asker answers a question against a processed session.
type Asker interface {
	Ask(ctx context.Context, sessionID, question, modelName string) (*service.Answer, error)
}

// ChatHandler handles the question-answering endpoint
type ChatHandler struct {
	chat Asker
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat Asker) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Question  string `json:"question" validate:"required"`
	ModelName string `json:"model_name"`
}

// Ask handles POST /chat/{sessionID}
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var input chatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "question is required")
		return
	}
	if input.ModelName == "" {
		input.ModelName = llm.DefaultModel
	}

	answer, err := h.chat.Ask(r.Context(), sessionID, input.Question, input.ModelName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			response.NotFound(w, "Session not found")
		case errors.Is(err, domain.ErrSessionNotProcessed):
			response.BadRequest(w, "No processed documents found")
		default:
			response.InternalError(w, fmt.Sprintf("Error processing chat: %s", err))
		}
		return
	}

	// sources must serialize as [] rather than null when empty
	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}

	response.OK(w, map[string]any{
		"answer":     answer.Text,
		"sources":    sources,
		"session_id": sessionID,
	})
}
