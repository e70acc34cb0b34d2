package handler

import (
	"net/http"

	"github.com/adiwiguna/chatpdf/internal/api/response"
	"github.com/adiwiguna/chatpdf/internal/llm"
)

// ListModels returns the selectable LLM models as display-name -> id.
func ListModels(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"models": llm.ModelOptions,
	})
}
