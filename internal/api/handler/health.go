package handler

import (
	"net/http"

	"github.com/adiwiguna/chatpdf/internal/api/response"
)

// Root returns a simple liveness message
func Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"message": "ChatPDF API is running",
	})
}
