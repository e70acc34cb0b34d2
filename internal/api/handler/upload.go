package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adiwiguna/chatpdf/internal/api/response"
	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Ingester processes an upload batch into a session.
type Ingester interface {
	Process(ctx context.Context, files []domain.UploadedFile) (string, error)
}

// UploadHandler handles the document upload endpoint
type UploadHandler struct {
	ingester  Ingester
	maxUpload int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(ingester Ingester, maxUploadMB int64) *UploadHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	return &UploadHandler{ingester: ingester, maxUpload: maxUploadMB << 20}
}

// Upload handles POST /upload: a multipart batch of PDFs, all-or-nothing.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		response.BadRequest(w, "invalid multipart request")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		response.BadRequest(w, "No files uploaded")
		return
	}

	// Validate the whole batch before reading anything
	for _, header := range headers {
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			response.BadRequest(w, fmt.Sprintf("File %s is not a PDF", header.Filename))
			return
		}
	}

	files := make([]domain.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			response.InternalError(w, "failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			response.InternalError(w, "failed to read uploaded file")
			return
		}
		files = append(files, domain.UploadedFile{Name: header.Filename, Data: data})
	}

	sessionID, err := h.ingester.Process(r.Context(), files)
	if err != nil {
		response.InternalError(w, fmt.Sprintf("Error processing files: %s", err))
		return
	}

	response.OK(w, map[string]any{
		"message":    "Documents processed successfully",
		"session_id": sessionID,
		"processed":  true,
	})
}
