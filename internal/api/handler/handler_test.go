package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/adiwiguna/chatpdf/internal/api/handler"
	"github.com/adiwiguna/chatpdf/internal/domain"
	"github.com/adiwiguna/chatpdf/internal/service"
)

type stubIngester struct {
	sessionID string
	err       error
	got       []domain.UploadedFile
}

func (s *stubIngester) Process(ctx context.Context, files []domain.UploadedFile) (string, error) {
	s.got = files
	return s.sessionID, s.err
}

type stubAsker struct {
	answer *service.Answer
	err    error
	model  string
}

func (s *stubAsker) Ask(ctx context.Context, sessionID, question, modelName string) (*service.Answer, error) {
	s.model = modelName
	return s.answer, s.err
}

type stubHistorian struct {
	history []domain.HistoryEntry
	pdf     []byte
	err     error
}

func (s *stubHistorian) History(sessionID string) ([]domain.HistoryEntry, error) {
	return s.history, s.err
}

func (s *stubHistorian) Clear(sessionID string) error {
	return s.err
}

func (s *stubHistorian) Export(sessionID string) ([]byte, error) {
	return s.pdf, s.err
}

func newRouter(ingester handler.Ingester, asker handler.Asker, historian handler.Historian) http.Handler {
	r := chi.NewRouter()
	r.Get("/models", handler.ListModels)
	r.Post("/upload", handler.NewUploadHandler(ingester, 10).Upload)
	r.Post("/chat/{sessionID}", handler.NewChatHandler(asker).Ask)
	h := handler.NewHistoryHandler(historian)
	r.Get("/history/{sessionID}", h.Get)
	r.Delete("/history/{sessionID}", h.Clear)
	r.Get("/download/{sessionID}", h.Download)
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("%PDF-1.4 stub"))
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestListModels(t *testing.T) {
	router := newRouter(&stubIngester{}, &stubAsker{}, &stubHistorian{})

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	body := decodeBody(t, rec)
	models, ok := body["models"].(map[string]any)
	if !ok {
		t.Fatal("expected models to be a map")
	}
	if models["Llama3-70B"] != "llama3-70b-8192" {
		t.Errorf("unexpected model id: %v", models["Llama3-70B"])
	}
}

func TestUpload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ingester := &stubIngester{sessionID: "abc123"}
		router := newRouter(ingester, &stubAsker{}, &stubHistorian{})

		buf, contentType := multipartBody(t, "a.pdf", "b.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
		}

		body := decodeBody(t, rec)
		if body["session_id"] != "abc123" {
			t.Errorf("unexpected session id: %v", body["session_id"])
		}
		if body["processed"] != true {
			t.Error("expected processed to be true")
		}
		if len(ingester.got) != 2 {
			t.Errorf("expected 2 files passed to ingester, got %d", len(ingester.got))
		}
	})

	t.Run("one non-pdf rejects the batch", func(t *testing.T) {
		ingester := &stubIngester{sessionID: "abc123"}
		router := newRouter(ingester, &stubAsker{}, &stubHistorian{})

		buf, contentType := multipartBody(t, "a.pdf", "notes.txt")
		req := httptest.NewRequest(http.MethodPost, "/upload", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
		body := decodeBody(t, rec)
		if !strings.Contains(body["detail"].(string), "notes.txt") {
			t.Errorf("detail should name the offending file: %v", body["detail"])
		}
		if ingester.got != nil {
			t.Error("ingester should not have been called")
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		router := newRouter(&stubIngester{}, &stubAsker{}, &stubHistorian{})

		buf, contentType := multipartBody(t)
		req := httptest.NewRequest(http.MethodPost, "/upload", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestChat(t *testing.T) {
	t.Run("success with empty sources", func(t *testing.T) {
		asker := &stubAsker{answer: &service.Answer{Text: "hi"}}
		router := newRouter(&stubIngester{}, asker, &stubHistorian{})

		payload := `{"question":"Anything?"}`
		req := httptest.NewRequest(http.MethodPost, "/chat/abc123", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		body := decodeBody(t, rec)
		if body["answer"] != "hi" {
			t.Errorf("unexpected answer: %v", body["answer"])
		}
		sources, ok := body["sources"].([]any)
		if !ok {
			t.Fatalf("sources must be an array, got %T", body["sources"])
		}
		if len(sources) != 0 {
			t.Errorf("expected empty sources, got %v", sources)
		}
		if body["session_id"] != "abc123" {
			t.Errorf("unexpected session id: %v", body["session_id"])
		}
		if asker.model != "llama3-70b-8192" {
			t.Errorf("missing model name should default, got %q", asker.model)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		router := newRouter(&stubIngester{}, &stubAsker{}, &stubHistorian{})

		req := httptest.NewRequest(http.MethodPost, "/chat/abc123", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		asker := &stubAsker{err: domain.ErrSessionNotFound}
		router := newRouter(&stubIngester{}, asker, &stubHistorian{})

		req := httptest.NewRequest(http.MethodPost, "/chat/missing", strings.NewReader(`{"question":"q"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["detail"] != "Session not found" {
			t.Errorf("unexpected detail: %v", body["detail"])
		}
	})

	t.Run("unprocessed session", func(t *testing.T) {
		asker := &stubAsker{err: domain.ErrSessionNotProcessed}
		router := newRouter(&stubIngester{}, asker, &stubHistorian{})

		req := httptest.NewRequest(http.MethodPost, "/chat/abc123", strings.NewReader(`{"question":"q"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("empty history serializes as array", func(t *testing.T) {
		router := newRouter(&stubIngester{}, &stubAsker{}, &stubHistorian{})

		req := httptest.NewRequest(http.MethodGet, "/history/abc123", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"history":[]`) {
			t.Errorf("history should serialize as [], got %s", rec.Body)
		}
	})

	t.Run("clear", func(t *testing.T) {
		router := newRouter(&stubIngester{}, &stubAsker{}, &stubHistorian{})

		req := httptest.NewRequest(http.MethodDelete, "/history/abc123", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("download sets pdf headers", func(t *testing.T) {
		historian := &stubHistorian{pdf: []byte("%PDF-1.4 export")}
		router := newRouter(&stubIngester{}, &stubAsker{}, historian)

		req := httptest.NewRequest(http.MethodGet, "/download/abc123", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
			t.Errorf("unexpected content type: %q", got)
		}
		want := `attachment; filename="chat_history_abc123.pdf"`
		if got := rec.Header().Get("Content-Disposition"); got != want {
			t.Errorf("unexpected disposition: %q", got)
		}
	})

	t.Run("download with empty history", func(t *testing.T) {
		historian := &stubHistorian{err: domain.ErrEmptyHistory}
		router := newRouter(&stubIngester{}, &stubAsker{}, historian)

		req := httptest.NewRequest(http.MethodGet, "/download/abc123", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}
