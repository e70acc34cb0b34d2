package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	var gotNames []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		for _, header := range r.MultipartForm.File["files"] {
			gotNames = append(gotNames, header.Filename)
			file, err := header.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			file.Close()
			assert.NotEmpty(t, data)
		}
		json.NewEncoder(w).Encode(map[string]any{"session_id": "abc123", "processed": true})
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second)
	sessionID, err := api.Upload(context.Background(), []StagedFile{
		{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 a")},
		{Name: "b.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 b")},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", sessionID)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, gotNames)
}

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/abc123", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is this about?", body["question"])
		assert.Equal(t, "llama3-70b-8192", body["model_name"])

		json.NewEncoder(w).Encode(map[string]any{
			"answer":  "A quarterly report.",
			"sources": []string{"report.pdf (page 1)"},
		})
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second)
	result, err := api.Ask(context.Background(), "abc123", "What is this about?", "llama3-70b-8192")
	require.NoError(t, err)
	assert.Equal(t, "A quarterly report.", result.Answer)
	assert.Equal(t, []string{"report.pdf (page 1)"}, result.Sources)
}

func TestClient_DetailErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second)
	_, err := api.Ask(context.Background(), "missing", "q", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session not found")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_StatusErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second)
	err := api.ClearHistory(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_DownloadHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/abc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 export"))
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second)
	export, err := api.DownloadHistory(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "chat_history_abc123.pdf", export.Filename)
	assert.Equal(t, []byte("%PDF-1.4 export"), export.Data)
}

func TestLoadFile(t *testing.T) {
	t.Run("pdf extension", func(t *testing.T) {
		path := writeTempFile(t, "doc.PDF", "%PDF-1.4")
		file, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "doc.PDF", file.Name)
		assert.Equal(t, "application/pdf", file.ContentType)
	})

	t.Run("other extension", func(t *testing.T) {
		path := writeTempFile(t, "notes.txt", "hello")
		file, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", file.ContentType)
	})
}
