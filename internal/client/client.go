package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client is the REST client for the ChatPDF backend. It carries no session
// state; the Controller owns that.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// AskResult is a successful answer with its source citations.
type AskResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Export is a downloaded history document plus its suggested local filename.
type Export struct {
	Filename string
	Data     []byte
}

// Models fetches the display-name to model-id mapping.
func (c *Client) Models(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var body struct {
		Models map[string]string `json:"models"`
	}
	if err := c.doJSON(req, &body); err != nil {
		return nil, err
	}
	return body.Models, nil
}

// Upload submits a file batch as one multipart request and returns the
// session id issued by the backend.
func (c *Client) Upload(ctx context.Context, files []StagedFile) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := c.doJSON(req, &body); err != nil {
		return "", err
	}
	if body.SessionID == "" {
		return "", fmt.Errorf("backend returned no session id")
	}
	return body.SessionID, nil
}

// Ask sends a question bound to a session and model.
func (c *Client) Ask(ctx context.Context, sessionID, question, model string) (*AskResult, error) {
	payload, err := json.Marshal(map[string]string{
		"question":   question,
		"model_name": model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/"+sessionID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result AskResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearHistory deletes the session's chat history on the backend.
func (c *Client) ClearHistory(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/history/"+sessionID, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.doJSON(req, nil)
}

// DownloadHistory fetches the session transcript as a document. The filename
// follows the backend's chat_history_<sessionID> pattern.
func (c *Client) DownloadHistory(ctx context.Context, sessionID string) (*Export, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	return &Export{
		Filename: fmt.Sprintf("chat_history_%s.pdf", sessionID),
		Data:     data,
	}, nil
}

// doJSON executes the request and decodes a JSON body into out (out may be
// nil when the caller only cares about success).
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError turns a non-2xx response into an error, preferring the
// backend's detail message when present.
func statusError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, body.Detail)
	}
	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}
