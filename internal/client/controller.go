package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// askErrorText is shown as the assistant turn when a question fails, so the
// transcript always ends with a response to the last question.
const askErrorText = "Error processing your question. Please try again."

type askState int

const (
	askIdle askState = iota
	askAwaiting
)

// Controller owns the client-side session state: the staged file batch, the
// processing status, the transcript, and the clear-confirmation gate. All
// methods are safe for concurrent use; network calls run outside the lock so
// in-flight states stay observable.
type Controller struct {
	mu          sync.Mutex
	api         *Client
	log         zerolog.Logger
	downloadDir string

	staged       []StagedFile
	sessionID    string
	status       domain.SessionStatus
	transcript   []domain.Turn
	ask          askState
	model        string
	pendingClear bool
}

// NewController creates a controller talking to api. Exported documents are
// written to downloadDir.
func NewController(api *Client, downloadDir string, log zerolog.Logger) *Controller {
	return &Controller{
		api:         api,
		log:         log,
		downloadDir: downloadDir,
		status:      domain.StatusUnprocessed,
		model:       DefaultModel,
	}
}

// SelectFiles replaces the staged batch. Validation is all-or-nothing: one
// non-PDF rejects the whole selection and leaves the previous batch staged.
// Staging never touches the session: a bound session stays usable for
// questions until the new batch is actually uploaded.
func (c *Controller) SelectFiles(files []StagedFile) error {
	for _, file := range files {
		if file.ContentType != "application/pdf" {
			return fmt.Errorf("%w: %s", domain.ErrInvalidFileType, file.Name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.staged = files
	return nil
}

// Upload submits the staged batch for processing. While the upload is in
// flight the status is Processing and further uploads and questions are
// rejected. On failure the previous status is restored and the batch stays
// staged so the user can retry. On success the controller binds to the new
// session and starts with an empty transcript.
func (c *Controller) Upload(ctx context.Context) error {
	c.mu.Lock()
	if len(c.staged) == 0 {
		c.mu.Unlock()
		return domain.ErrNoFiles
	}
	if c.status == domain.StatusProcessing || c.ask == askAwaiting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	previous := c.status
	c.status = domain.StatusProcessing
	files := c.staged
	c.mu.Unlock()

	sessionID, err := c.api.Upload(ctx, files)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status = previous
		c.log.Error().Err(err).Msg("upload failed")
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	c.sessionID = sessionID
	c.status = domain.StatusProcessed
	c.transcript = nil
	c.pendingClear = false
	c.log.Info().Str("session_id", sessionID).Int("files", len(files)).Msg("documents processed")
	return nil
}

// Ask submits a question against the current session. Blank questions and
// questions asked before processing completes are silent no-ops. A second
// question while one is awaiting an answer is rejected with ErrBusy, never
// queued. The user turn is appended before the request goes out; the
// exchange always terminates with an assistant turn, a fixed error message
// when the backend fails.
func (c *Controller) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)

	c.mu.Lock()
	if question == "" || c.status != domain.StatusProcessed {
		c.mu.Unlock()
		return nil
	}
	if c.ask == askAwaiting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.ask = askAwaiting
	c.transcript = append(c.transcript, domain.Turn{Role: domain.RoleUser, Content: question})
	sessionID := c.sessionID
	model := c.model
	c.mu.Unlock()

	result, err := c.api.Ask(ctx, sessionID, question, model)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ask = askIdle

	if err != nil {
		c.transcript = append(c.transcript, domain.Turn{Role: domain.RoleAssistant, Content: askErrorText})
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("ask failed")
		return fmt.Errorf("%w: %v", domain.ErrAskFailed, err)
	}

	c.transcript = append(c.transcript, domain.Turn{
		Role:    domain.RoleAssistant,
		Content: result.Answer,
		Sources: result.Sources,
	})
	return nil
}

// SetModel picks the model id used for subsequent questions.
func (c *Controller) SetModel(modelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = modelID
}

// RequestClear opens the clear-confirmation gate. Nothing is deleted until
// ConfirmClear. A no-op without a session or transcript.
func (c *Controller) RequestClear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID == "" || len(c.transcript) == 0 {
		return
	}
	c.pendingClear = true
}

// CancelClear closes the gate without deleting anything.
func (c *Controller) CancelClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingClear = false
}

// ConfirmClear deletes the history on the backend and, on success, resets
// the local transcript and closes the gate. On failure both the transcript
// and the gate survive, so the user can retry or cancel.
func (c *Controller) ConfirmClear(ctx context.Context) error {
	c.mu.Lock()
	if !c.pendingClear {
		c.mu.Unlock()
		return nil
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	if err := c.api.ClearHistory(ctx, sessionID); err != nil {
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("clear failed")
		return fmt.Errorf("%w: %v", domain.ErrClearFailed, err)
	}

	c.mu.Lock()
	c.transcript = nil
	c.pendingClear = false
	c.mu.Unlock()
	return nil
}

// Export downloads the session transcript as a document and writes it under
// the download directory, returning the written path. A no-op without a
// session or with an empty transcript.
func (c *Controller) Export(ctx context.Context) (string, error) {
	c.mu.Lock()
	sessionID := c.sessionID
	empty := len(c.transcript) == 0
	c.mu.Unlock()

	if sessionID == "" || empty {
		return "", nil
	}

	export, err := c.api.DownloadHistory(ctx, sessionID)
	if err != nil {
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("export failed")
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	path := filepath.Join(c.downloadDir, export.Filename)
	if err := os.WriteFile(path, export.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	c.log.Info().Str("path", path).Msg("history exported")
	return path, nil
}

// SessionID returns the bound session id, empty before the first successful
// upload.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Status returns the current processing status.
func (c *Controller) Status() domain.SessionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Awaiting reports whether a question is in flight.
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ask == askAwaiting
}

// PendingClear reports whether the clear-confirmation gate is open.
func (c *Controller) PendingClear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingClear
}

// Model returns the model id used for questions.
func (c *Controller) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// StagedFiles returns the names of the staged batch.
func (c *Controller) StagedFiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.staged))
	for i, file := range c.staged {
		names[i] = file.Name
	}
	return names
}

// Transcript returns a copy of the conversation so far.
func (c *Controller) Transcript() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	turns := make([]domain.Turn, len(c.transcript))
	copy(turns, c.transcript)
	return turns
}
