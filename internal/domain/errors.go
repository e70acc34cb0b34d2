package domain

import "errors"

// Client-side failure taxonomy. Every network or validation failure maps onto
// one of these so the UI can surface a stable, retryable notice.
var (
	// ErrInvalidFileType rejects a staged batch containing any non-PDF file.
	ErrInvalidFileType = errors.New("only PDF files can be uploaded")

	// ErrBusy rejects a mutating call while an equivalent one is in flight.
	ErrBusy = errors.New("operation already in progress")

	ErrUploadFailed = errors.New("upload failed")
	ErrAskFailed    = errors.New("question failed")
	ErrClearFailed  = errors.New("clearing history failed")
	ErrExportFailed = errors.New("exporting history failed")

	// ErrNoFiles means submit was called with an empty staged set.
	ErrNoFiles = errors.New("no files staged for upload")
)

// Server-side errors, mapped to HTTP statuses by the handlers.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotProcessed = errors.New("no processed documents found")
	ErrEmptyHistory        = errors.New("no chat history to download")
)
