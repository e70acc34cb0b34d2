package llm

import "context"

// Request contains question-answering parameters.
type Request struct {
	Question string
	Context  string
}

// Response contains the LLM answer.
type Response struct {
	Answer     string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Answer generates an answer to a question grounded on document context
	Answer(ctx context.Context, req Request, model string) (*Response, error)
}
