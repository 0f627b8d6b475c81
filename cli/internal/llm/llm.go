// Package llm sends chat prompts to a completion service and returns the
// single text reply. Two backends exist: an OpenAI-compatible
// /chat/completions endpoint and a local Ollama server.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// Roles used in Message.Role.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	// ErrUnreachable indicates the service could not be reached (connection refused, timeout, or non-2xx).
	ErrUnreachable = errors.New("completion service unreachable")
	// ErrUnauthorized indicates the service rejected the credentials (HTTP 401/403).
	ErrUnauthorized = errors.New("completion service rejected credentials")
	// ErrMalformedResponse indicates a 2xx reply without a usable message.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single non-streaming completion request.
type Request struct {
	Model    string
	Messages []Message
	// MaxTokens bounds the reply length; 0 leaves the service default.
	MaxTokens int
	// Temperature is nil to leave the service default.
	Temperature *float64
}

// Result is the validated reply.
type Result struct {
	Text string
}

// Completer is implemented by every backend.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}

// Options selects and configures a backend for New.
type Options struct {
	Provider string // "openai" or "ollama"
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// New builds the backend named by opts.Provider.
func New(opts Options) (Completer, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}
	switch opts.Provider {
	case "", "openai":
		return NewOpenAIClient(opts.BaseURL, opts.APIKey, httpClient), nil
	case "ollama":
		return NewOllamaClient(opts.BaseURL, httpClient)
	default:
		return nil, erruser.Newf(nil, "Unknown provider %q; use openai or ollama.", opts.Provider)
	}
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 { return &v }

// userError maps backend errors to the message shown on the command line.
func userError(err error) error {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return erruser.New("The completion service rejected the API key.", err)
	case errors.Is(err, ErrMalformedResponse):
		return erruser.New("The completion service returned an unexpected response.", err)
	default:
		return erruser.New("Could not reach the completion service.", err)
	}
}
