package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

const _defaultOllamaBaseURL = "http://localhost:11434"

// OllamaClient calls a local Ollama server's chat API. Zero value is not
// valid; use NewOllamaClient.
type OllamaClient struct {
	client *ollama.Client
}

// NewOllamaClient builds a client. baseURL is the server root (e.g.
// http://localhost:11434); empty means the local default.
func NewOllamaClient(baseURL string, httpClient *http.Client) (*OllamaClient, error) {
	if baseURL == "" {
		baseURL = _defaultOllamaBaseURL
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, erruser.Newf(err, "Invalid Ollama base URL %q.", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaClient{client: ollama.NewClient(u, httpClient)}, nil
}

// Complete sends req as a single non-streaming chat and returns the reply.
// MaxTokens maps to num_predict.
func (c *OllamaClient) Complete(ctx context.Context, req Request) (*Result, error) {
	msgs := make([]ollama.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}
	opts := map[string]any{}
	if req.Temperature != nil {
		opts["temperature"] = *req.Temperature
	}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}
	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    req.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  opts,
	}

	var (
		text strings.Builder
		seen bool
	)
	err := c.client.Chat(ctx, chatReq, func(resp ollama.ChatResponse) error {
		seen = true
		text.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		var se ollama.StatusError
		if errors.As(err, &se) {
			if se.StatusCode == http.StatusNotFound {
				return nil, erruser.Newf(err, "Model %q is not available on the Ollama server; run: ollama pull %s", req.Model, req.Model)
			}
			if se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden {
				return nil, userError(fmt.Errorf("ollama chat: %w: %v", ErrUnauthorized, err))
			}
		}
		return nil, userError(fmt.Errorf("ollama chat: %w", errors.Join(ErrUnreachable, err)))
	}
	if !seen {
		return nil, userError(fmt.Errorf("ollama chat: %w: empty reply", ErrMalformedResponse))
	}
	return &Result{Text: text.String()}, nil
}
