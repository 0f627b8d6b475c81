package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/version"
)

const _defaultOpenAIBaseURL = "https://api.openai.com/v1"

// maxResponseBytes caps how much of a reply body is read.
const maxResponseBytes = 4 << 20

// OpenAIClient calls an OpenAI-compatible chat completions endpoint. Zero
// value is not valid; use NewOpenAIClient.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenAIClient builds a client. baseURL is the API root (e.g.
// https://api.openai.com/v1); empty means the OpenAI endpoint. If httpClient
// is nil, http.DefaultClient is used.
func NewOpenAIClient(baseURL, apiKey string, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = _defaultOpenAIBaseURL
	}
	return &OpenAIClient{baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey, httpClient: httpClient}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message *Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete posts req to {base}/chat/completions and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completions: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chat completions request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, userError(fmt.Errorf("chat completions: %w", errors.Join(ErrUnreachable, err)))
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, userError(fmt.Errorf("chat completions: read body: %w", errors.Join(ErrUnreachable, err)))
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(raw, &parsed)
	detail := strings.TrimSpace(string(raw))
	if parseErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
		detail = parsed.Error.Message
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, userError(fmt.Errorf("chat completions: %w: HTTP %d: %s", ErrUnauthorized, resp.StatusCode, detail))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, userError(fmt.Errorf("chat completions: %w: HTTP %d: %s", ErrUnreachable, resp.StatusCode, detail))
	case parseErr != nil:
		return nil, userError(fmt.Errorf("chat completions: %w: %v", ErrMalformedResponse, parseErr))
	case len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil:
		return nil, userError(fmt.Errorf("chat completions: %w: no message in choices", ErrMalformedResponse))
	}
	return &Result{Text: parsed.Choices[0].Message.Content}, nil
}
