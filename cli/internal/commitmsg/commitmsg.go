// Package commitmsg asks the completion service for a commit message and
// cleans the reply.
package commitmsg

import (
	"context"
	"errors"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/llm"
)

// ErrEmptyMessage is returned when the cleaned reply is empty.
var ErrEmptyMessage = errors.New("empty commit message")

// Options are the request parameters for Suggest.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// Messages returns the two-message conversation: system steering, then the payload.
func Messages(system, payload string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: payload},
	}
}

// Suggest sends system and payload to client and returns the cleaned reply.
// Service errors are returned unchanged; there is no retry.
func Suggest(ctx context.Context, client llm.Completer, system, payload string, opts Options) (string, error) {
	if client == nil {
		return "", errors.New("commitmsg: nil client")
	}
	res, err := client.Complete(ctx, llm.Request{
		Model:       opts.Model,
		Messages:    Messages(system, payload),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	msg := Clean(res.Text)
	if msg == "" {
		return "", erruser.New("The completion service returned an empty commit message.", ErrEmptyMessage)
	}
	return msg, nil
}

// Clean trims surrounding whitespace and then one pair of enclosing double quotes.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}
