// Package releasenotes turns a filtered commit log into a release-notes
// summary.
package releasenotes

import (
	"context"
	"errors"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/git"
	"github.com/sinataghva/git-ai/cli/internal/llm"
	"github.com/sinataghva/git-ai/cli/internal/prompt"
)

// ErrEmptyLog is returned when the log has no commits; the service is not called.
var ErrEmptyLog = errors.New("empty commit log")

// Filters are the optional log restrictions. The zero value selects every
// commit reachable from HEAD.
type Filters struct {
	Since     string
	Range     string
	Author    string
	Grep      string
	Technical bool
}

// LeadIn is the sentence the summary must start with, naming the filters in use.
func (f Filters) LeadIn() string {
	var parts []string
	if f.Since != "" {
		parts = append(parts, "since "+f.Since)
	}
	if f.Range != "" {
		parts = append(parts, "in "+f.Range)
	}
	if f.Author != "" {
		parts = append(parts, "by "+f.Author)
	}
	if f.Grep != "" {
		parts = append(parts, "with grep "+f.Grep)
	}
	if f.Technical {
		parts = append(parts, "(technical)")
	}
	if len(parts) == 0 {
		return "What's changed:"
	}
	return "What's changed " + strings.Join(parts, " ") + ":"
}

// Query returns the git log query for f.
func (f Filters) Query() git.LogQuery {
	return git.LogQuery{Since: f.Since, Range: f.Range, Author: f.Author, Grep: f.Grep}
}

// Options are the request parameters for Summarize. Zero MaxTokens and a nil
// Temperature leave the service defaults.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// Messages returns the system and user messages for log under f.
func Messages(log string, f Filters) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.NotesSystem(f.Technical)},
		{Role: llm.RoleUser, Content: prompt.NotesUser(log, f.LeadIn(), f.Technical)},
	}
}

// Summarize asks client for a summary of log. An empty log returns ErrEmptyLog
// without calling the service.
func Summarize(ctx context.Context, client llm.Completer, log string, f Filters, opts Options) (string, error) {
	if strings.TrimSpace(log) == "" {
		return "", erruser.New("No commits found for the given filters.", ErrEmptyLog)
	}
	if client == nil {
		return "", errors.New("releasenotes: nil client")
	}
	res, err := client.Complete(ctx, llm.Request{
		Model:       opts.Model,
		Messages:    Messages(log, f),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Text), nil
}
