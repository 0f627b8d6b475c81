package run

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/git"
	"github.com/sinataghva/git-ai/cli/internal/llm"
	"github.com/sinataghva/git-ai/cli/internal/releasenotes"
	"github.com/sinataghva/git-ai/cli/internal/tokens"
	"github.com/sinataghva/git-ai/cli/internal/trace"
	"github.com/sinataghva/git-ai/cli/internal/ui"
)

// LogSource renders a filtered commit log.
type LogSource interface {
	Log(q git.LogQuery) (string, error)
}

// NotesOptions configures ReleaseNotes.
type NotesOptions struct {
	Git           LogSource
	Client        llm.Completer
	Filters       releasenotes.Filters
	Model         string
	ContextLimit  int
	WarnThreshold float64
	Printer       *ui.Printer
	Trace         *trace.Tracer
	Log           *zap.Logger
	Repo          string
}

// ReleaseNotes fetches the filtered log and returns the summary. A failed or
// empty log returns an error without calling the service.
func ReleaseNotes(ctx context.Context, opts NotesOptions) (string, error) {
	log := nopIfNil(opts.Log).With(zap.String("repo", opts.Repo))
	q := opts.Filters.Query()
	commits, err := opts.Git.Log(q)
	if err != nil {
		return "", err
	}
	opts.Trace.Block("Log", commits)

	if strings.TrimSpace(commits) != "" {
		msgs := releasenotes.Messages(commits, opts.Filters)
		if w := tokens.WarnIfOver(tokens.EstimateMessages(msgs[0].Content, msgs[1].Content), 0, opts.ContextLimit, opts.WarnThreshold); w != "" {
			opts.Printer.Warn("Warning: " + w)
		}
		opts.Trace.Block("System prompt", msgs[0].Content)
		opts.Trace.Block("User prompt", msgs[1].Content)
	}

	start := time.Now()
	summary, err := releasenotes.Summarize(ctx, opts.Client, commits, opts.Filters, releasenotes.Options{Model: opts.Model})
	log.Debug("release notes",
		zap.String("model", opts.Model),
		zap.String("lead_in", opts.Filters.LeadIn()),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return "", err
	}
	opts.Trace.Block("Response", summary)
	return summary, nil
}
