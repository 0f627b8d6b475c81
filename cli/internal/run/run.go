// Package run implements the three git-ai flows: the interactive commit, the
// prepare-commit-msg hook and the release-notes summary. Collaborators (git,
// completion client, confirmation loop, output) are passed in so tests can
// drive every branch.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/commitmsg"
	"github.com/sinataghva/git-ai/cli/internal/diff"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/llm"
	"github.com/sinataghva/git-ai/cli/internal/tokens"
	"github.com/sinataghva/git-ai/cli/internal/trace"
	"github.com/sinataghva/git-ai/cli/internal/ui"
)

var (
	// ErrNoChanges indicates the staged diff is empty or could not be read.
	ErrNoChanges = errors.New("no staged changes")
	// ErrMissingAPIKey indicates the provider needs OPENAI_API_KEY and it is unset.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")
)

// MissingAPIKeyMessage is printed when the credential check fails.
const MissingAPIKeyMessage = "Error: OPENAI_API_KEY environment variable is not set."

// CheckAPIKey returns ErrMissingAPIKey (as a user error) when required and key is empty.
func CheckAPIKey(required bool, key string) error {
	if required && key == "" {
		return erruser.New(MissingAPIKeyMessage, ErrMissingAPIKey)
	}
	return nil
}

// Generation holds what is needed to turn a staged diff into a message.
type Generation struct {
	Client      llm.Completer
	Model       string
	MaxTokens   int
	Temperature *float64
	// System is the resolved system prompt.
	System string
	// MaxDiffLines is the reduction threshold; 0 means diff.Threshold.
	MaxDiffLines int
	// ContextLimit and WarnThreshold drive the token warning; zero disables it.
	ContextLimit  int
	WarnThreshold float64
}

// generated is the outcome of one generation call.
type generated struct {
	Message string
	Reduced bool
	Lines   int
}

// generate reduces d, builds the payload and asks the service for a message.
// Warnings go to p; prompts and the reply go to tr.
func generate(ctx context.Context, g Generation, d string, payload func(string) string, p *ui.Printer, tr *trace.Tracer, log *zap.Logger) (generated, error) {
	lines := diff.LineCount(d)
	body, reduced := diff.Reduce(d, g.MaxDiffLines)
	if reduced {
		p.Warn("Using compact mode for large diff.")
	}
	user := payload(body)

	if w := tokens.WarnIfOver(tokens.EstimateMessages(g.System, user), g.MaxTokens, g.ContextLimit, g.WarnThreshold); w != "" {
		p.Warn("Warning: " + w)
	}
	tr.Printf("model=%s lines=%d compacted=%t\n", g.Model, lines, reduced)
	tr.Block("System prompt", g.System)
	tr.Block("User prompt", user)

	start := time.Now()
	msg, err := commitmsg.Suggest(ctx, g.Client, g.System, user, commitmsg.Options{
		Model:       g.Model,
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	})
	log.Debug("commit message generation",
		zap.String("model", g.Model),
		zap.Int("lines", lines),
		zap.Bool("compacted", reduced),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return generated{}, err
	}
	tr.Block("Response", msg)
	return generated{Message: msg, Reduced: reduced, Lines: lines}, nil
}

func noChanges(err error) error {
	if err == nil {
		return ErrNoChanges
	}
	return fmt.Errorf("%w: %v", ErrNoChanges, err)
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
