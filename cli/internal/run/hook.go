package run

import (
	"context"

	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/hook"
	"github.com/sinataghva/git-ai/cli/internal/prompt"
	"github.com/sinataghva/git-ai/cli/internal/trace"
	"github.com/sinataghva/git-ai/cli/internal/ui"
)

// DiffSource supplies the staged diff.
type DiffSource interface {
	StagedDiff() (string, error)
}

// HookOptions configures Hook.
type HookOptions struct {
	Input      hook.Input
	Git        DiffSource
	Generation Generation
	Printer    *ui.Printer
	Trace      *trace.Tracer
	Log        *zap.Logger
	Repo       string
}

// Hook fills the commit message buffer when git gave no source and the
// buffer holds no user text. It reports whether the buffer was written.
// An empty staged diff leaves the buffer alone and returns ErrNoChanges.
func Hook(ctx context.Context, opts HookOptions) (bool, error) {
	log := nopIfNil(opts.Log).With(zap.String("repo", opts.Repo))
	wrote, err := hook.Prepare(ctx, opts.Input, func(ctx context.Context) (string, error) {
		d, err := opts.Git.StagedDiff()
		if err != nil || d == "" {
			return "", noChanges(err)
		}
		opts.Trace.Block("Diff", d)
		gen, err := generate(ctx, opts.Generation, d, prompt.HookUser, opts.Printer, opts.Trace, log)
		if err != nil {
			return "", err
		}
		return gen.Message, nil
	})
	if err != nil {
		return false, err
	}
	log.Debug("prepare-commit-msg", zap.Bool("wrote", wrote), zap.String("source", opts.Input.Source))
	return wrote, nil
}
