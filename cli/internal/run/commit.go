package run

import (
	"context"

	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/confirm"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/prompt"
	"github.com/sinataghva/git-ai/cli/internal/trace"
	"github.com/sinataghva/git-ai/cli/internal/ui"
)

// Git is the repository surface used by the commit flow.
type Git interface {
	StageAll() error
	StagedDiff() (string, error)
	Unstage() error
	Commit(message string) error
}

// Confirmer resolves a proposed message into an outcome.
type Confirmer interface {
	Resolve(ctx context.Context, message string) (confirm.Outcome, error)
}

// CommitOptions configures Commit.
type CommitOptions struct {
	Git        Git
	Generation Generation
	Confirm    Confirmer
	Printer    *ui.Printer
	Trace      *trace.Tracer
	Log        *zap.Logger
	// Repo is logged with each entry.
	Repo string
}

// CommitResult reports what Commit did. Aborted is set when the user
// declined or the edit was rejected; the index was unstaged in that case.
type CommitResult struct {
	Committed bool
	Aborted   bool
	Message   string
	Edited    bool
	Reduced   bool
}

// Commit stages everything, generates a message, lets the user confirm or
// edit it and commits. A user abort unstages and returns a nil error.
func Commit(ctx context.Context, opts CommitOptions) (*CommitResult, error) {
	log := nopIfNil(opts.Log).With(zap.String("repo", opts.Repo))
	p := opts.Printer

	if err := opts.Git.StageAll(); err != nil {
		return nil, err
	}
	d, err := opts.Git.StagedDiff()
	if err != nil || d == "" {
		if err != nil {
			log.Warn("staged diff failed", zap.Error(err))
		}
		return nil, erruser.New("No changes staged or unable to get diff.", noChanges(err))
	}
	opts.Trace.Block("Diff", d)

	gen, err := generate(ctx, opts.Generation, d, prompt.CommitUser, p, opts.Trace, log)
	if err != nil {
		return nil, err
	}
	res := &CommitResult{Message: gen.Message, Reduced: gen.Reduced}

	p.Text("")
	p.Header("AI-generated commit message:")
	p.Text(gen.Message)
	p.Text("")

	out, err := opts.Confirm.Resolve(ctx, gen.Message)
	if err != nil {
		unstage(opts.Git, log)
		return nil, err
	}
	if !out.Accepted {
		if out.Choice == confirm.Edit {
			p.Warn("Edit aborted. Unstaging changes.")
		} else {
			p.Warn("Aborting and unstaging.")
		}
		unstage(opts.Git, log)
		log.Info("commit aborted", zap.String("choice", out.Choice.String()))
		res.Aborted = true
		return res, nil
	}
	if out.Edited {
		res.Edited = true
		p.Info("Edited message changes:")
		p.Text(EditDiff(p, gen.Message, out.Message))
	}
	res.Message = out.Message

	if err := opts.Git.Commit(out.Message); err != nil {
		return res, err
	}
	res.Committed = true
	p.Success("Commit successful.")
	log.Info("commit created", zap.Bool("edited", res.Edited), zap.Bool("compacted", res.Reduced), zap.Int("lines", gen.Lines))
	return res, nil
}

func unstage(g Git, log *zap.Logger) {
	if err := g.Unstage(); err != nil {
		log.Warn("unstage failed", zap.Error(err))
	}
}
