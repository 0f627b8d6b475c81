// Package app resolves the repository, configuration, logger and completion
// client shared by the git-ai commands.
package app

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/config"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/git"
	"github.com/sinataghva/git-ai/cli/internal/llm"
	"github.com/sinataghva/git-ai/cli/internal/logging"
	"github.com/sinataghva/git-ai/cli/internal/run"
	"github.com/sinataghva/git-ai/cli/internal/trace"
	"github.com/sinataghva/git-ai/cli/internal/ui"
)

// Options configures Setup.
type Options struct {
	// Dir is the working directory; the repository is resolved from it.
	Dir       string
	Overrides *config.Overrides
	// Trace sends prompts and responses to Stderr.
	Trace  bool
	Stdout io.Writer
	Stderr io.Writer
	// Env replaces os.Environ for config loading when non-nil.
	Env []string
	// GlobalConfigPath replaces the XDG config file path when set.
	GlobalConfigPath string
}

// Env is a resolved invocation environment.
type Env struct {
	Root    string
	Config  *config.Config
	Log     *zap.Logger
	Trace   *trace.Tracer
	Printer *ui.Printer
	Git     git.Repo
}

// Setup resolves the repository root from opts.Dir, loads configuration and
// builds the logger and printer.
func Setup(ctx context.Context, opts Options) (*Env, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	root, err := git.RepoRoot(opts.Dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(ctx, config.LoadOptions{
		RepoRoot:         root,
		GlobalConfigPath: opts.GlobalConfigPath,
		Env:              opts.Env,
		Overrides:        opts.Overrides,
	})
	if err != nil {
		return nil, err
	}
	printer := ui.NewPrinter(stdout, stderr)
	log, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: stderr,
		Color:  isTerminal(stderr),
	})
	if err != nil {
		return nil, err
	}
	var tw io.Writer
	if opts.Trace {
		tw = stderr
	}
	log.Debug("configuration loaded",
		zap.String("repo", root),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.EffectiveBaseURL()),
	)
	return &Env{
		Root:    root,
		Config:  cfg,
		Log:     log,
		Trace:   trace.New(tw),
		Printer: printer,
		Git:     git.Repo{Root: root, Stdout: stdout, Stderr: stderr},
	}, nil
}

// CheckAPIKey fails with run.ErrMissingAPIKey when the provider needs a key
// and none is configured.
func (e *Env) CheckAPIKey() error {
	return run.CheckAPIKey(e.Config.RequiresAPIKey(), e.Config.APIKey)
}

// Client builds the completion client for the configured provider.
func (e *Env) Client() (llm.Completer, error) {
	if err := e.CheckAPIKey(); err != nil {
		return nil, err
	}
	return llm.New(llm.Options{
		Provider: e.Config.Provider,
		BaseURL:  e.Config.EffectiveBaseURL(),
		APIKey:   e.Config.APIKey,
		Timeout:  e.Config.Timeout,
	})
}

// Generation returns generation settings from the configuration. maxTokens
// is the per-command response budget.
func (e *Env) Generation(client llm.Completer, system string, maxTokens int) run.Generation {
	return run.Generation{
		Client:        client,
		Model:         e.Config.Model,
		MaxTokens:     maxTokens,
		Temperature:   llm.Float(e.Config.Temperature),
		System:        system,
		MaxDiffLines:  e.Config.MaxDiffLines,
		ContextLimit:  e.Config.ContextLimit,
		WarnThreshold: e.Config.WarnThreshold,
	}
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Log == nil {
		return
	}
	_ = e.Log.Sync()
}

// Getwd returns the current directory as a user error on failure.
func Getwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", erruser.New("Could not determine current directory.", err)
	}
	return dir, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsInteractive(f)
}
