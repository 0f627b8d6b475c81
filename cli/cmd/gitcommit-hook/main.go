// Command gitcommit-hook is a prepare-commit-msg hook that fills an empty
// commit message buffer with an AI-generated message.
//
// Install it with "gitcommit install-hook" or by linking it as
// .git/hooks/prepare-commit-msg. Git calls it as:
//
//	gitcommit-hook <message-file> [<source> [<sha>]]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sinataghva/git-ai/cli/internal/app"
	"github.com/sinataghva/git-ai/cli/internal/config"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/hook"
	"github.com/sinataghva/git-ai/cli/internal/prompt"
	"github.com/sinataghva/git-ai/cli/internal/run"
	"github.com/sinataghva/git-ai/cli/internal/ui"
	"github.com/sinataghva/git-ai/cli/internal/version"
)

// errExit is an error that carries an exit code for the CLI. Use errors.As to detect it.
type errExit int

func (e errExit) Error() string {
	return "exit " + strconv.Itoa(int(e))
}

// Tests may replace these.
var (
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
	workingDir           = app.Getwd
)

func main() {
	os.Exit(Run())
}

// Run is the entry point for the CLI. It is exported for testing.
func Run() int {
	return runCLI(os.Args[1:])
}

func runCLI(args []string) int {
	rootCmd := &cobra.Command{
		Use:     "gitcommit-hook <message-file> [source] [sha]",
		Short:   "prepare-commit-msg hook that writes an AI-generated commit message",
		Version: version.String(),
		Args:    cobra.RangeArgs(1, 3),
		RunE:    runHook,
	}
	rootCmd.Flags().Bool("technical", false, "Ask for a technical commit message")
	rootCmd.Flags().String("model", "", "Model to use (overrides config and env)")
	rootCmd.Flags().Bool("trace", false, "Print internal steps to stderr (diff, prompts, model output)")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var exitErr errExit
		if errors.As(err, &exitErr) {
			return int(exitErr)
		}
		fmt.Fprintln(stderr, err)
		if d := erruser.Details(err); d != "" {
			fmt.Fprintf(stderr, "Details: %v\n", d)
		}
		return 1
	}
	return 0
}

func runHook(cmd *cobra.Command, args []string) error {
	in := hook.Input{Path: args[0]}
	if len(args) > 1 {
		in.Source = args[1]
	}
	technical, _ := cmd.Flags().GetBool("technical")
	traceOn, _ := cmd.Flags().GetBool("trace")
	var overrides *config.Overrides
	if cmd.Flags().Changed("model") {
		model, _ := cmd.Flags().GetString("model")
		overrides = &config.Overrides{Model: &model}
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := setup(ctx, overrides, traceOn)
	if err != nil {
		// Without a configuration the credential check falls back to the
		// process environment so it still runs first.
		if kerr := envAPIKeyCheck(); kerr != nil {
			fmt.Fprintln(stderr, kerr)
			return errExit(1)
		}
		return skip(ui.NewPrinter(stdout, stderr), nil, err)
	}
	defer env.Close()

	// The credential check runs before the message file is touched.
	if err := env.CheckAPIKey(); err != nil {
		fmt.Fprintln(stderr, err)
		return errExit(1)
	}
	if in.Source != "" {
		env.Log.Debug("message source given; leaving buffer", zap.String("source", in.Source))
		return nil
	}

	client, err := env.Client()
	if err != nil {
		return skip(env.Printer, env.Log, err)
	}
	system, err := prompt.CommitSystemPrompt(env.Root, prompt.KindHook, technical)
	if err != nil {
		return skip(env.Printer, env.Log, err)
	}
	_, err = run.Hook(ctx, run.HookOptions{
		Input:      in,
		Git:        env.Git,
		Generation: env.Generation(client, system, env.Config.HookMaxTokens),
		Printer:    env.Printer,
		Trace:      env.Trace,
		Log:        env.Log,
		Repo:       env.Root,
	})
	if err != nil {
		return skip(env.Printer, env.Log, err)
	}
	return nil
}

func setup(ctx context.Context, overrides *config.Overrides, traceOn bool) (*app.Env, error) {
	cwd, err := workingDir()
	if err != nil {
		return nil, err
	}
	return app.Setup(ctx, app.Options{
		Dir:       cwd,
		Overrides: overrides,
		Trace:     traceOn,
		Stdout:    stdout,
		Stderr:    stderr,
	})
}

// envAPIKeyCheck is the credential check when configuration could not be loaded.
func envAPIKeyCheck() error {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("GITAI_PROVIDER")))
	return run.CheckAPIKey(provider != config.ProviderOllama, os.Getenv("OPENAI_API_KEY"))
}

// skip reports err as a warning and returns nil: a hook failure must not
// block the commit.
func skip(p *ui.Printer, log *zap.Logger, err error) error {
	p.Warn("Warning: could not generate a commit message: " + err.Error())
	if d := erruser.Details(err); d != "" {
		p.Warn("Details: " + d)
	}
	if log != nil {
		log.Debug("commit message generation skipped", zap.Error(err))
	}
	return nil
}
