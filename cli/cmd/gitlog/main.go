package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sinataghva/git-ai/cli/internal/app"
	"github.com/sinataghva/git-ai/cli/internal/config"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/git"
	"github.com/sinataghva/git-ai/cli/internal/releasenotes"
	"github.com/sinataghva/git-ai/cli/internal/run"
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
		Use:     "gitlog",
		Short:   "Generate release notes from the git log",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE:    runNotes,
	}
	rootCmd.Flags().String("since-date", "", "Fetch commits since this date (YYYY-MM-DD)")
	rootCmd.Flags().String("range", "", "Fetch commits in this range (start_commit..end_commit)")
	rootCmd.Flags().String("author", "", "Fetch commits by this author")
	rootCmd.Flags().String("grep", "", "Fetch commits with this grep pattern")
	rootCmd.Flags().Bool("technical", false, "Generate a technical summary")
	rootCmd.Flags().String("model", "", "Model to use (overrides config and env)")
	rootCmd.Flags().Bool("trace", false, "Print internal steps to stderr (log, prompts, model output)")
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

func filtersFromFlags(cmd *cobra.Command) releasenotes.Filters {
	var f releasenotes.Filters
	f.Since, _ = cmd.Flags().GetString("since-date")
	f.Range, _ = cmd.Flags().GetString("range")
	f.Author, _ = cmd.Flags().GetString("author")
	f.Grep, _ = cmd.Flags().GetString("grep")
	f.Technical, _ = cmd.Flags().GetBool("technical")
	return f
}

func runNotes(cmd *cobra.Command, _ []string) error {
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

	cwd, err := workingDir()
	if err != nil {
		return err
	}
	env, err := app.Setup(ctx, app.Options{
		Dir:       cwd,
		Overrides: overrides,
		Trace:     traceOn,
		Stdout:    stdout,
		Stderr:    stderr,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	client, err := env.Client()
	if err != nil {
		return err
	}
	summary, err := run.ReleaseNotes(ctx, run.NotesOptions{
		Git:           env.Git,
		Client:        client,
		Filters:       filtersFromFlags(cmd),
		Model:         env.Config.Model,
		ContextLimit:  env.Config.ContextLimit,
		WarnThreshold: env.Config.WarnThreshold,
		Printer:       env.Printer,
		Trace:         env.Trace,
		Log:           env.Log,
		Repo:          env.Root,
	})
	// No log means nothing to summarize; report it and exit cleanly.
	if errors.Is(err, releasenotes.ErrEmptyLog) || errors.Is(err, git.ErrLogFailed) {
		env.Printer.Error(err.Error())
		if d := erruser.Details(err); d != "" {
			env.Printer.Error("Details: " + d)
		}
		return nil
	}
	if err != nil {
		return err
	}
	env.Printer.Header("Release Notes Summary:")
	env.Printer.Text(summary)
	return nil
}
