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
	"github.com/sinataghva/git-ai/cli/internal/confirm"
	"github.com/sinataghva/git-ai/cli/internal/erruser"
	"github.com/sinataghva/git-ai/cli/internal/git"
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

// pipedStdinNotice is shown when the answer is read from a non-terminal stdin.
const pipedStdinNotice = "Standard input is not a terminal; an empty or missing answer aborts the commit."

// Standard streams and working directory. Tests may replace them.
var (
	stdin      io.Reader = os.Stdin
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
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newInstallHookCmd())
	rootCmd.AddCommand(newVersionCmd())
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

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gitcommit",
		Short:   "Stage all changes and commit with an AI-generated message",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE:    runCommit,
	}
	cmd.Flags().BoolP("yes", "y", false, "Commit the generated message without asking")
	cmd.Flags().Bool("technical", false, "Ask for a technical commit message")
	cmd.Flags().String("model", "", "Model to use (overrides config and env)")
	cmd.Flags().Bool("trace", false, "Print internal steps to stderr (diff, prompts, model output)")
	return cmd
}

func overridesFromFlags(cmd *cobra.Command) *config.Overrides {
	if !cmd.Flags().Changed("model") {
		return nil
	}
	model, _ := cmd.Flags().GetString("model")
	return &config.Overrides{Model: &model}
}

func runCommit(cmd *cobra.Command, _ []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	technical, _ := cmd.Flags().GetBool("technical")
	traceOn, _ := cmd.Flags().GetBool("trace")
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
		Overrides: overridesFromFlags(cmd),
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
	system, err := prompt.CommitSystemPrompt(env.Root, prompt.KindInteractive, technical)
	if err != nil {
		return err
	}
	if f, ok := stdin.(*os.File); !yes && (!ok || !ui.IsInteractive(f)) {
		env.Printer.Warn(pipedStdinNotice)
	}

	loop := &confirm.Loop{
		In:  stdin,
		Out: stdout,
		Editor: &confirm.Editor{
			Command: env.Config.Editor,
			Stdin:   stdin,
			Stdout:  stdout,
			Stderr:  stderr,
		},
		SkipPrompt: yes,
	}
	_, err = run.Commit(ctx, run.CommitOptions{
		Git:        env.Git,
		Generation: env.Generation(client, system, env.Config.MaxTokens),
		Confirm:    loop,
		Printer:    env.Printer,
		Trace:      env.Trace,
		Log:        env.Log,
		Repo:       env.Root,
	})
	return err
}

func newInstallHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install the prepare-commit-msg hook that runs gitcommit-hook",
		Args:  cobra.NoArgs,
		RunE:  runInstallHook,
	}
	cmd.Flags().Bool("force", false, "Replace an existing prepare-commit-msg hook")
	cmd.Flags().String("command", hook.DefaultCommand, "Command the hook executes")
	return cmd
}

func runInstallHook(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	command, _ := cmd.Flags().GetString("command")
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	root, err := git.RepoRoot(cwd)
	if err != nil {
		return err
	}
	dir, err := git.HooksDir(root)
	if err != nil {
		return err
	}
	path, err := hook.Install(dir, command, force)
	if err != nil {
		return err
	}
	ui.NewPrinter(stdout, stderr).Success("Installed " + hook.HookName + " hook at " + path)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(stdout, "gitcommit "+version.String())
		},
	}
}
