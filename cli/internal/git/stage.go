// Package git (stage.go) stages, diffs, unstages and commits the working tree.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// ErrCommitFailed is wrapped when "git commit" exits non-zero.
var ErrCommitFailed = errors.New("git commit failed")

// StageAll runs "git add --all" in repoRoot.
func StageAll(repoRoot string) error {
	if _, err := output(repoRoot, "add", "--all"); err != nil {
		return erruser.New("Failed to stage changes.", err)
	}
	return nil
}

// StagedDiff returns the output of "git diff --cached". On failure the
// returned text is empty and err describes the git error.
func StagedDiff(repoRoot string) (string, error) {
	out, err := output(repoRoot, "diff", "--cached")
	if err != nil {
		return "", err
	}
	return out, nil
}

// Unstage removes everything from the index without touching the work tree.
// Works on a repository with no commits yet.
func Unstage(repoRoot string) error {
	if _, err := output(repoRoot, "reset", "-q"); err != nil {
		return erruser.New("Failed to unstage changes.", err)
	}
	return nil
}

// Commit runs "git commit -m message" in repoRoot. Git's own output (hooks,
// signing prompts, summary line) is streamed to stdout and stderr.
func Commit(repoRoot, message string, stdout, stderr io.Writer) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = repoRoot
	cmd.Env = gitEnv()
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return erruser.New("Git commit failed", fmt.Errorf("%w: %v", ErrCommitFailed, err))
	}
	return nil
}

// output runs git with args in dir and returns stdout. The error carries
// git's stderr.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = gitEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return stdout.String(), nil
}
