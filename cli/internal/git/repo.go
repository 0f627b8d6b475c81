// Package git (repo.go) provides repository discovery and the environment used
// for every git subprocess.
package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// ErrNotRepository is wrapped by RepoRoot when dir is outside a work tree.
var ErrNotRepository = errors.New("not a git repository")

// RepoRoot returns the absolute path of the git repository root containing dir.
// Runs "git rev-parse --show-toplevel" with Dir=dir. Returns error if dir is
// not inside a git repository.
func RepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	cmd.Env = gitEnv()
	out, err := cmd.Output()
	if err != nil {
		return "", erruser.New("This directory is not inside a Git repository.", fmt.Errorf("%w: %v", ErrNotRepository, err))
	}
	root := strings.TrimSpace(string(out))
	return filepath.Abs(root)
}

// HooksDir returns the absolute hooks directory for the repository at
// repoRoot, honouring core.hooksPath. Runs "git rev-parse --git-path hooks".
func HooksDir(repoRoot string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--git-path", "hooks")
	cmd.Dir = repoRoot
	cmd.Env = gitEnv()
	out, err := cmd.Output()
	if err != nil {
		return "", erruser.New("Could not locate the hooks directory.", err)
	}
	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoRoot, dir)
	}
	return filepath.Clean(dir), nil
}

// gitEnv is the caller's environment with prompts and pagers disabled. The
// caller's GIT_* variables are kept so a hook sees the index git is using.
func gitEnv() []string {
	return append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_PAGER=cat",
	)
}
