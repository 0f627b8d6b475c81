package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := initEmptyRepo(t)
	writeFile(t, dir, "f1.txt", "a\n")
	run(t, dir, "git", "add", "f1.txt")
	run(t, dir, "git", "commit", "-m", "c1")
	writeFile(t, dir, "f2.txt", "b\n")
	run(t, dir, "git", "add", "f2.txt")
	run(t, dir, "git", "commit", "-m", "c2")
	return dir
}

func initEmptyRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run(t, dir, "git", "init")
	run(t, dir, "git", "config", "user.email", "test@git-ai.local")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "config", "commit.gpgsign", "false")
	return dir
}

func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", name, args, err, out)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func runOut(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("%s %v: %v", name, args, err)
	}
	return strings.TrimSpace(string(out))
}

// canonical resolves symlinks so temp dirs compare equal to git's output (macOS /private).
func canonical(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.EvalSymlinks(p)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

func TestRepoRoot_fromRoot(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	got, err := RepoRoot(repo)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	if canonical(t, got) != canonical(t, repo) {
		t.Errorf("RepoRoot(%q) = %q", repo, got)
	}
}

func TestRepoRoot_fromSubdir(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	subdir := filepath.Join(repo, "sub", "dir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	got, err := RepoRoot(subdir)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	if canonical(t, got) != canonical(t, repo) {
		t.Errorf("RepoRoot(subdir) = %q, want %q", got, repo)
	}
}

func TestRepoRoot_notARepo(t *testing.T) {
	t.Parallel()
	_, err := RepoRoot(t.TempDir())
	if err == nil {
		t.Fatal("RepoRoot(non-repo): expected error")
	}
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("error %v should wrap ErrNotRepository", err)
	}
	if err.Error() != "This directory is not inside a Git repository." {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestHooksDir(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	got, err := HooksDir(repo)
	if err != nil {
		t.Fatalf("HooksDir: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("HooksDir = %q, want absolute", got)
	}
	if want := filepath.Join(repo, ".git", "hooks"); got != want {
		t.Errorf("HooksDir = %q, want %q", got, want)
	}
}

func TestHooksDir_coreHooksPath(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	run(t, repo, "git", "config", "core.hooksPath", "githooks")
	got, err := HooksDir(repo)
	if err != nil {
		t.Fatalf("HooksDir: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "githooks" {
		t.Errorf("HooksDir = %q, want absolute path ending in githooks", got)
	}
}
