package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type recorder struct {
	mu     sync.Mutex
	bodies []map[string]any
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bodies)
}

func chatServer(t *testing.T, reply string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, body)
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func repoWithCommits(t *testing.T, subjects ...string) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "ann@git-ai.local")
	runGit(t, dir, "config", "user.name", "Ann")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	for i, s := range subjects {
		name := filepath.Join(dir, "f"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte(s+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		runGit(t, dir, "add", ".")
		runGit(t, dir, "commit", "-q", "-m", s)
	}
	return dir
}

func useEnv(t *testing.T, dir, baseURL string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GITAI_BASE_URL", baseURL)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GITAI_PROVIDER", "")
	t.Setenv("GITAI_MODEL", "")
	t.Setenv("GITAI_LOG_FILE", "")
	t.Setenv("GITAI_LOG_LEVEL", "")

	var out, errOut bytes.Buffer
	savedOut, savedErr, savedWd := stdout, stderr, workingDir
	t.Cleanup(func() { stdout, stderr, workingDir = savedOut, savedErr, savedWd })
	stdout, stderr = &out, &errOut
	workingDir = func() (string, error) { return dir, nil }
	return &out, &errOut
}

func TestRunCLI_help(t *testing.T) {
	useEnv(t, t.TempDir(), "http://127.0.0.1:1")
	if got := runCLI([]string{"--help"}); got != 0 {
		t.Errorf("runCLI(--help) = %d, want 0", got)
	}
	if got := runCLI([]string{"extra"}); got != 1 {
		t.Errorf("runCLI(extra) = %d, want 1", got)
	}
}

func TestRunCLI_printsSummary(t *testing.T) {
	dir := repoWithCommits(t, "feat: first", "fix: second")
	srv, rec := chatServer(t, "  What's changed by Ann:\n- Two things.\n")
	out, errOut := useEnv(t, dir, srv.URL)

	if got := runCLI([]string{"--author", "Ann", "--model", "gpt-4o-mini"}); got != 0 {
		t.Fatalf("runCLI = %d; stderr: %s", got, errOut.String())
	}
	want := "Release Notes Summary:\nWhat's changed by Ann:\n- Two things.\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
	if rec.count() != 1 {
		t.Fatalf("requests = %d, want 1", rec.count())
	}
	body := rec.bodies[0]
	if body["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", body["model"])
	}
	if _, ok := body["max_tokens"]; ok {
		t.Error("max_tokens sent for release notes")
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", body["messages"])
	}
	user, _ := msgs[1].(map[string]any)["content"].(string)
	for _, s := range []string{"feat: first", "fix: second", "Start the summary with 'What's changed by Ann:'", "non-technical"} {
		if !strings.Contains(user, s) {
			t.Errorf("user prompt missing %q: %q", s, user)
		}
	}
}

func TestRunCLI_technical(t *testing.T) {
	dir := repoWithCommits(t, "refactor: split parser")
	srv, rec := chatServer(t, "What's changed (technical):\n- Split parser.")
	_, errOut := useEnv(t, dir, srv.URL)

	if got := runCLI([]string{"--technical"}); got != 0 {
		t.Fatalf("runCLI = %d; stderr: %s", got, errOut.String())
	}
	msgs, _ := rec.bodies[0]["messages"].([]any)
	user, _ := msgs[1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "generate a technical summary") || !strings.Contains(user, "'What's changed (technical):'") {
		t.Errorf("user prompt = %q", user)
	}
}

func TestRunCLI_emptyLogExitsZero(t *testing.T) {
	dir := repoWithCommits(t, "feat: only")
	srv, rec := chatServer(t, "x")
	out, errOut := useEnv(t, dir, srv.URL)

	if got := runCLI([]string{"--author", "nobody-at-all"}); got != 0 {
		t.Fatalf("runCLI = %d, want 0", got)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "No commits found for the given filters.") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if rec.count() != 0 {
		t.Errorf("service called %d times", rec.count())
	}
}

func TestRunCLI_badRangeExitsZero(t *testing.T) {
	dir := repoWithCommits(t, "feat: only")
	srv, rec := chatServer(t, "x")
	out, errOut := useEnv(t, dir, srv.URL)

	if got := runCLI([]string{"--range", "nope..alsonope"}); got != 0 {
		t.Fatalf("runCLI = %d, want 0", got)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "Error occurred while running git log.") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if rec.count() != 0 {
		t.Errorf("service called %d times", rec.count())
	}
}
