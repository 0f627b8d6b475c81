package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// ErrEditAborted is returned when the editor exits non-zero or leaves the
// message empty or unchanged.
var ErrEditAborted = errors.New("edit aborted")

// DefaultEditor is used when no editor is configured.
const DefaultEditor = "nano"

// Editor opens a message in an external editor. Command may carry flags
// (e.g. "code --wait"); it is run through sh with the file path appended.
type Editor struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	// TempDir holds the message file; empty means os.TempDir().
	TempDir string
}

// Edit writes message to a temporary file, runs the editor on it and returns
// the trimmed result. The file is removed on every path.
func (e *Editor) Edit(ctx context.Context, message string) (string, error) {
	f, err := os.CreateTemp(e.TempDir, "git-ai-commit-*.txt")
	if err != nil {
		return "", erruser.New("Could not create a temporary file for editing.", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(message + "\n"); err != nil {
		f.Close()
		return "", erruser.New("Could not write the message for editing.", err)
	}
	if err := f.Close(); err != nil {
		return "", erruser.New("Could not write the message for editing.", err)
	}

	command := strings.TrimSpace(e.Command)
	if command == "" {
		command = DefaultEditor
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", command+` "$1"`, "sh", path)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: editor %q: %v", ErrEditAborted, command, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", erruser.New("Could not read the edited message.", err)
	}
	edited := strings.TrimSpace(string(data))
	if edited == "" {
		return "", fmt.Errorf("%w: empty message", ErrEditAborted)
	}
	if edited == strings.TrimSpace(message) {
		return "", fmt.Errorf("%w: message unchanged", ErrEditAborted)
	}
	return edited, nil
}
