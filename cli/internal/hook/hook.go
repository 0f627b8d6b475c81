// Package hook fills git's commit message buffer from the prepare-commit-msg
// hook and installs that hook into a repository.
package hook

import (
	"context"
	"os"
	"strings"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

const commentPrefix = "#"

// Input is what git passes to prepare-commit-msg.
type Input struct {
	// Path is the commit message file.
	Path string
	// Source is empty for a plain "git commit"; otherwise message, template,
	// merge, squash or commit.
	Source string
}

// HasUserContent reports whether buf holds any line that is neither blank
// nor a comment.
func HasUserContent(buf string) bool {
	for _, line := range strings.Split(buf, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		return true
	}
	return false
}

// Prepare writes the message produced by gen into in.Path when git supplied
// no source and the buffer has no user content. It returns whether the file
// was written. The message is followed by one blank line and then any
// comment lines git had already placed in the buffer.
func Prepare(ctx context.Context, in Input, gen func(context.Context) (string, error)) (bool, error) {
	if in.Source != "" {
		return false, nil
	}
	info, err := os.Stat(in.Path)
	if err != nil {
		return false, erruser.New("Could not read the commit message file.", err)
	}
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return false, erruser.New("Could not read the commit message file.", err)
	}
	buf := string(data)
	if HasUserContent(buf) {
		return false, nil
	}

	msg, err := gen(ctx)
	if err != nil {
		return false, err
	}
	out := msg + "\n\n" + footer(buf)
	if err := os.WriteFile(in.Path, []byte(out), info.Mode().Perm()); err != nil {
		return false, erruser.New("Could not write the commit message file.", err)
	}
	return true, nil
}

// footer returns buf without its leading blank lines, or "" when nothing remains.
func footer(buf string) string {
	lines := strings.Split(buf, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	rest := strings.Join(lines[i:], "\n")
	if rest == "" {
		return ""
	}
	if !strings.HasSuffix(rest, "\n") {
		rest += "\n"
	}
	return rest
}
