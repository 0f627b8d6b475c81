// Package git (log.go) renders the filtered commit log used for release notes.
package git

import (
	"errors"
	"fmt"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// ErrLogFailed is returned when git log exits non-zero (bad range, unborn HEAD).
var ErrLogFailed = errors.New("git log failed")

// LogFormat is the decorated one-line format: hash, refs, subject, relative
// date, absolute date and author.
const LogFormat = "%C(red)%h%C(reset)%C(yellow)%d%C(reset) %s %C(green)(%cr) %C(magenta)(%cd) %C(bold blue)<%an>%C(reset)"

// LogQuery holds the optional log filters. Empty fields are not applied.
type LogQuery struct {
	Since  string
	Range  string
	Author string
	Grep   string
}

// Args returns the git arguments for q, starting with "log".
func (q LogQuery) Args() []string {
	args := []string{"log", "--color", "--date=local", "--pretty=format:" + LogFormat, "--graph"}
	if q.Since != "" {
		args = append(args, "--since", q.Since)
	}
	if q.Range != "" {
		args = append(args, q.Range)
	}
	if q.Author != "" {
		args = append(args, "--author", q.Author)
	}
	if q.Grep != "" {
		args = append(args, "--grep", q.Grep)
	}
	return args
}

// Log runs the query in repoRoot and returns the rendered log.
func Log(repoRoot string, q LogQuery) (string, error) {
	out, err := output(repoRoot, q.Args()...)
	if err != nil {
		return "", erruser.New("Error occurred while running git log.", fmt.Errorf("%w: %v", ErrLogFailed, err))
	}
	return out, nil
}
