// Package git wraps the git command line. Every call is a subprocess run in
// the repository root; nothing here parses diffs.
package git

import "io"

// Repo binds the package functions to one repository root.
type Repo struct {
	Root string
	// Stdout and Stderr receive git commit's own output.
	Stdout io.Writer
	Stderr io.Writer
}

func (r Repo) StageAll() error                { return StageAll(r.Root) }
func (r Repo) StagedDiff() (string, error)    { return StagedDiff(r.Root) }
func (r Repo) Unstage() error                 { return Unstage(r.Root) }
func (r Repo) Commit(message string) error    { return Commit(r.Root, message, r.Stdout, r.Stderr) }
func (r Repo) Log(q LogQuery) (string, error) { return Log(r.Root, q) }
