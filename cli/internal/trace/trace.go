// Package trace writes the internal steps of a run (diff, prompts, model
// output) to stderr when --trace is set. A Tracer with a nil writer is a no-op.
package trace

import (
	"fmt"
	"io"
	"strings"
)

const prefix = "[git-ai:trace]"

// Tracer writes sectioned trace output. When the underlying writer is nil, all methods no-op.
type Tracer struct {
	w io.Writer
}

// New returns a Tracer that writes to w. If w is nil, all methods no-op.
func New(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Enabled returns true if the tracer has a non-nil writer.
func (t *Tracer) Enabled() bool {
	return t != nil && t.w != nil
}

// Section writes a section header: "\n[git-ai:trace] === name ===\n"
func (t *Tracer) Section(name string) {
	if !t.Enabled() {
		return
	}
	fmt.Fprintf(t.w, "\n%s === %s ===\n", prefix, name)
}

// Printf writes to the trace writer when enabled.
func (t *Tracer) Printf(format string, args ...interface{}) {
	if !t.Enabled() {
		return
	}
	fmt.Fprintf(t.w, format, args...)
}

// Block writes a section header followed by body, newline-terminated.
func (t *Tracer) Block(name, body string) {
	if !t.Enabled() {
		return
	}
	t.Section(name)
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	io.WriteString(t.w, body)
}
