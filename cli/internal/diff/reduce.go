// Package diff compacts staged diffs before they are sent to the completion
// service. A diff at or above the line threshold is replaced by a summary of
// the changed file paths; smaller diffs pass through untouched.
package diff

import (
	"fmt"
	"sort"
	"strings"
)

// Threshold is the default newline count at which a diff is summarized.
// The comparison is inclusive: a diff of exactly Threshold lines is summarized.
const Threshold = 1000

const fileHeader = "diff --git"

// LineCount returns the number of newline characters in d.
func LineCount(d string) int {
	return strings.Count(d, "\n")
}

// lines splits d into lines; a trailing newline does not produce an empty last line.
func lines(d string) []string {
	if d == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d, "\n"), "\n")
}

// ChangedFiles returns the distinct paths named by "diff --git a/<path> b/<path>"
// headers, sorted ascending. The "a/" side is used. Headers with fewer than
// three space-separated tokens are skipped.
func ChangedFiles(d string) []string {
	seen := make(map[string]struct{})
	for _, line := range lines(d) {
		if !strings.HasPrefix(line, fileHeader) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 || len(parts[2]) <= 2 {
			continue
		}
		seen[parts[2][2:]] = struct{}{}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Summary renders the compact form of d: a header with the original line
// count followed by one "- path" bullet per changed file.
func Summary(d string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<Large diff detected (%d lines)>\nFile changes:", len(lines(d)))
	for _, f := range ChangedFiles(d) {
		b.WriteString("\n- ")
		b.WriteString(f)
	}
	return b.String()
}

// Reduce returns d unchanged when it has fewer than threshold lines, and
// Summary(d) otherwise. The bool reports whether the diff was summarized.
// A threshold <= 0 means Threshold.
func Reduce(d string, threshold int) (string, bool) {
	if threshold <= 0 {
		threshold = Threshold
	}
	if LineCount(d) < threshold {
		return d, false
	}
	return Summary(d), true
}
