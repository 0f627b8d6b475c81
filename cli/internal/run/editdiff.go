package run

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sinataghva/git-ai/cli/internal/ui"
)

// EditDiff renders the character-level changes from before to after:
// insertions as {+text+} and deletions as [-text-].
func EditDiff(p *ui.Printer, before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(p.Inserted("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffDelete:
			b.WriteString(p.Deleted("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
