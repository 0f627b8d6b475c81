package confirm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEditor creates an executable shell script acting as the editor.
func writeEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestEditor_unchangedAborts(t *testing.T) {
	t.Parallel()
	ed := &Editor{Command: writeEditor(t, "exit 0"), TempDir: t.TempDir()}
	_, err := ed.Edit(context.Background(), "feat: x")
	assert.ErrorIs(t, err, ErrEditAborted)
}

func TestEditor_whitespaceOnlyChangeAborts(t *testing.T) {
	t.Parallel()
	ed := &Editor{Command: writeEditor(t, `printf '\n\n  feat: x  \n\n' > "$1"`), TempDir: t.TempDir()}
	_, err := ed.Edit(context.Background(), "feat: x")
	assert.ErrorIs(t, err, ErrEditAborted)
}

func TestEditor_newContentReturnedTrimmed(t *testing.T) {
	t.Parallel()
	ed := &Editor{Command: writeEditor(t, `printf '  feat(cli): edited\n\n- body line\n\n' > "$1"`), TempDir: t.TempDir()}
	got, err := ed.Edit(context.Background(), "feat: x")
	require.NoError(t, err)
	assert.Equal(t, "feat(cli): edited\n\n- body line", got)
}

func TestEditor_emptyAborts(t *testing.T) {
	t.Parallel()
	ed := &Editor{Command: writeEditor(t, `: > "$1"`), TempDir: t.TempDir()}
	_, err := ed.Edit(context.Background(), "feat: x")
	assert.ErrorIs(t, err, ErrEditAborted)
}

func TestEditor_nonZeroExitAborts(t *testing.T) {
	t.Parallel()
	ed := &Editor{Command: writeEditor(t, `echo "feat: changed" > "$1"; exit 3`), TempDir: t.TempDir()}
	_, err := ed.Edit(context.Background(), "feat: x")
	assert.ErrorIs(t, err, ErrEditAborted)
}

func TestEditor_seesMessageAndRemovesFile(t *testing.T) {
	t.Parallel()
	side := filepath.Join(t.TempDir(), "seen")
	script := writeEditor(t, `echo "$1" > "`+side+`.path"; cp "$1" "`+side+`"; echo "fix: other" > "$1"`)
	tmp := t.TempDir()
	ed := &Editor{Command: script, TempDir: tmp}

	got, err := ed.Edit(context.Background(), "feat: original")
	require.NoError(t, err)
	assert.Equal(t, "fix: other", got)

	seen, err := os.ReadFile(side)
	require.NoError(t, err)
	assert.Equal(t, "feat: original\n", string(seen))

	pathData, err := os.ReadFile(side + ".path")
	require.NoError(t, err)
	editedPath := strings.TrimSpace(string(pathData))
	assert.True(t, strings.HasPrefix(editedPath, tmp), "temp file %q not under %q", editedPath, tmp)
	_, err = os.Stat(editedPath)
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file should be removed")
}

func TestEditor_removesFileOnFailure(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	ed := &Editor{Command: writeEditor(t, "exit 1"), TempDir: tmp}
	_, err := ed.Edit(context.Background(), "feat: x")
	require.ErrorIs(t, err, ErrEditAborted)
	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEditor_commandWithFlags(t *testing.T) {
	t.Parallel()
	script := writeEditor(t, `[ "$1" = "--wait" ] || exit 9; echo "chore: via flags" > "$2"`)
	ed := &Editor{Command: script + " --wait", TempDir: t.TempDir()}
	got, err := ed.Edit(context.Background(), "feat: x")
	require.NoError(t, err)
	assert.Equal(t, "chore: via flags", got)
}
