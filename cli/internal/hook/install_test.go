package hook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "#!/bin/sh\n# Installed by gitcommit install-hook.\nexec gitcommit-hook \"$@\"\n", Script(""))
	assert.Contains(t, Script("/opt/bin/gitcommit-hook"), "exec /opt/bin/gitcommit-hook \"$@\"")
}

func TestInstall_new(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "hooks")
	path, err := Install(dir, "", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, HookName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "hook must be executable")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Script(""), string(data))
}

func TestInstall_existingRequiresForce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, HookName)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho mine\n"), 0755))

	_, err := Install(dir, "", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHookExists))
	assert.Contains(t, err.Error(), "use --force")
	data, _ := os.ReadFile(path)
	assert.Equal(t, "#!/bin/sh\necho mine\n", string(data))

	_, err = Install(dir, "gitcommit-hook", true)
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Equal(t, Script(""), string(data))
}
