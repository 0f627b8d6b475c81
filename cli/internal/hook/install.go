package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// HookName is the git hook this package installs.
const HookName = "prepare-commit-msg"

// DefaultCommand is the binary the installed hook runs.
const DefaultCommand = "gitcommit-hook"

// ErrHookExists is returned by Install when a hook is present and force is off.
var ErrHookExists = errors.New("hook already exists")

// Script returns the hook script that execs command with git's arguments.
func Script(command string) string {
	if command == "" {
		command = DefaultCommand
	}
	return fmt.Sprintf("#!/bin/sh\n# Installed by gitcommit install-hook.\nexec %s \"$@\"\n", command)
}

// Install writes an executable prepare-commit-msg into hooksDir and returns
// its path. An existing hook is replaced only when force is set.
func Install(hooksDir, command string, force bool) (string, error) {
	path := filepath.Join(hooksDir, HookName)
	if _, err := os.Lstat(path); err == nil && !force {
		return "", erruser.Newf(ErrHookExists, "A %s hook already exists at %s; use --force to replace it.", HookName, path)
	} else if err != nil && !os.IsNotExist(err) {
		return "", erruser.New("Could not inspect the hooks directory.", err)
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", erruser.New("Could not create the hooks directory.", err)
	}
	// Remove first so a symlinked hook is replaced rather than written through.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", erruser.New("Could not replace the existing hook.", err)
	}
	if err := os.WriteFile(path, []byte(Script(command)), 0755); err != nil {
		return "", erruser.New("Could not write the hook.", err)
	}
	return path, nil
}
