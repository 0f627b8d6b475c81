// Package prompt provides the system prompts (built-in or repo override) and
// the user payload builders sent to the completion service.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CommitPromptFilename is the repo override for the commit system prompt,
// relative to the .gitai directory.
const CommitPromptFilename = "commit_prompt.txt"

// DefaultCommitSystemPrompt steers the interactive commit tool.
const DefaultCommitSystemPrompt = "You are a commit-message assistant.\n" +
	"- Provide a concise subject line (imperative mood).\n" +
	"- Then include a blank line followed by a detailed multi-line description or bullet list of key changes.\n" +
	"- Use Conventional Commits format for the subject: <type>(<scope>): <subject>.\n"

// DefaultHookSystemPrompt steers the prepare-commit-msg hook.
const DefaultHookSystemPrompt = "You are a commit-message assistant.\n" +
	"- First line: concise subject in the imperative mood.\n" +
	"- Blank line.\n" +
	"- Multi-line description or bullet list of key changes.\n" +
	"- Use Conventional Commits format: <type>(<scope>): <subject>.\n"

// TechnicalAddendum is appended to either commit prompt in technical mode.
const TechnicalAddendum = "- Write the body for reviewers: name the functions, files and modules that changed and state the factual change for each, without adjectives or marketing language.\n"

// NotesSystemPrompt asks for a release-notes summary aimed at non-technical readers.
const NotesSystemPrompt = "I have a list of Git commits from a software project. Each commit includes technical details about code changes, bug fixes, and feature implementations. I need a concise, non-technical summary of these commits for inclusion in release notes. The summary should be straightforward, avoiding any promotional or marketing language. Focus on summarizing the key changes and improvements."

// NotesTechnicalSystemPrompt asks for a factual, change-facing summary.
const NotesTechnicalSystemPrompt = "I have a detailed list of Git commits from this week. Each commit includes technical details such as code diffs, " +
	"bug fixes, and refactorings. Provide a technical summary that clearly lists the factual changes (e.g., modified functions, " +
	"updated files, refactored modules) without using superfluous adjectives or vague terminology. Focus solely on what was changed."

// Kind selects the built-in commit prompt.
type Kind int

const (
	KindInteractive Kind = iota
	KindHook
)

// CommitSystemPrompt returns the commit system prompt. If
// repoRoot/.gitai/commit_prompt.txt exists and is non-empty, its trimmed
// contents replace the built-in prompt for kind. The technical addendum is
// appended in both cases when technical is set.
// Missing file returns the default with nil error; any other read error is returned.
func CommitSystemPrompt(repoRoot string, kind Kind, technical bool) (string, error) {
	base := DefaultCommitSystemPrompt
	if kind == KindHook {
		base = DefaultHookSystemPrompt
	}
	if repoRoot != "" {
		path := filepath.Join(repoRoot, ".gitai", CommitPromptFilename)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if s := strings.TrimSpace(string(data)); s != "" {
				base = s + "\n"
			}
		case !os.IsNotExist(err):
			return "", fmt.Errorf("read commit prompt: %w", err)
		}
	}
	if technical {
		base += TechnicalAddendum
	}
	return base, nil
}

// CommitUser is the payload for the interactive tool.
func CommitUser(diff string) string {
	return "Git diff --cached:\n" + diff
}

// HookUser is the payload for the hook.
func HookUser(diff string) string {
	return "Staged changes:\n" + diff
}

// NotesSystem returns the release-notes system prompt for the audience.
func NotesSystem(technical bool) string {
	if technical {
		return NotesTechnicalSystemPrompt
	}
	return NotesSystemPrompt
}

// NotesUser embeds the rendered log and asks the model to begin with leadIn.
func NotesUser(log, leadIn string, technical bool) string {
	kind := "non-technical"
	if technical {
		kind = "technical"
	}
	return fmt.Sprintf("Here is the list of commits:\n\n%s\n\nBased on this list of commits, generate a %s summary for the release notes. Start the summary with '%s'", log, kind, leadIn)
}
