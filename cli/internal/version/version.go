// Package version holds the git-ai version. Release builds set it with
// -ldflags "-X github.com/sinataghva/git-ai/cli/internal/version.Version=v0.3.0".
package version

// Version is the release version. Set at build time.
var Version = "dev"

// Commit is the short git commit hash for dev builds; set by ldflags.
var Commit = ""

// String returns the version for --version output.
// Dev builds with Commit set render as "dev (abc1234)".
func String() string {
	if Version != "dev" || Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

// UserAgent is sent with requests to the completion service.
func UserAgent() string {
	return "git-ai/" + Version
}
