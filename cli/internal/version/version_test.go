package version

import "testing"

func TestString(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	defer func() { Version, Commit = savedVersion, savedCommit }()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev with commit", "dev", "abc1234", "dev (abc1234)"},
		{"dev no commit", "dev", "", "dev"},
		{"release ignores commit", "v0.3.0", "abc1234", "v0.3.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	savedVersion := Version
	defer func() { Version = savedVersion }()
	Version = "v0.3.0"
	if got := UserAgent(); got != "git-ai/v0.3.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
