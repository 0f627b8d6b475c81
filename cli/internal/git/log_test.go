package git

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLogQuery_Args(t *testing.T) {
	t.Parallel()
	base := []string{"log", "--color", "--date=local", "--pretty=format:" + LogFormat, "--graph"}
	tests := []struct {
		name string
		q    LogQuery
		want []string
	}{
		{"no filters", LogQuery{}, base},
		{"all filters in order", LogQuery{Since: "2024-01-01", Range: "v1..v2", Author: "ana", Grep: "fix"},
			append(append([]string{}, base...), "--since", "2024-01-01", "v1..v2", "--author", "ana", "--grep", "fix")},
		{"author only", LogQuery{Author: "bo"}, append(append([]string{}, base...), "--author", "bo")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.q.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLog_filters(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)

	all, err := Log(repo, LogQuery{})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if !strings.Contains(all, "c1") || !strings.Contains(all, "c2") {
		t.Errorf("full log = %q", all)
	}
	if !strings.Contains(all, "<Test>") {
		t.Errorf("log should carry author: %q", all)
	}

	ranged, err := Log(repo, LogQuery{Range: "HEAD~1..HEAD"})
	if err != nil {
		t.Fatalf("Log range: %v", err)
	}
	if !strings.Contains(ranged, "c2") || strings.Contains(ranged, " c1 ") {
		t.Errorf("range log = %q", ranged)
	}

	grep, err := Log(repo, LogQuery{Grep: "c1"})
	if err != nil {
		t.Fatalf("Log grep: %v", err)
	}
	if strings.Contains(grep, " c2 ") {
		t.Errorf("grep log = %q", grep)
	}

	none, err := Log(repo, LogQuery{Author: "nobody-here"})
	if err != nil {
		t.Fatalf("Log author: %v", err)
	}
	if strings.TrimSpace(none) != "" {
		t.Errorf("author filter should match nothing: %q", none)
	}
}

func TestLog_badRange(t *testing.T) {
	t.Parallel()
	repo := initRepo(t)
	_, err := Log(repo, LogQuery{Range: "nope..alsonope"})
	if !errors.Is(err, ErrLogFailed) {
		t.Fatalf("Log with invalid range: err = %v, want ErrLogFailed", err)
	}
}
