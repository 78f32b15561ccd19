package wizard

import (
	"errors"
	"slices"
	"testing"
)

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single", ".env.local", []string{".env.local"}},
		{"multiple", ".env.local, .env.dev", []string{".env.local", ".env.dev"}},
		{"trailing comma", "node_modules,", []string{"node_modules"}},
		{"empty segments", "a,, ,b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitList(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultQuestions(t *testing.T) {
	t.Parallel()

	questions := DefaultQuestions()
	if len(questions) != 5 {
		t.Fatalf("len(DefaultQuestions()) = %d, want 5", len(questions))
	}

	seen := map[string]bool{}
	for _, q := range questions {
		if q.ID == "" || q.Title == "" {
			t.Errorf("question %+v missing ID or Title", q)
		}
		if seen[q.ID] {
			t.Errorf("duplicate question ID %q", q.ID)
		}
		seen[q.ID] = true
	}
	for _, id := range []string{"copy_files", "symlink_dirs", "post_create", "pre_delete", "host_url"} {
		if !seen[id] {
			t.Errorf("missing question %q", id)
		}
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	result := &Result{}
	questions := DefaultQuestions()
	answers := map[string]string{
		"copy_files":   ".env.local",
		"symlink_dirs": "node_modules, .cache",
		"post_create":  "npm install",
		"pre_delete":   "",
		"host_url":     " http://127.0.0.1:5000 ",
	}
	for i := range questions {
		apply(result, &questions[i], answers[questions[i].ID])
	}

	if !slices.Equal(result.CopyFiles, []string{".env.local"}) {
		t.Errorf("CopyFiles = %v", result.CopyFiles)
	}
	if !slices.Equal(result.SymlinkDirs, []string{"node_modules", ".cache"}) {
		t.Errorf("SymlinkDirs = %v", result.SymlinkDirs)
	}
	if !slices.Equal(result.PostCreate, []string{"npm install"}) {
		t.Errorf("PostCreate = %v", result.PostCreate)
	}
	if len(result.PreDelete) != 0 {
		t.Errorf("PreDelete = %v, want empty", result.PreDelete)
	}
	if result.HostURL != "http://127.0.0.1:5000" {
		t.Errorf("HostURL = %q, want trimmed URL", result.HostURL)
	}
}

func TestRun_NoQuestions(t *testing.T) {
	t.Parallel()

	_, err := Run(nil)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Run(nil) error = %v, want ErrNoQuestions", err)
	}
}
