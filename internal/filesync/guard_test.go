package filesync

import "testing"

func TestIsPathSafe(t *testing.T) {
	t.Parallel()

	sourceDir := t.TempDir()

	tests := []struct {
		name  string
		entry string
		want  bool
	}{
		{"plain file", "config.json", true},
		{"nested file", "nested/dir/file.txt", true},
		{"dot slash prefix", "./notes.md", true},
		{"dotfile", ".env.local", true},
		{"empty", "", false},
		{"bare dot", ".", false},
		{"dot slash", "./", false},
		{"dot slash dot", "./.", false},
		{"absolute", "/etc/passwd", false},
		{"bare dotdot", "..", false},
		{"leading dotdot", "../escape.txt", false},
		{"embedded dotdot", "a/../../b", false},
		{"dotdot substring", "a..b", false},
		{"trailing dotdot", "dir/..", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPathSafe(sourceDir, tt.entry); got != tt.want {
				t.Errorf("IsPathSafe(%q, %q) = %v, want %v", sourceDir, tt.entry, got, tt.want)
			}
		})
	}
}
