package filesync

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent of %q: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %q: %v", path, err)
	}
	return string(data)
}

func TestCopyFiles_CopiesListed(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTestFile(t, filepath.Join(src, ".env.local"), "SECRET=1\n")
	writeTestFile(t, filepath.Join(src, "config", "local.json"), "{}\n")

	copied := New().CopyFiles(src, dst, []string{".env.local", "config/local.json"}, nil)

	if copied != 2 {
		t.Errorf("copied = %d, want 2", copied)
	}
	if got := readTestFile(t, filepath.Join(dst, ".env.local")); got != "SECRET=1\n" {
		t.Errorf(".env.local content = %q", got)
	}
	if got := readTestFile(t, filepath.Join(dst, "config", "local.json")); got != "{}\n" {
		t.Errorf("config/local.json content = %q", got)
	}
}

func TestCopyFiles_SkipsMissingSources(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTestFile(t, filepath.Join(src, "present.txt"), "here\n")

	copied := New().CopyFiles(src, dst, []string{"present.txt", "absent.txt"}, nil)

	if copied != 1 {
		t.Errorf("copied = %d, want 1", copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "absent.txt")); !os.IsNotExist(err) {
		t.Errorf("absent.txt should not exist in target, stat err = %v", err)
	}
}

func TestCopyFiles_SkipsUnsafeEntries(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.txt")
	writeTestFile(t, outside, "outside\n")

	copied := New().CopyFiles(src, dst, []string{outside, "../outside.txt", "a/../../b"}, nil)

	if copied != 0 {
		t.Errorf("copied = %d, want 0", copied)
	}
	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatalf("read target dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("target dir has %d entries, want 0", len(entries))
	}
}

func TestCopyFiles_HonorsExclude(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTestFile(t, filepath.Join(src, "keep.txt"), "keep\n")
	writeTestFile(t, filepath.Join(src, "drop.txt"), "drop\n")

	copied := New().CopyFiles(src, dst, []string{"keep.txt", "drop.txt"}, []string{"drop.txt"})

	if copied != 1 {
		t.Errorf("copied = %d, want 1", copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "drop.txt")); !os.IsNotExist(err) {
		t.Errorf("drop.txt should be excluded, stat err = %v", err)
	}
}

func TestCopyFiles_SkipsDirectoryEntry(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "adir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	copied := New().CopyFiles(src, dst, []string{"adir"}, nil)

	if copied != 0 {
		t.Errorf("copied = %d, want 0", copied)
	}
}

func TestCopyFile_PreservesMode(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "run.sh")
	writeTestFile(t, src, "#!/bin/sh\n")
	if err := os.Chmod(src, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "sub", "run.sh")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("copied mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	t.Parallel()

	err := CopyFile(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "dst"))
	if err == nil {
		t.Error("CopyFile() with missing source = nil error, want failure")
	}
}

func TestCopyTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "top.md"), "top\n")
	writeTestFile(t, filepath.Join(src, "nested", "deep", "leaf.md"), "leaf\n")

	dst := filepath.Join(t.TempDir(), "copy")
	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree() error: %v", err)
	}

	if got := readTestFile(t, filepath.Join(dst, "top.md")); got != "top\n" {
		t.Errorf("top.md content = %q", got)
	}
	if got := readTestFile(t, filepath.Join(dst, "nested", "deep", "leaf.md")); got != "leaf\n" {
		t.Errorf("nested leaf content = %q", got)
	}
}

func TestCopyTree_MissingSource(t *testing.T) {
	t.Parallel()

	err := CopyTree(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "dst"))
	if err == nil {
		t.Error("CopyTree() with missing source = nil error, want failure")
	}
}
