package filesync

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arbor-sh/arbor/internal/defs"
)

// CopyFiles copies each listed file from sourceDir to the same relative
// path under targetDir, creating parent directories as needed. Entries in
// exclude are dropped. Unsafe entries are skipped with a warning; missing
// sources are skipped at debug level. Returns the number of files copied.
func (s *Syncer) CopyFiles(sourceDir, targetDir string, files, exclude []string) int {
	excluded := excludeSet(exclude)

	copied := 0
	for _, name := range files {
		if excluded[filepath.ToSlash(name)] {
			s.logger.Debug("sync entry excluded", "entry", name)
			continue
		}
		if !IsPathSafe(sourceDir, name) {
			s.logger.Warn("skipping unsafe sync entry",
				"entry", name,
				"source", sourceDir)
			continue
		}

		src := filepath.Join(sourceDir, name)
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("sync source missing", "entry", name)
			continue
		}
		if err != nil {
			s.logger.Warn("cannot stat sync source",
				"entry", name,
				"error", err)
			continue
		}
		if info.IsDir() {
			s.logger.Warn("sync entry is a directory, use symlinkDirs", "entry", name)
			continue
		}

		if err := copyFile(src, filepath.Join(targetDir, name), info.Mode().Perm()); err != nil {
			s.logger.Warn("copy failed",
				"entry", name,
				"error", err)
			continue
		}
		copied++
	}

	return copied
}

// CopyFile copies a single regular file, creating the destination's parent
// directories. Unlike the batch operations it reports failure to the
// caller.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}
	return copyFile(src, dst, info.Mode().Perm())
}

// CopyTree recursively copies the directory tree at srcDir to dstDir.
// Regular files and directories are copied; anything else is skipped.
func CopyTree(srcDir, dstDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		target := filepath.Join(dstDir, rel)

		if d.IsDir() {
			return os.MkdirAll(target, defs.DirPerm)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), defs.DirPerm); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func excludeSet(exclude []string) map[string]bool {
	set := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		set[filepath.ToSlash(e)] = true
	}
	return set
}
