package filesync

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arbor-sh/arbor/internal/defs"
)

// SymlinkDirs links each listed directory from sourceDir into targetDir at
// the same relative path. A pre-existing target (such as an empty directory
// git created during checkout) is removed before linking, and the link
// target is always the absolute source path so the link survives worktree
// relocation. Entries in exclude are dropped. Returns the number of links
// created.
func (s *Syncer) SymlinkDirs(sourceDir, targetDir string, dirs, exclude []string) int {
	excluded := excludeSet(exclude)

	linked := 0
	for _, name := range dirs {
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
		if !info.IsDir() {
			s.logger.Warn("sync entry is not a directory, use copyFiles", "entry", name)
			continue
		}

		absSrc, err := filepath.Abs(src)
		if err != nil {
			s.logger.Warn("cannot resolve sync source",
				"entry", name,
				"error", err)
			continue
		}

		dst := filepath.Join(targetDir, name)
		if err := os.MkdirAll(filepath.Dir(dst), defs.DirPerm); err != nil {
			s.logger.Warn("cannot create link parent",
				"entry", name,
				"error", err)
			continue
		}
		if err := os.RemoveAll(dst); err != nil {
			s.logger.Warn("cannot remove existing link target",
				"entry", name,
				"error", err)
			continue
		}
		if err := os.Symlink(absSrc, dst); err != nil {
			s.logger.Warn("symlink failed",
				"entry", name,
				"error", err)
			continue
		}
		linked++
	}

	return linked
}
