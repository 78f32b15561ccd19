package git

import (
	"fmt"
	"strings"
)

// forbiddenBranchChars are rejected wholesale: git refname metacharacters,
// glob characters, and shell metacharacters. Branch names never pass
// through a shell, but they do become filesystem paths, so the reject set
// is deliberately wider than git's own rules.
const forbiddenBranchChars = "~^:?*[]\\;&|`$() "

// ValidateBranchName rejects branch names that are invalid refnames or that
// could be read as options, traversal, or reflog syntax by git or the
// filesystem. It is total: every input yields nil or an error naming the
// violated rule, wrapped around ErrInvalidBranchName. It must run at every
// external entry point before a branch name reaches a git call or a path.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name is empty: %w", ErrInvalidBranchName)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name %q starts with '-': %w", name, ErrInvalidBranchName)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name %q starts or ends with '/': %w", name, ErrInvalidBranchName)
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("branch name %q contains '//': %w", name, ErrInvalidBranchName)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name %q starts or ends with '.': %w", name, ErrInvalidBranchName)
	}
	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name %q ends with '.lock': %w", name, ErrInvalidBranchName)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name %q contains '..': %w", name, ErrInvalidBranchName)
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("branch name %q contains '@{': %w", name, ErrInvalidBranchName)
	}
	if strings.ContainsAny(name, forbiddenBranchChars) {
		return fmt.Errorf("branch name %q contains a forbidden character: %w", name, ErrInvalidBranchName)
	}
	for _, c := range name {
		if c < 0x20 || c == 0x7f {
			return fmt.Errorf("branch name %q contains a control character: %w", name, ErrInvalidBranchName)
		}
	}
	return nil
}
