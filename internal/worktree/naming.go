package worktree

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/naoray/offshoot/internal/git"
	"github.com/naoray/offshoot/internal/utils"
)

// managedName matches directory names of the form <repo>-<branch>.
var managedName = regexp.MustCompile(`^[^-]+-.+$`)

// DirName returns the directory name for branch's worktree next to repoName.
func DirName(repoName, branch string) string {
	return repoName + "-" + utils.SanitisePath(branch)
}

// TargetDir returns the sibling directory of repoRoot that holds branch's
// worktree.
func TargetDir(repoRoot, branch string) string {
	return filepath.Join(filepath.Dir(repoRoot), DirName(filepath.Base(repoRoot), branch))
}

// IsManagedName reports whether a directory basename follows the naming
// convention offshoot uses for the worktrees it creates.
func IsManagedName(name string) bool {
	return managedName.MatchString(name)
}

// DisplayName is the part of a worktree directory name after the first dash.
func DisplayName(name string) string {
	_, rest, found := strings.Cut(name, "-")
	if !found {
		return name
	}
	return rest
}

// IsManaged reports whether wt is a worktree offshoot can list and clean up.
// The main checkout and anything stored inside git's own metadata never
// qualify, whatever their name.
func IsManaged(wt git.Worktree) bool {
	if wt.IsMain || wt.Bare {
		return false
	}
	if strings.Contains(filepath.ToSlash(wt.Path), "/.git/") {
		return false
	}
	return IsManagedName(filepath.Base(wt.Path))
}
