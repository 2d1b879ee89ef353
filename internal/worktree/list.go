package worktree

import (
	"fmt"
	"io"
)

// Entry is a managed worktree as shown by list.
type Entry struct {
	Name     string
	Path     string
	Branch   string
	Detached bool
}

// BranchLabel is the branch name, or "(detached)" for a detached HEAD.
func (e Entry) BranchLabel() string {
	if e.Detached || e.Branch == "" {
		return "(detached)"
	}
	return e.Branch
}

// RenderList writes entries in the list command's format. When details is
// non-nil its lines are printed under each entry's branch.
func RenderList(w io.Writer, entries []Entry, details func(Entry) []string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No active worktrees found")
		return
	}

	fmt.Fprintln(w, "Active worktrees:")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s → %s\n", e.Name, e.Path)
		fmt.Fprintf(w, "    branch: %s\n", e.BranchLabel())
		if details == nil {
			continue
		}
		for _, line := range details(e) {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
