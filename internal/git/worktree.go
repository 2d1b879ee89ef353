package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/naoray/offshoot/internal/utils"
)

// Worktree represents a git worktree as reported by
// `git worktree list --porcelain`.
type Worktree struct {
	Path     string
	Branch   string
	Head     string
	IsMain   bool
	Bare     bool
	Detached bool
}

// ListWorktrees lists all worktrees of the repository, main checkout first.
func (c *Client) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	output, err := c.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("listing worktrees: %w", err)
	}
	return ParseWorktreeList(output), nil
}

// ParseWorktreeList parses porcelain worktree output. Records are recognised
// by line prefix alone: a `worktree` line starts a new record, so blank
// separator lines are optional. The first record is flagged as the main
// checkout.
func ParseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &Worktree{Path: strings.TrimSpace(value)}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(strings.TrimSpace(value), "refs/heads/")
			}
		case "HEAD":
			if current != nil {
				current.Head = strings.TrimSpace(value)
			}
		case "bare":
			if current != nil {
				current.Bare = true
			}
		case "detached":
			if current != nil {
				current.Detached = true
			}
		}
	}
	flush()

	if len(worktrees) > 0 {
		worktrees[0].IsMain = true
	}
	return worktrees
}

// ResolveMain picks the main checkout, preferring the record that owns the
// common git directory and falling back to the first listed record. The
// returned slice has IsMain set on exactly that record.
func (c *Client) ResolveMain(ctx context.Context, worktrees []Worktree) ([]Worktree, Worktree, bool) {
	if len(worktrees) == 0 {
		return worktrees, Worktree{}, false
	}

	idx := 0
	if common, err := c.CommonDir(ctx); err == nil && filepath.Base(common) == ".git" {
		owner := filepath.Dir(common)
		for i, wt := range worktrees {
			if utils.SamePath(wt.Path, owner) {
				idx = i
				break
			}
		}
	}

	for i := range worktrees {
		worktrees[i].IsMain = i == idx
	}
	return worktrees, worktrees[idx], true
}

// AddWorktree creates a worktree at path. When createBranch is set the
// branch is created alongside it (`-b`); otherwise the existing branch is
// checked out.
func (c *Client) AddWorktree(ctx context.Context, path, branch string, createBranch bool) error {
	args := []string{"worktree", "add"}
	if createBranch {
		args = append(args, "-b", branch, path)
	} else {
		args = append(args, path, branch)
	}

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("git worktree add failed: %w", err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path. With force set, uncommitted
// changes in the worktree are discarded.
func (c *Client) RemoveWorktree(ctx context.Context, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("git worktree remove failed: %w", err)
	}
	return nil
}
