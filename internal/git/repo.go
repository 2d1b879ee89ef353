// Package git wraps the git CLI operations offshoot needs: repository
// discovery, porcelain worktree listing, branch queries and worktree
// add/remove. Every invocation goes through an exec.Commander so tests can
// assert which commands were (or were not) issued.
package git

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	offerrors "github.com/naoray/offshoot/internal/errors"
	"github.com/naoray/offshoot/internal/exec"
)

// Client runs git commands from a fixed working directory.
type Client struct {
	commander exec.Commander
	dir       string
	logger    *log.Logger
}

// NewClient creates a Client that runs git in dir. A nil commander uses the
// real git binary; a nil logger discards debug output.
func NewClient(commander exec.Commander, dir string, logger *log.Logger) *Client {
	if commander == nil {
		commander = exec.DefaultCommander
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{commander: commander, dir: dir, logger: logger}
}

// Dir returns the directory git commands run from.
func (c *Client) Dir() string {
	return c.dir
}

// WithDir returns a copy of the client that runs git from dir.
func (c *Client) WithDir(dir string) *Client {
	clone := *c
	clone.dir = dir
	return &clone
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	c.logger.Debug("git", "dir", c.dir, "args", strings.Join(args, " "))
	output, err := c.commander.Run(ctx, c.dir, "git", args...)
	if err != nil {
		return string(output), fmt.Errorf("%w: %w", offerrors.ErrGitOperationFailed, err)
	}
	return string(output), nil
}

// RepoRoot returns the top-level directory of the working tree containing
// the client's directory. It fails with ErrNotRepository outside a repository.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %s", offerrors.ErrNotRepository, c.dir)
	}
	root := strings.TrimSpace(output)
	if root == "" {
		return "", fmt.Errorf("%w: %s", offerrors.ErrNotRepository, c.dir)
	}
	return root, nil
}

// GitDir returns the absolute path of the private git directory of the
// current working tree (.git for the main checkout, .git/worktrees/<name>
// for linked worktrees).
func (c *Client) GitDir(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("resolving git dir: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// CommonDir returns the absolute path of the git directory shared by all
// worktrees. Git versions without --path-format support yield an error.
func (c *Client) CommonDir(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("resolving common git dir: %w", err)
	}
	return strings.TrimSpace(output), nil
}
