package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/naoray/offshoot/internal/exec"
)

// BranchExists checks if a local branch exists in the repository.
func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, err := c.run(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	if err == nil {
		return true, nil
	}

	var cmdErr *exec.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Status == 1 {
		return false, nil
	}
	return false, fmt.Errorf("checking branch %s: %w", branch, err)
}

// CurrentBranch returns the branch checked out in the client's directory,
// or an empty string for a detached HEAD.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("reading current branch: %w", err)
	}
	return strings.TrimSpace(output), nil
}

