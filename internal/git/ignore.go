package git

import (
	"context"
	"errors"

	"github.com/naoray/offshoot/internal/exec"
)

// IsIgnored reports whether relativePath is ignored by git in the client's
// working tree.
func (c *Client) IsIgnored(ctx context.Context, relativePath string) (bool, error) {
	if _, err := c.run(ctx, "check-ignore", "-q", "--", relativePath); err != nil {
		var cmdErr *exec.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Status == 1 {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
