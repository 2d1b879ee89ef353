// Package errors defines the sentinel errors shared across offshoot and maps
// them to process exit codes.
package errors

import (
	"errors"
)

const (
	ExitSuccess = iota
	ExitFailure
)

var (
	ErrUsage              = errors.New("invalid usage")
	ErrConflictingModes   = errors.New("Cannot use both --share and --clone") //nolint:staticcheck // user-facing message
	ErrNotRepository      = errors.New("not a git repository")
	ErrWorktreeExists     = errors.New("worktree directory already exists")
	ErrFileNotFound       = errors.New("file not found in main checkout")
	ErrNotManagedWorktree = errors.New("not in an offshoot-managed worktree")
	ErrProtectedBranch    = errors.New("refusing to share files on a protected branch")
	ErrGitOperationFailed = errors.New("git operation failed")
	ErrAborted            = errors.New("aborted")
)

// exitCoder is implemented by errors carrying the exit status of an external
// command, such as exec.CommandError.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit status for err. Failures of external
// commands propagate their own status; everything else exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() > 0 {
		return ec.ExitCode()
	}
	return ExitFailure
}
