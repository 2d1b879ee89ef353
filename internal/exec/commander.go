// Package exec provides interfaces and implementations for command execution.
// This abstraction allows for dependency injection and testing of code that
// drives external commands such as git.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Commander defines the interface for executing commands.
// Implementations can provide real command execution or mock behavior for testing.
type Commander interface {
	// Run executes a command in the specified directory with the given arguments.
	// Returns stdout. On failure the error is a *CommandError carrying stderr
	// and the exit status.
	Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error)
}

// CommandError describes a command that ran and failed.
type CommandError struct {
	Command string
	Args    []string
	Stderr  string
	Status  int
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Command, strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode reports the exit status of the failed command, or 1 when the
// command could not be started.
func (e *CommandError) ExitCode() int {
	if e.Status > 0 {
		return e.Status
	}
	return 1
}

// RealCommander executes commands using the real operating system.
type RealCommander struct{}

// Run executes the command using exec.CommandContext.
// The command is executed in the specified directory with the provided arguments.
func (c *RealCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &CommandError{
			Command: command,
			Args:    args,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.Status = exitErr.ExitCode()
		}
		return stdout.Bytes(), cmdErr
	}
	return stdout.Bytes(), nil
}

// DefaultCommander is a package-level RealCommander for callers that do not
// inject their own.
var DefaultCommander Commander = &RealCommander{}
