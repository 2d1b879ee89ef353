// Package shell hands the terminal over to an interactive shell rooted at a
// directory. It is the last thing offshoot does after create and cleanup.
package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
)

// DefaultShell is used when neither the configuration nor $SHELL names one.
const DefaultShell = "/bin/sh"

// Launcher starts an interactive shell in dir.
type Launcher interface {
	Launch(dir string) error
}

// Command resolves the shell command line. A configured command is split
// with shell quoting rules; otherwise $SHELL is used, falling back to
// DefaultShell.
func Command(configured string) ([]string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		argv, err := shlex.Split(configured)
		if err != nil {
			return nil, fmt.Errorf("parsing shell command %q: %w", configured, err)
		}
		if len(argv) == 0 {
			return nil, errors.New("shell command is empty")
		}
		return argv, nil
	}

	if sh := strings.TrimSpace(os.Getenv("SHELL")); sh != "" {
		return []string{sh}, nil
	}
	return []string{DefaultShell}, nil
}

// Environ returns env with PWD pointing at dir, so the new shell's prompt
// matches its actual working directory.
func Environ(env []string, dir string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "PWD=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PWD="+dir)
}

// ProcessLauncher launches the resolved shell for real.
type ProcessLauncher struct {
	// Configured is the optional shell command from configuration.
	Configured string
}

// NewLauncher returns a Launcher for the configured shell command.
func NewLauncher(configured string) *ProcessLauncher {
	return &ProcessLauncher{Configured: configured}
}

// Launch starts the shell in dir. On unix it replaces the current process
// and only returns on failure.
func (l *ProcessLauncher) Launch(dir string) error {
	argv, err := Command(l.Configured)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("shell directory %s is not accessible", dir)
	}

	return launch(argv, dir)
}
