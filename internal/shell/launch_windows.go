//go:build windows

package shell

import (
	"fmt"
	"os"
	"os/exec"
)

// Windows cannot replace the running process, so the shell runs as a child
// with the terminal attached and offshoot exits when it does.
func launch(argv []string, dir string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = Environ(os.Environ(), dir)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running shell %s: %w", argv[0], err)
	}
	return nil
}
