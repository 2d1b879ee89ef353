//go:build !windows

package shell

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

func launch(argv []string, dir string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("finding shell %s: %w", argv[0], err)
	}

	// Exec keeps the environment but not the working directory.
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}

	if err := syscall.Exec(path, argv, Environ(os.Environ(), dir)); err != nil {
		return fmt.Errorf("starting shell %s: %w", path, err)
	}
	return nil
}
