package cli

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/naoray/offshoot/internal/config"
	"github.com/naoray/offshoot/internal/git/gittest"
)

type fakeLauncher struct {
	dirs []string
	err  error
}

func (f *fakeLauncher) Launch(dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

type testApp struct {
	*App
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	launcher *fakeLauncher
	cwd      string
}

// newTestApp returns an App running from cwd with default configuration,
// captured output and a recording shell launcher.
func newTestApp(t *testing.T, cwd string) *testApp {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	ta := &testApp{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		launcher: &fakeLauncher{},
		cwd:      cwd,
	}
	ta.App = &App{
		Stdout:      ta.stdout,
		Stderr:      ta.stderr,
		Launcher:    ta.launcher,
		Getwd:       func() (string, error) { return ta.cwd, nil },
		LoadConfig:  config.LoadForProject,
		Interactive: func() bool { return false },
	}
	return ta
}

func (ta *testApp) run(args ...string) int {
	return ta.Run(context.Background(), args)
}

func newTestRepo(t *testing.T) string {
	t.Helper()
	return gittest.NewRepo(t, "proj")
}

// detachHEAD detaches HEAD in a repo so that its current branch can be checked
// out in a worktree. This is needed because git refuses to check out a branch
// in a worktree if it's already checked out elsewhere.
func detachHEAD(t *testing.T, repoDir string) {
	t.Helper()
	cmd := exec.Command("git", "-C", repoDir, "checkout", "--detach")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("detaching HEAD: %v\n%s", err, string(output))
	}
}
